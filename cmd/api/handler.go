package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	authdelivery "estate-backend/internal/auth/delivery"
	"estate-backend/internal/auth/oauth"
	authUsecase "estate-backend/internal/auth/usecase"
	propertyUsecase "estate-backend/internal/property/usecase"
	userUsecase "estate-backend/internal/user/usecase"
	"estate-backend/pkg/config"
	"estate-backend/pkg/logger"
	"estate-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

type Handler struct {
	authUsecase     authUsecase.AuthUsecase
	userUsecase     userUsecase.UserUsecase
	propertyUsecase propertyUsecase.PropertyUsecase
	providers       *oauth.Registry
	states          authdelivery.StateSigner
	limiter         ratelimit.Limiter
	tokenTTL        time.Duration
	config          *config.Config
	log             *slog.Logger
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	userUc userUsecase.UserUsecase,
	propertyUc propertyUsecase.PropertyUsecase,
	providers *oauth.Registry,
	states authdelivery.StateSigner,
	limiter ratelimit.Limiter,
	tokenTTL time.Duration,
	cfg *config.Config,
	log *slog.Logger,
) *Handler {
	authdelivery.ExposeInternalErrors(cfg.IsDevelopment())

	return &Handler{
		authUsecase:     authUc,
		userUsecase:     userUc,
		propertyUsecase: propertyUc,
		providers:       providers,
		states:          states,
		limiter:         limiter,
		tokenTTL:        tokenTTL,
		config:          cfg,
		log:             log,
	}
}

// Engine builds the gin engine with middleware and every route mounted.
func (h *Handler) Engine() *gin.Engine {
	if !h.config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(h.log))
	r.Use(corsMiddleware(h.config.CORSOrigins))

	SetupRoutes(r, h)
	return r
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (h *Handler) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	h.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowAll := len(origins) == 0 || slices.Contains(origins, "*")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (allowAll || slices.Contains(origins, origin)) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Add("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
