package api

import (
	"net/http"

	authdelivery "estate-backend/internal/auth/delivery"
	authdomain "estate-backend/internal/auth/domain"
	propertyDelivery "estate-backend/internal/property/delivery"
	userDelivery "estate-backend/internal/user/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authHandler := authdelivery.NewAuthHandler(h.authUsecase)
	oauthHandler := authdelivery.NewOAuthHandler(h.authUsecase, h.providers, h.states, h.config.FrontendURL, !h.config.IsDevelopment(), h.log)
	userHandler := userDelivery.NewUserHandler(h.userUsecase)
	propertyHandler := propertyDelivery.NewPropertyHandler(h.propertyUsecase)
	settingsHandler := NewSettingsHandler(h.providers, h.tokenTTL)

	authRequired := authdelivery.AuthMiddleware(h.authUsecase)
	adminOnly := authdelivery.RequireRole(authdomain.RoleAdmin)
	listers := authdelivery.RequireRole(authdomain.RoleOwner, authdomain.RoleAgent, authdomain.RoleAdmin)
	throttled := authdelivery.RateLimit(h.limiter)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", throttled, authHandler.Register)
			auth.POST("/login", throttled, authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.Me)
			auth.PUT("/password", authRequired, authHandler.ChangePassword)
			auth.POST("/set-password", authRequired, authHandler.SetPassword)

			// GET /api/auth/{provider} and /api/auth/{provider}/callback
			oauthHandler.Routes(auth)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(authRequired)
		{
			users.PUT("/me", userHandler.UpdateProfile)
			users.GET("/me/favorites", userHandler.GetFavorites)
			users.POST("/me/favorites/:propertyId", userHandler.ToggleFavorite)
			users.GET("", adminOnly, userHandler.ListUsers)
			users.PATCH("/:id/role", adminOnly, userHandler.ChangeRole)
		}

		// Property routes (protected); ownership is checked per listing
		properties := api.Group("/properties")
		properties.Use(authRequired)
		{
			properties.POST("", listers, propertyHandler.CreateProperty)
			properties.GET("/mine", propertyHandler.GetMyProperties)
			properties.GET("/:id", propertyHandler.GetProperty)
			properties.PUT("/:id", propertyHandler.UpdateProperty)
			properties.DELETE("/:id", propertyHandler.DeleteProperty)
			properties.PATCH("/:id/agent", propertyHandler.AssignAgent)
		}

		// Settings routes (public)
		settings := api.Group("/settings")
		{
			settings.GET("/auth", settingsHandler.GetAuthSettings)
		}
	}
}
