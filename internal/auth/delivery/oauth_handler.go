package delivery

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	authdomain "estate-backend/internal/auth/domain"
	"estate-backend/internal/auth/oauth"
	"estate-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const stateCookieMaxAge = 600

// StateSigner issues and checks the signed OAuth state parameter.
type StateSigner interface {
	IssueState(provider, nonce string) (string, error)
	VerifyState(state, provider, nonce string) error
}

// OAuthHandler drives the authorization-code redirect flow for every
// registered provider.
type OAuthHandler struct {
	authUsecase  usecase.AuthUsecase
	providers    *oauth.Registry
	states       StateSigner
	frontendURL  string
	secureCookie bool
	log          *slog.Logger
}

func NewOAuthHandler(authUsecase usecase.AuthUsecase, providers *oauth.Registry, states StateSigner, frontendURL string, secureCookie bool, log *slog.Logger) *OAuthHandler {
	return &OAuthHandler{
		authUsecase:  authUsecase,
		providers:    providers,
		states:       states,
		frontendURL:  frontendURL,
		secureCookie: secureCookie,
		log:          log,
	}
}

// Routes mounts GET /{provider} and GET /{provider}/callback for each
// enabled provider.
func (h *OAuthHandler) Routes(rg *gin.RouterGroup) {
	for _, name := range h.providers.Names() {
		p, _ := h.providers.Get(string(name))
		rg.GET("/"+string(name), h.Initiate(p))
		rg.GET("/"+string(name)+"/callback", h.Callback(p))
	}
}

// Initiate redirects the browser to the provider consent screen.
func (h *OAuthHandler) Initiate(p oauth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		nonce := uuid.NewString()
		state, err := h.states.IssueState(string(p.Name()), nonce)
		if err != nil {
			h.log.ErrorContext(c.Request.Context(), "issue oauth state", "provider", p.Name(), "error", err)
			h.failRedirect(c, p.Name())
			return
		}

		h.setNonceCookie(c, p.Name(), nonce, stateCookieMaxAge)
		c.Redirect(http.StatusTemporaryRedirect, p.AuthCodeURL(state))
	}
}

// Callback completes the flow. Every outcome is a redirect to the frontend.
func (h *OAuthHandler) Callback(p oauth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		user, err := h.complete(c, p)
		if err != nil {
			h.log.WarnContext(ctx, "oauth callback failed", "provider", p.Name(), "error", err)
			h.failRedirect(c, p.Name())
			return
		}

		tok, err := h.authUsecase.IssueToken(user)
		if err != nil {
			h.log.ErrorContext(ctx, "issue token after oauth", "provider", p.Name(), "error", err)
			h.failRedirect(c, p.Name())
			return
		}

		c.Redirect(http.StatusFound, h.frontendURL+"/?token="+url.QueryEscape(tok))
	}
}

func (h *OAuthHandler) complete(c *gin.Context, p oauth.Provider) (*authdomain.User, error) {
	nonce, _ := c.Cookie(nonceCookieName(p.Name()))
	h.setNonceCookie(c, p.Name(), "", -1)

	if reason := c.Query("error"); reason != "" {
		return nil, fmt.Errorf("provider returned error: %s", reason)
	}
	if err := h.states.VerifyState(c.Query("state"), string(p.Name()), nonce); err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}

	code := c.Query("code")
	if code == "" {
		return nil, errors.New("missing authorization code")
	}

	profile, err := p.FetchProfile(c.Request.Context(), code)
	if err != nil {
		return nil, err
	}
	return h.authUsecase.ResolveFederatedUser(c.Request.Context(), profile)
}

func (h *OAuthHandler) failRedirect(c *gin.Context, provider authdomain.Provider) {
	c.Redirect(http.StatusFound, fmt.Sprintf("%s/login?error=%s_auth_failed", h.frontendURL, provider))
}

func (h *OAuthHandler) setNonceCookie(c *gin.Context, provider authdomain.Provider, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(nonceCookieName(provider), value, maxAge, "/api/auth/"+string(provider), "", h.secureCookie, true)
}

func nonceCookieName(provider authdomain.Provider) string {
	return "oauth_nonce_" + string(provider)
}
