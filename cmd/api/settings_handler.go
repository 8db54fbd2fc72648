package api

import (
	"net/http"
	"time"

	authdomain "estate-backend/internal/auth/domain"
	"estate-backend/internal/auth/oauth"

	"github.com/gin-gonic/gin"
)

// AuthSettings tells the frontend which login options to render.
type AuthSettings struct {
	Providers         []authdomain.Provider `json:"providers"`
	TokenTTLSeconds   int64                 `json:"token_ttl_seconds"`
	PasswordMinLength int                   `json:"password_min_length"`
	Roles             []authdomain.Role     `json:"registration_roles"`
}

type SettingsHandler struct {
	settings AuthSettings
}

func NewSettingsHandler(providers *oauth.Registry, tokenTTL time.Duration) *SettingsHandler {
	return &SettingsHandler{
		settings: AuthSettings{
			Providers:         providers.Names(),
			TokenTTLSeconds:   int64(tokenTTL / time.Second),
			PasswordMinLength: authdomain.MinPasswordLength,
			Roles:             []authdomain.Role{authdomain.RoleBuyer, authdomain.RoleOwner, authdomain.RoleAgent},
		},
	}
}

// GetAuthSettings returns the public authentication configuration
// GET /api/settings/auth
func (h *SettingsHandler) GetAuthSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings)
}
