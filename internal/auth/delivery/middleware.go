package delivery

import (
	"fmt"
	"net/http"
	"strings"

	authdomain "estate-backend/internal/auth/domain"
	"estate-backend/internal/auth/usecase"
	"estate-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// AuthMiddleware authenticates the bearer token and attaches the stored user
// to the request as "user", "userID" and "role".
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authUsecase.Authenticate(c.Request.Context(), bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			if StatusOf(err) == http.StatusUnauthorized {
				Fail(c, http.StatusUnauthorized, messageFor(err))
				return
			}
			RespondError(c, err)
			return
		}

		c.Set(userContextKey, user)
		c.Set("userID", user.ID)
		c.Set("role", string(user.Role))
		c.Next()
	}
}

// RequireRole admits only callers holding one of roles. It must run after
// AuthMiddleware.
func RequireRole(roles ...authdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			Fail(c, http.StatusUnauthorized, messageFor(authdomain.ErrNoToken))
			return
		}
		if !authdomain.HasRole(authdomain.SubjectOf(user), roles...) {
			Fail(c, http.StatusForbidden, fmt.Sprintf("User role %s is not authorized to access this route", user.Role))
			return
		}
		c.Next()
	}
}

// RateLimit throttles by client IP and route.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + "|" + c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Limiter backend down: let the request through.
			_ = c.Error(err)
			c.Next()
			return
		}
		if !allowed {
			Fail(c, http.StatusTooManyRequests, "Too many requests, please try again later")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (*authdomain.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*authdomain.User)
	return user, ok && user != nil
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
