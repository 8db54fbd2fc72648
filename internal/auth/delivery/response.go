package delivery

import (
	"errors"
	"net/http"
	"sync/atomic"

	authdomain "estate-backend/internal/auth/domain"

	"github.com/gin-gonic/gin"
)

var exposeInternalErrors atomic.Bool

// ExposeInternalErrors makes 500 responses carry the underlying error text.
// Only enabled in development.
func ExposeInternalErrors(on bool) {
	exposeInternalErrors.Store(on)
}

// Fail aborts the request with the {success:false, message} envelope.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// StatusOf maps a domain error to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, authdomain.ErrNoToken),
		errors.Is(err, authdomain.ErrInvalidToken),
		errors.Is(err, authdomain.ErrExpiredToken),
		errors.Is(err, authdomain.ErrUserNotFound),
		errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, authdomain.ErrRoleNotAllowed),
		errors.Is(err, authdomain.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, authdomain.ErrEmailAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, authdomain.ErrMissingFields),
		errors.Is(err, authdomain.ErrReservedEmail),
		errors.Is(err, authdomain.ErrInvalidRole),
		errors.Is(err, authdomain.ErrWeakPassword),
		errors.Is(err, authdomain.ErrPasswordTooLong),
		errors.Is(err, authdomain.ErrPasswordAlreadySet):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes err using StatusOf. Callers with their own not-found
// or validation errors check those first.
func RespondError(c *gin.Context, err error) {
	status := StatusOf(err)
	if status < http.StatusInternalServerError {
		Fail(c, status, messageFor(err))
		return
	}

	_ = c.Error(err)
	message := "Server error"
	if exposeInternalErrors.Load() {
		message = err.Error()
	}
	Fail(c, status, message)
}

func messageFor(err error) string {
	switch {
	case errors.Is(err, authdomain.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, authdomain.ErrEmailAlreadyRegistered):
		return "User already exists"
	case errors.Is(err, authdomain.ErrNoToken):
		return "Not authorized, no token"
	case errors.Is(err, authdomain.ErrExpiredToken):
		return "Token expired, please log in again"
	case errors.Is(err, authdomain.ErrInvalidToken):
		return "Not authorized, token failed"
	case errors.Is(err, authdomain.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, authdomain.ErrNotOwner):
		return "Not authorized to modify this resource"
	case errors.Is(err, authdomain.ErrMissingFields):
		return "Please provide all required fields"
	case errors.Is(err, authdomain.ErrWeakPassword):
		return "Password must be at least 6 characters"
	case errors.Is(err, authdomain.ErrReservedEmail):
		return "This email address cannot be used for registration"
	}
	return err.Error()
}
