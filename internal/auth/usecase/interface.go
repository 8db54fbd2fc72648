package usecase

import (
	"context"

	authdomain "estate-backend/internal/auth/domain"
	authdto "estate-backend/internal/auth/dto"
	"estate-backend/internal/auth/oauth"
	"estate-backend/internal/auth/token"
)

// TokenService issues and verifies access tokens.
type TokenService interface {
	Issue(user *authdomain.User) (string, error)
	Verify(tokenString string) (*token.Claims, error)
}

// AuthUsecase defines the identity operations exposed to delivery.
type AuthUsecase interface {
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.AuthResponse, error)
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.AuthResponse, error)

	// Authenticate verifies a bearer token and reloads its user from the store.
	Authenticate(ctx context.Context, tokenString string) (*authdomain.User, error)
	Me(ctx context.Context, userID string) (*authdomain.User, error)

	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// SetPassword gives a provider-only account its first local password.
	SetPassword(ctx context.Context, userID, password string) error

	// ResolveFederatedUser maps an external profile onto exactly one user.
	ResolveFederatedUser(ctx context.Context, profile *oauth.Profile) (*authdomain.User, error)
	IssueToken(user *authdomain.User) (string, error)
}
