package usecase

import (
	"context"

	authdomain "estate-backend/internal/auth/domain"
	"estate-backend/internal/user/dto"
)

// UserUsecase covers self-service profile state and admin user management.
type UserUsecase interface {
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*authdomain.User, error)

	// ToggleFavorite flips membership of propertyID and returns the new state.
	ToggleFavorite(ctx context.Context, userID, propertyID string) (bool, error)
	ListFavorites(ctx context.Context, userID string) ([]string, error)

	ListUsers(ctx context.Context, role string, limit, offset int) ([]*authdomain.User, int64, error)
	// ChangeRole is the only path that mutates a role; actor must be an admin.
	ChangeRole(ctx context.Context, actor *authdomain.User, targetID, role string) (*authdomain.User, error)
}

// PropertyChecker confirms that a favorited property exists.
type PropertyChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}
