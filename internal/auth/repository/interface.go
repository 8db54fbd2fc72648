package repository

import (
	"context"

	authdomain "estate-backend/internal/auth/domain"
)

// UserFilter narrows List queries.
type UserFilter struct {
	Role   authdomain.Role
	Limit  int
	Offset int
}

// ProfileUpdate carries the self-service profile fields. Role, email,
// password and provider links are deliberately absent.
type ProfileUpdate struct {
	Name        *string
	AvatarURL   *string
	Phone       *string
	Bio         *string
	Address     *authdomain.Address
	Preferences *authdomain.Preferences
}

// UserRepository defines the interface of the identity store.
// Finders return (nil, nil) when no record matches.
type UserRepository interface {
	Create(ctx context.Context, user *authdomain.User) error
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	FindByProviderID(ctx context.Context, provider authdomain.Provider, providerID string) (*authdomain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*authdomain.User, int64, error)

	// CreateIfAbsent inserts user unless a unique key (email or a provider
	// id) already exists; it reports whether the row was inserted.
	CreateIfAbsent(ctx context.Context, user *authdomain.User) (bool, error)
	// LinkProvider attaches providerID to the user with email, only when that
	// user has no id for provider yet. It reports whether a row changed.
	LinkProvider(ctx context.Context, email string, provider authdomain.Provider, providerID string) (bool, error)

	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetPasswordIfEmpty stores passwordHash only for accounts without one.
	SetPasswordIfEmpty(ctx context.Context, id, passwordHash string) (bool, error)
	UpdateRole(ctx context.Context, id string, role authdomain.Role) (bool, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) error

	// ToggleFavorite flips membership of propertyID and returns the new state.
	ToggleFavorite(ctx context.Context, userID, propertyID string) (bool, error)
	ListFavorites(ctx context.Context, userID string) ([]string, error)
}
