package dto

import authdomain "estate-backend/internal/auth/domain"

// UpdateProfileRequest lists every field a user may change about themselves.
// Unknown keys such as role or password are ignored by the binder.
type UpdateProfileRequest struct {
	Name        *string                 `json:"name,omitempty"`
	AvatarURL   *string                 `json:"avatar_url,omitempty" binding:"omitempty,url"`
	Phone       *string                 `json:"phone,omitempty"`
	Bio         *string                 `json:"bio,omitempty" binding:"omitempty,max=2000"`
	Address     *authdomain.Address     `json:"address,omitempty"`
	Preferences *authdomain.Preferences `json:"preferences,omitempty"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type FavoriteResponse struct {
	Success    bool     `json:"success"`
	PropertyID string   `json:"property_id"`
	Favorited  bool     `json:"favorited"`
	Favorites  []string `json:"favorites"`
}

type UsersResponse struct {
	Success bool               `json:"success"`
	Users   []*authdomain.User `json:"users"`
	Total   int64              `json:"total"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
}
