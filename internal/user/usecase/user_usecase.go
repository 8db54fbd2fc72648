package usecase

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	authdomain "estate-backend/internal/auth/domain"
	"estate-backend/internal/auth/repository"
	propertydomain "estate-backend/internal/property/domain"
	"estate-backend/internal/user/dto"
)

type userUsecase struct {
	userRepo   repository.UserRepository
	properties PropertyChecker
	log        *slog.Logger
}

// NewUserUsecase creates a user usecase. properties may be nil, in which
// case favorites accept any property id.
func NewUserUsecase(userRepo repository.UserRepository, properties PropertyChecker, log *slog.Logger) UserUsecase {
	return &userUsecase{
		userRepo:   userRepo,
		properties: properties,
		log:        log,
	}
}

func (u *userUsecase) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*authdomain.User, error) {
	update := repository.ProfileUpdate{
		AvatarURL:   req.AvatarURL,
		Phone:       req.Phone,
		Bio:         req.Bio,
		Address:     req.Address,
		Preferences: req.Preferences,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, authdomain.ErrMissingFields
		}
		update.Name = &name
	}

	if err := u.userRepo.UpdateProfile(ctx, userID, update); err != nil {
		return nil, err
	}
	return u.load(ctx, userID)
}

func (u *userUsecase) ToggleFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	propertyID = strings.TrimSpace(propertyID)
	if propertyID == "" {
		return false, authdomain.ErrMissingFields
	}
	if u.properties != nil {
		exists, err := u.properties.Exists(ctx, propertyID)
		if err != nil {
			return false, err
		}
		if !exists {
			// Allow removing a favorite whose listing has since been deleted.
			favorites, err := u.userRepo.ListFavorites(ctx, userID)
			if err != nil {
				return false, err
			}
			if !slices.Contains(favorites, propertyID) {
				return false, propertydomain.ErrPropertyNotFound
			}
		}
	}
	return u.userRepo.ToggleFavorite(ctx, userID, propertyID)
}

func (u *userUsecase) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	return u.userRepo.ListFavorites(ctx, userID)
}

func (u *userUsecase) ListUsers(ctx context.Context, role string, limit, offset int) ([]*authdomain.User, int64, error) {
	filter := repository.UserFilter{Limit: limit, Offset: offset}
	if role != "" {
		r, err := authdomain.ParseRole(role)
		if err != nil {
			return nil, 0, err
		}
		filter.Role = r
	}

	users, total, err := u.userRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]*authdomain.User, len(users))
	for i, user := range users {
		out[i] = user.Sanitized()
	}
	return out, total, nil
}

func (u *userUsecase) ChangeRole(ctx context.Context, actor *authdomain.User, targetID, role string) (*authdomain.User, error) {
	if !authdomain.HasRole(authdomain.SubjectOf(actor), authdomain.RoleAdmin) {
		return nil, authdomain.ErrRoleNotAllowed
	}
	if strings.TrimSpace(role) == "" {
		return nil, authdomain.ErrInvalidRole
	}
	newRole, err := authdomain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	ok, err := u.userRepo.UpdateRole(ctx, targetID, newRole)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, authdomain.ErrUserNotFound
	}

	u.log.InfoContext(ctx, "role changed", "user_id", targetID, "role", newRole, "by", actor.ID)
	return u.load(ctx, targetID)
}

func (u *userUsecase) load(ctx context.Context, userID string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}
	favorites, err := u.userRepo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Favorites = favorites
	return user.Sanitized(), nil
}
