package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	authdomain "estate-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultListLimit = 50

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository.
// The db must be opened with TranslateError so unique violations surface
// as gorm.ErrDuplicatedKey.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", authdomain.ErrStoreUnavailable, err)
}

func providerColumn(p authdomain.Provider) (string, error) {
	switch p {
	case authdomain.ProviderGoogle:
		return "google_id", nil
	case authdomain.ProviderFacebook:
		return "facebook_id", nil
	}
	return "", fmt.Errorf("%w: %q", authdomain.ErrUnknownProvider, p)
}

func prepareInsert(user *authdomain.User) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Email = authdomain.NormalizeEmail(user.Email)
	if user.Role == "" {
		user.Role = authdomain.RoleBuyer
	}
}

func (r *userRepository) Create(ctx context.Context, user *authdomain.User) error {
	prepareInsert(user)
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return authdomain.ErrEmailAlreadyRegistered
		}
		return storeErr(err)
	}
	return nil
}

func (r *userRepository) CreateIfAbsent(ctx context.Context, user *authdomain.User) (bool, error) {
	prepareInsert(user)
	// INSERT ... ON CONFLICT DO NOTHING
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, storeErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepository) first(ctx context.Context, query string, args ...interface{}) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*authdomain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	return r.first(ctx, "email = ?", authdomain.NormalizeEmail(email))
}

func (r *userRepository) FindByProviderID(ctx context.Context, provider authdomain.Provider, providerID string) (*authdomain.User, error) {
	col, err := providerColumn(provider)
	if err != nil {
		return nil, err
	}
	return r.first(ctx, col+" = ?", providerID)
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]*authdomain.User, int64, error) {
	var users []*authdomain.User
	var total int64

	query := r.db.WithContext(ctx).Model(&authdomain.User{})
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storeErr(err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(filter.Offset).Find(&users).Error; err != nil {
		return nil, 0, storeErr(err)
	}
	return users, total, nil
}

func (r *userRepository) LinkProvider(ctx context.Context, email string, provider authdomain.Provider, providerID string) (bool, error) {
	col, err := providerColumn(provider)
	if err != nil {
		return false, err
	}
	res := r.db.WithContext(ctx).Model(&authdomain.User{}).
		Where("email = ? AND "+col+" IS NULL", authdomain.NormalizeEmail(email)).
		Updates(map[string]interface{}{
			col:          providerID,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		// Another account already holds this provider id.
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, storeErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&authdomain.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return authdomain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) SetPasswordIfEmpty(ctx context.Context, id, passwordHash string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&authdomain.User{}).
		Where("id = ? AND password_hash = ?", id, "").
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id string, role authdomain.Role) (bool, error) {
	if !role.Valid() {
		return false, authdomain.ErrInvalidRole
	}
	res := r.db.WithContext(ctx).Model(&authdomain.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"role":       role,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) error {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.AvatarURL != nil {
		fields["avatar_url"] = *update.AvatarURL
	}
	if update.Phone != nil {
		fields["phone"] = *update.Phone
	}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}
	if a := update.Address; a != nil {
		fields["address_street"] = a.Street
		fields["address_city"] = a.City
		fields["address_state"] = a.State
		fields["address_zip_code"] = a.ZipCode
		fields["address_country"] = a.Country
	}
	if p := update.Preferences; p != nil {
		fields["pref_email_notifications"] = p.EmailNotifications
		fields["pref_newsletter"] = p.Newsletter
		fields["pref_currency"] = p.Currency
	}
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&authdomain.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return authdomain.ErrUserNotFound
	}
	return nil
}

// ToggleFavorite removes the membership row if present, otherwise inserts it.
// Each statement is atomic on its own, so two concurrent toggles can never
// leave a duplicate row behind.
func (r *userRepository) ToggleFavorite(ctx context.Context, userID, propertyID string) (bool, error) {
	db := r.db.WithContext(ctx)

	res := db.Where("user_id = ? AND property_id = ?", userID, propertyID).Delete(&authdomain.UserFavorite{})
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	fav := &authdomain.UserFavorite{
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(fav).Error; err != nil {
		return false, storeErr(err)
	}
	return true, nil
}

func (r *userRepository) ListFavorites(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&authdomain.UserFavorite{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("property_id", &ids).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return ids, nil
}
