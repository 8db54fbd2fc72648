package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	authdomain "estate-backend/internal/auth/domain"
	"estate-backend/internal/property/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultListLimit = 50

var editableColumns = []string{
	"title", "description", "price", "listing_type", "status",
	"address", "city", "bedrooms", "bathrooms", "area_sqm", "updated_at",
}

// gormPropertyRepository implements PropertyRepository using GORM
type gormPropertyRepository struct {
	db *gorm.DB
}

func NewGormPropertyRepository(db *gorm.DB) PropertyRepository {
	return &gormPropertyRepository{db: db}
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", authdomain.ErrStoreUnavailable, err)
}

func (r *gormPropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(property).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *gormPropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	var property domain.Property
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, storeErr(err)
	}
	return &property, nil
}

func (r *gormPropertyRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Property{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}

func (r *gormPropertyRepository) FindByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Property, int64, error) {
	var properties []*domain.Property
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Property{}).
		Where("owner_id = ? OR agent_id = ?", userID, userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, storeErr(err)
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&properties).Error; err != nil {
		return nil, 0, storeErr(err)
	}
	return properties, total, nil
}

func (r *gormPropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	property.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(property).Select(editableColumns).Updates(property)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *gormPropertyRepository) SetAgent(ctx context.Context, id string, agentID *string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Property{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"agent_id":   agentID,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *gormPropertyRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Property{}, "id = ?", id)
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected == 1, nil
}
