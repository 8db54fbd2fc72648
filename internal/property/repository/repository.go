package repository

import (
	"context"

	"estate-backend/internal/property/domain"
)

// PropertyRepository defines the interface for listing data access.
// Finders return (nil, nil) when no record matches.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	Exists(ctx context.Context, id string) (bool, error)

	// FindByUser lists properties the user owns or is assigned to as agent.
	FindByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Property, int64, error)

	// Update writes the editable listing fields. Owner and agent are untouched.
	Update(ctx context.Context, property *domain.Property) error
	// SetAgent assigns or clears (agentID nil) the delegate of a property.
	SetAgent(ctx context.Context, id string, agentID *string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
