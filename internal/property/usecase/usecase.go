package usecase

import (
	"context"

	authdomain "estate-backend/internal/auth/domain"
	"estate-backend/internal/property/domain"
	"estate-backend/internal/property/dto"
)

// PropertyUsecase defines the listing operations. Every mutation is gated
// by the ownership policy in authdomain.
type PropertyUsecase interface {
	Create(ctx context.Context, actor *authdomain.User, req *dto.CreatePropertyRequest) (*domain.Property, error)
	Get(ctx context.Context, id string) (*domain.Property, error)
	ListMine(ctx context.Context, actor *authdomain.User, limit, offset int) ([]*domain.Property, int64, error)
	Update(ctx context.Context, actor *authdomain.User, id string, req *dto.UpdatePropertyRequest) (*domain.Property, error)
	Delete(ctx context.Context, actor *authdomain.User, id string) error

	// AssignAgent is reserved to the owner and admins; the current agent
	// cannot reassign itself away or hand the listing to someone else.
	AssignAgent(ctx context.Context, actor *authdomain.User, id string, agentID *string) (*domain.Property, error)
}

// UserFinder resolves the user being assigned as agent.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
}
