package usecase

import (
	"context"
	"log/slog"
	"strings"

	authdomain "estate-backend/internal/auth/domain"
	"estate-backend/internal/property/domain"
	"estate-backend/internal/property/dto"
	"estate-backend/internal/property/repository"
)

// Roles allowed to publish a listing.
var listerRoles = []authdomain.Role{authdomain.RoleOwner, authdomain.RoleAgent, authdomain.RoleAdmin}

type propertyUsecase struct {
	propertyRepo repository.PropertyRepository
	users        UserFinder
	log          *slog.Logger
}

func NewPropertyUsecase(propertyRepo repository.PropertyRepository, users UserFinder, log *slog.Logger) PropertyUsecase {
	return &propertyUsecase{
		propertyRepo: propertyRepo,
		users:        users,
		log:          log,
	}
}

func (u *propertyUsecase) Create(ctx context.Context, actor *authdomain.User, req *dto.CreatePropertyRequest) (*domain.Property, error) {
	if !authdomain.HasRole(authdomain.SubjectOf(actor), listerRoles...) {
		return nil, authdomain.ErrRoleNotAllowed
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, authdomain.ErrMissingFields
	}

	property := &domain.Property{
		OwnerID:     actor.ID,
		Title:       title,
		Description: req.Description,
		Price:       req.Price,
		ListingType: parseListingType(req.ListingType),
		Status:      domain.StatusAvailable,
		Address:     req.Address,
		City:        req.City,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaSqm:     req.AreaSqm,
	}
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		property.Status = req.Status
	}

	if err := u.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}
	u.log.InfoContext(ctx, "property created", "property_id", property.ID, "owner_id", actor.ID)
	return property, nil
}

func (u *propertyUsecase) Get(ctx context.Context, id string) (*domain.Property, error) {
	property, err := u.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, domain.ErrPropertyNotFound
	}
	return property, nil
}

func (u *propertyUsecase) ListMine(ctx context.Context, actor *authdomain.User, limit, offset int) ([]*domain.Property, int64, error) {
	return u.propertyRepo.FindByUser(ctx, actor.ID, limit, offset)
}

// authorized loads the property and applies the owner/delegate/admin check.
func (u *propertyUsecase) authorized(ctx context.Context, actor *authdomain.User, id string) (*domain.Property, error) {
	property, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authdomain.Authorize(authdomain.SubjectOf(actor), property.Resource()); err != nil {
		return nil, err
	}
	return property, nil
}

func (u *propertyUsecase) Update(ctx context.Context, actor *authdomain.User, id string, req *dto.UpdatePropertyRequest) (*domain.Property, error) {
	property, err := u.authorized(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, authdomain.ErrMissingFields
		}
		property.Title = title
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.Price != nil {
		property.Price = *req.Price
	}
	if req.ListingType != nil {
		property.ListingType = parseListingType(*req.ListingType)
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		property.Status = *req.Status
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.City != nil {
		property.City = *req.City
	}
	if req.Bedrooms != nil {
		property.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		property.Bathrooms = *req.Bathrooms
	}
	if req.AreaSqm != nil {
		property.AreaSqm = *req.AreaSqm
	}

	if err := u.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (u *propertyUsecase) Delete(ctx context.Context, actor *authdomain.User, id string) error {
	property, err := u.authorized(ctx, actor, id)
	if err != nil {
		return err
	}
	deleted, err := u.propertyRepo.Delete(ctx, property.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrPropertyNotFound
	}
	u.log.InfoContext(ctx, "property deleted", "property_id", property.ID, "by", actor.ID)
	return nil
}

func (u *propertyUsecase) AssignAgent(ctx context.Context, actor *authdomain.User, id string, agentID *string) (*domain.Property, error) {
	property, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// Owner or admin only; the current agent has no say.
	if err := authdomain.Authorize(authdomain.SubjectOf(actor), authdomain.Resource{OwnerID: property.OwnerID}); err != nil {
		return nil, err
	}

	if agentID != nil && *agentID == "" {
		agentID = nil
	}
	if agentID != nil {
		agent, err := u.users.FindByID(ctx, *agentID)
		if err != nil {
			return nil, err
		}
		if agent == nil || agent.Role != authdomain.RoleAgent {
			return nil, domain.ErrInvalidAgent
		}
	}

	ok, err := u.propertyRepo.SetAgent(ctx, property.ID, agentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	property.AgentID = agentID
	return property, nil
}

func parseListingType(t domain.ListingType) domain.ListingType {
	if t == domain.ListingRent {
		return domain.ListingRent
	}
	return domain.ListingSale
}
