package dto

import "estate-backend/internal/property/domain"

type CreatePropertyRequest struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	Price       float64            `json:"price" binding:"gte=0"`
	ListingType domain.ListingType `json:"listing_type"`
	Status      domain.Status      `json:"status"`
	Address     string             `json:"address"`
	City        string             `json:"city"`
	Bedrooms    int                `json:"bedrooms" binding:"gte=0"`
	Bathrooms   int                `json:"bathrooms" binding:"gte=0"`
	AreaSqm     float64            `json:"area_sqm" binding:"gte=0"`
}

// UpdatePropertyRequest carries only the fields being changed.
type UpdatePropertyRequest struct {
	Title       *string             `json:"title,omitempty"`
	Description *string             `json:"description,omitempty"`
	Price       *float64            `json:"price,omitempty" binding:"omitempty,gte=0"`
	ListingType *domain.ListingType `json:"listing_type,omitempty"`
	Status      *domain.Status      `json:"status,omitempty"`
	Address     *string             `json:"address,omitempty"`
	City        *string             `json:"city,omitempty"`
	Bedrooms    *int                `json:"bedrooms,omitempty" binding:"omitempty,gte=0"`
	Bathrooms   *int                `json:"bathrooms,omitempty" binding:"omitempty,gte=0"`
	AreaSqm     *float64            `json:"area_sqm,omitempty" binding:"omitempty,gte=0"`
}

// AssignAgentRequest sets the delegate of a property; a null agent_id clears it.
type AssignAgentRequest struct {
	AgentID *string `json:"agent_id"`
}

type PropertiesResponse struct {
	Success    bool               `json:"success"`
	Properties []*domain.Property `json:"properties"`
	Total      int64              `json:"total"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}
