package domain

import (
	"errors"
	"time"

	authdomain "estate-backend/internal/auth/domain"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrInvalidStatus    = errors.New("invalid property status")
	ErrInvalidAgent     = errors.New("assigned user is not an agent")
)

// Status is the availability of a listing.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
	StatusRented    Status = "rented"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusPending, StatusSold, StatusRented:
		return true
	}
	return false
}

// ListingType says whether a property is offered for sale or rent.
type ListingType string

const (
	ListingSale ListingType = "sale"
	ListingRent ListingType = "rent"
)

// Property is a listing owned by one user and optionally managed by an agent.
type Property struct {
	ID          string      `json:"id" gorm:"primaryKey;size:36"`
	OwnerID     string      `json:"owner_id" gorm:"index;not null;size:36"`
	AgentID     *string     `json:"agent_id,omitempty" gorm:"index;size:36"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description,omitempty"`
	Price       float64     `json:"price"`
	ListingType ListingType `json:"listing_type" gorm:"size:8;default:'sale'"`
	Status      Status      `json:"status" gorm:"size:16;default:'available'"`
	Address     string      `json:"address,omitempty"`
	City        string      `json:"city,omitempty"`
	Bedrooms    int         `json:"bedrooms"`
	Bathrooms   int         `json:"bathrooms"`
	AreaSqm     float64     `json:"area_sqm"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Resource is the ownership descriptor used by authorization checks.
func (p *Property) Resource() authdomain.Resource {
	r := authdomain.Resource{OwnerID: p.OwnerID}
	if p.AgentID != nil {
		r.DelegateID = *p.AgentID
	}
	return r
}
