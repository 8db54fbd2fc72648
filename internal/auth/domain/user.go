package domain

import (
	"strings"
	"time"
)

// Role is the access level of a user. Every user holds exactly one.
type Role string

const (
	RoleBuyer Role = "buyer"
	RoleOwner Role = "owner"
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleOwner, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// ParseRole maps an input string to a Role. An empty input yields RoleBuyer.
func ParseRole(s string) (Role, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleBuyer, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Provider names an external identity provider.
type Provider string

const (
	ProviderGoogle   Provider = "google"
	ProviderFacebook Provider = "facebook"
)

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
	Country string `json:"country,omitempty"`
}

type Preferences struct {
	EmailNotifications bool   `json:"email_notifications"`
	Newsletter         bool   `json:"newsletter"`
	Currency           string `json:"currency,omitempty"`
}

// DefaultPreferences are applied to every newly created account.
func DefaultPreferences() Preferences {
	return Preferences{EmailNotifications: true, Currency: "USD"}
}

type User struct {
	ID           string      `json:"id" gorm:"primaryKey;size:36"`
	Name         string      `json:"name" gorm:"not null"`
	Email        string      `json:"email" gorm:"uniqueIndex;not null;size:320"`
	PasswordHash string      `json:"-" gorm:"not null;default:''"` // Never return password in JSON
	Role         Role        `json:"role" gorm:"not null;default:'buyer';size:16"`
	GoogleID     *string     `json:"google_id,omitempty" gorm:"uniqueIndex"`
	FacebookID   *string     `json:"facebook_id,omitempty" gorm:"uniqueIndex"`
	AvatarURL    string      `json:"avatar_url,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Bio          string      `json:"bio,omitempty"`
	Address      Address     `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Preferences  Preferences `json:"preferences" gorm:"embedded;embeddedPrefix:pref_"`
	Favorites    []string    `json:"favorites" gorm:"-"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// HasPassword reports whether the account can log in with a local password.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// ProviderID returns the linked id for provider, or "" when not linked.
func (u *User) ProviderID(p Provider) string {
	var id *string
	switch p {
	case ProviderGoogle:
		id = u.GoogleID
	case ProviderFacebook:
		id = u.FacebookID
	}
	if id == nil {
		return ""
	}
	return *id
}

// SetProviderID records the provider id on the in-memory record.
func (u *User) SetProviderID(p Provider, id string) {
	switch p {
	case ProviderGoogle:
		u.GoogleID = &id
	case ProviderFacebook:
		u.FacebookID = &id
	}
}

// Sanitized returns a copy safe to hand to handlers and serializers.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.PasswordHash = ""
	if c.Favorites == nil {
		c.Favorites = []string{}
	}
	return &c
}

// UserFavorite is one membership row of a user's favorites set.
type UserFavorite struct {
	UserID     string `gorm:"primaryKey;size:36"`
	PropertyID string `gorm:"primaryKey;size:36"`
	CreatedAt  time.Time
}

// IsReservedEmail reports whether email sits on a placeholder domain handed
// out to provider accounts that shared no address, e.g. "x@google.local".
func IsReservedEmail(email string) bool {
	email = NormalizeEmail(email)
	for _, p := range []Provider{ProviderGoogle, ProviderFacebook} {
		if strings.HasSuffix(email, "@"+string(p)+".local") {
			return true
		}
	}
	return false
}

// NormalizeEmail lower-cases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
