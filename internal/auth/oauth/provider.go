// Package oauth talks to external identity providers over the
// authorization-code flow and normalises what they return into a Profile.
package oauth

import (
	"context"

	authdomain "estate-backend/internal/auth/domain"
	"estate-backend/pkg/config"
)

// Profile is the provider-neutral view of an external account.
// Email is empty when the provider did not release a verified address.
type Profile struct {
	Provider    authdomain.Provider
	ProviderID  string
	Email       string
	DisplayName string
	AvatarURL   string
}

// Provider is one external login provider.
type Provider interface {
	Name() authdomain.Provider
	// AuthCodeURL is the consent screen URL carrying state.
	AuthCodeURL(state string) string
	// FetchProfile exchanges an authorization code and reads the profile.
	FetchProfile(ctx context.Context, code string) (*Profile, error)
}

// Registry holds the providers enabled for this process.
type Registry struct {
	providers map[authdomain.Provider]Provider
	order     []authdomain.Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[authdomain.Provider]Provider)}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// NewRegistryFromConfig enables every provider that has client credentials.
func NewRegistryFromConfig(cfg *config.Config) *Registry {
	r := NewRegistry()
	if cfg.Google.Enabled() {
		r.Register(NewGoogle(cfg.Google))
	}
	if cfg.Facebook.Enabled() {
		r.Register(NewFacebook(cfg.Facebook))
	}
	return r
}

func (r *Registry) Register(p Provider) {
	if _, exists := r.providers[p.Name()]; !exists {
		r.order = append(r.order, p.Name())
	}
	r.providers[p.Name()] = p
}

func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[authdomain.Provider(name)]
	return p, ok
}

// Names lists enabled providers in registration order.
func (r *Registry) Names() []authdomain.Provider {
	out := make([]authdomain.Provider, len(r.order))
	copy(out, r.order)
	return out
}
