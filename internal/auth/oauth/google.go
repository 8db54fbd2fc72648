package oauth

import (
	"context"
	"fmt"

	authdomain "estate-backend/internal/auth/domain"
	"estate-backend/pkg/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

type googleProvider struct {
	config *oauth2.Config
	opts   []option.ClientOption
}

// NewGoogle builds the Google provider with the profile and email scopes.
func NewGoogle(pc config.ProviderConfig) Provider {
	return &googleProvider{
		config: &oauth2.Config{
			ClientID:     pc.ClientID,
			ClientSecret: pc.ClientSecret,
			RedirectURL:  pc.RedirectURI,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"profile", "email"},
		},
	}
}

func (g *googleProvider) Name() authdomain.Provider {
	return authdomain.ProviderGoogle
}

func (g *googleProvider) AuthCodeURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

func (g *googleProvider) FetchProfile(ctx context.Context, code string) (*Profile, error) {
	tok, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google: exchange code: %w", err)
	}

	opts := append([]option.ClientOption{option.WithTokenSource(g.config.TokenSource(ctx, tok))}, g.opts...)
	svc, err := googleoauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google: userinfo client: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("google: userinfo: %w", err)
	}
	if info.Id == "" {
		return nil, fmt.Errorf("google: userinfo without id")
	}

	profile := &Profile{
		Provider:    authdomain.ProviderGoogle,
		ProviderID:  info.Id,
		DisplayName: info.Name,
		AvatarURL:   info.Picture,
	}
	// Only a verified address may be used to link to an existing account.
	if info.VerifiedEmail != nil && *info.VerifiedEmail {
		profile.Email = info.Email
	}
	return profile, nil
}
