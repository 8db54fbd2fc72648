package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	authdomain "estate-backend/internal/auth/domain"
	"estate-backend/pkg/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
)

const facebookGraphURL = "https://graph.facebook.com/v19.0/me"

type facebookProvider struct {
	config   *oauth2.Config
	graphURL string
}

// NewFacebook builds the Facebook provider with the public_profile and email scopes.
func NewFacebook(pc config.ProviderConfig) Provider {
	return &facebookProvider{
		config: &oauth2.Config{
			ClientID:     pc.ClientID,
			ClientSecret: pc.ClientSecret,
			RedirectURL:  pc.RedirectURI,
			Endpoint:     facebook.Endpoint,
			Scopes:       []string{"public_profile", "email"},
		},
		graphURL: facebookGraphURL,
	}
}

func (f *facebookProvider) Name() authdomain.Provider {
	return authdomain.ProviderFacebook
}

func (f *facebookProvider) AuthCodeURL(state string) string {
	return f.config.AuthCodeURL(state)
}

type facebookMe struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (f *facebookProvider) FetchProfile(ctx context.Context, code string) (*Profile, error) {
	tok, err := f.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("facebook: exchange code: %w", err)
	}

	q := url.Values{"fields": {"id,name,email,picture.type(large)"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.graphURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.config.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, fmt.Errorf("facebook: graph request: %w", err)
	}
	defer resp.Body.Close()

	var me facebookMe
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return nil, fmt.Errorf("facebook: decode profile: %w", err)
	}
	if resp.StatusCode != http.StatusOK || me.Error != nil {
		msg := resp.Status
		if me.Error != nil {
			msg = me.Error.Message
		}
		return nil, fmt.Errorf("facebook: graph error: %s", msg)
	}
	if me.ID == "" {
		return nil, fmt.Errorf("facebook: profile without id")
	}

	// Facebook only returns email when it is confirmed on the account.
	return &Profile{
		Provider:    authdomain.ProviderFacebook,
		ProviderID:  me.ID,
		Email:       me.Email,
		DisplayName: me.Name,
		AvatarURL:   me.Picture.Data.URL,
	}, nil
}
