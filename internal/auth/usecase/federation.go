package usecase

import (
	"context"
	"fmt"
	"strings"

	authdomain "estate-backend/internal/auth/domain"
	"estate-backend/internal/auth/oauth"
)

// Each failed attempt means a concurrent callback wrote first; the next
// attempt finds its row.
const maxResolveAttempts = 3

// ResolveFederatedUser settles a provider profile onto one user:
// an account already linked to the provider id wins, then an account with
// the same email gets the id attached, otherwise a new buyer is created.
// Writes are conditional (link only an unlinked row, insert only if no
// unique key exists), so concurrent first logins converge on one record.
func (u *authUsecase) ResolveFederatedUser(ctx context.Context, profile *oauth.Profile) (*authdomain.User, error) {
	if profile == nil || profile.ProviderID == "" || profile.Provider == "" {
		return nil, authdomain.ErrMissingFields
	}
	email := authdomain.NormalizeEmail(profile.Email)

	for attempt := 0; attempt < maxResolveAttempts; attempt++ {
		user, err := u.userRepo.FindByProviderID(ctx, profile.Provider, profile.ProviderID)
		if err != nil {
			return nil, err
		}
		if user != nil {
			return user.Sanitized(), nil
		}

		if email != "" {
			linked, err := u.userRepo.LinkProvider(ctx, email, profile.Provider, profile.ProviderID)
			if err != nil {
				return nil, err
			}
			if linked {
				user, err := u.userRepo.FindByProviderID(ctx, profile.Provider, profile.ProviderID)
				if err != nil {
					return nil, err
				}
				if user != nil {
					u.log.InfoContext(ctx, "provider linked to existing account",
						"user_id", user.ID, "provider", profile.Provider)
					return user.Sanitized(), nil
				}
				continue
			}

			existing, err := u.userRepo.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				if linkedID := existing.ProviderID(profile.Provider); linkedID != "" && linkedID != profile.ProviderID {
					// The account is already bound to another id of this
					// provider; keep that link and sign in as the account.
					u.log.WarnContext(ctx, "email matches account linked to a different provider id",
						"user_id", existing.ID, "provider", profile.Provider)
					return existing.Sanitized(), nil
				}
				continue
			}
		}

		user = newFederatedUser(profile, email)
		created, err := u.userRepo.CreateIfAbsent(ctx, user)
		if err != nil {
			return nil, err
		}
		if created {
			u.log.InfoContext(ctx, "user created from provider",
				"user_id", user.ID, "provider", profile.Provider)
			return user.Sanitized(), nil
		}
	}

	return nil, authdomain.ErrFederationConflict
}

func newFederatedUser(profile *oauth.Profile, email string) *authdomain.User {
	if email == "" {
		email = PlaceholderEmail(profile.Provider, profile.ProviderID)
	}
	name := strings.TrimSpace(profile.DisplayName)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	user := &authdomain.User{
		Name:        name,
		Email:       email,
		Role:        authdomain.RoleBuyer,
		AvatarURL:   profile.AvatarURL,
		Preferences: authdomain.DefaultPreferences(),
	}
	user.SetProviderID(profile.Provider, profile.ProviderID)
	return user
}

// PlaceholderEmail is the synthetic address given to provider accounts that
// did not share an email.
func PlaceholderEmail(provider authdomain.Provider, providerID string) string {
	return authdomain.NormalizeEmail(fmt.Sprintf("%s@%s.local", providerID, provider))
}
