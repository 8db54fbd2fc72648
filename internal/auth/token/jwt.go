// Package token issues and verifies the stateless bearer tokens that carry a
// caller's identity between requests.
package token

import (
	"errors"
	"fmt"
	"time"

	authdomain "estate-backend/internal/auth/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the validity window of an access token.
const DefaultTTL = 30 * 24 * time.Hour

const (
	accessAudience = "access"
	stateAudience  = "oauth-state"
	stateTTL       = 10 * time.Minute
)

// Claims is the payload of an access token. The role is captured at issuance
// and is not refreshed until the user logs in again.
type Claims struct {
	SubjectID string          `json:"subjectId"`
	Email     string          `json:"email"`
	Role      authdomain.Role `json:"role"`
	Name      string          `json:"name"`
	jwt.RegisteredClaims
}

type stateClaims struct {
	Provider string `json:"provider"`
	Nonce    string `json:"nonce"`
	jwt.RegisteredClaims
}

// Service signs tokens with a process-wide HMAC secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService constructs a token service. A non-positive ttl selects DefaultTTL.
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the access token validity window.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed access token for user.
func (s *Service) Issue(user *authdomain.User) (string, error) {
	if user == nil || user.ID == "" {
		return "", errors.New("token: user without id")
	}
	now := s.now().UTC()
	claims := Claims{
		SubjectID: user.ID,
		Email:     user.Email,
		Role:      user.Role,
		Name:      user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Audience:  jwt.ClaimStrings{accessAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature, structure and expiry of an access token.
// It never touches the identity store.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, authdomain.ErrNoToken
	}

	claims := &Claims{}
	if err := s.parse(tokenString, claims, accessAudience); err != nil {
		return nil, err
	}
	if claims.SubjectID == "" || claims.SubjectID != claims.Subject {
		return nil, authdomain.ErrInvalidToken
	}
	return claims, nil
}

// IssueState signs the OAuth state parameter for provider, bound to nonce.
func (s *Service) IssueState(provider, nonce string) (string, error) {
	now := s.now().UTC()
	claims := stateClaims{
		Provider: provider,
		Nonce:    nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{stateAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyState checks that state was issued by IssueState for the same
// provider and nonce and has not expired.
func (s *Service) VerifyState(state, provider, nonce string) error {
	if state == "" || nonce == "" {
		return authdomain.ErrInvalidToken
	}
	claims := &stateClaims{}
	if err := s.parse(state, claims, stateAudience); err != nil {
		return err
	}
	if claims.Provider != provider || claims.Nonce != nonce {
		return authdomain.ErrInvalidToken
	}
	return nil
}

func (s *Service) parse(tokenString string, claims jwt.Claims, audience string) error {
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return authdomain.ErrExpiredToken
		}
		return fmt.Errorf("%w: %v", authdomain.ErrInvalidToken, err)
	}
	return nil
}
