package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMatchPassword_NoHashNeverMatches(t *testing.T) {
	u := &User{ID: "1", Email: "p@google.local"}
	for _, candidate := range []string{"", "password", " ", "\x00"} {
		assert.False(t, u.MatchPassword(candidate), "candidate %q", candidate)
	}

	var nilUser *User
	assert.False(t, nilUser.MatchPassword("x"))
}

func TestMatchPassword(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	u := &User{PasswordHash: hash}
	assert.True(t, u.MatchPassword("secret1"))
	assert.False(t, u.MatchPassword("secret2"))
	assert.False(t, u.MatchPassword(""))
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	hash, err := HashPassword("pw", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleBuyer, r)

	r, err = ParseRole(" Agent ")
	require.NoError(t, err)
	assert.Equal(t, RoleAgent, r)

	_, err = ParseRole("superuser")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestProviderID(t *testing.T) {
	u := &User{}
	assert.Equal(t, "", u.ProviderID(ProviderGoogle))

	u.SetProviderID(ProviderGoogle, "g1")
	u.SetProviderID(ProviderFacebook, "f1")
	assert.Equal(t, "g1", u.ProviderID(ProviderGoogle))
	assert.Equal(t, "f1", u.ProviderID(ProviderFacebook))
	assert.Equal(t, "", u.ProviderID(Provider("github")))
}

func TestSanitized(t *testing.T) {
	u := &User{ID: "1", PasswordHash: "hash"}
	s := u.Sanitized()

	assert.Empty(t, s.PasswordHash)
	assert.NotNil(t, s.Favorites)
	assert.Equal(t, "hash", u.PasswordHash, "original untouched")
}

func TestIsReservedEmail(t *testing.T) {
	assert.True(t, IsReservedEmail("g123@google.local"))
	assert.True(t, IsReservedEmail(" 77@FACEBOOK.local "))
	assert.False(t, IsReservedEmail("ann@example.com"))
	assert.False(t, IsReservedEmail("ann@office.local"))
	assert.False(t, IsReservedEmail("google.local@example.com"))
}
