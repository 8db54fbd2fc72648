package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	authdomain "estate-backend/internal/auth/domain"
	"estate-backend/internal/auth/repository"
	propertydomain "estate-backend/internal/property/domain"
	propertyrepo "estate-backend/internal/property/repository"
	"estate-backend/internal/testutil"
	"estate-backend/internal/user/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	users      repository.UserRepository
	properties propertyrepo.PropertyRepository
	uc         UserUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t, &authdomain.User{}, &authdomain.UserFavorite{}, &propertydomain.Property{})
	users := repository.NewUserRepository(db)
	properties := propertyrepo.NewGormPropertyRepository(db)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{users: users, properties: properties, uc: NewUserUsecase(users, properties, log)}
}

func (f *fixture) user(t *testing.T, email string, role authdomain.Role) *authdomain.User {
	t.Helper()
	u := &authdomain.User{Name: "U", Email: email, Role: role, PasswordHash: "hash", Preferences: authdomain.DefaultPreferences()}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) property(t *testing.T, ownerID string) string {
	t.Helper()
	p := &propertydomain.Property{OwnerID: ownerID, Title: "Flat"}
	require.NoError(t, f.properties.Create(context.Background(), p))
	return p.ID
}

func strPtr(s string) *string { return &s }

func TestToggleFavorite_TwiceRestoresMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "fav@example.com", authdomain.RoleBuyer)
	pid := f.property(t, u.ID)

	added, err := f.uc.ToggleFavorite(ctx, u.ID, pid)
	require.NoError(t, err)
	assert.True(t, added)

	favs, err := f.uc.ListFavorites(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{pid}, favs)

	added, err = f.uc.ToggleFavorite(ctx, u.ID, pid)
	require.NoError(t, err)
	assert.False(t, added)

	favs, err = f.uc.ListFavorites(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestToggleFavorite_ConcurrentEvenTogglesLeaveNoDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "fav@example.com", authdomain.RoleBuyer)
	pid := f.property(t, u.ID)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.ToggleFavorite(ctx, u.ID, pid)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	favs, err := f.uc.ListFavorites(ctx, u.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(favs), 1)
}

func TestToggleFavorite_UnknownProperty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "fav@example.com", authdomain.RoleBuyer)

	_, err := f.uc.ToggleFavorite(ctx, u.ID, "no-such-listing")
	assert.ErrorIs(t, err, propertydomain.ErrPropertyNotFound)

	_, err = f.uc.ToggleFavorite(ctx, u.ID, " ")
	assert.ErrorIs(t, err, authdomain.ErrMissingFields)
}

func TestToggleFavorite_RemovesDeletedListing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "fav@example.com", authdomain.RoleBuyer)
	pid := f.property(t, u.ID)

	_, err := f.uc.ToggleFavorite(ctx, u.ID, pid)
	require.NoError(t, err)
	_, err = f.properties.Delete(ctx, pid)
	require.NoError(t, err)

	added, err := f.uc.ToggleFavorite(ctx, u.ID, pid)
	require.NoError(t, err)
	assert.False(t, added)
}

func TestUpdateProfile_TouchesOnlyProfileFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "p@example.com", authdomain.RoleOwner)

	updated, err := f.uc.UpdateProfile(ctx, u.ID, &dto.UpdateProfileRequest{
		Name:    strPtr(" New Name "),
		Phone:   strPtr("+1 555 0100"),
		Address: &authdomain.Address{City: "Lisbon", Country: "PT"},
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "Lisbon", updated.Address.City)
	assert.Empty(t, updated.PasswordHash)

	stored, err := f.users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, authdomain.RoleOwner, stored.Role)
	assert.Equal(t, "hash", stored.PasswordHash)
	assert.Equal(t, "p@example.com", stored.Email)
	assert.True(t, stored.Preferences.EmailNotifications)

	_, err = f.uc.UpdateProfile(ctx, u.ID, &dto.UpdateProfileRequest{Name: strPtr("  ")})
	assert.ErrorIs(t, err, authdomain.ErrMissingFields)

	_, err = f.uc.UpdateProfile(ctx, "missing", &dto.UpdateProfileRequest{Bio: strPtr("x")})
	assert.ErrorIs(t, err, authdomain.ErrUserNotFound)
}

func TestChangeRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := f.user(t, "admin@example.com", authdomain.RoleAdmin)
	agent := f.user(t, "agent@example.com", authdomain.RoleAgent)
	target := f.user(t, "t@example.com", authdomain.RoleBuyer)

	_, err := f.uc.ChangeRole(ctx, agent, target.ID, "owner")
	assert.ErrorIs(t, err, authdomain.ErrRoleNotAllowed)

	_, err = f.uc.ChangeRole(ctx, admin, target.ID, "king")
	assert.ErrorIs(t, err, authdomain.ErrInvalidRole)
	_, err = f.uc.ChangeRole(ctx, admin, target.ID, "")
	assert.ErrorIs(t, err, authdomain.ErrInvalidRole)

	_, err = f.uc.ChangeRole(ctx, admin, "missing", "owner")
	assert.ErrorIs(t, err, authdomain.ErrUserNotFound)

	changed, err := f.uc.ChangeRole(ctx, admin, target.ID, "Owner")
	require.NoError(t, err)
	assert.Equal(t, authdomain.RoleOwner, changed.Role)
}

func TestListUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "a@example.com", authdomain.RoleAgent)
	f.user(t, "b@example.com", authdomain.RoleBuyer)
	f.user(t, "c@example.com", authdomain.RoleAgent)

	agents, total, err := f.uc.ListUsers(ctx, "agent", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, u := range agents {
		assert.Equal(t, authdomain.RoleAgent, u.Role)
		assert.Empty(t, u.PasswordHash)
	}

	_, _, err = f.uc.ListUsers(ctx, "wizard", 10, 0)
	assert.ErrorIs(t, err, authdomain.ErrInvalidRole)
}
