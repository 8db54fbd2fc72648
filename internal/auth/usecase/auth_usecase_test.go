package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	authdomain "estate-backend/internal/auth/domain"
	authdto "estate-backend/internal/auth/dto"
	"estate-backend/internal/auth/repository"
	"estate-backend/internal/auth/token"
	"estate-backend/internal/testutil"
	"estate-backend/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	repo   repository.UserRepository
	tokens *token.Service
	uc     AuthUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t, &authdomain.User{}, &authdomain.UserFavorite{})
	repo := repository.NewUserRepository(db)
	tokens := token.NewService("test-secret", 0)
	cfg := &config.Config{BcryptCost: bcrypt.MinCost}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		repo:   repo,
		tokens: tokens,
		uc:     NewAuthUsecase(repo, tokens, cfg, log),
	}
}

func (f *fixture) register(t *testing.T, email, password string, role string) *authdto.AuthResponse {
	t.Helper()
	resp, err := f.uc.Register(context.Background(), &authdto.RegisterRequest{
		Name: "Test User", Email: email, Password: password, Role: role,
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	f := newFixture(t)

	resp := f.register(t, "Ann@Example.com", "secret1", "")

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ann@example.com", resp.User.Email)
	assert.Equal(t, authdomain.RoleBuyer, resp.User.Role)
	assert.Empty(t, resp.User.PasswordHash)
	assert.True(t, resp.User.Preferences.EmailNotifications)

	claims, err := f.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.SubjectID)

	stored, err := f.repo.FindByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, stored.MatchPassword("secret1"))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "dup@example.com", "secret1", "owner")

	_, err := f.uc.Register(ctx, &authdto.RegisterRequest{Name: "B", Email: "DUP@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, authdomain.ErrEmailAlreadyRegistered)

	_, total, err := f.repo.List(ctx, repository.UserFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  authdto.RegisterRequest
		want error
	}{
		{"missing name", authdto.RegisterRequest{Email: "a@b.c", Password: "secret1"}, authdomain.ErrMissingFields},
		{"missing email", authdto.RegisterRequest{Name: "a", Password: "secret1"}, authdomain.ErrMissingFields},
		{"short password", authdto.RegisterRequest{Name: "a", Email: "a@b.c", Password: "123"}, authdomain.ErrWeakPassword},
		{"unknown role", authdto.RegisterRequest{Name: "a", Email: "a@b.c", Password: "secret1", Role: "root"}, authdomain.ErrInvalidRole},
		{"self admin", authdto.RegisterRequest{Name: "a", Email: "a@b.c", Password: "secret1", Role: "admin"}, authdomain.ErrInvalidRole},
		{"google placeholder", authdto.RegisterRequest{Name: "a", Email: "g123@google.local", Password: "secret1"}, authdomain.ErrReservedEmail},
		{"facebook placeholder", authdto.RegisterRequest{Name: "a", Email: " FB9@Facebook.LOCAL", Password: "secret1"}, authdomain.ErrReservedEmail},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Register(ctx, &tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := f.register(t, "log@example.com", "secret1", "agent")

	resp, err := f.uc.Login(ctx, &authdto.LoginRequest{Email: " LOG@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, resp.User.ID)
	assert.Equal(t, authdomain.RoleAgent, resp.User.Role)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.register(t, "log@example.com", "secret1", "")

	_, wrongPassword := f.uc.Login(ctx, &authdto.LoginRequest{Email: "log@example.com", Password: "nope123"})
	_, unknownEmail := f.uc.Login(ctx, &authdto.LoginRequest{Email: "ghost@example.com", Password: "secret1"})

	assert.ErrorIs(t, wrongPassword, authdomain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, authdomain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_ProviderOnlyAccountCannotUsePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gid := "g-55"
	require.NoError(t, f.repo.Create(ctx, &authdomain.User{Name: "G", Email: "g@example.com", GoogleID: &gid}))

	for _, pw := range []string{"", "anything"} {
		_, err := f.uc.Login(ctx, &authdto.LoginRequest{Email: "g@example.com", Password: pw})
		assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
	}
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := f.register(t, "auth@example.com", "secret1", "owner")

	user, err := f.uc.Authenticate(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestAuthenticate_UsesStoredRoleNotClaim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := f.register(t, "role@example.com", "secret1", "buyer")

	_, err := f.repo.UpdateRole(ctx, reg.User.ID, authdomain.RoleAgent)
	require.NoError(t, err)

	user, err := f.uc.Authenticate(ctx, reg.Token)
	require.NoError(t, err)
	assert.Equal(t, authdomain.RoleAgent, user.Role)
}

func TestAuthenticate_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, authdomain.ErrNoToken)

	_, err = f.uc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, authdomain.ErrInvalidToken)

	ghost, err := f.tokens.Issue(&authdomain.User{ID: "deleted-user", Role: authdomain.RoleBuyer})
	require.NoError(t, err)
	_, err = f.uc.Authenticate(ctx, ghost)
	assert.ErrorIs(t, err, authdomain.ErrUserNotFound)

	expired, err := token.NewService("test-secret", time.Nanosecond).Issue(&authdomain.User{ID: "x"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = f.uc.Authenticate(ctx, expired)
	assert.ErrorIs(t, err, authdomain.ErrExpiredToken)
}

func TestMe_IncludesFavorites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := f.register(t, "me@example.com", "secret1", "")

	_, err := f.repo.ToggleFavorite(ctx, reg.User.ID, "prop-1")
	require.NoError(t, err)

	me, err := f.uc.Me(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"prop-1"}, me.Favorites)

	_, err = f.uc.Me(ctx, "missing")
	assert.ErrorIs(t, err, authdomain.ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := f.register(t, "pw@example.com", "secret1", "")

	err := f.uc.ChangePassword(ctx, reg.User.ID, "wrong-one", "secret2")
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)

	require.NoError(t, f.uc.ChangePassword(ctx, reg.User.ID, "secret1", "secret2"))

	_, err = f.uc.Login(ctx, &authdto.LoginRequest{Email: "pw@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, authdomain.ErrInvalidCredentials)
	_, err = f.uc.Login(ctx, &authdto.LoginRequest{Email: "pw@example.com", Password: "secret2"})
	assert.NoError(t, err)
}

func TestChangePassword_SamePasswordKeepsHash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg := f.register(t, "same@example.com", "secret1", "")

	before, _ := f.repo.FindByID(ctx, reg.User.ID)
	require.NoError(t, f.uc.ChangePassword(ctx, reg.User.ID, "secret1", "secret1"))
	after, _ := f.repo.FindByID(ctx, reg.User.ID)

	assert.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestSetPassword_OnlyOnceForProviderAccounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gid := "g-1"
	u := &authdomain.User{Name: "G", Email: "g1@example.com", GoogleID: &gid}
	require.NoError(t, f.repo.Create(ctx, u))

	require.NoError(t, f.uc.SetPassword(ctx, u.ID, "secret1"))
	assert.ErrorIs(t, f.uc.SetPassword(ctx, u.ID, "secret2"), authdomain.ErrPasswordAlreadySet)

	resp, err := f.uc.Login(ctx, &authdto.LoginRequest{Email: "g1@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, resp.User.ID)

	reg := f.register(t, "local@example.com", "secret1", "")
	assert.ErrorIs(t, f.uc.SetPassword(ctx, reg.User.ID, "secret9"), authdomain.ErrPasswordAlreadySet)
}

func TestRegister_PlaceholderEmailCreatesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Register(ctx, &authdto.RegisterRequest{Name: "Squatter", Email: "g123@google.local", Password: "secret1"})
	assert.ErrorIs(t, err, authdomain.ErrReservedEmail)

	found, err := f.repo.FindByEmail(ctx, "g123@google.local")
	require.NoError(t, err)
	assert.Nil(t, found)

	// Ordinary .local domains stay open.
	f.register(t, "ann@office.local", "secret1", "")
}
