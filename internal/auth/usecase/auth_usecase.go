package usecase

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	authdomain "estate-backend/internal/auth/domain"
	authdto "estate-backend/internal/auth/dto"
	"estate-backend/internal/auth/repository"
	"estate-backend/pkg/config"
)

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	tokens   TokenService
	config   *config.Config
	log      *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, tokens TokenService, cfg *config.Config, log *slog.Logger) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		config:   cfg,
		log:      log,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := authdomain.NormalizeEmail(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, authdomain.ErrMissingFields
	}
	// Placeholder addresses belong to provider accounts; a local account
	// holding one would block that provider's first login.
	if authdomain.IsReservedEmail(email) {
		return nil, authdomain.ErrReservedEmail
	}
	if err := authdomain.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	role, err := authdomain.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if role == authdomain.RoleAdmin {
		return nil, authdomain.ErrInvalidRole
	}

	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, authdomain.ErrEmailAlreadyRegistered
	}

	hashedPassword, err := authdomain.HashPassword(req.Password, u.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		Preferences:  authdomain.DefaultPreferences(),
	}
	// The unique index settles concurrent registrations of the same email.
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	u.log.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return u.authResponse(user)
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.AuthResponse, error) {
	email := authdomain.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, authdomain.ErrInvalidCredentials
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		// Spend the same bcrypt time as a real comparison.
		(&authdomain.User{PasswordHash: u.dummy()}).MatchPassword(req.Password)
		return nil, authdomain.ErrInvalidCredentials
	}
	if !user.MatchPassword(req.Password) {
		return nil, authdomain.ErrInvalidCredentials
	}

	return u.authResponse(user)
}

func (u *authUsecase) Authenticate(ctx context.Context, tokenString string) (*authdomain.User, error) {
	claims, err := u.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	// Only the subject id is trusted; role and profile come from the store.
	user, err := u.userRepo.FindByID(ctx, claims.SubjectID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}
	return user.Sanitized(), nil
}

func (u *authUsecase) Me(ctx context.Context, userID string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}

	favorites, err := u.userRepo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Favorites = favorites
	return user.Sanitized(), nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return authdomain.ErrMissingFields
	}
	if err := authdomain.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return authdomain.ErrUserNotFound
	}
	if !user.MatchPassword(currentPassword) {
		return authdomain.ErrInvalidCredentials
	}
	// Same plaintext: keep the existing hash.
	if currentPassword == newPassword {
		return nil
	}

	hashed, err := authdomain.HashPassword(newPassword, u.config.BcryptCost)
	if err != nil {
		return err
	}
	if err := u.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	u.log.InfoContext(ctx, "password changed", "user_id", userID)
	return nil
}

func (u *authUsecase) SetPassword(ctx context.Context, userID, password string) error {
	if err := authdomain.ValidatePassword(password); err != nil {
		return err
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return authdomain.ErrUserNotFound
	}
	if user.HasPassword() {
		return authdomain.ErrPasswordAlreadySet
	}

	hashed, err := authdomain.HashPassword(password, u.config.BcryptCost)
	if err != nil {
		return err
	}
	ok, err := u.userRepo.SetPasswordIfEmpty(ctx, userID, hashed)
	if err != nil {
		return err
	}
	if !ok {
		return authdomain.ErrPasswordAlreadySet
	}

	u.log.InfoContext(ctx, "password set for provider account", "user_id", userID)
	return nil
}

func (u *authUsecase) IssueToken(user *authdomain.User) (string, error) {
	return u.tokens.Issue(user)
}

func (u *authUsecase) authResponse(user *authdomain.User) (*authdto.AuthResponse, error) {
	tok, err := u.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &authdto.AuthResponse{
		Success: true,
		Token:   tok,
		User:    user.Sanitized(),
	}, nil
}

func (u *authUsecase) dummy() string {
	u.dummyOnce.Do(func() {
		u.dummyHash, _ = authdomain.HashPassword("timing-equalizer", u.config.BcryptCost)
	})
	return u.dummyHash
}
