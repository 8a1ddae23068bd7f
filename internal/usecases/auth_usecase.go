package usecases

import (
	"context"
	"errors"
	"regexp"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"bookhub.backend/internal/domain/entities"
	domainerrors "bookhub.backend/internal/domain/errors"
	"bookhub.backend/internal/domain/repositories"
	"bookhub.backend/pkg/crypto"
	"bookhub.backend/pkg/jwt"
	"bookhub.backend/pkg/logger"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AttemptLimiter throttles failed sign-in attempts per email. The limiter
// is advisory: when it errors the sign-in proceeds, so a broken cache never
// locks everyone out.
type AttemptLimiter interface {
	TooMany(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.Service
	hasher     *crypto.Hasher
	limiter    AttemptLimiter
}

// NewAuthUsecase creates a new auth usecase. limiter may be nil when no
// attempt throttling is configured.
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.Service,
	hasher *crypto.Hasher,
	limiter AttemptLimiter,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
		hasher:     hasher,
		limiter:    limiter,
	}
}

// Signup registers a new user with the default role and returns a signed-in
// session for it.
func (u *AuthUsecase) Signup(ctx context.Context, input *entities.SignupInput) (*entities.AuthResponse, error) {
	if !emailRegex.MatchString(input.Email) {
		return nil, domainerrors.ValidationField("email", "invalid email format")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}
	if input.FirstName == "" || input.LastName == "" {
		return nil, domainerrors.Validation("first and last name are required")
	}

	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrDuplicateEmail
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         entities.DefaultRole,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		IsActive:     true,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, user.TokenVersion)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// SignIn authenticates a user. Unknown emails and wrong passwords produce
// the same error so the response does not reveal which emails exist.
func (u *AuthUsecase) SignIn(ctx context.Context, input *entities.SignInInput) (*entities.AuthResponse, error) {
	if u.limiter != nil {
		blocked, err := u.limiter.TooMany(ctx, input.Email)
		if err != nil {
			logger.Warn(ctx, "attempt limiter unavailable, failing open", zap.Error(err))
		} else if blocked {
			return nil, domainerrors.ErrTooManyAttempts
		}
	}

	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			u.recordFailure(ctx, input.Email)
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.hasher.Verify(input.Password, user.PasswordHash) {
		u.recordFailure(ctx, input.Email)
		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domainerrors.ErrAccountDisabled
	}

	if u.limiter != nil {
		if err := u.limiter.Reset(ctx, input.Email); err != nil {
			logger.Warn(ctx, "failed to reset sign-in attempts", zap.Error(err))
		}
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, user.TokenVersion)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair. A token
// whose version lags the user's current one has been revoked by a password
// change and is rejected.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken, jwt.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.ErrTokenExpired
		}
		return nil, domainerrors.ErrInvalidToken
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidToken
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domainerrors.ErrAccountDisabled
	}
	if claims.TokenVersion != user.TokenVersion {
		return nil, domainerrors.ErrInvalidToken
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, user.TokenVersion)
}

// ChangePassword verifies the current password, stores the new one and
// bumps the token version so outstanding refresh tokens stop working.
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !u.hasher.Verify(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}
	if err := validatePassword(input.NewPassword); err != nil {
		return err
	}

	passwordHash, err := u.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}
	if err := u.userRepo.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}
	return u.userRepo.IncrementTokenVersion(ctx, userID)
}

func (u *AuthUsecase) recordFailure(ctx context.Context, email string) {
	if u.limiter == nil {
		return
	}
	if err := u.limiter.RecordFailure(ctx, email); err != nil {
		logger.Warn(ctx, "failed to record sign-in attempt", zap.Error(err))
	}
}

// validatePassword enforces the password policy: at least 8 characters with
// an upper-case letter, a lower-case letter and a digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return domainerrors.ValidationField("password", "must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return domainerrors.ValidationField("password", "must contain upper-case, lower-case and digit characters")
	}
	return nil
}
