package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"bookhub.backend/internal/domain/entities"
	domainerrors "bookhub.backend/internal/domain/errors"
	"bookhub.backend/internal/usecases"
	"bookhub.backend/pkg/crypto"
	"bookhub.backend/pkg/jwt"
)

func newTestJWTService(t *testing.T) *jwt.Service {
	svc, err := jwt.NewService("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	return svc
}

func newAuthUsecaseForTest(t *testing.T, userRepo *MockUserRepository, limiter usecases.AttemptLimiter) *usecases.AuthUsecase {
	return usecases.NewAuthUsecase(userRepo, newTestJWTService(t), crypto.NewHasher(4), limiter)
}

func TestAuthUsecase_Signup_Validation(t *testing.T) {
	uc := newAuthUsecaseForTest(t, new(MockUserRepository), nil)

	cases := []struct {
		name  string
		input entities.SignupInput
	}{
		{"bad email", entities.SignupInput{Email: "not-an-email", Password: "Password1", FirstName: "A", LastName: "B"}},
		{"short password", entities.SignupInput{Email: "a@mail.com", Password: "Pw1", FirstName: "A", LastName: "B"}},
		{"no upper case", entities.SignupInput{Email: "a@mail.com", Password: "password1", FirstName: "A", LastName: "B"}},
		{"no digit", entities.SignupInput{Email: "a@mail.com", Password: "Passwords", FirstName: "A", LastName: "B"}},
		{"missing name", entities.SignupInput{Email: "a@mail.com", Password: "Password1", FirstName: "", LastName: "B"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Signup(context.Background(), &tc.input)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}
}

func TestAuthUsecase_Signup_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, nil)

	userRepo.On("GetByEmail", context.Background(), "exists@mail.com").Return(&entities.User{ID: uuid.New()}, nil).Once()

	_, err := uc.Signup(context.Background(), &entities.SignupInput{
		Email:     "exists@mail.com",
		Password:  "Password1",
		FirstName: "Ex",
		LastName:  "Ists",
	})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateEmail)
	userRepo.AssertExpectations(t)
}

func TestAuthUsecase_Signup_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, nil)
	svc := newTestJWTService(t)

	userRepo.On("GetByEmail", context.Background(), "new@mail.com").Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("Create", context.Background(), mock.AnythingOfType("*entities.User")).Return(nil).Once()

	resp, err := uc.Signup(context.Background(), &entities.SignupInput{
		Email:     "new@mail.com",
		Password:  "Password1",
		FirstName: "New",
		LastName:  "User",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "new@mail.com", resp.User.Email)
	assert.Equal(t, entities.DefaultRole, resp.User.Role)
	assert.True(t, resp.User.IsActive)
	assert.NotEqual(t, uuid.Nil, resp.User.ID)
	assert.NotEqual(t, "Password1", resp.User.PasswordHash)

	// Both tokens verify and carry the new user's identity.
	claims, err := svc.ValidateToken(resp.AccessToken, jwt.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	refreshClaims, err := svc.ValidateToken(resp.RefreshToken, jwt.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshClaims.UserID)

	userRepo.AssertExpectations(t)
}

func TestAuthUsecase_SignIn_IndistinguishableFailures(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, nil)

	userRepo.On("GetByEmail", context.Background(), "missing@mail.com").Return(nil, domainerrors.ErrNotFound).Once()
	_, errMissing := uc.SignIn(context.Background(), &entities.SignInInput{Email: "missing@mail.com", Password: "whatever"})
	assert.ErrorIs(t, errMissing, domainerrors.ErrInvalidCredentials)

	hashed, err := crypto.NewHasher(4).Hash("CorrectPassword1")
	require.NoError(t, err)
	userRepo.On("GetByEmail", context.Background(), "user@mail.com").Return(&entities.User{
		ID:           uuid.New(),
		Email:        "user@mail.com",
		PasswordHash: hashed,
		IsActive:     true,
	}, nil).Once()
	_, errWrong := uc.SignIn(context.Background(), &entities.SignInInput{Email: "user@mail.com", Password: "WrongPassword1"})
	assert.ErrorIs(t, errWrong, domainerrors.ErrInvalidCredentials)

	// Unknown email and wrong password are the same error.
	assert.Equal(t, errMissing, errWrong)
}

func TestAuthUsecase_SignIn_DisabledAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, nil)

	hashed, err := crypto.NewHasher(4).Hash("Password1")
	require.NoError(t, err)
	userRepo.On("GetByEmail", context.Background(), "disabled@mail.com").Return(&entities.User{
		ID:           uuid.New(),
		Email:        "disabled@mail.com",
		PasswordHash: hashed,
		IsActive:     false,
	}, nil).Once()

	_, err = uc.SignIn(context.Background(), &entities.SignInInput{Email: "disabled@mail.com", Password: "Password1"})
	assert.ErrorIs(t, err, domainerrors.ErrAccountDisabled)
}

func TestAuthUsecase_SignIn_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	limiter := new(MockAttemptLimiter)
	uc := newAuthUsecaseForTest(t, userRepo, limiter)

	hashed, err := crypto.NewHasher(4).Hash("Password1")
	require.NoError(t, err)
	user := &entities.User{
		ID:           uuid.New(),
		Email:        "user@mail.com",
		PasswordHash: hashed,
		Role:         entities.RoleAuthor,
		IsActive:     true,
	}
	limiter.On("TooMany", context.Background(), "user@mail.com").Return(false, nil).Once()
	limiter.On("Reset", context.Background(), "user@mail.com").Return(nil).Once()
	userRepo.On("GetByEmail", context.Background(), "user@mail.com").Return(user, nil).Once()

	resp, err := uc.SignIn(context.Background(), &entities.SignInInput{Email: "user@mail.com", Password: "Password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, user, resp.User)
	limiter.AssertExpectations(t)
}

func TestAuthUsecase_SignIn_AttemptLimiter(t *testing.T) {
	userRepo := new(MockUserRepository)
	limiter := new(MockAttemptLimiter)
	uc := newAuthUsecaseForTest(t, userRepo, limiter)

	// Exhausted budget blocks before any credential work.
	limiter.On("TooMany", context.Background(), "hot@mail.com").Return(true, nil).Once()
	_, err := uc.SignIn(context.Background(), &entities.SignInInput{Email: "hot@mail.com", Password: "Password1"})
	assert.ErrorIs(t, err, domainerrors.ErrTooManyAttempts)
	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)

	// A failed attempt is recorded.
	limiter.On("TooMany", context.Background(), "miss@mail.com").Return(false, nil).Once()
	limiter.On("RecordFailure", context.Background(), "miss@mail.com").Return(nil).Once()
	userRepo.On("GetByEmail", context.Background(), "miss@mail.com").Return(nil, domainerrors.ErrNotFound).Once()
	_, err = uc.SignIn(context.Background(), &entities.SignInInput{Email: "miss@mail.com", Password: "Password1"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	limiter.AssertExpectations(t)
}

func TestAuthUsecase_SignIn_LimiterFailsOpen(t *testing.T) {
	userRepo := new(MockUserRepository)
	limiter := new(MockAttemptLimiter)
	uc := newAuthUsecaseForTest(t, userRepo, limiter)

	hashed, err := crypto.NewHasher(4).Hash("Password1")
	require.NoError(t, err)
	limiter.On("TooMany", context.Background(), "user@mail.com").Return(false, assert.AnError).Once()
	limiter.On("Reset", context.Background(), "user@mail.com").Return(nil).Once()
	userRepo.On("GetByEmail", context.Background(), "user@mail.com").Return(&entities.User{
		ID:           uuid.New(),
		Email:        "user@mail.com",
		PasswordHash: hashed,
		IsActive:     true,
	}, nil).Once()

	resp, err := uc.SignIn(context.Background(), &entities.SignInInput{Email: "user@mail.com", Password: "Password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthUsecase_Refresh(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, nil)
	svc := newTestJWTService(t)

	user := &entities.User{ID: uuid.New(), Email: "user@mail.com", IsActive: true, TokenVersion: 3}
	pair, err := svc.GenerateTokenPair(user.ID, user.Email, user.TokenVersion)
	require.NoError(t, err)

	userRepo.On("GetByID", context.Background(), user.ID).Return(user, nil)

	newPair, err := uc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	claims, err := svc.ValidateToken(newPair.RefreshToken, jwt.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, 3, claims.TokenVersion)

	// An access token is not accepted in place of a refresh token.
	_, err = uc.Refresh(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)

	// Garbage is rejected the same way.
	_, err = uc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthUsecase_Refresh_StaleTokenVersion(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, nil)
	svc := newTestJWTService(t)

	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(userID, "user@mail.com", 1)
	require.NoError(t, err)

	// The password changed since the token was issued.
	userRepo.On("GetByID", context.Background(), userID).Return(&entities.User{
		ID: userID, Email: "user@mail.com", IsActive: true, TokenVersion: 2,
	}, nil).Once()

	_, err = uc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestAuthUsecase_Refresh_ExpiredToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc, err := jwt.NewService("test-access-secret", "test-refresh-secret", -time.Minute, -time.Minute)
	require.NoError(t, err)
	uc := usecases.NewAuthUsecase(userRepo, svc, crypto.NewHasher(4), nil)

	pair, err := svc.GenerateTokenPair(uuid.New(), "user@mail.com", 0)
	require.NoError(t, err)

	_, err = uc.Refresh(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
}

func TestAuthUsecase_ChangePassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, nil)

	hashed, err := crypto.NewHasher(4).Hash("OldPassword1")
	require.NoError(t, err)
	user := &entities.User{ID: uuid.New(), Email: "user@mail.com", PasswordHash: hashed, IsActive: true}
	userRepo.On("GetByID", context.Background(), user.ID).Return(user, nil)

	// Wrong current password.
	err = uc.ChangePassword(context.Background(), user.ID, &entities.ChangePasswordInput{
		CurrentPassword: "Nope12345",
		NewPassword:     "NewPassword1",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	// Weak new password.
	err = uc.ChangePassword(context.Background(), user.ID, &entities.ChangePasswordInput{
		CurrentPassword: "OldPassword1",
		NewPassword:     "short",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	// Success stores the new hash and revokes outstanding refresh tokens.
	userRepo.On("UpdatePassword", context.Background(), user.ID, mock.AnythingOfType("string")).Return(nil).Once()
	userRepo.On("IncrementTokenVersion", context.Background(), user.ID).Return(nil).Once()
	err = uc.ChangePassword(context.Background(), user.ID, &entities.ChangePasswordInput{
		CurrentPassword: "OldPassword1",
		NewPassword:     "NewPassword1",
	})
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}
