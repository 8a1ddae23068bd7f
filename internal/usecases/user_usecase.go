package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"bookhub.backend/internal/domain/entities"
	domainerrors "bookhub.backend/internal/domain/errors"
	"bookhub.backend/internal/domain/repositories"
)

// UserUsecase handles user account management
type UserUsecase struct {
	userRepo repositories.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// GetByID gets a user by ID
func (u *UserUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// GetByIDs fetches the users matching the given IDs. Unknown IDs are
// silently skipped.
func (u *UserUsecase) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.User, error) {
	if len(ids) == 0 {
		return []*entities.User{}, nil
	}
	return u.userRepo.GetByIDs(ctx, ids)
}

// List lists users, optionally filtered by an email/name search term.
func (u *UserUsecase) List(ctx context.Context, search string) ([]*entities.User, error) {
	return u.userRepo.List(ctx, search)
}

// UpdateProfile applies the provided profile fields to a user. Omitted
// fields are left untouched. Changing the email re-checks uniqueness.
func (u *UserUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if !emailRegex.MatchString(*input.Email) {
			return nil, domainerrors.ValidationField("email", "invalid email format")
		}
		existing, err := u.userRepo.GetByEmail(ctx, *input.Email)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		if existing != nil {
			return nil, domainerrors.ErrDuplicateEmail
		}
		user.Email = *input.Email
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.HomeAddress != nil {
		user.HomeAddress = null.StringFrom(*input.HomeAddress)
	}
	if input.DeliveryAddress != nil {
		user.DeliveryAddress = null.StringFrom(*input.DeliveryAddress)
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = null.StringFrom(*input.PhoneNumber)
	}
	if input.Company != nil {
		user.Company = null.StringFrom(*input.Company)
	}
	if input.FiscalCode != nil {
		user.FiscalCode = null.StringFrom(*input.FiscalCode)
	}
	if input.CardNumberMasked != nil {
		user.CardNumberMasked = null.StringFrom(*input.CardNumberMasked)
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, id)
}

// SetEmailVerified marks a user's email address as verified or not.
func (u *UserUsecase) SetEmailVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return u.userRepo.SetEmailVerified(ctx, id, verified)
}

// Deactivate disables an account. The record stays in place so a later
// sign-in can tell the caller the account is disabled rather than unknown.
func (u *UserUsecase) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := u.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return u.userRepo.SoftDelete(ctx, id)
}

// Delete permanently removes a user and, through cascading constraints, its
// payment and upgrade history.
func (u *UserUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return u.userRepo.HardDelete(ctx, id)
}

// DeleteMany permanently removes the given users and reports how many rows
// matched.
func (u *UserUsecase) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, domainerrors.Validation("no user ids provided")
	}
	return u.userRepo.HardDeleteMany(ctx, ids)
}
