package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"bookhub.backend/internal/domain/entities"
	domainerrors "bookhub.backend/internal/domain/errors"
	"bookhub.backend/internal/domain/repositories"
	"bookhub.backend/pkg/logger"
)

// AccountUpgradeUsecase drives the account upgrade workflow: requesting an
// upgrade creates a payment record and an upgrade row atomically; deciding
// an upgrade moves it through its status machine and writes the new role
// through on acceptance.
type AccountUpgradeUsecase struct {
	upgradeRepo repositories.AccountUpgradeRepository
	paymentRepo repositories.PaymentRecordRepository
	userRepo    repositories.UserRepository
	uow         repositories.UnitOfWork
}

// NewAccountUpgradeUsecase creates a new account upgrade usecase
func NewAccountUpgradeUsecase(
	upgradeRepo repositories.AccountUpgradeRepository,
	paymentRepo repositories.PaymentRecordRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
) *AccountUpgradeUsecase {
	return &AccountUpgradeUsecase{
		upgradeRepo: upgradeRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		uow:         uow,
	}
}

// RequestUpgrade creates a pending upgrade for the user together with its
// payment record. The three writes (payment, upgrade, payment back-link)
// commit or roll back as one unit; a partial pair never survives.
func (u *AccountUpgradeUsecase) RequestUpgrade(ctx context.Context, userID uuid.UUID, input *entities.RequestUpgradeInput) (*entities.UpgradeResult, error) {
	newType, ok := entities.ParseRole(input.NewAccountType)
	if !ok {
		return nil, domainerrors.ValidationField("accountType", "unknown account type")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == newType {
		return nil, domainerrors.ValidationField("accountType", "account already has this type")
	}

	payment := &entities.PaymentRecord{
		ID:            uuid.New(),
		UserID:        userID,
		PaymentMethod: input.PaymentDetails.PaymentMethod,
		Amount:        input.PaymentDetails.Amount,
		Currency:      input.PaymentDetails.Currency,
		Status:        entities.PaymentStatusCompleted,
	}
	upgrade := &entities.AccountUpgrade{
		ID:           uuid.New(),
		UserID:       userID,
		PreviousType: user.Role,
		NewType:      newType,
		PaymentID:    payment.ID,
		Status:       entities.UpgradeStatusPending,
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}
		if err := u.upgradeRepo.Create(ctx, upgrade); err != nil {
			return err
		}
		return u.paymentRepo.SetAccountUpgradeID(ctx, payment.ID, upgrade.ID)
	})
	if err != nil {
		logger.Error(ctx, "upgrade request rolled back", zap.String("userId", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrUpgradeFailed, err)
	}

	payment.AccountUpgradeID = &upgrade.ID
	return &entities.UpgradeResult{Upgrade: upgrade, Payment: payment}, nil
}

// UpdateUpgradeStatus moves an upgrade to a new status. Acceptance requires
// the linked payment to be completed, and writes the requested role through
// to the user in the same transaction as the status change.
func (u *AccountUpgradeUsecase) UpdateUpgradeStatus(ctx context.Context, id uuid.UUID, statusStr string) (*entities.AccountUpgrade, error) {
	status, ok := entities.ParseUpgradeStatus(statusStr)
	if !ok {
		return nil, domainerrors.ValidationField("status", "unknown upgrade status")
	}

	upgrade, err := u.upgradeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !upgrade.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", domainerrors.ErrInvalidTransition, upgrade.Status, status)
	}
	if status == entities.UpgradeStatusAccepted {
		if upgrade.Payment == nil || upgrade.Payment.Status != entities.PaymentStatusCompleted {
			return nil, fmt.Errorf("%w: payment not completed", domainerrors.ErrInvalidTransition)
		}
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.upgradeRepo.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		if status == entities.UpgradeStatusAccepted {
			return u.userRepo.UpdateRole(ctx, upgrade.UserID, upgrade.NewType)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return u.upgradeRepo.GetByID(ctx, id)
}

// UpdatePaymentStatus moves a payment record to a new status following its
// transition rules. Completing a payment never accepts the linked upgrade
// on its own; that stays an explicit decision.
func (u *AccountUpgradeUsecase) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, statusStr string) (*entities.PaymentRecord, error) {
	status, ok := entities.ParsePaymentStatus(statusStr)
	if !ok {
		return nil, domainerrors.ValidationField("status", "unknown payment status")
	}

	payment, err := u.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !payment.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", domainerrors.ErrInvalidTransition, payment.Status, status)
	}

	if err := u.paymentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return u.paymentRepo.GetByID(ctx, id)
}

// GetUpgradeByID fetches an upgrade with its payment record.
func (u *AccountUpgradeUsecase) GetUpgradeByID(ctx context.Context, id uuid.UUID) (*entities.AccountUpgrade, error) {
	return u.upgradeRepo.GetByID(ctx, id)
}

// GetUpgradesByUser lists a user's upgrade requests.
func (u *AccountUpgradeUsecase) GetUpgradesByUser(ctx context.Context, userID uuid.UUID) ([]*entities.AccountUpgrade, error) {
	return u.upgradeRepo.GetByUserID(ctx, userID)
}

// ListUpgrades lists all upgrade requests.
func (u *AccountUpgradeUsecase) ListUpgrades(ctx context.Context) ([]*entities.AccountUpgrade, error) {
	return u.upgradeRepo.List(ctx)
}

// GetPaymentByID fetches a payment record.
func (u *AccountUpgradeUsecase) GetPaymentByID(ctx context.Context, id uuid.UUID) (*entities.PaymentRecord, error) {
	return u.paymentRepo.GetByID(ctx, id)
}

// GetPaymentsByUser lists a user's payment records.
func (u *AccountUpgradeUsecase) GetPaymentsByUser(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentRecord, error) {
	return u.paymentRepo.GetByUserID(ctx, userID)
}

// GetLatestPaymentByUser fetches the user's most recent payment record.
func (u *AccountUpgradeUsecase) GetLatestPaymentByUser(ctx context.Context, userID uuid.UUID) (*entities.PaymentRecord, error) {
	return u.paymentRepo.GetLatestByUserID(ctx, userID)
}

// ListPayments lists all payment records.
func (u *AccountUpgradeUsecase) ListPayments(ctx context.Context) ([]*entities.PaymentRecord, error) {
	return u.paymentRepo.List(ctx)
}

// DeletePayment removes a payment record.
func (u *AccountUpgradeUsecase) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return u.paymentRepo.Delete(ctx, id)
}
