package repositories

import (
	"context"

	"github.com/google/uuid"
	"bookhub.backend/internal/domain/entities"
)

// PaymentRecordRepository defines payment record data operations
type PaymentRecordRepository interface {
	Create(ctx context.Context, payment *entities.PaymentRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentRecord, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentRecord, error)
	GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.PaymentRecord, error)
	GetByUpgradeID(ctx context.Context, upgradeID uuid.UUID) (*entities.PaymentRecord, error)
	List(ctx context.Context) ([]*entities.PaymentRecord, error)
	// SetAccountUpgradeID fills the back-link once the upgrade row exists.
	SetAccountUpgradeID(ctx context.Context, id, upgradeID uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
