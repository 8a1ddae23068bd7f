package repositories

import (
	"context"

	"github.com/google/uuid"
	"bookhub.backend/internal/domain/entities"
)

// AccountUpgradeRepository defines account upgrade data operations.
// Read paths eager-load the paired payment record.
type AccountUpgradeRepository interface {
	Create(ctx context.Context, upgrade *entities.AccountUpgrade) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.AccountUpgrade, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.AccountUpgrade, error)
	List(ctx context.Context) ([]*entities.AccountUpgrade, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.UpgradeStatus) error
}
