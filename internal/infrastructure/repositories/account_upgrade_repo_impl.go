package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"bookhub.backend/internal/domain/entities"
	domainerrors "bookhub.backend/internal/domain/errors"
	"bookhub.backend/internal/infrastructure/models"
)

// AccountUpgradeRepository implements account upgrade data operations
type AccountUpgradeRepository struct {
	db *gorm.DB
}

// NewAccountUpgradeRepository creates a new account upgrade repository
func NewAccountUpgradeRepository(db *gorm.DB) *AccountUpgradeRepository {
	return &AccountUpgradeRepository{db: db}
}

// Create creates a new account upgrade
func (r *AccountUpgradeRepository) Create(ctx context.Context, upgrade *entities.AccountUpgrade) error {
	m := &models.AccountUpgrade{
		ID:           upgrade.ID,
		UserID:       upgrade.UserID,
		PreviousType: string(upgrade.PreviousType),
		NewType:      string(upgrade.NewType),
		PaymentID:    upgrade.PaymentID,
		Status:       string(upgrade.Status),
		CreatedAt:    upgrade.CreatedAt,
		UpdatedAt:    upgrade.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets an account upgrade by ID with its payment record
func (r *AccountUpgradeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.AccountUpgrade, error) {
	var m models.AccountUpgrade
	err := GetDB(ctx, r.db).WithContext(ctx).Preload("PaymentRecord").Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return upgradeToEntity(&m), nil
}

// GetByUserID gets a user's account upgrades, newest first
func (r *AccountUpgradeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.AccountUpgrade, error) {
	upgradeModels := []models.AccountUpgrade{}
	err := GetDB(ctx, r.db).WithContext(ctx).Preload("PaymentRecord").
		Where("user_id = ?", userID).Order("created_at DESC").Find(&upgradeModels).Error
	if err != nil {
		return nil, err
	}
	return upgradesToEntities(upgradeModels), nil
}

// List lists all account upgrades with payment records, newest first
func (r *AccountUpgradeRepository) List(ctx context.Context) ([]*entities.AccountUpgrade, error) {
	upgradeModels := []models.AccountUpgrade{}
	err := GetDB(ctx, r.db).WithContext(ctx).Preload("PaymentRecord").
		Order("created_at DESC").Find(&upgradeModels).Error
	if err != nil {
		return nil, err
	}
	return upgradesToEntities(upgradeModels), nil
}

// UpdateStatus sets the upgrade status
func (r *AccountUpgradeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.UpgradeStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.AccountUpgrade{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func upgradeToEntity(m *models.AccountUpgrade) *entities.AccountUpgrade {
	u := &entities.AccountUpgrade{
		ID:           m.ID,
		UserID:       m.UserID,
		PreviousType: entities.Role(m.PreviousType),
		NewType:      entities.Role(m.NewType),
		PaymentID:    m.PaymentID,
		Status:       entities.UpgradeStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.PaymentRecord != nil {
		u.Payment = paymentToEntity(m.PaymentRecord)
	}
	return u
}

func upgradesToEntities(upgradeModels []models.AccountUpgrade) []*entities.AccountUpgrade {
	upgrades := make([]*entities.AccountUpgrade, 0, len(upgradeModels))
	for i := range upgradeModels {
		upgrades = append(upgrades, upgradeToEntity(&upgradeModels[i]))
	}
	return upgrades
}
