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

// PaymentRecordRepository implements payment record data operations
type PaymentRecordRepository struct {
	db *gorm.DB
}

// NewPaymentRecordRepository creates a new payment record repository
func NewPaymentRecordRepository(db *gorm.DB) *PaymentRecordRepository {
	return &PaymentRecordRepository{db: db}
}

// Create creates a new payment record
func (r *PaymentRecordRepository) Create(ctx context.Context, payment *entities.PaymentRecord) error {
	m := &models.PaymentRecord{
		ID:               payment.ID,
		UserID:           payment.UserID,
		AccountUpgradeID: payment.AccountUpgradeID,
		PaymentMethod:    payment.PaymentMethod,
		Amount:           payment.Amount,
		Currency:         payment.Currency,
		Status:           string(payment.Status),
		CreatedAt:        payment.CreatedAt,
		UpdatedAt:        payment.UpdatedAt,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID gets a payment record by ID with its upgrade association
func (r *PaymentRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentRecord, error) {
	var m models.PaymentRecord
	err := GetDB(ctx, r.db).WithContext(ctx).Preload("AccountUpgrade").Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return paymentToEntity(&m), nil
}

// GetByUserID gets all payment records of a user, newest first
func (r *PaymentRecordRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentRecord, error) {
	paymentModels := []models.PaymentRecord{}
	err := GetDB(ctx, r.db).WithContext(ctx).Preload("AccountUpgrade").
		Where("user_id = ?", userID).Order("created_at DESC").Find(&paymentModels).Error
	if err != nil {
		return nil, err
	}
	return paymentsToEntities(paymentModels), nil
}

// GetLatestByUserID gets the most recent payment record of a user
func (r *PaymentRecordRepository) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.PaymentRecord, error) {
	var m models.PaymentRecord
	err := GetDB(ctx, r.db).WithContext(ctx).Preload("AccountUpgrade").
		Where("user_id = ?", userID).Order("created_at DESC").First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return paymentToEntity(&m), nil
}

// GetByUpgradeID gets the payment record linked to an upgrade
func (r *PaymentRecordRepository) GetByUpgradeID(ctx context.Context, upgradeID uuid.UUID) (*entities.PaymentRecord, error) {
	var m models.PaymentRecord
	err := GetDB(ctx, r.db).WithContext(ctx).Where("account_upgrade_id = ?", upgradeID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return paymentToEntity(&m), nil
}

// List lists all payment records with their upgrade associations, newest
// first
func (r *PaymentRecordRepository) List(ctx context.Context) ([]*entities.PaymentRecord, error) {
	paymentModels := []models.PaymentRecord{}
	err := GetDB(ctx, r.db).WithContext(ctx).Preload("AccountUpgrade").
		Order("created_at DESC").Find(&paymentModels).Error
	if err != nil {
		return nil, err
	}
	return paymentsToEntities(paymentModels), nil
}

// SetAccountUpgradeID fills the back-link to the upgrade created for this
// payment. The column is written once per upgrade-originated record.
func (r *PaymentRecordRepository) SetAccountUpgradeID(ctx context.Context, id, upgradeID uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.PaymentRecord{}).
		Where("id = ? AND account_upgrade_id IS NULL", id).
		Updates(map[string]interface{}{"account_upgrade_id": upgradeID, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus sets the payment status
func (r *PaymentRecordRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.PaymentRecord{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a payment record
func (r *PaymentRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.PaymentRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func paymentToEntity(m *models.PaymentRecord) *entities.PaymentRecord {
	p := &entities.PaymentRecord{
		ID:               m.ID,
		UserID:           m.UserID,
		AccountUpgradeID: m.AccountUpgradeID,
		PaymentMethod:    m.PaymentMethod,
		Amount:           m.Amount,
		Currency:         m.Currency,
		Status:           entities.PaymentStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.AccountUpgrade != nil {
		p.AccountUpgrade = upgradeToEntity(m.AccountUpgrade)
	}
	return p
}

func paymentsToEntities(paymentModels []models.PaymentRecord) []*entities.PaymentRecord {
	payments := make([]*entities.PaymentRecord, 0, len(paymentModels))
	for i := range paymentModels {
		payments = append(payments, paymentToEntity(&paymentModels[i]))
	}
	return payments
}
