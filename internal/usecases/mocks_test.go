package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"bookhub.backend/internal/domain/entities"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	args := m.Called(ctx, f)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockUserRepository) IncrementTokenVersion(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) SetEmailVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepository) HardDeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// Mock PaymentRecordRepository
type MockPaymentRecordRepository struct {
	mock.Mock
}

func (m *MockPaymentRecordRepository) Create(ctx context.Context, payment *entities.PaymentRecord) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PaymentRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.PaymentRecord, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*entities.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) GetLatestByUserID(ctx context.Context, userID uuid.UUID) (*entities.PaymentRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) GetByUpgradeID(ctx context.Context, upgradeID uuid.UUID) (*entities.PaymentRecord, error) {
	args := m.Called(ctx, upgradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) List(ctx context.Context) ([]*entities.PaymentRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.PaymentRecord), args.Error(1)
}

func (m *MockPaymentRecordRepository) SetAccountUpgradeID(ctx context.Context, id, upgradeID uuid.UUID) error {
	return m.Called(ctx, id, upgradeID).Error(0)
}

func (m *MockPaymentRecordRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockPaymentRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// Mock AccountUpgradeRepository
type MockAccountUpgradeRepository struct {
	mock.Mock
}

func (m *MockAccountUpgradeRepository) Create(ctx context.Context, upgrade *entities.AccountUpgrade) error {
	return m.Called(ctx, upgrade).Error(0)
}

func (m *MockAccountUpgradeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.AccountUpgrade, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AccountUpgrade), args.Error(1)
}

func (m *MockAccountUpgradeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.AccountUpgrade, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*entities.AccountUpgrade), args.Error(1)
}

func (m *MockAccountUpgradeRepository) List(ctx context.Context) ([]*entities.AccountUpgrade, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.AccountUpgrade), args.Error(1)
}

func (m *MockAccountUpgradeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.UpgradeStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

// Mock AttemptLimiter
type MockAttemptLimiter struct {
	mock.Mock
}

func (m *MockAttemptLimiter) TooMany(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttemptLimiter) RecordFailure(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAttemptLimiter) Reset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
