package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"bookhub.backend/internal/domain/entities"
	domainerrors "bookhub.backend/internal/domain/errors"
	"bookhub.backend/internal/infrastructure/models"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := userToModel(user)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByIDs gets users matching the given ids. Missing ids are simply
// absent from the result.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.User, error) {
	userModels := []models.User{}
	if len(ids) == 0 {
		return []*entities.User{}, nil
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id IN ?", ids).Find(&userModels).Error; err != nil {
		return nil, err
	}
	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

// List lists users with an optional search filter on name and email
func (r *UserRepository) List(ctx context.Context, search string) ([]*entities.User, error) {
	userModels := []models.User{}
	query := GetDB(ctx, r.db).WithContext(ctx).Order("created_at DESC")

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", searchTerm, searchTerm, searchTerm)
	}

	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

// Update updates mutable profile fields of a user
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"updated_at": time.Now(),
	}
	if user.HomeAddress.Valid {
		updates["home_address"] = user.HomeAddress.String
	}
	if user.DeliveryAddress.Valid {
		updates["delivery_address"] = user.DeliveryAddress.String
	}
	if user.PhoneNumber.Valid {
		updates["phone_number"] = user.PhoneNumber.String
	}
	if user.Company.Valid {
		updates["company"] = user.Company.String
	}
	if user.FiscalCode.Valid {
		updates["fiscal_code"] = user.FiscalCode.String
	}
	if user.CardNumberMasked.Valid {
		updates["card_number_masked"] = user.CardNumberMasked.String
	}
	if user.CardExpiry.Valid {
		updates["card_expiry"] = user.CardExpiry.Time
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateRole sets the user's role. Only the upgrade-acceptance path calls
// this.
func (r *UserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.Role) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"role": string(role), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password digest
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"password_hash": passwordHash, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// IncrementTokenVersion bumps the user's token version, invalidating all
// previously issued refresh tokens.
func (r *UserRepository) IncrementTokenVersion(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"token_version": gorm.Expr("token_version + 1"), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetEmailVerified flips the email-verified flag
func (r *UserRepository) SetEmailVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_email_verified": verified, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete flags the user inactive; the row is retained and stays
// visible to lookups so sign-in can report the disabled state.
func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false, "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// HardDelete permanently removes the user row
func (r *UserRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Unscoped().Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// HardDeleteMany permanently removes multiple user rows and returns the
// number of rows removed.
func (r *UserRepository) HardDeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := GetDB(ctx, r.db).WithContext(ctx).Unscoped().Delete(&models.User{}, "id IN ?", ids)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func userToModel(u *entities.User) *models.User {
	m := &models.User{
		ID:              u.ID,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		Role:            string(u.Role),
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		IsEmailVerified: u.IsEmailVerified,
		IsActive:        u.IsActive,
		TokenVersion:    u.TokenVersion,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
	m.HomeAddress = u.HomeAddress.Ptr()
	m.DeliveryAddress = u.DeliveryAddress.Ptr()
	m.PhoneNumber = u.PhoneNumber.Ptr()
	m.Company = u.Company.Ptr()
	m.FiscalCode = u.FiscalCode.Ptr()
	m.CardNumberMasked = u.CardNumberMasked.Ptr()
	m.CardExpiry = u.CardExpiry.Ptr()
	return m
}

func userToEntity(m *models.User) *entities.User {
	u := &entities.User{
		ID:               m.ID,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash,
		Role:             entities.Role(m.Role),
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		IsEmailVerified:  m.IsEmailVerified,
		IsActive:         m.IsActive,
		TokenVersion:     m.TokenVersion,
		HomeAddress:      null.StringFromPtr(m.HomeAddress),
		DeliveryAddress:  null.StringFromPtr(m.DeliveryAddress),
		PhoneNumber:      null.StringFromPtr(m.PhoneNumber),
		Company:          null.StringFromPtr(m.Company),
		FiscalCode:       null.StringFromPtr(m.FiscalCode),
		CardNumberMasked: null.StringFromPtr(m.CardNumberMasked),
		CardExpiry:       null.TimeFromPtr(m.CardExpiry),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		u.DeletedAt = &deletedAt
	}
	return u
}
