package repositories

import (
	"context"

	"github.com/google/uuid"
	"bookhub.backend/internal/domain/entities"
)

// UserRepository defines user data operations. Singular lookups report a
// missing row as domainerrors.ErrNotFound; the caller decides whether
// absence is an error.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entities.User, error)
	List(ctx context.Context, search string) ([]*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role entities.Role) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	IncrementTokenVersion(ctx context.Context, id uuid.UUID) error
	SetEmailVerified(ctx context.Context, id uuid.UUID, verified bool) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	HardDeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)
}
