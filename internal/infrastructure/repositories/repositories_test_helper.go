package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"bookhub.backend/internal/domain/entities"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'common',
		first_name TEXT,
		last_name TEXT,
		is_email_verified BOOLEAN NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		token_version INTEGER NOT NULL DEFAULT 0,
		home_address TEXT,
		delivery_address TEXT,
		phone_number TEXT,
		company TEXT,
		fiscal_code TEXT,
		card_number_masked TEXT,
		card_expiry DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPaymentRecordTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payment_records (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		account_upgrade_id TEXT,
		payment_method TEXT NOT NULL,
		amount DECIMAL(10,2) NOT NULL,
		currency TEXT NOT NULL DEFAULT 'USD',
		status TEXT NOT NULL DEFAULT 'completed',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAccountUpgradeTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE account_upgrades (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		previous_type TEXT NOT NULL,
		new_type TEXT NOT NULL,
		payment_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func testCtx() context.Context {
	return context.Background()
}

func insertTestUser(t *testing.T, repo *UserRepository, email string) *entities.User {
	t.Helper()
	now := time.Now()
	u := &entities.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "digest",
		Role:         entities.DefaultRole,
		FirstName:    "Test",
		LastName:     "User",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(testCtx(), u))
	return u
}
