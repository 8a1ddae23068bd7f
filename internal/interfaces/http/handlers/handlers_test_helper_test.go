package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"bookhub.backend/internal/infrastructure/repositories"
	"bookhub.backend/internal/interfaces/http/middleware"
	"bookhub.backend/internal/usecases"
	"bookhub.backend/pkg/crypto"
	"bookhub.backend/pkg/jwt"
)

// testServer wires the full HTTP surface over an in-memory database, so
// handler tests exercise real usecases and repositories end to end.
type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	for _, q := range []string{
		`CREATE TABLE users (
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
		);`,
		`CREATE TABLE payment_records (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			account_upgrade_id TEXT,
			payment_method TEXT NOT NULL,
			amount DECIMAL(10,2) NOT NULL,
			currency TEXT NOT NULL DEFAULT 'USD',
			status TEXT NOT NULL DEFAULT 'completed',
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE account_upgrades (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			previous_type TEXT NOT NULL,
			new_type TEXT NOT NULL,
			payment_id TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at DATETIME,
			updated_at DATETIME
		);`,
	} {
		require.NoError(t, db.Exec(q).Error)
	}

	userRepo := repositories.NewUserRepository(db)
	paymentRepo := repositories.NewPaymentRecordRepository(db)
	upgradeRepo := repositories.NewAccountUpgradeRepository(db)
	uow := repositories.NewUnitOfWork(db)

	jwtService, err := jwt.NewService("test-access-secret", "test-refresh-secret", 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	hasher := crypto.NewHasher(4)

	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, hasher, nil)
	userUsecase := usecases.NewUserUsecase(userRepo)
	upgradeUsecase := usecases.NewAccountUpgradeUsecase(upgradeRepo, paymentRepo, userRepo, uow)

	authHandler := NewAuthHandler(authUsecase, userUsecase)
	userHandler := NewUserHandler(userUsecase)
	upgradeHandler := NewAccountUpgradeHandler(upgradeUsecase)

	router := gin.New()
	api := router.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signin", authHandler.SignIn)
	auth.POST("/refresh", authHandler.Refresh)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(jwtService, userRepo))
	authed.GET("/auth/me", authHandler.GetMe)
	authed.POST("/auth/change-password", authHandler.ChangePassword)

	authed.GET("/users", userHandler.List)
	authed.POST("/users/lookup", userHandler.GetByIDs)
	authed.PATCH("/users/me", userHandler.UpdateProfile)
	authed.GET("/users/:id", userHandler.GetByID)
	authed.POST("/users/:id/verify-email", userHandler.SetEmailVerified)
	authed.POST("/users/:id/deactivate", userHandler.Deactivate)
	authed.DELETE("/users/:id", userHandler.Delete)
	authed.POST("/users/delete", userHandler.DeleteMany)

	authed.POST("/upgrades", upgradeHandler.RequestUpgrade)
	authed.GET("/upgrades", upgradeHandler.ListUpgrades)
	authed.GET("/upgrades/me", upgradeHandler.MyUpgrades)
	authed.GET("/upgrades/:id", upgradeHandler.GetUpgrade)
	authed.PATCH("/upgrades/:id/status", upgradeHandler.UpdateUpgradeStatus)

	authed.GET("/payments", upgradeHandler.ListPayments)
	authed.GET("/payments/me", upgradeHandler.MyPayments)
	authed.GET("/payments/:id", upgradeHandler.GetPayment)
	authed.PATCH("/payments/:id/status", upgradeHandler.UpdatePaymentStatus)
	authed.DELETE("/payments/:id", upgradeHandler.DeletePayment)

	return &testServer{router: router, db: db}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// signup registers a user and returns its access token and id.
func (s *testServer) signup(t *testing.T, email string) (token, userID string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email":     email,
		"password":  "Password1",
		"firstName": "Test",
		"lastName":  "User",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	return body["accessToken"].(string), user["id"].(string)
}
