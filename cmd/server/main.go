package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bookhub.backend/internal/config"
	"bookhub.backend/internal/infrastructure/repositories"
	"bookhub.backend/internal/interfaces/http/handlers"
	"bookhub.backend/internal/interfaces/http/middleware"
	"bookhub.backend/internal/usecases"
	"bookhub.backend/pkg/crypto"
	"bookhub.backend/pkg/jwt"
	"bookhub.backend/pkg/logger"
	"bookhub.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Sign-in throttling degrades gracefully when Redis is down, so a
	// failed init is logged rather than fatal.
	var limiter usecases.AttemptLimiter
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(context.Background(), "Redis unavailable, sign-in throttling disabled", zap.Error(err))
	} else {
		limiter = redis.NewAttemptLimiter(cfg.Login.MaxAttempts, cfg.Login.AttemptWindow)
		logger.Info(context.Background(), "Redis initialized")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := sqlDB.PingContext(ctx); err != nil {
		log.Printf("Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("Connected to PostgreSQL via GORM")
	}
	cancel()

	jwtService, err := jwt.NewService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize jwt service: %w", err)
	}
	hasher := crypto.NewHasher(cfg.Security.BcryptCost)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	paymentRepo := repositories.NewPaymentRecordRepository(db)
	upgradeRepo := repositories.NewAccountUpgradeRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, hasher, limiter)
	userUsecase := usecases.NewUserUsecase(userRepo)
	upgradeUsecase := usecases.NewAccountUpgradeUsecase(upgradeRepo, paymentRepo, userRepo, uow)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase, userUsecase)
	userHandler := handlers.NewUserHandler(userUsecase)
	upgradeHandler := handlers.NewAccountUpgradeHandler(upgradeUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService, userRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		userHandler:    userHandler,
		upgradeHandler: upgradeHandler,
		authMiddleware: authMiddleware,
	})

	log.Printf("Bookhub backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
