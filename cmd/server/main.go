package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storerate/docs"
	"storerate/internal/auth"
	"storerate/internal/cache"
	"storerate/internal/config"
	"storerate/internal/db"
	"storerate/internal/handler"
	"storerate/internal/model"
	"storerate/internal/repository"
	"storerate/internal/router"
	"storerate/internal/service"
)

// @title Store Rating API
// @version 1.0
// @description Role-based store-rating API: admins manage users and stores, users rate stores, owners track their ratings.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Rating{},
			&model.Store{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Store{},
		&model.Rating{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	storeRepo := repository.NewStoreRepository(gormDB)
	ratingRepo := repository.NewRatingRepository(gormDB)

	if err := bootstrapAdmin(context.Background(), userRepo, cfg); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize auth and services
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(userRepo, storeRepo, jwtService)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, cacheClient)
	storeService := service.NewStoreService(userRepo, storeRepo, ratingRepo, cacheClient)
	ratingService := service.NewRatingService(ratingRepo, storeRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService, storeService)
	storeHandler := handler.NewStoreHandler(storeService)
	ratingHandler := handler.NewRatingHandler(ratingService)

	// Register routes
	router.Register(
		e,
		jwtService,
		authHandler,
		adminHandler,
		storeHandler,
		ratingHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// bootstrapAdmin creates the default admin account when it is absent so a
// fresh deployment is immediately manageable.
func bootstrapAdmin(ctx context.Context, userRepo repository.UserRepository, cfg *config.Config) error {
	_, err := userRepo.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Name:         "System Administrator",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hashedPassword),
		Address:      "System Address",
		Role:         model.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Default admin created: %s", cfg.AdminEmail)
	return nil
}
