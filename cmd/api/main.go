// Command api runs the campus portal HTTP server.
//
// @title                      Campus Portal API
// @version                    1.0
// @description                Account registration/login and role-gated management of campus announcements and resource links.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ucetportal/campus-api/internal/api"
	"github.com/ucetportal/campus-api/internal/core/domain"
	"github.com/ucetportal/campus-api/internal/core/service"
	"github.com/ucetportal/campus-api/internal/core/token"
	"github.com/ucetportal/campus-api/internal/infrastructure/config"
	mongodb "github.com/ucetportal/campus-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ucetportal/campus-api/internal/infrastructure/db/redis"
	"github.com/ucetportal/campus-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	newsRepo := mongodb.NewNewsRepository(db)
	resourceRepo := mongodb.NewResourceRepository(db)
	cache := redisdb.NewContentCache(rdb)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}

	if err := seedAdmin(ctx, userRepo, cfg.Admin); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default admin")
	}

	// --- Services ---
	tokens := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, log)
	newsService := service.NewContentService(newsRepo, cache, domain.CollectionNews, log)
	resourceService := service.NewContentService(resourceRepo, cache, domain.CollectionResources, log)

	e := api.NewRouter(api.Dependencies{
		Auth:      authService,
		News:      newsService,
		Resources: resourceService,
		Tokens:    tokens,
		Mongo:     db,
		Redis:     rdb,
		Logger:    log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("campus portal API started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// seedAdmin creates the bootstrap admin account when none exists yet, so a
// fresh deployment always has one identity able to manage content.
func seedAdmin(ctx context.Context, repo *mongodb.UserRepository, cfg config.AdminSeedConfig) error {
	if _, err := repo.FindByEmail(ctx, cfg.Email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     cfg.Username,
		Email:        cfg.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
	}
	profile := domain.DefaultProfile("", domain.RoleAdmin, now)
	profile.Department = cfg.Department

	if _, err := repo.Create(ctx, user, profile); err != nil {
		// Another instance may have seeded concurrently; that is fine.
		if errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return err
	}
	return nil
}
