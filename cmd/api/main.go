package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipe-share/backend/config"
	"github.com/pageza/recipe-share/backend/internal/api"
	"github.com/pageza/recipe-share/backend/internal/database"
	"github.com/pageza/recipe-share/backend/internal/logger"
	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/server"
	"github.com/pageza/recipe-share/backend/internal/service"
)

func main() {
	migrationsDir := flag.String("migrations", "migrations", "directory holding the SQL migrations")
	flag.Parse()

	if err := run(*migrationsDir); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(migrationsDir string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(db, migrationsDir, log); err != nil {
		return err
	}

	redisClient, err := database.NewRedisClient(cfg, log)
	if err != nil {
		// limits are disabled rather than taking the API down
		log.Warn("redis unavailable, rate limiting disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn, cfg.JWTRefreshExpiresIn)
	auth := service.NewAuthService(db, tokens)
	stats := service.NewStatsService(db)
	recipes := service.NewRecipeService(db)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	authLimiter := middleware.NewIPRateLimiter(cfg.AuthRatePerSecond, cfg.AuthRateBurst)
	go authLimiter.Run(10*time.Minute, ctx.Done())

	srv := server.New(cfg, log, api.Options{
		Auth:      auth,
		Profile:   service.NewProfileService(db, auth, stats),
		Recipes:   recipes,
		Dashboard: service.NewDashboardService(db, recipes, stats),
		Stats:     stats,
		Ready: func(ctx context.Context) error {
			return database.HealthCheck(ctx, db)
		},
		CreateLimiter: middleware.NewRecipeCreationRateLimiter(redisClient, cfg.RecipeCreateLimit, cfg.RateLimitWindow, log),
		ModifyLimiter: middleware.NewRecipeModificationRateLimiter(redisClient, cfg.RecipeModifyLimit, cfg.RateLimitWindow, log),
		AuthLimiter:   authLimiter,
	})

	log.Info("starting recipe-share api",
		zap.String("env", string(cfg.Env)),
		zap.String("db_driver", cfg.DBDriver),
		zap.Bool("rate_limiting", redisClient != nil),
	)
	if err := srv.Start(ctx); err != nil {
		log.Error("server error", zap.Error(err))
		return err
	}
	log.Info("server stopped")
	return nil
}
