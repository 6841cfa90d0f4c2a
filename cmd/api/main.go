// Package main is the entry point for the Work 2.0 server.
// It wires dependencies together and starts the server; no business logic
// belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkazala/work20/internal/auth"
	"github.com/pkazala/work20/internal/cache"
	"github.com/pkazala/work20/internal/config"
	"github.com/pkazala/work20/internal/feed"
	"github.com/pkazala/work20/internal/handler"
	"github.com/pkazala/work20/internal/middleware"
	"github.com/pkazala/work20/internal/repo"
	"github.com/pkazala/work20/internal/service"
	"github.com/pkazala/work20/internal/storage"
	"github.com/pkazala/work20/internal/view"
	"github.com/pkazala/work20/migrations"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	logger.Info("database connection established")

	if cfg.MigrateOnStart {
		if err := migrate(ctx, pool, logger); err != nil {
			return err
		}
	}

	// --- Cache ------------------------------------------------------------
	var listCache cache.Store = cache.Nop{}
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer rdb.Close()
		listCache = cache.NewRedisStore(rdb, cfg.CacheTTL)
		logger.Info("list cache enabled", "ttl", cfg.CacheTTL)
	}

	// --- Logo storage -----------------------------------------------------
	logos, err := newLogoStore(ctx, cfg)
	if err != nil {
		return err
	}

	// --- Services ---------------------------------------------------------
	startUpRepo := repo.NewStartUpRepo(pool)
	internshipRepo := repo.NewInternshipRepo(pool)
	startUps := service.NewStartUpService(startUpRepo, internshipRepo, listCache, logos, logger)
	internships := service.NewInternshipService(internshipRepo, startUpRepo, listCache, logger)

	// The feed outlives requests; it stops with the process context.
	pageFeed := feed.New(ctx, startUps, internships, logger)
	defer pageFeed.Close()

	scheduler := feed.NewScheduler(pageFeed, cfg.FeedRefresh, logger)
	if err := scheduler.Start(); err != nil {
		return err
	}
	defer scheduler.Stop()

	// --- Auth -------------------------------------------------------------
	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		return err
	}

	// --- Router -----------------------------------------------------------
	pages, err := view.NewRenderer()
	if err != nil {
		return err
	}
	srvHandler := handler.NewServer(startUps, internships, pageFeed, pages, logger)

	routerCfg := handler.RouterConfig{
		Verifier:       verifier,
		Limiter:        middleware.NewRateLimiter(cfg.AdminRateLimit, cfg.AdminRateBurst),
		CORSOrigins:    cfg.CORSOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes,
		Logger:         logger,
	}
	if cfg.LogoStore == config.LogoStoreDisk {
		routerCfg.LogoDir = cfg.LogoDir
		routerCfg.LogoBaseURL = cfg.LogoBaseURL
	}

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts guard against slow clients holding connections.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(srvHandler, routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	// In-flight requests get up to 15 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// migrate applies pending goose migrations through a database/sql view of
// the pool.
func migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	for _, r := range results {
		logger.Info("migration applied", "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

func newLogoStore(ctx context.Context, cfg config.Config) (storage.LogoStore, error) {
	if cfg.LogoStore == config.LogoStoreS3 {
		client, err := storage.NewS3Client(ctx, cfg.S3Region)
		if err != nil {
			return nil, err
		}
		return storage.NewS3Store(client, cfg.S3Bucket, ""), nil
	}
	return storage.NewDiskStore(cfg.LogoDir, cfg.LogoBaseURL)
}

func newVerifier(ctx context.Context, cfg config.Config) (auth.Verifier, error) {
	if cfg.AuthProvider == config.AuthFirebase {
		return auth.NewFirebaseVerifier(ctx, cfg.FirebaseCredentialsPath)
	}
	return auth.NewJWTVerifier(cfg.JWTSecret)
}
