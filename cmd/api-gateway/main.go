package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "github.com/noah-isme/msp-aci-api/api/swagger"
	"github.com/noah-isme/msp-aci-api/internal/handler"
	"github.com/noah-isme/msp-aci-api/internal/repository"
	"github.com/noah-isme/msp-aci-api/internal/seed"
	"github.com/noah-isme/msp-aci-api/internal/server"
	"github.com/noah-isme/msp-aci-api/internal/service"
	"github.com/noah-isme/msp-aci-api/pkg/cache"
	"github.com/noah-isme/msp-aci-api/pkg/config"
	"github.com/noah-isme/msp-aci-api/pkg/database"
	"github.com/noah-isme/msp-aci-api/pkg/logger"
	"github.com/noah-isme/msp-aci-api/pkg/storage"
)

// @title MSP ACI API
// @version 1.0.0
// @description Compensation dashboard for the ACI agreement of a multi-professional health practice.
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	readiness := map[string]handler.ReadinessCheck{}

	store, db, err := openStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	if db != nil {
		defer db.Close()
		readiness["postgres"] = db.PingContext
	}

	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Dashboard.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect redis", zap.Error(err))
		}
		defer client.Close()
		readiness["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		cacheRepo = repository.NewCacheRepository(client, logr.Named("cache"))
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Dashboard.CacheTTL, logr.Named("cache"), cacheRepo != nil)

	if cfg.Seed.Enabled {
		if _, err := seed.Load(ctx, store, logr.Named("seed")); err != nil {
			logr.Fatal("failed to seed store", zap.Error(err))
		}
		if err := cacheSvc.InvalidateDashboard(ctx); err != nil {
			logr.Warn("failed to clear dashboard cache after seed", zap.Error(err))
		}
	}

	archive, err := openArchive(cfg.Export, logr)
	if err != nil {
		logr.Fatal("failed to open export archive", zap.Error(err))
	}

	services := server.NewServices(server.Dependencies{
		Store:       store,
		Cache:       cacheSvc,
		Metrics:     metrics,
		Logger:      logr,
		CacheTTL:    cfg.Dashboard.CacheTTL,
		ExportTitle: cfg.Export.Title,
		Readiness:   readiness,
		Archive:     archive,
	})
	if services.Archive != nil {
		go services.Archive.RunRetention(ctx, time.Hour)
	}
	handlers := services.Handlers()
	router := server.NewRouter(server.Options{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		Logger:         logr,
		Metrics:        metrics,
	}, handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.Store.Driver),
			zap.Bool("cache", cacheSvc.Enabled()),
			zap.Bool("archive", archive != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*repository.Store, *sqlx.DB, error) {
	if cfg.Store.Driver != config.StorePostgres {
		return repository.NewMemoryStore(), nil, nil
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := repository.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ensure schema: %w", err)
	}
	logr.Info("postgres store ready", zap.String("host", cfg.Database.Host), zap.String("database", cfg.Database.Name))
	return repository.NewPostgresStore(db), db, nil
}

func openArchive(cfg config.ExportConfig, logr *zap.Logger) (*server.ArchiveDependencies, error) {
	if cfg.ArchiveDir == "" {
		return nil, nil
	}
	if cfg.SigningSecret == "" {
		logr.Warn("export archive disabled, no signing secret configured")
		return nil, nil
	}
	store, err := storage.NewLocalStorage(cfg.ArchiveDir)
	if err != nil {
		return nil, err
	}
	return &server.ArchiveDependencies{
		Storage:   store,
		Signer:    storage.NewSignedURLSigner(cfg.SigningSecret, cfg.LinkTTL),
		Retention: cfg.Retention,
	}, nil
}
