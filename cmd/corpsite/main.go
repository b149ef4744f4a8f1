// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/corpsite/internal/cache"
	"github.com/olegiv/corpsite/internal/config"
	"github.com/olegiv/corpsite/internal/handler"
	"github.com/olegiv/corpsite/internal/handler/api"
	"github.com/olegiv/corpsite/internal/i18n"
	"github.com/olegiv/corpsite/internal/logging"
	"github.com/olegiv/corpsite/internal/middleware"
	"github.com/olegiv/corpsite/internal/richtext"
	"github.com/olegiv/corpsite/internal/scheduler"
	"github.com/olegiv/corpsite/internal/service"
	"github.com/olegiv/corpsite/internal/store"
	"github.com/olegiv/corpsite/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	migratePayloads := flag.Bool("migrate-payloads", false, "Convert legacy content block payloads to envelopes and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "corpsite - market content and multi-language block server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CORPSITE_ASSET_ORIGIN   Origin uploaded files are served from (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CORPSITE_DB_PATH        SQLite database path (default: ./data/corpsite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CORPSITE_SERVER_PORT    Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CORPSITE_ENV            Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CORPSITE_LANGUAGES      Comma-separated content languages (default: en,tr,de)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CORPSITE_REDIS_URL      Redis URL for distributed caching (optional)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Println(version.Get().String())
		os.Exit(0)
	}

	if err := run(*migratePayloads); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(migrateOnly bool) error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, logging.FormatFor(cfg.IsDevelopment()), os.Stdout)
	slog.SetDefault(logger)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	logger.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database connection", "error", err)
		}
	}()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	logger.Info("database ready")

	backend, isRedis := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cfg.CacheDuration(),
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}, logger)
	defer func() { _ = backend.Close() }()
	if isRedis {
		logger.Info("cache initialized", "backend", "redis")
	} else {
		logger.Info("cache initialized", "backend", "memory")
	}
	marketCache := cache.NewMarketContentCache(backend, cfg.CacheDuration())

	decoder := richtext.NewDecoder(richtext.Options{
		AssetOrigin:  cfg.AssetOrigin,
		UploadPrefix: cfg.UploadPrefix,
	})
	markets := service.NewMarketService(db, marketCache, logger)
	blocks := service.NewBlockService(db, decoder, marketCache, logger)

	if migrateOnly {
		n, err := blocks.MigratePayloads(ctx)
		if err != nil {
			return fmt.Errorf("migrating payloads: %w", err)
		}
		logger.Info("payload migration finished", "converted", n)
		return nil
	}

	jobs := scheduler.New(logger, 5*time.Minute)
	if err := registerJobs(jobs, cfg, blocks, backend, logger); err != nil {
		return fmt.Errorf("registering jobs: %w", err)
	}
	jobs.Start()
	defer jobs.Stop()

	languages := i18n.NewMatcher(append([]string{cfg.DefaultLanguage}, cfg.Languages...)...)
	apiHandler := api.NewHandler(markets, blocks, languages, logger)

	var cachePinger handler.Pinger
	if p, ok := backend.(handler.Pinger); ok {
		cachePinger = p
	}
	healthHandler := handler.NewHealthHandler(db, cachePinger, version.Get().Version)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	limiter := middleware.NewRateLimiter(cfg.APIRateLimit, cfg.APIRateBurst, logger)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware)
		apiHandler.Routes(r)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", version.Get().Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// registerJobs schedules background maintenance.
func registerJobs(s *scheduler.Scheduler, cfg *config.Config, blocks *service.BlockService, backend cache.Cacher, logger *slog.Logger) error {
	err := s.Add("payload-migration", cfg.PayloadMigrationSchedule, func(ctx context.Context) error {
		_, err := blocks.MigratePayloads(ctx)
		return err
	})
	if err != nil {
		return err
	}

	stats, ok := backend.(cache.StatsProvider)
	if !ok {
		return nil
	}
	return s.Add("cache-stats", cfg.CacheStatsSchedule, func(context.Context) error {
		st := stats.Stats()
		logger.Info("cache stats", "hits", st.Hits, "misses", st.Misses, "items", st.Items, "hit_rate", st.HitRate)
		return nil
	})
}
