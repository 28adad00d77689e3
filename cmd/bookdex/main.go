package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bookdex/bookdex/internal/config"
	dbRedis "github.com/bookdex/bookdex/internal/db/redis"
	logpkg "github.com/bookdex/bookdex/internal/logger"
	"github.com/bookdex/bookdex/internal/metrics"
	catalogrepo "github.com/bookdex/bookdex/internal/repository/catalog"
	indexrepo "github.com/bookdex/bookdex/internal/repository/index"
	searchrepo "github.com/bookdex/bookdex/internal/repository/search"
	chiTransport "github.com/bookdex/bookdex/internal/transport/chi"
	openaiEmb "github.com/bookdex/bookdex/internal/transport/openai"
	"github.com/bookdex/bookdex/internal/usecase/health"
	searchuc "github.com/bookdex/bookdex/internal/usecase/search"
	syncuc "github.com/bookdex/bookdex/internal/usecase/sync"
	"github.com/bookdex/bookdex/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting bookdex search server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("catalog", cfg.Catalog.SQLitePath),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	catalog, err := catalogrepo.Open(cfg.Catalog.SQLitePath)
	if err != nil {
		logger.Fatal("Failed to open catalog database", zap.Error(err))
	}
	defer catalog.Close()

	// Register embedding and sync metrics explicitly (no init())
	metrics.RegisterCoreMetrics()

	embedder := openaiEmb.NewEmbedder(openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
	})
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	idxRepo := indexrepo.New(store, indexrepo.Config{
		KeyPrefix:       cfg.Database.KeyPrefix,
		VectorDim:       cfg.Embedding.Dimensions,
		HNSWM:           cfg.Index.HNSWM,
		HNSWEFConstruct: cfg.Index.HNSWEFConstruct,
	})
	srchRepo := searchrepo.New(store, cfg.Database.KeyPrefix)

	// Degraded startup: a missing index only disables search (503) until
	// the first sync run recreates it, so failure here must not stop boot.
	if err := idxRepo.EnsureIndex(ctx, false); err != nil {
		logger.Error("Failed to ensure search index, searches will fail until a sync run", zap.Error(err))
	}

	searchSvc := searchuc.New(srchRepo, embedder)
	syncSvc := syncuc.New(catalog, idxRepo, embedder, cfg.Sync.Workers)
	healthSvc := health.New(store, catalog, embedder, idxRepo)

	server := chiTransport.NewServer(searchSvc, syncSvc, idxRepo, srchRepo, healthSvc, chiTransport.Limits{
		Default: cfg.Search.DefaultLimit,
		Max:     cfg.Search.MaxLimit,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Router(cfg.Auth.APIKeys),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
