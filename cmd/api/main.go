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

	"marketplace-storefront/internal/config"
	"marketplace-storefront/internal/db"
	"marketplace-storefront/internal/httpserver"
	"marketplace-storefront/internal/logging"
	productrepo "marketplace-storefront/internal/repository/product"
	profilerepo "marketplace-storefront/internal/repository/profile"
	tokenrepo "marketplace-storefront/internal/repository/token"
	"marketplace-storefront/internal/seed"
	productsvc "marketplace-storefront/internal/service/product"
	sessionsvc "marketplace-storefront/internal/service/session"
	"marketplace-storefront/internal/service/shopper"
	"marketplace-storefront/internal/storage"

	"go.uber.org/zap"
)

const sessionSweepInterval = 15 * time.Minute

type backend struct {
	store    storage.Store
	products productrepo.Repository
	profiles profilerepo.Repository
	tokens   tokenrepo.Repository
	ready    httpserver.Pinger
	close    func()
}

func main() {
	cfg := config.FromEnv()
	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	logger = logger.Named("api")

	ctx := context.Background()
	be, err := openBackend(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open storage backend", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	defer be.close()

	productService := productsvc.New(be.products)
	if !cfg.UsesPostgres() {
		// Non-postgres catalogues live in memory; give them something to browse.
		n, err := seed.Apply(ctx, productService)
		if err != nil {
			logger.Fatal("seed catalogue", zap.Error(err))
		}
		logger.Info("demo catalogue loaded", zap.Int("products", n))
	}

	shoppers, err := shopper.NewRegistry(cfg.SessionCacheSize, be.store, be.profiles, logger)
	if err != nil {
		logger.Fatal("init shopper registry", zap.Error(err))
	}

	sessions := sessionsvc.New(be.tokens, logger)
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sessions.RunSweeper(sweepCtx, sessionSweepInterval)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, be.ready, httpserver.Deps{
		Sessions: sessions,
		Shoppers: shoppers,
		Products: productService,
	}, httpserver.Options{AllowedOrigins: cfg.CORSAllowedOrigins})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}

func openBackend(ctx context.Context, cfg config.Config, logger *zap.Logger) (*backend, error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to db: %w", err)
		}
		return &backend{
			store:    storage.NewPostgres(pool, logger),
			products: productrepo.NewPostgres(pool, logger),
			profiles: profilerepo.NewPostgres(pool, logger),
			tokens:   tokenrepo.NewPostgres(pool, logger),
			ready:    pool,
			close:    pool.Close,
		}, nil
	case config.StorageSQLite:
		lite, err := storage.OpenSQLite(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		closeLite := func() {
			if err := lite.Close(); err != nil {
				logger.Warn("close sqlite", zap.Error(err))
			}
		}
		profiles, err := profilerepo.NewSQLite(ctx, lite.DB(), logger)
		if err != nil {
			closeLite()
			return nil, err
		}
		tokens, err := tokenrepo.NewSQLite(ctx, lite.DB(), logger)
		if err != nil {
			closeLite()
			return nil, err
		}
		// The catalogue stays in memory and is reseeded at start.
		return &backend{
			store:    lite,
			products: productrepo.NewMemory(),
			profiles: profiles,
			tokens:   tokens,
			ready:    lite,
			close:    closeLite,
		}, nil
	case config.StorageMemory:
		return &backend{
			store:    storage.NewMemory(),
			products: productrepo.NewMemory(),
			profiles: profilerepo.NewMemory(),
			tokens:   tokenrepo.NewMemory(),
			close:    func() {},
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
