package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ratelock/internal/adapters"
	"ratelock/internal/adapters/cache"
	"ratelock/internal/adapters/httpclient"
	"ratelock/internal/adapters/memory"
	"ratelock/internal/adapters/postgres"
	"ratelock/internal/api"
	"ratelock/internal/auth"
	"ratelock/internal/config"
	"ratelock/internal/currency"
	"ratelock/internal/lock"
	lockhandler "ratelock/internal/lock/handler"
	"ratelock/internal/platform/db"
	httpserver "ratelock/internal/platform/http"
	"ratelock/internal/rate"
	ratehandler "ratelock/internal/rate/handler"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations, first refresh)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	lockRepo, closeRepo, err := newLockRepository(startupCtx, appCfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	// Base HTTP client (configurable timeout)
	baseHTTPClient := &http.Client{Timeout: appCfg.HTTPClient.Timeout()}

	// External clients
	rateClient := httpclient.NewExchangeRateClient(
		baseHTTPClient,
		strings.TrimSuffix(appCfg.ExchangeRateAPI.BaseURL, "/"),
	)

	// Rates
	validator := currency.NewCatalogValidator()
	rateService := rate.NewService(rateClient, rate.Options{
		Base:            strings.ToUpper(appCfg.ExchangeRateAPI.Base),
		Codes:           validator.SupportedCodes(),
		FallbackEnabled: appCfg.Rates.FallbackEnabled,
		FetchTimeout:    appCfg.HTTPClient.Timeout(),
	})
	snap := rateService.Refresh(startupCtx)
	logrus.WithFields(logrus.Fields{"pairs": len(snap.Rates), "degraded": snap.Degraded}).Info("✅ Initial rate snapshot loaded")

	scheduler := rate.NewScheduler(rateService, appCfg.Scheduler.RefreshInterval())
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Locks
	lockCache, err := cache.NewLockListCache(appCfg.Locks.CacheMaxItems, appCfg.Locks.CacheTTL())
	if err != nil {
		logrus.WithError(err).Error("Failed to create lock cache")
		return err
	}
	defer lockCache.Close()

	lockService := lock.NewService(lockRepo, lockCache, validator, lock.Options{
		OpTimeout: appCfg.Locks.OpTimeout(),
	})

	// Handlers and router
	router := api.NewRouter(
		ratehandler.NewRateHandler(validator, rateService),
		lockhandler.NewLockHandler(lockService, rateService),
		auth.Middleware(appCfg.Auth.JWTSecret),
	)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// newLockRepository opens the configured lock store. The returned func releases it.
func newLockRepository(ctx context.Context, cfg *config.AppConfig) (adapters.RateLockRepository, func(), error) {
	if cfg.Locks.Store == config.StoreMemory {
		logrus.Warn("Rate locks are kept in memory and are lost on restart")
		return memory.NewRateLockRepository(), func() {}, nil
	}

	// DB pool
	pool, err := db.CreatePoolAndPing(ctx, cfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return nil, nil, err
	}
	logrus.Info("✅ Postgres connection successful")

	if err = db.Migrate(ctx, pool); err != nil {
		pool.Close()
		logrus.WithError(err).Error("Failed to migrate db")
		return nil, nil, err
	}
	logrus.Info("✅ Migrations applied")

	return postgres.NewRateLockRepository(pool), pool.Close, nil
}
