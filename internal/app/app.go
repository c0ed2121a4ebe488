// Package app wires config, storage and usecases into the HTTP server, the
// cron scheduler and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpadp "wfh-backend/internal/adapter/http"
	idemp "wfh-backend/internal/adapter/middleware"
	"wfh-backend/internal/adapter/repository/gormrepo"
	"wfh-backend/internal/config"
	"wfh-backend/internal/infrastructure/cache"
	"wfh-backend/internal/infrastructure/db"
	"wfh-backend/internal/metrics"
	"wfh-backend/internal/scheduler"
	"wfh-backend/internal/usecase/lifecycle"
	"wfh-backend/internal/usecase/request"
	"wfh-backend/internal/usecase/sweep"
)

const sweepLockKey = "lock:wfh:auto-reject"

var (
	openDB    = db.OpenGorm
	openRedis = cache.OpenRedis
)

type App struct {
	Config *config.Config
	Log    *logrus.Logger
	DB     *gorm.DB
	// nil when REDIS_ADDR is empty
	Redis *redis.Client

	Lifecycle *lifecycle.Usecase
	Requests  *request.Usecase
	Sweep     *sweep.Service
}

// New opens the database (and redis when configured) and builds the usecases.
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	gdb, err := openDB(cfg.DBDriver, cfg.DSN(), db.LogLevelFor(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			closeDB(gdb)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("schema migrated")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = openRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			closeDB(gdb)
			return nil, fmt.Errorf("open redis %s: %w", cfg.RedisAddr, err)
		}
		log.WithField("addr", cfg.RedisAddr).Info("redis: connected")
	}
	return Build(cfg, log, gdb, rdb), nil
}

// Build wires already-open connections. rdb may be nil.
func Build(cfg *config.Config, log *logrus.Logger, gdb *gorm.DB, rdb *redis.Client) *App {
	engine := lifecycle.NewUsecase(gormrepo.NewGormUoW(gdb), lifecycle.WithLogger(log))
	requests := gormrepo.NewRequestRepository(gdb)

	sweepOpts := []sweep.Option{sweep.WithLogger(log), sweep.WithCounter(requests)}
	if rdb != nil {
		sweepOpts = append(sweepOpts, sweep.WithLocker(sweepLock{cache.NewLock(rdb, sweepLockKey, cfg.SweepLockTTL())}))
	}

	return &App{
		Config:    cfg,
		Log:       log,
		DB:        gdb,
		Redis:     rdb,
		Lifecycle: engine,
		Requests: request.NewUsecase(
			requests,
			gormrepo.NewRequestLogRepository(gdb),
			gormrepo.NewEmployeeDirectory(gdb),
		),
		Sweep: sweep.NewService(engine, sweepOpts...),
	}
}

// Echo builds the HTTP server with middleware and routes.
func (a *App) Echo() (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: a.Config.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			idemp.HeaderIdempotencyKey, idemp.HeaderRequestAt, idemp.HeaderStaffID,
		},
		AllowCredentials: true,
	}))

	sqlDB, err := a.DB.DB()
	if err != nil {
		return nil, err
	}
	routes := httpadp.Routes{
		Health:    httpadp.NewHandler(sqlDB),
		Requests:  httpadp.NewRequestHandler(a.Requests),
		Lifecycle: httpadp.NewLifecycleHandler(a.Lifecycle),
		Sweep:     httpadp.NewSweepHandler(a.Sweep),
	}
	if a.Config.IdempEnabled {
		if a.Redis == nil {
			a.Log.Warn("idempotency enabled but REDIS_ADDR is empty; mutating endpoints run without it")
		} else {
			routes.Idempotency = idemp.IdempotencyMiddleware(a.Redis, a.Config.IdempotencyTTL())
		}
	}
	if a.Config.Metrics.Enabled {
		routes.Metrics = metrics.Handler()
		routes.MetricsPath = a.Config.Metrics.Path
	}
	httpadp.Register(e, routes)
	return e, nil
}

// Scheduler returns a cron scheduler with the sweep registered, or nil when
// SWEEP_ENABLED is false.
func (a *App) Scheduler() (*scheduler.Scheduler, error) {
	if !a.Config.Sweep.Enabled {
		return nil, nil
	}
	s := scheduler.New(a.Log)
	err := s.Add("auto-reject", a.Config.Sweep.Cron, func(ctx context.Context) error {
		_, err := a.Sweep.Run(ctx)
		if errors.Is(err, sweep.ErrSweepInProgress) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}

func closeDB(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// sweepLock adapts the redis lease to the sweep's Locker contract.
type sweepLock struct{ l *cache.Lock }

func (s sweepLock) Acquire(ctx context.Context) (func(context.Context) error, error) {
	release, err := s.l.Acquire(ctx)
	if errors.Is(err, cache.ErrLockHeld) {
		return nil, sweep.ErrSweepInProgress
	}
	return release, err
}
