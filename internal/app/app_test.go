package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"wfh-backend/internal/config"
	"wfh-backend/internal/infrastructure/cache"
	"wfh-backend/internal/logger"
	"wfh-backend/internal/testutil/testdb"
	"wfh-backend/internal/usecase/sweep"
)

func testConfig() *config.Config {
	return &config.Config{
		AppPort:          "5001",
		DBDriver:         config.DriverSQLite,
		SQLitePath:       ":memory:",
		IdempEnabled:     true,
		IdempTTLSecs:     300,
		Sweep:            config.SweepOptions{Enabled: true, Cron: "0 0 1 * * *", LockTTLSecs: 60},
		Metrics:          config.MetricsOptions{Enabled: true, Path: "/metrics"},
		CORSAllowOrigins: []string{"http://localhost:3000"},
		LogLevel:         "info",
		LogFormat:        "text",
	}
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func serve(e http.Handler, method, path string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(`{"request_id":"REC123"}`))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEcho_RoutesAndMiddleware(t *testing.T) {
	_, rdb := newRedis(t)
	a := Build(testConfig(), logger.Nop(), testdb.Open(t), rdb)
	e, err := a.Echo()
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/ready", nil).Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/metrics", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodGet, "/api/request/REC123", nil).Code)

	// idempotency headers are enforced on writes
	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodPost, "/api/withdraw", nil).Code)

	// CORS preflight from the configured front end
	rec := serve(e, http.MethodOptions, "/api/apply", map[string]string{
		"Origin":                        "http://localhost:3000",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestEcho_WithoutRedisOrMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.Metrics.Enabled = false
	a := Build(cfg, logger.Nop(), testdb.Open(t), nil)
	e, err := a.Echo()
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodGet, "/metrics", nil).Code)
	// no idempotency store: writes go straight to the handler
	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodPost, "/api/withdraw", nil).Code)
}

func TestSweepLock_MapsHeldLock(t *testing.T) {
	_, rdb := newRedis(t)
	ctx := context.Background()

	first := sweepLock{cache.NewLock(rdb, sweepLockKey, time.Minute)}
	release, err := first.Acquire(ctx)
	require.NoError(t, err)

	_, err = sweepLock{cache.NewLock(rdb, sweepLockKey, time.Minute)}.Acquire(ctx)
	assert.ErrorIs(t, err, sweep.ErrSweepInProgress)

	require.NoError(t, release(ctx))
	release, err = first.Acquire(ctx)
	require.NoError(t, err)
	require.NoError(t, release(ctx))
}

func TestSweep_HeldLockSkipsRun(t *testing.T) {
	mr, rdb := newRedis(t)
	a := Build(testConfig(), logger.Nop(), testdb.Open(t), rdb)

	require.NoError(t, mr.Set(sweepLockKey, "other-replica"))
	_, err := a.Sweep.Run(context.Background())
	assert.ErrorIs(t, err, sweep.ErrSweepInProgress)

	mr.Del(sweepLockKey)
	res, err := a.Sweep.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Cancelled)
	assert.False(t, mr.Exists(sweepLockKey), "lock released after the run")
}

func TestScheduler(t *testing.T) {
	cfg := testConfig()
	a := Build(cfg, logger.Nop(), testdb.Open(t), nil)

	s, err := a.Scheduler()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 1, s.Len())

	cfg.Sweep.Cron = "not a cron"
	_, err = a.Scheduler()
	assert.Error(t, err)

	cfg.Sweep.Enabled = false
	s, err = a.Scheduler()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestNew_ClosesDatabaseWhenRedisFails(t *testing.T) {
	gdb := testdb.Open(t)
	origDB, origRedis := openDB, openRedis
	t.Cleanup(func() { openDB, openRedis = origDB, origRedis })
	openDB = func(string, string, gormlogger.LogLevel) (*gorm.DB, error) { return gdb, nil }
	openRedis = func(string, int) (*redis.Client, error) { return nil, errors.New("connection refused") }

	cfg := testConfig()
	cfg.RedisAddr = "127.0.0.1:1"
	a, err := New(cfg, logger.Nop())
	require.Error(t, err)
	assert.Nil(t, a)
	assert.Contains(t, err.Error(), "open redis 127.0.0.1:1")

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping(), "pool should be closed")
}

func TestNew_ClosesDatabaseWhenMigrateFails(t *testing.T) {
	gdb := testdb.Open(t)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string, gormlogger.LogLevel) (*gorm.DB, error) { return gdb, nil }
	// a closed connection makes the migration fail
	require.NoError(t, sqlDB.Close())

	cfg := testConfig()
	cfg.AutoMigrate = true
	_, err = New(cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate")
}

func TestNew_SQLite(t *testing.T) {
	cfg := testConfig()
	cfg.AutoMigrate = true
	a, err := New(cfg, logger.Nop())
	require.NoError(t, err)
	assert.Nil(t, a.Redis)
	assert.NoError(t, a.Close())
}

func TestClose(t *testing.T) {
	_, rdb := newRedis(t)
	a := Build(testConfig(), logger.Nop(), testdb.Open(t), rdb)
	assert.NoError(t, a.Close())
}
