package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type MySQLOptions struct {
	Host string `env:"MYSQL_HOST" envDefault:"mysql"`
	Port string `env:"MYSQL_PORT" envDefault:"3306"`
	DB   string `env:"MYSQL_DB" envDefault:"wfh"`
	User string `env:"MYSQL_USER" envDefault:"wfh"`
	Pass string `env:"MYSQL_PASS" envDefault:"wfh"`
}

type SweepOptions struct {
	Enabled     bool   `env:"SWEEP_ENABLED" envDefault:"true"`
	Cron        string `env:"SWEEP_CRON" envDefault:"0 0 1 * * *"`
	LockTTLSecs int    `env:"SWEEP_LOCK_TTL_SECONDS" envDefault:"300"`
}

type MetricsOptions struct {
	Enabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	Path    string `env:"METRICS_PATH" envDefault:"/metrics"`
}

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"5001"`

	DBDriver    string `env:"DB_DRIVER" envDefault:"mysql"`
	MySQL       MySQLOptions
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"wfh.db"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"false"`

	// empty RedisAddr disables idempotency and the sweep lock
	RedisAddr string `env:"REDIS_ADDR" envDefault:"redis:6379"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// off by default: enabled, every POST must carry Idempotency-Key,
	// X-Request-At and X-Staff-ID
	IdempEnabled bool `env:"IDEMPOTENCY_ENABLED" envDefault:"false"`
	IdempTTLSecs int  `env:"IDEMPOTENCY_TTL_SECONDS" envDefault:"300"`

	Sweep   SweepOptions
	Metrics MetricsOptions

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// EnvFiles are loaded in order when present; real env vars always win.
var EnvFiles = []string{".env", ".env.local"}

func loadEnvFiles(files []string) error {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func Load() (*Config, error) {
	if err := loadEnvFiles(EnvFiles); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	return c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverMySQL:
		m := c.MySQL
		if m.Host == "" || m.Port == "" || m.DB == "" || m.User == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", m.Port); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", m.Port, err)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("missing DATABASE_URL for postgres driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH for sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (mysql|postgres|sqlite)", c.DBDriver)
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be positive, got %d", c.IdempTTLSecs)
	}
	if c.Sweep.Enabled && strings.TrimSpace(c.Sweep.Cron) == "" {
		return errors.New("missing SWEEP_CRON while SWEEP_ENABLED")
	}
	if c.Sweep.LockTTLSecs <= 0 {
		return fmt.Errorf("SWEEP_LOCK_TTL_SECONDS must be positive, got %d", c.Sweep.LockTTLSecs)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("METRICS_PATH must start with '/', got %q", c.Metrics.Path)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q (text|json)", c.LogFormat)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQL.Host, c.MySQL.Port) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATE/DATETIME; loc=UTC keeps dates stable
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQL.User, c.MySQL.Pass, c.mysqlAddr(), c.MySQL.DB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		return c.DatabaseURL
	case DriverSQLite:
		return c.SQLitePath
	default:
		return c.MySQLDSN()
	}
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) SweepLockTTL() time.Duration {
	return time.Duration(c.Sweep.LockTTLSecs) * time.Second
}
