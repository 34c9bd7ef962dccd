package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hebed-ai/accelerator-landing/internal/log"
	"github.com/hebed-ai/accelerator-landing/pkg/retry"
	"github.com/hebed-ai/accelerator-landing/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DBConfig tunes the pool of the direct Postgres store. Zero values take the defaults.
type DBConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	SSLMode         string
}

// NewDBConfig reads pool sizes from DB_MAX_IDLE_CONNS, DB_MAX_OPEN_CONNS and DB_CONN_MAX_LIFETIME.
func NewDBConfig() *DBConfig {
	return &DBConfig{
		MaxIdleConns:    utils.GetEnvPositiveInt("DB_MAX_IDLE_CONNS", 5),
		MaxOpenConns:    utils.GetEnvPositiveInt("DB_MAX_OPEN_CONNS", 20),
		ConnMaxLifetime: utils.GetEnvPositiveDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		SSLMode:         "require",
	}
}

func (c *DBConfig) withDefaults() *DBConfig {
	defaults := NewDBConfig()
	if c == nil {
		return defaults
	}
	out := *c
	if out.MaxIdleConns <= 0 {
		out.MaxIdleConns = defaults.MaxIdleConns
	}
	if out.MaxOpenConns <= 0 {
		out.MaxOpenConns = defaults.MaxOpenConns
	}
	if out.ConnMaxLifetime <= 0 {
		out.ConnMaxLifetime = defaults.ConnMaxLifetime
	}
	if out.SSLMode == "" {
		out.SSLMode = defaults.SSLMode
	}
	return &out
}

func NewDatabase(logger *log.Logger, cfg *DBConfig) (*gorm.DB, error) {
	cfg = cfg.withDefaults()

	dsn, err := DatabaseDSN(cfg.SSLMode)
	if err != nil {
		logger.Error("Invalid database configuration", "error", err)
		return nil, err
	}

	// TranslateError turns SQLSTATE 23505 into gorm.ErrDuplicatedKey.
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = retry.NewExponentialBackoff(&retry.Config{
		MaxAttempts: 5,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Multiplier:  2,
		OnRetry: func(attempt int, err error, wait time.Duration) {
			logger.Warn("Database ping failed; retrying", "attempt", attempt, "wait", wait.String(), "error", err)
		},
	}).ExecuteContext(ctx, sqlDB.PingContext)
	if err != nil {
		_ = sqlDB.Close()
		logger.Error("Database unreachable", "error", err)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Database connection established successfully",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns)
	return gdb, nil
}

// DatabaseDSN prefers APP_DATABASE_URL. Otherwise it builds a postgres:// URL from the POSTGRES_*
// variables, naming every one that is missing. POSTGRES_SSLMODE overrides defaultSSLMode.
func DatabaseDSN(defaultSSLMode string) (string, error) {
	if dsn := sanitizeEnv(utils.GetEnvTrimmed("APP_DATABASE_URL")); dsn != "" {
		return dsn, nil
	}

	env := func(key string) string { return sanitizeEnv(utils.GetEnvTrimmed(key)) }
	host, port, user, dbName := env("POSTGRES_HOST"), env("POSTGRES_PORT"), env("POSTGRES_USER"), env("POSTGRES_DB_NAME")

	var missing []string
	for _, v := range []struct{ key, value string }{
		{"POSTGRES_HOST", host},
		{"POSTGRES_PORT", port},
		{"POSTGRES_USER", user},
		{"POSTGRES_DB_NAME", dbName},
	} {
		if v.value == "" {
			missing = append(missing, v.key)
		}
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing required database env vars: %s", strings.Join(missing, ", "))
	}

	if _, err := strconv.Atoi(port); err != nil {
		return "", fmt.Errorf("invalid POSTGRES_PORT %q: %w", port, err)
	}

	sslMode := env("POSTGRES_SSLMODE")
	if sslMode == "" {
		sslMode = defaultSSLMode
	}

	// url.UserPassword escapes credentials that contain spaces or '@'.
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, env("POSTGRES_PASSWORD")),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + dbName,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return dsn.String(), nil
}

// sanitizeEnv strips one pair of surrounding quotes left over from copied .env values.
func sanitizeEnv(v string) string {
	s := strings.TrimSpace(v)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	return s
}

// AutoMigrate is the development shortcut behind --auto-migrate. Deployed databases use cli migrate.
func AutoMigrate(logger *log.Logger, db *gorm.DB, models ...interface{}) error {
	if db == nil {
		return fmt.Errorf("cannot migrate: db is empty")
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Database auto-migration failed", "error", err)
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Database auto-migration completed", "models", len(models))
	return nil
}

func CloseDatabase(db *gorm.DB, logger *log.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
		return
	}
	logger.Info("Database closed successfully")
}
