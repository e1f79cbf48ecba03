package db

import (
	"fmt"
	"net/url"

	"reflexo_app_go/config"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize opens the database described by cfg.
// A Turso URL selects the remote libSQL driver; otherwise a local SQLite file is
// opened with WAL mode and foreign keys enabled.
func Initialize(cfg *config.Config) error {
	logLevel := logger.Info
	if cfg.IsProduction() {
		logLevel = logger.Warn
	}

	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var (
		conn *gorm.DB
		err  error
	)
	if cfg.UsesTurso() {
		conn, err = gorm.Open(sqlite.New(sqlite.Config{
			DriverName: "libsql",
			DSN:        TursoDSN(cfg.TursoDatabaseURL, cfg.TursoAuthToken),
		}), gormCfg)
	} else {
		conn, err = gorm.Open(sqlite.Open(SQLiteDSN(cfg.DBPath)), gormCfg)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = conn
	if cfg.UsesTurso() {
		zap.L().Info("database connection established", zap.String("driver", "libsql"))
	} else {
		zap.L().Info("database connection established", zap.String("driver", "sqlite"), zap.String("path", cfg.DBPath))
	}
	return nil
}

// SQLiteDSN builds the local file DSN
func SQLiteDSN(path string) string {
	return path + "?_journal_mode=WAL&_foreign_keys=on"
}

// TursoDSN appends the auth token to a libsql:// URL when one is given
func TursoDSN(databaseURL, authToken string) string {
	if authToken == "" {
		return databaseURL
	}
	u, err := url.Parse(databaseURL)
	if err != nil {
		return databaseURL
	}
	q := u.Query()
	q.Set("authToken", authToken)
	u.RawQuery = q.Encode()
	return u.String()
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	zap.L().Info("database migrations completed", zap.Int("models", len(models)))
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
