package db

import (
	"fmt"

	"github.com/ecommercio/storefront-backend/config"
	appLogger "github.com/ecommercio/storefront-backend/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize opens the database connection. The default deployment is a
// single SQLite file in WAL mode (single-writer, multiple-reader); Postgres
// is available for hosted setups via DB_DRIVER=postgres.
func Initialize(cfg *config.DatabaseConfig) error {
	appLogger.Info("Connecting to database", map[string]interface{}{
		"driver": cfg.Driver,
	})

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // we log through zerolog instead
	}

	var err error
	switch cfg.Driver {
	case "postgres":
		DB, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	default:
		DB, err = gorm.Open(sqlite.Open(cfg.DSN()), gormCfg)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver != "postgres" {
		if err := DB.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
		// SQLite is the only concurrency control in the system; a single
		// connection avoids SQLITE_BUSY under concurrent writes.
		sqlDB, err := DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get database instance: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	appLogger.Info("Database connection established successfully", map[string]interface{}{
		"driver": cfg.Driver,
	})
	return nil
}

// Close closes the database connection
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
