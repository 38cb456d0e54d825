// Package db opens the database backing the catalog and client directory,
// migrates it and seeds the demo data.
package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/invoice-desk/internal/config"
	"github.com/diewo77/invoice-desk/internal/fixtures"
	"github.com/diewo77/invoice-desk/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultSQLiteDSN = "invoice-desk.db"
	connectAttempts  = 10
)

var retryDelay = 2 * time.Second

// Dialector picks the gorm driver and DSN for the configuration.
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, string, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		dsn := cfg.RawDSN
		if dsn == "" {
			dsn = defaultSQLiteDSN
		}
		return sqlite.Open(dsn), dsn, nil
	case DriverPostgres:
		dsn := NormalizeDSN(cfg.RawDSN)
		if dsn == "" {
			dsn = cfg.DSN()
		}
		return postgres.Open(dsn), dsn, nil
	}
	return nil, "", fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
}

// Open connects with retries so the server can start before Postgres is ready.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, dsn, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var db *gorm.DB
	for i := 1; i <= connectAttempts; i++ {
		db, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		log.Warn("database connection failed, retrying",
			zap.Int("attempt", i), zap.Int("max_attempts", connectAttempts), zap.Error(err))
		time.Sleep(retryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	log.Info("database connected", zap.String("driver", cfg.Driver), zap.String("dsn", MaskDSN(dsn)))
	return db, nil
}

// Migrate runs AutoMigrate for the read-only sources.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Client{}, &models.Item{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	for _, table := range []string{"clients", "items"} {
		if !db.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// Seed inserts the demo clients and items that are not present yet. It is
// safe to run on every start.
func Seed(db *gorm.DB) error {
	for _, c := range fixtures.Clients() {
		var existing models.Client
		err := db.Where("id = ?", c.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&c).Error; err != nil {
				return fmt.Errorf("seed client %s: %w", c.ID, err)
			}
		} else if err != nil {
			return fmt.Errorf("seed client %s: %w", c.ID, err)
		}
	}
	for _, it := range fixtures.Items() {
		var existing models.Item
		err := db.Where("id = ?", it.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&it).Error; err != nil {
				return fmt.Errorf("seed item %s: %w", it.ID, err)
			}
		} else if err != nil {
			return fmt.Errorf("seed item %s: %w", it.ID, err)
		}
	}
	return nil
}
