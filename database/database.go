package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"consultoc-api/internal/domain/billing"
	"consultoc-api/internal/domain/valuations"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres and configures the pool.
func Open(dsn string, log zerolog.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info().Msg("database connection established")
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&valuations.Valuation{},
		&billing.Payment{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Probe answers connectivity checks.
type Probe struct {
	db *gorm.DB
}

func NewProbe(db *gorm.DB) *Probe {
	return &Probe{db: db}
}

// Version returns the database engine version string.
func (p *Probe) Version(ctx context.Context) (string, error) {
	query := "SELECT version()"
	if p.db.Dialector.Name() == "sqlite" {
		query = "SELECT 'SQLite ' || sqlite_version()"
	}

	var version string
	if err := p.db.WithContext(ctx).Raw(query).Scan(&version).Error; err != nil {
		return "", fmt.Errorf("query database version: %w", err)
	}
	return version, nil
}
