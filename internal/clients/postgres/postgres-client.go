package postgres_client

import (
	"errors"
	"fmt"

	"github.com/N08I40K/schedule-parser-next/internal/config"
	"github.com/N08I40K/schedule-parser-next/migrations"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrNoDsn = errors.New("DB_DSN is not set")

// New подключение к postgres с применением миграций
func New(cfg *config.Config) (*gorm.DB, error) {
	if cfg.Infrastructure.Db.Dsn == "" {
		return nil, ErrNoDsn
	}

	db, err := gorm.Open(postgres.Open(cfg.Infrastructure.Db.Dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := migrations.Up(sqlDB); err != nil {
		return nil, err
	}

	return db, nil
}
