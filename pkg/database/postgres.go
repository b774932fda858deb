package database

import (
	"context"
	"fmt"
	"time"

	"diaPredict/domain"
	"diaPredict/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitPostgres(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.Port,
		cfg.Database.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Prediction{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}

const pingTimeout = 2 * time.Second

// StoreHandle answers whether the persistent store can be used right now.
// A handle built without a database always reports unavailable, which puts
// every prediction endpoint into mock mode.
type StoreHandle struct {
	db *gorm.DB
}

func NewStoreHandle(db *gorm.DB) *StoreHandle {
	return &StoreHandle{db: db}
}

func (h *StoreHandle) Available(ctx context.Context) bool {
	if h == nil || h.db == nil {
		return false
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return sqlDB.PingContext(ctx) == nil
}
