package postgres

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agent_backend/store"
)

// Store implements store.Store on a pooled Postgres connection.
type Store struct {
	db *gorm.DB
}

// New opens the connection pool and ensures the interactions table
// exists. AutoMigrate is idempotent, so repeated startups are safe.
func New(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("fail to open postgres: %w", err)
	}
	if err := db.AutoMigrate(&store.Interaction{}); err != nil {
		return nil, fmt.Errorf("fail to migrate interactions table: %w", err)
	}
	return &Store{db: db}, nil
}

// Append implements store.Store
func (s *Store) Append(ctx context.Context, rec *store.Interaction) error {
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("fail to append interaction: %w", err)
	}
	return nil
}

// Recent implements store.Store, newest first by id.
func (s *Store) Recent(ctx context.Context, limit int) ([]store.Interaction, error) {
	var recs []store.Interaction
	err := s.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("fail to list interactions: %w", err)
	}
	return recs, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
