package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/todoweb/internal/models"
)

// Store owns the task table
type Store struct {
	DB *gorm.DB
}

// Option adjusts the gorm configuration before the database is opened
type Option func(*gorm.Config)

// WithSQLLogging logs every statement to w
func WithSQLLogging(w logger.Writer) Option {
	return func(cfg *gorm.Config) {
		cfg.Logger = logger.New(w, logger.Config{
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: true,
		})
	}
}

// Open sets up the database connection and runs migrations
func Open(path string, opts ...Option) (*Store, error) {
	if path != ":memory:" {
		// Ensure the directory exists
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	}
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite has a single writer
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	s := &Store{DB: db}

	if err := s.runMigrations(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// runMigrations creates the task table on first start
func (s *Store) runMigrations() error {
	return s.DB.AutoMigrate(&models.Task{})
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
