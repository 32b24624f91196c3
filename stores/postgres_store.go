package stores

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/onyxlabs/onyxgpt/models"
)

// PostgresStore implements LogStore for PostgreSQL databases
type PostgresStore struct {
	db  *gorm.DB
	dsn string
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(config *StoreConfig) (*PostgresStore, error) {
	if config.Type != "postgres" {
		return nil, fmt.Errorf("invalid store type for PostgreSQL store: %s", config.Type)
	}

	store := &PostgresStore{
		dsn: config.Connection,
	}

	if err := store.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	return store, nil
}

// NewPostgresStoreSimple creates a new PostgreSQL store with just a DSN
func NewPostgresStoreSimple(dsn string) (*PostgresStore, error) {
	config := NewStoreConfig("postgres", dsn)
	return NewPostgresStore(config)
}

// Connect establishes a connection to the PostgreSQL database
func (s *PostgresStore) Connect() error {
	db, err := gorm.Open(postgres.Open(s.dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	s.db = db

	// Auto-migrate the schema
	if err := s.db.AutoMigrate(&KVRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (s *PostgresStore) Ping() error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}

// ReadLogs returns the persisted telemetry log sequence, newest first.
func (s *PostgresStore) ReadLogs() ([]models.APICallLogEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var rec KVRecord
	err := s.db.Where("key = ?", LogsKey).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []models.APICallLogEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read log record: %w", err)
	}

	return decodeLogValue(rec.Value)
}

// WriteLogs replaces the persisted telemetry log sequence.
func (s *PostgresStore) WriteLogs(entries []models.APICallLogEntry) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	value, err := encodeLogValue(entries)
	if err != nil {
		return err
	}

	return upsertLogValue(s.db, value)
}
