package stores

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/onyxlabs/onyxgpt/models"
)

// SQLiteStore implements LogStore for SQLite databases
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(config *StoreConfig) (*SQLiteStore, error) {
	if config.Type != "sqlite" {
		return nil, fmt.Errorf("invalid store type for SQLite store: %s", config.Type)
	}

	store := &SQLiteStore{
		path: config.Connection,
	}

	if err := store.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	return store, nil
}

// NewSQLiteStoreSimple creates a new SQLite store with just a file path
func NewSQLiteStoreSimple(dbPath string) (*SQLiteStore, error) {
	config := NewStoreConfig("sqlite", dbPath)
	return NewSQLiteStore(config)
}

// Connect establishes a connection to the SQLite database
func (s *SQLiteStore) Connect() error {
	db, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	s.db = db

	// Auto-migrate the schema
	if err := s.db.AutoMigrate(&KVRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
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
func (s *SQLiteStore) Ping() error {
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
// A missing row means no logs have been recorded yet.
func (s *SQLiteStore) ReadLogs() ([]models.APICallLogEntry, error) {
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
func (s *SQLiteStore) WriteLogs(entries []models.APICallLogEntry) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	value, err := encodeLogValue(entries)
	if err != nil {
		return err
	}

	return upsertLogValue(s.db, value)
}

// encodeLogValue marshals the sequence for storage. A nil sequence is stored
// as an empty JSON array so ReadLogs round-trips cleanly.
func encodeLogValue(entries []models.APICallLogEntry) (string, error) {
	if entries == nil {
		entries = []models.APICallLogEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to marshal log entries: %w", err)
	}
	return string(data), nil
}

// decodeLogValue unmarshals a stored sequence. An empty value decodes to an
// empty sequence.
func decodeLogValue(value string) ([]models.APICallLogEntry, error) {
	if value == "" {
		return []models.APICallLogEntry{}, nil
	}
	var entries []models.APICallLogEntry
	if err := json.Unmarshal([]byte(value), &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal log entries: %w", err)
	}
	return entries, nil
}

// upsertLogValue writes the serialized sequence under LogsKey, creating the
// row on first write.
func upsertLogValue(db *gorm.DB, value string) error {
	rec := KVRecord{Key: LogsKey, Value: value}

	tx := db.Begin()
	var count int64
	if err := tx.Model(&KVRecord{}).Where("key = ?", LogsKey).Count(&count).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to check for log record: %w", err)
	}

	if count == 0 {
		if err := tx.Create(&rec).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create log record: %w", err)
		}
	} else {
		if err := tx.Model(&KVRecord{}).Where("key = ?", LogsKey).Update("value", value).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to update log record: %w", err)
		}
	}

	return tx.Commit().Error
}
