package stores

import (
	"fmt"
)

// NewLogStore creates a new telemetry log store based on the configuration
func NewLogStore(config *StoreConfig) (LogStore, error) {
	switch config.Type {
	case "sqlite":
		return NewSQLiteStore(config)
	case "postgres":
		return NewPostgresStore(config)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}

// NewSQLiteStoreDefault creates a SQLite store with default settings
func NewSQLiteStoreDefault() (LogStore, error) {
	return NewSQLiteStoreSimple("onyxgpt_logs.sqlite")
}

// NewPostgresStoreDefault creates a PostgreSQL store from connection parameters
// You would typically get these from environment variables
func NewPostgresStoreDefault(host, user, password, dbname string, port int) (LogStore, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		host, user, password, dbname, port)
	return NewPostgresStoreSimple(dsn)
}
