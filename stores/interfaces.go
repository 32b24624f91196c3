package stores

import (
	"time"

	"github.com/onyxlabs/onyxgpt/models"
)

// LogsKey is the fixed key the telemetry log sequence is stored under.
const LogsKey = "app_logs"

// KVRecord is a persisted key-value row. The telemetry log sequence is stored
// as a JSON-serialized array in the value column under LogsKey, newest entry
// first.
type KVRecord struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the table name stable across backends.
func (KVRecord) TableName() string {
	return "kv_records"
}

// LogStore abstracts persistence of the telemetry log sequence. Stores only
// read and write the whole sequence; ordering and the entry cap are enforced
// by the telemetry logger, which serializes its read-modify-write.
type LogStore interface {
	// ReadLogs returns the persisted sequence, newest first. A missing key
	// yields an empty sequence, not an error.
	ReadLogs() ([]models.APICallLogEntry, error)

	// WriteLogs replaces the persisted sequence.
	WriteLogs(entries []models.APICallLogEntry) error

	// Connection management
	Connect() error
	Close() error

	// Health check
	Ping() error
}

// StoreConfig describes which backend to use and how to reach it.
type StoreConfig struct {
	Type       string // "sqlite", "postgres" or "memory"
	Connection string // file path for sqlite, DSN for postgres
}

// NewStoreConfig creates a store configuration.
func NewStoreConfig(storeType, connection string) *StoreConfig {
	return &StoreConfig{
		Type:       storeType,
		Connection: connection,
	}
}
