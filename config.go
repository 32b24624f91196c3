package onyxgpt

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/onyxlabs/onyxgpt/auth"
	"github.com/onyxlabs/onyxgpt/models"
	"github.com/onyxlabs/onyxgpt/models/openrouter"
	"github.com/onyxlabs/onyxgpt/models/puter"
	"github.com/onyxlabs/onyxgpt/stores"
)

// LoadEnv loads a .env file if one exists. Provider clients read their API
// keys from the environment, so call this once at startup before building a
// Config.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

// Config holds the wiring for the OnyxGPT core
type Config struct {
	Settings models.AppSettings
	Client   models.ChatClient
	Store    stores.LogStore
	Auth     auth.Authenticator
}

// NewConfig creates a configuration with default values: an in-memory log
// store and no AI client (consumers degrade gracefully until one is wired).
func NewConfig() *Config {
	return &Config{
		Store: stores.NewMemoryStore(),
	}
}

// WithSettings sets the validated settings aggregate for the configuration
func (c *Config) WithSettings(settings models.AppSettings) *Config {
	c.Settings = settings
	return c
}

// WithClient sets the AI client for the configuration
func (c *Config) WithClient(client models.ChatClient) *Config {
	c.Client = client
	return c
}

// WithClientFromSettings builds the AI client the settings ask for
func (c *Config) WithClientFromSettings() *Config {
	c.Client = NewClientFromSettings(c.Settings)
	return c
}

// WithStore sets the telemetry log store for the configuration
func (c *Config) WithStore(store stores.LogStore) *Config {
	c.Store = store
	return c
}

// WithSQLiteStore sets a SQLite store with the specified database path
func (c *Config) WithSQLiteStore(dbPath string) *Config {
	store, err := stores.NewSQLiteStoreSimple(dbPath)
	if err != nil {
		panic("Failed to create SQLite store: " + err.Error())
	}
	c.Store = store
	return c
}

// WithPostgresStore sets a PostgreSQL store with the specified connection parameters
func (c *Config) WithPostgresStore(host, user, password, dbname string, port int) *Config {
	store, err := stores.NewPostgresStoreDefault(host, user, password, dbname, port)
	if err != nil {
		panic("Failed to create PostgreSQL store: " + err.Error())
	}
	c.Store = store
	return c
}

// WithAuthenticator sets the authentication collaborator
func (c *Config) WithAuthenticator(a auth.Authenticator) *Config {
	c.Auth = a
	return c
}

// NewClientFromSettings builds a provider client from validated settings.
// An empty provider falls back to Puter, the app's default backend. The
// user's custom OpenRouter key takes precedence over the environment one.
func NewClientFromSettings(settings models.AppSettings) models.ChatClient {
	switch settings.Provider {
	case models.ProviderOpenRouter:
		return &openrouter.Client{
			Model:       settings.TextModel,
			Temperature: settings.Temperature,
			MaxTokens:   settings.MaxTokens,
			APIKey:      settings.CustomOpenRouterKey,
		}
	default:
		return &puter.Client{
			Model:       settings.TextModel,
			Temperature: settings.Temperature,
			MaxTokens:   settings.MaxTokens,
		}
	}
}
