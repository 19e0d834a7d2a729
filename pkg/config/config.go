package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Typesense TypesenseConfig
	OTEL      OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" envDefault:"3000"`
	Env  string `env:"APP_ENV" envDefault:"development"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// DatabaseConfig holds the primary (PostgreSQL) store configuration
type DatabaseConfig struct {
	Host           string        `env:"DB_HOST" envDefault:"localhost"`
	Port           int           `env:"DB_PORT" envDefault:"5432"`
	User           string        `env:"DB_USER" envDefault:"postgres"`
	Password       string        `env:"DB_PASSWORD"`
	Database       string        `env:"DB_NAME" envDefault:"unitycure"`
	SSLMode        string        `env:"DB_SSLMODE" envDefault:"disable"`
	PoolSize       int           `env:"DB_POOL_SIZE" envDefault:"10"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
}

// StorageConfig holds the file locations used by the embedded store and the backup tooling
type StorageConfig struct {
	FallbackPath string `env:"FALLBACK_DB_PATH" envDefault:"data/unitycure_fallback.db"`
	LegacyPath   string `env:"LEGACY_DB_PATH" envDefault:"unitycure.db"`
	BackupDir    string `env:"BACKUP_DIR" envDefault:"backups"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED" envDefault:"false"`
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	Enabled bool   `env:"TYPESENSE_ENABLED" envDefault:"false"`
	URL     string `env:"TYPESENSE_URL" envDefault:"http://localhost:8108"`
	APIKey  string `env:"TYPESENSE_API_KEY" envDefault:"xyz"`
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string `env:"OTEL_SERVICE_NAME" envDefault:"unitycure"`
	ServiceVersion string `env:"OTEL_SERVICE_VERSION" envDefault:"1.0.0"`
	Endpoint       string `env:"OTEL_ENDPOINT"`
	Enabled        bool   `env:"OTEL_ENABLED" envDefault:"false"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Database.PoolSize <= 0 {
		return nil, fmt.Errorf("DB_POOL_SIZE must be positive, got %d", cfg.Database.PoolSize)
	}
	if cfg.Database.ConnectTimeout <= 0 {
		return nil, fmt.Errorf("DB_CONNECT_TIMEOUT must be positive, got %s", cfg.Database.ConnectTimeout)
	}
	return cfg, nil
}

// DatabaseDSN returns the PostgreSQL connection string for the application database
func (c *DatabaseConfig) DatabaseDSN() string {
	return c.dsn(c.Database)
}

// MaintenanceDSN returns a connection string for the "postgres" maintenance database,
// used to create the application database when it does not exist yet.
func (c *DatabaseConfig) MaintenanceDSN() string {
	return c.dsn("postgres")
}

func (c *DatabaseConfig) dsn(database string) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		c.Host, c.Port, c.User, quoteDSNValue(c.Password), database, c.SSLMode, c.connectTimeoutSeconds(),
	)
}

func (c *DatabaseConfig) connectTimeoutSeconds() int {
	seconds := int(c.ConnectTimeout / time.Second)
	if seconds < 1 {
		return 1
	}
	return seconds
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// quoteDSNValue quotes a libpq key/value when it is empty or contains spaces or quotes.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " '\\") {
		return v
	}
	replacer := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + replacer.Replace(v) + "'"
}
