// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"

	cryptoDomain "github.com/allisson/cachevault/internal/crypto/domain"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int

	// DBDriver is the database driver to use ("sqlite", "postgres" or "mysql").
	DBDriver string
	// DBConnectionString is the connection string for the database.
	DBConnectionString string
	// DBMaxOpenConnections is the maximum number of open connections to the database.
	DBMaxOpenConnections int
	// DBMaxIdleConnections is the maximum number of idle connections in the database pool.
	DBMaxIdleConnections int
	// DBConnMaxLifetime is the maximum amount of time a connection may be reused.
	DBConnMaxLifetime time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// KeyringService is the credential-store service holding the key material.
	KeyringService string
	// KeyringEncryptionKeyPurpose names the AEAD key inside KeyringService.
	KeyringEncryptionKeyPurpose string
	// KeyringPepperPurpose names the digest pepper inside KeyringService.
	KeyringPepperPurpose string

	// CipherAlgorithm selects the AEAD ("chacha20-poly1305" or "aes-gcm").
	CipherAlgorithm string

	// RateLimitEnabled indicates whether per-IP rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost: env.GetString("SERVER_HOST", "127.0.0.1"),
		ServerPort: env.GetInt("SERVER_PORT", 8080),

		// Database configuration
		DBDriver:             env.GetString("DB_DRIVER", DriverSQLite),
		DBConnectionString:   env.GetString("DB_CONNECTION_STRING", DefaultSQLiteConnectionString()),
		DBMaxOpenConnections: env.GetInt("DB_MAX_OPEN_CONNECTIONS", 25),
		DBMaxIdleConnections: env.GetInt("DB_MAX_IDLE_CONNECTIONS", 5),
		DBConnMaxLifetime:    env.GetDuration("DB_CONN_MAX_LIFETIME_MINUTES", 5, time.Minute),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Key material
		KeyringService: env.GetString("KEYRING_SERVICE", cryptoDomain.DefaultService),
		KeyringEncryptionKeyPurpose: env.GetString(
			"KEYRING_ENCRYPTION_KEY_PURPOSE",
			string(cryptoDomain.PurposeEncryptionKey),
		),
		KeyringPepperPurpose: env.GetString("KEYRING_PEPPER_PURPOSE", string(cryptoDomain.PurposePepper)),
		CipherAlgorithm: strings.ToLower(
			strings.TrimSpace(env.GetString("CIPHER_ALGORITHM", string(cryptoDomain.ChaCha20))),
		),

		// Rate Limiting
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "cachevault"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// Validate checks the configuration before any resource is opened.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DBDriver,
			validation.Required,
			validation.In(DriverSQLite, DriverPostgres, DriverMySQL),
		),
		validation.Field(&c.DBConnectionString, validation.Required),
		validation.Field(&c.DBMaxOpenConnections, validation.Required, validation.Min(1)),
		validation.Field(&c.KeyringService, validation.Required),
		validation.Field(&c.KeyringEncryptionKeyPurpose, validation.Required),
		validation.Field(&c.KeyringPepperPurpose,
			validation.Required,
			validation.NotIn(c.KeyringEncryptionKeyPurpose).Error("must differ from the encryption key purpose"),
		),
		validation.Field(&c.CipherAlgorithm,
			validation.Required,
			validation.In(string(cryptoDomain.ChaCha20), string(cryptoDomain.AESGCM)),
		),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MetricsPort,
			validation.When(c.MetricsEnabled, validation.Required),
			validation.Min(1),
			validation.Max(65535),
		),
		// Min skips zero values, so Required carries the zero case.
		validation.Field(&c.RateLimitRequestsPerSec,
			validation.When(c.RateLimitEnabled, validation.Required, validation.Min(0.001)),
		),
		validation.Field(&c.RateLimitBurst,
			validation.When(c.RateLimitEnabled, validation.Required, validation.Min(1)),
		),
	)
}

// KeyringIdentity returns where the key material lives in the credential store.
func (c *Config) KeyringIdentity() cryptoDomain.KeyringIdentity {
	return cryptoDomain.KeyringIdentity{
		Service:              c.KeyringService,
		EncryptionKeyPurpose: cryptoDomain.Purpose(c.KeyringEncryptionKeyPurpose),
		PepperPurpose:        cryptoDomain.Purpose(c.KeyringPepperPurpose),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	if c.LogLevel == "debug" {
		return "debug"
	}
	return "release"
}

// DefaultSQLiteConnectionString returns the libSQL DSN of the local vault file.
//
// CACHE_VAULT_DATABASE_PATH overrides the location. Otherwise the file lives in the
// user configuration directory under cache-vault/cache-vault.db, falling back to the
// working directory when no configuration directory can be determined.
func DefaultSQLiteConnectionString() string {
	return "file:" + DefaultSQLitePath()
}

// DefaultSQLitePath returns the filesystem path behind DefaultSQLiteConnectionString.
func DefaultSQLitePath() string {
	if path := os.Getenv("CACHE_VAULT_DATABASE_PATH"); path != "" {
		return path
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "cache-vault.db"
	}
	return filepath.Join(dir, "cache-vault", "cache-vault.db")
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
