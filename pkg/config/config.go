package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Env           string
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	OTEL          OTELConfig
	Pricing       PricingConfig
	Journey       JourneyConfig
	Identity      IdentityConfig
	Collaborators CollaboratorsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// PricingConfig holds the fee policy used by every price computation
type PricingConfig struct {
	ProcedureFee int64
	ProviderFee  int64
	DepositRate  float64
}

// JourneyConfig holds journey persistence settings
type JourneyConfig struct {
	TTLMinutes          int
	CatalogCacheSeconds int
}

// IdentityConfig controls the registration fallback
type IdentityConfig struct {
	AllowPlaceholder bool
}

// CollaboratorsConfig holds the external catalog and registration endpoints
type CollaboratorsConfig struct {
	CatalogURL      string
	RegistrationURL string
	TimeoutSeconds  int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Env: getEnv("ENV", "production"),
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "surgical_booking"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "surgical-booking"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Pricing: PricingConfig{
			ProcedureFee: getEnvAsInt64("PRICING_PROCEDURE_FEE", 200000),
			ProviderFee:  getEnvAsInt64("PRICING_PROVIDER_FEE", 50000),
			DepositRate:  getEnvAsFloat("PRICING_DEPOSIT_RATE", 0.05),
		},
		Journey: JourneyConfig{
			TTLMinutes:          getEnvAsInt("JOURNEY_TTL_MINUTES", 24*60),
			CatalogCacheSeconds: getEnvAsInt("CATALOG_CACHE_SECONDS", 180),
		},
		Identity: IdentityConfig{
			AllowPlaceholder: getEnvAsBool("IDENTITY_ALLOW_PLACEHOLDER", true),
		},
		Collaborators: CollaboratorsConfig{
			CatalogURL:      getEnv("CATALOG_API_URL", ""),
			RegistrationURL: getEnv("REGISTRATION_API_URL", ""),
			TimeoutSeconds:  getEnvAsInt("COLLABORATOR_TIMEOUT_SECONDS", 10),
		},
	}

	if cfg.Pricing.DepositRate < 0 || cfg.Pricing.DepositRate > 1 {
		return nil, fmt.Errorf("PRICING_DEPOSIT_RATE must be between 0 and 1, got %v", cfg.Pricing.DepositRate)
	}
	if cfg.Pricing.ProcedureFee < 0 || cfg.Pricing.ProviderFee < 0 {
		return nil, fmt.Errorf("pricing fees must not be negative")
	}

	return cfg, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
