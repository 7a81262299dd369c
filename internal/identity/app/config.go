package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer    string        // Issuer claim for session tokens (default: corrida-identity)
	JWTSecret string        // Required: HMAC secret for session token signatures
	TokenTTL  time.Duration // Session token lifetime (default: 1h)

	DatabaseFile string // Path to SQLite database file (default: ./identity.db)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	// Document storage. When S3Bucket is empty uploads fall back to the
	// in-process store, which only makes sense for local development.
	S3Bucket    string
	S3Region    string
	S3Endpoint  string // Optional: MinIO or localstack
	S3AccessKey string
	S3SecretKey string
	S3PathStyle bool
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:    getEnvOrDefault("IDENTITY_ISSUER", "corrida-identity"),
		JWTSecret: os.Getenv("IDENTITY_JWT_SECRET"),
		TokenTTL:  getEnvDurationOrDefault("IDENTITY_TOKEN_TTL", time.Hour),

		DatabaseFile: getEnvOrDefault("IDENTITY_DATABASE_FILE", "identity.db"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		S3Bucket:    os.Getenv("IDENTITY_S3_BUCKET"),
		S3Region:    getEnvOrDefault("IDENTITY_S3_REGION", "us-east-1"),
		S3Endpoint:  os.Getenv("IDENTITY_S3_ENDPOINT"),
		S3AccessKey: os.Getenv("IDENTITY_S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("IDENTITY_S3_SECRET_KEY"),
		S3PathStyle: getEnvBoolOrDefault("IDENTITY_S3_PATH_STYLE", false),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
