package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnMaxIdle  time.Duration

	RedisURL string

	GoogleClientID string

	JWTSecret       string
	JWTAccessExpiry time.Duration

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	SignedURLExpiry time.Duration

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBMaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxIdle:  getDurationEnv("DB_CONN_MAX_IDLE", 5*time.Minute),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: getDurationEnv("JWT_ACCESS_EXPIRY", 24*time.Hour),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "lostfound-images"),
		MinIOUseSSL:    getBoolEnv("MINIO_USE_SSL", false),

		SignedURLExpiry: getDurationEnv("SIGNED_URL_EXPIRY", time.Hour),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
