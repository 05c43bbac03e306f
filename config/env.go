package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env           string
	Port          string
	JWTSecret     string
	TokenExpiry   time.Duration
	DBDriver      string
	DBPath        string
	DBDSN         string
	AutoMigrate   bool
	AdminEmail    string
	AdminPassword string
	RedisAddr     string
	RedisPassword string
}

var (
	AppConfig Config
)

// LoadConfig reads .env (when present) and the environment into AppConfig.
func LoadConfig() error {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg := Config{
		Env:           getEnvOrDefault("ENV", "local"),
		Port:          getEnvOrDefault("PORT", "3000"),
		DBDriver:      strings.ToLower(getEnvOrDefault("DB_DRIVER", DriverSQLite)),
		DBPath:        getEnvOrDefault("DB_PATH", "company.db"),
		DBDSN:         os.Getenv("DB_DSN"),
		AdminEmail:    getEnvOrDefault("ADMIN_EMAIL", "admin"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.JWTSecret, err = requireEnv("JWT_SECRET"); err != nil {
		return err
	}
	if cfg.AdminPassword, err = requireEnv("ADMIN_PASSWORD"); err != nil {
		return err
	}

	cfg.TokenExpiry, err = time.ParseDuration(getEnvOrDefault("TOKEN_EXPIRY", "24h"))
	if err != nil {
		return fmt.Errorf("invalid TOKEN_EXPIRY: %w", err)
	}

	cfg.AutoMigrate, err = strconv.ParseBool(getEnvOrDefault("DB_AUTO_MIGRATE", "true"))
	if err != nil {
		return fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}

	switch cfg.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DBDSN == "" {
			return fmt.Errorf("environment variable DB_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	AppConfig = cfg
	return nil
}

func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("environment variable %s is required", key)
	}
	return value, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
