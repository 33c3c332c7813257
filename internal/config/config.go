package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Tracing  TracingConfig
	LogLevel string `validate:"oneof=debug info warn error"`
}

type ServerConfig struct {
	Port            string `validate:"required,numeric"`
	Host            string
	ReadTimeout     int `validate:"gt=0"`
	WriteTimeout    int `validate:"gt=0"`
	ShutdownTimeout int `validate:"gt=0"`
}

// DatabaseConfig describes the SQL Server connection
type DatabaseConfig struct {
	User     string
	Password string
	Server   string `validate:"required"`
	Name     string

	Encrypt                bool
	TrustServerCertificate bool // development default, skips certificate validation
}

type TracingConfig struct {
	Enabled bool
}

var validate = validator.New()

// Load reads configuration from environment variables
// A .env file in the working directory is loaded first if present; it never
// overrides variables that are already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "3000"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Database: DatabaseConfig{
			User:                   os.Getenv("DB_USER"),
			Password:               os.Getenv("DB_PASSWORD"),
			Server:                 getEnv("DB_SERVER", "localhost"),
			Name:                   os.Getenv("DB_NAME"),
			Encrypt:                getEnvAsBool("DB_ENCRYPT", true),
			TrustServerCertificate: getEnvAsBool("DB_TRUST_SERVER_CERTIFICATE", true),
		},
		Tracing: TracingConfig{
			Enabled: getEnvAsBool("TRACING_ENABLED", false),
		},
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
