package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Env      string
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type StoreConfig struct {
	Driver         string
	URI            string
	Database       string
	Collection     string
	ConnectTimeout int
}

type AuthConfig struct {
	APIKeys []string // Keys accepted on write routes; empty disables the check
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "3000"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Store: StoreConfig{
			Driver:         strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMongo)),
			URI:            os.Getenv("MONGO_URI"),
			Database:       getEnv("DB_NAME", "productdb"),
			Collection:     getEnv("COLLECTION_NAME", "products"),
			ConnectTimeout: getEnvAsInt("STORE_CONNECT_TIMEOUT", 10),
		},
		Auth: AuthConfig{
			APIKeys: getEnvAsSlice("API_KEYS", nil),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Env:      strings.ToLower(getEnv("APP_ENV", EnvProduction)),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Driver {
	case StoreDriverMongo:
		if c.Store.URI == "" {
			return fmt.Errorf("MONGO_URI is required")
		}
		if c.Store.Database == "" || c.Store.Collection == "" {
			return fmt.Errorf("DB_NAME and COLLECTION_NAME must not be empty")
		}
	case StoreDriverMemory:
		// The memory store loses every write on restart
		if c.Env != EnvDevelopment {
			return fmt.Errorf("STORE_DRIVER=memory requires APP_ENV=development")
		}
	default:
		return fmt.Errorf("invalid store driver: %s (must be mongo or memory)", c.Store.Driver)
	}

	if c.Store.ConnectTimeout <= 0 {
		return fmt.Errorf("STORE_CONNECT_TIMEOUT must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
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

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
