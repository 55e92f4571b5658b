package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Application settings
	AppEnv        string
	AppPort       int
	FrontendURL   string
	RunMigrations bool

	// Database settings
	DatabaseURL                string
	DatabaseMaxConnections     int
	DatabaseMaxIdleConnections int
	DatabaseConnectionLifetime time.Duration

	// Session settings (gorilla/sessions cookie store carrying {user_id, role})
	SessionSecret   string
	SessionDuration time.Duration

	// CORS settings
	CORSAllowedOrigins   string
	CORSAllowCredentials bool

	// Logging
	LogLevel  string
	LogFormat string

	// NATS settings
	NATSURL string

	// Devis defaults: loaded from the environment, but no use case reads
	// them; entities.NewDevis applies its own built-in rates.
	DefaultTauxFraisGeneraux float64
	DefaultTauxMargeCible    float64
	DefaultTauxTVA           float64
	DevisValiditeJours       int

	// Relance batch settings
	RelanceBatchCadence time.Duration
	RelanceMaxParJour   int

	// Rate limiting for outbound notification/import calls
	ThrottleRequestsPerSecond float64
	ThrottleBurst             int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		AppPort:       getEnvAsInt("APP_PORT", 8080),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
		RunMigrations: getEnvAsBool("RUN_MIGRATIONS", false),

		DatabaseURL:                getEnv("DATABASE_URL", ""),
		DatabaseMaxConnections:     getEnvAsInt("DATABASE_MAX_CONNECTIONS", 25),
		DatabaseMaxIdleConnections: getEnvAsInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
		DatabaseConnectionLifetime: getEnvAsDuration("DATABASE_CONNECTION_LIFETIME", 5*time.Minute),

		SessionSecret:   getEnv("SESSION_SECRET", ""),
		SessionDuration: getEnvAsDuration("SESSION_DURATION", 24*time.Hour),

		CORSAllowedOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		CORSAllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", true),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		NATSURL: getEnv("NATS_URL", "nats://localhost:4222"),

		DefaultTauxFraisGeneraux: getEnvAsFloat("DEFAULT_TAUX_FRAIS_GENERAUX", 10.0),
		DefaultTauxMargeCible:    getEnvAsFloat("DEFAULT_TAUX_MARGE_CIBLE", 15.0),
		DefaultTauxTVA:           getEnvAsFloat("DEFAULT_TAUX_TVA", 20.0),
		DevisValiditeJours:       getEnvAsInt("DEVIS_VALIDITE_JOURS", 90),

		RelanceBatchCadence: getEnvAsDuration("RELANCE_BATCH_CADENCE", 1*time.Hour),
		RelanceMaxParJour:   getEnvAsInt("RELANCE_MAX_PAR_JOUR", 3),

		ThrottleRequestsPerSecond: getEnvAsFloat("THROTTLE_REQUESTS_PER_SECOND", 5.0),
		ThrottleBurst:             getEnvAsInt("THROTTLE_BURST", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
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
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
