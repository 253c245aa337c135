package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Storage  StorageConfig
	Policy   PolicyConfig
	Jobs     JobsConfig
}

type DatabaseConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	RunMigrations bool
}

// JWTConfig holds JWT configuration. An empty secret disables token verification.
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	Timezone    string
	FrontendURL string
}

// StorageConfig selects the record store and the file store.
type StorageConfig struct {
	Driver   string // "memory" or "postgres"
	BasePath string
	BaseURL  string
}

type DeletePolicy string

const (
	DeletePolicyRetain  DeletePolicy = "retain"
	DeletePolicyCascade DeletePolicy = "cascade"
)

// PolicyConfig carries the behaviour switches the product has not settled on.
type PolicyConfig struct {
	EmployeeDelete       DeletePolicy
	LeaveAllowRedecision bool
}

type JobsConfig struct {
	AbsenceEnabled  bool
	AbsenceInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	runMigrations, err := strconv.ParseBool(getEnv("RUN_MIGRATIONS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid RUN_MIGRATIONS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:          getEnv("DB_HOST", "localhost"),
		Port:          dbPort,
		User:          getEnv("DB_USER", "postgres"),
		Password:      getEnv("DB_PASSWORD", ""),
		Name:          getEnv("DB_NAME", "hris-dashboard"),
		SSLMode:       getEnv("DB_SSL_MODE", "disable"),
		RunMigrations: runMigrations,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Timezone:    getEnv("APP_TIMEZONE", "UTC"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Storage = StorageConfig{
		Driver:   strings.ToLower(getEnv("STORAGE_DRIVER", "memory")),
		BasePath: getEnv("FILE_STORAGE_PATH", "./uploads"),
		BaseURL:  getEnv("FILE_STORAGE_URL", "http://localhost:8080/uploads"),
	}

	allowRedecision, err := strconv.ParseBool(getEnv("LEAVE_ALLOW_REDECISION", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEAVE_ALLOW_REDECISION: %w", err)
	}

	config.Policy = PolicyConfig{
		EmployeeDelete:       DeletePolicy(strings.ToLower(getEnv("EMPLOYEE_DELETE_POLICY", string(DeletePolicyRetain)))),
		LeaveAllowRedecision: allowRedecision,
	}

	absenceEnabled, err := strconv.ParseBool(getEnv("ABSENCE_JOB_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid ABSENCE_JOB_ENABLED: %w", err)
	}
	absenceInterval, err := time.ParseDuration(getEnv("ABSENCE_JOB_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ABSENCE_JOB_INTERVAL: %w", err)
	}

	config.Jobs = JobsConfig{
		AbsenceEnabled:  absenceEnabled,
		AbsenceInterval: absenceInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when STORAGE_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be memory or postgres, got %q", c.Storage.Driver)
	}

	switch c.Policy.EmployeeDelete {
	case DeletePolicyRetain, DeletePolicyCascade:
	default:
		return fmt.Errorf("EMPLOYEE_DELETE_POLICY must be retain or cascade, got %q", c.Policy.EmployeeDelete)
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	if c.JWT.Secret != "" {
		if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
			return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
		}
	}

	if c.Jobs.AbsenceInterval <= 0 {
		return fmt.Errorf("ABSENCE_JOB_INTERVAL must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location returns the configured business timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
