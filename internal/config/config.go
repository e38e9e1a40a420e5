package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/attendly/attendance-backend-go/internal/engine/timeclock"
	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Engine   EngineConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// EngineConfig holds the attendance engine tuning. Everything here is passed
// explicitly into computations; the engine never reads ambient settings.
type EngineConfig struct {
	// Timezone is the application default, used for users whose department
	// does not carry its own zone. Validated at load; an invalid identifier
	// is a startup failure, not a runtime fallback.
	Timezone string
	Location *time.Location

	// StandardWorkday is the workday length overtime is measured against.
	StandardWorkday time.Duration

	// ActiveCap / BreakCap bound a single interval before aggregation.
	ActiveCap time.Duration
	BreakCap  time.Duration

	// AbsentMargin is how far past the grace window "now" must be before a
	// late user may be manually marked absent.
	AbsentMargin time.Duration
}

// Caps packages the interval bounds in the form the aggregation expects.
func (e EngineConfig) Caps() timeclock.Caps {
	return timeclock.Caps{
		Active: e.ActiveCap,
		Break:  e.BreakCap,
	}
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendly"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Engine configuration
	engine, err := loadEngineConfig()
	if err != nil {
		return nil, err
	}
	config.Engine = engine

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadEngineConfig() (EngineConfig, error) {
	tz := getEnv("APP_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return EngineConfig{}, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tz, err)
	}

	workHours, err := strconv.Atoi(getEnv("DEFAULT_WORK_HOURS", "8"))
	if err != nil || workHours <= 0 {
		return EngineConfig{}, fmt.Errorf("invalid DEFAULT_WORK_HOURS: %q", getEnv("DEFAULT_WORK_HOURS", "8"))
	}

	activeCap, err := strconv.Atoi(getEnv("ACTIVE_CAP_HOURS", "24"))
	if err != nil || activeCap <= 0 {
		return EngineConfig{}, fmt.Errorf("invalid ACTIVE_CAP_HOURS: %q", getEnv("ACTIVE_CAP_HOURS", "24"))
	}

	breakCap, err := strconv.Atoi(getEnv("BREAK_CAP_HOURS", "8"))
	if err != nil || breakCap <= 0 {
		return EngineConfig{}, fmt.Errorf("invalid BREAK_CAP_HOURS: %q", getEnv("BREAK_CAP_HOURS", "8"))
	}

	absentMargin, err := strconv.Atoi(getEnv("ABSENT_MARGIN_MINUTES", "0"))
	if err != nil || absentMargin < 0 {
		return EngineConfig{}, fmt.Errorf("invalid ABSENT_MARGIN_MINUTES: %q", getEnv("ABSENT_MARGIN_MINUTES", "0"))
	}

	return EngineConfig{
		Timezone:        tz,
		Location:        loc,
		StandardWorkday: time.Duration(workHours) * time.Hour,
		ActiveCap:       time.Duration(activeCap) * time.Hour,
		BreakCap:        time.Duration(breakCap) * time.Hour,
		AbsentMargin:    time.Duration(absentMargin) * time.Minute,
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
