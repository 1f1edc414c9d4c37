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

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Planning PlanningConfig
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
	Secret            string
	AccessExpiration  string
	RefreshExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// PlanningConfig holds the planning-horizon and aggregation tunables.
type PlanningConfig struct {
	HorizonStartYear     int
	HorizonEndYear       int
	DefaultHourlyRate    float64
	PresalesDefaultHours float64
	RefreshDebounce      time.Duration
	PollInterval         time.Duration
	ExcludedSuppliers    []string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
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
		Name:     getEnv("DB_NAME", "planboard"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
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
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
	}

	// Planning configuration
	horizonStart, err := strconv.Atoi(getEnv("PLANNING_HORIZON_START_YEAR", "2024"))
	if err != nil {
		return nil, fmt.Errorf("invalid PLANNING_HORIZON_START_YEAR: %w", err)
	}
	horizonEnd, err := strconv.Atoi(getEnv("PLANNING_HORIZON_END_YEAR", "2027"))
	if err != nil {
		return nil, fmt.Errorf("invalid PLANNING_HORIZON_END_YEAR: %w", err)
	}
	defaultRate, err := strconv.ParseFloat(getEnv("DEFAULT_HOURLY_RATE", "800"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_HOURLY_RATE: %w", err)
	}
	presalesHours, err := strconv.ParseFloat(getEnv("PRESALES_DEFAULT_HOURS", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PRESALES_DEFAULT_HOURS: %w", err)
	}
	refreshDebounce, err := time.ParseDuration(getEnv("FEED_REFRESH_DEBOUNCE", "200ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid FEED_REFRESH_DEBOUNCE: %w", err)
	}
	pollInterval, err := time.ParseDuration(getEnv("FEED_POLL_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid FEED_POLL_INTERVAL: %w", err)
	}

	config.Planning = PlanningConfig{
		HorizonStartYear:     horizonStart,
		HorizonEndYear:       horizonEnd,
		DefaultHourlyRate:    defaultRate,
		PresalesDefaultHours: presalesHours,
		RefreshDebounce:      refreshDebounce,
		PollInterval:         pollInterval,
		ExcludedSuppliers:    getEnvSlice("LICENSE_EXCLUDED_SUPPLIERS"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Planning.HorizonStartYear > c.Planning.HorizonEndYear {
		return fmt.Errorf("PLANNING_HORIZON_START_YEAR must not be after PLANNING_HORIZON_END_YEAR")
	}
	if c.Planning.PresalesDefaultHours <= 0 {
		return fmt.Errorf("PRESALES_DEFAULT_HOURS must be positive")
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

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
