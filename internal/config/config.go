package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
	Storage  StorageConfig
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
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds the payroll defaults. Companies can override the late
// threshold per record; these are the fallbacks used when a company carries
// no explicit setting.
type PayrollConfig struct {
	DefaultTimezone   string
	NightStartHour    int
	NightEndHour      int
	LateThresholdMins int
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("no .env file found, reading configuration from environment")
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
		Name:     getEnv("DB_NAME", "nominapy"),
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
	jwtRefreshExpiration := getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h")
	jwtAccessExpiration := getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h")

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: jwtRefreshExpiration,
		AccessExpiration:  jwtAccessExpiration,
	}

	// Payroll configuration
	nightStart, err := strconv.Atoi(getEnv("PAYROLL_NIGHT_START_HOUR", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_NIGHT_START_HOUR: %w", err)
	}
	nightEnd, err := strconv.Atoi(getEnv("PAYROLL_NIGHT_END_HOUR", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_NIGHT_END_HOUR: %w", err)
	}
	lateThreshold, err := strconv.Atoi(getEnv("PAYROLL_LATE_THRESHOLD_MINUTES", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_LATE_THRESHOLD_MINUTES: %w", err)
	}

	config.Payroll = PayrollConfig{
		DefaultTimezone:   getEnv("PAYROLL_DEFAULT_TZ", "America/Asuncion"),
		NightStartHour:    nightStart,
		NightEndHour:      nightEnd,
		LateThresholdMins: lateThreshold,
	}

	// Storage configuration
	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "local"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
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
	if c.Payroll.NightStartHour < 0 || c.Payroll.NightStartHour > 23 {
		return fmt.Errorf("PAYROLL_NIGHT_START_HOUR must be between 0 and 23")
	}
	if c.Payroll.NightEndHour < 0 || c.Payroll.NightEndHour > 23 {
		return fmt.Errorf("PAYROLL_NIGHT_END_HOUR must be between 0 and 23")
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
