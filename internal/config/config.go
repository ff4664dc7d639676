package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Storage    StorageConfig
	LeaveAlert LeaveAlertConfig
	LowStock   LowStockConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32

	// AutoMigrate applies the embedded schema on startup.
	AutoMigrate bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// StorageConfig selects where uploaded blobs live.
type StorageConfig struct {
	Type              string // "local" or "object_store"
	BasePath          string
	BaseURL           string
	Endpoint          string
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	UsePathStyle      bool
	PresignExpiration time.Duration
}

type LeaveAlertConfig struct {
	LookaheadDays int
	Interval      time.Duration
}

type LowStockConfig struct {
	Interval time.Duration
}

const (
	StorageTypeLocal       = "local"
	StorageTypeObjectStore = "object_store"
)

func Load() (*Config, error) {
	// .env is optional; real deployments inject the environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "guardforce"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),

		AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
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

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Storage configuration
	presign, err := time.ParseDuration(getEnv("S3_PRESIGN_EXPIRATION", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid S3_PRESIGN_EXPIRATION: %w", err)
	}
	config.Storage = StorageConfig{
		Type:              getEnv("STORAGE_TYPE", StorageTypeLocal),
		BasePath:          getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:           getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		Endpoint:          getEnv("S3_ENDPOINT", ""),
		Region:            getEnv("S3_REGION", "us-east-1"),
		Bucket:            getEnv("S3_BUCKET", ""),
		AccessKey:         getEnv("S3_ACCESS_KEY", ""),
		SecretKey:         getEnv("S3_SECRET_KEY", ""),
		UsePathStyle:      getEnvBool("S3_USE_PATH_STYLE", true),
		PresignExpiration: presign,
	}

	// Leave alert job
	lookahead, err := strconv.Atoi(getEnv("LEAVE_ALERT_LOOKAHEAD_DAYS", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEAVE_ALERT_LOOKAHEAD_DAYS: %w", err)
	}
	alertInterval, err := time.ParseDuration(getEnv("LEAVE_ALERT_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEAVE_ALERT_INTERVAL: %w", err)
	}
	config.LeaveAlert = LeaveAlertConfig{
		LookaheadDays: lookahead,
		Interval:      alertInterval,
	}

	lowStockInterval, err := time.ParseDuration(getEnv("LOW_STOCK_ALERT_INTERVAL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOW_STOCK_ALERT_INTERVAL: %w", err)
	}
	config.LowStock = LowStockConfig{Interval: lowStockInterval}

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
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	switch c.Storage.Type {
	case StorageTypeLocal:
		if c.Storage.BasePath == "" {
			return fmt.Errorf("STORAGE_BASE_PATH is required for local storage")
		}
	case StorageTypeObjectStore:
		if c.Storage.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for object_store storage")
		}
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required for object_store storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE: %q", c.Storage.Type)
	}
	if c.LeaveAlert.LookaheadDays < 0 {
		return fmt.Errorf("LEAVE_ALERT_LOOKAHEAD_DAYS must not be negative")
	}
	if c.LeaveAlert.Interval <= 0 {
		return fmt.Errorf("LEAVE_ALERT_INTERVAL must be positive")
	}
	if c.LowStock.Interval <= 0 {
		return fmt.Errorf("LOW_STOCK_ALERT_INTERVAL must be positive")
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

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(getEnv(key, ""))
	switch value {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return fallback
}
