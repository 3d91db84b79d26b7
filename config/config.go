package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment `mapstructure:"-" validate:"required,oneof=development test ci production"`

	// Server configuration
	ServerHost      string        `mapstructure:"SERVER_HOST"`
	ServerPort      string        `mapstructure:"SERVER_PORT" validate:"required,numeric"`
	ShutdownTimeout time.Duration `mapstructure:"-" validate:"gt=0"`

	// Database configuration
	DBDriver    string `mapstructure:"DB_DRIVER" validate:"required,oneof=postgres sqlite"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBSSLMode   string `mapstructure:"DB_SSL_MODE"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`

	// Redis configuration. Rate limiting is disabled when RedisURL is empty.
	RedisURL      string `mapstructure:"REDIS_URL"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	// JWT configuration
	JWTSecret           string        `mapstructure:"JWT_SECRET" validate:"required"`
	JWTExpiresIn        time.Duration `mapstructure:"-" validate:"gt=0"`
	JWTRefreshExpiresIn time.Duration `mapstructure:"-" validate:"gt=0"`

	CORSAllowedOrigins []string `mapstructure:"-" validate:"min=1,dive,required"`

	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"required,oneof=debug info warn error dpanic panic fatal"`
	LogFormat string `mapstructure:"LOG_FORMAT" validate:"required,oneof=json console"`

	// Rate limiting
	RateLimitWindow   time.Duration `mapstructure:"-" validate:"gt=0"`
	RecipeCreateLimit int           `mapstructure:"RECIPE_CREATE_LIMIT" validate:"gte=1"`
	RecipeModifyLimit int           `mapstructure:"RECIPE_MODIFY_LIMIT" validate:"gte=1"`
	AuthRatePerSecond float64       `mapstructure:"AUTH_RATE_PER_SECOND" validate:"gt=0"`
	AuthRateBurst     int           `mapstructure:"AUTH_RATE_BURST" validate:"gte=1"`
}

var defaults = map[string]any{
	"SERVER_HOST":            "0.0.0.0",
	"SERVER_PORT":            "8080",
	"SHUTDOWN_TIMEOUT":       "15s",
	"DB_DRIVER":              "postgres",
	"DATABASE_URL":           "",
	"DB_HOST":                "localhost",
	"DB_PORT":                "5432",
	"DB_USER":                "postgres",
	"DB_PASSWORD":            "",
	"DB_NAME":                "recipeshare",
	"DB_SSL_MODE":            "disable",
	"SQLITE_PATH":            "recipeshare.db",
	"REDIS_URL":              "",
	"REDIS_PASSWORD":         "",
	"JWT_SECRET":             "",
	"JWT_EXPIRES_IN":         "7d",
	"JWT_REFRESH_EXPIRES_IN": "30d",
	"CORS_ALLOWED_ORIGINS":   "http://localhost:5173",
	"LOG_LEVEL":              "info",
	"LOG_FORMAT":             "json",
	"RATE_LIMIT_WINDOW":      "1h",
	"RECIPE_CREATE_LIMIT":    20,
	"RECIPE_MODIFY_LIMIT":    60,
	"AUTH_RATE_PER_SECOND":   1.0,
	"AUTH_RATE_BURST":        10,
}

// secretKeys are read from the secrets directory when the environment leaves them empty
var secretKeys = map[string]func(*Config) *string{
	"jwt_secret":     func(c *Config) *string { return &c.JWTSecret },
	"db_password":    func(c *Config) *string { return &c.DBPassword },
	"redis_password": func(c *Config) *string { return &c.RedisPassword },
}

// LoadConfig creates a new Config instance with values from defaults, an optional
// config.yaml, .env files, environment variables and Docker secrets, in that order.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}
	cfg.Env = GetEnvironment()

	var err error
	if cfg.ShutdownTimeout, err = ParseLifetime(v.GetString("SHUTDOWN_TIMEOUT")); err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	if cfg.JWTExpiresIn, err = ParseLifetime(v.GetString("JWT_EXPIRES_IN")); err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}
	if cfg.JWTRefreshExpiresIn, err = ParseLifetime(v.GetString("JWT_REFRESH_EXPIRES_IN")); err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRES_IN: %w", err)
	}
	if cfg.RateLimitWindow, err = ParseLifetime(v.GetString("RATE_LIMIT_WINDOW")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	for name, field := range secretKeys {
		if target := field(&cfg); *target == "" {
			*target = readSecret(name)
		}
	}

	// Validate the configuration
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// IsDevelopment reports whether error details may be exposed to clients
func (c *Config) IsDevelopment() bool {
	return c.Env == Development
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// PostgresDSN returns DATABASE_URL when set, otherwise a DSN built from the DB_* fields
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// ParseLifetime parses a Go duration and additionally accepts a whole number of days ("7d").
func ParseLifetime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
