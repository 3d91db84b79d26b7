package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadConfig(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "recipes")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "recipeshare")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("JWT_EXPIRES_IN", "15m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://recipes.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Env)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "recipes", cfg.DBUser)
	assert.Equal(t, "secret", cfg.DBPassword)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiresIn)
	assert.Equal(t, 30*24*time.Hour, cfg.JWTRefreshExpiresIn)
	assert.Equal(t, []string{"http://localhost:5173", "https://recipes.example.com"}, cfg.CORSAllowedOrigins)
	assert.Contains(t, cfg.PostgresDSN(), "host=db port=5433 user=recipes")
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTExpiresIn)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "", cfg.RedisURL)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWTSecret")
}

func TestLoadConfigReadsDockerSecrets(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")
	dir := os.Getenv("SECRETS_DIR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret-file\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret-file", cfg.JWTSecret)
}

func TestLoadConfigRejectsBadLifetime(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_REFRESH_EXPIRES_IN", "forever")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_REFRESH_EXPIRES_IN")
}

func TestParseLifetime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"7d", 7 * 24 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"90m", 90 * time.Minute, false},
		{"0d", 0, true},
		{"xd", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLifetime(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("ENV", "production")
	assert.Equal(t, CI, GetEnvironment())

	t.Setenv("CI", "")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "staging")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "development")
	assert.Equal(t, Development, GetEnvironment())
}

func TestLoadConfigWithoutEnvIsNotDevelopment(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ENV", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Production, cfg.Env)
	assert.False(t, cfg.IsDevelopment())
}

func TestValidateConfigSQLiteInProduction(t *testing.T) {
	cfg := &Config{
		Env:                 Production,
		ServerPort:          "8080",
		ShutdownTimeout:     time.Second,
		DBDriver:            "sqlite",
		SQLitePath:          "x.db",
		JWTSecret:           "s",
		JWTExpiresIn:        time.Hour,
		JWTRefreshExpiresIn: time.Hour,
		CORSAllowedOrigins:  []string{"http://localhost:5173"},
		LogLevel:            "info",
		LogFormat:           "json",
		RateLimitWindow:     time.Hour,
		RecipeCreateLimit:   1,
		RecipeModifyLimit:   1,
		AuthRatePerSecond:   1,
		AuthRateBurst:       1,
	}
	err := ValidateConfig(cfg)
	assert.ErrorContains(t, err, "production requires postgres")

	cfg.Env = Development
	assert.NoError(t, ValidateConfig(cfg))
}
