package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/prestamos?sslmode=disable")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REPORT_CACHE_TTL", "2m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.JWTExpiresIn)
	assert.Equal(t, 2*time.Minute, cfg.Business.ReportCacheTTL)
	assert.Equal(t, "postgres://u:p@localhost:5432/prestamos?sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, "local", cfg.Storage.Driver)
}

func TestLoad_WithoutSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/prestamos?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.ValidateAuth()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateAuth(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.ValidateAuth())

	cfg.Auth.JWTExpiresIn = 0
	assert.ErrorContains(t, cfg.ValidateAuth(), "JWT_EXPIRES_IN")

	cfg.Auth.JWTSecret = ""
	assert.ErrorContains(t, cfg.ValidateAuth(), "JWT_SECRET")
}

func validConfig() *Config {
	return &Config{
		Server:    ServerConfig{Port: "4000"},
		Database:  DatabaseConfig{Host: "localhost", Port: "5432", Name: "prestamos", User: "postgres", SSLMode: "disable"},
		Auth:      AuthConfig{JWTSecret: "s", JWTExpiresIn: time.Hour},
		Scheduler: SchedulerConfig{Timezone: "UTC"},
		Storage:   StorageConfig{Driver: "local"},
		Business:  BusinessConfig{Timezone: "UTC"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*Config)
		errorContains string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "no token settings", mutate: func(c *Config) { c.Auth = AuthConfig{} }},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, errorContains: "SERVER_PORT"},
		{name: "missing database", mutate: func(c *Config) { c.Database.Host = "" }, errorContains: "DATABASE"},
		{name: "bad timezone", mutate: func(c *Config) { c.Business.Timezone = "Mars/Olympus" }, errorContains: "BUSINESS_TIMEZONE"},
		{name: "s3 without bucket", mutate: func(c *Config) { c.Storage.Driver = "s3"; c.Storage.S3Endpoint = "minio:9000" }, errorContains: "S3_BUCKET"},
		{name: "unknown storage", mutate: func(c *Config) { c.Storage.Driver = "ftp" }, errorContains: "STORAGE_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestDSN_FromParts(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Password = "secret"

	assert.Equal(t, "host=localhost port=5432 user=postgres dbname=prestamos sslmode=disable password=secret", cfg.Database.DSN())
}

func TestRedisAddr(t *testing.T) {
	assert.Equal(t, "", RedisConfig{Port: "6379"}.Addr())
	assert.Equal(t, "cache:6379", RedisConfig{Host: "cache", Port: "6379"}.Addr())
}
