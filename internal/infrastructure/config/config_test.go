package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"GSTBILL_APP_NAME":                os.Getenv("GSTBILL_APP_NAME"),
		"GSTBILL_APP_ENV":                 os.Getenv("GSTBILL_APP_ENV"),
		"GSTBILL_APP_PORT":                os.Getenv("GSTBILL_APP_PORT"),
		"GSTBILL_DATABASE_HOST":           os.Getenv("GSTBILL_DATABASE_HOST"),
		"GSTBILL_DATABASE_PORT":           os.Getenv("GSTBILL_DATABASE_PORT"),
		"GSTBILL_DATABASE_USER":           os.Getenv("GSTBILL_DATABASE_USER"),
		"GSTBILL_DATABASE_PASSWORD":       os.Getenv("GSTBILL_DATABASE_PASSWORD"),
		"GSTBILL_DATABASE_DBNAME":         os.Getenv("GSTBILL_DATABASE_DBNAME"),
		"GSTBILL_DATABASE_SSLMODE":        os.Getenv("GSTBILL_DATABASE_SSLMODE"),
		"GSTBILL_DATABASE_MAX_OPEN_CONNS": os.Getenv("GSTBILL_DATABASE_MAX_OPEN_CONNS"),
		"GSTBILL_DATABASE_MAX_IDLE_CONNS": os.Getenv("GSTBILL_DATABASE_MAX_IDLE_CONNS"),
		"GSTBILL_REDIS_HOST":              os.Getenv("GSTBILL_REDIS_HOST"),
		"GSTBILL_BILLING_DEFAULT_STATE":   os.Getenv("GSTBILL_BILLING_DEFAULT_STATE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "gstbill-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "gstbill", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "localhost", cfg.Redis.Host)
		assert.Equal(t, 6379, cfg.Redis.Port)
		assert.Equal(t, 4, cfg.Billing.HSNDigits)
	})

	t.Run("loads values from environment variables with GSTBILL prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("GSTBILL_APP_NAME", "test-app")
		os.Setenv("GSTBILL_APP_ENV", "testing")
		os.Setenv("GSTBILL_APP_PORT", "9000")
		os.Setenv("GSTBILL_DATABASE_HOST", "testdb.local")
		os.Setenv("GSTBILL_DATABASE_PORT", "5433")
		os.Setenv("GSTBILL_DATABASE_USER", "testuser")
		os.Setenv("GSTBILL_DATABASE_PASSWORD", "testpass")
		os.Setenv("GSTBILL_DATABASE_DBNAME", "testdb")
		os.Setenv("GSTBILL_DATABASE_SSLMODE", "require")
		os.Setenv("GSTBILL_REDIS_HOST", "redis.local")
		os.Setenv("GSTBILL_BILLING_DEFAULT_STATE", "Karnataka")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, "redis.local", cfg.Redis.Host)
		assert.Equal(t, "Karnataka", cfg.Billing.DefaultState)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("GSTBILL_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("GSTBILL_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("production requires password and ssl", func(t *testing.T) {
		clearEnv()
		os.Setenv("GSTBILL_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "gstbill",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "gstbill")
	assert.Contains(t, dsn, "sslmode=disable")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "redis.local", Port: 6380}
	assert.Equal(t, "redis.local:6380", cfg.Addr())
}
