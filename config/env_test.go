package config_test

import (
	"testing"
	"time"

	"employee_management/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_PASSWORD", "admin123")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("TOKEN_EXPIRY", "")
	t.Setenv("DB_AUTO_MIGRATE", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("ADMIN_EMAIL", "")

	require.NoError(t, config.LoadConfig())

	cfg := config.AppConfig
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "company.db", cfg.DBPath)
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiry)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, "admin", cfg.AdminEmail)
}

func TestLoadConfigMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ADMIN_PASSWORD", "admin123")

	err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfigPostgresNeedsDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_PASSWORD", "admin123")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "")

	err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DSN")
}

func TestLoadConfigInvalidExpiry(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ADMIN_PASSWORD", "admin123")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("TOKEN_EXPIRY", "tomorrow")

	err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_EXPIRY")
}

func TestOpenDatabaseSQLiteMigrates(t *testing.T) {
	cfg := config.Config{
		Env:         "test",
		DBDriver:    config.DriverSQLite,
		DBPath:      "file:" + t.Name() + "?mode=memory&cache=shared",
		AutoMigrate: true,
	}

	db, err := config.OpenDatabase(cfg)
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable("employees"))
	assert.True(t, db.Migrator().HasTable("monthly_records"))
	assert.True(t, db.Migrator().HasTable("pay_requests"))
	assert.True(t, db.Migrator().HasTable("messages"))
	assert.True(t, db.Migrator().HasTable("notifications"))
}

func TestOpenDatabaseUnknownDriver(t *testing.T) {
	_, err := config.OpenDatabase(config.Config{DBDriver: "oracle"})
	require.Error(t, err)
}
