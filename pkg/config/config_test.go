package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "ventas-api", cfg.App.Name)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "SAP-", cfg.Sales.RefCodePrefix)
	assert.Equal(t, 3, cfg.Sales.RefCodeMaxAttempts)
	assert.Equal(t, 10*time.Second, cfg.Sales.Timeout)
	assert.Equal(t, 3*time.Second, cfg.DB.LockTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
	assert.Equal(t, 2*time.Minute, cfg.Redis.PendingTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SALES_REFCODE_PREFIX", "VTA-")
	t.Setenv("SALES_REFCODE_MAX_ATTEMPTS", "5")
	t.Setenv("DB_LOCK_TIMEOUT_MS", "750")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "VTA-", cfg.Sales.RefCodePrefix)
	assert.Equal(t, 5, cfg.Sales.RefCodeMaxAttempts)
	assert.Equal(t, 750*time.Millisecond, cfg.DB.LockTimeout)
}

func TestLoad_ReintentosInvalidos(t *testing.T) {
	t.Setenv("SALES_REFCODE_MAX_ATTEMPTS", "0")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_EnteroInvalidoEsError(t *testing.T) {
	t.Setenv("DB_LOCK_TIMEOUT_MS", "abc")
	t.Setenv("HTTP_PORT", "80a")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_LOCK_TIMEOUT_MS")
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_EnteroConEspacios(t *testing.T) {
	t.Setenv("DB_LOCK_TIMEOUT_MS", " 500 ")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, cfg.DB.LockTimeout)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "ventas", Password: "p@ss:word", DBName: "ventas", SSLMode: "disable"}
	assert.Equal(t, "postgres://ventas:p%40ss%3Aword@db:5432/ventas?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
