package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.DB.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, 10*time.Second, cfg.AI.Timeout())
	assert.False(t, cfg.Orders.RequireFullVerification, "la verificación es orientativa por defecto")
	assert.Equal(t, "0 8 * * *", cfg.Finance.CollectionsCron)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestFromViper_LeeValoresComoTexto(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "Postgres")
	v.Set("HTTP_PORT", "9090")
	v.Set("ORDERS_REQUIRE_FULL_VERIFICATION", "true")
	v.Set("AI_TIMEOUT_SECONDS", "3")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.True(t, cfg.Orders.RequireFullVerification)
	assert.Equal(t, 3*time.Second, cfg.AI.Timeout())
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "mongo")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionStringEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "ops", Password: "p@ss:word", DBName: "operaciones", SSLMode: "disable"}
	assert.Equal(t, "postgres://ops:p%40ss%3Aword@db:5432/operaciones?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
