package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EmbebidasConUpYDown(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		raw, err := fs.ReadFile(migrationsFS, f)
		require.NoError(t, err)
		body := string(raw)
		assert.True(t, strings.Contains(body, "-- +goose Up"), f)
		assert.True(t, strings.Contains(body, "-- +goose Down"), f)
	}
}

func TestMigrations_TablasDeCadaRepositorio(t *testing.T) {
	raw, err := fs.ReadFile(migrationsFS, "migrations/00001_init.sql")
	require.NoError(t, err)
	for _, table := range []string{"companies", "products", "customers", "orders", "supply_orders", "channels", "notifications"} {
		assert.Contains(t, string(raw), "CREATE TABLE "+table+" (", table)
	}
	assert.Contains(t, string(raw), "CHECK (stock >= 0)")
}
