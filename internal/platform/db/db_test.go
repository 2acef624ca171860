package db_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biblioteca-backend/internal/platform/db"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1.0.0"
mode: dev
database:
  driver: sqlite3
  path: biblioteca.db
`), 0o644))

	cfg, err := db.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Mode)
	assert.Equal(t, db.DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "biblioteca.db", cfg.DB.Path)
	// addr assume o padrão quando omitido
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := db.LoadConfig(filepath.Join(t.TempDir(), "nao-existe.yaml"))
	assert.Error(t, err)
}

func TestConnect_SQLite(t *testing.T) {
	conn, err := db.Connect(db.DatabaseConfig{
		Driver: db.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	defer conn.Close()

	assert.NoError(t, conn.Ping())
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := db.Connect(db.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
