package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GIN_MODE", "DATABASE_URL", "DB_HOST", "DB_USERNAME", "DB_PASSWORD", "DB_NAME",
		"DB_PORT", "DB_SSLMODE", "DB_TIMEZONE", "JWT_SECRET_KEY", "REALTIME_MODE", "MONGO_URI",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, RealtimeLocal, cfg.RealtimeMode)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Error(t, cfg.Validate(), "JWT secret is required")
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9090\nJWT_SECRET_KEY=s3cret\nDB_HOST=db\nDB_NAME=rooms\n"), 0o600))
	// godotenv does not override variables that are already set, and
	// t.Setenv("", ...) counts as set; unset them for this test.
	for _, k := range []string{"PORT", "JWT_SECRET_KEY", "DB_HOST", "DB_NAME"} {
		os.Unsetenv(k)
	}

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "host=db user= password= dbname=rooms port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}

func TestValidate(t *testing.T) {
	base := Config{Port: 8080, JWTSecret: "x", RealtimeMode: RealtimeLocal, DatabaseURL: "postgres://localhost/rooms"}
	require.NoError(t, base.Validate())

	noDB := base
	noDB.DatabaseURL = ""
	assert.Error(t, noDB.Validate())

	noDB.InMemory = true
	assert.NoError(t, noDB.Validate())

	pgMemory := noDB
	pgMemory.RealtimeMode = RealtimePostgres
	assert.Error(t, pgMemory.Validate())

	badMode := base
	badMode.RealtimeMode = "kafka"
	assert.Error(t, badMode.Validate())

	assert.Equal(t, "postgres://localhost/rooms", base.DSN())
}
