package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "vn")
	t.Setenv("DB_NAME", "vn")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("JWT_SECRET", "jwt")

	cfg, err := load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "chapter1_scene1", cfg.StartSceneID)
	assert.Equal(t, "hero", cfg.ProtagonistID)
	assert.Equal(t, []string{"이도훈", "도훈"}, cfg.NameTokens)
	assert.Equal(t, 5*time.Minute, cfg.DBIdleTimeout)
	assert.Equal(t, "gameplay_events", cfg.EventsExchange)
	assert.False(t, cfg.RestoreAffinity)
	assert.Equal(t, "postgres://vn:pw@db:5432/vn?sslmode=disable", cfg.GetDSN())
	assert.Equal(t, "postgres://vn:***@db:5432/vn?sslmode=disable", cfg.RedactedDSN())
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("JWT_SECRET", "jwt")
	t.Setenv("NAME_TOKENS", "이도훈,도훈")
	t.Setenv("RESTORE_AFFINITY_ON_LOAD", "true")
	t.Setenv("REQUIRE_IDEMPOTENCY_KEY", "true")

	cfg, err := load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"이도훈", "도훈"}, cfg.NameTokens)
	assert.True(t, cfg.RestoreAffinity)
	assert.True(t, cfg.RequireIdemKey)
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_USER", "DB_NAME"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	_, err := load(t.TempDir())
	assert.Error(t, err)
}

func TestReadSecret(t *testing.T) {
	dir := t.TempDir()

	t.Run("File wins over env", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-file\n"), 0o600))
		t.Setenv("JWT_SECRET", "from-env")
		v, err := readSecret(dir, "jwt_secret", "JWT_SECRET")
		require.NoError(t, err)
		assert.Equal(t, "from-file", v)
	})

	t.Run("Env fallback", func(t *testing.T) {
		t.Setenv("DB_PASSWORD", "from-env")
		v, err := readSecret(dir, "db_password", "DB_PASSWORD")
		require.NoError(t, err)
		assert.Equal(t, "from-env", v)
	})

	t.Run("Empty file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), []byte("  "), 0o600))
		_, err := readSecret(dir, "empty", "UNUSED_SECRET_ENV")
		assert.Error(t, err)
	})

	t.Run("Missing everywhere", func(t *testing.T) {
		t.Setenv("MISSING_SECRET_ENV", "")
		_, err := readSecret(dir, "missing", "MISSING_SECRET_ENV")
		assert.Error(t, err)
	})
}
