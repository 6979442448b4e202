package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into assertions.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "LOG_FORMAT", "DB_DRIVER", "DB_PATH",
		"WORDS_ANSWERS_FILE", "WORDS_ALLOWED_FILE", "JWT_SECRET",
		"JWT_EXPIRES_DAYS", "COOKIE_NAME", "CLIENT_ORIGIN", "DAILY_SALT", "NODE_ENV",
	} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir()) // no stray .env
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
log_format: console
db:
  driver: sqlite
  path: /tmp/x.db
auth:
  jwt_expires_days: 3
`), 0o644))

	t.Run("yaml only", func(t *testing.T) {
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, "console", cfg.LogFormat)
		assert.Equal(t, "sqlite", cfg.DB.Driver)
		assert.Equal(t, 3, cfg.Auth.JWTExpiresDays)
		assert.Equal(t, "sedecordle_token", cfg.Auth.CookieName, "unset keys keep defaults")
	})

	t.Run("env wins", func(t *testing.T) {
		t.Setenv("PORT", "7000")
		t.Setenv("JWT_EXPIRES_DAYS", "30")
		t.Setenv("NODE_ENV", "production")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "7000", cfg.Port)
		assert.Equal(t, 30, cfg.Auth.JWTExpiresDays)
		assert.True(t, cfg.Auth.SecureCookies)
	})

	t.Run("bad int ignored", func(t *testing.T) {
		t.Setenv("JWT_EXPIRES_DAYS", "soon")
		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Auth.JWTExpiresDays)
	})
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.WriteFile(".env", []byte("DAILY_SALT=pepper\n"), 0o644))
	// godotenv never overrides a variable that is already set, even to ""
	require.NoError(t, os.Unsetenv("DAILY_SALT"))
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "pepper", cfg.DailySalt)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "postgres")
	_, err = Load("")
	assert.Error(t, err)
}
