package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_PATH", "CORS_ORIGIN", "JWT_SECRET",
		"TOKEN_TTL", "BCRYPT_COST", "EVENT_RETENTION", "PRUNE_SCHEDULE",
	} {
		// t.Setenv registers the restore; unset to exercise defaults.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.ServerPort)
	assert.Equal(t, "./taskdesk.db", cfg.DatabasePath)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 6*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 720*time.Hour, cfg.EventRetention)
	assert.Equal(t, "0 3 * * *", cfg.PruneSchedule)
}

// There is no fallback signing secret; startup must fail without one.
func TestLoad_RequiresJWTSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("BCRYPT_COST", "12")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestLoad_BadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s")

	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	assert.Error(t, err)
	os.Unsetenv("PORT")

	t.Setenv("TOKEN_TTL", "sometime")
	_, err = Load()
	assert.Error(t, err)
}
