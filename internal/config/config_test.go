package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizroom/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := config.Load()
		assert.ErrorIs(t, err, config.ErrMissingJWTSecret)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("DATA_DIR", "")
		t.Setenv("STORAGE_DRIVER", "")
		t.Setenv("BOLT_PATH", "")
		t.Setenv("SESSION_TTL", "")
		t.Setenv("STORAGE_BOOTSTRAP", "")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "Data", cfg.DataDir)
		assert.Equal(t, "file", cfg.StorageDriver)
		assert.Equal(t, "Data/quizroom.db", cfg.BoltPath)
		assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
		assert.False(t, cfg.Bootstrap)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("STORAGE_DRIVER", "BOLT")
		t.Setenv("SESSION_TTL", "90m")
		t.Setenv("STORAGE_BOOTSTRAP", "true")
		t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "bolt", cfg.StorageDriver)
		assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
		assert.True(t, cfg.Bootstrap)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	})

	t.Run("InvalidTTL", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("SESSION_TTL", "soon")
		_, err := config.Load()
		assert.Error(t, err)
	})
}
