package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	assert.Equal(t, "taskboard", cfg.Database.Name)
	assert.Equal(t, 2, cfg.Sync.WorkerCount)
	assert.Equal(t, 100, cfg.Sync.QueueSize)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("TASKBOARD_SERVER_PORT", "8080")
	t.Setenv("TASKBOARD_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TASKBOARD_DATABASE_URI", "mongodb://db.internal:27017")
	t.Setenv("TASKBOARD_DATABASE_NAME", "taskboard_test")
	t.Setenv("TASKBOARD_SYNC_WORKER_COUNT", "4")
	t.Setenv("TASKBOARD_SYNC_QUEUE_SIZE", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "mongodb://db.internal:27017", cfg.Database.URI)
	assert.Equal(t, "taskboard_test", cfg.Database.Name)
	assert.Equal(t, 4, cfg.Sync.WorkerCount)
	assert.Equal(t, 500, cfg.Sync.QueueSize)
}

func TestLoadValidation(t *testing.T) {
	t.Run("invalid log level", func(t *testing.T) {
		t.Setenv("TASKBOARD_SERVER_LOG_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("out-of-range port", func(t *testing.T) {
		t.Setenv("TASKBOARD_SERVER_PORT", "70000")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("zero workers", func(t *testing.T) {
		t.Setenv("TASKBOARD_SYNC_WORKER_COUNT", "0")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}
