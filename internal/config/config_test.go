package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablewise/tablewise/internal/config"
)

func TestNewConfig(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, config.DefaultParallelThreshold, cfg.ParallelThreshold)
	assert.Equal(t, 0, cfg.WorkerPoolSize)
	assert.Equal(t, config.DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, config.DefaultPreviewRows, cfg.PreviewRows)
	assert.Equal(t, config.DefaultMaxChartPoints, cfg.MaxChartPoints)
	assert.NotEmpty(t, cfg.DateLayouts)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero parallel threshold", func(c *config.Config) { c.ParallelThreshold = 0 }},
		{"negative worker pool size", func(c *config.Config) { c.WorkerPoolSize = -1 }},
		{"zero chunk size", func(c *config.Config) { c.ChunkSize = 0 }},
		{"zero preview rows", func(c *config.Config) { c.PreviewRows = 0 }},
		{"zero max chart points", func(c *config.Config) { c.MaxChartPoints = 0 }},
		{"empty date layouts", func(c *config.Config) { c.DateLayouts = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := config.Config{ParallelThreshold: 500}.WithDefaults()

	assert.Equal(t, 500, cfg.ParallelThreshold)
	assert.Equal(t, config.DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, config.DefaultPreviewRows, cfg.PreviewRows)
	assert.Equal(t, config.DefaultMaxChartPoints, cfg.MaxChartPoints)
	assert.NotEmpty(t, cfg.DateLayouts)
}

func TestGlobalConfig(t *testing.T) {
	previous := config.GetGlobalConfig()
	defer config.SetGlobalConfig(previous)

	custom := config.NewConfig()
	custom.PreviewRows = 7
	config.SetGlobalConfig(custom)

	assert.Equal(t, 7, config.GetGlobalConfig().PreviewRows)
}

func TestLoadFromJSON(t *testing.T) {
	t.Run("loads and fills defaults", func(t *testing.T) {
		cfg, err := config.LoadFromJSON([]byte(`{"parallel_threshold": 2000}`))
		require.NoError(t, err)

		assert.Equal(t, 2000, cfg.ParallelThreshold)
		assert.Equal(t, config.DefaultChunkSize, cfg.ChunkSize)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := config.LoadFromJSON([]byte(`{not json`))
		assert.Error(t, err)
	})
}

func TestLoadFromFile(t *testing.T) {
	t.Run("loads YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("preview_rows: 42\n"), 0o600))

		cfg, err := config.LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, 42, cfg.PreviewRows)
	})

	t.Run("loads JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"max_chart_points": 99}`), 0o600))

		cfg, err := config.LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, 99, cfg.MaxChartPoints)
	})

	t.Run("rejects unknown extensions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte(""), 0o600))

		_, err := config.LoadFromFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TABLEWISE_PARALLEL_THRESHOLD", "123")
	t.Setenv("TABLEWISE_PREVIEW_ROWS", "9")
	t.Setenv("TABLEWISE_DATE_LAYOUTS", "2006-01-02; 02.01.2006")

	cfg := config.LoadFromEnv()
	assert.Equal(t, 123, cfg.ParallelThreshold)
	assert.Equal(t, 9, cfg.PreviewRows)
	assert.Equal(t, []string{"2006-01-02", "02.01.2006"}, cfg.DateLayouts)
}

func TestLoadFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("TABLEWISE_CHUNK_SIZE", "not a number")

	cfg := config.LoadFromEnv()
	assert.Equal(t, config.DefaultChunkSize, cfg.ChunkSize)
}
