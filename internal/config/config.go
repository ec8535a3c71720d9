// Package config provides configuration management for tablewise operations
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tablewise/tablewise/internal/dates"
)

// Config represents the global configuration for tablewise operations
type Config struct {
	// Parallel Processing Configuration
	ParallelThreshold int `json:"parallel_threshold" yaml:"parallel_threshold"` // Minimum rows to trigger parallel processing
	WorkerPoolSize    int `json:"worker_pool_size" yaml:"worker_pool_size"`     // Number of worker goroutines (0 = auto-detect)
	ChunkSize         int `json:"chunk_size" yaml:"chunk_size"`                 // Size of row chunks for parallel processing

	// Presentation Configuration
	PreviewRows    int `json:"preview_rows" yaml:"preview_rows"`         // Default row limit for previews
	MaxChartPoints int `json:"max_chart_points" yaml:"max_chart_points"` // Default point cap for chart preparation

	// Date Handling Configuration
	DateLayouts []string `json:"date_layouts" yaml:"date_layouts"` // Layouts tried for date inference
}

// Global configuration instance
var (
	globalConfig Config
	configMutex  sync.RWMutex
)

// Default configuration values
const (
	DefaultParallelThreshold = 10000
	DefaultChunkSize         = 1000
	DefaultPreviewRows       = 100
	DefaultMaxChartPoints    = 500
)

// Initialize global configuration with defaults
func init() {
	globalConfig = NewConfig()
}

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		ParallelThreshold: DefaultParallelThreshold,
		WorkerPoolSize:    0, // Auto-detect
		ChunkSize:         DefaultChunkSize,
		PreviewRows:       DefaultPreviewRows,
		MaxChartPoints:    DefaultMaxChartPoints,
		DateLayouts:       dates.DefaultLayouts(),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.ParallelThreshold <= 0 {
		return fmt.Errorf("ParallelThreshold must be positive, got %d", c.ParallelThreshold)
	}

	if c.WorkerPoolSize < 0 {
		return fmt.Errorf("WorkerPoolSize must be non-negative, got %d", c.WorkerPoolSize)
	}

	if c.ChunkSize <= 0 {
		return fmt.Errorf("ChunkSize must be positive, got %d", c.ChunkSize)
	}

	if c.PreviewRows <= 0 {
		return fmt.Errorf("PreviewRows must be positive, got %d", c.PreviewRows)
	}

	if c.MaxChartPoints <= 0 {
		return fmt.Errorf("MaxChartPoints must be positive, got %d", c.MaxChartPoints)
	}

	if len(c.DateLayouts) == 0 {
		return fmt.Errorf("DateLayouts must not be empty")
	}

	return nil
}

// WithDefaults returns a new configuration with default values filled in
// for zero values
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.ParallelThreshold == 0 {
		c.ParallelThreshold = defaults.ParallelThreshold
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = defaults.ChunkSize
	}
	if c.PreviewRows == 0 {
		c.PreviewRows = defaults.PreviewRows
	}
	if c.MaxChartPoints == 0 {
		c.MaxChartPoints = defaults.MaxChartPoints
	}
	if len(c.DateLayouts) == 0 {
		c.DateLayouts = defaults.DateLayouts
	}

	return c
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = config
}

// GetGlobalConfig returns the current global configuration
func GetGlobalConfig() Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// LoadFromJSON loads configuration from JSON data
func LoadFromJSON(data []byte) (Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing JSON configuration: %w", err)
	}
	return config.WithDefaults(), nil
}

// LoadFromFile loads configuration from a file (supports JSON and YAML)
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	var config Config
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() Config {
	config := NewConfig()

	if val := os.Getenv("TABLEWISE_PARALLEL_THRESHOLD"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.ParallelThreshold = parsed
		}
	}

	if val := os.Getenv("TABLEWISE_WORKER_POOL_SIZE"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.WorkerPoolSize = parsed
		}
	}

	if val := os.Getenv("TABLEWISE_CHUNK_SIZE"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.ChunkSize = parsed
		}
	}

	if val := os.Getenv("TABLEWISE_PREVIEW_ROWS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.PreviewRows = parsed
		}
	}

	if val := os.Getenv("TABLEWISE_MAX_CHART_POINTS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.MaxChartPoints = parsed
		}
	}

	if val := os.Getenv("TABLEWISE_DATE_LAYOUTS"); val != "" {
		layouts := strings.Split(val, ";")
		cleaned := layouts[:0]
		for _, layout := range layouts {
			if trimmed := strings.TrimSpace(layout); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		if len(cleaned) > 0 {
			config.DateLayouts = cleaned
		}
	}

	return config
}
