// Command tablewise is the CLI front end for the tablewise library:
// inspect, filter, describe and chart CSV files, or serve the JSON API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tablewise/tablewise"
	"github.com/tablewise/tablewise/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tablewise",
	Short: "tablewise: CSV preview, filtering, statistics and charts",
	Long: `tablewise loads CSV files into typed in-memory tables and computes
previews, text filters, per-column statistics and chart-ready datasets.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
}

// loadConfig resolves the library configuration.
// Precedence: env > config file > defaults.
func loadConfig() {
	v := viper.New()
	v.SetEnvPrefix("TABLEWISE")
	v.AutomaticEnv()

	defaults := config.NewConfig()
	v.SetDefault("parallel_threshold", defaults.ParallelThreshold)
	v.SetDefault("worker_pool_size", defaults.WorkerPoolSize)
	v.SetDefault("chunk_size", defaults.ChunkSize)
	v.SetDefault("preview_rows", defaults.PreviewRows)
	v.SetDefault("max_chart_points", defaults.MaxChartPoints)
	v.SetDefault("date_layouts", defaults.DateLayouts)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
			return
		}
	}

	cfg := config.Config{
		ParallelThreshold: v.GetInt("parallel_threshold"),
		WorkerPoolSize:    v.GetInt("worker_pool_size"),
		ChunkSize:         v.GetInt("chunk_size"),
		PreviewRows:       v.GetInt("preview_rows"),
		MaxChartPoints:    v.GetInt("max_chart_points"),
		DateLayouts:       v.GetStringSlice("date_layouts"),
	}.WithDefaults()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid config, using defaults: %v\n", err)
		return
	}
	config.SetGlobalConfig(cfg)
}

// loadTable opens and parses the CSV file named by the argument
func loadTable(path string) (*tablewise.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return tablewise.LoadCSV(f, tablewise.DefaultCSVOptions())
}
