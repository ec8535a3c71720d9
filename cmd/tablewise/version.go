package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tablewise/tablewise/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Print(version.Info().String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
