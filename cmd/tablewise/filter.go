package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tablewise/tablewise"
	"github.com/tablewise/tablewise/internal/config"
)

var filterLimit int

var filterCmd = &cobra.Command{
	Use:   "filter FILE QUERY",
	Short: "Print rows whose text form contains the query in any column",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		tbl, err := loadTable(args[0])
		if err != nil {
			return err
		}
		defer tbl.Release()

		result := tablewise.Filter(tbl, args[1])

		limit := filterLimit
		if limit == 0 {
			limit = config.GetGlobalConfig().PreviewRows
		}
		limited, truncated := tablewise.Limit(result.Table, limit)

		if err := tablewise.WriteCSV(os.Stdout, limited, tablewise.DefaultCSVOptions()); err != nil {
			return err
		}
		if truncated {
			fmt.Fprintf(os.Stderr, "showing %d of %d matching rows\n", limited.Len(), result.MatchCount)
		} else {
			fmt.Fprintf(os.Stderr, "%d matching row(s)\n", result.MatchCount)
		}
		return nil
	},
}

func init() {
	filterCmd.Flags().IntVar(&filterLimit, "limit", 0, "maximum rows to print (default: preview_rows)")
	rootCmd.AddCommand(filterCmd)
}
