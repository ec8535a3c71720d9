package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tablewise/tablewise"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "Summarize a CSV file: shape, memory, types, distinct and null counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		tbl, err := loadTable(args[0])
		if err != nil {
			return err
		}
		defer tbl.Release()

		info := tablewise.Inspect(tbl)

		fmt.Printf("%s: %d rows x %d columns, ~%.1f KiB\n",
			args[0], info.Rows, info.Columns, float64(info.MemoryBytes)/1024)
		fmt.Printf("distinct values: %d, nulls: %d\n", info.TotalDistinct, info.TotalNulls)

		for kind, count := range info.KindCounts {
			fmt.Printf("  %s: %d column(s)\n", kind, count)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "COLUMN\tKIND\tDISTINCT\tNULLS")
		for _, col := range info.ColumnDetails {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", col.Name, col.Kind, col.Distinct, col.Nulls)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
