package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tablewise/tablewise"
)

var statsColumns []string

var statsCmd = &cobra.Command{
	Use:   "stats FILE",
	Short: "Compute descriptive statistics for numeric columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		tbl, err := loadTable(args[0])
		if err != nil {
			return err
		}
		defer tbl.Release()

		result := tablewise.Describe(tbl, statsColumns...)
		if len(result.Columns) == 0 {
			fmt.Println("no numeric columns to describe")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "COLUMN\tCOUNT\tMEAN\tSUM\tMIN\tMAX\tMEDIAN\tSTDDEV")
		for _, cs := range result.Columns {
			fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
				cs.Name, cs.Count, cs.Mean, cs.Sum, cs.Min, cs.Max, cs.Median, cs.StdDev)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%d numeric column(s), %d values, total sum %.2f, mean of means %.2f\n",
			result.Summary.NumericColumns, result.Summary.TotalCount,
			result.Summary.TotalSum, result.Summary.MeanOfMeans)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringSliceVar(&statsColumns, "columns", nil, "columns to describe (default: all numeric)")
	rootCmd.AddCommand(statsCmd)
}
