package analyze

import (
	"math"

	"golang.org/x/exp/slices"

	"github.com/tablewise/tablewise/internal/table"
)

// ColumnStatistics holds per-column descriptive statistics computed over
// non-null values only
type ColumnStatistics struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Sum    float64 `json:"sum"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// Summary aggregates statistics across all described columns.
//
// MeanOfMeans is the mean of the per-column means, not the pooled mean of
// all values. Columns with different counts therefore weigh equally; this
// is the documented contract, kept as a known approximation.
type Summary struct {
	NumericColumns int     `json:"numeric_columns"`
	TotalCount     int     `json:"total_count"`
	TotalSum       float64 `json:"total_sum"`
	MeanOfMeans    float64 `json:"mean_of_means"`
}

// DescribeResult bundles per-column statistics with the cross-column summary
type DescribeResult struct {
	Columns []ColumnStatistics `json:"columns"`
	Summary Summary            `json:"summary"`
}

// Describe computes descriptive statistics for the given numeric columns.
// With no explicit selection, every numeric column is described. Names
// that are missing or not numeric are skipped. Zero applicable columns
// yields an empty result, not an error.
//
// StdDev is the sample standard deviation; a column with fewer than two
// non-null values has an undefined (NaN) standard deviation, never zero.
func Describe(t *table.Table, columns ...string) DescribeResult {
	if len(columns) == 0 {
		columns = t.NumericColumns()
	}

	result := DescribeResult{Columns: []ColumnStatistics{}}
	meanTotal := 0.0

	for _, name := range columns {
		values, valid, ok := t.FloatColumn(name)
		if !ok {
			continue
		}

		stats := describeColumn(name, values, valid)
		result.Columns = append(result.Columns, stats)

		result.Summary.NumericColumns++
		result.Summary.TotalCount += stats.Count
		result.Summary.TotalSum += stats.Sum
		meanTotal += stats.Mean
	}

	if result.Summary.NumericColumns > 0 {
		result.Summary.MeanOfMeans = meanTotal / float64(result.Summary.NumericColumns)
	}

	return result
}

// describeColumn computes statistics over the non-null values of one column
func describeColumn(name string, values []float64, valid []bool) ColumnStatistics {
	present := make([]float64, 0, len(values))
	for i, v := range values {
		if valid[i] {
			present = append(present, v)
		}
	}

	stats := ColumnStatistics{
		Name:   name,
		Count:  len(present),
		StdDev: math.NaN(),
	}
	if len(present) == 0 {
		stats.Mean = math.NaN()
		stats.Median = math.NaN()
		stats.Min = math.NaN()
		stats.Max = math.NaN()
		return stats
	}

	stats.Min = present[0]
	stats.Max = present[0]
	for _, v := range present {
		stats.Sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = stats.Sum / float64(len(present))
	stats.Median = median(present)

	// Sample standard deviation is undefined for a single value
	if len(present) >= 2 {
		var sq float64
		for _, v := range present {
			d := v - stats.Mean
			sq += d * d
		}
		stats.StdDev = math.Sqrt(sq / float64(len(present)-1))
	}

	return stats
}

// median returns the middle value of the input; the input is copied
// before sorting
func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
