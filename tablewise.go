// Package tablewise is a small analytics library for CSV tabular data:
// load a CSV into a typed in-memory table, filter rows by a search term,
// compute per-column descriptive statistics, and prepare chart-ready
// datasets. This package is the sole public API of the library.
//
// Tables are immutable: every operation returns a new table and the
// caller keeps explicit ownership of each result. There is no ambient
// "currently loaded table"; see Session for the ownership model the HTTP
// and CLI front ends use.
package tablewise

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/tablewise/tablewise/internal/analyze"
	"github.com/tablewise/tablewise/internal/config"
	"github.com/tablewise/tablewise/internal/errors"
	tio "github.com/tablewise/tablewise/internal/io"
	"github.com/tablewise/tablewise/internal/table"
)

// Table is an in-memory labeled rectangular dataset, the unit of all
// operations
type Table = table.Table

// Kind is the inferred logical type tag carried by each column
type Kind = table.Kind

// ISeries provides a type-erased interface for typed columns
type ISeries = table.ISeries

// Column kinds
const (
	KindText  = table.KindText
	KindInt   = table.KindInt
	KindFloat = table.KindFloat
	KindBool  = table.KindBool
	KindTime  = table.KindTime
)

// CSVOptions configures CSV parsing
type CSVOptions = tio.CSVOptions

// Analysis result records
type (
	// FilterResult is a filtered table plus its row count
	FilterResult = analyze.FilterResult
	// ColumnStatistics holds per-column descriptive statistics
	ColumnStatistics = analyze.ColumnStatistics
	// Summary aggregates statistics across described columns
	Summary = analyze.Summary
	// DescribeResult bundles column statistics with their summary
	DescribeResult = analyze.DescribeResult
	// ChartData is a chart-ready subset of a table
	ChartData = analyze.ChartData
	// SeriesStats holds min/max/mean for one plotted series
	SeriesStats = analyze.SeriesStats
	// DatasetInfo summarizes a table's shape, memory and value counts
	DatasetInfo = analyze.DatasetInfo
	// ColumnInfo describes one column within a DatasetInfo
	ColumnInfo = analyze.ColumnInfo
)

// Config holds the library configuration
type Config = config.Config

// IndexColumn is the sentinel x-column meaning "plot against row index"
const IndexColumn = analyze.IndexColumn

// ErrParse marks CSV decoding failures; check with errors.Is
var ErrParse = errors.ErrParse

// NewTable creates a table from typed columns
func NewTable(cols ...ISeries) *Table {
	return table.New(cols...)
}

// LoadCSV parses CSV content from a reader into a new Table
func LoadCSV(r io.Reader, options CSVOptions) (*Table, error) {
	return tio.NewCSVReader(r, options, memory.NewGoAllocator()).Read()
}

// LoadCSVString parses CSV text with default options
func LoadCSVString(data string) (*Table, error) {
	return tio.ReadCSVString(data, memory.NewGoAllocator())
}

// LoadCSVBytes parses raw CSV bytes with default options
func LoadCSVBytes(data []byte) (*Table, error) {
	return tio.ReadCSVBytes(data, memory.NewGoAllocator())
}

// WriteCSV writes a table to the given writer in CSV form
func WriteCSV(w io.Writer, t *Table, options CSVOptions) error {
	return tio.NewCSVWriter(w, options).Write(t)
}

// DefaultCSVOptions returns the default CSV parsing options
func DefaultCSVOptions() CSVOptions {
	return tio.DefaultCSVOptions()
}

// Filter returns the rows whose text form contains the query in any
// column, case-insensitively. See analyze.Filter for the policy details.
func Filter(t *Table, query string) FilterResult {
	return analyze.Filter(t, query)
}

// Limit returns the first maxRows rows plus a truncation flag
func Limit(t *Table, maxRows int) (*Table, bool) {
	return analyze.Limit(t, maxRows)
}

// Describe computes descriptive statistics for the given numeric columns,
// or for all numeric columns when none are named
func Describe(t *Table, columns ...string) DescribeResult {
	return analyze.Describe(t, columns...)
}

// PrepareChart builds a chart-ready dataset from a table
func PrepareChart(t *Table, xColumn string, yColumns []string, maxPoints int) ChartData {
	return analyze.PrepareChart(t, xColumn, yColumns, maxPoints)
}

// Inspect summarizes a table's shape, memory footprint and value counts
func Inspect(t *Table) DatasetInfo {
	return analyze.Inspect(t)
}

// SetConfig replaces the global library configuration
func SetConfig(cfg Config) {
	config.SetGlobalConfig(cfg)
}

// GetConfig returns the current global library configuration
func GetConfig() Config {
	return config.GetGlobalConfig()
}
