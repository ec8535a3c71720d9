// Package io provides loading and saving of tables.
//
// The primary implementation is CSV: comma-delimited, header-first,
// UTF-8 text with automatic per-column type inference. Empty fields are
// recognized as nulls. Reading never mutates shared state; every call
// produces a fresh table.
//
// Memory management: all readers integrate with Apache Arrow's memory
// management and require cleanup with defer patterns.
package io

import (
	"bytes"
	"io"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/tablewise/tablewise/internal/config"
	"github.com/tablewise/tablewise/internal/dates"
	"github.com/tablewise/tablewise/internal/table"
)

// TableReader defines the interface for reading tables from various sources
type TableReader interface {
	// Read reads data from the source and returns a Table
	Read() (*table.Table, error)
}

// TableWriter defines the interface for writing tables to various destinations
type TableWriter interface {
	// Write writes the Table to the destination
	Write(t *table.Table) error
}

// CSVOptions contains configuration options for CSV operations
type CSVOptions struct {
	// Delimiter is the field delimiter (default: comma)
	Delimiter rune
	// Comment is the comment character (default: 0 = disabled)
	Comment rune
	// Header indicates whether the first row contains headers
	Header bool
	// SkipInitialSpace indicates whether to skip initial whitespace
	SkipInitialSpace bool
	// DateLayouts are the layouts tried when inferring date columns
	DateLayouts []string
}

// DefaultCSVOptions returns default CSV options. Date layouts come from
// the global configuration so TABLEWISE_DATE_LAYOUTS and config files
// drive inference on every load path.
func DefaultCSVOptions() CSVOptions {
	layouts := config.GetGlobalConfig().DateLayouts
	if len(layouts) == 0 {
		layouts = dates.DefaultLayouts()
	}
	return CSVOptions{
		Delimiter:        ',',
		Comment:          0,
		Header:           true,
		SkipInitialSpace: false,
		DateLayouts:      layouts,
	}
}

// CSVReader reads CSV data and converts it to Tables
type CSVReader struct {
	reader  io.Reader
	options CSVOptions
	mem     memory.Allocator
}

// NewCSVReader creates a new CSV reader with the specified options
func NewCSVReader(reader io.Reader, options CSVOptions, mem memory.Allocator) *CSVReader {
	return &CSVReader{
		reader:  reader,
		options: options,
		mem:     mem,
	}
}

// CSVWriter writes Tables to CSV format
type CSVWriter struct {
	writer  io.Writer
	options CSVOptions
}

// NewCSVWriter creates a new CSV writer with the specified options
func NewCSVWriter(writer io.Writer, options CSVOptions) *CSVWriter {
	return &CSVWriter{
		writer:  writer,
		options: options,
	}
}

// ReadCSVString parses CSV text with default options
func ReadCSVString(data string, mem memory.Allocator) (*table.Table, error) {
	return NewCSVReader(strings.NewReader(data), DefaultCSVOptions(), mem).Read()
}

// ReadCSVBytes parses raw CSV bytes with default options
func ReadCSVBytes(data []byte, mem memory.Allocator) (*table.Table, error) {
	return NewCSVReader(bytes.NewReader(data), DefaultCSVOptions(), mem).Read()
}
