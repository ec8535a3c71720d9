package io

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/tablewise/tablewise/internal/dates"
	"github.com/tablewise/tablewise/internal/errors"
	"github.com/tablewise/tablewise/internal/series"
	"github.com/tablewise/tablewise/internal/table"
)

const (
	// Boolean string constants
	trueStr  = "true"
	falseStr = "false"

	typeBool   = "bool"
	typeInt    = "int"
	typeFloat  = "float"
	typeTime   = "time"
	typeString = "string"
)

// Read reads CSV data and returns a Table. Input that is empty or not
// decodable as CSV yields a ParseError carrying the parser's message.
func (r *CSVReader) Read() (*table.Table, error) {
	csvReader := csv.NewReader(r.reader)
	csvReader.Comma = r.options.Delimiter
	csvReader.Comment = r.options.Comment
	csvReader.TrimLeadingSpace = r.options.SkipInitialSpace

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, errors.NewParseError("reading CSV", err)
	}

	if len(records) == 0 {
		return nil, errors.NewParseError("input is empty", nil)
	}

	var headers []string
	var dataRows [][]string

	if r.options.Header {
		headers = records[0]
		dataRows = records[1:]
	} else {
		// Generate default column names
		numCols := len(records[0])
		headers = make([]string, numCols)
		for i := 0; i < numCols; i++ {
			headers[i] = fmt.Sprintf("column_%d", i)
		}
		dataRows = records
	}

	// Header row only: a valid zero-row table with text columns
	if len(dataRows) == 0 {
		emptyCols := make([]table.ISeries, 0, len(headers))
		for _, header := range headers {
			emptyCols = append(emptyCols, series.New(header, []string{}, r.mem))
		}
		return table.New(emptyCols...), nil
	}

	// Transpose data to work with columns
	numCols := len(headers)
	columns := make([][]string, numCols)
	for i := 0; i < numCols; i++ {
		columns[i] = make([]string, len(dataRows))
		for j, row := range dataRows {
			if i < len(row) {
				columns[i][j] = row[i]
			}
		}
	}

	// Infer types and create series
	cols := make([]table.ISeries, 0, numCols)
	for i, header := range headers {
		cols = append(cols, r.buildColumn(header, columns[i]))
	}

	return table.New(cols...), nil
}

// buildColumn creates a series from string data, inferring the type once.
// Empty fields become nulls in the resulting column.
func (r *CSVReader) buildColumn(name string, data []string) table.ISeries {
	switch r.inferDataType(data) {
	case typeBool:
		return r.createBoolSeries(name, data)
	case typeInt:
		return r.createIntSeries(name, data)
	case typeFloat:
		return r.createFloatSeries(name, data)
	case typeTime:
		return r.createTimeSeries(name, data)
	default:
		return r.createStringSeries(name, data)
	}
}

// inferDataType determines the most appropriate data type for the given
// string data. Empty values are skipped; all-empty columns become text.
func (r *CSVReader) inferDataType(data []string) string {
	canBeInt := true
	canBeFloat := true
	canBeBool := true
	hasNonEmptyValue := false

	for _, value := range data {
		if value == "" {
			continue // Skip empty values for type inference
		}
		hasNonEmptyValue = true

		if canBeBool {
			lower := strings.ToLower(value)
			if lower != trueStr && lower != falseStr {
				canBeBool = false
			}
		}

		if canBeInt {
			if _, err := strconv.ParseInt(value, 10, 64); err != nil {
				canBeInt = false
			}
		}

		if canBeFloat {
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				canBeFloat = false
			}
		}
	}

	if !hasNonEmptyValue {
		return typeString
	}

	// Return the most specific type
	if canBeBool {
		return typeBool
	}
	if canBeInt {
		return typeInt
	}
	if canBeFloat {
		return typeFloat
	}
	if detection, _ := dates.Detect(data, r.options.DateLayouts); detection == dates.DetectionAll {
		return typeTime
	}
	return typeString
}

// createBoolSeries creates a boolean series from string data
func (r *CSVReader) createBoolSeries(name string, data []string) table.ISeries {
	values := make([]bool, len(data))
	valid := make([]bool, len(data))
	for i, value := range data {
		if value != "" {
			values[i] = strings.EqualFold(value, trueStr)
			valid[i] = true
		}
	}
	return series.NewWithNulls(name, values, valid, r.mem)
}

// createIntSeries creates an integer series from string data
func (r *CSVReader) createIntSeries(name string, data []string) table.ISeries {
	values := make([]int64, len(data))
	valid := make([]bool, len(data))
	for i, value := range data {
		if value != "" {
			values[i], _ = strconv.ParseInt(value, 10, 64)
			valid[i] = true
		}
	}
	return series.NewWithNulls(name, values, valid, r.mem)
}

// createFloatSeries creates a float series from string data
func (r *CSVReader) createFloatSeries(name string, data []string) table.ISeries {
	values := make([]float64, len(data))
	valid := make([]bool, len(data))
	for i, value := range data {
		if value != "" {
			values[i], _ = strconv.ParseFloat(value, 64)
			valid[i] = true
		}
	}
	return series.NewWithNulls(name, values, valid, r.mem)
}

// createTimeSeries creates a timestamp series from string data
func (r *CSVReader) createTimeSeries(name string, data []string) table.ISeries {
	values := make([]time.Time, len(data))
	valid := make([]bool, len(data))
	for i, value := range data {
		if value != "" {
			if ts, ok := dates.Parse(value, r.options.DateLayouts); ok {
				values[i] = ts
				valid[i] = true
			}
		}
	}
	return series.NewWithNulls(name, values, valid, r.mem)
}

// createStringSeries creates a text series from string data
func (r *CSVReader) createStringSeries(name string, data []string) table.ISeries {
	valid := make([]bool, len(data))
	for i, value := range data {
		valid[i] = value != ""
	}
	return series.NewWithNulls(name, data, valid, r.mem)
}

// Write writes the Table to CSV format
func (w *CSVWriter) Write(t *table.Table) error {
	csvWriter := csv.NewWriter(w.writer)
	csvWriter.Comma = w.options.Delimiter
	defer csvWriter.Flush()

	if w.options.Header {
		if err := csvWriter.Write(t.Columns()); err != nil {
			return fmt.Errorf("writing headers: %w", err)
		}
	}

	for i := 0; i < t.Len(); i++ {
		row := make([]string, t.Width())
		for j, colName := range t.Columns() {
			column, exists := t.Column(colName)
			if !exists {
				continue
			}
			row[j] = getValueAsString(column, i)
		}
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	return nil
}

// getValueAsString extracts a value from a column at the given index as a
// string. Nulls render as empty fields, matching the loader's null token.
func getValueAsString(column table.ISeries, index int) string {
	arr := column.Array()
	defer arr.Release()

	if arr.IsNull(index) {
		return ""
	}

	switch typedArr := arr.(type) {
	case *array.String:
		return typedArr.Value(index)
	case *array.Int64:
		return strconv.FormatInt(typedArr.Value(index), 10)
	case *array.Float64:
		return strconv.FormatFloat(typedArr.Value(index), 'g', -1, 64)
	case *array.Boolean:
		if typedArr.Value(index) {
			return trueStr
		}
		return falseStr
	case *array.Timestamp:
		return typedArr.Value(index).ToTime(arrow.Nanosecond).UTC().Format(table.TimeFormat)
	default:
		return ""
	}
}
