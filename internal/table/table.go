// Package table provides the in-memory rectangular dataset that all
// analysis operations work on. A Table is an ordered set of named, typed
// columns backed by Apache Arrow arrays; every operation returns a new
// Table and never mutates the receiver.
package table

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/tablewise/tablewise/internal/series"
)

// ISeries provides a type-erased interface for Series of any type
type ISeries interface {
	Name() string
	Len() int
	DataType() arrow.DataType
	IsNull(index int) bool
	NullCount() int
	String() string
	Array() arrow.Array
	Release()
}

// TimeFormat is the rendering layout for timestamp cells
const TimeFormat = "2006-01-02"

// Table represents a rectangular dataset with typed, ordered columns
type Table struct {
	columns map[string]ISeries
	order   []string // Maintains column order
	kinds   map[string]Kind
}

// New creates a new Table from a slice of ISeries. Column kinds are tagged
// from the Arrow data types at construction time. Column names must be
// unique; the first occurrence of a repeated name wins and later ones are
// released.
func New(cols ...ISeries) *Table {
	columns := make(map[string]ISeries)
	order := make([]string, 0, len(cols))
	kinds := make(map[string]Kind)

	for _, s := range cols {
		name := s.Name()
		if _, exists := columns[name]; exists {
			s.Release()
			continue
		}
		columns[name] = s
		order = append(order, name)
		kinds[name] = KindOf(s.DataType())
	}

	return &Table{
		columns: columns,
		order:   order,
		kinds:   kinds,
	}
}

// Columns returns the names of all columns in order
func (t *Table) Columns() []string {
	if len(t.order) == 0 {
		return []string{}
	}
	return append([]string(nil), t.order...)
}

// Len returns the number of rows (assumes all columns have same length)
func (t *Table) Len() int {
	if len(t.order) == 0 {
		return 0
	}
	if s, exists := t.columns[t.order[0]]; exists {
		return s.Len()
	}
	return 0
}

// Width returns the number of columns
func (t *Table) Width() int {
	return len(t.columns)
}

// Column returns the series for the given column name
func (t *Table) Column(name string) (ISeries, bool) {
	s, exists := t.columns[name]
	return s, exists
}

// Kind returns the tagged logical type of the given column
func (t *Table) Kind(name string) (Kind, bool) {
	k, exists := t.kinds[name]
	return k, exists
}

// HasColumn checks if a column exists
func (t *Table) HasColumn(name string) bool {
	_, exists := t.columns[name]
	return exists
}

// NumericColumns returns the names of int and float columns in order
func (t *Table) NumericColumns() []string {
	result := make([]string, 0, len(t.order))
	for _, name := range t.order {
		if t.kinds[name].IsNumeric() {
			result = append(result, name)
		}
	}
	return result
}

// TextColumns returns the names of text columns in order
func (t *Table) TextColumns() []string {
	result := make([]string, 0, len(t.order))
	for _, name := range t.order {
		if t.kinds[name] == KindText {
			result = append(result, name)
		}
	}
	return result
}

// Select returns a new Table with only the specified columns.
// Unknown names are skipped.
func (t *Table) Select(names ...string) *Table {
	selected := make([]ISeries, 0, len(names))
	for _, name := range names {
		if s, exists := t.columns[name]; exists {
			selected = append(selected, copySeries(s))
		}
	}
	return New(selected...)
}

// Drop returns a new Table without the specified columns
func (t *Table) Drop(names ...string) *Table {
	dropSet := make(map[string]bool)
	for _, name := range names {
		dropSet[name] = true
	}

	kept := make([]ISeries, 0, len(t.order))
	for _, name := range t.order {
		if !dropSet[name] {
			kept = append(kept, copySeries(t.columns[name]))
		}
	}
	return New(kept...)
}

// Slice creates a new Table containing rows from start (inclusive) to
// end (exclusive). Invalid ranges yield an empty table.
func (t *Table) Slice(start, end int) *Table {
	length := t.Len()
	if start < 0 || end < 0 || start >= end || start >= length {
		return emptyLike(t)
	}
	if end > length {
		end = length
	}

	indices := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		indices = append(indices, i)
	}
	return t.TakeRows(indices)
}

// Head returns the first n rows of the table
func (t *Table) Head(n int) *Table {
	return t.Slice(0, n)
}

// TakeRows builds a new Table from the given row indices, in the given
// order. Nulls are preserved. Out-of-range indices are skipped.
func (t *Table) TakeRows(indices []int) *Table {
	length := t.Len()
	valid := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < length {
			valid = append(valid, idx)
		}
	}

	taken := make([]ISeries, 0, len(t.order))
	for _, name := range t.order {
		taken = append(taken, takeSeries(t.columns[name], valid))
	}
	return New(taken...)
}

// ColumnStrings renders every cell of the named column to its text form.
// Null cells render as the empty string. Returns false when the column
// does not exist.
func (t *Table) ColumnStrings(name string) ([]string, bool) {
	s, exists := t.columns[name]
	if !exists {
		return nil, false
	}

	arr := s.Array()
	defer arr.Release()

	values := make([]string, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		if !arr.IsNull(i) {
			values[i] = formatCell(arr, i)
		}
	}
	return values, true
}

// FloatColumn extracts the named numeric column as float64 values with a
// validity mask. Returns false when the column is missing or not numeric.
func (t *Table) FloatColumn(name string) ([]float64, []bool, bool) {
	s, exists := t.columns[name]
	if !exists || !t.kinds[name].IsNumeric() {
		return nil, nil, false
	}

	arr := s.Array()
	defer arr.Release()

	values := make([]float64, arr.Len())
	valid := make([]bool, arr.Len())

	switch typed := arr.(type) {
	case *array.Int64:
		for i := 0; i < typed.Len(); i++ {
			if !typed.IsNull(i) {
				values[i] = float64(typed.Value(i))
				valid[i] = true
			}
		}
	case *array.Float64:
		for i := 0; i < typed.Len(); i++ {
			if !typed.IsNull(i) {
				values[i] = typed.Value(i)
				valid[i] = true
			}
		}
	default:
		return nil, nil, false
	}

	return values, valid, true
}

// TimeColumn extracts the named time column with a validity mask.
// Returns false when the column is missing or not a time column.
func (t *Table) TimeColumn(name string) ([]time.Time, []bool, bool) {
	s, exists := t.columns[name]
	if !exists || t.kinds[name] != KindTime {
		return nil, nil, false
	}

	arr := s.Array()
	defer arr.Release()

	typed, ok := arr.(*array.Timestamp)
	if !ok {
		return nil, nil, false
	}

	values := make([]time.Time, typed.Len())
	valid := make([]bool, typed.Len())
	for i := 0; i < typed.Len(); i++ {
		if !typed.IsNull(i) {
			values[i] = typed.Value(i).ToTime(arrow.Nanosecond).UTC()
			valid[i] = true
		}
	}
	return values, valid, true
}

// NullMask reports, per row, whether any of the named columns is null.
// Unknown column names are ignored.
func (t *Table) NullMask(names ...string) []bool {
	mask := make([]bool, t.Len())
	for _, name := range names {
		s, exists := t.columns[name]
		if !exists {
			continue
		}
		for i := 0; i < s.Len(); i++ {
			if s.IsNull(i) {
				mask[i] = true
			}
		}
	}
	return mask
}

// ApproxBytes estimates the memory held by the table's Arrow buffers
func (t *Table) ApproxBytes() int64 {
	var total int64
	for _, name := range t.order {
		arr := t.columns[name].Array()
		for _, buf := range arr.Data().Buffers() {
			if buf != nil {
				total += int64(buf.Len())
			}
		}
		arr.Release()
	}
	return total
}

// String returns a string representation of the Table
func (t *Table) String() string {
	if len(t.columns) == 0 {
		return "Table[empty]"
	}

	parts := []string{fmt.Sprintf("Table[%dx%d]", t.Len(), t.Width())}
	for _, name := range t.order {
		parts = append(parts, fmt.Sprintf("  %s: %s", name, t.kinds[name]))
	}
	return strings.Join(parts, "\n")
}

// Release releases all underlying Arrow memory
func (t *Table) Release() {
	for _, s := range t.columns {
		s.Release()
	}
}

// emptyLike builds a zero-row table preserving column names and kinds
func emptyLike(t *Table) *Table {
	return t.TakeRows(nil)
}

// takeSeries builds a new series from the rows of s at the given indices
func takeSeries(s ISeries, indices []int) ISeries {
	arr := s.Array()
	if arr == nil {
		return series.New(s.Name(), []string{}, memory.NewGoAllocator())
	}
	defer arr.Release()

	mem := memory.NewGoAllocator()

	switch typed := arr.(type) {
	case *array.String:
		values := make([]string, len(indices))
		valid := make([]bool, len(indices))
		for i, idx := range indices {
			if !typed.IsNull(idx) {
				values[i] = typed.Value(idx)
				valid[i] = true
			}
		}
		return series.NewWithNulls(s.Name(), values, valid, mem)
	case *array.Int64:
		values := make([]int64, len(indices))
		valid := make([]bool, len(indices))
		for i, idx := range indices {
			if !typed.IsNull(idx) {
				values[i] = typed.Value(idx)
				valid[i] = true
			}
		}
		return series.NewWithNulls(s.Name(), values, valid, mem)
	case *array.Float64:
		values := make([]float64, len(indices))
		valid := make([]bool, len(indices))
		for i, idx := range indices {
			if !typed.IsNull(idx) {
				values[i] = typed.Value(idx)
				valid[i] = true
			}
		}
		return series.NewWithNulls(s.Name(), values, valid, mem)
	case *array.Boolean:
		values := make([]bool, len(indices))
		valid := make([]bool, len(indices))
		for i, idx := range indices {
			if !typed.IsNull(idx) {
				values[i] = typed.Value(idx)
				valid[i] = true
			}
		}
		return series.NewWithNulls(s.Name(), values, valid, mem)
	case *array.Timestamp:
		values := make([]time.Time, len(indices))
		valid := make([]bool, len(indices))
		for i, idx := range indices {
			if !typed.IsNull(idx) {
				values[i] = typed.Value(idx).ToTime(arrow.Nanosecond).UTC()
				valid[i] = true
			}
		}
		return series.NewWithNulls(s.Name(), values, valid, mem)
	default:
		return series.New(s.Name(), []string{}, mem)
	}
}

// copySeries creates an independent copy of a series
func copySeries(s ISeries) ISeries {
	indices := make([]int, s.Len())
	for i := range indices {
		indices[i] = i
	}
	return takeSeries(s, indices)
}

// formatCell renders a non-null cell to its text form
func formatCell(arr arrow.Array, i int) string {
	switch typed := arr.(type) {
	case *array.String:
		return typed.Value(i)
	case *array.Int64:
		return strconv.FormatInt(typed.Value(i), 10)
	case *array.Float64:
		return strconv.FormatFloat(typed.Value(i), 'g', -1, 64)
	case *array.Boolean:
		if typed.Value(i) {
			return "true"
		}
		return "false"
	case *array.Timestamp:
		return typed.Value(i).ToTime(arrow.Nanosecond).UTC().Format(TimeFormat)
	default:
		return ""
	}
}
