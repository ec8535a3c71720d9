// Package analyze implements the stateless analysis operations over
// tables: text filtering, row limiting, descriptive statistics, chart
// data preparation and dataset inspection. Every function takes a table
// and returns a derived value; empty tables and empty selections produce
// empty results, never errors.
package analyze

import (
	"strings"

	"github.com/tablewise/tablewise/internal/config"
	"github.com/tablewise/tablewise/internal/parallel"
	"github.com/tablewise/tablewise/internal/table"
)

// FilterResult holds a filtered table together with its row count
type FilterResult struct {
	Table      *table.Table
	MatchCount int
}

// Filter returns the rows where at least one column's text form contains
// the query, case-insensitively.
//
// Policy: every column is stringified before matching, so numeric and
// boolean values are searchable by their rendered form. This is one of
// two observed policies (the other restricts matching to text columns);
// it is the documented choice here and tests pin it.
//
// An empty or whitespace-only query is a no-op returning the input table.
// Zero matches is a normal result, not an error.
func Filter(t *table.Table, query string) FilterResult {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return FilterResult{Table: t, MatchCount: t.Len()}
	}

	needle := strings.ToLower(trimmed)
	numRows := t.Len()

	// Render each column once; per-cell stringification inside the row
	// loop would retain the Arrow array per call.
	rendered := make([][]string, 0, t.Width())
	for _, name := range t.Columns() {
		if values, ok := t.ColumnStrings(name); ok {
			rendered = append(rendered, values)
		}
	}

	rowMatches := func(row int) bool {
		for _, column := range rendered {
			if strings.Contains(strings.ToLower(column[row]), needle) {
				return true
			}
		}
		return false
	}

	matched := matchRows(numRows, rowMatches)
	return FilterResult{Table: t.TakeRows(matched), MatchCount: len(matched)}
}

// matchRows evaluates the predicate for every row, fanning out over a
// worker pool for tables above the configured parallel threshold.
func matchRows(numRows int, pred func(int) bool) []int {
	cfg := config.GetGlobalConfig()

	if numRows < cfg.ParallelThreshold {
		matched := make([]int, 0, numRows)
		for i := 0; i < numRows; i++ {
			if pred(i) {
				matched = append(matched, i)
			}
		}
		return matched
	}

	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = config.DefaultChunkSize
	}

	type span struct{ start, end int }
	chunks := make([]span, 0, numRows/chunkSize+1)
	for start := 0; start < numRows; start += chunkSize {
		end := start + chunkSize
		if end > numRows {
			end = numRows
		}
		chunks = append(chunks, span{start: start, end: end})
	}

	pool := parallel.NewWorkerPool(cfg.WorkerPoolSize)
	defer pool.Close()

	chunkMatches := parallel.ProcessIndexed(pool, chunks, func(_ int, c span) []int {
		matched := make([]int, 0, c.end-c.start)
		for i := c.start; i < c.end; i++ {
			if pred(i) {
				matched = append(matched, i)
			}
		}
		return matched
	})

	matched := make([]int, 0, numRows)
	for _, chunk := range chunkMatches {
		matched = append(matched, chunk...)
	}
	return matched
}
