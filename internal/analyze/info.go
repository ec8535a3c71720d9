package analyze

import (
	"github.com/cespare/xxhash/v2"

	"github.com/tablewise/tablewise/internal/config"
	"github.com/tablewise/tablewise/internal/parallel"
	"github.com/tablewise/tablewise/internal/table"
)

// ColumnInfo describes one column of a dataset
type ColumnInfo struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Distinct int    `json:"distinct"`
	Nulls    int    `json:"nulls"`
}

// DatasetInfo summarizes a table: shape, approximate memory footprint,
// distinct and null counts, and the distribution of column kinds
type DatasetInfo struct {
	Rows          int            `json:"rows"`
	Columns       int            `json:"columns"`
	MemoryBytes   int64          `json:"memory_bytes"`
	TotalDistinct int            `json:"total_distinct"`
	TotalNulls    int            `json:"total_nulls"`
	KindCounts    map[string]int `json:"kind_counts"`
	ColumnDetails []ColumnInfo   `json:"column_details"`
}

// Inspect computes the dataset summary in one pass per column. Distinct
// values are counted by hashing each cell's text form; the hash set per
// column is O(distinct) in memory. Pure, O(rows x columns), no side
// effects.
func Inspect(t *table.Table) DatasetInfo {
	info := DatasetInfo{
		Rows:        t.Len(),
		Columns:     t.Width(),
		MemoryBytes: t.ApproxBytes(),
		KindCounts:  make(map[string]int),
	}

	names := t.Columns()
	details := inspectColumns(t, names)

	for _, detail := range details {
		info.ColumnDetails = append(info.ColumnDetails, detail)
		info.TotalDistinct += detail.Distinct
		info.TotalNulls += detail.Nulls
		info.KindCounts[detail.Kind]++
	}

	return info
}

// inspectColumns builds per-column details, fanning out over a worker
// pool for tables above the configured parallel threshold
func inspectColumns(t *table.Table, names []string) []ColumnInfo {
	cfg := config.GetGlobalConfig()

	if t.Len() < cfg.ParallelThreshold || len(names) < 2 {
		details := make([]ColumnInfo, 0, len(names))
		for _, name := range names {
			details = append(details, inspectColumn(t, name))
		}
		return details
	}

	pool := parallel.NewWorkerPool(cfg.WorkerPoolSize)
	defer pool.Close()

	return parallel.ProcessIndexed(pool, names, func(_ int, name string) ColumnInfo {
		return inspectColumn(t, name)
	})
}

// inspectColumn counts distinct and null values in one column. Nulls do
// not contribute to the distinct count.
func inspectColumn(t *table.Table, name string) ColumnInfo {
	detail := ColumnInfo{Name: name}

	if kind, ok := t.Kind(name); ok {
		detail.Kind = kind.String()
	}

	column, exists := t.Column(name)
	if !exists {
		return detail
	}
	detail.Nulls = column.NullCount()

	values, ok := t.ColumnStrings(name)
	if !ok {
		return detail
	}

	seen := make(map[uint64]struct{}, len(values))
	for i, value := range values {
		if column.IsNull(i) {
			continue
		}
		seen[xxhash.Sum64String(value)] = struct{}{}
	}
	detail.Distinct = len(seen)

	return detail
}
