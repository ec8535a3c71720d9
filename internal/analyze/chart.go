package analyze

import (
	"sort"
	"time"

	"github.com/tablewise/tablewise/internal/config"
	"github.com/tablewise/tablewise/internal/dates"
	"github.com/tablewise/tablewise/internal/table"
)

// IndexColumn is the sentinel x-column name meaning "plot against the
// positional row index"
const IndexColumn = "(index)"

// SeriesStats holds min/max/mean for one plotted y-series, computed over
// the rows retained in the chart
type SeriesStats struct {
	Name string  `json:"name"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// ChartData is a chart-ready subset of a table: the selected columns with
// null rows dropped, optionally reordered by parsed x-axis dates.
type ChartData struct {
	Table       *table.Table  `json:"-"`
	XColumn     string        `json:"x_column"`
	YColumns    []string      `json:"y_columns"`
	IsDate      bool          `json:"is_date"`
	Truncated   bool          `json:"truncated"`
	TotalPoints int           `json:"total_points"`
	SeriesStats []SeriesStats `json:"series_stats"`
}

// PrepareChart builds chart data from a table.
//
// xCol may be IndexColumn to plot against the row position. An empty
// selection or a reference to a missing column fails softly: the result
// is an empty chart dataset, not an error. Rows with a null in any
// selected column are dropped. If every x value parses as a date the rows
// are reordered ascending by that date and IsDate is set; a mixed or
// unparseable x column keeps the original order. When the prepared rows
// exceed maxPoints the chart keeps the first maxPoints rows and reports
// the truncation. maxPoints <= 0 disables truncation.
func PrepareChart(t *table.Table, xCol string, yCols []string, maxPoints int) ChartData {
	if xCol == "" || len(yCols) == 0 {
		return emptyChart()
	}

	selected := make([]string, 0, len(yCols)+1)
	if xCol != IndexColumn {
		selected = append(selected, xCol)
	}
	selected = append(selected, yCols...)

	for _, name := range selected {
		if !t.HasColumn(name) {
			return emptyChart()
		}
	}

	// Drop any row with a null in a selected column
	nullMask := t.NullMask(selected...)
	kept := make([]int, 0, t.Len())
	for i, isNull := range nullMask {
		if !isNull {
			kept = append(kept, i)
		}
	}

	chart := t.TakeRows(kept).Select(selected...)
	isDate := false

	if xCol != IndexColumn {
		if ordered, ok := sortByDate(chart, xCol); ok {
			chart = ordered
			isDate = true
		}
	}

	truncated := false
	if maxPoints > 0 && chart.Len() > maxPoints {
		chart = chart.Head(maxPoints)
		truncated = true
	}

	stats := make([]SeriesStats, 0, len(yCols))
	for _, name := range yCols {
		stats = append(stats, seriesStats(chart, name))
	}

	return ChartData{
		Table:       chart,
		XColumn:     xCol,
		YColumns:    yCols,
		IsDate:      isDate,
		Truncated:   truncated,
		TotalPoints: chart.Len(),
		SeriesStats: stats,
	}
}

// sortByDate reorders the table ascending by the x column's date values.
// Returns false when the x column is not interpretable as dates; a mixed
// column counts as not-a-date.
func sortByDate(t *table.Table, xCol string) (*table.Table, bool) {
	kind, _ := t.Kind(xCol)

	switch kind {
	case table.KindTime:
		times, _, ok := t.TimeColumn(xCol)
		if !ok {
			return t, false
		}
		return reorderByTimes(t, times), true
	case table.KindText:
		values, ok := t.ColumnStrings(xCol)
		if !ok {
			return t, false
		}
		detection, times := dates.Detect(values, config.GetGlobalConfig().DateLayouts)
		if detection != dates.DetectionAll {
			return t, false
		}
		return reorderByTimes(t, times), true
	default:
		return t, false
	}
}

// reorderByTimes returns the table sorted ascending by the given per-row
// times. The sort is stable so equal timestamps keep their input order.
func reorderByTimes(t *table.Table, times []time.Time) *table.Table {
	indices := make([]int, t.Len())
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return times[indices[a]].Before(times[indices[b]])
	})
	return t.TakeRows(indices)
}

// seriesStats computes min/max/mean for one y column over the chart rows
func seriesStats(t *table.Table, name string) SeriesStats {
	stats := SeriesStats{Name: name}

	values, valid, ok := t.FloatColumn(name)
	if !ok {
		return stats
	}

	count := 0
	for i, v := range values {
		if !valid[i] {
			continue
		}
		if count == 0 {
			stats.Min = v
			stats.Max = v
		} else {
			if v < stats.Min {
				stats.Min = v
			}
			if v > stats.Max {
				stats.Max = v
			}
		}
		stats.Mean += v
		count++
	}
	if count > 0 {
		stats.Mean /= float64(count)
	}
	return stats
}

// emptyChart is the soft-failure result for invalid chart requests
func emptyChart() ChartData {
	return ChartData{
		Table:       table.New(),
		YColumns:    []string{},
		SeriesStats: []SeriesStats{},
	}
}
