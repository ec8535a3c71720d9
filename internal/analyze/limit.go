package analyze

import (
	"github.com/tablewise/tablewise/internal/table"
)

// Limit returns the first maxRows rows of the table and whether
// truncation occurred. A non-positive limit or a limit at or beyond the
// row count is a no-op returning the input table unchanged.
func Limit(t *table.Table, maxRows int) (*table.Table, bool) {
	if maxRows <= 0 || maxRows >= t.Len() {
		return t, false
	}
	return t.Head(maxRows), true
}
