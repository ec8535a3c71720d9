package table

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// Kind is the inferred logical type of a column. It is computed once when
// the table is built and carried alongside the column, so downstream
// operations dispatch on the tag instead of re-inferring types per call.
type Kind int

const (
	// KindText is the fallback for string-like columns
	KindText Kind = iota
	// KindInt marks 64-bit integer columns
	KindInt
	// KindFloat marks 64-bit floating-point columns
	KindFloat
	// KindBool marks boolean columns
	KindBool
	// KindTime marks columns parsed as dates or timestamps
	KindTime
)

// String returns the kind name used in summaries and JSON output
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "text"
	}
}

// IsNumeric reports whether the kind counts as numeric for statistics
func (k Kind) IsNumeric() bool {
	return k == KindInt || k == KindFloat
}

// KindOf maps an Arrow data type to the logical column kind
func KindOf(dt arrow.DataType) Kind {
	if dt == nil {
		return KindText
	}
	switch dt.ID() {
	case arrow.INT64, arrow.INT32:
		return KindInt
	case arrow.FLOAT64, arrow.FLOAT32:
		return KindFloat
	case arrow.BOOL:
		return KindBool
	case arrow.TIMESTAMP, arrow.DATE32, arrow.DATE64:
		return KindTime
	default:
		return KindText
	}
}
