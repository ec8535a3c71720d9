// Package dates implements deterministic date detection for text values.
// Detection returns an explicit tri-state result instead of treating a
// failed parse as control flow, so the loader and the chart preparer share
// one definition of "this column is a date".
package dates

import (
	"strings"
	"time"
)

// Detection classifies how a set of text values parses as dates
type Detection int

const (
	// DetectionNone means no non-empty value parsed as a date
	DetectionNone Detection = iota
	// DetectionAll means every non-empty value parsed as a date
	DetectionAll
	// DetectionMixed means some values parsed and some did not;
	// callers treat this the same as DetectionNone
	DetectionMixed
)

// String returns the detection state name
func (d Detection) String() string {
	switch d {
	case DetectionAll:
		return "all"
	case DetectionMixed:
		return "mixed"
	default:
		return "none"
	}
}

// DefaultLayouts returns the date layouts tried during detection, most
// specific first
func DefaultLayouts() []string {
	return []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"Jan 2, 2006",
	}
}

// Parse attempts to parse a single value against the given layouts,
// returning the first match. Times are normalized to UTC.
func Parse(value string, layouts []string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// Detect classifies the given values and returns the parsed times.
// Empty values are skipped: they count neither for nor against detection,
// mirroring null handling elsewhere. The returned slice is aligned with
// the input; positions that did not parse hold the zero time.
func Detect(values []string, layouts []string) (Detection, []time.Time) {
	if len(layouts) == 0 {
		layouts = DefaultLayouts()
	}

	parsed := make([]time.Time, len(values))
	sawValue := false
	sawHit := false
	sawMiss := false

	for i, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		sawValue = true
		if ts, ok := Parse(value, layouts); ok {
			parsed[i] = ts
			sawHit = true
		} else {
			sawMiss = true
		}
	}

	switch {
	case !sawValue || !sawHit:
		return DetectionNone, parsed
	case sawMiss:
		return DetectionMixed, parsed
	default:
		return DetectionAll, parsed
	}
}
