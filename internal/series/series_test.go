package series_test

import (
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablewise/tablewise/internal/series"
)

func TestSeriesCreation(t *testing.T) {
	mem := memory.NewGoAllocator()

	t.Run("creates string series", func(t *testing.T) {
		s := series.New("name", []string{"Alice", "Bob", "Charlie"}, mem)
		defer s.Release()

		assert.Equal(t, "name", s.Name())
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, s.Values())
		assert.Equal(t, "Bob", s.Value(1))
		assert.Equal(t, 0, s.NullCount())
	})

	t.Run("creates int64 series", func(t *testing.T) {
		s := series.New("age", []int64{25, 30, 35}, mem)
		defer s.Release()

		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []int64{25, 30, 35}, s.Values())
		assert.Equal(t, int64(35), s.Value(2))
	})

	t.Run("creates float64 series", func(t *testing.T) {
		s := series.New("score", []float64{1.5, 2.5}, mem)
		defer s.Release()

		assert.Equal(t, []float64{1.5, 2.5}, s.Values())
	})

	t.Run("creates bool series", func(t *testing.T) {
		s := series.New("active", []bool{true, false, true}, mem)
		defer s.Release()

		assert.Equal(t, []bool{true, false, true}, s.Values())
	})

	t.Run("creates timestamp series", func(t *testing.T) {
		times := []time.Time{
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		}

		s := series.New("dates", times, mem)
		defer s.Release()

		require.Equal(t, 2, s.Len())
		values := s.Values()
		assert.Equal(t, times[0], values[0])
		assert.Equal(t, times[1], values[1])
	})

	t.Run("panics on unsupported type", func(t *testing.T) {
		assert.Panics(t, func() {
			series.New("bad", []complex128{1 + 2i}, mem)
		})
	})
}

func TestSeriesNulls(t *testing.T) {
	mem := memory.NewGoAllocator()

	t.Run("validity mask marks nulls", func(t *testing.T) {
		s := series.NewWithNulls("age", []int64{25, 0, 35}, []bool{true, false, true}, mem)
		defer s.Release()

		assert.Equal(t, 3, s.Len())
		assert.Equal(t, 1, s.NullCount())
		assert.False(t, s.IsNull(0))
		assert.True(t, s.IsNull(1))
		assert.False(t, s.IsNull(2))
	})

	t.Run("null positions read as zero value", func(t *testing.T) {
		s := series.NewWithNulls("name", []string{"Alice", "ignored"}, []bool{true, false}, mem)
		defer s.Release()

		assert.Equal(t, "Alice", s.Value(0))
		assert.Equal(t, "", s.Value(1))
		assert.Equal(t, []string{"Alice", ""}, s.Values())
	})

	t.Run("nil mask means all valid", func(t *testing.T) {
		s := series.NewWithNulls("x", []float64{1, 2, 3}, nil, mem)
		defer s.Release()

		assert.Equal(t, 0, s.NullCount())
	})
}

func TestSeriesBounds(t *testing.T) {
	mem := memory.NewGoAllocator()

	s := series.New("x", []int64{1, 2}, mem)
	defer s.Release()

	assert.Equal(t, int64(0), s.Value(-1))
	assert.Equal(t, int64(0), s.Value(2))
}
