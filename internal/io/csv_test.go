package io_test

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablewise/tablewise/internal/config"
	"github.com/tablewise/tablewise/internal/errors"
	"github.com/tablewise/tablewise/internal/io"
	"github.com/tablewise/tablewise/internal/table"
)

func TestReadCSV(t *testing.T) {
	mem := memory.NewGoAllocator()

	t.Run("reads a basic CSV", func(t *testing.T) {
		csv := "name,age,salary\nJohn,25,50000\nJane,30,60000"

		tbl, err := io.ReadCSVString(csv, mem)
		require.NoError(t, err)
		defer tbl.Release()

		assert.Equal(t, 2, tbl.Len())
		assert.Equal(t, 3, tbl.Width())
		assert.Equal(t, []string{"name", "age", "salary"}, tbl.Columns())

		names, ok := tbl.ColumnStrings("name")
		require.True(t, ok)
		assert.Equal(t, []string{"John", "Jane"}, names)
	})

	t.Run("empty input is a parse error", func(t *testing.T) {
		_, err := io.ReadCSVString("", mem)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrParse))
	})

	t.Run("malformed CSV is a parse error", func(t *testing.T) {
		_, err := io.ReadCSVString("a,b\n\"unterminated", mem)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrParse))
	})

	t.Run("header only yields a zero-row table", func(t *testing.T) {
		tbl, err := io.ReadCSVString("name,age", mem)
		require.NoError(t, err)
		defer tbl.Release()

		assert.Equal(t, 0, tbl.Len())
		assert.Equal(t, []string{"name", "age"}, tbl.Columns())

		kind, ok := tbl.Kind("age")
		require.True(t, ok)
		assert.Equal(t, table.KindText, kind)
	})

	t.Run("duplicate headers keep the first column", func(t *testing.T) {
		tbl, err := io.ReadCSVString("a,a\n1,2\n3,4", mem)
		require.NoError(t, err)
		defer tbl.Release()

		assert.Equal(t, []string{"a"}, tbl.Columns())
		assert.Equal(t, 1, tbl.Width())
		assert.Equal(t, len(tbl.Columns()), tbl.Width())

		values, _, ok := tbl.FloatColumn("a")
		require.True(t, ok)
		assert.Equal(t, []float64{1, 3}, values)
	})

	t.Run("no header generates column names", func(t *testing.T) {
		opts := io.DefaultCSVOptions()
		opts.Header = false

		tbl, err := io.NewCSVReader(strings.NewReader("1,2\n3,4"), opts, mem).Read()
		require.NoError(t, err)
		defer tbl.Release()

		assert.Equal(t, []string{"column_0", "column_1"}, tbl.Columns())
		assert.Equal(t, 2, tbl.Len())
	})
}

func TestTypeInference(t *testing.T) {
	mem := memory.NewGoAllocator()

	t.Run("infers each column type", func(t *testing.T) {
		csv := "name,age,score,active,joined\n" +
			"Alice,25,85.5,true,2024-01-15\n" +
			"Bob,30,92.0,false,2024-02-20"

		tbl, err := io.ReadCSVString(csv, mem)
		require.NoError(t, err)
		defer tbl.Release()

		for name, want := range map[string]table.Kind{
			"name":   table.KindText,
			"age":    table.KindInt,
			"score":  table.KindFloat,
			"active": table.KindBool,
			"joined": table.KindTime,
		} {
			kind, ok := tbl.Kind(name)
			require.True(t, ok, name)
			assert.Equal(t, want, kind, name)
		}
	})

	t.Run("mixed numbers widen to float", func(t *testing.T) {
		tbl, err := io.ReadCSVString("x\n1\n2.5", mem)
		require.NoError(t, err)
		defer tbl.Release()

		kind, _ := tbl.Kind("x")
		assert.Equal(t, table.KindFloat, kind)

		values, valid, ok := tbl.FloatColumn("x")
		require.True(t, ok)
		assert.Equal(t, []float64{1, 2.5}, values)
		assert.Equal(t, []bool{true, true}, valid)
	})

	t.Run("mixed dates and text stay text", func(t *testing.T) {
		tbl, err := io.ReadCSVString("x\n2024-01-01\nnot a date", mem)
		require.NoError(t, err)
		defer tbl.Release()

		kind, _ := tbl.Kind("x")
		assert.Equal(t, table.KindText, kind)
	})

	t.Run("all-empty column is text", func(t *testing.T) {
		tbl, err := io.ReadCSVString("a,b\n1,\n2,", mem)
		require.NoError(t, err)
		defer tbl.Release()

		kind, _ := tbl.Kind("b")
		assert.Equal(t, table.KindText, kind)

		col, ok := tbl.Column("b")
		require.True(t, ok)
		assert.Equal(t, 2, col.NullCount())
	})

	t.Run("empty fields become nulls in typed columns", func(t *testing.T) {
		tbl, err := io.ReadCSVString("age\n25\n\n35", mem)
		require.NoError(t, err)
		defer tbl.Release()

		kind, _ := tbl.Kind("age")
		assert.Equal(t, table.KindInt, kind)

		col, ok := tbl.Column("age")
		require.True(t, ok)
		assert.Equal(t, 1, col.NullCount())
		assert.True(t, col.IsNull(1))
	})

	t.Run("configured date layouts drive inference", func(t *testing.T) {
		previous := config.GetGlobalConfig()
		custom := previous
		custom.DateLayouts = []string{"02.01.2006"}
		config.SetGlobalConfig(custom)
		defer config.SetGlobalConfig(previous)

		tbl, err := io.ReadCSVString("d\n15.03.2024\n16.03.2024", mem)
		require.NoError(t, err)
		defer tbl.Release()

		kind, ok := tbl.Kind("d")
		require.True(t, ok)
		assert.Equal(t, table.KindTime, kind)

		times, valid, ok := tbl.TimeColumn("d")
		require.True(t, ok)
		assert.Equal(t, []bool{true, true}, valid)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), times[0])
	})

	t.Run("parses date values to UTC midnight", func(t *testing.T) {
		tbl, err := io.ReadCSVString("d\n2024-03-15\n2024-03-16", mem)
		require.NoError(t, err)
		defer tbl.Release()

		times, valid, ok := tbl.TimeColumn("d")
		require.True(t, ok)
		assert.Equal(t, []bool{true, true}, valid)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), times[0])
	})

	t.Run("ragged rows are a parse error", func(t *testing.T) {
		_, err := io.ReadCSVString("a,b\n1,2\n3", mem)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrParse))
	})

	t.Run("custom delimiter", func(t *testing.T) {
		opts := io.DefaultCSVOptions()
		opts.Delimiter = ';'

		tbl, err := io.NewCSVReader(strings.NewReader("a;b\n1;2"), opts, mem).Read()
		require.NoError(t, err)
		defer tbl.Release()

		assert.Equal(t, []string{"a", "b"}, tbl.Columns())
		assert.Equal(t, 1, tbl.Len())
	})
}

func TestWriteCSV(t *testing.T) {
	mem := memory.NewGoAllocator()

	t.Run("round trips through writer", func(t *testing.T) {
		input := "name,age,active\nAlice,25,true\nBob,,false"

		tbl, err := io.ReadCSVString(input, mem)
		require.NoError(t, err)
		defer tbl.Release()

		var sb strings.Builder
		writer := io.NewCSVWriter(&sb, io.DefaultCSVOptions())
		require.NoError(t, writer.Write(tbl))

		assert.Equal(t, "name,age,active\nAlice,25,true\nBob,,false\n", sb.String())
	})

	t.Run("renders dates with the canonical layout", func(t *testing.T) {
		tbl, err := io.ReadCSVString("d\n2024-03-15", mem)
		require.NoError(t, err)
		defer tbl.Release()

		var sb strings.Builder
		writer := io.NewCSVWriter(&sb, io.DefaultCSVOptions())
		require.NoError(t, writer.Write(tbl))

		assert.Equal(t, "d\n2024-03-15\n", sb.String())
	})

	t.Run("headerless output", func(t *testing.T) {
		tbl, err := io.ReadCSVString("x\n1\n2", mem)
		require.NoError(t, err)
		defer tbl.Release()

		opts := io.DefaultCSVOptions()
		opts.Header = false

		var sb strings.Builder
		require.NoError(t, io.NewCSVWriter(&sb, opts).Write(tbl))
		assert.Equal(t, "1\n2\n", sb.String())
	})
}
