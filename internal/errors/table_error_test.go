package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tablewise/tablewise/internal/errors"
)

func TestTableError(t *testing.T) {
	t.Run("formats with column context", func(t *testing.T) {
		err := errors.NewColumnNotFoundError("Describe", "age")
		assert.Equal(t, "Describe operation failed on column 'age': column does not exist", err.Error())
	})

	t.Run("formats without column context", func(t *testing.T) {
		err := errors.NewInvalidInputError("Filter", "bad query")
		assert.Equal(t, "Filter operation failed: bad query", err.Error())
	})

	t.Run("unwraps the cause", func(t *testing.T) {
		cause := stderrors.New("boom")
		err := errors.NewInternalError("Load", cause)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("matches by identity fields", func(t *testing.T) {
		err := errors.NewColumnNotFoundError("Describe", "age")
		assert.ErrorIs(t, err, errors.NewColumnNotFoundError("Describe", "age"))
		assert.NotErrorIs(t, err, errors.NewColumnNotFoundError("Describe", "salary"))
	})
}

func TestParseError(t *testing.T) {
	t.Run("classifies as ErrParse", func(t *testing.T) {
		err := errors.NewParseError("input is empty", nil)
		assert.ErrorIs(t, err, errors.ErrParse)
	})

	t.Run("survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading dataset: %w", errors.NewParseError("reading CSV", stderrors.New("bad quote")))
		assert.ErrorIs(t, err, errors.ErrParse)
	})

	t.Run("carries the parser message", func(t *testing.T) {
		err := errors.NewParseError("reading CSV", stderrors.New("bad quote"))
		assert.Equal(t, "parsing CSV: reading CSV: bad quote", err.Error())

		bare := errors.NewParseError("input is empty", nil)
		assert.Equal(t, "parsing CSV: input is empty", bare.Error())
	})

	t.Run("unrelated errors are not parse errors", func(t *testing.T) {
		assert.NotErrorIs(t, stderrors.New("other"), errors.ErrParse)
	})
}
