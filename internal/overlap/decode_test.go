package overlap

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pair-overlap/internal/types"
)

func TestDecodeRow_Valid(t *testing.T) {
	ref := time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)
	got := decodeRow([]string{"143", "10", "2023-01-01", "NULL", "ignored"}, ref)

	require.True(t, got.ok())
	assert.Equal(t, types.AssignmentRecord{
		EmployeeID: 143,
		Project:    "10",
		From:       time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		To:         ref,
	}, got.record)
}

func TestDecodeRow_TooFewFields(t *testing.T) {
	got := decodeRow([]string{"143", "10"}, time.Now())

	require.False(t, got.ok())
	assert.Equal(t, types.ErrorKindMalformedRow, got.err.Kind)
	assert.Equal(t, `Malformed row: ["143","10"]`, got.err.Message)
	assert.Equal(t, []string{"143", "10"}, got.err.Record)
}

func TestDecodeRow_BadToDate(t *testing.T) {
	got := decodeRow([]string{"218", "10", "2023-01-03", "BAD-DATE", "extra"}, time.Now())

	require.False(t, got.ok())
	assert.Equal(t, types.ErrorKindBadDate, got.err.Kind)
	assert.Equal(t, `Error in record [218, 10, 2023-01-03, BAD-DATE]: Bad date: "BAD-DATE"`, got.err.Message)
	assert.Equal(t, []string{"218", "10", "2023-01-03", "BAD-DATE"}, got.err.Record)
}

func TestDecodeRow_RecordDoesNotAliasInput(t *testing.T) {
	row := []string{"1", "2"}
	got := decodeRow(row, time.Now())
	row[0] = "changed"
	assert.Equal(t, "1", got.err.Record[0])
}

func TestClassifyDecodeError(t *testing.T) {
	assert.Equal(t, types.ErrorKindParse, classifyDecodeError(errors.New("unexpected")))
}
