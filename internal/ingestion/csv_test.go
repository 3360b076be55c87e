package ingestion

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, src Source) [][]string {
	t.Helper()
	var rows [][]string
	for {
		row, err := src.Next(context.Background())
		if errors.Is(err, io.EOF) {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestCSVSource_TrimsAndSkips(t *testing.T) {
	content := "\xEF\xBB\xBF# header comment\n" +
		"143, 10 ,2023-01-01,  2023-01-05  \n" +
		"\n" +
		"   \n" +
		"  # indented comment\n" +
		"218,10,2023-01-03,2023-01-10\r\n" +
		"1,2,3\n"

	rows := readAll(t, NewCSVSource(strings.NewReader(content)))

	assert.Equal(t, [][]string{
		{"143", "10", "2023-01-01", "2023-01-05"},
		{"218", "10", "2023-01-03", "2023-01-10"},
		{"1", "2", "3"},
	}, rows)
}

func TestCSVSource_BOMBeforeData(t *testing.T) {
	rows := readAll(t, NewCSVSource(strings.NewReader("\xEF\xBB\xBF143,10,2023-01-01,2023-01-05")))
	require.Len(t, rows, 1)
	assert.Equal(t, "143", rows[0][0])
}

func TestCSVSource_Empty(t *testing.T) {
	src := NewCSVSource(strings.NewReader(""))
	_, err := src.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestCSVSource_ReaderFailure(t *testing.T) {
	src := NewCSVSource(iotest.ErrReader(errors.New("disk gone")))
	_, err := src.Next(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestCSVSource_MalformedQuotingIsASourceError(t *testing.T) {
	src := NewCSVSource(strings.NewReader("143,\"10,2023-01-01,2023-01-05\n"))
	_, err := src.Next(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestCSVSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVSource(strings.NewReader("1,2,3,4\n")).Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestCSVSource_ClosesUnderlyingReader(t *testing.T) {
	tracker := &closeTracker{Reader: strings.NewReader("")}
	require.NoError(t, NewCSVSource(tracker).Close())
	assert.True(t, tracker.closed)

	assert.NoError(t, NewCSVSource(strings.NewReader("")).Close())
}
