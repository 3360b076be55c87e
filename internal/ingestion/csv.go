package ingestion

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
)

// CSVSource reads comma separated rows. Fields are trimmed, and blank and '#' comment
// lines are skipped. A malformed CSV structure (for example a stray quote) is returned as
// an error, which ends the engine run.
type CSVSource struct {
	r      *csv.Reader
	closer io.Closer
}

// NewCSVSource wraps r. If r is an io.Closer it is closed by Close.
func NewCSVSource(r io.Reader) *CSVSource {
	cr := csv.NewReader(stripUTF8BOM(bufio.NewReader(r)))
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	s := &CSVSource{r: cr}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Next returns the next non-empty row, or io.EOF.
func (s *CSVSource) Next(ctx context.Context) ([]string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := s.r.Read()
		if err != nil {
			return nil, err
		}
		if row, ok := normalizeRow(record); ok {
			return row, nil
		}
	}
}

func (s *CSVSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}
