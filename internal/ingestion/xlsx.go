package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXSource reads rows from the first sheet of a workbook. Cells come back as their
// formatted text, so date cells must be formatted in one of the accepted date layouts.
type XLSXSource struct {
	file  *excelize.File
	rows  *excelize.Rows
	sheet string
}

// NewXLSXSource opens the workbook in r.
func NewXLSXSource(r io.Reader) (*XLSXSource, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		_ = f.Close()
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return &XLSXSource{file: f, rows: rows, sheet: sheets[0]}, nil
}

// Sheet is the name of the sheet being read.
func (s *XLSXSource) Sheet() string {
	return s.sheet
}

// Next returns the next non-empty row, or io.EOF.
func (s *XLSXSource) Next(ctx context.Context) ([]string, error) {
	for s.rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cols, err := s.rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if row, ok := normalizeRow(cols); ok {
			return row, nil
		}
	}
	if err := s.rows.Error(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (s *XLSXSource) Close() error {
	return errors.Join(s.rows.Close(), s.file.Close())
}
