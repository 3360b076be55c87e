// Package ingestion turns uploaded assignment files into row sources for the overlap engine.
package ingestion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format is a supported input file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Source is a row source that may hold resources.
type Source interface {
	Next(ctx context.Context) ([]string, error)
	Close() error
}

// UnsupportedFormatError reports content that is neither delimited text nor a workbook.
type UnsupportedFormatError struct {
	MIME string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.MIME)
}

// sniffLen is how much of an upload is inspected to detect its format.
const sniffLen = 3072

// DetectFormat sniffs the content type of r from its first bytes. r is consumed.
// Empty content counts as CSV: it simply has no rows.
func DetectFormat(r io.Reader) (Format, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if n == 0 {
		return FormatCSV, nil
	}

	mt := mimetype.Detect(head[:n])
	for m := mt; m != nil; m = m.Parent() {
		switch {
		case m.Is("text/plain"):
			return FormatCSV, nil
		case m.Is("application/zip"):
			// xlsx is a zip container; excelize rejects any other archive
			return FormatXLSX, nil
		}
	}
	return "", &UnsupportedFormatError{MIME: mt.String()}
}

// Open sniffs r and returns the matching source positioned at the first row.
func Open(r io.ReadSeeker) (Source, error) {
	format, err := DetectFormat(r)
	if err != nil {
		return nil, err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}
	return OpenFormat(r, format)
}

// OpenFormat builds a source for a known format.
func OpenFormat(r io.Reader, format Format) (Source, error) {
	switch format {
	case FormatCSV:
		return NewCSVSource(r), nil
	case FormatXLSX:
		return NewXLSXSource(r)
	default:
		return nil, &UnsupportedFormatError{MIME: string(format)}
	}
}

// OpenBytes is Open for content already held in memory, such as stdin.
func OpenBytes(data []byte) (Source, error) {
	return Open(bytes.NewReader(data))
}

// normalizeRow trims every field. It reports false for rows that carry nothing: blank
// lines and comment lines starting with '#'.
func normalizeRow(fields []string) ([]string, bool) {
	blank := true
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
		if fields[i] != "" {
			blank = false
		}
	}
	if blank {
		return nil, false
	}
	if strings.HasPrefix(fields[0], "#") {
		return nil, false
	}
	return fields, true
}
