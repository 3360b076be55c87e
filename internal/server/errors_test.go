package server

import (
	"archive/zip"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pair-overlap/internal/ingestion"
)

func newZip(t *testing.T, w io.Writer) *zip.Writer {
	t.Helper()
	zw := zip.NewWriter(w)
	f, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = f.Write([]byte("not a workbook"))
	require.NoError(t, err)
	return zw
}

func TestErrFileMissing(t *testing.T) {
	err := &ErrFileMissing{}
	assert.Equal(t, "File missing", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrUploadTooLarge(t *testing.T) {
	err := &ErrUploadTooLarge{Limit: 1024}
	assert.Equal(t, "upload exceeds 1024 bytes", err.Error())
	assert.Equal(t, http.StatusRequestEntityTooLarge, HTTPStatus(err))
}

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "today", Message: "expected 2006-01-02"}
	assert.Equal(t, "validation error: today - expected 2006-01-02", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrSourceSetup(t *testing.T) {
	cause := errors.New("zip: not a valid zip file")
	err := &ErrSourceSetup{Err: cause}
	assert.Equal(t, cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "ErrFileMissing",
			err:      &ErrFileMissing{},
			expected: http.StatusBadRequest,
		},
		{
			name:     "ErrUploadTooLarge",
			err:      &ErrUploadTooLarge{Limit: 1},
			expected: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "UnsupportedFormatError",
			err:      &ingestion.UnsupportedFormatError{MIME: "image/png"},
			expected: http.StatusUnsupportedMediaType,
		},
		{
			name:     "wrapped UnsupportedFormatError",
			err:      &ErrSourceSetup{Err: &ingestion.UnsupportedFormatError{MIME: "application/pdf"}},
			expected: http.StatusUnsupportedMediaType,
		},
		{
			name:     "Unknown error",
			err:      assert.AnError,
			expected: http.StatusInternalServerError,
		},
		{
			name:     "Nil error",
			err:      nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}
