package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/pair-overlap/internal/ingestion"
)

// ErrFileMissing indicates the upload carried no "file" part
type ErrFileMissing struct{}

func (e *ErrFileMissing) Error() string {
	return "File missing"
}

// ErrUploadTooLarge indicates the request body exceeded the configured limit
type ErrUploadTooLarge struct {
	Limit int64
}

func (e *ErrUploadTooLarge) Error() string {
	return fmt.Sprintf("upload exceeds %d bytes", e.Limit)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrSourceSetup indicates the uploaded file could not be turned into a row source
type ErrSourceSetup struct {
	Err error
}

func (e *ErrSourceSetup) Error() string {
	return e.Err.Error()
}

func (e *ErrSourceSetup) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var unsupported *ingestion.UnsupportedFormatError
	if errors.As(err, &unsupported) {
		return http.StatusUnsupportedMediaType
	}

	switch err.(type) {
	case *ErrUploadTooLarge:
		return http.StatusRequestEntityTooLarge
	case *ErrFileMissing, *ErrValidation, *ErrSourceSetup:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
