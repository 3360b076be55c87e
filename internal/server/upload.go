package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/pair-overlap/internal/config"
	"github.com/jonathan/pair-overlap/internal/ingestion"
	"github.com/jonathan/pair-overlap/internal/overlap"
	"github.com/jonathan/pair-overlap/internal/types"
)

// uploadField is the multipart field holding the assignments file.
const uploadField = "file"

// todayParam optionally overrides the reference date for one request.
const todayParam = "today"

// handleUpload runs the overlap engine over an uploaded CSV or XLSX file.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	result, format, err := s.processUpload(w, r)
	if format == "" {
		format = "unknown"
	}
	if err != nil {
		s.metrics.uploadsTotal.WithLabelValues(string(format), "rejected").Inc()
		s.logger.Info("upload rejected", zap.Error(err), zap.Int("status", HTTPStatus(err)))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	outcome := "ok"
	if result.HasErrors() {
		outcome = "partial"
	}
	s.metrics.uploadsTotal.WithLabelValues(string(format), outcome).Inc()
	for kind, n := range result.CountByKind() {
		s.metrics.rowErrorsTotal.WithLabelValues(string(kind)).Add(float64(n))
	}
	s.metrics.pairsFound.Observe(float64(len(result.Pairs)))

	s.jsonResponse(w, http.StatusOK, result)
}

// processUpload stores the upload under the upload dir for the duration of the run.
// The stored copy is always removed before returning.
func (s *Server) processUpload(w http.ResponseWriter, r *http.Request) (*types.EngineResult, ingestion.Format, error) {
	if r.ContentLength > s.maxUploadBytes {
		return nil, "", &ErrUploadTooLarge{Limit: s.maxUploadBytes}
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, "", s.classifyFormError(err)
	}
	file, _, err := r.FormFile(uploadField)
	if err != nil {
		return nil, "", s.classifyFormError(err)
	}
	defer file.Close()

	ref, err := s.requestReference(r)
	if err != nil {
		return nil, "", err
	}

	path := filepath.Join(s.uploadDir, uuid.NewString())
	stored, err := os.Create(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to store upload: %w", err)
	}
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to remove upload", zap.String("path", path), zap.Error(err))
		}
	}()
	defer stored.Close()

	if _, err := io.Copy(stored, file); err != nil {
		return nil, "", fmt.Errorf("failed to store upload: %w", err)
	}
	if _, err := stored.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	format, err := ingestion.DetectFormat(stored)
	if err != nil {
		return nil, "", &ErrSourceSetup{Err: err}
	}
	if _, err := stored.Seek(0, io.SeekStart); err != nil {
		return nil, format, fmt.Errorf("failed to rewind upload: %w", err)
	}
	src, err := ingestion.OpenFormat(stored, format)
	if err != nil {
		return nil, format, &ErrSourceSetup{Err: err}
	}
	defer src.Close()

	start := time.Now()
	result := overlap.Compute(r.Context(), src,
		overlap.WithReferenceDate(ref),
		overlap.WithLogger(s.logger),
	)
	s.logger.Debug("upload computed",
		zap.String("format", string(format)),
		zap.Int("pairs", len(result.Pairs)),
		zap.Int("errors", len(result.Errors)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, format, nil
}

// classifyFormError maps multipart parsing failures to request errors.
func (s *Server) classifyFormError(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return &ErrUploadTooLarge{Limit: s.maxUploadBytes}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return &ErrFileMissing{}
	default:
		return &ErrSourceSetup{Err: err}
	}
}

// requestReference returns the reference date for this request: the "today"
// parameter when present, then the configured date, then the current date.
func (s *Server) requestReference(r *http.Request) (time.Time, error) {
	today := r.FormValue(todayParam)
	if err := s.validate.Var(today, "omitempty,datetime="+config.DateLayout); err != nil {
		return time.Time{}, &ErrValidation{Field: todayParam, Message: "expected " + config.DateLayout}
	}
	if today != "" {
		return config.ParseDate(today)
	}
	return s.referenceDate, nil
}
