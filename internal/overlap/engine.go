// Package overlap computes which employees were co-assigned to the same projects, and for
// how long, from a sequence of assignment rows.
package overlap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/pair-overlap/internal/dates"
	"github.com/jonathan/pair-overlap/internal/types"
)

// RowSource yields raw rows one at a time. Next returns io.EOF at the end of input; any
// other error is a failure of the source itself and ends the run.
type RowSource interface {
	Next(ctx context.Context) ([]string, error)
}

// Option configures a Compute call.
type Option func(*options)

type options struct {
	referenceDate time.Time
	logger        *zap.Logger
}

// WithReferenceDate sets the date substituted for NULL or empty date tokens.
// The current date is used when unset.
func WithReferenceDate(t time.Time) Option {
	return func(o *options) {
		o.referenceDate = t
	}
}

// WithLogger attaches a logger for run summaries.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

type runState int

const (
	stateReading runState = iota
	stateAggregating
	stateDone
)

func (s runState) String() string {
	switch s {
	case stateReading:
		return "reading"
	case stateAggregating:
		return "aggregating"
	case stateDone:
		return "done"
	default:
		return fmt.Sprintf("runState(%d)", int(s))
	}
}

// run is the state of one Compute call. Nothing in it is shared between calls.
type run struct {
	state   runState
	ref     time.Time
	logger  *zap.Logger
	grouper *projectGrouper
	result  *types.EngineResult
	rows    int
	aborted bool
}

// Compute reads every row from src and returns the ranked pairs along with the errors
// collected on the way. It always returns a result: bad rows are recorded and skipped,
// and a failing source yields the errors collected so far with no pairs.
func Compute(ctx context.Context, src RowSource, opts ...Option) *types.EngineResult {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.referenceDate.IsZero() {
		o.referenceDate = dates.Today()
	}

	r := &run{
		state:   stateReading,
		ref:     dates.CalendarDate(o.referenceDate),
		logger:  o.logger,
		grouper: newProjectGrouper(),
		result:  types.NewEngineResult(),
	}

	for r.state != stateDone {
		r.step(ctx, src)
	}

	r.logger.Debug("overlap run finished",
		zap.Int("rows", r.rows),
		zap.Int("records", r.grouper.len()),
		zap.Int("projects", r.grouper.projects()),
		zap.Int("pairs", len(r.result.Pairs)),
		zap.Int("errors", len(r.result.Errors)),
		zap.Bool("aborted", r.aborted),
	)
	return r.result
}

func (r *run) step(ctx context.Context, src RowSource) {
	switch r.state {
	case stateReading:
		row, err := nextRow(ctx, src)
		switch {
		case errors.Is(err, io.EOF):
			r.state = stateAggregating
		case err != nil:
			r.abort(err)
		default:
			r.consume(row)
		}
	case stateAggregating:
		r.aggregate()
		r.state = stateDone
	}
}

func (r *run) consume(row []string) {
	r.rows++
	decoded := decodeRow(row, r.ref)
	if !decoded.ok() {
		r.result.Errors = append(r.result.Errors, *decoded.err)
		return
	}
	r.grouper.add(decoded.record)
}

// abort ends the run on a source failure. Pairs are discarded; row errors are kept.
func (r *run) abort(err error) {
	r.result.Errors = append(r.result.Errors, types.EngineError{
		Message: "Stream error: " + err.Error(),
		Kind:    types.ErrorKindStream,
	})
	r.aborted = true
	r.state = stateDone
	r.logger.Warn("row source failed", zap.Int("rows", r.rows), zap.Error(err))
}

func (r *run) aggregate() {
	if r.grouper.len() == 0 {
		return
	}

	var contributions []contribution
	r.grouper.each(func(bucket *projectBucket) {
		contributions = append(contributions, sweepProject(bucket.project, bucket.records)...)
	})

	r.result.Pairs = aggregate(contributions)
	if len(r.result.Pairs) > 0 {
		r.result.Top = &r.result.Pairs[0]
	}
}

// nextRow reads one row, turning cancellation and a panicking source into source errors.
func nextRow(ctx context.Context, src RowSource) (row []string, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if p := recover(); p != nil {
			row, err = nil, fmt.Errorf("row source panicked: %v", p)
		}
	}()
	return src.Next(ctx)
}
