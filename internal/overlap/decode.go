package overlap

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jonathan/pair-overlap/internal/dates"
	"github.com/jonathan/pair-overlap/internal/types"
)

// minFields is the number of leading fields a row needs: employee, project, from, to.
const minFields = 4

// decodeResult holds either a decoded record or the error that replaces it.
type decodeResult struct {
	record types.AssignmentRecord
	err    *types.EngineError
}

func (d decodeResult) ok() bool {
	return d.err == nil
}

// decodeRow converts a raw row into an assignment record. Failures come back as a
// recoverable EngineError; the caller skips the row and keeps reading.
func decodeRow(row []string, ref time.Time) decodeResult {
	if len(row) < minFields {
		return decodeResult{err: &types.EngineError{
			Message: "Malformed row: " + rowJSON(row),
			Kind:    types.ErrorKindMalformedRow,
			Record:  slices.Clone(row),
		}}
	}

	employee, project, fromRaw, toRaw := row[0], row[1], row[2], row[3]

	from, err := dates.Resolve(fromRaw, ref)
	if err != nil {
		return decodeResult{err: recordError(row[:minFields], err)}
	}
	to, err := dates.Resolve(toRaw, ref)
	if err != nil {
		return decodeResult{err: recordError(row[:minFields], err)}
	}

	return decodeResult{record: types.AssignmentRecord{
		EmployeeID: types.ParseEmployeeID(employee),
		Project:    project,
		From:       from,
		To:         to,
	}}
}

// recordError builds the error for a row that had enough fields but failed to decode.
func recordError(fields []string, cause error) *types.EngineError {
	return &types.EngineError{
		Message: fmt.Sprintf("Error in record [%s]: %v", strings.Join(fields, ", "), cause),
		Kind:    classifyDecodeError(cause),
		Record:  slices.Clone(fields),
	}
}

func classifyDecodeError(err error) types.ErrorKind {
	var badDate *dates.BadDateError
	if errors.As(err, &badDate) {
		return types.ErrorKindBadDate
	}
	return types.ErrorKindParse
}

func rowJSON(row []string) string {
	//nolint:errcheck // a []string always marshals
	b, _ := json.Marshal(row)
	return string(b)
}
