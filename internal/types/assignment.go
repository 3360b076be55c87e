// Package types provides type definitions for structured data used throughout the pair-overlap system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// EmployeeID identifies an employee. Source values that are not numeric coerce to
// InvalidEmployeeID instead of being rejected.
type EmployeeID int64

// InvalidEmployeeID is the sentinel for a non-numeric employee field. It serializes as null.
const InvalidEmployeeID EmployeeID = math.MinInt64

// ParseEmployeeID coerces a raw field to an EmployeeID. It never fails: an empty field
// becomes 0 and anything that is not an integral number becomes InvalidEmployeeID.
func ParseEmployeeID(raw string) EmployeeID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return EmployeeID(n)
	}
	// Accept forms like "1e3" or "143.0" as long as they land on an integer
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return InvalidEmployeeID
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return InvalidEmployeeID
	}
	return EmployeeID(int64(f))
}

// Valid reports whether the id came from a numeric source field.
func (id EmployeeID) Valid() bool {
	return id != InvalidEmployeeID
}

func (id EmployeeID) String() string {
	if !id.Valid() {
		return "NaN"
	}
	return strconv.FormatInt(int64(id), 10)
}

// MarshalJSON writes the id as a number, or null for InvalidEmployeeID.
func (id EmployeeID) MarshalJSON() ([]byte, error) {
	if !id.Valid() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(int64(id), 10)), nil
}

// UnmarshalJSON reads a number, mapping null back to InvalidEmployeeID.
func (id *EmployeeID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = InvalidEmployeeID
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = EmployeeID(n)
	return nil
}

// AssignmentRecord is one decoded row: an employee assigned to a project over a closed
// calendar-date interval. From <= To is not enforced.
type AssignmentRecord struct {
	EmployeeID EmployeeID
	Project    string
	From       time.Time
	To         time.Time
}
