package types

// ErrorKind classifies an EngineError.
type ErrorKind string

const (
	// ErrorKindMalformedRow marks a row with fewer than four fields.
	ErrorKindMalformedRow ErrorKind = "malformed_row"
	// ErrorKindBadDate marks a date token that matched no known format.
	ErrorKindBadDate ErrorKind = "BadDate"
	// ErrorKindParse marks any other per-row decoding failure.
	ErrorKindParse ErrorKind = "parse_error"
	// ErrorKindStream marks a failure of the row source itself. It is the only terminal kind.
	ErrorKindStream ErrorKind = "stream_error"
)

// Terminal reports whether an error of this kind stops the run.
func (k ErrorKind) Terminal() bool {
	return k == ErrorKindStream
}

// EngineError is a recorded failure. Record holds the raw row, or nil for stream errors.
type EngineError struct {
	Message string    `json:"message"`
	Kind    ErrorKind `json:"type"`
	Record  []string  `json:"record"`
}

// EngineResult is the outcome of one engine run. Pairs are sorted by TotalDays descending
// and Top is the first of them, or nil.
type EngineResult struct {
	Pairs  []PairResult  `json:"pairs"`
	Top    *PairResult   `json:"top"`
	Errors []EngineError `json:"errors"`
}

// NewEngineResult returns an empty result whose slices serialize as [] rather than null.
func NewEngineResult() *EngineResult {
	return &EngineResult{
		Pairs:  []PairResult{},
		Errors: []EngineError{},
	}
}

// HasErrors reports whether any row or stream errors were collected.
func (r *EngineResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// CountByKind tallies the collected errors per kind.
func (r *EngineResult) CountByKind() map[ErrorKind]int {
	counts := make(map[ErrorKind]int)
	for _, e := range r.Errors {
		counts[e.Kind]++
	}
	return counts
}

// Rows flattens the nested pair breakdown into one row per pair and project,
// in ranking order.
func (r *EngineResult) Rows() []ProjectRow {
	rows := make([]ProjectRow, 0, len(r.Pairs))
	for _, pair := range r.Pairs {
		for _, p := range pair.Projects {
			rows = append(rows, ProjectRow{
				EmpA:    pair.EmpA,
				EmpB:    pair.EmpB,
				Project: p.Project,
				Days:    p.Days,
			})
		}
	}
	return rows
}
