package types

// PairKey is the canonical form of an unordered employee pair: A is the smaller id.
type PairKey struct {
	A EmployeeID
	B EmployeeID
}

// NewPairKey orders the two ids so that either argument order yields the same key.
func NewPairKey(x, y EmployeeID) PairKey {
	if y < x {
		x, y = y, x
	}
	return PairKey{A: x, B: y}
}

// ProjectOverlap is one project's contribution to a pair's total.
type ProjectOverlap struct {
	Project string `json:"project"`
	Days    int    `json:"days"`
}

// PairResult aggregates every project on which two employees overlapped.
type PairResult struct {
	EmpA      EmployeeID       `json:"empA"`
	EmpB      EmployeeID       `json:"empB"`
	Projects  []ProjectOverlap `json:"projects"`
	TotalDays int              `json:"totalDays"`
}

// Key returns the canonical pair key of the result.
func (p *PairResult) Key() PairKey {
	return NewPairKey(p.EmpA, p.EmpB)
}

// ProjectRow is the flat projection of a single pair/project overlap.
type ProjectRow struct {
	EmpA    EmployeeID `json:"empA"`
	EmpB    EmployeeID `json:"empB"`
	Project string     `json:"project"`
	Days    int        `json:"days"`
}
