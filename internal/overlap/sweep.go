package overlap

import (
	"slices"
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/jonathan/pair-overlap/internal/dates"
	"github.com/jonathan/pair-overlap/internal/types"
)

// contribution is one overlap found inside a project. a is the employee of the record
// being swept, b the employee it overlapped in the active set.
type contribution struct {
	a       types.EmployeeID
	b       types.EmployeeID
	days    int
	project string
}

// sweepProject finds every overlapping interval pair in one project.
//
// Records are visited in ascending From order. The active set holds at most one record per
// employee: inserting a record for an employee already present replaces the stored record
// in place, so only the latest interval of that employee is compared against later arrivals.
func sweepProject(project string, records []types.AssignmentRecord) []contribution {
	sorted := slices.Clone(records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].From.Before(sorted[j].From)
	})

	active := linkedhashmap.New() // EmployeeID -> types.AssignmentRecord
	var found []contribution

	for _, current := range sorted {
		purgeEnded(active, current)

		it := active.Iterator()
		for it.Next() {
			other := it.Value().(types.AssignmentRecord)
			if days := overlapDays(current, other); days > 0 {
				found = append(found, contribution{
					a:       current.EmployeeID,
					b:       other.EmployeeID,
					days:    days,
					project: project,
				})
			}
		}

		active.Put(current.EmployeeID, current)
	}

	return found
}

// purgeEnded drops active records that end before current starts. Since records arrive
// sorted by From, they cannot overlap anything later either.
func purgeEnded(active *linkedhashmap.Map, current types.AssignmentRecord) {
	var ended []interface{}
	it := active.Iterator()
	for it.Next() {
		if it.Value().(types.AssignmentRecord).To.Before(current.From) {
			ended = append(ended, it.Key())
		}
	}
	for _, key := range ended {
		active.Remove(key)
	}
}

// overlapDays is the inclusive day count shared by two intervals, or 0.
func overlapDays(x, y types.AssignmentRecord) int {
	start := x.From
	if y.From.After(start) {
		start = y.From
	}
	end := x.To
	if y.To.Before(end) {
		end = y.To
	}
	return max(0, dates.DaysBetween(start, end)+1)
}
