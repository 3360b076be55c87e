package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/pair-overlap/internal/types"
)

func TestProjectGrouper_FirstSeenOrder(t *testing.T) {
	g := newProjectGrouper()
	for _, r := range []types.AssignmentRecord{
		{EmployeeID: 1, Project: "B"},
		{EmployeeID: 2, Project: "A"},
		{EmployeeID: 3, Project: "B"},
		{EmployeeID: 4, Project: "C"},
	} {
		g.add(r)
	}

	var projects []string
	var sizes []int
	g.each(func(b *projectBucket) {
		projects = append(projects, b.project)
		sizes = append(sizes, len(b.records))
	})

	assert.Equal(t, []string{"B", "A", "C"}, projects)
	assert.Equal(t, []int{2, 1, 1}, sizes)
	assert.Equal(t, 4, g.len())
	assert.Equal(t, 3, g.projects())
}
