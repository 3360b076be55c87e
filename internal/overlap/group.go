package overlap

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/jonathan/pair-overlap/internal/types"
)

// projectBucket is the list of records for one project, in arrival order.
type projectBucket struct {
	project string
	records []types.AssignmentRecord
}

// projectGrouper partitions records by project. Projects iterate in first-seen order.
type projectGrouper struct {
	buckets *linkedhashmap.Map // project -> *projectBucket
	records int
}

func newProjectGrouper() *projectGrouper {
	return &projectGrouper{buckets: linkedhashmap.New()}
}

func (g *projectGrouper) add(rec types.AssignmentRecord) {
	var bucket *projectBucket
	if v, found := g.buckets.Get(rec.Project); found {
		bucket = v.(*projectBucket)
	} else {
		bucket = &projectBucket{project: rec.Project}
		g.buckets.Put(rec.Project, bucket)
	}
	bucket.records = append(bucket.records, rec)
	g.records++
}

// len returns the total number of records across all projects.
func (g *projectGrouper) len() int {
	return g.records
}

func (g *projectGrouper) projects() int {
	return g.buckets.Size()
}

// each visits every project bucket in first-seen order.
func (g *projectGrouper) each(fn func(bucket *projectBucket)) {
	it := g.buckets.Iterator()
	for it.Next() {
		fn(it.Value().(*projectBucket))
	}
}
