package overlap

import (
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/jonathan/pair-overlap/internal/types"
)

// pairAccumulator merges contributions from all projects into one result per canonical pair.
// Pairs keep first-seen order, which is the tie-break for equal totals.
type pairAccumulator struct {
	pairs *linkedhashmap.Map // types.PairKey -> *types.PairResult
}

func newPairAccumulator() *pairAccumulator {
	return &pairAccumulator{pairs: linkedhashmap.New()}
}

func (a *pairAccumulator) add(c contribution) {
	key := types.NewPairKey(c.a, c.b)

	var pair *types.PairResult
	if v, found := a.pairs.Get(key); found {
		pair = v.(*types.PairResult)
	} else {
		pair = &types.PairResult{
			EmpA:     key.A,
			EmpB:     key.B,
			Projects: []types.ProjectOverlap{},
		}
		a.pairs.Put(key, pair)
	}

	pair.TotalDays += c.days

	// A project contributes once per pair; repeats from duplicate rows are summed.
	for i := range pair.Projects {
		if pair.Projects[i].Project == c.project {
			pair.Projects[i].Days += c.days
			return
		}
	}
	pair.Projects = append(pair.Projects, types.ProjectOverlap{Project: c.project, Days: c.days})
}

// ranked returns the pairs sorted by TotalDays descending. Equal totals keep first-seen order.
func (a *pairAccumulator) ranked() []types.PairResult {
	out := make([]types.PairResult, 0, a.pairs.Size())
	it := a.pairs.Iterator()
	for it.Next() {
		out = append(out, *it.Value().(*types.PairResult))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalDays > out[j].TotalDays
	})
	return out
}

// aggregate folds contributions into ranked pairs.
func aggregate(contributions []contribution) []types.PairResult {
	acc := newPairAccumulator()
	for _, c := range contributions {
		acc.add(c)
	}
	return acc.ranked()
}
