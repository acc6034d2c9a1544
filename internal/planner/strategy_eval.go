package planner

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"usosplanner/internal/timetable"
)

// ErrNoJointAssignment reports that no shared-group assignment leaves
// every constrained person with at least one timetable.
var ErrNoJointAssignment = errors.New("no jointly feasible shared-group assignment")

// Aggregator folds the per-person head scores of one tree node into a
// single contribution. Lower is better, as everywhere else.
type Aggregator func(scores []float64) float64

// PowerAggregator raises the sum of scores to the given power, so one
// person with a bad best case dominates the whole contribution.
func PowerAggregator(power float64) Aggregator {
	return func(scores []float64) float64 {
		sum := 0.0
		for _, score := range scores {
			sum += score
		}
		return math.Pow(sum, power)
	}
}

// Aggregators is the registry of named aggregation functions, built
// explicitly and passed where needed.
type Aggregators struct {
	factories map[string]func(power float64) Aggregator
}

func NewAggregators() *Aggregators {
	aggregators := &Aggregators{factories: make(map[string]func(power float64) Aggregator)}
	aggregators.Register("power", PowerAggregator)
	return aggregators
}

func (a *Aggregators) Register(name string, factory func(power float64) Aggregator) {
	a.factories[name] = factory
}

func (a *Aggregators) Get(name string, power float64) (Aggregator, error) {
	factory, ok := a.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown aggregation function: %q", name)
	}
	return factory(power), nil
}

// Assignment maps unit index -> timetable indices ordered best-first
// under the commitments of one strategy path.
type Assignment map[int][]int

func (a Assignment) clone() Assignment {
	copied := make(Assignment, len(a))
	for unitID, indices := range a {
		copied[unitID] = slices.Clone(indices)
	}
	return copied
}

// ResultSet keeps the best n strategies keyed by score. Strategies that
// land on the same score share one bucket, and eviction drops the whole
// worst-score bucket at once when over capacity.
type ResultSet struct {
	n       int
	buckets map[float64][]Assignment
}

func NewResultSet(n int) *ResultSet {
	return &ResultSet{n: n, buckets: make(map[float64][]Assignment)}
}

func (rs *ResultSet) Add(score float64, assignment Assignment) {
	rs.buckets[score] = append(rs.buckets[score], assignment)
	if rs.n > 0 && len(rs.buckets) > rs.n {
		worst := math.Inf(-1)
		for bucketScore := range rs.buckets {
			if bucketScore > worst {
				worst = bucketScore
			}
		}
		delete(rs.buckets, worst)
	}
}

// Buckets exposes the retained score -> assignments mapping.
func (rs *ResultSet) Buckets() map[float64][]Assignment {
	return rs.buckets
}

// Scores lists the retained scores ascending.
func (rs *ResultSet) Scores() []float64 {
	scores := make([]float64, 0, len(rs.buckets))
	for score := range rs.buckets {
		scores = append(scores, score)
	}
	slices.Sort(scores)
	return scores
}

// TopStrategies walks a precomputed strategy tree and retains the n
// best-scoring shared-group assignments. At every visited choice the
// restricted indices move to the front of the affected person's list,
// so each person's best still-valid timetable sits at the head; the
// node's contribution is the aggregated head scores, and the cumulative
// score is averaged over depth to keep long paths comparable with
// short ones.
func TopStrategies(n int, aggregate Aggregator, tree *Node, units []*Unit) (*ResultSet, error) {
	if len(tree.Choices) == 0 {
		return nil, ErrNoJointAssignment
	}

	timetables := make(Assignment, len(units))
	for i, unit := range units {
		indices := make([]int, len(unit.RankedTimetables))
		for j := range indices {
			indices[j] = j
		}
		timetables[i] = indices
	}

	results := NewResultSet(n)
	if err := strategyTreeDFS(1, tree, aggregate, units, timetables, 0, results); err != nil {
		return nil, err
	}
	return results, nil
}

func strategyTreeDFS(
	depth int,
	node *Node,
	aggregate Aggregator,
	units []*Unit,
	timetables Assignment,
	score float64,
	results *ResultSet,
) error {
	for _, choice := range node.Choices {
		updated := timetables.clone()
		for unitID, indices := range choice.Best {
			updated[unitID] = moveToFront(updated[unitID], indices)
		}

		headScores := make([]float64, len(units))
		for unitID := range units {
			indices := updated[unitID]
			if len(indices) == 0 {
				return fmt.Errorf("unit %v has no timetables left on a recorded branch", unitID)
			}
			headScores[unitID] = units[unitID].RankedTimetables[indices[0]].Score
		}

		newScore := (score + aggregate(headScores)) / float64(depth)
		results.Add(newScore, updated.clone())

		if choice.Child != nil {
			if err := strategyTreeDFS(depth+1, choice.Child, aggregate, units, updated, newScore, results); err != nil {
				return err
			}
		}
	}
	return nil
}

// moveToFront prepends the restricted indices, dropping them from their
// old positions so the list stays duplicate-free.
func moveToFront(current, restricted []int) []int {
	front := make(map[int]bool, len(restricted))
	for _, index := range restricted {
		front[index] = true
	}
	merged := slices.Clone(restricted)
	for _, index := range current {
		if !front[index] {
			merged = append(merged, index)
		}
	}
	return merged
}

// Materialization resolves an assignment's head timetable per unit into
// the course-unit -> chosen-group mapping the portal writer consumes.
func Materialization(assignment Assignment, units []*Unit) (map[string]map[timetable.UnitKey]*timetable.GroupEntry, error) {
	selections := make(map[string]map[timetable.UnitKey]*timetable.GroupEntry, len(units))
	for unitID, unit := range units {
		indices, ok := assignment[unitID]
		if !ok || len(indices) == 0 {
			return nil, fmt.Errorf("%w: %v", ErrNoTimetables, unit.Name)
		}
		selections[unit.Name] = unit.RankedTimetables[indices[0]].Timetable.Selection()
	}
	return selections, nil
}
