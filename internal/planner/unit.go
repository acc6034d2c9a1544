// Package planner turns per-person course data into ranked timetables
// and searches for the best jointly-feasible group assignment across
// several people sharing courses.
package planner

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"usosplanner/internal/evaluate"
	"usosplanner/internal/timetable"
)

// ErrNoTimetables reports that a person has no collision-free timetable
// at all. Infeasibility is a legitimate outcome, not a bug.
var ErrNoTimetables = errors.New("no possible timetable")

// RankedTimetable pairs a timetable with its min-normalized score.
type RankedTimetable struct {
	Timetable timetable.Timetable
	Score     float64
}

// Unit is one person's planning context. RankedTimetables is computed
// once during construction and the unit is read-only afterwards.
type Unit struct {
	Name             string
	Courses          []string
	Evaluator        string
	Groups           timetable.CourseUnits
	RankedTimetables []RankedTimetable
}

func (u *Unit) String() string {
	return fmt.Sprintf("name: %v evaluator: %v", u.Name, u.Evaluator)
}

// NewUnit builds a person's unit: enumerates every collision-free
// timetable over the candidate groups, scores them with the named
// evaluator, min-normalizes and sorts ascending (stable, so enumeration
// order breaks ties). An empty result is allowed here; callers decide
// whether infeasibility is fatal.
func NewUnit(
	name string,
	courses []string,
	evaluatorName string,
	groups timetable.CourseUnits,
	registry *evaluate.Registry,
	ctx *evaluate.Context,
) (*Unit, error) {
	evaluator, err := registry.Get(evaluatorName)
	if err != nil {
		return nil, err
	}

	timetables := timetable.Enumerate(groups)
	scores := make([]int, len(timetables))
	for i, tt := range timetables {
		if scores[i], err = evaluator(tt, ctx); err != nil {
			return nil, fmt.Errorf("scoring timetables of %v: %w", name, err)
		}
	}

	normalized := evaluate.MinNormalize(scores)
	ranked := lo.Map(timetables, func(tt timetable.Timetable, i int) RankedTimetable {
		return RankedTimetable{Timetable: tt, Score: normalized[i]}
	})
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score < ranked[j].Score })

	return &Unit{
		Name:             name,
		Courses:          courses,
		Evaluator:        evaluatorName,
		Groups:           groups,
		RankedTimetables: ranked,
	}, nil
}

// Top returns the best n ranked timetables; n <= 0 returns all.
func (u *Unit) Top(n int) []RankedTimetable {
	if n <= 0 || n > len(u.RankedTimetables) {
		return u.RankedTimetables
	}
	return u.RankedTimetables[:n]
}

// SharedCourses lists courses attended by more than one unit.
func SharedCourses(units []*Unit) []string {
	counts := make(map[string]int)
	var order []string
	for _, unit := range units {
		for _, course := range unit.Courses {
			if counts[course] == 0 {
				order = append(order, course)
			}
			counts[course]++
		}
	}
	return lo.Filter(order, func(course string, _ int) bool { return counts[course] > 1 })
}
