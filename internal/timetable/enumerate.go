package timetable

import (
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// CourseUnits maps course code -> classtype -> candidate groups. Each
// (course, classtype) pair is one course unit; every unit contributes
// exactly one group to a valid timetable.
type CourseUnits map[string]map[string][]*GroupEntry

// UnitKey identifies one course unit.
type UnitKey struct {
	Course    string `json:"course"`
	Classtype string `json:"classtype"`
}

// Timetable is a collision-free selection of one group per course unit.
type Timetable []*GroupEntry

var ErrGroupNotFound = errors.New("group not found in timetable")

// FindGroup returns the timetable's group for the given course unit.
// A miss signals stale or inconsistent data and must abort the run.
func (t Timetable) FindGroup(course, classtype string) (*GroupEntry, error) {
	for _, group := range t {
		if group.Course == course && group.Classtype == classtype {
			return group, nil
		}
	}
	return nil, fmt.Errorf("%w: %v %v", ErrGroupNotFound, course, classtype)
}

// HasGroup reports whether the timetable contains the given merged group.
func (t Timetable) HasGroup(group *GroupEntry) bool {
	return lo.SomeBy(t, func(candidate *GroupEntry) bool { return candidate.Same(group) })
}

// Selection maps every course unit of the timetable to its chosen group,
// the shape expected by the portal materialization call.
func (t Timetable) Selection() map[UnitKey]*GroupEntry {
	selection := make(map[UnitKey]*GroupEntry, len(t))
	for _, group := range t {
		selection[UnitKey{Course: group.Course, Classtype: group.Classtype}] = group
	}
	return selection
}

// UnitKeys lists the course units in deterministic order.
func (units CourseUnits) UnitKeys() []UnitKey {
	var keys []UnitKey
	for _, course := range sortedKeys(units) {
		for _, classtype := range sortedKeys(units[course]) {
			keys = append(keys, UnitKey{Course: course, Classtype: classtype})
		}
	}
	return keys
}

// Enumerate produces every complete, pairwise collision-free timetable
// over the course units. Partial timetables grow one unit at a time and
// extensions that collide with an already picked group are discarded
// immediately, so infeasible prefixes never spawn a full generation.
// A unit with no candidates yields no timetables at all.
func Enumerate(units CourseUnits) []Timetable {
	current := []Timetable{{}}
	for _, key := range units.UnitKeys() {
		groups := units[key.Course][key.Classtype]
		var next []Timetable
		for _, partial := range current {
			for _, group := range groups {
				if collidesWithAny(group, partial) {
					continue
				}
				extended := make(Timetable, len(partial), len(partial)+1)
				copy(extended, partial)
				next = append(next, append(extended, group))
			}
		}
		current = next
	}
	return current
}

func collidesWithAny(group *GroupEntry, partial Timetable) bool {
	return lo.SomeBy(partial, func(picked *GroupEntry) bool {
		return GroupsCollide(group, picked)
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
