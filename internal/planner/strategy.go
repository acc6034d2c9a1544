package planner

import (
	"slices"
	"strings"

	"usosplanner/internal/timetable"
)

// Edge marks a course unit shared by two people: its group assignment
// must be identical for both. Unit indices point into the units slice
// and always satisfy Unit1 < Unit2.
type Edge struct {
	Unit1     int    `json:"unit1"`
	Unit2     int    `json:"unit2"`
	Course    string `json:"course"`
	Classtype string `json:"classtype"`
}

// GroupRef identifies a merged group inside a persisted strategy tree.
type GroupRef struct {
	Course    string   `json:"course"`
	Classtype string   `json:"classtype"`
	GroupNums []string `json:"groupNums"`
}

func groupRef(group *timetable.GroupEntry) GroupRef {
	nums := slices.Clone(group.GroupNums)
	slices.Sort(nums)
	return GroupRef{Course: group.Course, Classtype: group.Classtype, GroupNums: nums}
}

// Choice is one committed shared-group decision: "units Unit1 and Unit2
// both take Group". Best holds, per affected unit, the restricted list
// of still-valid timetable indices (pre-sorted by rank); Child holds the
// further commitments reachable after this one.
type Choice struct {
	Unit1 int           `json:"unit1"`
	Unit2 int           `json:"unit2"`
	Group GroupRef      `json:"group"`
	Best  map[int][]int `json:"best"`
	Child *Node         `json:"child"`
}

// Node is one level of the strategy tree. An empty node is a leaf.
type Node struct {
	Choices []Choice `json:"choices,omitempty"`
}

// SharedEdges builds the shared-course-unit graph over the units:
// for every unordered pair of people and every (course, classtype) both
// take, one edge — but only if the unit offers more than one candidate
// group, since a single-group unit is trivially shared and adds no
// branching. The result is deduplicated and deterministically ordered.
func SharedEdges(units []*Unit) []Edge {
	seen := make(map[Edge]bool)
	var edges []Edge
	for i, unit1 := range units {
		for j := i + 1; j < len(units); j++ {
			for _, course := range unit1.Courses {
				if !slices.Contains(units[j].Courses, course) {
					continue
				}
				for classtype, groups := range unit1.Groups[course] {
					if len(groups) <= 1 {
						continue
					}
					edge := Edge{Unit1: i, Unit2: j, Course: course, Classtype: classtype}
					if !seen[edge] {
						seen[edge] = true
						edges = append(edges, edge)
					}
				}
			}
		}
	}
	slices.SortFunc(edges, compareEdges)
	return edges
}

func compareEdges(a, b Edge) int {
	if a.Unit1 != b.Unit1 {
		return a.Unit1 - b.Unit1
	}
	if a.Unit2 != b.Unit2 {
		return a.Unit2 - b.Unit2
	}
	if c := strings.Compare(a.Course, b.Course); c != 0 {
		return c
	}
	return strings.Compare(a.Classtype, b.Classtype)
}

// BuildStrategyTree explores every jointly-feasible assignment of shared
// groups without materializing the cross product: at each level it
// partitions both affected people's remaining timetables by the group
// they contain for the edge's course unit, and a group that leaves
// either person with nothing prunes that whole subtree on the spot.
// keep caps the restricted index lists per person per branch (<= 0
// keeps all). In the default mode the candidate scan stops at the first
// group infeasible for either person, matching the assumption that
// candidates are ordered so later ones cannot come back; strict mode
// scans every candidate instead.
func BuildStrategyTree(keep int, edges []Edge, units []*Unit, strict bool) (*Node, error) {
	timetables := make(map[int][]int, len(units))
	for i, unit := range units {
		indices := make([]int, len(unit.RankedTimetables))
		for j := range indices {
			indices[j] = j
		}
		timetables[i] = indices
	}
	return strategyDFS(keep, edges, timetables, units, strict)
}

func strategyDFS(
	keep int,
	edges []Edge,
	timetables map[int][]int,
	units []*Unit,
	strict bool,
) (*Node, error) {
	node := &Node{}
	for edgeID, edge := range edges {
		// partition both people's remaining timetables by the group
		// they contain for this course unit
		byGroup := make(map[int]map[*timetable.GroupEntry][]int, 2)
		for _, unitID := range []int{edge.Unit1, edge.Unit2} {
			partition := make(map[*timetable.GroupEntry][]int)
			for _, timetableID := range timetables[unitID] {
				tt := units[unitID].RankedTimetables[timetableID].Timetable
				found, err := tt.FindGroup(edge.Course, edge.Classtype)
				if err != nil {
					return nil, err
				}
				canonical := canonicalGroup(units[edge.Unit1], edge, found)
				partition[canonical] = append(partition[canonical], timetableID)
			}
			byGroup[unitID] = partition
		}

		for _, group := range units[edge.Unit1].Groups[edge.Course][edge.Classtype] {
			if len(byGroup[edge.Unit1][group]) == 0 || len(byGroup[edge.Unit2][group]) == 0 {
				if strict {
					continue
				}
				break
			}

			remaining := make(map[int][]int, len(timetables))
			for unitID, indices := range timetables {
				remaining[unitID] = indices
			}
			best := make(map[int][]int, 2)
			for _, unitID := range []int{edge.Unit1, edge.Unit2} {
				remaining[unitID] = byGroup[unitID][group]
				best[unitID] = capIndices(remaining[unitID], keep)
			}

			child, err := strategyDFS(keep, edges[edgeID+1:], remaining, units, strict)
			if err != nil {
				return nil, err
			}
			node.Choices = append(node.Choices, Choice{
				Unit1: edge.Unit1,
				Unit2: edge.Unit2,
				Group: groupRef(group),
				Best:  best,
				Child: child,
			})
		}
	}
	return node, nil
}

// canonicalGroup maps a group found inside a timetable back to the
// owning unit's candidate instance, so partition keys compare by
// identity regardless of which person's timetable they came from.
func canonicalGroup(owner *Unit, edge Edge, found *timetable.GroupEntry) *timetable.GroupEntry {
	for _, candidate := range owner.Groups[edge.Course][edge.Classtype] {
		if candidate.Same(found) {
			return candidate
		}
	}
	// not among the owner's candidates; keep the literal instance so the
	// partition still groups equal timetables together
	return found
}

func capIndices(indices []int, keep int) []int {
	if keep > 0 && keep < len(indices) {
		return slices.Clone(indices[:keep])
	}
	return slices.Clone(indices)
}
