package timetable

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// GroupEntry is one selectable class group of a course's class type.
// After merge normalization a single entry may stand for several raw
// portal groups that meet at identical hours; their numbers are all
// listed in GroupNums.
type GroupEntry struct {
	Course    string
	Classtype string
	GroupNums []string
	Hours     []HourEntry
	Teacher   string
}

func NewGroupEntry(course, classtype, groupNum string, hours []HourEntry, teacher string) *GroupEntry {
	return &GroupEntry{
		Course:    course,
		Classtype: classtype,
		GroupNums: []string{groupNum},
		Hours:     slices.Clone(hours),
		Teacher:   teacher,
	}
}

func (g *GroupEntry) String() string {
	hours := lo.Map(g.Hours, func(hour HourEntry, _ int) string { return hour.String() })
	return fmt.Sprintf("group: %v from %v %v\n%v",
		g.GroupNums, g.Course, g.Classtype, strings.Join(hours, "\n"))
}

// Same reports whether two entries denote the same merged group. Hours
// do not participate: once groups are merged by hours, identical hour
// sets are already encoded in GroupNums membership.
func (g *GroupEntry) Same(other *GroupEntry) bool {
	if g.Course != other.Course || g.Classtype != other.Classtype {
		return false
	}
	if len(g.GroupNums) != len(other.GroupNums) {
		return false
	}
	left, right := slices.Clone(g.GroupNums), slices.Clone(other.GroupNums)
	slices.Sort(left)
	slices.Sort(right)
	return slices.Equal(left, right)
}

// GroupsCollide reports whether any pair of the groups' hours collide.
func GroupsCollide(l, r *GroupEntry) bool {
	return lo.SomeBy(l.Hours, func(hourL HourEntry) bool {
		return lo.SomeBy(r.Hours, func(hourR HourEntry) bool {
			return HoursCollide(hourL, hourR)
		})
	})
}

// MergeHoursByTime merges hour entries of one group that share day and
// time range but differ in parity into a single all-weeks entry.
func MergeHoursByTime(hours []HourEntry) []HourEntry {
	type timeKey struct {
		day      Weekday
		timeFrom float64
		timeTo   float64
	}

	order := make([]timeKey, 0, len(hours))
	byTime := make(map[timeKey][]HourEntry)
	for _, hour := range hours {
		key := timeKey{hour.Day, hour.TimeFrom, hour.TimeTo}
		if _, seen := byTime[key]; !seen {
			order = append(order, key)
		}
		byTime[key] = append(byTime[key], hour)
	}

	merged := make([]HourEntry, 0, len(order))
	for _, key := range order {
		entries := byTime[key]
		first := entries[0]
		if len(entries) > 1 {
			first.Parity = AllWeeks
		}
		merged = append(merged, first)
	}
	return merged
}

// MergeGroupsByHours merges groups of one course unit that meet at
// identical hours into a single interchangeable entry, unioning their
// group numbers. Run once, before any enumeration or scoring.
func MergeGroupsByHours(groups []*GroupEntry) []*GroupEntry {
	var merged []*GroupEntry
	for _, group := range groups {
		target, found := lo.Find(merged, func(candidate *GroupEntry) bool {
			return sameHours(candidate.Hours, group.Hours)
		})
		if found {
			target.GroupNums = append(target.GroupNums, group.GroupNums...)
			slices.Sort(target.GroupNums)
		} else {
			merged = append(merged, group)
		}
	}
	return merged
}

// sameHours compares hour sets via SameSlot, ignoring order.
func sameHours(l, r []HourEntry) bool {
	if len(l) != len(r) {
		return false
	}
	return lo.EveryBy(l, func(hourL HourEntry) bool {
		return lo.SomeBy(r, func(hourR HourEntry) bool { return hourL.SameSlot(hourR) })
	})
}
