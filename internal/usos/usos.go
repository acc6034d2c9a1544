// Package usos holds the planner's view of the registration portal:
// capability interfaces for fetching course data and materializing
// timetables, plus offline file-backed implementations. All portal
// access happens through these interfaces strictly before the planning
// engine runs; the engine itself never performs I/O.
package usos

import "usosplanner/internal/timetable"

// CourseProvider returns the candidate groups of a course for a term,
// keyed by classtype. Implementations must return merged, deduplicated
// groups: hour entries with complementary parities collapsed to
// all-weeks, and groups with identical hours collapsed into one entry.
type CourseProvider interface {
	FetchCourseGroups(courseID, term string) (map[string][]*timetable.GroupEntry, error)
}

// TermResolver maps an abstract dydactic cycle like "2024Z" to the
// concrete term identifier a specific course uses.
type TermResolver interface {
	ResolveTerm(courseID, cycle string) (string, error)
}

// TimetableWriter realizes a chosen timetable in the portal. The
// selection maps every course unit to exactly one chosen group.
type TimetableWriter interface {
	Create(name string) (string, error)
	AddCourse(handle, courseID, term string) error
	Materialize(handle string, selection map[timetable.UnitKey]*timetable.GroupEntry) error
}

// Cache is an injected byte store keyed by string; providers use it to
// avoid refetching, the engine never sees it.
type Cache interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte) error
}
