package usos

import (
	"fmt"
	"log"
	"slices"
	"strings"

	"usosplanner/internal/timetable"
)

// DryRunWriter is the TimetableWriter used for anonymous sessions: it
// logs what would be sent to the portal instead of sending it.
type DryRunWriter struct {
	created int
}

func NewDryRunWriter() *DryRunWriter {
	return &DryRunWriter{}
}

func (w *DryRunWriter) Create(name string) (string, error) {
	w.created++
	handle := fmt.Sprintf("dry-run-%d", w.created)
	log.Printf("would create timetable %q (%v)", name, handle)
	return handle, nil
}

func (w *DryRunWriter) AddCourse(handle, courseID, term string) error {
	log.Printf("would add course %v (%v) to %v", courseID, term, handle)
	return nil
}

func (w *DryRunWriter) Materialize(handle string, selection map[timetable.UnitKey]*timetable.GroupEntry) error {
	keys := make([]timetable.UnitKey, 0, len(selection))
	for key := range selection {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b timetable.UnitKey) int {
		if c := strings.Compare(a.Course, b.Course); c != 0 {
			return c
		}
		return strings.Compare(a.Classtype, b.Classtype)
	})
	for _, key := range keys {
		log.Printf("would keep %v %v group %v in %v",
			key.Course, key.Classtype, selection[key].GroupNums, handle)
	}
	return nil
}
