package timetable

import "fmt"

// Week parity flags. A class held every week carries both bits.
const (
	OddWeeks  = 1
	EvenWeeks = 2
	AllWeeks  = OddWeeks | EvenWeeks
)

type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// ParseWeekday converts a weekday name into its Weekday value.
func ParseWeekday(name string) (Weekday, error) {
	for i, candidate := range weekdayNames {
		if candidate == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday: %q", name)
}

// HourEntry is a single weekly meeting slot of a class group. Times are
// fractional hours of the day (9.75 means 9:45). Immutable once built.
type HourEntry struct {
	Day      Weekday
	Parity   int
	TimeFrom float64
	TimeTo   float64
}

func (h HourEntry) String() string {
	return fmt.Sprintf("day: %v parity: %d from: %v to: %v", h.Day, h.Parity, h.TimeFrom, h.TimeTo)
}

// SameSlot reports whether two entries occupy the same slot for
// deduplication purposes. TimeTo deliberately does not participate:
// entries that start together are treated as one slot.
func (h HourEntry) SameSlot(other HourEntry) bool {
	return h.Day == other.Day && h.Parity == other.Parity && h.TimeFrom == other.TimeFrom
}

// HoursCollide reports whether two slots overlap: same weekday,
// intersecting parity masks and overlapping closed time ranges.
// Ranges touching at a single point count as a collision.
func HoursCollide(l, r HourEntry) bool {
	if l.Day != r.Day {
		return false
	}
	if l.Parity&r.Parity == 0 {
		return false
	}
	return l.TimeFrom <= r.TimeTo && l.TimeTo >= r.TimeFrom
}
