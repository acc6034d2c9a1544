package evaluate

import "usosplanner/internal/timetable"

// EvaluateTime scores a timetable by the shape of its days: for every
// (weekday, week parity) bucket it charges a flat cost for the day
// existing at all, the length of the day, and extra penalties for early
// starts, late ends and marathon days. Compact mid-day schedules win.
func EvaluateTime(tt timetable.Timetable, _ *Context) (int, error) {
	type dayKey struct {
		day    timetable.Weekday
		parity int
	}

	buckets := make(map[dayKey][]timetable.HourEntry)
	for _, group := range tt {
		for _, hour := range group.Hours {
			if hour.Parity&timetable.EvenWeeks != 0 {
				key := dayKey{hour.Day, timetable.EvenWeeks}
				buckets[key] = append(buckets[key], hour)
			}
			if hour.Parity&timetable.OddWeeks != 0 {
				key := dayKey{hour.Day, timetable.OddWeeks}
				buckets[key] = append(buckets[key], hour)
			}
		}
	}

	badness := 0.0
	for _, hours := range buckets {
		from, to := hours[0].TimeFrom, hours[0].TimeTo
		for _, hour := range hours[1:] {
			if hour.TimeFrom < from {
				from = hour.TimeFrom
			}
			if hour.TimeTo > to {
				to = hour.TimeTo
			}
		}

		badness += 20
		badness += to - from
		if from < 10 {
			badness += 2
		}
		if to > 15 {
			badness += 2
		}
		if to > 17 {
			badness += 10
		}
		if to-from > 9 {
			badness += 30
		}
	}
	return int(badness), nil
}
