package usos

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/gocarina/gocsv"

	"usosplanner/internal/timetable"
)

// groupRecord is one CSV row of the offline course data: a single hour
// entry of a single raw portal group.
type groupRecord struct {
	Course    string  `csv:"course"`
	Classtype string  `csv:"classtype"`
	GroupNum  string  `csv:"group_num"`
	Day       string  `csv:"day"`
	Parity    int     `csv:"parity"`
	TimeFrom  float64 `csv:"time_from"`
	TimeTo    float64 `csv:"time_to"`
	Teacher   string  `csv:"teacher"`
}

// FileProvider serves course groups from CSV files under a data
// directory, one file per (course, term). It applies the same merge
// normalizations the live portal fetcher would: complementary-parity
// hours collapse to all-weeks, groups with identical hours collapse
// into one interchangeable entry.
type FileProvider struct {
	dir string
}

func NewFileProvider(dir string) *FileProvider {
	return &FileProvider{dir: dir}
}

func (p *FileProvider) FetchCourseGroups(courseID, term string) (map[string][]*timetable.GroupEntry, error) {
	path := filepath.Join(p.dir, fmt.Sprintf("%v_%v.csv", courseID, term))
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("no course data for %v in term %v: %w", courseID, term, err)
	}
	defer file.Close()

	var records []*groupRecord
	if err := gocsv.UnmarshalFile(file, &records); err != nil {
		return nil, fmt.Errorf("cannot parse course data for %v: %w", courseID, err)
	}

	type rawGroup struct {
		num     string
		teacher string
		hours   []timetable.HourEntry
	}

	// classtype -> raw groups with their collected hours, insertion-ordered
	byClasstype := make(map[string][]*rawGroup)
	index := make(map[[2]string]*rawGroup)
	var classtypeOrder []string

	for _, record := range records {
		if record.Course != courseID {
			return nil, fmt.Errorf("course data for %v contains row for %v", courseID, record.Course)
		}
		day, err := timetable.ParseWeekday(record.Day)
		if err != nil {
			return nil, fmt.Errorf("cannot parse course data for %v: %w", courseID, err)
		}
		hour := timetable.HourEntry{
			Day:      day,
			Parity:   record.Parity,
			TimeFrom: record.TimeFrom,
			TimeTo:   record.TimeTo,
		}

		key := [2]string{record.Classtype, record.GroupNum}
		group, ok := index[key]
		if !ok {
			group = &rawGroup{num: record.GroupNum, teacher: record.Teacher}
			index[key] = group
			if _, seen := byClasstype[record.Classtype]; !seen {
				classtypeOrder = append(classtypeOrder, record.Classtype)
			}
			byClasstype[record.Classtype] = append(byClasstype[record.Classtype], group)
		}
		group.hours = append(group.hours, hour)
	}

	groups := make(map[string][]*timetable.GroupEntry, len(byClasstype))
	for _, classtype := range classtypeOrder {
		entries := make([]*timetable.GroupEntry, 0, len(byClasstype[classtype]))
		for _, raw := range byClasstype[classtype] {
			entries = append(entries, timetable.NewGroupEntry(
				courseID,
				classtype,
				raw.num,
				timetable.MergeHoursByTime(raw.hours),
				raw.teacher,
			))
		}
		merged := timetable.MergeGroupsByHours(entries)
		slices.SortFunc(merged, func(a, b *timetable.GroupEntry) int {
			return slices.Compare(a.GroupNums, b.GroupNums)
		})
		groups[classtype] = merged
	}
	return groups, nil
}
