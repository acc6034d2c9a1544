package evaluate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"

	"usosplanner/internal/timetable"
)

// courseBadness maps classtype -> group number -> badness for one course.
type courseBadness map[string]map[string]int

const customDataFile = "data.json"

// EvaluateCustom sums user-assigned badness values over the timetable's
// groups, read from data.json under the context directory. A merged
// group scores the minimum among its interchangeable group numbers.
// Missing courses, classtypes or group numbers are hard errors: they
// mean the scoring data is stale relative to the fetched groups.
func EvaluateCustom(tt timetable.Timetable, ctx *Context) (int, error) {
	data, err := ctx.loadCustomData()
	if err != nil {
		return 0, err
	}

	total := 0
	for _, group := range tt {
		byClasstype, ok := data[group.Course]
		if !ok {
			return 0, fmt.Errorf("custom badness data misses course %q", group.Course)
		}
		byGroup, ok := byClasstype[group.Classtype]
		if !ok {
			return 0, fmt.Errorf("custom badness data misses %q %q", group.Course, group.Classtype)
		}

		best := 0
		found := false
		for _, groupNum := range group.GroupNums {
			badness, ok := byGroup[groupNum]
			if !ok {
				return 0, fmt.Errorf("custom badness data misses group %q of %q %q",
					groupNum, group.Course, group.Classtype)
			}
			if !found || badness < best {
				best, found = badness, true
			}
		}
		total += best
	}
	return total, nil
}

func (ctx *Context) loadCustomData() (map[string]courseBadness, error) {
	if ctx.customData != nil {
		return ctx.customData, nil
	}

	bytes, err := os.ReadFile(filepath.Join(ctx.Dir, customDataFile))
	if err != nil {
		return nil, fmt.Errorf("cannot read custom badness data: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return nil, fmt.Errorf("cannot parse custom badness data: %w", err)
	}

	var data map[string]courseBadness
	if err := mapstructure.Decode(raw, &data); err != nil {
		return nil, fmt.Errorf("cannot decode custom badness data: %w", err)
	}

	ctx.customData = data
	return data, nil
}
