package planner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"usosplanner/internal/evaluate"
	"usosplanner/internal/timetable"
	"usosplanner/internal/usos"
)

// Full pipeline over file-backed course data: two people sharing one
// two-group course unit end up committed to the same group.
func TestPlanningPipeline(t *testing.T) {
	//** Arrange
	dataDir := t.TempDir()
	files := map[string]string{
		"X_2024Z.csv": "course,classtype,group_num,day,parity,time_from,time_to,teacher\n" +
			"X,WYK,1,Monday,3,10,11.75,\n",
		"Y_2024Z.csv": "course,classtype,group_num,day,parity,time_from,time_to,teacher\n" +
			"Y,CW,1,Wednesday,3,8,9.75,\n" +
			"Y,CW,2,Wednesday,3,10,11.75,\n",
		"Z_2024Z.csv": "course,classtype,group_num,day,parity,time_from,time_to,teacher\n" +
			"Z,WYK,1,Tuesday,3,10,11.75,\n",
	}
	for name, content := range files {
		assert.Nil(t, os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644))
	}
	assert.Nil(t, os.WriteFile(filepath.Join(dataDir, "terms.json"),
		[]byte(`{"X": ["2024Z"], "Y": ["2024Z"], "Z": ["2024Z"]}`), 0o644))

	provider := usos.NewFileProvider(dataDir)
	resolver, err := usos.NewFileTermResolver(filepath.Join(dataDir, "terms.json"))
	assert.Nil(t, err)
	registry := evaluate.NewRegistry()

	buildUnit := func(name string, courses []string) *Unit {
		groups := make(timetable.CourseUnits, len(courses))
		for _, course := range courses {
			term, err := resolver.ResolveTerm(course, "2024Z")
			assert.Nil(t, err)
			groups[course], err = provider.FetchCourseGroups(course, term)
			assert.Nil(t, err)
		}
		unit, err := NewUnit(name, courses, "time", groups, registry, evaluate.NewContext(""))
		assert.Nil(t, err)
		return unit
	}

	units := []*Unit{
		buildUnit("alice", []string{"X", "Y"}),
		buildUnit("bob", []string{"Y", "Z"}),
	}

	//** Act
	edges := SharedEdges(units)
	tree, err := BuildStrategyTree(0, edges, units, false)
	assert.Nil(t, err)

	aggregate, err := NewAggregators().Get("power", 10)
	assert.Nil(t, err)
	results, err := TopStrategies(1, aggregate, tree, units)
	assert.Nil(t, err)

	//** Assert
	assert.Equal(t, []Edge{{Unit1: 0, Unit2: 1, Course: "Y", Classtype: "CW"}}, edges)

	scores := results.Scores()
	assert.Len(t, scores, 1)
	for _, assignment := range results.Buckets()[scores[0]] {
		selections, err := Materialization(assignment, units)
		assert.Nil(t, err)

		key := timetable.UnitKey{Course: "Y", Classtype: "CW"}
		aliceY, bobY := selections["alice"][key], selections["bob"][key]
		assert.True(t, aliceY.Same(bobY))
		// the later tutorial avoids both people's early-start penalty
		assert.Equal(t, []string{"2"}, aliceY.GroupNums)
	}
}
