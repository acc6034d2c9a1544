package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumerate(t *testing.T) {
	t.Run("Colliding combinations are pruned", func(t *testing.T) {
		//** Arrange
		// A1 collides with B1 only
		a1 := NewGroupEntry("A", "WYK", "1", []HourEntry{hour(Monday, AllWeeks, 10, 11.75)}, "")
		a2 := NewGroupEntry("A", "WYK", "2", []HourEntry{hour(Tuesday, AllWeeks, 10, 11.75)}, "")
		b1 := NewGroupEntry("B", "CW", "1", []HourEntry{hour(Monday, AllWeeks, 11, 12.75)}, "")
		b2 := NewGroupEntry("B", "CW", "2", []HourEntry{hour(Friday, AllWeeks, 11, 12.75)}, "")

		units := CourseUnits{
			"A": {"WYK": {a1, a2}},
			"B": {"CW": {b1, b2}},
		}

		//** Act
		timetables := Enumerate(units)

		//** Assert
		assert.Len(t, timetables, 3)
		for _, tt := range timetables {
			assert.Len(t, tt, 2)
			assert.False(t, tt.HasGroup(a1) && tt.HasGroup(b1))
		}
	})

	t.Run("Empty candidate list yields no timetables", func(t *testing.T) {
		//** Arrange
		a1 := NewGroupEntry("A", "WYK", "1", []HourEntry{hour(Monday, AllWeeks, 10, 11.75)}, "")
		units := CourseUnits{
			"A": {"WYK": {a1}},
			"B": {"CW": {}},
		}

		//** Act
		timetables := Enumerate(units)

		//** Assert
		assert.Empty(t, timetables)
	})

	t.Run("Every unit contributes exactly one group", func(t *testing.T) {
		//** Arrange
		units := CourseUnits{
			"A": {
				"WYK": {NewGroupEntry("A", "WYK", "1", []HourEntry{hour(Monday, AllWeeks, 8, 9.75)}, "")},
				"CW":  {NewGroupEntry("A", "CW", "1", []HourEntry{hour(Tuesday, AllWeeks, 8, 9.75)}, "")},
			},
			"B": {
				"LAB": {NewGroupEntry("B", "LAB", "1", []HourEntry{hour(Wednesday, AllWeeks, 8, 9.75)}, "")},
			},
		}

		//** Act
		timetables := Enumerate(units)

		//** Assert
		assert.Len(t, timetables, 1)
		assert.Len(t, timetables[0], 3)
		assert.Len(t, timetables[0].Selection(), 3)
	})
}

func TestFindGroup(t *testing.T) {
	// Arrange
	group := NewGroupEntry("A", "WYK", "1", []HourEntry{hour(Monday, AllWeeks, 10, 11.75)}, "")
	tt := Timetable{group}

	// Act
	found, err := tt.FindGroup("A", "WYK")

	// Assert
	assert.Nil(t, err)
	assert.Same(t, group, found)

	// a lookup miss signals inconsistent data
	_, err = tt.FindGroup("A", "CW")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}
