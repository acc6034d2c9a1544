package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hour(day Weekday, parity int, from, to float64) HourEntry {
	return HourEntry{Day: day, Parity: parity, TimeFrom: from, TimeTo: to}
}

func TestGroupsCollide(t *testing.T) {
	t.Run("Any colliding hour pair makes groups collide", func(t *testing.T) {
		// Arrange
		left := NewGroupEntry("ALG", "WYK", "1", []HourEntry{
			hour(Monday, AllWeeks, 8, 9.75),
			hour(Wednesday, AllWeeks, 10, 11.75),
		}, "")
		right := NewGroupEntry("ANA", "CW", "2", []HourEntry{
			hour(Wednesday, OddWeeks, 11, 12.75),
		}, "")

		// Act & Assert
		assert.True(t, GroupsCollide(left, right))
	})

	t.Run("Groups without overlapping hours do not collide", func(t *testing.T) {
		// Arrange
		left := NewGroupEntry("ALG", "WYK", "1", []HourEntry{hour(Monday, AllWeeks, 8, 9.75)}, "")
		right := NewGroupEntry("ANA", "CW", "2", []HourEntry{hour(Monday, AllWeeks, 10, 11.75)}, "")

		// Act & Assert
		assert.False(t, GroupsCollide(left, right))
	})
}

func TestSame(t *testing.T) {
	t.Run("Hours do not participate once groups are merged", func(t *testing.T) {
		// Arrange
		left := NewGroupEntry("ALG", "WYK", "1", []HourEntry{hour(Monday, AllWeeks, 8, 9.75)}, "")
		right := NewGroupEntry("ALG", "WYK", "1", []HourEntry{hour(Friday, OddWeeks, 14, 15.75)}, "")

		// Act & Assert
		assert.True(t, left.Same(right))
	})

	t.Run("Group numbers compare as sets", func(t *testing.T) {
		// Arrange
		left := &GroupEntry{Course: "ALG", Classtype: "CW", GroupNums: []string{"2", "1"}}
		right := &GroupEntry{Course: "ALG", Classtype: "CW", GroupNums: []string{"1", "2"}}
		other := &GroupEntry{Course: "ALG", Classtype: "CW", GroupNums: []string{"1", "3"}}

		// Act & Assert
		assert.True(t, left.Same(right))
		assert.False(t, left.Same(other))
	})

	t.Run("Course and classtype participate", func(t *testing.T) {
		base := &GroupEntry{Course: "ALG", Classtype: "CW", GroupNums: []string{"1"}}

		assert.False(t, base.Same(&GroupEntry{Course: "ANA", Classtype: "CW", GroupNums: []string{"1"}}))
		assert.False(t, base.Same(&GroupEntry{Course: "ALG", Classtype: "WYK", GroupNums: []string{"1"}}))
	})
}

func TestMergeHoursByTime(t *testing.T) {
	t.Run("Complementary parities merge into all-weeks", func(t *testing.T) {
		// Arrange
		hours := []HourEntry{
			hour(Monday, OddWeeks, 10, 11.75),
			hour(Monday, EvenWeeks, 10, 11.75),
			hour(Thursday, OddWeeks, 8, 9.75),
		}

		// Act
		merged := MergeHoursByTime(hours)

		// Assert
		assert.Len(t, merged, 2)
		assert.Equal(t, hour(Monday, AllWeeks, 10, 11.75), merged[0])
		assert.Equal(t, hour(Thursday, OddWeeks, 8, 9.75), merged[1])
	})
}

func TestMergeGroupsByHours(t *testing.T) {
	t.Run("Groups meeting at identical hours become interchangeable", func(t *testing.T) {
		// Arrange
		shared := []HourEntry{hour(Tuesday, AllWeeks, 12, 13.75)}
		groups := []*GroupEntry{
			NewGroupEntry("ALG", "CW", "3", shared, ""),
			NewGroupEntry("ALG", "CW", "1", shared, ""),
			NewGroupEntry("ALG", "CW", "2", []HourEntry{hour(Tuesday, AllWeeks, 14, 15.75)}, ""),
		}

		// Act
		merged := MergeGroupsByHours(groups)

		// Assert
		assert.Len(t, merged, 2)
		assert.Equal(t, []string{"1", "3"}, merged[0].GroupNums)
		assert.Equal(t, []string{"2"}, merged[1].GroupNums)
	})
}
