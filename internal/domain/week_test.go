package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekRange_AnchorsOnSunday(t *testing.T) {
	// 2025-06-01 is a Sunday.
	sunday := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for offset := 0; offset < 7; offset++ {
		now := sunday.AddDate(0, 0, offset).Add(13 * time.Hour)
		weekStart, weekEnd := WeekRange(now)

		assert.Equal(t, sunday, weekStart, "day offset %d should anchor to the same Sunday", offset)
		assert.Equal(t, sunday.AddDate(0, 0, 6), weekEnd)
		assert.Equal(t, time.Sunday, weekStart.Weekday())
	}
}

func TestWeekRange_SundayMapsToItself(t *testing.T) {
	sunday := time.Date(2025, 6, 8, 23, 59, 59, 0, time.UTC)
	weekStart, _ := WeekRange(sunday)

	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), weekStart)
}

func TestWeekRange_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)

	local := time.Date(2025, 6, 2, 20, 0, 0, 0, loc)
	weekStart, _ := WeekRange(local)

	assert.Equal(t, time.UTC, weekStart.Location())
	assert.Equal(t, time.Sunday, weekStart.Weekday())
}

func TestDayOrdinal(t *testing.T) {
	assert.Equal(t, 0, DayOrdinal("Sunday"))
	assert.Equal(t, 3, DayOrdinal("Wednesday"))
	assert.Equal(t, 6, DayOrdinal("Saturday"))
	assert.Equal(t, 7, DayOrdinal("Funday"))
	assert.Equal(t, 7, DayOrdinal(""))
}

func TestSortWorkoutsByDay(t *testing.T) {
	workouts := []DailyWorkout{
		{Day: "Friday"},
		{Day: "Someday"},
		{Day: "Monday"},
		{Day: "Sunday"},
		{Day: "Wednesday"},
	}

	SortWorkoutsByDay(workouts)

	got := make([]string, len(workouts))
	for i, w := range workouts {
		got[i] = w.Day
	}
	// Unknown labels keep their position at the end.
	assert.Equal(t, []string{"Sunday", "Monday", "Wednesday", "Friday", "Someday"}, got)
}

func TestSortWorkoutsByDay_UnknownLabelsStayStable(t *testing.T) {
	workouts := []DailyWorkout{
		{Day: "Blursday", Focus: "first"},
		{Day: "Someday", Focus: "second"},
		{Day: "Monday"},
	}

	SortWorkoutsByDay(workouts)

	require.Len(t, workouts, 3)
	assert.Equal(t, "Monday", workouts[0].Day)
	assert.Equal(t, "first", workouts[1].Focus)
	assert.Equal(t, "second", workouts[2].Focus)
}
