package domain

import (
	"sort"
	"time"
)

// dayOrdinals fixes the calendar position of each day name. The day field on
// DailyWorkout is a free-form label coming from the provider, so presentation
// order cannot rely on insertion order.
var dayOrdinals = map[string]int{
	"Sunday":    0,
	"Monday":    1,
	"Tuesday":   2,
	"Wednesday": 3,
	"Thursday":  4,
	"Friday":    5,
	"Saturday":  6,
}

// DayOrdinal returns the Sunday=0..Saturday=6 position of a day name.
// Unrecognized labels return 7 so they sort after every real day; they are
// kept rather than rejected so a sloppy provider response stays visible.
func DayOrdinal(day string) int {
	if ord, ok := dayOrdinals[day]; ok {
		return ord
	}
	return 7
}

// SortWorkoutsByDay orders daily workouts Sunday through Saturday, in place.
// The sort is stable so unrecognized day labels keep their relative order at
// the end.
func SortWorkoutsByDay(workouts []DailyWorkout) {
	sort.SliceStable(workouts, func(i, j int) bool {
		return DayOrdinal(workouts[i].Day) < DayOrdinal(workouts[j].Day)
	})
}

// WeekRange computes the canonical plan week containing now: the most recent
// Sunday on or before now (midnight UTC) through the following Saturday.
func WeekRange(now time.Time) (weekStart, weekEnd time.Time) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart = today.AddDate(0, 0, -int(today.Weekday()))
	weekEnd = weekStart.AddDate(0, 0, 6)
	return weekStart, weekEnd
}
