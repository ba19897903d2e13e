// Package mealplan arranges meal plan rows into Monday-first weeks. All date
// arithmetic is done on calendar fields so weeks spanning a daylight saving
// change keep seven whole days.
package mealplan

import (
	"time"

	"github.com/dukerupert/dispensa/internal/apperr"
	"github.com/dukerupert/dispensa/internal/store"
)

// Midnight returns the start of t's calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// AddDays moves t by n calendar days, keeping midnight at midnight.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// DayOffset is the position of t in its week, Monday being 0.
func DayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekStart returns the Monday of t's week at midnight in loc.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	day := Midnight(t, loc)
	return AddDays(day, -DayOffset(day))
}

// ParseDay reads a YYYY-MM-DD day in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(store.DayLayout, s, loc)
	if err != nil {
		return time.Time{}, apperr.Validation("date", "must be YYYY-MM-DD")
	}
	return t, nil
}
