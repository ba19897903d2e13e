package mealplan

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func rome(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestWeekStart(t *testing.T) {
	loc := rome(t)
	tests := []struct {
		in   time.Time
		want time.Time
	}{
		{time.Date(2026, 10, 19, 9, 0, 0, 0, loc), time.Date(2026, 10, 19, 0, 0, 0, 0, loc)},
		{time.Date(2026, 10, 25, 23, 59, 0, 0, loc), time.Date(2026, 10, 19, 0, 0, 0, 0, loc)},
		{time.Date(2026, 3, 29, 12, 0, 0, 0, loc), time.Date(2026, 3, 23, 0, 0, 0, 0, loc)},
		{time.Date(2026, 1, 1, 8, 0, 0, 0, loc), time.Date(2025, 12, 29, 0, 0, 0, 0, loc)},
		// 23:30 UTC on Sunday is already Monday in Rome.
		{time.Date(2026, 10, 25, 23, 30, 0, 0, time.UTC), time.Date(2026, 10, 26, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		got := WeekStart(tt.in, loc)
		if !got.Equal(tt.want) {
			t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAddDaysAcrossDST(t *testing.T) {
	loc := rome(t)

	spring := time.Date(2026, 3, 23, 0, 0, 0, 0, loc)
	next := AddDays(spring, 7)
	if next.Hour() != 0 || next.Day() != 30 {
		t.Errorf("spring +7 = %v, want 2026-03-30 00:00", next)
	}
	if naive := spring.Add(7 * 24 * time.Hour); naive.Hour() == 0 {
		t.Errorf("expected fixed-duration add to drift off midnight, got %v", naive)
	}

	autumn := time.Date(2026, 10, 19, 0, 0, 0, 0, loc)
	for i := 0; i < 14; i++ {
		d := AddDays(autumn, i)
		if d.Hour() != 0 || d.Minute() != 0 {
			t.Errorf("AddDays(autumn, %d) = %v, not midnight", i, d)
		}
		if DayOffset(d) != i%7 {
			t.Errorf("DayOffset(%v) = %d, want %d", d, DayOffset(d), i%7)
		}
	}
}

func TestDayOffset(t *testing.T) {
	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		if got := DayOffset(monday.AddDate(0, 0, i)); got != i {
			t.Errorf("offset of day %d = %d", i, got)
		}
	}
}

func TestParseDay(t *testing.T) {
	loc := rome(t)
	d, err := ParseDay("2026-10-25", loc)
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if !d.Equal(time.Date(2026, 10, 25, 0, 0, 0, 0, loc)) {
		t.Errorf("ParseDay = %v", d)
	}
	if _, err := ParseDay("25/10/2026", loc); err == nil {
		t.Error("expected error for bad layout")
	}
}
