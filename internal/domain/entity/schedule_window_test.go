package entity

import (
	"testing"
	"time"
)

func TestWeekdayOf(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2025-03-10", 0}, // Monday
		{"2025-03-11", 1},
		{"2025-03-14", 4}, // Friday
		{"2025-03-15", 5},
		{"2025-03-16", 6}, // Sunday
	}

	for _, tt := range cases {
		day, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatal(err)
		}
		if got := WeekdayOf(day); got != tt.want {
			t.Fatalf("WeekdayOf(%s)=%d, want %d", tt.date, got, tt.want)
		}
	}
}

func TestClockTime(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"08:00", 480, false},
		{"08:15", 495, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"09:30:00", 570, false}, // time column scan format
		{"8am", 0, true},
		{"", 0, true},
	}

	for _, tt := range cases {
		got, err := ClockTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ClockTime(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ClockTime(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ClockTime(%q)=%d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWindowAppliesOn(t *testing.T) {
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	w := &ScheduleWindow{Weekday: 0, StartTime: "08:00", EndTime: "09:00"}
	if !w.AppliesOn(monday) {
		t.Fatal("window with no validity range should apply on its weekday")
	}
	if w.AppliesOn(tuesday) {
		t.Fatal("window should not apply on a different weekday")
	}

	// Validity range brackets inclusively on both ends.
	from := monday
	to := monday.AddDate(0, 0, 14)
	w.ValidFrom = &from
	w.ValidTo = &to
	if !w.AppliesOn(monday) {
		t.Fatal("window should apply on valid_from itself")
	}
	if !w.AppliesOn(monday.AddDate(0, 0, 14)) {
		t.Fatal("window should apply on valid_to itself")
	}
	if w.AppliesOn(monday.AddDate(0, 0, 21)) {
		t.Fatal("window should not apply past valid_to")
	}
	if w.AppliesOn(monday.AddDate(0, 0, -7)) {
		t.Fatal("window should not apply before valid_from")
	}
}

func TestWindowCovers(t *testing.T) {
	w := &ScheduleWindow{StartTime: "08:00", EndTime: "09:00"}
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		minute int
		want   bool
	}{
		{7*60 + 59, false},
		{8 * 60, true},
		{8*60 + 45, true},
		{9 * 60, false}, // end is exclusive
		{10 * 60, false},
	}
	for _, tt := range cases {
		instant := day.Add(time.Duration(tt.minute) * time.Minute)
		if got := w.Covers(instant); got != tt.want {
			t.Fatalf("Covers(%v)=%v, want %v", instant, got, tt.want)
		}
	}
}
