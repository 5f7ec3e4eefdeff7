package usecase

import (
	"testing"
	"time"

	"city-services-backend/internal/domain/entity"
)

func TestCoveringWindow(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) // a Monday
	lapsed := day.AddDate(0, 0, -7)
	windows := []entity.ScheduleWindow{
		{ID: 1, StartTime: "08:00", EndTime: "10:00"},
		{ID: 2, StartTime: "13:00", EndTime: "16:00"},
		{ID: 3, StartTime: "11:00", EndTime: "12:00", ValidTo: &lapsed},
	}

	cases := []struct {
		hour, minute int
		wantID       int // 0 means no covering window
	}{
		{8, 0, 1},
		{9, 45, 1},
		{10, 0, 0},  // end exclusive
		{11, 30, 0}, // window 3 lapsed a week ago
		{12, 0, 0},
		{13, 0, 2},
		{15, 59, 2},
		{16, 0, 0},
	}

	for _, tt := range cases {
		slotStart := day.Add(time.Duration(tt.hour)*time.Hour + time.Duration(tt.minute)*time.Minute)
		got := coveringWindow(windows, day, slotStart)
		if tt.wantID == 0 {
			if got != nil {
				t.Fatalf("coveringWindow(%02d:%02d) = window %d, want none", tt.hour, tt.minute, got.ID)
			}
			continue
		}
		if got == nil || got.ID != tt.wantID {
			t.Fatalf("coveringWindow(%02d:%02d) = %v, want window %d", tt.hour, tt.minute, got, tt.wantID)
		}
	}
}

func TestGenerateCheckinToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token := generateCheckinToken()
		if len(token) != 32 {
			t.Fatalf("token length %d, want 32 hex chars", len(token))
		}
		if seen[token] {
			t.Fatal("duplicate token generated")
		}
		seen[token] = true
	}
}
