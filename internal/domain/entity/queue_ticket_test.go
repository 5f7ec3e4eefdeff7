package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTicketStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from  TicketStatus
		to    TicketStatus
		valid bool
	}{
		{TicketStatusWaiting, TicketStatusServing, true},
		{TicketStatusWaiting, TicketStatusDone, false},
		{TicketStatusWaiting, TicketStatusNoShow, false},
		{TicketStatusServing, TicketStatusDone, true},
		{TicketStatusServing, TicketStatusNoShow, true},
		{TicketStatusServing, TicketStatusWaiting, false},
		{TicketStatusDone, TicketStatusServing, false},
		{TicketStatusNoShow, TicketStatusWaiting, false},
	}

	for _, tt := range cases {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.valid {
			t.Fatalf("CanTransitionTo(%q -> %q)=%v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestTicketEpoch(t *testing.T) {
	// Any instant during the day maps to the same UTC midnight.
	morning := time.Date(2025, 3, 10, 8, 15, 30, 0, time.UTC)
	evening := time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	if got := TicketEpoch(morning); !got.Equal(want) {
		t.Fatalf("TicketEpoch(morning)=%v, want %v", got, want)
	}
	if got := TicketEpoch(evening); !got.Equal(want) {
		t.Fatalf("TicketEpoch(evening)=%v, want %v", got, want)
	}

	// Non-UTC instants normalize through UTC, not their local midnight.
	offset := time.FixedZone("UTC+7", 7*3600)
	early := time.Date(2025, 3, 10, 3, 0, 0, 0, offset) // 2025-03-09 20:00 UTC
	wantPrev := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	if got := TicketEpoch(early); !got.Equal(wantPrev) {
		t.Fatalf("TicketEpoch(early)=%v, want %v", got, wantPrev)
	}
}

func TestTicketIsWalkIn(t *testing.T) {
	ticket := &QueueTicket{}
	if !ticket.IsWalkIn() {
		t.Fatal("ticket without appointment should be a walk-in")
	}

	apptID := uuid.New()
	ticket.AppointmentID = &apptID
	if ticket.IsWalkIn() {
		t.Fatal("ticket with appointment should not be a walk-in")
	}
}
