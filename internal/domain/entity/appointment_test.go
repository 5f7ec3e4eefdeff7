package entity

import "testing"

func TestAppointmentStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from  AppointmentStatus
		to    AppointmentStatus
		valid bool
	}{
		{AppointmentStatusBooked, AppointmentStatusCheckedIn, true},
		{AppointmentStatusBooked, AppointmentStatusCancelled, true},
		{AppointmentStatusBooked, AppointmentStatusServing, false},
		{AppointmentStatusBooked, AppointmentStatusDone, false},
		{AppointmentStatusCheckedIn, AppointmentStatusServing, true},
		{AppointmentStatusCheckedIn, AppointmentStatusNoShow, true},
		{AppointmentStatusCheckedIn, AppointmentStatusCancelled, false},
		{AppointmentStatusCheckedIn, AppointmentStatusBooked, false},
		{AppointmentStatusServing, AppointmentStatusDone, true},
		{AppointmentStatusServing, AppointmentStatusNoShow, true},
		{AppointmentStatusServing, AppointmentStatusCancelled, false},
		{AppointmentStatusDone, AppointmentStatusServing, false},
		{AppointmentStatusCancelled, AppointmentStatusBooked, false},
		{AppointmentStatusNoShow, AppointmentStatusCheckedIn, false},
	}

	for _, tt := range cases {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.valid {
			t.Fatalf("CanTransitionTo(%q -> %q)=%v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestAppointmentStatusTerminal(t *testing.T) {
	terminal := []AppointmentStatus{AppointmentStatusDone, AppointmentStatusCancelled, AppointmentStatusNoShow}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Fatalf("expected %q to be terminal", s)
		}
	}
	live := []AppointmentStatus{AppointmentStatusBooked, AppointmentStatusCheckedIn, AppointmentStatusServing}
	for _, s := range live {
		if s.Terminal() {
			t.Fatalf("expected %q to be non-terminal", s)
		}
	}
}

func TestAppointmentCancellable(t *testing.T) {
	a := &Appointment{Status: AppointmentStatusBooked}
	if !a.Cancellable() {
		t.Fatal("booked appointment should be cancellable")
	}
	for _, s := range []AppointmentStatus{
		AppointmentStatusCheckedIn,
		AppointmentStatusServing,
		AppointmentStatusDone,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	} {
		a.Status = s
		if a.Cancellable() {
			t.Fatalf("appointment in status %q should not be cancellable", s)
		}
	}
}
