package entity

import (
	"time"
)

// ScheduleWindow is a recurring weekly availability rule for a service.
// Weekday follows the 0=Monday .. 6=Sunday convention. Windows are
// additive: several windows may cover the same weekday for split shifts,
// and overlapping windows are allowed.
type ScheduleWindow struct {
	ID              int        `gorm:"primaryKey;autoIncrement" json:"id"`
	ServiceID       int        `gorm:"not null;index;uniqueIndex:ux_schedule_windows_tuple" json:"service_id"`
	Weekday         int        `gorm:"not null;uniqueIndex:ux_schedule_windows_tuple" json:"weekday"`
	StartTime       string     `gorm:"type:time;not null;uniqueIndex:ux_schedule_windows_tuple" json:"start_time"` // HH:MM
	EndTime         string     `gorm:"type:time;not null;uniqueIndex:ux_schedule_windows_tuple" json:"end_time"`   // HH:MM
	SlotMinutes     *int       `json:"slot_minutes,omitempty"`
	CapacityPerSlot *int       `json:"capacity_per_slot,omitempty"`
	ValidFrom       *time.Time `gorm:"type:date" json:"valid_from,omitempty"`
	ValidTo         *time.Time `gorm:"type:date" json:"valid_to,omitempty"`
	Timezone        *string    `gorm:"type:varchar(64)" json:"timezone,omitempty"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (ScheduleWindow) TableName() string {
	return "schedule_windows"
}

// WeekdayOf converts a calendar date to the 0=Monday weekday index.
func WeekdayOf(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// AppliesOn reports whether the window is active on the given date: the
// weekday matches and the validity range, if any, brackets it inclusively.
func (w *ScheduleWindow) AppliesOn(day time.Time) bool {
	if w.Weekday != WeekdayOf(day) {
		return false
	}
	d := day.Truncate(24 * time.Hour)
	if w.ValidFrom != nil && d.Before(w.ValidFrom.Truncate(24*time.Hour)) {
		return false
	}
	if w.ValidTo != nil && d.After(w.ValidTo.Truncate(24*time.Hour)) {
		return false
	}
	return true
}

// ClockTime parses an HH:MM wall-clock string into minutes from midnight.
func ClockTime(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		// time columns scan back as HH:MM:SS
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return 0, err
		}
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Covers reports whether a wall-clock instant falls inside [start, end).
func (w *ScheduleWindow) Covers(t time.Time) bool {
	start, err := ClockTime(w.StartTime)
	if err != nil {
		return false
	}
	end, err := ClockTime(w.EndTime)
	if err != nil {
		return false
	}
	m := t.Hour()*60 + t.Minute()
	return start <= m && m < end
}
