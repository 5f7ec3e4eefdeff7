package entity

import "time"

// Default slot parameters applied when neither the service nor the
// covering schedule window specifies one.
const (
	DefaultSlotMinutes     = 15
	DefaultCapacityPerSlot = 1
)

// Service is a bookable offering owned by a department. Services are
// never hard-deleted; deactivation keeps historical appointments valid.
type Service struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	DepartmentID    int       `gorm:"not null;index" json:"department_id"`
	Description     string    `gorm:"type:text" json:"description,omitempty"`
	DurationMin     int       `gorm:"not null;default:15" json:"duration_min"`
	CapacityPerSlot int       `gorm:"not null;default:1" json:"capacity_per_slot"`
	IsActive        *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Department Department       `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Windows    []ScheduleWindow `gorm:"foreignKey:ServiceID" json:"windows,omitempty"`
}

func (Service) TableName() string {
	return "services"
}

// Active reports whether the service accepts new bookings.
func (s *Service) Active() bool {
	return s.IsActive != nil && *s.IsActive
}

// SlotMinutes returns the effective slot length for a window, falling
// back to the service default and finally the system default.
func (s *Service) SlotMinutes(w *ScheduleWindow) int {
	if w != nil && w.SlotMinutes != nil && *w.SlotMinutes > 0 {
		return *w.SlotMinutes
	}
	if s.DurationMin > 0 {
		return s.DurationMin
	}
	return DefaultSlotMinutes
}

// Capacity returns the effective per-slot capacity for a window,
// falling back to the service default and finally the system default.
func (s *Service) Capacity(w *ScheduleWindow) int {
	if w != nil && w.CapacityPerSlot != nil && *w.CapacityPerSlot > 0 {
		return *w.CapacityPerSlot
	}
	if s.CapacityPerSlot > 0 {
		return s.CapacityPerSlot
	}
	return DefaultCapacityPerSlot
}
