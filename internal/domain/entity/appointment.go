package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCheckedIn AppointmentStatus = "checked_in"
	AppointmentStatusServing   AppointmentStatus = "serving"
	AppointmentStatusDone      AppointmentStatus = "done"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// appointmentTransitions is the single source of truth for the
// appointment state machine. Terminal states have no entries.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusBooked:    {AppointmentStatusCheckedIn, AppointmentStatusCancelled},
	AppointmentStatusCheckedIn: {AppointmentStatusServing, AppointmentStatusNoShow},
	AppointmentStatusServing:   {AppointmentStatusDone, AppointmentStatusNoShow},
}

// CanTransitionTo reports whether the status machine allows moving to next.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s AppointmentStatus) Terminal() bool {
	return len(appointmentTransitions[s]) == 0
}

// Appointment is one citizen's reservation of a slot. The department is
// denormalized from the service at booking time so the queue keeps
// working if the service is later reassigned.
type Appointment struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	ServiceID    int               `gorm:"not null;index" json:"service_id"`
	DepartmentID int               `gorm:"not null;index" json:"department_id"`
	SlotDate     time.Time         `gorm:"type:date;not null" json:"slot_date"`
	SlotStart    time.Time         `gorm:"not null;index" json:"slot_start"`
	SlotEnd      time.Time         `gorm:"not null" json:"slot_end"`
	Status       AppointmentStatus `gorm:"type:varchar(20);not null;default:'booked';index" json:"status"`
	QueueNumber  *int              `json:"queue_number,omitempty"`
	QueueDate    *time.Time        `json:"queue_date,omitempty"`
	CheckinToken string            `gorm:"type:varchar(64);not null" json:"-"`
	CreatedAt    time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Service    Service    `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Department Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Cancellable reports whether the owner may still cancel. Only freshly
// booked appointments qualify; checked-in ones belong to the queue.
func (a *Appointment) Cancellable() bool {
	return a.Status == AppointmentStatusBooked
}
