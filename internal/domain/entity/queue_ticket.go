package entity

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus represents the status of a queue ticket
type TicketStatus string

const (
	TicketStatusWaiting TicketStatus = "waiting"
	TicketStatusServing TicketStatus = "serving"
	TicketStatusDone    TicketStatus = "done"
	TicketStatusNoShow  TicketStatus = "no_show"
)

var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusWaiting: {TicketStatusServing},
	TicketStatusServing: {TicketStatusDone, TicketStatusNoShow},
}

// CanTransitionTo reports whether the status machine allows moving to next.
func (s TicketStatus) CanTransitionTo(next TicketStatus) bool {
	for _, allowed := range ticketTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// QueueTicket is the per-day servable unit. Numbers are dense from 1
// within a (department, date) epoch; AppointmentID is nil for walk-ins.
type QueueTicket struct {
	ID            uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DepartmentID  int          `gorm:"not null;uniqueIndex:ux_queue_tickets_epoch_number" json:"department_id"`
	ServiceID     *int         `gorm:"index" json:"service_id,omitempty"`
	Date          time.Time    `gorm:"type:date;not null;uniqueIndex:ux_queue_tickets_epoch_number" json:"date"`
	Number        int          `gorm:"not null;uniqueIndex:ux_queue_tickets_epoch_number" json:"number"`
	AppointmentID *uuid.UUID   `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	WindowID      *int         `gorm:"index" json:"window_id,omitempty"`
	Status        TicketStatus `gorm:"type:varchar(20);not null;default:'waiting';index" json:"status"`
	CreatedAt     time.Time    `gorm:"autoCreateTime" json:"created_at"`
	CalledAt      *time.Time   `json:"called_at,omitempty"`
	ServedAt      *time.Time   `json:"served_at,omitempty"`

	// Relationships
	Department Department    `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Window     *OfficeWindow `gorm:"foreignKey:WindowID" json:"window,omitempty"`
}

func (QueueTicket) TableName() string {
	return "queue_tickets"
}

// IsWalkIn checks if the ticket was issued without an appointment
func (t *QueueTicket) IsWalkIn() bool {
	return t.AppointmentID == nil
}

// TicketEpoch normalizes an instant to the UTC midnight that scopes
// queue numbering for its day.
func TicketEpoch(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
