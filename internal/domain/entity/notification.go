package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app message written by the queue notifier.
// Delivery is fire-and-forget: a failed write never rolls back the
// operation that produced it.
type Notification struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;index" json:"appointment_id,omitempty"`
	QueueTicketID *uuid.UUID `gorm:"type:uuid;index" json:"queue_ticket_id,omitempty"`
	Message       string     `gorm:"type:text;not null" json:"message"`
	Read          *bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
