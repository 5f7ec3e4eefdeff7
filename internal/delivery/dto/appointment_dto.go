package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	ServiceID int       `json:"service_id" validate:"required,min=1"`
	SlotStart time.Time `json:"slot_start" validate:"required"`
}

type CheckinRequest struct {
	Token string `json:"token" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	ServiceID      int        `json:"service_id"`
	ServiceName    string     `json:"service_name,omitempty"`
	DepartmentID   int        `json:"department_id"`
	DepartmentName string     `json:"department_name,omitempty"`
	SlotStart      time.Time  `json:"slot_start"`
	SlotEnd        time.Time  `json:"slot_end"`
	Status         string     `json:"status"`
	QueueNumber    *int       `json:"queue_number,omitempty"`
	QueueDate      *time.Time `json:"queue_date,omitempty"`
	CheckinToken   string     `json:"checkin_token,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
