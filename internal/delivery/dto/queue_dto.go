package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type WalkInRequest struct {
	DepartmentID int  `json:"department_id" validate:"required,min=1"`
	ServiceID    *int `json:"service_id" validate:"omitempty,min=1"`
}

type CreateOfficeWindowRequest struct {
	DepartmentID int    `json:"department_id" validate:"required,min=1"`
	Name         string `json:"name" validate:"required,max=100"`
}

type UpdateOfficeWindowRequest struct {
	Name   string `json:"name" validate:"omitempty,max=100"`
	IsOpen *bool  `json:"is_open" validate:"omitempty"`
}

// Response DTOs

type TicketResponse struct {
	ID            uuid.UUID  `json:"id"`
	DepartmentID  int        `json:"department_id"`
	ServiceID     *int       `json:"service_id,omitempty"`
	Date          time.Time  `json:"date"`
	Number        int        `json:"number"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	WindowID      *int       `json:"window_id,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	CalledAt      *time.Time `json:"called_at,omitempty"`
	ServedAt      *time.Time `json:"served_at,omitempty"`
}

type OfficeWindowResponse struct {
	ID           int    `json:"id"`
	DepartmentID int    `json:"department_id"`
	Name         string `json:"name"`
	IsOpen       bool   `json:"is_open"`
}

type OfficeWindowListResponse struct {
	Windows []OfficeWindowResponse `json:"windows"`
	Total   int                    `json:"total"`
}

// QueueNowResponse is the public now-serving snapshot for a department.
// There is deliberately no average-wait field; the core never computes one.
type QueueNowResponse struct {
	DepartmentID int       `json:"department_id"`
	Date         time.Time `json:"date"`
	NowServing   *int      `json:"now_serving"`
	Waiting      int64     `json:"waiting"`
}
