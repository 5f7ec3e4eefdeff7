package dto

import "time"

// Request DTOs

type CreateServiceRequest struct {
	Name            string `json:"name" validate:"required,max=255"`
	DepartmentID    int    `json:"department_id" validate:"required,min=1"`
	Description     string `json:"description" validate:"omitempty"`
	DurationMin     int    `json:"duration_min" validate:"required,min=1"`
	CapacityPerSlot int    `json:"capacity_per_slot" validate:"required,min=1"`
}

type UpdateServiceRequest struct {
	Name            string  `json:"name" validate:"omitempty,max=255"`
	Description     *string `json:"description" validate:"omitempty"`
	DurationMin     *int    `json:"duration_min" validate:"omitempty,min=1"`
	CapacityPerSlot *int    `json:"capacity_per_slot" validate:"omitempty,min=1"`
	IsActive        *bool   `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type ServiceResponse struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	DepartmentID    int       `json:"department_id"`
	DepartmentName  string    `json:"department_name,omitempty"`
	Description     string    `json:"description,omitempty"`
	DurationMin     int       `json:"duration_min"`
	CapacityPerSlot int       `json:"capacity_per_slot"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}
