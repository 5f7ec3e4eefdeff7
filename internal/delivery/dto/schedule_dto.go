package dto

import "time"

// Request DTOs

type CreateWindowRequest struct {
	ServiceID       int     `json:"service_id" validate:"required,min=1"`
	Weekday         int     `json:"weekday" validate:"min=0,max=6"`
	StartTime       string  `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime         string  `json:"end_time" validate:"required"`   // Format: HH:MM
	SlotMinutes     *int    `json:"slot_minutes" validate:"omitempty,min=1"`
	CapacityPerSlot *int    `json:"capacity_per_slot" validate:"omitempty,min=1"`
	ValidFrom       string  `json:"valid_from" validate:"omitempty"` // Format: YYYY-MM-DD
	ValidTo         string  `json:"valid_to" validate:"omitempty"`   // Format: YYYY-MM-DD
	Timezone        *string `json:"timezone" validate:"omitempty,max=64"`
}

// Response DTOs

type WindowResponse struct {
	ID              int       `json:"id"`
	ServiceID       int       `json:"service_id"`
	Weekday         int       `json:"weekday"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	SlotMinutes     *int      `json:"slot_minutes,omitempty"`
	CapacityPerSlot *int      `json:"capacity_per_slot,omitempty"`
	ValidFrom       *string   `json:"valid_from,omitempty"`
	ValidTo         *string   `json:"valid_to,omitempty"`
	Timezone        *string   `json:"timezone,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type WindowListResponse struct {
	Windows []WindowResponse `json:"windows"`
	Total   int              `json:"total"`
}

// SlotResponse is one concrete bookable slot for a given day. Slots with
// zero availability are never returned.
type SlotResponse struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Capacity  int       `json:"capacity"`
	Available int       `json:"available"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}
