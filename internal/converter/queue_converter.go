package converter

import (
	"city-services-backend/internal/delivery/dto"
	"city-services-backend/internal/domain/entity"
)

// TicketToResponse converts a QueueTicket entity to TicketResponse DTO
func TicketToResponse(ticket *entity.QueueTicket) *dto.TicketResponse {
	if ticket == nil {
		return nil
	}

	return &dto.TicketResponse{
		ID:            ticket.ID,
		DepartmentID:  ticket.DepartmentID,
		ServiceID:     ticket.ServiceID,
		Date:          ticket.Date,
		Number:        ticket.Number,
		AppointmentID: ticket.AppointmentID,
		WindowID:      ticket.WindowID,
		Status:        string(ticket.Status),
		CreatedAt:     ticket.CreatedAt,
		CalledAt:      ticket.CalledAt,
		ServedAt:      ticket.ServedAt,
	}
}

// OfficeWindowToResponse converts an OfficeWindow entity to its DTO
func OfficeWindowToResponse(window *entity.OfficeWindow) *dto.OfficeWindowResponse {
	if window == nil {
		return nil
	}

	return &dto.OfficeWindowResponse{
		ID:           window.ID,
		DepartmentID: window.DepartmentID,
		Name:         window.Name,
		IsOpen:       window.Open(),
	}
}

// OfficeWindowsToResponses converts a slice of OfficeWindow entities to DTOs
func OfficeWindowsToResponses(windows []entity.OfficeWindow) []dto.OfficeWindowResponse {
	responses := make([]dto.OfficeWindowResponse, len(windows))
	for i, window := range windows {
		resp := OfficeWindowToResponse(&window)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
