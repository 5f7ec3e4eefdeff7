package converter

import (
	"city-services-backend/internal/delivery/dto"
	"city-services-backend/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its DTO.
// The check-in token is only present on the booking response the owner
// receives; list views strip it via AppointmentsToResponses.
func AppointmentToResponse(appointment *entity.Appointment, includeToken bool) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:           appointment.ID,
		UserID:       appointment.UserID,
		ServiceID:    appointment.ServiceID,
		DepartmentID: appointment.DepartmentID,
		SlotStart:    appointment.SlotStart,
		SlotEnd:      appointment.SlotEnd,
		Status:       string(appointment.Status),
		QueueNumber:  appointment.QueueNumber,
		QueueDate:    appointment.QueueDate,
		CreatedAt:    appointment.CreatedAt,
	}

	if includeToken {
		response.CheckinToken = appointment.CheckinToken
	}
	if appointment.Service.ID != 0 {
		response.ServiceName = appointment.Service.Name
	}
	if appointment.Department.ID != 0 {
		response.DepartmentName = appointment.Department.Name
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment, false)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
