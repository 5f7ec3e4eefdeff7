package converter

import (
	"city-services-backend/internal/delivery/dto"
	"city-services-backend/internal/domain/entity"
)

// WindowToResponse converts a ScheduleWindow entity to WindowResponse DTO
func WindowToResponse(window *entity.ScheduleWindow) *dto.WindowResponse {
	if window == nil {
		return nil
	}

	response := &dto.WindowResponse{
		ID:              window.ID,
		ServiceID:       window.ServiceID,
		Weekday:         window.Weekday,
		StartTime:       window.StartTime,
		EndTime:         window.EndTime,
		SlotMinutes:     window.SlotMinutes,
		CapacityPerSlot: window.CapacityPerSlot,
		Timezone:        window.Timezone,
		CreatedAt:       window.CreatedAt,
	}

	if window.ValidFrom != nil {
		s := window.ValidFrom.Format("2006-01-02")
		response.ValidFrom = &s
	}
	if window.ValidTo != nil {
		s := window.ValidTo.Format("2006-01-02")
		response.ValidTo = &s
	}

	return response
}

// WindowsToResponses converts a slice of ScheduleWindow entities to DTOs
func WindowsToResponses(windows []entity.ScheduleWindow) []dto.WindowResponse {
	responses := make([]dto.WindowResponse, len(windows))
	for i, window := range windows {
		resp := WindowToResponse(&window)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
