package converter

import (
	"city-services-backend/internal/delivery/dto"
	"city-services-backend/internal/domain/entity"
)

// ServiceToResponse converts a Service entity to ServiceResponse DTO
func ServiceToResponse(service *entity.Service) *dto.ServiceResponse {
	if service == nil {
		return nil
	}

	response := &dto.ServiceResponse{
		ID:              service.ID,
		Name:            service.Name,
		DepartmentID:    service.DepartmentID,
		Description:     service.Description,
		DurationMin:     service.DurationMin,
		CapacityPerSlot: service.CapacityPerSlot,
		IsActive:        service.Active(),
		CreatedAt:       service.CreatedAt,
		UpdatedAt:       service.UpdatedAt,
	}

	if service.Department.ID != 0 {
		response.DepartmentName = service.Department.Name
	}

	return response
}

// ServicesToResponses converts a slice of Service entities to DTOs
func ServicesToResponses(services []entity.Service) []dto.ServiceResponse {
	responses := make([]dto.ServiceResponse, len(services))
	for i, service := range services {
		resp := ServiceToResponse(&service)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
