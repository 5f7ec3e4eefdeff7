package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"city-services-backend/internal/delivery/dto"
	"city-services-backend/internal/usecase"
	"city-services-backend/pkg/response"
	"city-services-backend/pkg/validator"
)

type ScheduleHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
	slotUsecase     usecase.SlotUsecase
	validator       *validator.CustomValidator
}

func NewScheduleHandler(
	scheduleUsecase usecase.ScheduleUsecase,
	slotUsecase usecase.SlotUsecase,
	validator *validator.CustomValidator,
) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase: scheduleUsecase,
		slotUsecase:     slotUsecase,
		validator:       validator,
	}
}

// ListServiceWindows returns the recurring weekly windows of one service.
func (h *ScheduleHandler) ListServiceWindows(w http.ResponseWriter, r *http.Request) {
	serviceID, err := pathInt(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid service ID", nil)
		return
	}

	windows, err := h.scheduleUsecase.ListWindows(r.Context(), serviceID)
	if err != nil {
		switch err {
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		default:
			response.InternalServerError(w, "Failed to list schedule windows")
		}
		return
	}

	response.Success(w, http.StatusOK, "Schedule windows retrieved successfully", windows)
}

// ListAllWindows is the admin view across services and departments.
func (h *ScheduleHandler) ListAllWindows(w http.ResponseWriter, r *http.Request) {
	var departmentID, serviceID *int
	if raw := r.URL.Query().Get("department_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
			return
		}
		departmentID = &id
	}
	if raw := r.URL.Query().Get("service_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			response.Error(w, http.StatusBadRequest, "Invalid service ID", nil)
			return
		}
		serviceID = &id
	}

	windows, err := h.scheduleUsecase.ListAllWindows(r.Context(), departmentID, serviceID)
	if err != nil {
		response.InternalServerError(w, "Failed to list schedule windows")
		return
	}

	response.Success(w, http.StatusOK, "Schedule windows retrieved successfully", windows)
}

// CreateWindows accepts a batch of windows and creates them atomically.
func (h *ScheduleHandler) CreateWindows(w http.ResponseWriter, r *http.Request) {
	var reqs []dto.CreateWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	for i := range reqs {
		if err := h.validator.Validate(&reqs[i]); err != nil {
			response.ValidationError(w, h.validator.FormatValidationErrors(err))
			return
		}
	}

	windows, err := h.scheduleUsecase.CreateWindows(r.Context(), reqs)
	if err != nil {
		switch err {
		case usecase.ErrEmptyWindowBatch,
			usecase.ErrInvalidTimeFormat,
			usecase.ErrInvalidTimeRange,
			usecase.ErrInvalidWeekday,
			usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		case usecase.ErrWindowExists:
			response.Conflict(w, "An identical schedule window already exists")
		default:
			response.InternalServerError(w, "Failed to create schedule windows")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Schedule windows created successfully", windows)
}

// GetSlots expands a service's schedule into bookable slots for one date.
func (h *ScheduleHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	serviceID, err := pathInt(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid service ID", nil)
		return
	}

	rawDay := r.URL.Query().Get("day")
	if rawDay == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'day' is required", nil)
		return
	}
	day, err := time.Parse("2006-01-02", rawDay)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		return
	}

	slots, err := h.slotUsecase.AvailableSlots(r.Context(), serviceID, day)
	if err != nil {
		switch err {
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found")
		default:
			response.InternalServerError(w, "Failed to compute available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}
