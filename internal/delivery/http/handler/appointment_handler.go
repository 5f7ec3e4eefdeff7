package handler

import (
	"encoding/json"
	"net/http"

	"city-services-backend/internal/delivery/dto"
	"city-services-backend/internal/delivery/http/middleware"
	"city-services-backend/internal/usecase"
	"city-services-backend/pkg/response"
	"city-services-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	bookingUsecase usecase.BookingUsecase
	checkinUsecase usecase.CheckinUsecase
	validator      *validator.CustomValidator
}

func NewAppointmentHandler(
	bookingUsecase usecase.BookingUsecase,
	checkinUsecase usecase.CheckinUsecase,
	validator *validator.CustomValidator,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookingUsecase: bookingUsecase,
		checkinUsecase: checkinUsecase,
		validator:      validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found or inactive")
		case usecase.ErrSlotFull:
			response.Conflict(w, "Slot is fully booked")
		case usecase.ErrDuplicateBooking:
			response.Conflict(w, "You already hold a booking for this slot")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	appointments, err := h.bookingUsecase.MyBookings(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// GetMyCurrentAppointment returns the caller's next live appointment, or
// an empty payload when none exists.
func (h *AppointmentHandler) GetMyCurrentAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	appointment, err := h.bookingUsecase.MyCurrentBooking(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get current appointment")
		return
	}

	response.Success(w, http.StatusOK, "Current appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.bookingUsecase.CancelBooking(r.Context(), userID, appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotCancellable:
			response.Error(w, http.StatusBadRequest, "Appointment can no longer be cancelled", nil)
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

// CheckIn exchanges an appointment's check-in token for a queue ticket.
// No login is required; the token is the credential.
func (h *AppointmentHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.CheckinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	ticket, err := h.checkinUsecase.CheckIn(r.Context(), appointmentID, req.Token)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrInvalidCheckinToken:
			response.Unauthorized(w, "Check-in token does not match")
		case usecase.ErrInvalidTransition:
			response.Error(w, http.StatusBadRequest, "Appointment cannot be checked in from its current status", nil)
		default:
			response.InternalServerError(w, "Failed to check in")
		}
		return
	}

	response.Success(w, http.StatusOK, "Checked in successfully", ticket)
}
