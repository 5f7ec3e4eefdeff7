package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"city-services-backend/internal/delivery/dto"
	"city-services-backend/internal/domain/entity"
	"city-services-backend/internal/usecase"
	"city-services-backend/pkg/response"
	"city-services-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type QueueHandler struct {
	windowUsecase  usecase.WindowUsecase
	checkinUsecase usecase.CheckinUsecase
	validator      *validator.CustomValidator
}

func NewQueueHandler(
	windowUsecase usecase.WindowUsecase,
	checkinUsecase usecase.CheckinUsecase,
	validator *validator.CustomValidator,
) *QueueHandler {
	return &QueueHandler{
		windowUsecase:  windowUsecase,
		checkinUsecase: checkinUsecase,
		validator:      validator,
	}
}

// WalkIn issues a queue ticket for a citizen without an appointment.
func (h *QueueHandler) WalkIn(w http.ResponseWriter, r *http.Request) {
	var req dto.WalkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	ticket, err := h.checkinUsecase.WalkIn(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDepartmentNotFound:
			response.NotFound(w, "Department not found")
		case usecase.ErrServiceNotFound:
			response.NotFound(w, "Service not found or inactive")
		default:
			response.InternalServerError(w, "Failed to issue walk-in ticket")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Ticket issued successfully", ticket)
}

// NowServing is the public display-board snapshot for a department.
func (h *QueueHandler) NowServing(w http.ResponseWriter, r *http.Request) {
	departmentID, err := strconv.Atoi(r.URL.Query().Get("department_id"))
	if err != nil || departmentID < 1 {
		response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
		return
	}

	now, err := h.windowUsecase.NowServing(r.Context(), departmentID)
	if err != nil {
		switch err {
		case usecase.ErrDepartmentNotFound:
			response.NotFound(w, "Department not found")
		default:
			response.InternalServerError(w, "Failed to get queue status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Queue status retrieved successfully", now)
}

func (h *QueueHandler) ListWindows(w http.ResponseWriter, r *http.Request) {
	var departmentID *int
	if raw := r.URL.Query().Get("department_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			response.Error(w, http.StatusBadRequest, "Invalid department ID", nil)
			return
		}
		departmentID = &id
	}

	windows, err := h.windowUsecase.ListWindows(r.Context(), departmentID)
	if err != nil {
		response.InternalServerError(w, "Failed to list serving windows")
		return
	}

	response.Success(w, http.StatusOK, "Serving windows retrieved successfully", windows)
}

func (h *QueueHandler) CreateWindow(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOfficeWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	window, err := h.windowUsecase.CreateWindow(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDepartmentNotFound:
			response.NotFound(w, "Department not found")
		case usecase.ErrWindowNameTaken:
			response.Conflict(w, "A window with that name already exists in the department")
		default:
			response.InternalServerError(w, "Failed to create serving window")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Serving window created successfully", window)
}

func (h *QueueHandler) UpdateWindow(w http.ResponseWriter, r *http.Request) {
	windowID, err := pathInt(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid window ID", nil)
		return
	}

	var req dto.UpdateOfficeWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	window, err := h.windowUsecase.UpdateWindow(r.Context(), windowID, &req)
	if err != nil {
		switch err {
		case usecase.ErrOfficeWindowNotFound:
			response.NotFound(w, "Serving window not found")
		case usecase.ErrWindowNameTaken:
			response.Conflict(w, "A window with that name already exists in the department")
		default:
			response.InternalServerError(w, "Failed to update serving window")
		}
		return
	}

	response.Success(w, http.StatusOK, "Serving window updated successfully", window)
}

func (h *QueueHandler) OpenWindow(w http.ResponseWriter, r *http.Request) {
	h.setWindowOpen(w, r, true, "Serving window opened")
}

func (h *QueueHandler) CloseWindow(w http.ResponseWriter, r *http.Request) {
	h.setWindowOpen(w, r, false, "Serving window closed")
}

func (h *QueueHandler) setWindowOpen(w http.ResponseWriter, r *http.Request, open bool, message string) {
	windowID, err := pathInt(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid window ID", nil)
		return
	}

	window, err := h.windowUsecase.SetOpen(r.Context(), windowID, open)
	if err != nil {
		switch err {
		case usecase.ErrOfficeWindowNotFound:
			response.NotFound(w, "Serving window not found")
		default:
			response.InternalServerError(w, "Failed to change window state")
		}
		return
	}

	response.Success(w, http.StatusOK, message, window)
}

// CallNext pulls the next waiting ticket to the window's counter.
func (h *QueueHandler) CallNext(w http.ResponseWriter, r *http.Request) {
	windowID, err := pathInt(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid window ID", nil)
		return
	}

	ticket, err := h.windowUsecase.CallNext(r.Context(), windowID)
	if err != nil {
		switch err {
		case usecase.ErrOfficeWindowNotFound:
			response.NotFound(w, "Serving window not found")
		case usecase.ErrWindowClosed:
			response.Error(w, http.StatusBadRequest, "Serving window is not open", nil)
		case usecase.ErrNoWaitingTickets:
			response.NotFound(w, "No waiting tickets")
		default:
			response.InternalServerError(w, "Failed to call next ticket")
		}
		return
	}

	response.Success(w, http.StatusOK, "Next ticket called successfully", ticket)
}

// CurrentTicket shows what a window is serving right now.
func (h *QueueHandler) CurrentTicket(w http.ResponseWriter, r *http.Request) {
	windowID, err := pathInt(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid window ID", nil)
		return
	}

	ticket, err := h.windowUsecase.CurrentForWindow(r.Context(), windowID)
	if err != nil {
		switch err {
		case usecase.ErrOfficeWindowNotFound:
			response.NotFound(w, "Serving window not found")
		default:
			response.InternalServerError(w, "Failed to get current ticket")
		}
		return
	}

	response.Success(w, http.StatusOK, "Current ticket retrieved successfully", ticket)
}

func (h *QueueHandler) CompleteTicket(w http.ResponseWriter, r *http.Request) {
	h.closeTicket(w, r, entity.TicketStatusDone, "Ticket completed successfully")
}

func (h *QueueHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	h.closeTicket(w, r, entity.TicketStatusNoShow, "Ticket marked as no-show")
}

func (h *QueueHandler) closeTicket(w http.ResponseWriter, r *http.Request, terminal entity.TicketStatus, message string) {
	ticketID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid ticket ID", nil)
		return
	}

	ticket, err := h.windowUsecase.CloseTicket(r.Context(), ticketID, terminal)
	if err != nil {
		switch err {
		case usecase.ErrTicketNotFound:
			response.NotFound(w, "Ticket not found")
		case usecase.ErrInvalidTransition:
			response.Error(w, http.StatusBadRequest, "Ticket is not being served", nil)
		default:
			response.InternalServerError(w, "Failed to close ticket")
		}
		return
	}

	response.Success(w, http.StatusOK, message, ticket)
}
