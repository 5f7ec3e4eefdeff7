package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"city-services-backend/internal/delivery/dto"
	"city-services-backend/internal/delivery/http/middleware"
	"city-services-backend/internal/usecase"
	"city-services-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type fakeBookingUsecase struct {
	createFn  func(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	listFn    func(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error)
	currentFn func(ctx context.Context, userID uuid.UUID) (*dto.AppointmentResponse, error)
	cancelFn  func(ctx context.Context, userID, appointmentID uuid.UUID) error
}

func (f *fakeBookingUsecase) CreateBooking(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if f.createFn == nil {
		return &dto.AppointmentResponse{}, nil
	}
	return f.createFn(ctx, userID, req)
}

func (f *fakeBookingUsecase) MyBookings(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error) {
	if f.listFn == nil {
		return &dto.AppointmentListResponse{}, nil
	}
	return f.listFn(ctx, userID)
}

func (f *fakeBookingUsecase) MyCurrentBooking(ctx context.Context, userID uuid.UUID) (*dto.AppointmentResponse, error) {
	if f.currentFn == nil {
		return nil, nil
	}
	return f.currentFn(ctx, userID)
}

func (f *fakeBookingUsecase) CancelBooking(ctx context.Context, userID, appointmentID uuid.UUID) error {
	if f.cancelFn == nil {
		return nil
	}
	return f.cancelFn(ctx, userID, appointmentID)
}

func newAppointmentHandler(bu usecase.BookingUsecase, cu usecase.CheckinUsecase) *AppointmentHandler {
	return NewAppointmentHandler(bu, cu, validator.NewValidator())
}

func authedRequest(method, target string, body []byte, userID uuid.UUID) *http.Request {
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
	return r.WithContext(ctx)
}

func TestCreateAppointmentSuccess(t *testing.T) {
	userID := uuid.New()
	slotStart := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	h := newAppointmentHandler(&fakeBookingUsecase{
		createFn: func(ctx context.Context, gotUser uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			if gotUser != userID {
				t.Fatalf("userID=%s, want %s", gotUser, userID)
			}
			return &dto.AppointmentResponse{
				ID:        uuid.New(),
				UserID:    gotUser,
				ServiceID: req.ServiceID,
				SlotStart: req.SlotStart,
				Status:    "booked",
			}, nil
		},
	}, &fakeCheckinUsecase{})

	payload, _ := json.Marshal(dto.CreateAppointmentRequest{ServiceID: 1, SlotStart: slotStart})
	w := httptest.NewRecorder()

	h.CreateAppointment(w, authedRequest(http.MethodPost, "/appointments", payload, userID))

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusCreated)
	}
}

func TestCreateAppointmentSlotFull(t *testing.T) {
	h := newAppointmentHandler(&fakeBookingUsecase{
		createFn: func(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrSlotFull
		},
	}, &fakeCheckinUsecase{})

	payload, _ := json.Marshal(dto.CreateAppointmentRequest{ServiceID: 1, SlotStart: time.Now()})
	w := httptest.NewRecorder()

	h.CreateAppointment(w, authedRequest(http.MethodPost, "/appointments", payload, uuid.New()))

	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusConflict)
	}
}

func TestCreateAppointmentDuplicate(t *testing.T) {
	h := newAppointmentHandler(&fakeBookingUsecase{
		createFn: func(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrDuplicateBooking
		},
	}, &fakeCheckinUsecase{})

	payload, _ := json.Marshal(dto.CreateAppointmentRequest{ServiceID: 1, SlotStart: time.Now()})
	w := httptest.NewRecorder()

	h.CreateAppointment(w, authedRequest(http.MethodPost, "/appointments", payload, uuid.New()))

	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusConflict)
	}
}

func TestCreateAppointmentWithoutIdentity(t *testing.T) {
	h := newAppointmentHandler(&fakeBookingUsecase{}, &fakeCheckinUsecase{})

	payload, _ := json.Marshal(dto.CreateAppointmentRequest{ServiceID: 1, SlotStart: time.Now()})
	r := httptest.NewRequest(http.MethodPost, "/appointments", bytes.NewReader(payload))
	w := httptest.NewRecorder()

	h.CreateAppointment(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestCancelAppointmentNotCancellable(t *testing.T) {
	h := newAppointmentHandler(&fakeBookingUsecase{
		cancelFn: func(ctx context.Context, userID, appointmentID uuid.UUID) error {
			return usecase.ErrNotCancellable
		},
	}, &fakeCheckinUsecase{})

	id := uuid.NewString()
	r := authedRequest(http.MethodPost, "/appointments/"+id+"/cancel", nil, uuid.New())
	r = mux.SetURLVars(r, map[string]string{"id": id})
	w := httptest.NewRecorder()

	h.CancelAppointment(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCancelAppointmentNotOwned(t *testing.T) {
	// Ownership violations surface as not-found, never forbidden.
	h := newAppointmentHandler(&fakeBookingUsecase{
		cancelFn: func(ctx context.Context, userID, appointmentID uuid.UUID) error {
			return usecase.ErrAppointmentNotFound
		},
	}, &fakeCheckinUsecase{})

	id := uuid.NewString()
	r := authedRequest(http.MethodPost, "/appointments/"+id+"/cancel", nil, uuid.New())
	r = mux.SetURLVars(r, map[string]string{"id": id})
	w := httptest.NewRecorder()

	h.CancelAppointment(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestCheckInTokenMismatch(t *testing.T) {
	h := newAppointmentHandler(&fakeBookingUsecase{}, &fakeCheckinUsecase{
		checkinFn: func(ctx context.Context, appointmentID uuid.UUID, token string) (*dto.TicketResponse, error) {
			return nil, usecase.ErrInvalidCheckinToken
		},
	})

	id := uuid.NewString()
	payload, _ := json.Marshal(dto.CheckinRequest{Token: "wrong"})
	r := httptest.NewRequest(http.MethodPost, "/appointments/"+id+"/checkin", bytes.NewReader(payload))
	r = mux.SetURLVars(r, map[string]string{"id": id})
	w := httptest.NewRecorder()

	h.CheckIn(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestCheckInReturnsTicket(t *testing.T) {
	id := uuid.New()
	h := newAppointmentHandler(&fakeBookingUsecase{}, &fakeCheckinUsecase{
		checkinFn: func(ctx context.Context, appointmentID uuid.UUID, token string) (*dto.TicketResponse, error) {
			if appointmentID != id {
				t.Fatalf("appointmentID=%s, want %s", appointmentID, id)
			}
			if token != "secret" {
				t.Fatalf("token=%q, want %q", token, "secret")
			}
			return &dto.TicketResponse{ID: uuid.New(), Number: 3, Status: "waiting"}, nil
		},
	})

	payload, _ := json.Marshal(dto.CheckinRequest{Token: "secret"})
	r := httptest.NewRequest(http.MethodPost, "/appointments/"+id.String()+"/checkin", bytes.NewReader(payload))
	r = mux.SetURLVars(r, map[string]string{"id": id.String()})
	w := httptest.NewRecorder()

	h.CheckIn(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Data dto.TicketResponse `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Number != 3 || body.Data.Status != "waiting" {
		t.Fatalf("unexpected ticket: %+v", body.Data)
	}
}
