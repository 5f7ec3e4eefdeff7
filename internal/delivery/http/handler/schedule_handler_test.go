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
	"city-services-backend/internal/domain/entity"
	"city-services-backend/internal/usecase"
	"city-services-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type fakeScheduleUsecase struct {
	listFn    func(ctx context.Context, serviceID int) (*dto.WindowListResponse, error)
	listAllFn func(ctx context.Context, departmentID, serviceID *int) (*dto.WindowListResponse, error)
	createFn  func(ctx context.Context, reqs []dto.CreateWindowRequest) (*dto.WindowListResponse, error)
}

func (f *fakeScheduleUsecase) ListWindows(ctx context.Context, serviceID int) (*dto.WindowListResponse, error) {
	if f.listFn == nil {
		return &dto.WindowListResponse{}, nil
	}
	return f.listFn(ctx, serviceID)
}

func (f *fakeScheduleUsecase) ListAllWindows(ctx context.Context, departmentID, serviceID *int) (*dto.WindowListResponse, error) {
	if f.listAllFn == nil {
		return &dto.WindowListResponse{}, nil
	}
	return f.listAllFn(ctx, departmentID, serviceID)
}

func (f *fakeScheduleUsecase) CreateWindows(ctx context.Context, reqs []dto.CreateWindowRequest) (*dto.WindowListResponse, error) {
	if f.createFn == nil {
		return &dto.WindowListResponse{}, nil
	}
	return f.createFn(ctx, reqs)
}

func (f *fakeScheduleUsecase) ResolveForDate(ctx context.Context, serviceID int, day time.Time) (*entity.Service, []entity.ScheduleWindow, error) {
	return nil, nil, nil
}

type fakeSlotUsecase struct {
	slotsFn func(ctx context.Context, serviceID int, day time.Time) (*dto.SlotListResponse, error)
}

func (f *fakeSlotUsecase) AvailableSlots(ctx context.Context, serviceID int, day time.Time) (*dto.SlotListResponse, error) {
	if f.slotsFn == nil {
		return &dto.SlotListResponse{}, nil
	}
	return f.slotsFn(ctx, serviceID, day)
}

func newScheduleHandler(su usecase.ScheduleUsecase, sl usecase.SlotUsecase) *ScheduleHandler {
	return NewScheduleHandler(su, sl, validator.NewValidator())
}

func TestCreateWindowsInvalidRange(t *testing.T) {
	h := newScheduleHandler(&fakeScheduleUsecase{
		createFn: func(ctx context.Context, reqs []dto.CreateWindowRequest) (*dto.WindowListResponse, error) {
			return nil, usecase.ErrInvalidTimeRange
		},
	}, &fakeSlotUsecase{})

	payload, _ := json.Marshal([]dto.CreateWindowRequest{
		{ServiceID: 1, Weekday: 0, StartTime: "10:00", EndTime: "08:00"},
	})
	r := httptest.NewRequest(http.MethodPost, "/admin/schedules", bytes.NewReader(payload))
	w := httptest.NewRecorder()

	h.CreateWindows(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCreateWindowsDuplicateTuple(t *testing.T) {
	h := newScheduleHandler(&fakeScheduleUsecase{
		createFn: func(ctx context.Context, reqs []dto.CreateWindowRequest) (*dto.WindowListResponse, error) {
			return nil, usecase.ErrWindowExists
		},
	}, &fakeSlotUsecase{})

	payload, _ := json.Marshal([]dto.CreateWindowRequest{
		{ServiceID: 1, Weekday: 0, StartTime: "08:00", EndTime: "09:00"},
	})
	r := httptest.NewRequest(http.MethodPost, "/admin/schedules", bytes.NewReader(payload))
	w := httptest.NewRecorder()

	h.CreateWindows(w, r)

	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusConflict)
	}
}

func TestGetSlotsRequiresDay(t *testing.T) {
	h := newScheduleHandler(&fakeScheduleUsecase{}, &fakeSlotUsecase{})

	r := httptest.NewRequest(http.MethodGet, "/appointments/services/1/slots", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "1"})
	w := httptest.NewRecorder()

	h.GetSlots(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGetSlotsForDay(t *testing.T) {
	wantDay := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	h := newScheduleHandler(&fakeScheduleUsecase{}, &fakeSlotUsecase{
		slotsFn: func(ctx context.Context, serviceID int, day time.Time) (*dto.SlotListResponse, error) {
			if serviceID != 1 {
				t.Fatalf("serviceID=%d, want 1", serviceID)
			}
			if !day.Equal(wantDay) {
				t.Fatalf("day=%v, want %v", day, wantDay)
			}
			return &dto.SlotListResponse{
				Slots: []dto.SlotResponse{{Start: wantDay.Add(8 * time.Hour), Capacity: 2, Available: 2}},
				Total: 1,
			}, nil
		},
	})

	r := httptest.NewRequest(http.MethodGet, "/appointments/services/1/slots?day=2025-03-10", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "1"})
	w := httptest.NewRecorder()

	h.GetSlots(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Data dto.SlotListResponse `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Data.Total != 1 {
		t.Fatalf("total=%d, want 1", body.Data.Total)
	}
}

func TestGetSlotsUnknownService(t *testing.T) {
	h := newScheduleHandler(&fakeScheduleUsecase{}, &fakeSlotUsecase{
		slotsFn: func(ctx context.Context, serviceID int, day time.Time) (*dto.SlotListResponse, error) {
			return nil, usecase.ErrServiceNotFound
		},
	})

	r := httptest.NewRequest(http.MethodGet, "/appointments/services/99/slots?day=2025-03-10", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "99"})
	w := httptest.NewRecorder()

	h.GetSlots(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNotFound)
	}
}
