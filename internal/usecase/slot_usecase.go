package usecase

import (
	"context"
	"time"

	"city-services-backend/internal/delivery/dto"
	"city-services-backend/internal/domain/entity"
	"city-services-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SlotUsecase interface {
	// AvailableSlots expands every window that applies on the date into
	// discrete bookable slots and reports per-slot remaining capacity.
	// Fully booked slots are omitted entirely.
	AvailableSlots(ctx context.Context, serviceID int, day time.Time) (*dto.SlotListResponse, error)
}

type slotUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	scheduleUsecase ScheduleUsecase
	appointmentRepo repository.AppointmentRepository
}

func NewSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleUsecase ScheduleUsecase,
	appointmentRepo repository.AppointmentRepository,
) SlotUsecase {
	return &slotUsecase{
		db:              db,
		log:             log,
		scheduleUsecase: scheduleUsecase,
		appointmentRepo: appointmentRepo,
	}
}

// bookedCounter reports how many non-cancelled appointments hold a
// slot_start inside [start, end).
type bookedCounter func(start, end time.Time) (int64, error)

func (u *slotUsecase) AvailableSlots(ctx context.Context, serviceID int, day time.Time) (*dto.SlotListResponse, error) {
	svc, windows, err := u.scheduleUsecase.ResolveForDate(ctx, serviceID, day)
	if err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)
	count := func(start, end time.Time) (int64, error) {
		return u.appointmentRepo.CountBookedInRange(db, serviceID, start, end)
	}

	slots := make([]dto.SlotResponse, 0)
	for i := range windows {
		expanded, err := expandWindowSlots(svc, &windows[i], day, count)
		if err != nil {
			u.log.Warnf("Failed to expand window %d for service %d: %+v", windows[i].ID, serviceID, err)
			return nil, err
		}
		slots = append(slots, expanded...)
	}

	return &dto.SlotListResponse{
		Slots: slots,
		Total: len(slots),
	}, nil
}

// expandWindowSlots walks a window from its start in steps of the
// effective slot length, emitting [pointer, pointer+length) while a full
// slot still fits. A trailing remainder shorter than one slot is dropped
// rather than emitted short. Windows expand independently, so overlapping
// windows produce overlapping slots.
func expandWindowSlots(svc *entity.Service, window *entity.ScheduleWindow, day time.Time, count bookedCounter) ([]dto.SlotResponse, error) {
	startMin, err := entity.ClockTime(window.StartTime)
	if err != nil {
		return nil, err
	}
	endMin, err := entity.ClockTime(window.EndTime)
	if err != nil {
		return nil, err
	}

	length := time.Duration(svc.SlotMinutes(window)) * time.Minute
	capacity := svc.Capacity(window)

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	pointer := midnight.Add(time.Duration(startMin) * time.Minute)
	windowEnd := midnight.Add(time.Duration(endMin) * time.Minute)

	slots := make([]dto.SlotResponse, 0)
	for !pointer.Add(length).After(windowEnd) {
		slotEnd := pointer.Add(length)
		used, err := count(pointer, slotEnd)
		if err != nil {
			return nil, err
		}
		available := capacity - int(used)
		if available > 0 {
			slots = append(slots, dto.SlotResponse{
				Start:     pointer,
				End:       slotEnd,
				Capacity:  capacity,
				Available: available,
			})
		}
		pointer = slotEnd
	}

	return slots, nil
}
