package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"city-services-backend/internal/converter"
	"city-services-backend/internal/delivery/dto"
	"city-services-backend/internal/domain/entity"
	"city-services-backend/internal/domain/repository"
	"city-services-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrSlotFull            = errors.New("slot is full")
	ErrDuplicateBooking    = errors.New("you have already booked this slot")
	ErrNotCancellable      = errors.New("appointment can no longer be cancelled")
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	MyBookings(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error)
	MyCurrentBooking(ctx context.Context, userID uuid.UUID) (*dto.AppointmentResponse, error)
	CancelBooking(ctx context.Context, userID, appointmentID uuid.UUID) error
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	serviceRepo     repository.ServiceRepository
	windowRepo      repository.ScheduleWindowRepository
	notifier        *service.QueueNotifier
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	windowRepo repository.ScheduleWindowRepository,
	notifier *service.QueueNotifier,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		windowRepo:      windowRepo,
		notifier:        notifier,
	}
}

// CreateBooking reserves a slot for the user.
//
// The capacity check and the insert run inside one transaction that
// first locks the service row, so concurrent bookings for the same
// service serialize on that lock: read count, decide, write is atomic.
// A partial unique index on non-cancelled (user, service, slot_start)
// backs the duplicate check at the constraint level.
func (u *bookingUsecase) CreateBooking(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	slotStart := req.SlotStart.UTC()
	day := time.Date(slotStart.Year(), slotStart.Month(), slotStart.Day(), 0, 0, 0, 0, time.UTC)

	var appointment *entity.Appointment
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		svc, err := u.serviceRepo.FindByIDForUpdate(tx, req.ServiceID)
		if err != nil {
			return err
		}
		if svc == nil || !svc.Active() {
			return ErrServiceNotFound
		}

		windows, err := u.windowRepo.FindByWeekday(tx, svc.ID, entity.WeekdayOf(day))
		if err != nil {
			return err
		}
		covering := coveringWindow(windows, day, slotStart)

		length := time.Duration(svc.SlotMinutes(covering)) * time.Minute
		capacity := svc.Capacity(covering)
		slotEnd := slotStart.Add(length)

		duplicate, err := u.appointmentRepo.HasActiveBooking(tx, userID, svc.ID, slotStart)
		if err != nil {
			return err
		}
		if duplicate {
			return ErrDuplicateBooking
		}

		used, err := u.appointmentRepo.CountBookedInRange(tx, svc.ID, slotStart, slotEnd)
		if err != nil {
			return err
		}
		if used >= int64(capacity) {
			return ErrSlotFull
		}

		appointment = &entity.Appointment{
			UserID:       userID,
			ServiceID:    svc.ID,
			DepartmentID: svc.DepartmentID,
			SlotDate:     day,
			SlotStart:    slotStart,
			SlotEnd:      slotEnd,
			Status:       entity.AppointmentStatusBooked,
			CheckinToken: generateCheckinToken(),
		}
		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateBooking
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) || errors.Is(err, ErrSlotFull) || errors.Is(err, ErrDuplicateBooking) {
			return nil, err
		}
		u.log.Warnf("Failed to create booking for user %s: %+v", userID, err)
		return nil, err
	}

	u.notifier.AppointmentBooked(appointment)

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment, true), nil
	}

	u.log.Infof("Booking created: id=%s, service=%d, slot=%s", appointment.ID, appointment.ServiceID,
		appointment.SlotStart.Format(time.RFC3339))
	resp := converter.AppointmentToResponse(full, false)
	resp.CheckinToken = appointment.CheckinToken
	return resp, nil
}

func (u *bookingUsecase) MyBookings(ctx context.Context, userID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list bookings for user %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// MyCurrentBooking returns the user's next live appointment, or nil when
// none is pending.
func (u *bookingUsecase) MyCurrentBooking(ctx context.Context, userID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindCurrentByUserID(u.db.WithContext(ctx), userID, time.Now().UTC())
	if err != nil {
		u.log.Warnf("Failed to find current booking for user %s: %+v", userID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, nil
	}
	return converter.AppointmentToResponse(appointment, true), nil
}

// CancelBooking moves the caller's own booked appointment to cancelled.
// Cancellation is a status transition, never a delete, so the slot's
// accounting history stays intact. Appointments owned by someone else
// are reported as not found rather than forbidden.
func (u *bookingUsecase) CancelBooking(ctx context.Context, userID, appointmentID uuid.UUID) error {
	var serviceID int
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Locking read: a check-in committing between the status check
		// and the update would otherwise be overwritten to cancelled.
		appointment, err := u.appointmentRepo.FindByIDForUpdate(tx, appointmentID)
		if err != nil {
			return err
		}
		if appointment == nil || appointment.UserID != userID {
			return ErrAppointmentNotFound
		}
		if !appointment.Cancellable() {
			return ErrNotCancellable
		}

		serviceID = appointment.ServiceID
		return u.appointmentRepo.UpdateStatus(tx, appointmentID, entity.AppointmentStatusCancelled)
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrNotCancellable) {
			return err
		}
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return err
	}

	u.log.Infof("Booking cancelled: id=%s, service=%d", appointmentID, serviceID)
	return nil
}

// coveringWindow picks the first window active on the date whose
// [start, end) wall-clock range contains the slot start. Nil means no
// window covers the time and service defaults apply.
func coveringWindow(windows []entity.ScheduleWindow, day, slotStart time.Time) *entity.ScheduleWindow {
	for i := range windows {
		if windows[i].AppliesOn(day) && windows[i].Covers(slotStart) {
			return &windows[i]
		}
	}
	return nil
}

// generateCheckinToken returns the opaque credential embedded in the
// booking confirmation and required at check-in.
func generateCheckinToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
