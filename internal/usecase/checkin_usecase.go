package usecase

import (
	"context"
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
	ErrInvalidCheckinToken  = errors.New("check-in token invalid")
	ErrInvalidTransition    = errors.New("operation not allowed from current status")
	ErrTicketNumberConflict = errors.New("ticket number conflict")
)

// A numbering race losing the unique (department, date, number) index is
// retried once with a fresh transaction before surfacing.
const ticketAllocationAttempts = 2

type CheckinUsecase interface {
	// CheckIn converts a reservation into a waiting queue ticket. The
	// token is the credential; re-checking-in an already checked-in
	// appointment returns its existing ticket.
	CheckIn(ctx context.Context, appointmentID uuid.UUID, token string) (*dto.TicketResponse, error)
	// WalkIn issues a ticket with no originating appointment.
	WalkIn(ctx context.Context, req *dto.WalkInRequest) (*dto.TicketResponse, error)
}

type checkinUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	ticketRepo      repository.QueueTicketRepository
	departmentRepo  repository.DepartmentRepository
	serviceRepo     repository.ServiceRepository
	notifier        *service.QueueNotifier
}

func NewCheckinUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	ticketRepo repository.QueueTicketRepository,
	departmentRepo repository.DepartmentRepository,
	serviceRepo repository.ServiceRepository,
	notifier *service.QueueNotifier,
) CheckinUsecase {
	return &checkinUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		ticketRepo:      ticketRepo,
		departmentRepo:  departmentRepo,
		serviceRepo:     serviceRepo,
		notifier:        notifier,
	}
}

func (u *checkinUsecase) CheckIn(ctx context.Context, appointmentID uuid.UUID, token string) (*dto.TicketResponse, error) {
	var ticket *entity.QueueTicket
	var appointment *entity.Appointment

	err := u.withNumberRetry(ctx, func(tx *gorm.DB) error {
		ticket, appointment = nil, nil

		// Locking read: concurrent check-ins serialize on the row, so
		// the second one observes checked_in and returns the existing
		// ticket instead of issuing another.
		appt, err := u.appointmentRepo.FindByIDForUpdate(tx, appointmentID)
		if err != nil {
			return err
		}
		if appt == nil {
			return ErrAppointmentNotFound
		}
		if appt.CheckinToken != token {
			return ErrInvalidCheckinToken
		}

		switch appt.Status {
		case entity.AppointmentStatusCheckedIn:
			existing, err := u.ticketRepo.FindByAppointmentID(tx, appt.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				ticket, appointment = existing, appt
				return nil
			}
			// Checked in but ticketless should not happen; fall through
			// and issue one.
		case entity.AppointmentStatusBooked:
		default:
			return ErrInvalidTransition
		}

		epoch := entity.TicketEpoch(time.Now())
		issued, err := u.issueTicket(tx, appt.DepartmentID, &appt.ServiceID, &appt.ID, epoch)
		if err != nil {
			return err
		}

		appt.Status = entity.AppointmentStatusCheckedIn
		appt.QueueNumber = &issued.Number
		appt.QueueDate = &epoch
		if err := u.appointmentRepo.Update(tx, appt); err != nil {
			return err
		}

		ticket, appointment = issued, appt
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrInvalidCheckinToken) ||
			errors.Is(err, ErrInvalidTransition) || errors.Is(err, ErrTicketNumberConflict) {
			return nil, err
		}
		u.log.Warnf("Failed to check in appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	u.notifier.TicketCreated(ticket, appointment)
	u.log.Infof("Check-in complete: appointment=%s, department=%d, number=%d",
		appointmentID, ticket.DepartmentID, ticket.Number)
	return converter.TicketToResponse(ticket), nil
}

func (u *checkinUsecase) WalkIn(ctx context.Context, req *dto.WalkInRequest) (*dto.TicketResponse, error) {
	var ticket *entity.QueueTicket

	err := u.withNumberRetry(ctx, func(tx *gorm.DB) error {
		department, err := u.departmentRepo.FindByID(tx, req.DepartmentID)
		if err != nil {
			return err
		}
		if department == nil {
			return ErrDepartmentNotFound
		}
		if req.ServiceID != nil {
			svc, err := u.serviceRepo.FindByID(tx, *req.ServiceID)
			if err != nil {
				return err
			}
			if svc == nil {
				return ErrServiceNotFound
			}
		}

		epoch := entity.TicketEpoch(time.Now())
		issued, err := u.issueTicket(tx, req.DepartmentID, req.ServiceID, nil, epoch)
		if err != nil {
			return err
		}
		ticket = issued
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDepartmentNotFound) || errors.Is(err, ErrServiceNotFound) ||
			errors.Is(err, ErrTicketNumberConflict) {
			return nil, err
		}
		u.log.Warnf("Failed to issue walk-in ticket for department %d: %+v", req.DepartmentID, err)
		return nil, err
	}

	u.notifier.TicketCreated(ticket, nil)
	u.log.Infof("Walk-in ticket issued: department=%d, number=%d", ticket.DepartmentID, ticket.Number)
	return converter.TicketToResponse(ticket), nil
}

// issueTicket allocates the next number for the (department, epoch)
// counter and inserts the waiting ticket in the same transaction. The
// counter upsert locks its row, so concurrent check-ins for the same
// epoch serialize and numbers stay dense.
func (u *checkinUsecase) issueTicket(tx *gorm.DB, departmentID int, serviceID *int, appointmentID *uuid.UUID, epoch time.Time) (*entity.QueueTicket, error) {
	number, err := u.ticketRepo.NextNumber(tx, departmentID, epoch)
	if err != nil {
		return nil, err
	}

	ticket := &entity.QueueTicket{
		DepartmentID:  departmentID,
		ServiceID:     serviceID,
		Date:          epoch,
		Number:        number,
		AppointmentID: appointmentID,
		Status:        entity.TicketStatusWaiting,
	}
	if err := u.ticketRepo.Create(tx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// withNumberRetry runs fn in a transaction and retries once on a unique
// violation from the (department, date, number) index. A failed insert
// aborts the whole postgres transaction, so the retry starts fresh.
func (u *checkinUsecase) withNumberRetry(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < ticketAllocationAttempts; attempt++ {
		err = u.db.WithContext(ctx).Transaction(fn)
		if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		u.log.Warnf("Ticket number collision, retrying allocation (attempt %d)", attempt+1)
	}
	return ErrTicketNumberConflict
}
