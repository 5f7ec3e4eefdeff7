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
	ErrOfficeWindowNotFound = errors.New("serving window not found")
	ErrWindowNameTaken      = errors.New("window name already exists in that department")
	ErrWindowClosed         = errors.New("serving window is not open")
	// ErrNoWaitingTickets is a normal outcome of call-next, not a fault:
	// the queue is simply empty.
	ErrNoWaitingTickets = errors.New("no waiting tickets")
	ErrTicketNotFound   = errors.New("ticket not found")
)

type WindowUsecase interface {
	ListWindows(ctx context.Context, departmentID *int) (*dto.OfficeWindowListResponse, error)
	CreateWindow(ctx context.Context, req *dto.CreateOfficeWindowRequest) (*dto.OfficeWindowResponse, error)
	UpdateWindow(ctx context.Context, windowID int, req *dto.UpdateOfficeWindowRequest) (*dto.OfficeWindowResponse, error)
	SetOpen(ctx context.Context, windowID int, open bool) (*dto.OfficeWindowResponse, error)
	CallNext(ctx context.Context, windowID int) (*dto.TicketResponse, error)
	CloseTicket(ctx context.Context, ticketID uuid.UUID, terminal entity.TicketStatus) (*dto.TicketResponse, error)
	NowServing(ctx context.Context, departmentID int) (*dto.QueueNowResponse, error)
	CurrentForWindow(ctx context.Context, windowID int) (*dto.TicketResponse, error)
}

type windowUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	windowRepo      repository.OfficeWindowRepository
	ticketRepo      repository.QueueTicketRepository
	appointmentRepo repository.AppointmentRepository
	departmentRepo  repository.DepartmentRepository
	notifier        *service.QueueNotifier
}

func NewWindowUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	windowRepo repository.OfficeWindowRepository,
	ticketRepo repository.QueueTicketRepository,
	appointmentRepo repository.AppointmentRepository,
	departmentRepo repository.DepartmentRepository,
	notifier *service.QueueNotifier,
) WindowUsecase {
	return &windowUsecase{
		db:              db,
		log:             log,
		windowRepo:      windowRepo,
		ticketRepo:      ticketRepo,
		appointmentRepo: appointmentRepo,
		departmentRepo:  departmentRepo,
		notifier:        notifier,
	}
}

func (u *windowUsecase) ListWindows(ctx context.Context, departmentID *int) (*dto.OfficeWindowListResponse, error) {
	windows, err := u.windowRepo.FindAll(u.db.WithContext(ctx), departmentID)
	if err != nil {
		u.log.Warnf("Failed to list serving windows: %+v", err)
		return nil, err
	}

	return &dto.OfficeWindowListResponse{
		Windows: converter.OfficeWindowsToResponses(windows),
		Total:   len(windows),
	}, nil
}

func (u *windowUsecase) CreateWindow(ctx context.Context, req *dto.CreateOfficeWindowRequest) (*dto.OfficeWindowResponse, error) {
	db := u.db.WithContext(ctx)

	department, err := u.departmentRepo.FindByID(db, req.DepartmentID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	taken, err := u.windowRepo.NameExists(db, req.DepartmentID, req.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrWindowNameTaken
	}

	closed := false
	window := &entity.OfficeWindow{
		DepartmentID: req.DepartmentID,
		Name:         req.Name,
		IsOpen:       &closed,
	}
	if err := u.windowRepo.Create(db, window); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrWindowNameTaken
		}
		u.log.Warnf("Failed to create serving window: %+v", err)
		return nil, err
	}

	u.log.Infof("Serving window created: id=%d, department=%d, name=%s", window.ID, window.DepartmentID, window.Name)
	return converter.OfficeWindowToResponse(window), nil
}

func (u *windowUsecase) UpdateWindow(ctx context.Context, windowID int, req *dto.UpdateOfficeWindowRequest) (*dto.OfficeWindowResponse, error) {
	db := u.db.WithContext(ctx)

	window, err := u.windowRepo.FindByID(db, windowID)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, ErrOfficeWindowNotFound
	}

	if req.Name != "" && req.Name != window.Name {
		taken, err := u.windowRepo.NameExists(db, window.DepartmentID, req.Name, window.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrWindowNameTaken
		}
		window.Name = req.Name
	}
	if req.IsOpen != nil {
		window.IsOpen = req.IsOpen
	}

	if err := u.windowRepo.Update(db, window); err != nil {
		u.log.Warnf("Failed to update serving window %d: %+v", windowID, err)
		return nil, err
	}

	return converter.OfficeWindowToResponse(window), nil
}

// SetOpen opens or closes a window. The operation is idempotent.
func (u *windowUsecase) SetOpen(ctx context.Context, windowID int, open bool) (*dto.OfficeWindowResponse, error) {
	db := u.db.WithContext(ctx)

	window, err := u.windowRepo.FindByID(db, windowID)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, ErrOfficeWindowNotFound
	}

	window.IsOpen = &open
	if err := u.windowRepo.Update(db, window); err != nil {
		u.log.Warnf("Failed to set window %d open=%t: %+v", windowID, open, err)
		return nil, err
	}

	return converter.OfficeWindowToResponse(window), nil
}

// CallNext pulls the oldest waiting ticket of the window's department
// into serving. The candidate row is locked with SKIP LOCKED so two
// counters calling simultaneously never receive the same ticket.
func (u *windowUsecase) CallNext(ctx context.Context, windowID int) (*dto.TicketResponse, error) {
	var ticket *entity.QueueTicket
	var appointment *entity.Appointment

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		window, err := u.windowRepo.FindByID(tx, windowID)
		if err != nil {
			return err
		}
		if window == nil {
			return ErrOfficeWindowNotFound
		}
		if !window.Open() {
			return ErrWindowClosed
		}

		epoch := entity.TicketEpoch(time.Now())
		next, err := u.ticketRepo.FindNextWaitingForUpdate(tx, window.DepartmentID, epoch)
		if err != nil {
			return err
		}
		if next == nil {
			return ErrNoWaitingTickets
		}

		now := time.Now().UTC()
		next.Status = entity.TicketStatusServing
		next.CalledAt = &now
		next.WindowID = &window.ID
		if err := u.ticketRepo.Update(tx, next); err != nil {
			return err
		}

		if next.AppointmentID != nil {
			appt, err := u.appointmentRepo.FindByID(tx, *next.AppointmentID)
			if err != nil {
				return err
			}
			if appt != nil && appt.Status.CanTransitionTo(entity.AppointmentStatusServing) {
				if err := u.appointmentRepo.UpdateStatus(tx, appt.ID, entity.AppointmentStatusServing); err != nil {
					return err
				}
				appt.Status = entity.AppointmentStatusServing
				appointment = appt
			}
		}

		ticket = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOfficeWindowNotFound) || errors.Is(err, ErrWindowClosed) || errors.Is(err, ErrNoWaitingTickets) {
			return nil, err
		}
		u.log.Warnf("Failed to call next ticket for window %d: %+v", windowID, err)
		return nil, err
	}

	u.notifier.TicketCalled(ticket, appointment)
	u.log.Infof("Ticket called: window=%d, department=%d, number=%d", windowID, ticket.DepartmentID, ticket.Number)
	return converter.TicketToResponse(ticket), nil
}

// CloseTicket moves a serving ticket to done or no_show and mirrors the
// terminal status onto the linked appointment, if any.
func (u *windowUsecase) CloseTicket(ctx context.Context, ticketID uuid.UUID, terminal entity.TicketStatus) (*dto.TicketResponse, error) {
	var ticket *entity.QueueTicket
	var appointment *entity.Appointment

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := u.ticketRepo.FindByIDForUpdate(tx, ticketID)
		if err != nil {
			return err
		}
		if t == nil {
			return ErrTicketNotFound
		}
		if !t.Status.CanTransitionTo(terminal) {
			return ErrInvalidTransition
		}

		t.Status = terminal
		if terminal == entity.TicketStatusDone {
			now := time.Now().UTC()
			t.ServedAt = &now
		}
		if err := u.ticketRepo.Update(tx, t); err != nil {
			return err
		}

		if t.AppointmentID != nil {
			mirrored := entity.AppointmentStatusDone
			if terminal == entity.TicketStatusNoShow {
				mirrored = entity.AppointmentStatusNoShow
			}
			appt, err := u.appointmentRepo.FindByID(tx, *t.AppointmentID)
			if err != nil {
				return err
			}
			if appt != nil && appt.Status.CanTransitionTo(mirrored) {
				if err := u.appointmentRepo.UpdateStatus(tx, appt.ID, mirrored); err != nil {
					return err
				}
				appt.Status = mirrored
				appointment = appt
			}
		}

		ticket = t
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) || errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		u.log.Warnf("Failed to close ticket %s: %+v", ticketID, err)
		return nil, err
	}

	u.notifier.TicketClosed(ticket, appointment)
	u.log.Infof("Ticket closed: id=%s, status=%s", ticketID, ticket.Status)
	return converter.TicketToResponse(ticket), nil
}

// NowServing reports the most recently called serving number and the
// waiting count for a department today. No wait-time estimate is ever
// computed here.
func (u *windowUsecase) NowServing(ctx context.Context, departmentID int) (*dto.QueueNowResponse, error) {
	db := u.db.WithContext(ctx)

	department, err := u.departmentRepo.FindByID(db, departmentID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	epoch := entity.TicketEpoch(time.Now())
	nowServing, err := u.ticketRepo.NowServingNumber(db, departmentID, epoch)
	if err != nil {
		u.log.Warnf("Failed to query now-serving for department %d: %+v", departmentID, err)
		return nil, err
	}
	waiting, err := u.ticketRepo.CountWaiting(db, departmentID, epoch)
	if err != nil {
		u.log.Warnf("Failed to count waiting tickets for department %d: %+v", departmentID, err)
		return nil, err
	}

	return &dto.QueueNowResponse{
		DepartmentID: departmentID,
		Date:         epoch,
		NowServing:   nowServing,
		Waiting:      waiting,
	}, nil
}

func (u *windowUsecase) CurrentForWindow(ctx context.Context, windowID int) (*dto.TicketResponse, error) {
	db := u.db.WithContext(ctx)

	window, err := u.windowRepo.FindByID(db, windowID)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, ErrOfficeWindowNotFound
	}

	ticket, err := u.ticketRepo.FindServingByWindow(db, windowID)
	if err != nil {
		u.log.Warnf("Failed to find serving ticket for window %d: %+v", windowID, err)
		return nil, err
	}
	if ticket == nil {
		return nil, nil
	}
	return converter.TicketToResponse(ticket), nil
}
