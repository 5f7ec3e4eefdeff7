package usecase

import (
	"context"
	"errors"
	"time"

	"city-services-backend/internal/converter"
	"city-services-backend/internal/delivery/dto"
	"city-services-backend/internal/domain/entity"
	"city-services-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM")
	ErrInvalidTimeRange  = errors.New("start_time must be before end_time")
	ErrInvalidWeekday    = errors.New("weekday must be between 0 (Monday) and 6 (Sunday)")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrWindowExists      = errors.New("an identical schedule window already exists")
	ErrEmptyWindowBatch  = errors.New("empty schedule window payload")
)

type ScheduleUsecase interface {
	ListWindows(ctx context.Context, serviceID int) (*dto.WindowListResponse, error)
	ListAllWindows(ctx context.Context, departmentID, serviceID *int) (*dto.WindowListResponse, error)
	CreateWindows(ctx context.Context, reqs []dto.CreateWindowRequest) (*dto.WindowListResponse, error)
	// ResolveForDate returns the windows of a service that apply on the
	// given calendar date: weekday match plus inclusive validity range.
	ResolveForDate(ctx context.Context, serviceID int, day time.Time) (*entity.Service, []entity.ScheduleWindow, error)
}

type scheduleUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	windowRepo  repository.ScheduleWindowRepository
	serviceRepo repository.ServiceRepository
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	windowRepo repository.ScheduleWindowRepository,
	serviceRepo repository.ServiceRepository,
) ScheduleUsecase {
	return &scheduleUsecase{
		db:          db,
		log:         log,
		windowRepo:  windowRepo,
		serviceRepo: serviceRepo,
	}
}

func (u *scheduleUsecase) ListWindows(ctx context.Context, serviceID int) (*dto.WindowListResponse, error) {
	db := u.db.WithContext(ctx)

	svc, err := u.serviceRepo.FindByID(db, serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", serviceID, err)
		return nil, err
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}

	windows, err := u.windowRepo.FindByServiceID(db, serviceID)
	if err != nil {
		u.log.Warnf("Failed to list windows for service %d: %+v", serviceID, err)
		return nil, err
	}

	return &dto.WindowListResponse{
		Windows: converter.WindowsToResponses(windows),
		Total:   len(windows),
	}, nil
}

func (u *scheduleUsecase) ListAllWindows(ctx context.Context, departmentID, serviceID *int) (*dto.WindowListResponse, error) {
	windows, err := u.windowRepo.FindAll(u.db.WithContext(ctx), departmentID, serviceID)
	if err != nil {
		u.log.Warnf("Failed to list schedule windows: %+v", err)
		return nil, err
	}

	return &dto.WindowListResponse{
		Windows: converter.WindowsToResponses(windows),
		Total:   len(windows),
	}, nil
}

// CreateWindows validates and inserts a batch of recurring windows.
// Windows are additive; overlapping ranges on the same weekday are
// accepted, only the exact (service, weekday, start, end) tuple is unique.
func (u *scheduleUsecase) CreateWindows(ctx context.Context, reqs []dto.CreateWindowRequest) (*dto.WindowListResponse, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyWindowBatch
	}

	db := u.db.WithContext(ctx)
	windows := make([]entity.ScheduleWindow, 0, len(reqs))

	for _, req := range reqs {
		if req.Weekday < 0 || req.Weekday > 6 {
			return nil, ErrInvalidWeekday
		}
		start, err := entity.ClockTime(req.StartTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		end, err := entity.ClockTime(req.EndTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		if start >= end {
			return nil, ErrInvalidTimeRange
		}

		svc, err := u.serviceRepo.FindByID(db, req.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc == nil {
			return nil, ErrServiceNotFound
		}

		window := entity.ScheduleWindow{
			ServiceID:       req.ServiceID,
			Weekday:         req.Weekday,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			SlotMinutes:     req.SlotMinutes,
			CapacityPerSlot: req.CapacityPerSlot,
			Timezone:        req.Timezone,
		}
		if req.ValidFrom != "" {
			from, err := time.Parse("2006-01-02", req.ValidFrom)
			if err != nil {
				return nil, ErrInvalidDateFormat
			}
			window.ValidFrom = &from
		}
		if req.ValidTo != "" {
			to, err := time.Parse("2006-01-02", req.ValidTo)
			if err != nil {
				return nil, ErrInvalidDateFormat
			}
			window.ValidTo = &to
		}

		exists, err := u.windowRepo.Exists(db, req.ServiceID, req.Weekday, req.StartTime, req.EndTime)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrWindowExists
		}

		windows = append(windows, window)
	}

	if err := u.windowRepo.CreateBatch(db, windows); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrWindowExists
		}
		u.log.Warnf("Failed to create schedule windows: %+v", err)
		return nil, err
	}

	u.log.Infof("Schedule windows created: count=%d", len(windows))
	return &dto.WindowListResponse{
		Windows: converter.WindowsToResponses(windows),
		Total:   len(windows),
	}, nil
}

func (u *scheduleUsecase) ResolveForDate(ctx context.Context, serviceID int, day time.Time) (*entity.Service, []entity.ScheduleWindow, error) {
	db := u.db.WithContext(ctx)

	svc, err := u.serviceRepo.FindByID(db, serviceID)
	if err != nil {
		u.log.Warnf("Failed to find service %d: %+v", serviceID, err)
		return nil, nil, err
	}
	if svc == nil || !svc.Active() {
		return nil, nil, ErrServiceNotFound
	}

	all, err := u.windowRepo.FindByWeekday(db, serviceID, entity.WeekdayOf(day))
	if err != nil {
		u.log.Warnf("Failed to resolve windows for service %d on %s: %+v",
			serviceID, day.Format("2006-01-02"), err)
		return nil, nil, err
	}

	windows := make([]entity.ScheduleWindow, 0, len(all))
	for _, w := range all {
		if w.AppliesOn(day) {
			windows = append(windows, w)
		}
	}

	return svc, windows, nil
}
