package repository

import (
	"errors"
	"time"

	"city-services-backend/internal/domain/entity"
	domainRepo "city-services-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type queueTicketRepository struct{}

func NewQueueTicketRepository() domainRepo.QueueTicketRepository {
	return &queueTicketRepository{}
}

func (r *queueTicketRepository) Create(db *gorm.DB, ticket *entity.QueueTicket) error {
	return db.Create(ticket).Error
}

func (r *queueTicketRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.QueueTicket, error) {
	var ticket entity.QueueTicket
	err := db.Where("id = ?", id).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *queueTicketRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.QueueTicket, error) {
	var ticket entity.QueueTicket
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *queueTicketRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.QueueTicket, error) {
	var ticket entity.QueueTicket
	err := db.Where("appointment_id = ?", appointmentID).
		Order("created_at DESC").
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

// NextNumber increments the (department, date) counter row in place and
// returns the new value. The upsert's row lock serializes concurrent
// check-ins for the same epoch, so numbers come out dense from 1.
func (r *queueTicketRepository) NextNumber(db *gorm.DB, departmentID int, date time.Time) (int, error) {
	counter := entity.TicketCounter{
		DepartmentID: departmentID,
		Date:         date,
		LastNumber:   1,
	}
	err := db.Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "department_id"}, {Name: "date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"last_number": gorm.Expr("ticket_counters.last_number + 1"),
			}),
		},
		clause.Returning{},
	).Create(&counter).Error
	if err != nil {
		return 0, err
	}
	return counter.LastNumber, nil
}

func (r *queueTicketRepository) FindNextWaitingForUpdate(db *gorm.DB, departmentID int, date time.Time) (*entity.QueueTicket, error) {
	var ticket entity.QueueTicket
	err := db.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("department_id = ? AND date = ? AND status = ?",
			departmentID, date, entity.TicketStatusWaiting).
		Order("created_at ASC, number ASC").
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *queueTicketRepository) FindServingByWindow(db *gorm.DB, windowID int) (*entity.QueueTicket, error) {
	var ticket entity.QueueTicket
	err := db.Where("window_id = ? AND status = ?", windowID, entity.TicketStatusServing).
		Order("called_at DESC").
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *queueTicketRepository) NowServingNumber(db *gorm.DB, departmentID int, date time.Time) (*int, error) {
	var ticket entity.QueueTicket
	err := db.Select("number").
		Where("department_id = ? AND date = ? AND status = ?",
			departmentID, date, entity.TicketStatusServing).
		Order("called_at DESC").
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ticket.Number, nil
}

func (r *queueTicketRepository) CountWaiting(db *gorm.DB, departmentID int, date time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.QueueTicket{}).
		Where("department_id = ? AND date = ? AND status = ?",
			departmentID, date, entity.TicketStatusWaiting).
		Count(&count).Error
	return count, err
}

func (r *queueTicketRepository) Update(db *gorm.DB, ticket *entity.QueueTicket) error {
	return db.Omit("Department", "Window").Save(ticket).Error
}
