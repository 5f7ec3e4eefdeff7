package repository

import (
	"time"

	"city-services-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QueueTicketRepository interface {
	Create(db *gorm.DB, ticket *entity.QueueTicket) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.QueueTicket, error)
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.QueueTicket, error)
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.QueueTicket, error)
	// NextNumber atomically allocates the next sequential number for the
	// (department, date) epoch via a counter-row upsert. The increment
	// holds the counter's row lock until the transaction ends.
	NextNumber(db *gorm.DB, departmentID int, date time.Time) (int, error)
	// FindNextWaitingForUpdate selects the oldest waiting ticket for a
	// department/day with FOR UPDATE SKIP LOCKED, so two counters never
	// pull the same ticket. Returns nil when the queue is empty.
	FindNextWaitingForUpdate(db *gorm.DB, departmentID int, date time.Time) (*entity.QueueTicket, error)
	FindServingByWindow(db *gorm.DB, windowID int) (*entity.QueueTicket, error)
	NowServingNumber(db *gorm.DB, departmentID int, date time.Time) (*int, error)
	CountWaiting(db *gorm.DB, departmentID int, date time.Time) (int64, error)
	Update(db *gorm.DB, ticket *entity.QueueTicket) error
}
