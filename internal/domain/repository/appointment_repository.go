package repository

import (
	"time"

	"city-services-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindByIDForUpdate locks the appointment row for the duration of
	// the surrounding transaction. Status transitions read through this
	// so concurrent check-in and cancel serialize.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Appointment, error)
	// FindCurrentByUserID returns the user's next live appointment:
	// booked/checked_in/serving with slot_end still in the future.
	FindCurrentByUserID(db *gorm.DB, userID uuid.UUID, now time.Time) (*entity.Appointment, error)
	// CountBookedInRange counts non-cancelled appointments of a service
	// whose slot_start falls in [start, end).
	CountBookedInRange(db *gorm.DB, serviceID int, start, end time.Time) (int64, error)
	// HasActiveBooking reports whether the user already holds a
	// non-cancelled appointment for the exact (service, slot_start).
	HasActiveBooking(db *gorm.DB, userID uuid.UUID, serviceID int, slotStart time.Time) (bool, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error
	Update(db *gorm.DB, appointment *entity.Appointment) error
}
