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

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Service").Preload("Department").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Service").Preload("Department").
		Where("user_id = ?", userID).
		Order("slot_start DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindCurrentByUserID(db *gorm.DB, userID uuid.UUID, now time.Time) (*entity.Appointment, error) {
	var appointment entity.Appointment
	live := []entity.AppointmentStatus{
		entity.AppointmentStatusBooked,
		entity.AppointmentStatusCheckedIn,
		entity.AppointmentStatusServing,
	}
	err := db.Preload("Service").Preload("Department").
		Where("user_id = ? AND status IN ? AND slot_end >= ?", userID, live, now).
		Order("slot_start ASC").
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) CountBookedInRange(db *gorm.DB, serviceID int, start, end time.Time) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("service_id = ? AND slot_start >= ? AND slot_start < ? AND status != ?",
			serviceID, start, end, entity.AppointmentStatusCancelled).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) HasActiveBooking(db *gorm.DB, userID uuid.UUID, serviceID int, slotStart time.Time) (bool, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("user_id = ? AND service_id = ? AND slot_start = ? AND status != ?",
			userID, serviceID, slotStart, entity.AppointmentStatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) error {
	return db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Service", "Department").Save(appointment).Error
}
