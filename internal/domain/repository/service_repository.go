package repository

import (
	"city-services-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type ServiceRepository interface {
	Create(db *gorm.DB, service *entity.Service) error
	FindByID(db *gorm.DB, id int) (*entity.Service, error)
	// FindByIDForUpdate takes a row lock on the service, serializing
	// concurrent bookings for it within the surrounding transaction.
	FindByIDForUpdate(db *gorm.DB, id int) (*entity.Service, error)
	FindByName(db *gorm.DB, name string) (*entity.Service, error)
	FindActive(db *gorm.DB, departmentID *int) ([]entity.Service, error)
	Update(db *gorm.DB, service *entity.Service) error
}
