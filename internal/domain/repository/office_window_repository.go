package repository

import (
	"city-services-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type OfficeWindowRepository interface {
	Create(db *gorm.DB, window *entity.OfficeWindow) error
	FindByID(db *gorm.DB, id int) (*entity.OfficeWindow, error)
	FindAll(db *gorm.DB, departmentID *int) ([]entity.OfficeWindow, error)
	NameExists(db *gorm.DB, departmentID int, name string, excludeID int) (bool, error)
	Update(db *gorm.DB, window *entity.OfficeWindow) error
}
