package repository

import (
	"city-services-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	FindByID(db *gorm.DB, id int) (*entity.Department, error)
	FindAll(db *gorm.DB) ([]entity.Department, error)
}
