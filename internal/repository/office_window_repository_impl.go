package repository

import (
	"errors"

	"city-services-backend/internal/domain/entity"
	domainRepo "city-services-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type officeWindowRepository struct{}

func NewOfficeWindowRepository() domainRepo.OfficeWindowRepository {
	return &officeWindowRepository{}
}

func (r *officeWindowRepository) Create(db *gorm.DB, window *entity.OfficeWindow) error {
	return db.Create(window).Error
}

func (r *officeWindowRepository) FindByID(db *gorm.DB, id int) (*entity.OfficeWindow, error) {
	var window entity.OfficeWindow
	err := db.Where("id = ?", id).First(&window).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &window, nil
}

func (r *officeWindowRepository) FindAll(db *gorm.DB, departmentID *int) ([]entity.OfficeWindow, error) {
	var windows []entity.OfficeWindow
	query := db.Model(&entity.OfficeWindow{})
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	err := query.Order("department_id ASC, name ASC").Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *officeWindowRepository) NameExists(db *gorm.DB, departmentID int, name string, excludeID int) (bool, error) {
	var count int64
	query := db.Model(&entity.OfficeWindow{}).
		Where("department_id = ? AND name = ?", departmentID, name)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *officeWindowRepository) Update(db *gorm.DB, window *entity.OfficeWindow) error {
	return db.Omit("Department").Save(window).Error
}
