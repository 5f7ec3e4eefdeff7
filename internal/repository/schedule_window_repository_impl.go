package repository

import (
	"city-services-backend/internal/domain/entity"
	domainRepo "city-services-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type scheduleWindowRepository struct{}

func NewScheduleWindowRepository() domainRepo.ScheduleWindowRepository {
	return &scheduleWindowRepository{}
}

func (r *scheduleWindowRepository) CreateBatch(db *gorm.DB, windows []entity.ScheduleWindow) error {
	return db.Create(&windows).Error
}

func (r *scheduleWindowRepository) FindByServiceID(db *gorm.DB, serviceID int) ([]entity.ScheduleWindow, error) {
	var windows []entity.ScheduleWindow
	err := db.Where("service_id = ?", serviceID).
		Order("weekday ASC, start_time ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *scheduleWindowRepository) FindByWeekday(db *gorm.DB, serviceID int, weekday int) ([]entity.ScheduleWindow, error) {
	var windows []entity.ScheduleWindow
	err := db.Where("service_id = ? AND weekday = ?", serviceID, weekday).
		Order("start_time ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *scheduleWindowRepository) FindAll(db *gorm.DB, departmentID, serviceID *int) ([]entity.ScheduleWindow, error) {
	var windows []entity.ScheduleWindow
	query := db.Joins("JOIN services ON services.id = schedule_windows.service_id")
	if departmentID != nil {
		query = query.Where("services.department_id = ?", *departmentID)
	}
	if serviceID != nil {
		query = query.Where("schedule_windows.service_id = ?", *serviceID)
	}
	err := query.
		Order("schedule_windows.service_id ASC, schedule_windows.weekday ASC, schedule_windows.start_time ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *scheduleWindowRepository) Exists(db *gorm.DB, serviceID, weekday int, startTime, endTime string) (bool, error) {
	var count int64
	err := db.Model(&entity.ScheduleWindow{}).
		Where("service_id = ? AND weekday = ? AND start_time = ? AND end_time = ?",
			serviceID, weekday, startTime, endTime).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
