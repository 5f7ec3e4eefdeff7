package repository

import (
	"city-services-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type ScheduleWindowRepository interface {
	CreateBatch(db *gorm.DB, windows []entity.ScheduleWindow) error
	FindByServiceID(db *gorm.DB, serviceID int) ([]entity.ScheduleWindow, error)
	// FindByWeekday returns the windows of a service on a weekday,
	// ordered by start time. Validity ranges are not filtered here;
	// callers apply ScheduleWindow.AppliesOn for the concrete date.
	FindByWeekday(db *gorm.DB, serviceID int, weekday int) ([]entity.ScheduleWindow, error)
	FindAll(db *gorm.DB, departmentID, serviceID *int) ([]entity.ScheduleWindow, error)
	Exists(db *gorm.DB, serviceID, weekday int, startTime, endTime string) (bool, error)
}
