package repository

import (
	"city-services-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
}
