package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity projection this backend consumes. Account
// registration and credential management live in the identity service;
// rows here exist to attribute bookings and notifications.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'citizen'" json:"role"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	DepartmentID *int      `gorm:"index" json:"department_id,omitempty"`
	IsActive     *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (User) TableName() string {
	return "users"
}
