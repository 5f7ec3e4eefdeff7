package entity

import "time"

// OfficeWindow is a staffed serving counter. Only staff mutate it, by
// opening/closing it or pulling the next ticket.
type OfficeWindow struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DepartmentID int       `gorm:"not null;uniqueIndex:ux_office_windows_dept_name" json:"department_id"`
	Name         string    `gorm:"type:varchar(100);not null;uniqueIndex:ux_office_windows_dept_name" json:"name"`
	IsOpen       *bool     `gorm:"not null;default:false" json:"is_open"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Department Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (OfficeWindow) TableName() string {
	return "office_windows"
}

// Open reports whether the window is currently serving.
func (w *OfficeWindow) Open() bool {
	return w.IsOpen != nil && *w.IsOpen
}
