package entity

import "time"

// TicketCounter is the dedicated counter row behind queue numbering.
// It is only ever touched through an upsert that increments LastNumber
// under the row lock, which is what keeps numbers gap-free per epoch.
type TicketCounter struct {
	DepartmentID int       `gorm:"primaryKey" json:"department_id"`
	Date         time.Time `gorm:"type:date;primaryKey" json:"date"`
	LastNumber   int       `gorm:"not null" json:"last_number"`
}

func (TicketCounter) TableName() string {
	return "ticket_counters"
}
