package entity

// Department is reference data owned by administrators. The core only
// reads it for enrichment and foreign keys.
type Department struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}
