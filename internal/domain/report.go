package domain

import (
	"time"
)

// DumpReport is a resident-filed incident report of illegal dumping. Reports
// are never deleted; only their status is mutated, by the report owner.
type DumpReport struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	ImageURL    string    `gorm:"column:image_url;not null" json:"image_url"`
	Location    string    `gorm:"column:location;not null" json:"location"`
	Description *string   `gorm:"column:description" json:"description"`
	WasteType   string    `gorm:"column:waste_type;type:varchar(20);not null" json:"waste_type"`
	Severity    string    `gorm:"column:severity;type:varchar(20);not null" json:"severity"`
	Status      string    `gorm:"column:status;type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at;index" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (DumpReport) TableName() string {
	return "illegal_dump_reports"
}
