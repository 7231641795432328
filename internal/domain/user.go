package domain

import (
	"time"
)

// User is an identity record. A COLLECTOR user owns exactly one CollectorProfile.
type User struct {
	ID           uint      `gorm:"column:id;primaryKey" json:"id"`
	FullName     string    `gorm:"column:full_name;not null" json:"full_name"`
	Email        string    `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         string    `gorm:"column:role;type:varchar(20);not null" json:"role"`
	IsActive     bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`

	CollectorProfile *CollectorProfile `gorm:"foreignKey:UserID" json:"collector_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}
