package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Listing is a marketplace offer posted by a resident. collector_id,
// reserved_at and sold_at are set only by status transitions and are all
// cleared whenever the listing reverts to AVAILABLE.
type Listing struct {
	ID          uint       `gorm:"column:id;primaryKey" json:"id"`
	ResidentID  uint       `gorm:"column:resident_id;not null;index" json:"resident_id"`
	CollectorID *uint      `gorm:"column:collector_id;index" json:"collector_id"`
	Title       string     `gorm:"column:title;not null" json:"title"`
	Description *string    `gorm:"column:description" json:"description"`
	WasteType   string     `gorm:"column:waste_type;type:varchar(20);not null;index" json:"waste_type"`
	Price       float64    `gorm:"column:price;not null" json:"price"`
	Quantity    string     `gorm:"column:quantity;type:varchar(10);not null" json:"quantity"`
	Location    string     `gorm:"column:location;not null;index" json:"location"`
	ImageURL    string     `gorm:"column:image_url;not null" json:"image_url"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;default:'AVAILABLE';index" json:"status"`
	CreatedAt   time.Time  `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
	ReservedAt  *time.Time `gorm:"column:reserved_at" json:"reserved_at"`
	SoldAt      *time.Time `gorm:"column:sold_at" json:"sold_at"`

	Resident  *User `gorm:"foreignKey:ResidentID" json:"-"`
	Collector *User `gorm:"foreignKey:CollectorID" json:"-"`
}

func (Listing) TableName() string {
	return "marketplace_listings"
}

// ListingEvent is an append-only audit record of listing lifecycle changes,
// written in the same transaction as the change itself.
type ListingEvent struct {
	ID        uint           `gorm:"column:id;primaryKey" json:"id"`
	ListingID uint           `gorm:"column:listing_id;not null;index" json:"listing_id"`
	EventType string         `gorm:"column:event_type;type:varchar(20);not null" json:"event_type"`
	EventData datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	ActorID   *uint          `gorm:"column:actor_id" json:"actor_id"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (ListingEvent) TableName() string {
	return "listing_events"
}
