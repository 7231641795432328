package domain

// CollectorProfile holds a collector's service parameters. One profile per
// user; created in the same transaction as the owning user.
type CollectorProfile struct {
	ID               uint       `gorm:"column:id;primaryKey" json:"id"`
	UserID           uint       `gorm:"column:user_id;uniqueIndex;not null" json:"user_id"`
	Location         string     `gorm:"column:location;not null;index" json:"location"`
	PriceMin         int        `gorm:"column:price_min;not null" json:"price_min"`
	PriceMax         int        `gorm:"column:price_max;not null" json:"price_max"`
	WorkingDays      StringList `gorm:"column:working_days;type:text;not null" json:"working_days"`
	WasteTypes       StringList `gorm:"column:waste_types;type:text;not null" json:"waste_types"`
	QuantityAccepted StringList `gorm:"column:quantity_accepted;type:text;not null" json:"quantity_accepted"`
	WhatsappNumber   *string    `gorm:"column:whatsapp_number" json:"whatsapp_number"`
	AverageRating    float64    `gorm:"column:average_rating;default:0" json:"average_rating"`
	Status           string     `gorm:"column:status;type:varchar(20);not null;default:'OFFLINE';index" json:"status"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (CollectorProfile) TableName() string {
	return "collector_profiles"
}
