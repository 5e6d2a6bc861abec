package models

import "time"

// Notification is a message addressed to a vendor about one of their products.
type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	VendorID  string    `json:"vendor_id" gorm:"type:varchar(36);index;not null"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);index;not null"`
	Product   *Product  `json:"-" gorm:"foreignKey:ProductID"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	IsRead    bool      `json:"is_read" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// All returns every model the service persists, in dependency order.
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Tag{},
		&Product{},
		&ProductCategory{},
		&ProductTag{},
		&Notification{},
	}
}
