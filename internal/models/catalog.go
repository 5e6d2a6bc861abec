package models

import "time"

// Category is seeded reference data a product can be filed under.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Tag is seeded reference data a product can be labelled with.
type Tag struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductCategory links a product to one category.
type ProductCategory struct {
	ProductID  string    `json:"product_id" gorm:"primaryKey;type:varchar(36)"`
	CategoryID string    `json:"category_id" gorm:"primaryKey;type:varchar(36)"`
	Product    *Product  `json:"-" gorm:"foreignKey:ProductID"`
	Category   *Category `json:"-" gorm:"foreignKey:CategoryID"`
}

// ProductTag links a product to one tag.
type ProductTag struct {
	ProductID string   `json:"product_id" gorm:"primaryKey;type:varchar(36)"`
	TagID     string   `json:"tag_id" gorm:"primaryKey;type:varchar(36)"`
	Product   *Product `json:"-" gorm:"foreignKey:ProductID"`
	Tag       *Tag     `json:"-" gorm:"foreignKey:TagID"`
}
