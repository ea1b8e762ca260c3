package models

import "gorm.io/gorm"

// Category groups items on the POS screen.
type Category struct {
	CategoryID  string `json:"category_id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string `json:"name" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
	BgColor     string `json:"bg_color"`
	ImageURL    string `json:"image_url"`
	gorm.Model  `json:"-"`
}

// Item is a sellable catalog entry. Orders snapshot its name and price at
// creation time; later catalog edits never touch historical orders.
type Item struct {
	ItemID      string  `json:"item_id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	CategoryID  string  `json:"category_id" gorm:"index;type:varchar(36)" validate:"required"`
	gorm.Model  `json:"-"`
}

// CategoryResponse is a category plus its live item count.
type CategoryResponse struct {
	Category
	Items int64 `json:"items"`
}
