package models

import "time"

// Category gruppiert Produkte; der Name ist Teil der Volltextsuche.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name string `json:"name" gorm:"not null;default:''"`
	Slug string `json:"slug" gorm:"index;not null;default:''"`

	Products []Product `json:"products,omitempty"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Category) TableName() string {
	return "categories"
}
