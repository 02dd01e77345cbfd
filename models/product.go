package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product ist ein Artikel des Katalogs. Frisch angelegte Entwürfe haben
// noch keine Kategorie, daher ist CategoryID optional.
type Product struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name        string                      `json:"name" gorm:"not null;default:''"`
	Slug        string                      `json:"slug" gorm:"index;not null;default:''"`
	Description string                      `json:"description" gorm:"type:text;not null;default:''"`
	Price       int                         `json:"price" gorm:"not null;default:0;index"`
	Images      datatypes.JSONSlice[string] `json:"images"`

	CategoryID *uint     `json:"categoryId" gorm:"index"`
	Category   *Category `json:"category,omitempty"`
	Reviews    []Review  `json:"reviews,omitempty"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Product) TableName() string {
	return "products"
}
