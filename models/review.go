package models

import "time"

// Review ist eine Bewertung (1 bis 5 Sterne) eines Produkts durch einen Nutzer.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	Rating int    `json:"rating" gorm:"not null;index"`
	Text   string `json:"text" gorm:"type:text"`

	UserID    uint     `json:"userId" gorm:"index"`
	User      *User    `json:"user,omitempty"`
	ProductID uint     `json:"productId" gorm:"index;not null"`
	Product   *Product `json:"product,omitempty"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Review) TableName() string {
	return "reviews"
}
