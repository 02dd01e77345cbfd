package models

import "time"

// User ist ein registrierter Kunde oder Administrator des Shops.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Email      string `json:"email" gorm:"uniqueIndex;not null"`
	Password   string `json:"-" gorm:"not null"`
	Name       string `json:"name"`
	AvatarPath string `json:"avatarPath" gorm:"default:'/uploads/default-avatar.png'"`
	Phone      string `json:"phone" gorm:"default:''"`
	IsAdmin    bool   `json:"isAdmin" gorm:"default:false"`

	Favorites []Product `json:"favorites,omitempty" gorm:"many2many:user_favorites;"`
	Orders    []Order   `json:"orders,omitempty"`
	Reviews   []Review  `json:"reviews,omitempty"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (User) TableName() string {
	return "users"
}
