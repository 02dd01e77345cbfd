package models

import "time"

// OrderStatus bildet den Lebenszyklus einer Bestellung ab.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPayed     OrderStatus = "PAYED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
)

// Valid meldet, ob der Status bekannt ist.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPayed, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// Order ist eine Bestellung eines Nutzers mit ihren Positionen.
type Order struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	Status OrderStatus `json:"status" gorm:"type:varchar(16);not null;default:'PENDING'"`
	Items  []OrderItem `json:"items"`

	UserID uint  `json:"userId" gorm:"index;not null"`
	User   *User `json:"user,omitempty"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (Order) TableName() string {
	return "orders"
}

// OrderItem ist eine Position einer Bestellung. Der Preis wird zum
// Bestellzeitpunkt festgehalten.
type OrderItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Quantity int `json:"quantity" gorm:"not null"`
	Price    int `json:"price" gorm:"not null"`

	OrderID   uint     `json:"orderId" gorm:"index;not null"`
	ProductID uint     `json:"productId" gorm:"index;not null"`
	Product   *Product `json:"product,omitempty"`
}

// TableName gibt den expliziten Tabellennamen für GORM an.
func (OrderItem) TableName() string {
	return "order_items"
}
