package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/models"
)

// OrderItemInput ist eine Position beim Aufgeben einer Bestellung.
type OrderItemInput struct {
	Quantity  int  `json:"quantity" binding:"required,min=1"`
	Price     int  `json:"price" binding:"gte=0"`
	ProductID uint `json:"productId" binding:"required"`
}

// OrderInput ist der Body beim Aufgeben einer Bestellung.
type OrderInput struct {
	Status models.OrderStatus `json:"status"`
	Items  []OrderItemInput   `json:"items" binding:"required,min=1,dive"`
}

// OrderService verwaltet Bestellungen.
type OrderService struct {
	DB      *gorm.DB
	Logger  *zap.Logger
	OnPlace func(order *models.Order)
}

// NewOrderService erstellt einen OrderService. onPlace darf nil sein.
func NewOrderService(db *gorm.DB, logger *zap.Logger, onPlace func(*models.Order)) *OrderService {
	return &OrderService{DB: db, Logger: logger, OnPlace: onPlace}
}

// All liefert alle Bestellungen, neueste zuerst.
func (s *OrderService) All(ctx context.Context) ([]models.Order, error) {
	return s.find(ctx, s.DB.WithContext(ctx))
}

// ByUser liefert die Bestellungen eines Nutzers, neueste zuerst.
func (s *OrderService) ByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	return s.find(ctx, s.DB.WithContext(ctx).Where("user_id = ?", userID))
}

func (s *OrderService) find(ctx context.Context, db *gorm.DB) ([]models.Order, error) {
	orders := []models.Order{}
	err := db.
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Category").
		Order("created_at desc").
		Order("id desc").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	return orders, nil
}

// Place legt eine Bestellung samt Positionen in einer Transaktion an.
// Alle Produkte müssen existieren.
func (s *OrderService) Place(ctx context.Context, userID uint, in OrderInput) (*models.Order, error) {
	status := in.Status
	if status == "" {
		status = models.OrderPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("order status %q: %w", status, ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("order without items: %w", ErrInvalidInput)
	}

	order := models.Order{Status: status, UserID: userID}
	for _, item := range in.Items {
		if item.Quantity < 1 || item.Price < 0 {
			return nil, fmt.Errorf("order item for product %d: %w", item.ProductID, ErrInvalidInput)
		}
		order.Items = append(order.Items, models.OrderItem{
			Quantity:  item.Quantity,
			Price:     item.Price,
			ProductID: item.ProductID,
		})
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]uint, 0, len(order.Items))
		for _, item := range order.Items {
			ids = append(ids, item.ProductID)
		}
		var found int64
		if err := tx.Model(&models.Product{}).Where("id IN ?", ids).Count(&found).Error; err != nil {
			return err
		}
		if int(found) != countDistinct(ids) {
			return fmt.Errorf("ordered product: %w", ErrNotFound)
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.Logger.Info("Order placed", zap.Uint("order_id", order.ID), zap.Uint("user_id", userID), zap.Int("items", len(order.Items)))
	if s.OnPlace != nil {
		s.OnPlace(&order)
	}
	return &order, nil
}

func countDistinct(ids []uint) int {
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		seen[id] = struct{}{}
	}
	return len(seen)
}
