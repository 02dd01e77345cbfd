package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/models"
)

// Statistic ist eine Kennzahl des Dashboards.
type Statistic struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Summary fasst die Kennzahlen des Shops zusammen. TotalAmount ist die
// Summe aus Preis mal Menge über alle Bestellpositionen.
type Summary struct {
	Orders      int64
	Reviews     int64
	Users       int64
	Products    int64
	TotalAmount int64
}

// StatisticsService berechnet Kennzahlen für das Admin-Dashboard.
type StatisticsService struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewStatisticsService erstellt einen StatisticsService.
func NewStatisticsService(db *gorm.DB, logger *zap.Logger) *StatisticsService {
	return &StatisticsService{DB: db, Logger: logger}
}

// Summary zählt Bestellungen, Bewertungen, Nutzer und Produkte und
// summiert den Umsatz.
func (s *StatisticsService) Summary(ctx context.Context) (*Summary, error) {
	db := s.DB.WithContext(ctx)
	var sum Summary

	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.Order{}, &sum.Orders},
		{&models.Review{}, &sum.Reviews},
		{&models.User{}, &sum.Users},
		{&models.Product{}, &sum.Products},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("count statistics: %w", err)
		}
	}

	var row struct{ Total *int64 }
	err := db.Model(&models.OrderItem{}).
		Select("SUM(price * quantity) AS total").
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("sum order items: %w", err)
	}
	if row.Total != nil {
		sum.TotalAmount = *row.Total
	}
	return &sum, nil
}

// Main liefert die Kennzahlen in der Form des Dashboards.
func (s *StatisticsService) Main(ctx context.Context) ([]Statistic, error) {
	sum, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return []Statistic{
		{Name: "Orders", Value: sum.Orders},
		{Name: "Reviews", Value: sum.Reviews},
		{Name: "Users", Value: sum.Users},
		{Name: "Total amount", Value: sum.TotalAmount},
	}, nil
}
