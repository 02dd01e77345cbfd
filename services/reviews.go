package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/models"
)

// ReviewInput ist der Body einer neuen Bewertung.
type ReviewInput struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Text   string `json:"text" binding:"required"`
}

// AverageRating ist der Durchschnitt der Bewertungen eines Produkts;
// ohne Bewertungen ist Rating nil.
type AverageRating struct {
	Rating *float64 `json:"rating"`
}

// ReviewService verwaltet Produktbewertungen.
type ReviewService struct {
	DB       *gorm.DB
	Logger   *zap.Logger
	Products *ProductService
}

// NewReviewService erstellt einen ReviewService.
func NewReviewService(db *gorm.DB, products *ProductService, logger *zap.Logger) *ReviewService {
	return &ReviewService{DB: db, Products: products, Logger: logger}
}

// All liefert alle Bewertungen, neueste zuerst.
func (s *ReviewService) All(ctx context.Context) ([]models.Review, error) {
	reviews := []models.Review{}
	err := s.DB.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Order("id desc").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	return reviews, nil
}

// Create speichert die Bewertung eines Nutzers für ein vorhandenes Produkt.
func (s *ReviewService) Create(ctx context.Context, userID, productID uint, in ReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("rating %d: %w", in.Rating, ErrInvalidInput)
	}
	var product models.Product
	if err := s.DB.WithContext(ctx).Select("id").First(&product, productID).Error; err != nil {
		return nil, notFound("product", err)
	}

	review := models.Review{Rating: in.Rating, Text: in.Text, UserID: userID, ProductID: productID}
	if err := s.DB.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	// Der Bewertungsfilter der Produktsuche hängt an den Reviews.
	s.Products.InvalidateList(ctx)
	s.Logger.Info("Review created", zap.Uint("product_id", productID), zap.Uint("user_id", userID), zap.Int("rating", in.Rating))
	return &review, nil
}

// AverageByProduct berechnet die durchschnittliche Bewertung eines Produkts.
func (s *ReviewService) AverageByProduct(ctx context.Context, productID uint) (*AverageRating, error) {
	var row struct{ Avg *float64 }
	err := s.DB.WithContext(ctx).
		Model(&models.Review{}).
		Select("AVG(rating) AS avg").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	return &AverageRating{Rating: row.Avg}, nil
}
