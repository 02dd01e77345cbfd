package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/models"
)

// CategoryInput ist der Body beim Umbenennen einer Kategorie.
type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// CategoryService verwaltet die Produktkategorien.
type CategoryService struct {
	DB       *gorm.DB
	Logger   *zap.Logger
	Products *ProductService
}

// NewCategoryService erstellt einen CategoryService.
func NewCategoryService(db *gorm.DB, products *ProductService, logger *zap.Logger) *CategoryService {
	return &CategoryService{DB: db, Products: products, Logger: logger}
}

// All liefert alle Kategorien.
func (s *CategoryService) All(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.DB.WithContext(ctx).Order("id asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	return categories, nil
}

// ByID liefert eine Kategorie.
func (s *CategoryService) ByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, notFound("category", err)
	}
	return &category, nil
}

// BySlug liefert eine Kategorie anhand ihres Slugs.
func (s *CategoryService) BySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := s.DB.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, notFound("category", err)
	}
	return &category, nil
}

// Create legt eine leere Kategorie an.
func (s *CategoryService) Create(ctx context.Context) (*models.Category, error) {
	category := models.Category{}
	if err := s.DB.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// Update benennt eine Kategorie um und erzeugt den Slug neu.
func (s *CategoryService) Update(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	category, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = in.Name
	category.Slug = GenerateSlug(in.Name)
	if err := s.DB.WithContext(ctx).Save(category).Error; err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	// Der Kategoriename ist Teil der Produktsuche.
	s.Products.InvalidateList(ctx)
	return category, nil
}

// Delete löscht eine Kategorie; ihre Produkte werden zu Entwürfen ohne Kategorie.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return notFound("category", err)
		}
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach products: %w", err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.Products.InvalidateList(ctx)
	return nil
}
