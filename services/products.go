package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"storefront/models"
	"storefront/query"
)

// ProductStore ist der Lesezugriff der Produktsuche auf die Datenbank.
type ProductStore interface {
	FindProducts(ctx context.Context, p query.Predicate, o query.Ordering, pg query.Pagination) ([]models.Product, error)
	CountProducts(ctx context.Context, p query.Predicate) (int64, error)
}

// ListCache puffert Ergebnisse der Produktsuche.
type ListCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context) error
}

// ProductPage ist eine Ergebnisseite; Length ist die Gesamtzahl aller Treffer.
type ProductPage struct {
	Products []models.Product `json:"products"`
	Length   int64            `json:"length"`
}

// ProductInput sind die änderbaren Felder eines Produkts.
type ProductInput struct {
	Name        string   `json:"name" binding:"required"`
	Price       int      `json:"price" binding:"gte=0"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	CategoryID  uint     `json:"categoryId" binding:"required"`
}

// ProductService bündelt Suche und Pflege des Produktkatalogs.
type ProductService struct {
	DB     *gorm.DB
	Store  ProductStore
	Cache  ListCache
	Logger *zap.Logger
}

// NewProductService erstellt einen ProductService. cache darf nil sein.
func NewProductService(db *gorm.DB, store ProductStore, cache ListCache, logger *zap.Logger) *ProductService {
	return &ProductService{DB: db, Store: store, Cache: cache, Logger: logger}
}

// List liefert eine gefilterte, sortierte Seite und die Gesamtzahl der
// Treffer. Beide Abfragen verwenden dasselbe Predicate.
func (s *ProductService) List(ctx context.Context, q query.ProductQuery) (*ProductPage, error) {
	predicate := query.Build(q)
	ordering := query.ResolveSort(query.ParseSortMode(q.Sort))
	pagination := query.Paginate(q.Page, q.Limit)

	key := listCacheKey(predicate, ordering, pagination)
	if s.Cache != nil {
		var cached ProductPage
		hit, err := s.Cache.Get(ctx, key, &cached)
		if err != nil {
			s.Logger.Warn("Product list cache read failed", zap.String("key", key), zap.Error(err))
		} else if hit {
			return &cached, nil
		}
	}

	page := &ProductPage{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		products, err := s.Store.FindProducts(gctx, predicate, ordering, pagination)
		page.Products = products
		return err
	})
	g.Go(func() error {
		n, err := s.Store.CountProducts(gctx, predicate)
		page.Length = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if page.Products == nil {
		page.Products = []models.Product{}
	}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, page); err != nil {
			s.Logger.Warn("Product list cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return page, nil
}

func listCacheKey(p query.Predicate, o query.Ordering, pg query.Pagination) string {
	return fmt.Sprintf("products:%s:%s:%t:%d:%d", p, o.Column, o.Desc, pg.Take, pg.Skip)
}

// ByID liefert ein Produkt mit Kategorie und Bewertungen.
func (s *ProductService) ByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.fullest(ctx).First(&product, id).Error; err != nil {
		return nil, notFound("product", err)
	}
	return &product, nil
}

// BySlug liefert alle Produkte mit dem Slug.
func (s *ProductService) BySlug(ctx context.Context, slug string) ([]models.Product, error) {
	var products []models.Product
	if err := s.fullest(ctx).Where("slug = ?", slug).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("find products by slug: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("product %q: %w", slug, ErrNotFound)
	}
	return products, nil
}

// ByCategory liefert alle Produkte einer Kategorie.
func (s *ProductService) ByCategory(ctx context.Context, categorySlug string) ([]models.Product, error) {
	var products []models.Product
	err := s.fullest(ctx).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.slug = ?", categorySlug).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("find products by category: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("products of category %q: %w", categorySlug, ErrNotFound)
	}
	return products, nil
}

// Similar liefert die übrigen Produkte derselben Kategorie, neueste zuerst.
func (s *ProductService) Similar(ctx context.Context, id uint) ([]models.Product, error) {
	current, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	products := []models.Product{}
	if current.CategoryID == nil {
		return products, nil
	}
	err = s.DB.WithContext(ctx).
		Preload("Category").
		Where("category_id = ? AND id <> ?", *current.CategoryID, current.ID).
		Order("created_at desc").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("find similar products: %w", err)
	}
	return products, nil
}

// Create legt einen leeren Entwurf an und gibt dessen ID zurück.
func (s *ProductService) Create(ctx context.Context) (uint, error) {
	product := models.Product{Images: []string{}}
	if err := s.DB.WithContext(ctx).Create(&product).Error; err != nil {
		return 0, fmt.Errorf("create product: %w", err)
	}
	s.invalidate(ctx)
	return product.ID, nil
}

// Update überschreibt ein Produkt. Die Kategorie muss existieren.
func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	db := s.DB.WithContext(ctx)

	var category models.Category
	if err := db.First(&category, in.CategoryID).Error; err != nil {
		return nil, notFound("category", err)
	}
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		return nil, notFound("product", err)
	}

	images := in.Images
	if images == nil {
		images = []string{}
	}
	product.Name = in.Name
	product.Slug = GenerateSlug(in.Name)
	product.Description = in.Description
	product.Price = in.Price
	product.Images = images
	product.CategoryID = &category.ID

	if err := db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	product.Category = &category
	s.invalidate(ctx)
	return &product, nil
}

// Delete entfernt ein Produkt samt Bewertungen und Favoriten-Verknüpfungen.
// Bereits bestellte Produkte bleiben erhalten (ErrProductOrdered).
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			return notFound("product", err)
		}
		// Bestellpositionen verweisen per Fremdschlüssel auf das Produkt.
		var ordered int64
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&ordered).Error; err != nil {
			return err
		}
		if ordered > 0 {
			return fmt.Errorf("product %d: %w", id, ErrProductOrdered)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM user_favorites WHERE product_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrProductOrdered) {
			return err
		}
		return fmt.Errorf("delete product: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// InvalidateList verwirft gecachte Produktlisten nach Änderungen an
// Kategorien oder Bewertungen.
func (s *ProductService) InvalidateList(ctx context.Context) {
	s.invalidate(ctx)
}

func (s *ProductService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		s.Logger.Warn("Product list cache invalidation failed", zap.Error(err))
	}
}

func (s *ProductService) fullest(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Preload("Category").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.created_at desc")
		}).
		Preload("Reviews.User")
}

// notFound übersetzt gorm.ErrRecordNotFound in ErrNotFound.
func notFound(what string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("find %s: %w", what, err)
}
