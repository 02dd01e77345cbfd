package storage

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/models"
	"storefront/query"
)

const searchTermSQL = `(LOWER(products.name) LIKE ? ESCAPE '\' OR LOWER(products.description) LIKE ? ESCAPE '\' OR EXISTS (SELECT 1 FROM categories WHERE categories.id = products.category_id AND LOWER(categories.name) LIKE ? ESCAPE '\'))`

const ratingSQL = `EXISTS (SELECT 1 FROM reviews WHERE reviews.product_id = products.id AND reviews.rating IN ?)`

// ProductRepository liest Produktseiten und Trefferzahlen anhand eines
// query.Predicate.
type ProductRepository struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

// NewProductRepository erstellt ein neues ProductRepository.
func NewProductRepository(db *gorm.DB, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{DB: db, Logger: logger}
}

// FindProducts liefert höchstens pg.Take Produkte ab Offset pg.Skip.
func (r *ProductRepository) FindProducts(ctx context.Context, p query.Predicate, o query.Ordering, pg query.Pagination) ([]models.Product, error) {
	var products []models.Product
	err := ApplyPredicate(r.DB.WithContext(ctx).Model(&models.Product{}), p).
		Preload("Category").
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Order("reviews.created_at desc")
		}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "products", Name: o.Column}, Desc: o.Desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Table: "products", Name: "id"}, Desc: o.Desc}).
		Limit(pg.Take).
		Offset(pg.Skip).
		Find(&products).Error
	if err != nil {
		r.Logger.Error("Product page query failed", zap.Stringer("predicate", p), zap.Error(err))
		return nil, fmt.Errorf("find products: %w", err)
	}
	return products, nil
}

// CountProducts zählt alle Treffer unabhängig von Sortierung und Seite.
func (r *ProductRepository) CountProducts(ctx context.Context, p query.Predicate) (int64, error) {
	var n int64
	if err := ApplyPredicate(r.DB.WithContext(ctx).Model(&models.Product{}), p).Count(&n).Error; err != nil {
		r.Logger.Error("Product count query failed", zap.Stringer("predicate", p), zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// ApplyPredicate übersetzt jede Teilbedingung in eine WHERE-Klausel.
// Mehrere Where-Aufrufe verknüpft GORM mit AND.
func ApplyPredicate(db *gorm.DB, p query.Predicate) *gorm.DB {
	for _, c := range p {
		switch c.Kind {
		case query.KindSearchTerm:
			like := "%" + escapeLike(strings.ToLower(c.Term)) + "%"
			db = db.Where(searchTermSQL, like, like, like)
		case query.KindRating:
			db = db.Where(ratingSQL, c.Ratings)
		case query.KindPriceRange:
			if c.Min != nil {
				db = db.Where("products.price >= ?", *c.Min)
			}
			if c.Max != nil {
				db = db.Where("products.price <= ?", *c.Max)
			}
		case query.KindCategory:
			db = db.Where("products.category_id = ?", c.CategoryID)
		}
	}
	return db
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
