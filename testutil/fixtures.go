package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"storefront/models"
)

// CreateCategory legt eine Kategorie an.
func CreateCategory(t *testing.T, db *gorm.DB, name, slug string) models.Category {
	t.Helper()

	c := models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(&c).Error, "failed to create test category")
	return c
}

// CreateUser legt einen Nutzer mit bereits gehashtem Passwort an.
func CreateUser(t *testing.T, db *gorm.DB, email string, admin bool) models.User {
	t.Helper()

	u := models.User{Email: email, Password: "hash", Name: "Test", IsAdmin: admin}
	require.NoError(t, db.Create(&u).Error, "failed to create test user")
	return u
}

// ProductFixture beschreibt ein Testprodukt samt Bewertungen.
type ProductFixture struct {
	Name        string
	Description string
	Price       int
	Category    *models.Category
	Ratings     []int
	Age         time.Duration
}

// CreateProduct legt ein Produkt an. Age verschiebt CreatedAt in die
// Vergangenheit, damit Sortierungen nach Datum deterministisch sind.
func CreateProduct(t *testing.T, db *gorm.DB, author models.User, f ProductFixture) models.Product {
	t.Helper()

	p := models.Product{
		Name:        f.Name,
		Slug:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		CreatedAt:   time.Now().Add(-f.Age),
	}
	if f.Category != nil {
		p.CategoryID = &f.Category.ID
	}
	require.NoError(t, db.Create(&p).Error, "failed to create test product")

	for _, r := range f.Ratings {
		review := models.Review{Rating: r, Text: "review", UserID: author.ID, ProductID: p.ID}
		require.NoError(t, db.Create(&review).Error, "failed to create test review")
	}
	return p
}
