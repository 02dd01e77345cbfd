package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/config"
	"storefront/models"
	"storefront/services"
	"storefront/storage"
)

// SeedConfig steuert Umfang und Admin-Zugang der Testdaten.
type SeedConfig struct {
	Products      int    `envconfig:"SEED_PRODUCTS" default:"10"`
	Seed          uint64 `envconfig:"SEED_RANDOM" default:"42"`
	AdminEmail    string `envconfig:"SEED_ADMIN_EMAIL" default:"admin@storefront.local"`
	AdminPassword string `envconfig:"SEED_ADMIN_PASSWORD" default:"admin123"`
}

var (
	adjectives  = []string{"Handcrafted", "Ergonomic", "Rustic", "Sleek", "Practical", "Refined", "Gorgeous", "Small"}
	materials   = []string{"Wooden", "Steel", "Cotton", "Granite", "Plastic", "Rubber", "Bronze", "Leather"}
	nouns       = []string{"Chair", "Lamp", "Phone", "Keyboard", "Table", "Shoes", "Gloves", "Bike"}
	departments = []string{"Electronics", "Home", "Garden", "Sports", "Outdoors", "Books", "Toys"}
	reviewTexts = []string{
		"Does exactly what it should.",
		"Arrived late but works fine.",
		"Not worth the price.",
		"Great quality, would buy again.",
		"Average product, nothing special.",
	}
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}
	var seedCfg SeedConfig
	if err := envconfig.Process("", &seedCfg); err != nil {
		logging.Fatal("Seed config load error", zap.Error(err))
	}

	db, err := storage.OpenPostgres(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := storage.Migrate(db); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}

	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	auth := services.NewAuthService(db, tokens, logging)

	ctx := context.Background()
	admin, err := ensureAdmin(ctx, db, auth, seedCfg.AdminEmail, seedCfg.AdminPassword)
	if err != nil {
		logging.Fatal("Failed to seed admin", zap.Error(err))
	}
	logging.Info("Admin ready", zap.String("email", admin.Email))

	rng := rand.New(rand.NewPCG(seedCfg.Seed, seedCfg.Seed))
	n, err := createProducts(ctx, db, rng, admin.ID, seedCfg.Products)
	if err != nil {
		logging.Fatal("Failed to seed products", zap.Int("created", n), zap.Error(err))
	}
	logging.Info("Seeding completed", zap.Int("products", n))
}

// ensureAdmin legt den Admin an oder liefert den bestehenden.
func ensureAdmin(ctx context.Context, db *gorm.DB, auth *services.AuthService, email, password string) (*models.User, error) {
	res, err := auth.Register(ctx, services.AuthInput{Email: email, Password: password})
	if err != nil && !errors.Is(err, services.ErrUserExists) {
		return nil, err
	}

	var admin models.User
	q := db.WithContext(ctx).Where("email = ?", email)
	if res != nil {
		q = db.WithContext(ctx).Where("id = ?", res.User.ID)
	}
	if err := q.First(&admin).Error; err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if !admin.IsAdmin {
		if err := db.WithContext(ctx).Model(&admin).Update("is_admin", true).Error; err != nil {
			return nil, fmt.Errorf("promote admin: %w", err)
		}
		admin.IsAdmin = true
	}
	return &admin, nil
}

// createProducts legt n Produkte mit je einer Kategorie und drei
// Bewertungen des Autors an.
func createProducts(ctx context.Context, db *gorm.DB, rng *rand.Rand, authorID uint, n int) (int, error) {
	created := 0
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s %s %s", pick(rng, adjectives), pick(rng, materials), pick(rng, nouns))
		department := pick(rng, departments)

		images := make([]string, 2+rng.IntN(2))
		for j := range images {
			images[j] = fmt.Sprintf("/uploads/products/%s-%d.jpg", services.GenerateSlug(name), j+1)
		}

		product := models.Product{
			Name:        name,
			Slug:        services.GenerateSlug(name),
			Description: fmt.Sprintf("The %s is a %s classic.", name, department),
			Price:       10 + rng.IntN(990),
			Images:      images,
			Category: &models.Category{
				Name: department,
				Slug: services.GenerateSlug(department),
			},
		}
		for j := 0; j < 3; j++ {
			product.Reviews = append(product.Reviews, models.Review{
				Rating: 1 + rng.IntN(5),
				Text:   pick(rng, reviewTexts),
				UserID: authorID,
			})
		}
		if err := db.WithContext(ctx).Create(&product).Error; err != nil {
			return created, fmt.Errorf("create product %q: %w", name, err)
		}
		created++
	}
	return created, nil
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}
