package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/models"
)

// ProfileInput sind die änderbaren Felder eines Profils. Ein leeres
// Passwort lässt das bisherige unverändert.
type ProfileInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"omitempty,min=6"`
	Name       string `json:"name"`
	AvatarPath string `json:"avatarPath"`
	Phone      string `json:"phone"`
}

// Profile ist ein Nutzer samt Favoriten und Anzahl seiner Bestellungen.
type Profile struct {
	models.User
	OrdersCount int64 `json:"ordersCount"`
}

// UserService verwaltet Profile und Favoriten.
type UserService struct {
	DB     *gorm.DB
	Auth   *AuthService
	Logger *zap.Logger
}

// NewUserService erstellt einen UserService.
func NewUserService(db *gorm.DB, auth *AuthService, logger *zap.Logger) *UserService {
	return &UserService{DB: db, Auth: auth, Logger: logger}
}

// ByID liefert einen Nutzer ohne Relationen.
func (s *UserService) ByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound("user", err)
	}
	return &user, nil
}

// Profile liefert das Profil eines Nutzers.
func (s *UserService) Profile(ctx context.Context, id uint) (*Profile, error) {
	db := s.DB.WithContext(ctx)

	var profile Profile
	err := db.
		Preload("Favorites", func(db *gorm.DB) *gorm.DB {
			return db.Order("products.id asc")
		}).
		Preload("Favorites.Category").
		First(&profile.User, id).Error
	if err != nil {
		return nil, notFound("user", err)
	}
	if profile.Favorites == nil {
		profile.Favorites = []models.Product{}
	}
	if err := db.Model(&models.Order{}).Where("user_id = ?", id).Count(&profile.OrdersCount).Error; err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	return &profile, nil
}

// UpdateProfile überschreibt die Profildaten. Die E-Mail darf keinem
// anderen Nutzer gehören.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, in ProfileInput) (*models.User, error) {
	db := s.DB.WithContext(ctx)
	email := normalizeEmail(in.Email)

	user, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var taken int64
	if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken > 0 {
		return nil, fmt.Errorf("email %s: %w", email, ErrUserExists)
	}

	user.Email = email
	user.Name = in.Name
	user.AvatarPath = in.AvatarPath
	user.Phone = in.Phone
	if in.Password != "" {
		hash, err := s.Auth.hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// ToggleFavorite nimmt ein Produkt in die Favoriten auf oder entfernt es.
// Der Rückgabewert meldet, ob das Produkt danach Favorit ist.
func (s *UserService) ToggleFavorite(ctx context.Context, userID, productID uint) (bool, error) {
	db := s.DB.WithContext(ctx)

	user, err := s.ByID(ctx, userID)
	if err != nil {
		return false, err
	}
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		return false, notFound("product", err)
	}

	var existing int64
	err = db.Table("user_favorites").
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&existing).Error
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}

	association := db.Model(user).Association("Favorites")
	if existing > 0 {
		if err := association.Delete(&product); err != nil {
			return false, fmt.Errorf("remove favorite: %w", err)
		}
		return false, nil
	}
	if err := association.Append(&product); err != nil {
		return false, fmt.Errorf("add favorite: %w", err)
	}
	return true, nil
}
