package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"storefront/models"
)

// AuthInput ist der Body von Registrierung und Login.
type AuthInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// RefreshInput ist der Body der Token-Erneuerung.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthUser sind die Nutzerfelder, die mit den Tokens ausgeliefert werden.
type AuthUser struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// AuthResult ist die Antwort von Registrierung, Login und Token-Erneuerung.
type AuthResult struct {
	User AuthUser `json:"user"`
	TokenPair
}

// AuthService registriert und authentifiziert Nutzer.
type AuthService struct {
	DB       *gorm.DB
	Tokens   *TokenManager
	Logger   *zap.Logger
	HashCost int
}

// NewAuthService erstellt einen AuthService mit bcrypt.DefaultCost.
func NewAuthService(db *gorm.DB, tokens *TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{DB: db, Tokens: tokens, Logger: logger, HashCost: bcrypt.DefaultCost}
}

// Register legt einen Nutzer an und meldet ihn direkt an.
func (s *AuthService) Register(ctx context.Context, in AuthInput) (*AuthResult, error) {
	db := s.DB.WithContext(ctx)
	email := normalizeEmail(in.Email)

	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing > 0 {
		return nil, fmt.Errorf("register %s: %w", email, ErrUserExists)
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{Email: email, Password: hash, Name: displayName(email)}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.Logger.Info("User registered", zap.Uint("user_id", user.ID))
	return s.result(&user)
}

// Login prüft E-Mail und Passwort.
func (s *AuthService) Login(ctx context.Context, in AuthInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)

	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("login %s: %w", email, ErrUserNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, fmt.Errorf("login %s: %w", email, ErrInvalidCredentials)
	}
	return s.result(&user)
}

// Refresh stellt für ein gültiges Refresh-Token ein neues Token-Paar aus.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	id, err := s.Tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nutzer wurde nach Ausstellung des Tokens gelöscht.
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return s.result(&user)
}

func (s *AuthService) result(user *models.User) (*AuthResult, error) {
	tokens, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return &AuthResult{
		User:      AuthUser{ID: user.ID, Email: user.Email, IsAdmin: user.IsAdmin},
		TokenPair: tokens,
	}, nil
}

func (s *AuthService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.HashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func displayName(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
