package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenPair ist das Ergebnis von Login, Registrierung und Token-Erneuerung.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Claims sind die Nutzdaten der ausgegebenen JWTs.
type Claims struct {
	ID   uint   `json:"id"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// TokenManager signiert und prüft HS256-Tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenManager erstellt einen TokenManager.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// Issue erzeugt Access- und Refresh-Token für einen Nutzer.
func (m *TokenManager) Issue(userID uint) (TokenPair, error) {
	access, err := m.sign(userID, tokenTypeAccess, m.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := m.sign(userID, tokenTypeRefresh, m.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ParseAccess prüft ein Access-Token und liefert die Nutzer-ID.
func (m *TokenManager) ParseAccess(token string) (uint, error) {
	return m.parse(token, tokenTypeAccess)
}

// ParseRefresh prüft ein Refresh-Token und liefert die Nutzer-ID.
func (m *TokenManager) ParseRefresh(token string) (uint, error) {
	return m.parse(token, tokenTypeRefresh)
}

func (m *TokenManager) sign(userID uint, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		ID:   userID,
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *TokenManager) parse(tokenString, tokenType string) (uint, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, errors.Join(ErrInvalidToken, jwt.ErrTokenExpired)
		}
		return 0, ErrInvalidToken
	}
	if !token.Valid || claims.Type != tokenType || claims.ID == 0 {
		return 0, ErrInvalidToken
	}
	return claims.ID, nil
}
