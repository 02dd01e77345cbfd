package main

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"storefront/models"
	"storefront/services"
	"storefront/testutil"
)

func TestEnsureAdminIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	auth := services.NewAuthService(db, services.NewTokenManager("s", time.Hour, time.Hour), zap.NewNop())
	auth.HashCost = bcrypt.MinCost
	ctx := context.Background()

	first, err := ensureAdmin(ctx, db, auth, "admin@example.com", "admin123")
	require.NoError(t, err)
	second, err := ensureAdmin(ctx, db, auth, "admin@example.com", "admin123")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var stored models.User
	require.NoError(t, db.First(&stored, first.ID).Error)
	assert.True(t, stored.IsAdmin)
}

func TestCreateProducts(t *testing.T) {
	db := testutil.NewDB(t)
	author := testutil.CreateUser(t, db, "admin@example.com", true)

	n, err := createProducts(context.Background(), db, rand.New(rand.NewPCG(1, 1)), author.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	var products []models.Product
	require.NoError(t, db.Preload("Category").Preload("Reviews").Find(&products).Error)
	require.Len(t, products, 5)
	for _, p := range products {
		assert.NotEmpty(t, p.Slug)
		assert.GreaterOrEqual(t, p.Price, 10)
		assert.Less(t, p.Price, 1000)
		assert.GreaterOrEqual(t, len(p.Images), 2)
		require.NotNil(t, p.Category)
		require.Len(t, p.Reviews, 3)
		for _, r := range p.Reviews {
			assert.GreaterOrEqual(t, r.Rating, 1)
			assert.LessOrEqual(t, r.Rating, 5)
		}
	}
}
