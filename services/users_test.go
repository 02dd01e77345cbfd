package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"storefront/models"
	"storefront/testutil"
)

func TestUserService_Profile(t *testing.T) {
	auth, db := newAuthService(t)
	svc := NewUserService(db, auth, zap.NewNop())
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "jane@example.com", false)
	product := testutil.CreateProduct(t, db, user, testutil.ProductFixture{Name: "Phone", Price: 300})
	require.NoError(t, db.Create(&models.Order{UserID: user.ID, Status: models.OrderPending}).Error)

	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", profile.Email)
	assert.Empty(t, profile.Favorites)
	assert.Equal(t, int64(1), profile.OrdersCount)

	added, err := svc.ToggleFavorite(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, added)

	profile, err = svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, profile.Favorites, 1)
	assert.Equal(t, "Phone", profile.Favorites[0].Name)

	added, err = svc.ToggleFavorite(ctx, user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, added)

	_, err = svc.ToggleFavorite(ctx, user.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Profile(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserService_UpdateProfile(t *testing.T) {
	auth, db := newAuthService(t)
	svc := NewUserService(db, auth, zap.NewNop())
	ctx := context.Background()

	jane := testutil.CreateUser(t, db, "jane@example.com", false)
	testutil.CreateUser(t, db, "john@example.com", false)

	updated, err := svc.UpdateProfile(ctx, jane.ID, ProfileInput{
		Email:    "jane.doe@example.com",
		Name:     "Jane Doe",
		Phone:    "+49 30 1234",
		Password: "new-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", updated.Email)
	assert.Equal(t, "Jane Doe", updated.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("new-secret")))

	kept, err := svc.UpdateProfile(ctx, jane.ID, ProfileInput{Email: "jane.doe@example.com"})
	require.NoError(t, err)
	assert.Equal(t, updated.Password, kept.Password)

	_, err = svc.UpdateProfile(ctx, jane.ID, ProfileInput{Email: "john@example.com"})
	assert.ErrorIs(t, err, ErrUserExists)
}
