package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStatisticsService_Main(t *testing.T) {
	c := newCatalog(t, nil)
	ctx := context.Background()
	svc := NewStatisticsService(c.db, zap.NewNop())

	empty, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalAmount)
	assert.Equal(t, int64(5), empty.Products)

	orders := NewOrderService(c.db, zap.NewNop(), nil)
	_, err = orders.Place(ctx, 1, OrderInput{Items: []OrderItemInput{
		{Quantity: 2, Price: 300, ProductID: c.products[0].ID},
		{Quantity: 3, Price: 40, ProductID: c.products[3].ID},
	}})
	require.NoError(t, err)

	stats, err := svc.Main(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Statistic{
		{Name: "Orders", Value: 1},
		{Name: "Reviews", Value: 3},
		{Name: "Users", Value: 1},
		{Name: "Total amount", Value: 720},
	}, stats)
}
