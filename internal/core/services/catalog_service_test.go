package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
	"github.com/kamal-hamza/storefront-cli/internal/core/ports/mocks"
)

func TestCatalogService_FetchProducts(t *testing.T) {
	promo := int64(899)
	catalog := mocks.NewMockCatalog(
		domain.Product{ID: "1", Type: "A", Price: 1299},
		domain.Product{ID: "2", Type: "B", Price: 2499, PromotionPrice: &promo},
	)
	svc := NewCatalogService(catalog, 0, nil)

	products, err := svc.FetchProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "A", products[0].Type)
	assert.True(t, products[1].OnPromotion())
}

func TestCatalogService_EmptyCatalog(t *testing.T) {
	svc := NewCatalogService(mocks.NewMockCatalog(), 0, nil)

	products, err := svc.FetchProducts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestCatalogService_WaitsForDelay(t *testing.T) {
	svc := NewCatalogService(mocks.NewMockCatalog(), 30*time.Millisecond, nil)

	start := time.Now()
	_, err := svc.FetchProducts(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestCatalogService_CancelledDuringDelay(t *testing.T) {
	catalog := mocks.NewMockCatalog()
	svc := NewCatalogService(catalog, time.Hour, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := svc.FetchProducts(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, catalog.Calls())
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{1299, "12,99 €"},
		{100, "1,00 €"},
		{5, "0,05 €"},
		{123456, "1.234,56 €"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.cents), "FormatPrice(%d)", tt.cents)
	}
}
