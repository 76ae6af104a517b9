package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kamal-hamza/storefront-cli/internal/core/domain"
	"github.com/kamal-hamza/storefront-cli/internal/core/ports"
)

// CatalogService simulates a slow product backend
type CatalogService struct {
	catalog ports.ProductCatalog
	delay   time.Duration
	logger  *zap.Logger
}

// NewCatalogService creates a catalog service that answers after delay
func NewCatalogService(catalog ports.ProductCatalog, delay time.Duration, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		catalog: catalog,
		delay:   delay,
		logger:  logger,
	}
}

// FetchProducts waits for the simulated latency, then returns the catalog.
// A missing catalog yields an empty list.
func (s *CatalogService) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	if err := sleepCtx(ctx, s.delay); err != nil {
		return nil, err
	}

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}

	s.logger.Debug("products fetched", zap.Int("count", len(products)))
	return products, nil
}

// FormatPrice renders a cent amount the way the storefront shows it: 1.234,56 €
func FormatPrice(cents int64) string {
	return message.NewPrinter(language.German).Sprintf("%.2f €", float64(cents)/100)
}

// sleepCtx waits for d or until ctx is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
