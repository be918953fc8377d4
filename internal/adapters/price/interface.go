package price

import (
	"context"

	"github.com/selivandex/fo-news-dashboard/pkg/models"
)

// HistoryProvider provides historical close prices for a ticker
type HistoryProvider interface {
	// GetHistory returns close prices for symbol over rng sampled at interval
	GetHistory(ctx context.Context, symbol, rng, interval string) ([]models.PricePoint, error)

	// GetName returns provider name
	GetName() string
}
