package news

import (
	"context"
	"time"

	"github.com/selivandex/fo-news-dashboard/pkg/models"
)

// Provider represents news source provider interface
type Provider interface {
	// GetName returns provider name
	GetName() string

	// FetchNews fetches articles matching query published at or after from
	FetchNews(ctx context.Context, query string, from time.Time) ([]models.Article, error)

	// IsEnabled returns whether provider is configured
	IsEnabled() bool
}
