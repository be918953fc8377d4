package news

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/selivandex/fo-news-dashboard/pkg/logger"
	"github.com/selivandex/fo-news-dashboard/pkg/models"
)

// DefaultResultCap is the maximum number of articles returned per retrieval
const DefaultResultCap = 50

// Retriever picks the primary or fallback provider, then sorts and caps results
type Retriever struct {
	primary   Provider
	fallback  Provider
	now       func() time.Time
	resultCap int
}

// NewRetriever creates new news retriever.
// primary may be nil or disabled, in which case fallback serves every call.
func NewRetriever(primary, fallback Provider, resultCap int) *Retriever {
	if resultCap <= 0 {
		resultCap = DefaultResultCap
	}

	return &Retriever{
		primary:   primary,
		fallback:  fallback,
		resultCap: resultCap,
		now:       time.Now,
	}
}

// PrimaryConfigured reports whether the primary source will be attempted
func (r *Retriever) PrimaryConfigured() bool {
	return r.primary != nil && r.primary.IsEnabled()
}

// GetNews returns at most resultCap articles published in the last days days,
// newest first. An empty slice is a valid result.
func (r *Retriever) GetNews(ctx context.Context, days int, query string) ([]models.Article, error) {
	if days <= 0 {
		return nil, ErrInvalidWindow
	}

	from := r.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)

	articles, source, err := r.fetch(ctx, query, from)
	if err != nil {
		return nil, err
	}

	result := SortAndCap(articles, r.resultCap)

	logger.Debug("news retrieved",
		zap.String("source", source),
		zap.Int("days", days),
		zap.Int("fetched", len(articles)),
		zap.Int("returned", len(result)),
	)

	return result, nil
}

// fetch runs exactly one successful source: primary when possible, else fallback once
func (r *Retriever) fetch(ctx context.Context, query string, from time.Time) ([]models.Article, string, error) {
	if r.PrimaryConfigured() {
		articles, err := r.primary.FetchNews(ctx, query, from)
		if err == nil {
			return articles, r.primary.GetName(), nil
		}

		logger.Warn("primary news source failed, using fallback",
			zap.Error(&FetchError{Source: r.primary.GetName(), Kind: KindPrimarySource, Err: err}),
		)
	} else {
		logger.Debug("primary news source not configured, using fallback",
			zap.String("kind", string(KindConfigurationAbsent)),
		)
	}

	if r.fallback == nil {
		return nil, "", &FetchError{Source: "none", Kind: KindFallbackSource, Err: errors.New("no fallback source configured")}
	}

	articles, err := r.fallback.FetchNews(ctx, query, from)
	if err != nil {
		return nil, "", &FetchError{Source: r.fallback.GetName(), Kind: KindFallbackSource, Err: err}
	}

	return articles, r.fallback.GetName(), nil
}

// GetWindows retrieves every window concurrently. Results keep the order of
// windows and a failed window does not affect the others.
func (r *Retriever) GetWindows(ctx context.Context, windows []int, query string) []models.WindowResult {
	results := make([]models.WindowResult, len(windows))

	g, gctx := errgroup.WithContext(ctx)
	for i, days := range windows {
		g.Go(func() error {
			articles, err := r.GetNews(gctx, days, query)
			if err != nil {
				articles = []models.Article{}
			}
			results[i] = models.WindowResult{Days: days, Articles: articles, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// SortAndCap orders articles newest first (absent timestamps last) and keeps
// at most limit of them. The input slice is not modified.
func SortAndCap(articles []models.Article, limit int) []models.Article {
	sorted := make([]models.Article, len(articles))
	copy(sorted, articles)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedKey() > sorted[j].PublishedKey()
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	return sorted
}
