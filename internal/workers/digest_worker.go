package workers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/fo-news-dashboard/pkg/logger"
	"github.com/selivandex/fo-news-dashboard/pkg/models"
)

// NewsService retrieves articles for a lookback window
type NewsService interface {
	GetNews(ctx context.Context, days int, query string) ([]models.Article, error)
}

// DigestNotifier delivers a digest of headlines
type DigestNotifier interface {
	SendDigest(ctx context.Context, days int, articles []models.Article) error
}

// DigestWorker periodically sends the freshest headlines to Telegram
type DigestWorker struct {
	news     NewsService
	notifier DigestNotifier
	query    string
	days     int
	size     int
}

// NewDigestWorker creates new digest worker
func NewDigestWorker(newsService NewsService, notifier DigestNotifier, query string, days, size int) *DigestWorker {
	if days <= 0 {
		days = 1
	}
	if size <= 0 {
		size = 5
	}

	return &DigestWorker{
		news:     newsService,
		notifier: notifier,
		query:    query,
		days:     days,
		size:     size,
	}
}

// Name returns worker name
func (w *DigestWorker) Name() string {
	return "news_digest"
}

// Run executes one iteration
// Called periodically by pkg/worker.PeriodicWorker
func (w *DigestWorker) Run(ctx context.Context) error {
	start := time.Now()

	articles, err := w.news.GetNews(ctx, w.days, w.query)
	if err != nil {
		return fmt.Errorf("failed to retrieve digest news: %w", err)
	}

	if len(articles) == 0 {
		logger.Debug("no news for digest, skipping", zap.Int("days", w.days))
		return nil
	}

	if len(articles) > w.size {
		articles = articles[:w.size]
	}

	if err := w.notifier.SendDigest(ctx, w.days, articles); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}

	logger.Info("digest delivered",
		zap.Int("articles", len(articles)),
		zap.Duration("took", time.Since(start)),
	)

	return nil
}
