package news

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/rss"
	"go.uber.org/zap"

	"github.com/selivandex/fo-news-dashboard/pkg/logger"
	"github.com/selivandex/fo-news-dashboard/pkg/models"
)

const (
	googleNewsRSSURL = "https://news.google.com/rss/search"
	customSourceKey  = "source"
)

// GoogleNewsRSSProvider searches the public Google News RSS feed
type GoogleNewsRSSProvider struct {
	baseURL  string
	language string
	region   string
	client   *http.Client
}

// NewGoogleNewsRSSProvider creates new Google News RSS provider
func NewGoogleNewsRSSProvider(baseURL, language, region string, timeout time.Duration) *GoogleNewsRSSProvider {
	if baseURL == "" {
		baseURL = googleNewsRSSURL
	}
	if language == "" {
		language = "en"
	}
	if region == "" {
		region = "IN"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &GoogleNewsRSSProvider{
		baseURL:  baseURL,
		language: language,
		region:   strings.ToUpper(region),
		client:   &http.Client{Timeout: timeout},
	}
}

func (g *GoogleNewsRSSProvider) GetName() string {
	return "google_news_rss"
}

func (g *GoogleNewsRSSProvider) IsEnabled() bool {
	return true
}

// SearchURL builds the region-localized search URL for query
func (g *GoogleNewsRSSProvider) SearchURL(query string) string {
	params := url.Values{}
	params.Set("q", query)
	params.Set("hl", g.language+"-"+g.region)
	params.Set("gl", g.region)
	params.Set("ceid", g.region+":"+g.language)

	return g.baseURL + "?" + params.Encode()
}

func (g *GoogleNewsRSSProvider) FetchNews(ctx context.Context, query string, from time.Time) ([]models.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.SearchURL(query), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; FONewsDashboard/1.0)")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}

	fp := gofeed.NewParser()
	fp.RSSTranslator = &sourceTranslator{}

	feed, err := fp.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("RSS parse failed: %w", err)
	}

	articles, skipped := filterFeedItems(feed.Items, from)

	logger.Debug("fetched Google News RSS",
		zap.Int("count", len(articles)),
		zap.Int("skipped_old", skipped),
	)

	return articles, nil
}

// filterFeedItems drops entries published before from.
// Entries without a publish time are kept since their recency is unknown.
func filterFeedItems(items []*gofeed.Item, from time.Time) ([]models.Article, int) {
	articles := make([]models.Article, 0, len(items))
	skipped := 0

	for _, item := range items {
		if item == nil {
			continue
		}
		if item.PublishedParsed != nil && item.PublishedParsed.Before(from) {
			skipped++
			continue
		}
		articles = append(articles, normalizeFeedItem(item))
	}

	return articles, skipped
}

// sourceTranslator keeps the RSS <source> publisher name that the
// default translator drops, storing it in Item.Custom
type sourceTranslator struct {
	gofeed.DefaultRSSTranslator
}

func (t *sourceTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	rssFeed, ok := feed.(*rss.Feed)
	if !ok {
		return nil, fmt.Errorf("feed did not match expected type of *rss.Feed")
	}

	result, err := t.DefaultRSSTranslator.Translate(rssFeed)
	if err != nil {
		return nil, err
	}

	for i, item := range rssFeed.Items {
		if i >= len(result.Items) || item == nil || item.Source == nil || item.Source.Title == "" {
			continue
		}
		if result.Items[i].Custom == nil {
			result.Items[i].Custom = make(map[string]string)
		}
		result.Items[i].Custom[customSourceKey] = item.Source.Title
	}

	return result, nil
}
