package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/fo-news-dashboard/pkg/logger"
	"github.com/selivandex/fo-news-dashboard/pkg/models"
)

const (
	newsAPIBaseURL     = "https://newsapi.org"
	newsAPIEverything  = "/v2/everything"
	newsAPIMaxPageSize = 100
	newsAPIFromLayout  = "2006-01-02T15:04:05"
)

// NewsAPIProvider queries the NewsAPI keyword search endpoint
type NewsAPIProvider struct {
	apiKey   string
	baseURL  string
	pageSize int
	client   *http.Client
}

// NewNewsAPIProvider creates new NewsAPI provider; an empty apiKey disables it
func NewNewsAPIProvider(apiKey, baseURL string, pageSize int, timeout time.Duration) *NewsAPIProvider {
	if baseURL == "" {
		baseURL = newsAPIBaseURL
	}
	if pageSize <= 0 || pageSize > newsAPIMaxPageSize {
		pageSize = newsAPIMaxPageSize
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &NewsAPIProvider{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		pageSize: pageSize,
		client:   &http.Client{Timeout: timeout},
	}
}

func (n *NewsAPIProvider) GetName() string {
	return "newsapi"
}

func (n *NewsAPIProvider) IsEnabled() bool {
	return n.apiKey != ""
}

func (n *NewsAPIProvider) FetchNews(ctx context.Context, query string, from time.Time) ([]models.Article, error) {
	if !n.IsEnabled() {
		return nil, ErrNoCredential
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("from", from.UTC().Format(newsAPIFromLayout))
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(n.pageSize))

	reqURL := fmt.Sprintf("%s%s?%s", n.baseURL, newsAPIEverything, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", n.apiKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var result newsAPIResponse

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(body, &result) == nil && result.Message != "" {
			return nil, fmt.Errorf("API error %d (%s): %s", resp.StatusCode, result.Code, result.Message)
		}
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Status != "ok" {
		return nil, fmt.Errorf("unexpected response status %q: %s", result.Status, result.Message)
	}

	articles := make([]models.Article, 0, len(result.Articles))
	for _, raw := range result.Articles {
		articles = append(articles, normalizeNewsAPIArticle(raw))
	}

	logger.Debug("fetched NewsAPI articles",
		zap.Int("count", len(articles)),
		zap.Int("total_results", result.TotalResults),
	)

	return articles, nil
}

type newsAPIResponse struct {
	Status       string           `json:"status"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
	Articles     []newsAPIArticle `json:"articles"`
	TotalResults int              `json:"totalResults"`
}

type newsAPIArticle struct {
	Source      *newsAPISource `json:"source"`
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	URL         *string        `json:"url"`
	PublishedAt *string        `json:"publishedAt"`
}

type newsAPISource struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}
