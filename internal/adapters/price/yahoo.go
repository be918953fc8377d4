package price

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/fo-news-dashboard/pkg/logger"
	"github.com/selivandex/fo-news-dashboard/pkg/models"
)

const yahooChartURL = "https://query1.finance.yahoo.com"

// YahooChartProvider implements HistoryProvider using the Yahoo Finance chart API (no API key needed)
type YahooChartProvider struct {
	client  *http.Client
	baseURL string
}

// NewYahooChartProvider creates new Yahoo chart provider
func NewYahooChartProvider(baseURL string, timeout time.Duration) *YahooChartProvider {
	if baseURL == "" {
		baseURL = yahooChartURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &YahooChartProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (y *YahooChartProvider) GetName() string {
	return "YahooFinance"
}

// GetHistory returns close prices ordered by time. Missing closes are skipped.
func (y *YahooChartProvider) GetHistory(ctx context.Context, symbol, rng, interval string) ([]models.PricePoint, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	params := url.Values{}
	params.Set("range", rng)
	params.Set("interval", interval)

	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.baseURL, url.PathEscape(symbol), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; FONewsDashboard/1.0)")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var result yahooChartResponse

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(body, &result) == nil && result.Chart.Error != nil {
			return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, result.Chart.Error.Description)
		}
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if result.Chart.Error != nil {
		return nil, fmt.Errorf("chart error %s: %s", result.Chart.Error.Code, result.Chart.Error.Description)
	}

	points := make([]models.PricePoint, 0)
	if len(result.Chart.Result) == 0 {
		return points, nil
	}

	series := result.Chart.Result[0]
	if len(series.Indicators.Quote) == 0 {
		return points, nil
	}
	closes := series.Indicators.Quote[0].Close

	for i, ts := range series.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, models.PricePoint{
			Time:  time.Unix(ts, 0).UTC(),
			Close: models.NewDecimal(*closes[i]),
		})
	}

	logger.Debug("fetched price history",
		zap.String("symbol", symbol),
		zap.String("range", rng),
		zap.Int("points", len(points)),
	)

	return points, nil
}

type yahooChartResponse struct {
	Chart struct {
		Error  *yahooChartError   `json:"error"`
		Result []yahooChartResult `json:"result"`
	} `json:"chart"`
}

type yahooChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type yahooChartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}
