package price

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/selivandex/fo-news-dashboard/internal/indicators"
	"github.com/selivandex/fo-news-dashboard/pkg/logger"
	"github.com/selivandex/fo-news-dashboard/pkg/models"
)

// ChartService fetches price history and renders the dashboard background
type ChartService struct {
	provider HistoryProvider
	calc     *indicators.Calculator
	rng      string
	interval string
	opts     ChartOptions
}

// Snapshot is a rendered chart with a short summary of the series
type Snapshot struct {
	Symbol string
	Range  string
	PNG    []byte
	Last   decimal.Decimal
	Change decimal.Decimal // percent, first to last close
	Trend  indicators.Trend
	Points int
}

// NewChartService creates new chart service
func NewChartService(provider HistoryProvider, rng, interval string, opts ChartOptions) *ChartService {
	if rng == "" {
		rng = "6mo"
	}
	if interval == "" {
		interval = "1d"
	}

	return &ChartService{
		provider: provider,
		calc:     indicators.NewCalculator(),
		rng:      rng,
		interval: interval,
		opts:     opts,
	}
}

// Range returns the history range shown by the chart
func (s *ChartService) Range() string {
	return s.rng
}

// Background renders the price chart for symbol as PNG
func (s *ChartService) Background(ctx context.Context, symbol string) ([]byte, error) {
	points, err := s.history(ctx, symbol)
	if err != nil {
		return nil, err
	}

	return RenderBackground(points, s.opts)
}

// Snapshot renders the chart and summarizes the series.
// Change and trend stay zero/unknown when the series is too short.
func (s *ChartService) Snapshot(ctx context.Context, symbol string) (*Snapshot, error) {
	points, err := s.history(ctx, symbol)
	if err != nil {
		return nil, err
	}

	img, err := RenderBackground(points, s.opts)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Symbol: symbol,
		Range:  s.rng,
		PNG:    img,
		Trend:  indicators.TrendUnknown,
		Points: len(points),
	}

	if len(points) > 0 {
		snap.Last = points[len(points)-1].Close
	}
	if change, err := s.calc.PercentChange(points); err == nil {
		snap.Change = change
	}
	if trend, err := s.calc.DetectTrend(points); err == nil {
		snap.Trend = trend
	}

	return snap, nil
}

// Placeholder renders a blank chart of the configured size
func (s *ChartService) Placeholder() ([]byte, error) {
	return RenderBackground(nil, s.opts)
}

func (s *ChartService) history(ctx context.Context, symbol string) ([]models.PricePoint, error) {
	points, err := s.provider.GetHistory(ctx, symbol, s.rng, s.interval)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s history from %s: %w", symbol, s.provider.GetName(), err)
	}

	if len(points) == 0 {
		logger.Warn("empty price history, rendering blank chart",
			zap.String("symbol", symbol),
		)
	}

	return points, nil
}

// Caption formats the snapshot as a one-line summary
func (s *Snapshot) Caption() string {
	if s.Points < 2 {
		return fmt.Sprintf("%s chart (last %s)", s.Symbol, s.Range)
	}

	sign := ""
	if s.Change.IsPositive() {
		sign = "+"
	}

	return fmt.Sprintf("%s %s: %s (%s%s%%), %s",
		s.Symbol, s.Range, s.Last.StringFixed(2), sign, s.Change.StringFixed(2), s.Trend)
}
