package indicators

import (
	"fmt"

	"github.com/cinar/indicator"
	"github.com/shopspring/decimal"

	"github.com/selivandex/fo-news-dashboard/pkg/models"
)

// Trend is the direction of a price series
type Trend string

const (
	TrendUp       Trend = "uptrend"
	TrendDown     Trend = "downtrend"
	TrendSideways Trend = "sideways"
	TrendUnknown  Trend = "unknown"
)

// Calculator calculates indicators from close prices
type Calculator struct{}

// NewCalculator creates new indicator calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// SMA returns the simple moving average series, aligned with closes.
// The first period-1 values average a partial window.
func SMA(closes []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("SMA period must be positive, got %d", period)
	}
	if len(closes) < period {
		return nil, fmt.Errorf("insufficient data for SMA(%d): %d points", period, len(closes))
	}

	return indicator.Sma(period, closes), nil
}

// LastEMA returns the latest exponential moving average
func (c *Calculator) LastEMA(points []models.PricePoint, period int) (float64, error) {
	if len(points) < period {
		return 0, fmt.Errorf("insufficient points for EMA calculation")
	}

	ema := indicator.Ema(period, models.Closes(points))
	if len(ema) == 0 {
		return 0, fmt.Errorf("EMA calculation failed")
	}
	return ema[len(ema)-1], nil
}

// DetectTrend compares the last close with EMA(20) and EMA(50)
func (c *Calculator) DetectTrend(points []models.PricePoint) (Trend, error) {
	if len(points) < 50 {
		return TrendUnknown, fmt.Errorf("insufficient data for trend detection")
	}

	ema20, err := c.LastEMA(points, 20)
	if err != nil {
		return TrendUnknown, err
	}

	ema50, err := c.LastEMA(points, 50)
	if err != nil {
		return TrendUnknown, err
	}

	last := models.ToFloat64(points[len(points)-1].Close)

	switch {
	case last > ema20 && ema20 > ema50:
		return TrendUp, nil
	case last < ema20 && ema20 < ema50:
		return TrendDown, nil
	default:
		return TrendSideways, nil
	}
}

// PercentChange returns the change from first to last close in percent, rounded to 2 places
func (c *Calculator) PercentChange(points []models.PricePoint) (decimal.Decimal, error) {
	if len(points) < 2 {
		return decimal.Zero, fmt.Errorf("need at least 2 points, got %d", len(points))
	}

	first := points[0].Close
	if first.IsZero() {
		return decimal.Zero, fmt.Errorf("first close is zero")
	}

	last := points[len(points)-1].Close
	return last.Sub(first).Div(first).Mul(decimal.NewFromInt(100)).Round(2), nil
}
