package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePoint is a single close price of a price history series
type PricePoint struct {
	Time  time.Time       `json:"time"`
	Close decimal.Decimal `json:"close"`
}

// Closes extracts close prices as float64 for indicator math
func Closes(points []PricePoint) []float64 {
	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = ToFloat64(p.Close)
	}
	return closes
}
