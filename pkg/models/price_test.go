package models

import (
	"testing"
	"time"
)

func TestCloses(t *testing.T) {
	now := time.Now()
	points := []PricePoint{
		{Time: now, Close: NewDecimal(25010.5)},
		{Time: now.Add(24 * time.Hour), Close: NewDecimal(25100.25)},
	}

	closes := Closes(points)
	if len(closes) != 2 {
		t.Fatalf("expected 2 closes, got %d", len(closes))
	}
	if closes[0] != 25010.5 || closes[1] != 25100.25 {
		t.Errorf("unexpected closes: %v", closes)
	}
}
