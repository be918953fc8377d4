package models

import (
	"fmt"
	"time"
)

// Article is a news article normalized from any provider.
// Empty strings and a nil PublishedAt mean the provider did not supply the field.
type Article struct {
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Title       string     `json:"title,omitempty"`
	SourceName  string     `json:"source_name,omitempty"`
	URL         string     `json:"url,omitempty"`
	Description string     `json:"description,omitempty"`
}

// PublishedKey returns the ISO-8601 publish time, or "" when absent.
// Lexicographic order of keys matches chronological order.
func (a Article) PublishedKey() string {
	if a.PublishedAt == nil {
		return ""
	}
	return a.PublishedAt.UTC().Format(time.RFC3339)
}

// HasTimestamp reports whether the article carries a publish time
func (a Article) HasTimestamp() bool {
	return a.PublishedAt != nil
}

// WindowResult holds the retrieval outcome for one lookback window
type WindowResult struct {
	Err      error     `json:"-"`
	Articles []Article `json:"articles"`
	Days     int       `json:"days"`
}

// Label returns the tab title for the window
func (w WindowResult) Label() string {
	return WindowLabel(w.Days)
}

// WindowLabel names a lookback window the way the dashboard tabs show it
func WindowLabel(days int) string {
	switch days {
	case 7:
		return "1 Week"
	case 30:
		return "1 Month"
	case 90:
		return "3 Months"
	case 180:
		return "6 Months"
	case 1:
		return "1 Day"
	default:
		return fmt.Sprintf("%d Days", days)
	}
}
