package news

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func strPtr(s string) *string { return &s }

func TestNormalizeNewsAPIArticle_MissingFields(t *testing.T) {
	tests := []struct {
		name     string
		raw      newsAPIArticle
		expected string
	}{
		{"nil source", newsAPIArticle{Title: strPtr("t")}, ""},
		{"source without name", newsAPIArticle{Source: &newsAPISource{ID: strPtr("reuters")}}, ""},
		{"source with name", newsAPIArticle{Source: &newsAPISource{Name: strPtr(" Reuters ")}}, "Reuters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := normalizeNewsAPIArticle(tt.raw)
			if a.SourceName != tt.expected {
				t.Errorf("SourceName = %q, want %q", a.SourceName, tt.expected)
			}
		})
	}
}

func TestNormalizeNewsAPIArticle_Timestamp(t *testing.T) {
	a := normalizeNewsAPIArticle(newsAPIArticle{PublishedAt: strPtr("2026-10-18T14:45:00+05:30")})

	if !a.HasTimestamp() {
		t.Fatal("expected timestamp")
	}
	if a.PublishedKey() != "2026-10-18T09:15:00Z" {
		t.Errorf("timestamp should be normalized to UTC, got %s", a.PublishedKey())
	}
}

func TestNormalizeFeedItem(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	pub := time.Date(2026, 10, 18, 10, 0, 0, 0, ist)

	item := &gofeed.Item{
		Title:           "  Sensex futures slip  ",
		Link:            "https://example.com/sensex",
		PublishedParsed: &pub,
		Author:          &gofeed.Person{Name: "Desk"},
		Custom:          map[string]string{customSourceKey: "Moneycontrol"},
	}

	a := normalizeFeedItem(item)

	if a.Title != "Sensex futures slip" {
		t.Errorf("unexpected title: %q", a.Title)
	}
	if a.SourceName != "Moneycontrol" {
		t.Errorf("<source> should win over author, got %q", a.SourceName)
	}
	if a.PublishedKey() != "2026-10-18T04:30:00Z" {
		t.Errorf("unexpected published key: %s", a.PublishedKey())
	}
	if a.PublishedAt.Location() != time.UTC {
		t.Error("published time should be UTC")
	}
}

func TestFeedItemSource_Fallbacks(t *testing.T) {
	tests := []struct {
		name     string
		item     *gofeed.Item
		expected string
	}{
		{"nothing", &gofeed.Item{}, ""},
		{"author", &gofeed.Item{Author: &gofeed.Person{Name: "Reuters"}}, "Reuters"},
		{"authors list", &gofeed.Item{Authors: []*gofeed.Person{nil, {Name: "PTI"}}}, "PTI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := feedItemSource(tt.item); got != tt.expected {
				t.Errorf("feedItemSource() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain text", "  Index options   volume hits record ", "Index options volume hits record"},
		{"html", `<a href="x">Options data</a>&nbsp;<font>Mint</font>`, "Options data Mint"},
		{"entity", "F&amp;O ban list", "F&O ban list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanDescription(tt.input); got != tt.expected {
				t.Errorf("cleanDescription(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"2026-10-18T09:15:00Z", true},
		{"2026-10-18T09:15:00.123Z", true},
		{"2026-10-18T09:15:00", true},
		{"", false},
		{"yesterday", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, ok := parseTimestamp(tt.input)
			if ok != tt.ok {
				t.Errorf("parseTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
		})
	}
}
