package news

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/selivandex/fo-news-dashboard/pkg/models"
)

// normalizeNewsAPIArticle maps a NewsAPI record to an Article.
// Null fields and a missing source object become absent values.
func normalizeNewsAPIArticle(raw newsAPIArticle) models.Article {
	article := models.Article{
		Title:       deref(raw.Title),
		URL:         deref(raw.URL),
		Description: cleanDescription(deref(raw.Description)),
	}

	if raw.Source != nil {
		article.SourceName = deref(raw.Source.Name)
	}

	if raw.PublishedAt != nil {
		if ts, ok := parseTimestamp(*raw.PublishedAt); ok {
			article.PublishedAt = &ts
		}
	}

	return article
}

// normalizeFeedItem maps an RSS entry to an Article
func normalizeFeedItem(item *gofeed.Item) models.Article {
	article := models.Article{
		Title:       strings.TrimSpace(item.Title),
		URL:         strings.TrimSpace(item.Link),
		SourceName:  feedItemSource(item),
		Description: cleanDescription(item.Description),
	}

	if item.PublishedParsed != nil {
		ts := item.PublishedParsed.UTC()
		article.PublishedAt = &ts
	}

	return article
}

// feedItemSource prefers the RSS <source> element, then the first author
func feedItemSource(item *gofeed.Item) string {
	if name := strings.TrimSpace(item.Custom[customSourceKey]); name != "" {
		return name
	}
	if item.Author != nil && item.Author.Name != "" {
		return strings.TrimSpace(item.Author.Name)
	}
	for _, author := range item.Authors {
		if author != nil && author.Name != "" {
			return strings.TrimSpace(author.Name)
		}
	}
	return ""
}

// cleanDescription reduces HTML snippets to collapsed plain text
func cleanDescription(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if strings.ContainsAny(s, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			s = doc.Text()
		}
	}

	return strings.Join(strings.Fields(s), " ")
}

// parseTimestamp accepts RFC 3339 with or without a zone suffix
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	layouts := []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), true
		}
	}

	return time.Time{}, false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
