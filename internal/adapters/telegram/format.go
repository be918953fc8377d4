package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/selivandex/fo-news-dashboard/pkg/models"
)

const defaultNewsDays = 7

// NumberedArticle is an article with its position in a message
type NumberedArticle struct {
	Index   int
	Article models.Article
}

// NewsMessage is the data for the news template
type NewsMessage struct {
	Days        int
	Keywords    string
	Unavailable bool
	Items       []NumberedArticle
	Total       int
}

// NewNewsMessage keeps the first limit articles
func NewNewsMessage(days int, keywords string, articles []models.Article, unavailable bool, limit int) NewsMessage {
	return NewsMessage{
		Days:        days,
		Keywords:    keywords,
		Unavailable: unavailable,
		Items:       numbered(articles, limit),
		Total:       len(articles),
	}
}

func numbered(articles []models.Article, limit int) []NumberedArticle {
	if limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}

	items := make([]NumberedArticle, len(articles))
	for i, a := range articles {
		items[i] = NumberedArticle{Index: i, Article: a}
	}
	return items
}

// ParseNewsArgs reads "/news [days] [keywords...]".
// A leading integer is the window; everything else extends the query.
func ParseNewsArgs(args string) (int, string, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return defaultNewsDays, "", nil
	}

	days, err := strconv.Atoi(fields[0])
	if err != nil {
		return defaultNewsDays, strings.Join(fields, " "), nil
	}
	if days <= 0 {
		return 0, "", fmt.Errorf("days must be a positive number, got %d", days)
	}

	return days, strings.Join(fields[1:], " "), nil
}
