package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/selivandex/fo-news-dashboard/pkg/logger"
	"github.com/selivandex/fo-news-dashboard/pkg/models"
	"github.com/selivandex/fo-news-dashboard/pkg/templates"
)

// Sender delivers a prepared Telegram message
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier pushes news digests to the configured chat
type Notifier struct {
	sender   Sender
	chatID   int64
	renderer templates.Renderer
}

// DigestMessage is the data for the digest template
type DigestMessage struct {
	Days  int
	Items []NumberedArticle
}

// NewNotifier creates new Telegram notifier
func NewNotifier(sender Sender, chatID int64, renderer templates.Renderer) *Notifier {
	return &Notifier{
		sender:   sender,
		chatID:   chatID,
		renderer: renderer,
	}
}

// SendDigest sends the given headlines. An empty list sends nothing.
func (n *Notifier) SendDigest(ctx context.Context, days int, articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	text, err := n.renderer.ExecuteTemplate(templates.TelegramDigest, DigestMessage{
		Days:  days,
		Items: numbered(articles, 0),
	})
	if err != nil {
		return fmt.Errorf("failed to render digest: %w", err)
	}

	if err := sendHTML(n.sender, n.chatID, text); err != nil {
		return err
	}

	logger.Info("news digest sent",
		zap.Int64("chat_id", n.chatID),
		zap.Int("articles", len(articles)),
	)

	return nil
}
