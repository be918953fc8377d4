package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/selivandex/fo-news-dashboard/internal/adapters/news"
	"github.com/selivandex/fo-news-dashboard/internal/adapters/price"
	"github.com/selivandex/fo-news-dashboard/pkg/logger"
	"github.com/selivandex/fo-news-dashboard/pkg/models"
	"github.com/selivandex/fo-news-dashboard/pkg/templates"
)

const newsLimit = 10

// API is the subset of tgbotapi.BotAPI the bot relies on
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// NewsService retrieves articles for a lookback window
type NewsService interface {
	GetNews(ctx context.Context, days int, query string) ([]models.Article, error)
}

// ChartRenderer renders the price chart with a summary
type ChartRenderer interface {
	Snapshot(ctx context.Context, symbol string) (*price.Snapshot, error)
}

// Bot answers news and chart commands in a single configured chat
type Bot struct {
	api           API
	chatID        int64
	news          NewsService
	chart         ChartRenderer
	renderer      templates.Renderer
	baseQuery     string
	defaultSymbol string
}

// NewAPI connects to Telegram with the bot token
func NewAPI(token string) (*tgbotapi.BotAPI, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	api.Debug = false

	logger.Info("telegram bot initialized",
		zap.String("username", api.Self.UserName),
	)

	return api, nil
}

// NewBot creates new Telegram bot
func NewBot(
	api API,
	chatID int64,
	newsService NewsService,
	chart ChartRenderer,
	renderer templates.Renderer,
	baseQuery, defaultSymbol string,
) *Bot {
	if defaultSymbol == "" {
		defaultSymbol = "^NSEI"
	}

	return &Bot{
		api:           api,
		chatID:        chatID,
		news:          newsService,
		chart:         chart,
		renderer:      renderer,
		baseQuery:     baseQuery,
		defaultSymbol: defaultSymbol,
	}
}

// Start listens for commands until ctx is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	logger.Info("telegram bot started, listening for commands",
		zap.Int64("chat_id", b.chatID),
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}

			// Only process messages from configured chat
			if update.Message.Chat == nil || update.Message.Chat.ID != b.chatID {
				continue
			}

			go b.handleCommand(ctx, update.Message)
		}
	}
}

// Close stops receiving updates
func (b *Bot) Close() {
	b.api.StopReceivingUpdates()
	logger.Info("telegram bot stopped")
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	if !message.IsCommand() {
		return
	}

	command := message.Command()
	args := message.CommandArguments()

	logger.Info("received telegram command",
		zap.String("command", command),
		zap.String("args", args),
	)

	var err error
	switch command {
	case "start", "help":
		err = b.sendTemplate(templates.TelegramHelp, map[string]string{"DefaultSymbol": b.defaultSymbol})
	case "news":
		err = b.handleNews(ctx, args)
	case "chart":
		err = b.handleChart(ctx, args)
	default:
		err = b.SendMessage(fmt.Sprintf("Unknown command: /%s\nUse /help to see available commands", command))
	}

	if err != nil {
		logger.Error("failed to answer telegram command",
			zap.String("command", command),
			zap.Error(err),
		)
	}
}

func (b *Bot) handleNews(ctx context.Context, args string) error {
	days, keywords, err := ParseNewsArgs(args)
	if err != nil {
		return b.SendMessage(err.Error())
	}

	query := news.BuildQuery(b.baseQuery, keywords)

	articles, fetchErr := b.news.GetNews(ctx, days, query)
	if fetchErr != nil {
		logger.Warn("news retrieval failed for telegram",
			zap.Int("days", days),
			zap.Error(fetchErr),
		)
	}

	return b.sendTemplate(templates.TelegramNews, NewNewsMessage(days, keywords, articles, fetchErr != nil, newsLimit))
}

func (b *Bot) handleChart(ctx context.Context, args string) error {
	symbol := strings.TrimSpace(args)
	if symbol == "" {
		symbol = b.defaultSymbol
	}

	snap, err := b.chart.Snapshot(ctx, symbol)
	if err != nil {
		logger.Warn("chart unavailable for telegram",
			zap.String("symbol", symbol),
			zap.Error(err),
		)
		return b.SendMessage(fmt.Sprintf("Chart for %s is unavailable right now.", symbol))
	}

	photo := tgbotapi.NewPhoto(b.chatID, tgbotapi.FileBytes{Name: "chart.png", Bytes: snap.PNG})
	photo.Caption = snap.Caption()

	if _, err := b.api.Send(photo); err != nil {
		return fmt.Errorf("failed to send chart: %w", err)
	}
	return nil
}

// SendMessage sends plain text to the configured chat
func (b *Bot) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(b.chatID, text)

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (b *Bot) sendTemplate(name string, data any) error {
	text, err := b.renderer.ExecuteTemplate(name, data)
	if err != nil {
		return err
	}
	return sendHTML(b.api, b.chatID, text)
}

func sendHTML(api Sender, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, strings.TrimSpace(text))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
