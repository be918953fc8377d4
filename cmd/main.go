package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/fo-news-dashboard/internal/adapters/config"
	"github.com/selivandex/fo-news-dashboard/internal/adapters/news"
	"github.com/selivandex/fo-news-dashboard/internal/adapters/price"
	"github.com/selivandex/fo-news-dashboard/internal/adapters/telegram"
	"github.com/selivandex/fo-news-dashboard/internal/dashboard"
	"github.com/selivandex/fo-news-dashboard/internal/health"
	"github.com/selivandex/fo-news-dashboard/internal/workers"
	"github.com/selivandex/fo-news-dashboard/pkg/logger"
	"github.com/selivandex/fo-news-dashboard/pkg/templates"
	"github.com/selivandex/fo-news-dashboard/pkg/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := initConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("F&O news dashboard starting...",
		zap.Bool("newsapi_configured", cfg.News.HasNewsAPIKey()),
		zap.Bool("telegram_enabled", cfg.TelegramEnabled()),
	)

	renderer, err := templates.NewBuiltinManager()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	retriever := initRetriever(cfg)

	chartService := price.NewChartService(
		price.NewYahooChartProvider(cfg.Chart.URL, cfg.Chart.Timeout),
		cfg.Chart.Range,
		cfg.Chart.Interval,
		price.ChartOptions{Width: cfg.Chart.Width, Height: cfg.Chart.Height, SMAPeriod: cfg.Chart.SMAPeriod},
	)

	checker := health.NewChecker(retriever)

	server := dashboard.NewServer(dashboard.Options{
		Port:           cfg.Server.Port,
		Windows:        cfg.News.Windows,
		BaseQuery:      cfg.News.DefaultQuery,
		DefaultSymbol:  cfg.Chart.Symbol,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	}, retriever, chartService, renderer, checker)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	workerGroup := worker.NewGroup(ctx)
	var bot *telegram.Bot

	if cfg.TelegramEnabled() {
		bot, err = startTelegram(ctx, cfg, retriever, chartService, renderer, workerGroup)
		if err != nil {
			// The dashboard keeps working without the bot
			logger.Error("telegram disabled", zap.Error(err))
		}
	}

	workerGroup.Start()
	checker.SetReady(true)

	logger.Info("F&O news dashboard ready",
		zap.String("port", cfg.Server.Port),
		zap.Ints("windows", cfg.News.Windows),
	)

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			logger.Error("dashboard server failed", zap.Error(err))
			performGracefulShutdown(server, checker, workerGroup, bot)
			return fmt.Errorf("dashboard server: %w", err)
		}
	}

	return performGracefulShutdown(server, checker, workerGroup, bot)
}

func initConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, nil
}

// initRetriever wires NewsAPI as primary and Google News RSS as fallback
func initRetriever(cfg *config.Config) *news.Retriever {
	primary := news.NewNewsAPIProvider(cfg.News.APIKey, cfg.News.APIURL, cfg.News.PageSize, cfg.News.Timeout)
	fallback := news.NewGoogleNewsRSSProvider(cfg.News.FeedURL, cfg.News.FeedLanguage, cfg.News.FeedRegion, cfg.News.FeedTimeout)

	if !primary.IsEnabled() {
		logger.Warn("NEWSAPI_KEY not set, using Google News RSS only")
	}

	return news.NewRetriever(primary, fallback, cfg.News.ResultCap)
}

// startTelegram starts the command bot and registers the digest worker
func startTelegram(
	ctx context.Context,
	cfg *config.Config,
	retriever *news.Retriever,
	chartService *price.ChartService,
	renderer *templates.Manager,
	workerGroup *worker.Group,
) (*telegram.Bot, error) {
	api, err := telegram.NewAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, err
	}

	bot := telegram.NewBot(api, cfg.Telegram.ChatID, retriever, chartService, renderer, cfg.News.DefaultQuery, cfg.Chart.Symbol)

	go func() {
		if err := bot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("telegram bot error", zap.Error(err))
		}
	}()

	if cfg.DigestEnabled() {
		notifier := telegram.NewNotifier(api, cfg.Telegram.ChatID, renderer)
		digest := workers.NewDigestWorker(
			retriever,
			notifier,
			news.BuildQuery(cfg.News.DefaultQuery, ""),
			cfg.Telegram.DigestDays,
			cfg.Telegram.DigestSize,
		)
		workerGroup.Add(digest, cfg.Telegram.DigestInterval)

		logger.Info("news digest scheduled",
			zap.Duration("interval", cfg.Telegram.DigestInterval),
			zap.Int("days", cfg.Telegram.DigestDays),
		)
	}

	return bot, nil
}

// performGracefulShutdown stops components in reverse start order
func performGracefulShutdown(server *dashboard.Server, checker *health.Checker, workerGroup *worker.Group, bot *telegram.Bot) error {
	logger.Info("shutdown signal received, starting graceful shutdown...")

	checker.SetReady(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	workerGroup.Stop(10 * time.Second)

	if bot != nil {
		bot.Close()
	}

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("dashboard server stop error", zap.Error(err))
	}

	select {
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded")
		return fmt.Errorf("graceful shutdown timeout")
	default:
		logger.Info("shutdown completed successfully")
	}

	return nil
}
