package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/fo-news-dashboard/internal/adapters/news"
	"github.com/selivandex/fo-news-dashboard/internal/health"
	"github.com/selivandex/fo-news-dashboard/pkg/logger"
	"github.com/selivandex/fo-news-dashboard/pkg/models"
	"github.com/selivandex/fo-news-dashboard/pkg/templates"
)

// NewsService retrieves articles for lookback windows
type NewsService interface {
	GetNews(ctx context.Context, days int, query string) ([]models.Article, error)
	GetWindows(ctx context.Context, windows []int, query string) []models.WindowResult
	PrimaryConfigured() bool
}

// ChartRenderer produces the decorative background chart
type ChartRenderer interface {
	Background(ctx context.Context, symbol string) ([]byte, error)
	Placeholder() ([]byte, error)
	Range() string
}

// Options configures the dashboard
type Options struct {
	Port           string
	Windows        []int
	BaseQuery      string
	DefaultSymbol  string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server serves the news dashboard, its JSON API and health probes
type Server struct {
	server   *http.Server
	news     NewsService
	chart    ChartRenderer
	renderer templates.Renderer
	checker  *health.Checker
	limiter  *RateLimiter
	opts     Options

	// stops the rate limiter cleanup loop
	ctx    context.Context
	cancel context.CancelFunc
}

// Page is the data passed to the dashboard template
type Page struct {
	Symbol            string
	Query             string
	ChartRange        string
	PrimaryConfigured bool
	Windows           []models.WindowResult
}

// NewsResponse is the /api/news payload
type NewsResponse struct {
	Days     int              `json:"days"`
	Query    string           `json:"query"`
	Count    int              `json:"count"`
	Articles []models.Article `json:"articles"`
}

type errorResponse struct {
	Error    string           `json:"error"`
	Articles []models.Article `json:"articles,omitempty"`
}

// NewServer creates new dashboard server
func NewServer(
	opts Options,
	newsService NewsService,
	chart ChartRenderer,
	renderer templates.Renderer,
	checker *health.Checker,
) *Server {
	if opts.DefaultSymbol == "" {
		opts.DefaultSymbol = "^NSEI"
	}
	if len(opts.Windows) == 0 {
		opts.Windows = []int{7, 30, 90, 180}
	}
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 5
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = 20
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		ctx:      ctx,
		cancel:   cancel,
		news:     newsService,
		chart:    chart,
		renderer: renderer,
		checker:  checker,
		limiter:  NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		opts:     opts,
	}

	s.server = &http.Server{
		Addr:         ":" + opts.Port,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Handler returns the full middleware-wrapped router
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	if s.checker != nil {
		s.checker.Register(mux)
	}

	mux.Handle("/", s.limiter.Middleware(http.HandlerFunc(s.handleIndex)))
	mux.Handle("/api/news", s.limiter.Middleware(http.HandlerFunc(s.handleAPINews)))
	mux.Handle("/chart.png", s.limiter.Middleware(http.HandlerFunc(s.handleChart)))

	return withRequestID(withAccessLog(mux))
}

// Start serves until Stop is called
func (s *Server) Start() error {
	go s.limiter.RunCleanup(s.ctx, time.Minute)

	logger.Info("dashboard server starting",
		zap.String("addr", s.server.Addr),
		zap.Ints("windows", s.opts.Windows),
		zap.Bool("primary_source", s.news.PrimaryConfigured()),
	)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	logger.Info("stopping dashboard server...")
	s.cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	symbol := s.symbolParam(r)
	filter := strings.TrimSpace(r.URL.Query().Get("q"))
	query := news.BuildQuery(s.opts.BaseQuery, filter)

	windows := s.news.GetWindows(r.Context(), s.opts.Windows, query)
	for _, wr := range windows {
		if wr.Err != nil {
			logger.Warn("news window unavailable",
				zap.String("request_id", RequestID(r.Context())),
				zap.Int("days", wr.Days),
				zap.Error(wr.Err),
			)
		}
	}

	page := Page{
		Symbol:            symbol,
		Query:             filter,
		ChartRange:        s.chart.Range(),
		PrimaryConfigured: s.news.PrimaryConfigured(),
		Windows:           windows,
	}

	var buf bytes.Buffer
	if err := s.renderer.Execute(&buf, templates.Dashboard, page); err != nil {
		logger.Error("failed to render dashboard", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleAPINews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	days, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("days")))
	if err != nil || days <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "days must be a positive integer"})
		return
	}

	query := news.BuildQuery(s.opts.BaseQuery, r.URL.Query().Get("q"))

	articles, err := s.news.GetNews(r.Context(), days, query)
	if err != nil {
		if errors.Is(err, news.ErrInvalidWindow) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "days must be a positive integer"})
			return
		}

		logger.Warn("news retrieval failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.Int("days", days),
			zap.Error(err),
		)
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:    "news sources unavailable",
			Articles: []models.Article{},
		})
		return
	}

	writeJSON(w, http.StatusOK, NewsResponse{
		Days:     days,
		Query:    query,
		Count:    len(articles),
		Articles: articles,
	})
}

// handleChart always answers with a PNG; failures yield a blank placeholder
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	symbol := s.symbolParam(r)

	img, err := s.chart.Background(r.Context(), symbol)
	if err != nil {
		logger.Warn("chart unavailable, serving placeholder",
			zap.String("symbol", symbol),
			zap.Error(err),
		)

		img, err = s.chart.Placeholder()
		if err != nil {
			logger.Error("failed to render chart placeholder", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=3600")
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(img)
}

func (s *Server) symbolParam(r *http.Request) string {
	if symbol := strings.TrimSpace(r.URL.Query().Get("symbol")); symbol != "" {
		return symbol
	}
	return s.opts.DefaultSymbol
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Debug("failed to write response", zap.Error(err))
	}
}
