package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/selivandex/fo-news-dashboard/pkg/logger"
	"github.com/selivandex/fo-news-dashboard/pkg/models"
)

//go:embed builtin
var builtinFS embed.FS

// Template names shipped with the binary
const (
	Dashboard      = "dashboard.tmpl"
	TelegramNews   = "telegram_news.tmpl"
	TelegramHelp   = "telegram_help.tmpl"
	TelegramDigest = "telegram_digest.tmpl"
)

// Renderer interface for template rendering (for dependency injection)
type Renderer interface {
	ExecuteTemplate(name string, data any) (string, error)
	Execute(w io.Writer, name string, data any) error
	TemplateExists(name string) bool
}

// Manager holds parsed HTML templates
type Manager struct {
	templates *template.Template
}

// DefaultFuncMap returns helpers shared by dashboard and bot templates
func DefaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"add":         func(a, b int) int { return a + b },
		"windowLabel": models.WindowLabel,
		"formatTime":  FormatTime,
		"truncate":    Truncate,
	}
}

// FormatTime renders a publish time for display, "" when absent
func FormatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("02 Jan 2006, 15:04 UTC")
}

// Truncate shortens s to at most n runes, adding an ellipsis when cut
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}

// NewManager parses every *.tmpl file in fsys, one and two directories deep
func NewManager(fsys fs.FS) (*Manager, error) {
	tmpl := template.New("root").Funcs(DefaultFuncMap())

	for _, pattern := range []string{"*.tmpl", "*/*.tmpl"} {
		matches, err := fs.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("bad template pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			continue
		}
		if tmpl, err = tmpl.ParseFS(fsys, pattern); err != nil {
			return nil, fmt.Errorf("failed to parse templates: %w", err)
		}
	}

	count := len(tmpl.Templates())
	if count <= 1 { // "root" template doesn't count
		return nil, fmt.Errorf("no templates found")
	}

	logger.Debug("templates loaded", zap.Int("count", count))

	return &Manager{templates: tmpl}, nil
}

// NewBuiltinManager loads the templates embedded in the binary
func NewBuiltinManager() (*Manager, error) {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("failed to open builtin templates: %w", err)
	}

	return NewManagerWithValidation(sub, []string{Dashboard, TelegramNews, TelegramHelp, TelegramDigest})
}

// NewManagerWithValidation creates manager and validates required templates exist
func NewManagerWithValidation(fsys fs.FS, requiredTemplates []string) (*Manager, error) {
	manager, err := NewManager(fsys)
	if err != nil {
		return nil, err
	}

	for _, name := range requiredTemplates {
		if !manager.TemplateExists(name) {
			return nil, fmt.Errorf("required template not found: %s", name)
		}
	}

	return manager, nil
}

// ExecuteTemplate renders template with data
func (m *Manager) ExecuteTemplate(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := m.Execute(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Execute renders template into w
func (m *Manager) Execute(w io.Writer, name string, data any) error {
	tmpl := m.templates.Lookup(name)
	if tmpl == nil {
		return fmt.Errorf("template %s not found", name)
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return nil
}

// TemplateExists checks if template exists
func (m *Manager) TemplateExists(name string) bool {
	return m.templates.Lookup(name) != nil
}
