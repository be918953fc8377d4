package templates

import (
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/selivandex/fo-news-dashboard/pkg/models"
)

func TestNewBuiltinManager(t *testing.T) {
	m, err := NewBuiltinManager()
	if err != nil {
		t.Fatalf("NewBuiltinManager failed: %v", err)
	}

	for _, name := range []string{Dashboard, TelegramNews, TelegramHelp, TelegramDigest} {
		if !m.TemplateExists(name) {
			t.Errorf("template %s missing", name)
		}
	}
}

func TestNewManager_FromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"greeting.tmpl":     {Data: []byte(`Hello {{.}}`)},
		"nested/shout.tmpl": {Data: []byte(`{{truncate . 3}}!`)},
	}

	m, err := NewManager(fsys)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	out, err := m.ExecuteTemplate("greeting.tmpl", "<world>")
	if err != nil {
		t.Fatalf("ExecuteTemplate failed: %v", err)
	}
	if out != "Hello &lt;world&gt;" {
		t.Errorf("expected escaped output, got %q", out)
	}

	out, err = m.ExecuteTemplate("shout.tmpl", "abcdef")
	if err != nil {
		t.Fatalf("ExecuteTemplate failed: %v", err)
	}
	if out != "abc…!" {
		t.Errorf("unexpected output %q", out)
	}

	if _, err := m.ExecuteTemplate("missing.tmpl", nil); err == nil {
		t.Error("expected error for missing template")
	}
}

func TestNewManager_Empty(t *testing.T) {
	if _, err := NewManager(fstest.MapFS{}); err == nil {
		t.Error("expected error when no templates are present")
	}
}

func TestNewManagerWithValidation_MissingRequired(t *testing.T) {
	fsys := fstest.MapFS{"a.tmpl": {Data: []byte("a")}}

	if _, err := NewManagerWithValidation(fsys, []string{"a.tmpl", "b.tmpl"}); err == nil {
		t.Error("expected error for missing required template")
	}
}

func TestFormatTime(t *testing.T) {
	if got := FormatTime(nil); got != "" {
		t.Errorf("expected empty string for nil, got %q", got)
	}

	ts := time.Date(2026, 10, 17, 8, 5, 0, 0, time.UTC)
	if got := FormatTime(&ts); got != "17 Oct 2026, 08:05 UTC" {
		t.Errorf("unexpected format %q", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"héllo wörld", 4, "héll…"},
		{"anything", 0, "anything"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestDashboardTemplate_States(t *testing.T) {
	m, err := NewBuiltinManager()
	if err != nil {
		t.Fatalf("NewBuiltinManager failed: %v", err)
	}

	ts := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)
	data := map[string]any{
		"Symbol":            "^NSEI",
		"Query":             "",
		"ChartRange":        "6mo",
		"PrimaryConfigured": false,
		"Windows": []models.WindowResult{
			{Days: 7, Articles: []models.Article{{Title: "Nifty <F&O> expiry", URL: "https://example.com/a", SourceName: "Mint", PublishedAt: &ts}}},
			{Days: 30, Articles: []models.Article{}},
			{Days: 90, Err: errTest{}},
		},
	}

	out, err := m.ExecuteTemplate(Dashboard, data)
	if err != nil {
		t.Fatalf("ExecuteTemplate failed: %v", err)
	}

	for _, want := range []string{
		"1 Week", "1 Month", "3 Months",
		"News from last 7 days",
		"Nifty &lt;F&amp;O&gt; expiry",
		"Mint | 17 Oct 2026, 08:00 UTC",
		"No news found for this period.",
		"currently unavailable",
		"NewsAPI key not configured",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard output missing %q", want)
		}
	}
}

type errTest struct{}

func (errTest) Error() string { return "down" }
