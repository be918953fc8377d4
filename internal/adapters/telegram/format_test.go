package telegram

import (
	"context"
	"strings"
	"testing"

	"github.com/selivandex/fo-news-dashboard/pkg/models"
	"github.com/selivandex/fo-news-dashboard/pkg/templates"
)

func TestParseNewsArgs(t *testing.T) {
	tests := []struct {
		args         string
		wantDays     int
		wantKeywords string
		wantErr      bool
	}{
		{"", 7, "", false},
		{"30", 30, "", false},
		{"90 bank nifty", 90, "bank nifty", false},
		{"  sensex   weekly ", 7, "sensex weekly", false},
		{"0", 0, "", true},
		{"-1 nifty", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			days, keywords, err := ParseNewsArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if days != tt.wantDays || keywords != tt.wantKeywords {
				t.Errorf("ParseNewsArgs(%q) = %d, %q; want %d, %q", tt.args, days, keywords, tt.wantDays, tt.wantKeywords)
			}
		})
	}
}

func TestNewNewsMessage(t *testing.T) {
	msg := NewNewsMessage(7, "", manyArticles(3), false, 2)

	if msg.Total != 3 || len(msg.Items) != 2 {
		t.Fatalf("unexpected sizes: total=%d items=%d", msg.Total, len(msg.Items))
	}
	if msg.Items[1].Index != 1 || msg.Items[1].Article.Title != "Headline <B>" {
		t.Errorf("unexpected second item %+v", msg.Items[1])
	}
}

func TestNotifier_SendDigest(t *testing.T) {
	renderer, err := templates.NewBuiltinManager()
	if err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}

	api := &fakeAPI{}
	notifier := NewNotifier(api, 42, renderer)

	if err := notifier.SendDigest(context.Background(), 1, []models.Article{}); err != nil {
		t.Fatalf("SendDigest failed: %v", err)
	}
	if len(api.sent) != 0 {
		t.Fatal("empty digest should not be sent")
	}

	if err := notifier.SendDigest(context.Background(), 1, manyArticles(2)); err != nil {
		t.Fatalf("SendDigest failed: %v", err)
	}

	msg := api.lastText(t)
	if msg.ChatID != 42 {
		t.Errorf("unexpected chat %d", msg.ChatID)
	}
	for _, want := range []string{"digest: 1 Day", "<b>1.</b>", "<b>2.</b>", "Moneycontrol"} {
		if !strings.Contains(msg.Text, want) {
			t.Errorf("digest missing %q:\n%s", want, msg.Text)
		}
	}
}
