package news

import "testing"

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		filter   string
		expected string
	}{
		{"no filter", DefaultQuery, "", DefaultQuery},
		{"whitespace filter", DefaultQuery, "   ", DefaultQuery},
		{"filter extends", "options", "nifty", "options OR (nifty)"},
		{"filter trimmed", "options", "  bank nifty ", "options OR (bank nifty)"},
		{"empty base uses default", "", "", DefaultQuery},
		{"empty base with filter", "", "sensex", DefaultQuery + " OR (sensex)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildQuery(tt.base, tt.filter); got != tt.expected {
				t.Errorf("BuildQuery(%q, %q) = %q, want %q", tt.base, tt.filter, got, tt.expected)
			}
		})
	}
}
