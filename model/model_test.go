package model

import (
	"testing"

	"github.com/puntorigen/junior/tokens"
)

func TestLimits_Exceeded(t *testing.T) {
	tests := []struct {
		name   string
		limits Limits
		usage  tokens.Usage
		want   bool
	}{
		{"unlimited", Limits{}, tokens.Usage{Tokens: 1_000_000}, false},
		{"under token cap", Limits{Tokens: 100}, tokens.Usage{Tokens: 100}, false},
		{"over token cap", Limits{Tokens: 100}, tokens.Usage{Tokens: 101}, true},
		{"over request cap", Limits{Requests: 5}, tokens.Usage{Requests: 6}, true},
		{"under both", Limits{Tokens: 100, Requests: 5}, tokens.Usage{Tokens: 50, Requests: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.limits.Exceeded(tt.usage); got != tt.want {
				t.Errorf("Exceeded(%+v) = %v, want %v", tt.usage, got, tt.want)
			}
		})
	}
}

func TestConfig_SupportsCategory(t *testing.T) {
	code := Config{Identifier: "openai/gpt-4o", ExpertFor: []string{"code"}}
	generalist := Config{Identifier: "anthropic/claude-sonnet-4-20250514", ExpertFor: []string{CategoryEverything}}

	tests := []struct {
		name     string
		cfg      Config
		category string
		want     bool
	}{
		{"matching category", code, "code", true},
		{"missing category", code, "prose", false},
		{"wildcard request", code, CategoryEverything, true},
		{"empty request is wildcard", code, "", true},
		{"wildcard label is not an expert wildcard", generalist, "prose", false},
		{"wildcard label matches wildcard request", generalist, CategoryEverything, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.SupportsCategory(tt.category); got != tt.want {
				t.Errorf("SupportsCategory(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestConfig_FitsPrompt(t *testing.T) {
	cfg := Config{
		Identifier:          "ollama/llama3.2",
		ContextWindowTokens: 4096,
		MaxOutputTokens:     512,
	}

	// 4000 prompt tokens + 512 output > 4096 window.
	if cfg.FitsPrompt(4000) {
		t.Error("expected 4000-token prompt to be rejected")
	}
	if !cfg.FitsPrompt(3584) {
		t.Error("expected 3584-token prompt to fit exactly")
	}
	if cfg.FitsPrompt(3585) {
		t.Error("expected 3585-token prompt to be rejected")
	}
}

func TestConfig_Headroom(t *testing.T) {
	cfg := Config{Identifier: "openai/gpt-4o", ContextWindowTokens: 10000}
	if got := cfg.Headroom(2000); got != 8000 {
		t.Errorf("Headroom(2000) = %d, want 8000", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			"valid",
			Config{Identifier: "openai/gpt-4o", ContextWindowTokens: 128000, MaxOutputTokens: 4096},
			false,
		},
		{"missing identifier", Config{ContextWindowTokens: 100}, true},
		{"bad identifier", Config{Identifier: "gpt-4o", ContextWindowTokens: 100}, true},
		{"unknown provider", Config{Identifier: "mistral/large", ContextWindowTokens: 100}, true},
		{"zero window", Config{Identifier: "openai/gpt-4o"}, true},
		{
			"output exceeds window",
			Config{Identifier: "openai/gpt-4o", ContextWindowTokens: 100, MaxOutputTokens: 200},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
