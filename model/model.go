package model

import (
	"fmt"
	"slices"

	"github.com/puntorigen/junior/provider"
	"github.com/puntorigen/junior/tokens"
)

// CategoryEverything is the wildcard task category. A request carrying it
// (or no category at all) qualifies every model on category grounds. In
// ExpertFor it is an ordinary label, matched only by wildcard requests.
const CategoryEverything = "everything"

// Limits caps the cumulative spend allowed against one model before the
// selector substitutes its fallback. Zero values mean unlimited.
type Limits struct {
	// Tokens is the cumulative token cap across all requests.
	Tokens int `yaml:"tokens" json:"tokens"`

	// Requests is the cumulative request cap.
	Requests int `yaml:"requests" json:"requests"`
}

// Exceeded reports whether the recorded usage has passed either cap.
func (l Limits) Exceeded(u tokens.Usage) bool {
	if l.Tokens > 0 && u.Tokens > l.Tokens {
		return true
	}
	if l.Requests > 0 && u.Requests > l.Requests {
		return true
	}
	return false
}

// Config describes one provider/model pair's capabilities.
// Loaded from the catalogue file at startup; immutable thereafter.
type Config struct {
	// Identifier is the "provider/model" name, e.g. "openai/gpt-4o".
	Identifier string `yaml:"identifier" json:"identifier"`

	// Local marks models served by the local runtime rather than a remote API.
	Local bool `yaml:"local" json:"local"`

	// ContextWindowTokens is the combined input+output token budget.
	ContextWindowTokens int `yaml:"context_window_tokens" json:"context_window_tokens"`

	// MaxOutputTokens is the model's worst-case output size. Token fit
	// requires prompt tokens + MaxOutputTokens <= ContextWindowTokens.
	MaxOutputTokens int `yaml:"max_output_tokens" json:"max_output_tokens"`

	// ExpertFor lists the task categories this model is trusted with.
	ExpertFor []string `yaml:"expert_for" json:"expert_for"`

	// Limits caps cumulative usage before the fallback takes over.
	Limits Limits `yaml:"limits" json:"limits"`

	// Fallback is the identifier of another configured model to substitute
	// when this model's limits are exhausted. Empty means no fallback.
	Fallback string `yaml:"fallback,omitempty" json:"fallback,omitempty"`
}

// SupportsCategory reports whether the model qualifies for the requested
// category. Only the request side is a wildcard: an empty or "everything"
// request qualifies every model, but a model listing "everything" in
// ExpertFor is matched literally like any other label.
func (c Config) SupportsCategory(category string) bool {
	if category == "" || category == CategoryEverything {
		return true
	}
	return slices.Contains(c.ExpertFor, category)
}

// FitsPrompt reports whether a prompt of the given token count plus the
// model's worst-case output fits inside its context window.
func (c Config) FitsPrompt(promptTokens int) bool {
	return promptTokens+c.MaxOutputTokens <= c.ContextWindowTokens
}

// Headroom is the selection score: context window minus prompt tokens.
// The qualifying model with the most headroom wins.
func (c Config) Headroom(promptTokens int) int {
	return c.ContextWindowTokens - promptTokens
}

// Validate checks a single record for internal consistency.
func (c Config) Validate() error {
	if c.Identifier == "" {
		return fmt.Errorf("model config: identifier is required")
	}
	if _, _, err := provider.ParseIdentifier(c.Identifier); err != nil {
		return fmt.Errorf("model config %q: %w", c.Identifier, err)
	}
	if c.ContextWindowTokens <= 0 {
		return fmt.Errorf("model config %q: context_window_tokens must be > 0", c.Identifier)
	}
	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("model config %q: max_output_tokens must be >= 0", c.Identifier)
	}
	if c.MaxOutputTokens > c.ContextWindowTokens {
		return fmt.Errorf("model config %q: max_output_tokens exceeds context window", c.Identifier)
	}
	return nil
}
