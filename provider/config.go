package provider

import (
	"fmt"
	"time"
)

// Config holds configuration for creating a provider client.
// Common fields apply to all providers; use Options for provider-specific
// settings.
type Config struct {
	// Provider is the provider to use. Required.
	Provider Name `json:"provider" yaml:"provider"`

	// Model is the model to use (provider-specific name).
	// Examples: "gpt-4o", "claude-sonnet-4-20250514", "llama3.2".
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the provider's API.
	// Local runtimes accept any non-empty placeholder.
	APIKey string `json:"api_key" yaml:"api_key"`

	// BaseURL overrides the provider's default endpoint. Used for
	// OpenAI-compatible runtimes (Groq, Ollama) and for testing.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxOutputTokens is the default response budget for requests that do
	// not set their own. 0 uses the provider default.
	MaxOutputTokens int `json:"max_output_tokens" yaml:"max_output_tokens"`

	// Timeout is the maximum duration for a completion request.
	// 0 uses the provider default.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Options holds provider-specific configuration.
	//
	// Common options by provider:
	//
	// openai / groq / ollama:
	//   - "json_mode": bool (request response_format json_object)
	//
	// gemini:
	//   - "backend": "gemini-api" | "vertex"
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// DefaultTimeout is applied when Config.Timeout is zero.
const DefaultTimeout = 2 * time.Minute

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if _, err := ParseName(string(c.Provider)); err != nil {
		return err
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %v", c.Timeout)
	}
	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("max_output_tokens must be >= 0, got %d", c.MaxOutputTokens)
	}
	return nil
}

// WithModel returns a copy of the config with the specified model.
func (c Config) WithModel(model string) Config {
	c.Model = model
	return c
}

// WithBaseURL returns a copy of the config with the specified base URL.
func (c Config) WithBaseURL(url string) Config {
	c.BaseURL = url
	return c
}

// GetStringOption retrieves a string option, returning defaultVal if not set.
func (c Config) GetStringOption(key, defaultVal string) string {
	if c.Options == nil {
		return defaultVal
	}
	if v, ok := c.Options[key].(string); ok {
		return v
	}
	return defaultVal
}

// GetBoolOption retrieves a bool option, returning defaultVal if not set.
func (c Config) GetBoolOption(key string, defaultVal bool) bool {
	if c.Options == nil {
		return defaultVal
	}
	if v, ok := c.Options[key].(bool); ok {
		return v
	}
	return defaultVal
}
