// Package ollama registers the local runtime provider. Ollama serves an
// OpenAI-compatible endpoint, so the client is the openai package's client
// pointed at the local host. No real credential exists; the API key is a
// fixed placeholder the runtime ignores.
package ollama

import (
	"github.com/puntorigen/junior/openai"
	"github.com/puntorigen/junior/provider"
)

// DefaultBaseURL is the local Ollama OpenAI-compatible endpoint.
const DefaultBaseURL = "http://localhost:11434/v1"

// placeholderKey satisfies the Authorization header; Ollama ignores it.
const placeholderKey = "ollama"

func init() {
	provider.Register(provider.Ollama, func(cfg provider.Config) (provider.Client, error) {
		cfg.Provider = provider.Ollama
		if cfg.BaseURL == "" {
			cfg.BaseURL = DefaultBaseURL
		}
		if cfg.APIKey == "" {
			cfg.APIKey = placeholderKey
		}
		return openai.NewClient(provider.Ollama, cfg)
	})
}
