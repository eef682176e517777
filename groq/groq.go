// Package groq registers the Groq provider. Groq exposes an
// OpenAI-compatible chat completions API, so the client is the openai
// package's client pointed at Groq's endpoint.
package groq

import (
	"github.com/puntorigen/junior/openai"
	"github.com/puntorigen/junior/provider"
)

// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

func init() {
	provider.Register(provider.Groq, func(cfg provider.Config) (provider.Client, error) {
		cfg.Provider = provider.Groq
		if cfg.BaseURL == "" {
			cfg.BaseURL = DefaultBaseURL
		}
		return openai.NewClient(provider.Groq, cfg)
	})
}
