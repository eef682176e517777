// Package provider defines the unified interface for LLM provider clients.
//
// junior routes prompts to remote API providers (OpenAI, Anthropic, Groq,
// Gemini) and to locally hosted models served by an OpenAI-compatible
// runtime (Ollama). All of them implement the same Client interface so the
// brain can treat a handle uniformly regardless of which vendor is behind
// it.
//
// # Usage
//
// Create a client using the registry:
//
//	client, err := provider.New(provider.OpenAI, provider.Config{
//	    Model:  "gpt-4o",
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
// # Supported providers
//
//   - provider.OpenAI: OpenAI chat completions (JSON mode)
//   - provider.Anthropic: Anthropic Messages API (Anthropic-JSON mode)
//   - provider.Groq: Groq's OpenAI-compatible endpoint
//   - provider.Gemini: Google Gemini (application/json response mode)
//   - provider.Ollama: local Ollama runtime, OpenAI-compatible endpoint
//
// The provider set is closed: unknown names are rejected at parse time
// rather than falling through string comparisons at dispatch time.
package provider

import "context"

// Client is a live handle to one provider/model pair.
// Implementations must be safe for concurrent use.
type Client interface {
	// Complete sends a prompt and blocks until the full response arrives.
	// The context controls cancellation and timeouts.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider this client talks to.
	Name() Name

	// Model returns the model identifier this client is bound to.
	Model() string

	// Close releases any resources held by the client.
	Close() error
}
