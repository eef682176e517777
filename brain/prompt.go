package brain

import (
	"context"
	"log/slog"

	"github.com/puntorigen/junior/model"
	"github.com/puntorigen/junior/provider"
	"github.com/puntorigen/junior/schema"
)

// Query is one dispatch request.
type Query struct {
	// Prompt is the user prompt. Required.
	Prompt string

	// System is an optional system prompt prefix. Output-schema
	// instructions are appended to it when Output is set.
	System string

	// Model pins the dispatch to an explicit "provider/model" identifier.
	// When it names an initialized client, selection is bypassed entirely,
	// category and token-fit checks included. When it does not, selection
	// runs as if no model had been named.
	Model string

	// Category is the task category for selection. Empty means any model
	// qualifies on category grounds.
	Category string

	// Output, when non-nil, must be a pointer to the struct the response
	// is coerced into. Nil returns the raw text without coercion.
	Output any
}

// Prompt executes one prompt/response cycle: resolve a client, send the
// prompt, record usage, coerce the response. It never fails hard for
// provider or validation problems; the Result's Outcome says what
// happened.
func (b *Brain) Prompt(ctx context.Context, q Query) Result {
	cfg, ok := b.resolve(q)
	if !ok {
		return Result{Outcome: OutcomeNoMatch}
	}
	client := b.clients[cfg.Identifier]

	system := q.System
	if q.Output != nil {
		instructions, err := schema.Instructions(q.Output)
		if err != nil {
			slog.Error("output schema generation failed", slog.Any("error", err))
			return Result{Outcome: OutcomeSchemaMismatch, Err: err}
		}
		if system != "" {
			system += "\n\n"
		}
		system += instructions
	}

	promptTokens := b.counter.Count(system + q.Prompt)

	resp, err := client.Complete(ctx, provider.Request{
		SystemPrompt: system,
		Prompt:       q.Prompt,
		MaxTokens:    cfg.MaxOutputTokens,
	})

	// The counted prompt tokens are recorded for every attempted call,
	// valid response or not.
	b.tracker.Record(cfg.Identifier, promptTokens)

	if err != nil {
		slog.Error("provider call failed",
			slog.String("identifier", cfg.Identifier),
			slog.Any("error", err))
		return Result{Outcome: OutcomeProviderError, Model: cfg.Identifier, Err: err}
	}

	result := Result{
		Outcome: OutcomeOK,
		Model:   cfg.Identifier,
		Raw:     resp.Content,
		Usage:   resp.Usage,
	}

	if q.Output != nil {
		if err := schema.Coerce(resp.Content, q.Output); err != nil {
			slog.Error("response did not match output schema",
				slog.String("identifier", cfg.Identifier),
				slog.Any("error", err))
			result.Outcome = OutcomeSchemaMismatch
			result.Err = err
			return result
		}
	}

	slog.Debug("dispatch complete",
		slog.String("identifier", cfg.Identifier),
		slog.Int("tokens", promptTokens))
	return result
}

// resolve returns the model config to dispatch to: the explicitly named
// one when it has a client, otherwise the selector's choice.
func (b *Brain) resolve(q Query) (model.Config, bool) {
	if q.Model != "" {
		if _, ok := b.clients[q.Model]; ok {
			cfg, ok := b.catalog.Get(q.Model)
			if ok {
				slog.Debug("explicit model", slog.String("identifier", q.Model))
				return cfg, true
			}
		}
		slog.Debug("explicit model unavailable, falling back to selection",
			slog.String("identifier", q.Model))
	}
	return b.Choose(q.Prompt, q.Category)
}
