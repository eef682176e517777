package brain

import (
	"log/slog"

	"github.com/puntorigen/junior/model"
)

// Choose picks the best available model for a prompt and category.
//
// Every catalogue entry with an initialized client is considered in
// catalogue order. An entry whose usage limits are exhausted is replaced
// by its fallback when that fallback has its own client; otherwise it is
// skipped for this call. The (possibly substituted) model qualifies when
// it supports the category and the prompt plus its worst-case output fit
// its context window. Among qualifiers the one with the most headroom
// wins; the first maximum observed breaks ties.
//
// The fallback substitution is a single hop: the fallback's own limits
// are not re-checked.
func (b *Brain) Choose(prompt, category string) (model.Config, bool) {
	promptTokens := b.counter.Count(prompt)

	var (
		best      model.Config
		bestScore int
		found     bool
	)

	for _, cfg := range b.catalog.All() {
		if _, ok := b.clients[cfg.Identifier]; !ok {
			continue
		}

		candidate := cfg
		if cfg.Limits.Exceeded(b.tracker.Usage(cfg.Identifier)) {
			fb, ok := b.fallbackFor(cfg)
			if !ok {
				slog.Debug("model over limit with no usable fallback",
					slog.String("identifier", cfg.Identifier))
				continue
			}
			slog.Debug("substituting fallback for exhausted model",
				slog.String("identifier", cfg.Identifier),
				slog.String("fallback", fb.Identifier))
			candidate = fb
		}

		if !candidate.SupportsCategory(category) {
			continue
		}
		if !candidate.FitsPrompt(promptTokens) {
			continue
		}

		score := candidate.Headroom(promptTokens)
		if !found || score > bestScore {
			best = candidate
			bestScore = score
			found = true
		}
	}

	if !found {
		slog.Info("no suitable model",
			slog.String("category", category),
			slog.Int("prompt_tokens", promptTokens))
		return model.Config{}, false
	}

	slog.Info("model selected",
		slog.String("identifier", best.Identifier),
		slog.String("category", category),
		slog.Int("headroom", bestScore))
	return best, true
}

// fallbackFor resolves a model's fallback to its catalogue entry,
// requiring an initialized client for it.
func (b *Brain) fallbackFor(cfg model.Config) (model.Config, bool) {
	if cfg.Fallback == "" {
		return model.Config{}, false
	}
	fb, ok := b.catalog.Get(cfg.Fallback)
	if !ok {
		return model.Config{}, false
	}
	if _, ok := b.clients[fb.Identifier]; !ok {
		return model.Config{}, false
	}
	return fb, true
}
