// Package brain selects a capable provider client for each prompt and
// dispatches it, tracking token usage and coercing responses into the
// caller's output shape.
//
// A Brain is built once from settings and a model catalogue. Clients
// that cannot be initialized (missing credential, disabled local model)
// are simply absent; selection only ever considers initialized clients.
package brain

import (
	"context"
	"log/slog"

	"github.com/puntorigen/junior/model"
	"github.com/puntorigen/junior/provider"
	"github.com/puntorigen/junior/settings"
	"github.com/puntorigen/junior/tokens"
)

// Runtime is the local model runtime the Brain ensures is up when local
// models are configured. docker.Manager satisfies it.
type Runtime interface {
	EnsureRunning(ctx context.Context) error
}

// Brain routes prompts to the best available provider client.
type Brain struct {
	catalog *model.Catalog
	clients map[string]provider.Client
	counter tokens.Counter
	tracker *tokens.Tracker
}

// Option adjusts Brain construction.
type Option func(*options)

type options struct {
	counter tokens.Counter
	runtime Runtime
	clients map[string]provider.Client
}

// WithCounter substitutes the token counter. The default is the
// character-ratio estimator.
func WithCounter(c tokens.Counter) Option {
	return func(o *options) { o.counter = c }
}

// WithRuntime sets the local runtime manager to start before local
// clients are built. Nil disables runtime management.
func WithRuntime(r Runtime) Option {
	return func(o *options) { o.runtime = r }
}

// WithClient installs a pre-built client for an identifier, taking
// precedence over anything settings would construct for it.
func WithClient(identifier string, c provider.Client) Option {
	return func(o *options) {
		if o.clients == nil {
			o.clients = make(map[string]provider.Client)
		}
		o.clients[identifier] = c
	}
}

// New builds a Brain from settings and the capability catalogue. Remote
// clients are constructed for every catalogue entry with a non-empty
// credential; local clients for every entry marked local that the
// settings enable. Entries that yield no client are skipped silently —
// fewer available models, not an error.
func New(ctx context.Context, s *settings.Settings, catalog *model.Catalog, opts ...Option) (*Brain, error) {
	o := options{counter: tokens.NewEstimatingCounter()}
	for _, opt := range opts {
		opt(&o)
	}

	b := &Brain{
		catalog: catalog,
		clients: make(map[string]provider.Client),
		counter: o.counter,
		tracker: tokens.NewTracker(),
	}

	for id, c := range o.clients {
		b.clients[id] = c
	}

	// Remote pass first: a remote handle wins over a local one for the
	// same identifier.
	for _, cfg := range catalog.All() {
		if _, ok := b.clients[cfg.Identifier]; ok {
			continue
		}
		key, configured := s.Credential(cfg.Identifier)
		if !configured || key == "" {
			continue
		}
		b.initClient(cfg, key, "")
	}

	if s.HasLocalModels() && catalog.HasLocal() {
		if o.runtime != nil {
			if err := o.runtime.EnsureRunning(ctx); err != nil {
				slog.Warn("local runtime unavailable, skipping local models",
					slog.Any("error", err))
			} else {
				b.initLocal(s, catalog)
			}
		} else {
			b.initLocal(s, catalog)
		}
	}

	slog.Debug("brain ready", slog.Int("clients", len(b.clients)))
	return b, nil
}

func (b *Brain) initLocal(s *settings.Settings, catalog *model.Catalog) {
	for _, cfg := range catalog.All() {
		if !cfg.Local || !s.LLM.Local[cfg.Identifier] {
			continue
		}
		if _, ok := b.clients[cfg.Identifier]; ok {
			continue
		}
		b.initClient(cfg, "", s.OllamaHost)
	}
}

// initClient constructs and stores one client handle. The switch over
// the provider name is exhaustive so adding a provider constant without
// handling it here is caught in review, not at runtime.
func (b *Brain) initClient(cfg model.Config, key, localHost string) {
	name, modelName, err := provider.ParseIdentifier(cfg.Identifier)
	if err != nil {
		slog.Warn("skipping model with invalid identifier",
			slog.String("identifier", cfg.Identifier),
			slog.Any("error", err))
		return
	}

	pc := provider.Config{
		Provider:        name,
		Model:           modelName,
		APIKey:          key,
		MaxOutputTokens: cfg.MaxOutputTokens,
	}

	switch name {
	case provider.OpenAI, provider.Groq, provider.Anthropic, provider.Gemini:
		// Remote defaults are fine.
	case provider.Ollama:
		pc.BaseURL = localHost
	default:
		slog.Warn("skipping model for unsupported provider",
			slog.String("identifier", cfg.Identifier))
		return
	}

	client, err := provider.New(name, pc)
	if err != nil {
		slog.Warn("skipping model that failed to initialize",
			slog.String("identifier", cfg.Identifier),
			slog.Any("error", err))
		return
	}

	b.clients[cfg.Identifier] = client
	slog.Debug("client initialized", slog.String("identifier", cfg.Identifier))
}

// Models returns the identifiers with initialized clients, in catalogue
// order.
func (b *Brain) Models() []string {
	var ids []string
	for _, cfg := range b.catalog.All() {
		if _, ok := b.clients[cfg.Identifier]; ok {
			ids = append(ids, cfg.Identifier)
		}
	}
	return ids
}

// Client returns the initialized client for an identifier, if any.
func (b *Brain) Client(identifier string) (provider.Client, bool) {
	c, ok := b.clients[identifier]
	return c, ok
}

// Usage returns the cumulative per-model usage recorded so far.
func (b *Brain) Usage() map[string]tokens.Usage {
	return b.tracker.Summary()
}

// TotalUsage returns the cumulative usage across all models.
func (b *Brain) TotalUsage() tokens.Usage {
	return b.tracker.TotalUsage()
}

// Close releases every client handle. The Brain is unusable afterwards.
func (b *Brain) Close() error {
	var firstErr error
	for id, c := range b.clients {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(b.clients, id)
	}
	return firstErr
}
