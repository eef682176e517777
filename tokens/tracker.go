package tokens

import (
	"sync"
)

// Usage is the cumulative spend recorded against one model.
type Usage struct {
	Tokens   int
	Requests int
}

// Add adds the given usage to this usage.
func (u *Usage) Add(other Usage) {
	u.Tokens += other.Tokens
	u.Requests += other.Requests
}

// Tracker accumulates token usage per model identifier. It is owned by the
// brain instance that records against it; state lives for the process and is
// reset only by restart (no persistence).
type Tracker struct {
	mu     sync.RWMutex
	totals map[string]Usage
}

// NewTracker creates an empty usage tracker.
func NewTracker() *Tracker {
	return &Tracker{
		totals: make(map[string]Usage),
	}
}

// Record adds spent tokens for the given model identifier.
func (t *Tracker) Record(model string, spent int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	u := t.totals[model]
	u.Tokens += spent
	u.Requests++
	t.totals[model] = u
}

// Total returns the cumulative tokens recorded for a model.
func (t *Tracker) Total(model string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totals[model].Tokens
}

// Usage returns the full usage record for a model.
func (t *Tracker) Usage(model string) Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totals[model]
}

// Exceeds reports whether the model's cumulative tokens exceed limit.
// A limit of 0 means unlimited and never reports true.
func (t *Tracker) Exceeds(model string, limit int) bool {
	if limit <= 0 {
		return false
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totals[model].Tokens > limit
}

// Summary returns a copy of all usage totals keyed by model identifier.
func (t *Tracker) Summary() map[string]Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make(map[string]Usage, len(t.totals))
	for k, v := range t.totals {
		result[k] = v
	}
	return result
}

// TotalUsage returns aggregated usage across all models.
func (t *Tracker) TotalUsage() Usage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var total Usage
	for _, u := range t.totals {
		total.Add(u)
	}
	return total
}

// Reset clears all tracked usage.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.totals = make(map[string]Usage)
}
