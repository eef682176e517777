// Package tokens provides token counting and per-model usage tracking.
//
// The counter estimates how many tokens a prompt will consume so the brain
// can check token fit against a model's context window before dispatching.
// The tracker accumulates tokens actually spent per model so the brain can
// detect when a model has exhausted its configured limit.
//
//	counter := tokens.NewEstimatingCounter()
//	count := counter.Count("Summarize the latest AI research papers.")
//
//	tracker := tokens.NewTracker()
//	tracker.Record("openai/gpt-4o", count)
//	if tracker.Exceeds("openai/gpt-4o", 100_000) {
//	    // switch to the fallback model
//	}
package tokens
