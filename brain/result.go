package brain

import "github.com/puntorigen/junior/provider"

// Outcome classifies how a dispatch ended. Callers branch on it instead
// of inspecting an undifferentiated nil result.
type Outcome int

const (
	// OutcomeOK means the response was received and coerced successfully.
	OutcomeOK Outcome = iota

	// OutcomeNoMatch means no configured model qualified for the request.
	OutcomeNoMatch

	// OutcomeSchemaMismatch means a response arrived but could not be
	// coerced into the requested output shape.
	OutcomeSchemaMismatch

	// OutcomeProviderError means the selected client failed to complete.
	OutcomeProviderError
)

// String returns a log-friendly label.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNoMatch:
		return "no-match"
	case OutcomeSchemaMismatch:
		return "schema-mismatch"
	case OutcomeProviderError:
		return "provider-error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one dispatch. Model and Usage are populated
// whenever a client was actually invoked, including failed attempts.
type Result struct {
	Outcome Outcome

	// Model is the identifier of the model that handled (or attempted)
	// the request. Empty when no model qualified.
	Model string

	// Raw is the unprocessed response text.
	Raw string

	// Usage reports the tokens spent on this call.
	Usage provider.TokenUsage

	// Err carries the underlying provider or coercion error for logging.
	// It is informational; the Outcome is the contract.
	Err error
}

// OK reports whether the dispatch produced a usable result.
func (r Result) OK() bool { return r.Outcome == OutcomeOK }
