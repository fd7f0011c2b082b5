// ABOUTME: LLM provider contract used by prompt hooks for judged decisions
// ABOUTME: Providers are injected explicitly; there is no global default

package llm

import "context"

// Provider completes a single prompt and returns the model's reply text.
type Provider interface {
	// Name returns the human-readable provider name.
	Name() string
	// Complete sends prompt as one user message. An empty model selects
	// the provider's default. The reply is capped at the provider's
	// configured response size.
	Complete(ctx context.Context, prompt, model string) (string, error)
}
