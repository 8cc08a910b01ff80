// Package ai talks to the OpenAI chat API for insight generation. Callers
// never see raw transport errors: a missing key surfaces as
// types.ErrNoAPIKey and every request failure as types.ErrGenerationFailed,
// so services can decide between fallback copy and propagation.
package ai

import "context"

// Generator produces model output for prompts. The interface exists so
// services can be tested against canned generators.
type Generator interface {
	// Configured reports whether an API key is available.
	Configured() bool

	// ValidateKey checks the key against the models endpoint. The string
	// is a user-facing status message in both outcomes.
	ValidateKey(ctx context.Context) (bool, string)

	// Generate runs one chat completion and returns the full text.
	// Returns types.ErrNoAPIKey when no key is configured.
	Generate(ctx context.Context, prompt string) (string, error)

	// Stream runs one streaming chat completion, calling fn for every
	// token as it arrives. A non-nil error from fn aborts the stream and
	// is returned as-is. Returns types.ErrNoAPIKey when no key is
	// configured.
	Stream(ctx context.Context, prompt string, fn func(token string) error) error
}
