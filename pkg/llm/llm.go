// Package llm defines the language model abstractions shared by the
// assistant and the indexer. Provider implementations live in the
// ollama and openai subpackages.
package llm

import "context"

// Generator produces a complete text response for a prompt.
//
// Implementations block until the full response is available; the
// caller bounds latency through the context.
type Generator interface {
	// Generate returns the model response for a prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f(ctx, prompt).
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
