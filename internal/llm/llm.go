package llm

import "context"

// Generator abstracts a text-generation provider. Implementations are
// expected to be unreliable, rate-limited and possibly slow; callers decide
// how to retry or fall back across models.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}
