// Package llm provides the text-generation capability consumed by the tick
// orchestrator. The engine treats it as opaque: prompts in, text out, with a
// provider error when unconfigured or the upstream call fails.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no provider credential is configured.
// Callers degrade to empty content; this is never fatal to a tick.
var ErrUnavailable = errors.New("llm: no provider configured")

// Request is one completion request.
type Request struct {
	Prompt       string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
}

// Generator is the text-completion capability.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
