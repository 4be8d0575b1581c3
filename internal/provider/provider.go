// Package provider abstracts the text-generation backends behind a narrow
// interface so the evaluator can be exercised in tests with a scripted
// completer instead of a live API.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/Crax-AI/crax.app/internal/env"
)

// Sentinel errors for provider operations.
var (
	ErrRateLimit       = errors.New("rate limit exceeded")
	ErrTimeout         = errors.New("request timed out")
	ErrInvalidResponse = errors.New("invalid response from provider")
)

// Completer generates text completions from a prompt.
type Completer interface {
	// Complete returns a text completion for the given prompt.
	Complete(ctx context.Context, prompt string) (string, error)
}

// FromEnv builds the Completer selected by LLM_PROVIDER / LLM_MODEL.
func FromEnv() (Completer, error) {
	switch env.LLM_PROVIDER {
	case "anthropic":
		if env.ANTHROPIC_API_KEY == "" {
			return nil, errors.New("ANTHROPIC_API_KEY is not set")
		}
		return NewAnthropicCompleter(env.ANTHROPIC_API_KEY, env.LLM_MODEL), nil
	case "openai":
		if env.OPENAI_API_KEY == "" {
			return nil, errors.New("OPENAI_API_KEY is not set")
		}
		return NewOpenAICompleter(env.OPENAI_API_KEY, env.LLM_MODEL), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", env.LLM_PROVIDER)
	}
}
