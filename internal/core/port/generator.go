package port

import (
	"context"

	"askbot/internal/core/domain"
)

type TextGenerator interface {
	GenerateFromPrompt(ctx context.Context, prompt domain.Prompt) (domain.ModelResponse, error)
}

type Completer interface {
	// Ready reports domain.ErrNotConfigured when completions are disabled.
	Ready() error
	// Complete returns reply-ready text for a prompt, failing with domain.ErrTimeout,
	// domain.ErrUpstream or domain.ErrNotConfigured.
	Complete(ctx context.Context, prompt domain.Prompt) (string, error)
}
