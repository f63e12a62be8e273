package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"askbot/internal/core/domain"
	"askbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

const DefaultCompletionTimeout = 30 * time.Second

// NewCompleter returns a bounded completion client, or a disabled one when the
// feature could not be configured at startup.
func NewCompleter(availability domain.FeatureAvailability, generator port.TextGenerator,
	timeout time.Duration, limit int) port.Completer {
	if !availability.Enabled || generator == nil {
		log.Warn().Str("reason", availability.Reason).Msg("completion disabled")
		return &DisabledCompleter{reason: availability.Reason}
	}

	if timeout <= 0 {
		timeout = DefaultCompletionTimeout
	}

	if limit <= 0 {
		limit = domain.MessageLimit
	}

	return &CompletionClient{generator: generator, timeout: timeout, limit: limit}
}

type CompletionClient struct {
	generator port.TextGenerator
	timeout   time.Duration
	limit     int
}

type completionResult struct {
	response domain.ModelResponse
	err      error
}

func (c *CompletionClient) Ready() error {
	return nil
}

func (c *CompletionClient) Complete(ctx context.Context, prompt domain.Prompt) (string, error) {
	if strings.TrimSpace(prompt.Prompt) == "" {
		return "", domain.ErrEmptyPrompt
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// buffered so a provider that outlives the deadline never blocks
	results := make(chan completionResult, 1)

	go func() {
		resp, err := c.generator.GenerateFromPrompt(ctx, prompt)
		results <- completionResult{response: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %s", domain.ErrTimeout, c.timeout)
		}
		return "", fmt.Errorf("completion cancelled: %w", ctx.Err())
	case r := <-results:
		if r.err != nil {
			if errors.Is(r.err, context.DeadlineExceeded) {
				return "", fmt.Errorf("%w: %w", domain.ErrTimeout, r.err)
			}
			return "", fmt.Errorf("%w: %w", domain.ErrUpstream, r.err)
		}

		log.Debug().
			Str("model", r.response.Metadata.Model).
			Int("completionTokens", r.response.Metadata.CompletionTokens).
			Int("totalTokens", r.response.Metadata.TotalTokens).
			Msg("completion received")

		text := strings.TrimSpace(r.response.Response)
		if text == "" {
			return domain.EmptyCompletionText, nil
		}

		return domain.Truncate(text, c.limit), nil
	}
}

// DisabledCompleter answers every call with domain.ErrNotConfigured and never touches the network.
type DisabledCompleter struct {
	reason string
}

func (d *DisabledCompleter) Ready() error {
	if d.reason == "" {
		return domain.ErrNotConfigured
	}
	return fmt.Errorf("%w: %s", domain.ErrNotConfigured, d.reason)
}

func (d *DisabledCompleter) Complete(_ context.Context, _ domain.Prompt) (string, error) {
	return "", d.Ready()
}
