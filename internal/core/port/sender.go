package port

import (
	"context"

	"askbot/internal/core/domain"
)

// ReplySink answers a single invocation. Exactly one terminal action, ReplyNow or
// Defer followed by one FollowUp.Send, may happen per invocation.
type ReplySink interface {
	// ReplyNow sends an immediate response with the given visibility.
	ReplyNow(ctx context.Context, text string, visibility domain.Visibility) error
	// Defer acknowledges the invocation right away and returns a handle for the final message.
	Defer(ctx context.Context) (FollowUp, error)
}

type FollowUp interface {
	// Send delivers the final message of a deferred invocation.
	Send(ctx context.Context, text string, visibility domain.Visibility) error
}

// Dispatcher routes normalized invocations to commands.
type Dispatcher interface {
	Dispatch(ctx context.Context, inv *domain.Invocation, sink ReplySink)
}
