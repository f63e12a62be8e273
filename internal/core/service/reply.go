package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"askbot/internal/core/domain"
	"askbot/internal/core/port"
)

// SendTimeout bounds a final message once the command's own deadline no longer applies.
const SendTimeout = 10 * time.Second

type replyState int32

const (
	stateIdle replyState = iota
	stateReplied
	stateDeferred
	stateFollowedUp
)

// GuardedSink wraps a transport sink and enforces a single terminal action per invocation.
type GuardedSink struct {
	sink     port.ReplySink
	state    atomic.Int32
	followUp port.FollowUp
}

func NewGuardedSink(sink port.ReplySink) *GuardedSink {
	return &GuardedSink{sink: sink}
}

func (g *GuardedSink) ReplyNow(ctx context.Context, text string, visibility domain.Visibility) error {
	if !g.transition(stateIdle, stateReplied) {
		return fmt.Errorf("%w: reply after %s", domain.ErrReplyAlreadySent, g.current())
	}

	ctx, cancel := sendContext(ctx)
	defer cancel()

	return g.sink.ReplyNow(ctx, text, visibility)
}

func (g *GuardedSink) Defer(ctx context.Context) (port.FollowUp, error) {
	if !g.transition(stateIdle, stateDeferred) {
		return nil, fmt.Errorf("%w: defer after %s", domain.ErrReplyAlreadySent, g.current())
	}

	f, err := g.sink.Defer(ctx)
	if err != nil {
		g.transition(stateDeferred, stateIdle)
		return nil, err
	}

	g.followUp = f

	return &guardedFollowUp{parent: g}, nil
}

// Done reports whether the invocation has received its final message.
func (g *GuardedSink) Done() bool {
	s := g.current()
	return s == stateReplied || s == stateFollowedUp
}

// Finish sends text through whichever terminal action is still available.
func (g *GuardedSink) Finish(ctx context.Context, text string, visibility domain.Visibility) error {
	switch g.current() {
	case stateIdle:
		return g.ReplyNow(ctx, text, visibility)
	case stateDeferred:
		if g.followUp == nil {
			return fmt.Errorf("%w: deferral was never acknowledged", domain.ErrSendingReplyFailed)
		}
		return (&guardedFollowUp{parent: g}).Send(ctx, text, visibility)
	default:
		return domain.ErrReplyAlreadySent
	}
}

func (g *GuardedSink) transition(from, to replyState) bool {
	return g.state.CompareAndSwap(int32(from), int32(to))
}

func (g *GuardedSink) current() replyState {
	return replyState(g.state.Load())
}

type guardedFollowUp struct {
	parent *GuardedSink
}

func (f *guardedFollowUp) Send(ctx context.Context, text string, visibility domain.Visibility) error {
	if !f.parent.transition(stateDeferred, stateFollowedUp) {
		return fmt.Errorf("%w: follow-up after %s", domain.ErrReplyAlreadySent, f.parent.current())
	}

	ctx, cancel := sendContext(ctx)
	defer cancel()

	return f.parent.followUp.Send(ctx, text, visibility)
}

// sendContext keeps the values of ctx but drops its deadline and cancellation,
// so the final message still goes out after the command timed out.
func sendContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), SendTimeout)
}

func (s replyState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateReplied:
		return "reply"
	case stateDeferred:
		return "defer"
	case stateFollowedUp:
		return "follow-up"
	default:
		return "unknown"
	}
}
