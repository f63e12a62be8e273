package service

import (
	"context"
	"sync"

	"askbot/internal/core/domain"
	"askbot/internal/core/port"
)

type sentReply struct {
	text       string
	visibility domain.Visibility
	followUp   bool
}

// recordingSink records replies. With honorContext set it rejects sends on a
// done context, like the Discord and Telegram clients do.
type recordingSink struct {
	mu           sync.Mutex
	replies      []sentReply
	deferred     int
	deferErr     error
	replyErr     error
	honorContext bool
}

func (r *recordingSink) ReplyNow(ctx context.Context, text string, visibility domain.Visibility) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.honorContext && ctx.Err() != nil {
		return ctx.Err()
	}

	r.replies = append(r.replies, sentReply{text: text, visibility: visibility})
	return r.replyErr
}

func (r *recordingSink) Defer(_ context.Context) (port.FollowUp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deferred++
	if r.deferErr != nil {
		return nil, r.deferErr
	}
	return &recordingFollowUp{sink: r}, nil
}

func (r *recordingSink) sent() []sentReply {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]sentReply(nil), r.replies...)
}

type recordingFollowUp struct {
	sink *recordingSink
}

func (f *recordingFollowUp) Send(ctx context.Context, text string, visibility domain.Visibility) error {
	f.sink.mu.Lock()
	defer f.sink.mu.Unlock()

	if f.sink.honorContext && ctx.Err() != nil {
		return ctx.Err()
	}

	f.sink.replies = append(f.sink.replies, sentReply{text: text, visibility: visibility, followUp: true})
	return nil
}

type generatorFunc func(ctx context.Context, prompt domain.Prompt) (domain.ModelResponse, error)

func (f generatorFunc) GenerateFromPrompt(ctx context.Context, prompt domain.Prompt) (domain.ModelResponse, error) {
	return f(ctx, prompt)
}

// commandFunc adapts a function into a port.Command for dispatcher tests.
type commandFunc struct {
	descriptor domain.CommandDescriptor
	respond    func(ctx context.Context, inv *domain.Invocation, args domain.Args, sink port.ReplySink) error
	calls      int
}

func (c *commandFunc) Descriptor() domain.CommandDescriptor {
	return c.descriptor
}

func (c *commandFunc) Respond(ctx context.Context, inv *domain.Invocation, args domain.Args,
	sink port.ReplySink) error {
	c.calls++
	return c.respond(ctx, inv, args, sink)
}
