package service

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"askbot/internal/core/domain"
	"askbot/internal/core/port"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const DefaultHandlerTimeout = 2 * time.Minute

type Dispatcher struct {
	registry   port.CommandRegistry
	authorizer Authorizer
	timeout    time.Duration
}

func NewDispatcher(registry port.CommandRegistry, authorizer Authorizer, timeout time.Duration) *Dispatcher {
	if authorizer == nil {
		authorizer = NewAuthorizer(nil)
	}

	if timeout <= 0 {
		timeout = DefaultHandlerTimeout
	}

	return &Dispatcher{registry: registry, authorizer: authorizer, timeout: timeout}
}

// Dispatch runs the command named by the invocation and makes sure the caller
// gets exactly one final answer, whatever the command does.
func (d *Dispatcher) Dispatch(ctx context.Context, inv *domain.Invocation, sink port.ReplySink) {
	l := log.With().
		Str("invocationId", inv.ID).
		Str("platform", string(inv.Platform)).
		Str("command", inv.Command).
		Str("caller", inv.Caller.ID).
		Logger()

	l.Debug().Msg("dispatching invocation")

	guard := NewGuardedSink(sink)
	start := time.Now()

	err := d.run(ctx, l, inv, guard)

	switch {
	case err != nil:
		logFailure(l, err)
	case !guard.Done():
		err = fmt.Errorf("%w: command returned without a final reply", domain.ErrHandlerCrash)
		l.Error().Err(err).Send()
	default:
		l.Info().Dur("took", time.Since(start)).Msg("invocation handled")
		return
	}

	if guard.Done() {
		return
	}

	if sendErr := guard.Finish(ctx, domain.UserMessage(err), domain.Private); sendErr != nil {
		l.Error().Err(sendErr).Msg(domain.ErrSendingReplyFailed.Error())
	}
}

func (d *Dispatcher) run(ctx context.Context, l zerolog.Logger, inv *domain.Invocation, sink *GuardedSink) (err error) {
	defer func() {
		if r := recover(); r != nil {
			l.Error().Str("stack", string(debug.Stack())).Interface("panic", r).Msg("command panicked")
			err = fmt.Errorf("%w: %v", domain.ErrHandlerCrash, r)
		}
	}()

	cmd, err := d.registry.Get(inv.Command)
	if err != nil {
		return err
	}

	if !d.authorizer.IsAuthorized(inv.Caller) {
		return fmt.Errorf("%w: %s", domain.ErrForbidden, inv.Caller.ID)
	}

	args, err := domain.Bind(cmd.Descriptor().Parameters, inv)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	return cmd.Respond(ctx, inv, args, sink)
}

func logFailure(l zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrCommandNotFound),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrForbidden):
		l.Info().Err(err).Msg("invocation rejected")
	default:
		l.Error().Err(err).Msg("failed to handle invocation")
	}
}
