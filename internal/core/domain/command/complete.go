package command

import (
	"context"
	"fmt"

	"askbot/internal/core/domain"
	"askbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Complete struct {
	completer port.Completer
}

func NewComplete(completer port.Completer) *Complete {
	return &Complete{completer: completer}
}

func (c *Complete) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "complete",
		Description: "Ask the model a question",
		Parameters: []domain.ParamSpec{
			{Name: "prompt", Description: "What do you want to ask?", Type: domain.String, Required: true},
		},
	}
}

func (c *Complete) Respond(ctx context.Context, inv *domain.Invocation, args domain.Args, sink port.ReplySink) error {
	l := log.With().
		Str("invocationId", inv.ID).
		Str("caller", inv.Caller.ID).
		Str("command", c.Descriptor().Name).
		Logger()

	l.Info().Msg("handling request")

	if err := c.completer.Ready(); err != nil {
		l.Warn().Err(err).Msg("completion requested but not configured")
		return sink.ReplyNow(ctx, domain.UserMessage(err), domain.Private)
	}

	followUp, err := sink.Defer(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	text, err := c.completer.Complete(ctx, domain.Prompt{
		Prompt: args.String("prompt"),
		Author: domain.User,
		Caller: inv.Caller.Name,
	})
	if err != nil {
		l.Error().Err(err).Msg("failed to generate completion")

		err = followUp.Send(ctx, domain.UserMessage(err), domain.Private)
		if err != nil {
			l.Error().Err(err).Msg(domain.ErrSendingReplyFailed.Error())
			return err
		}

		return nil
	}

	l.Debug().Int("length", len(text)).Msg("completion generated")

	err = followUp.Send(ctx, text, domain.Public)
	if err != nil {
		l.Error().Err(err).Msg(domain.ErrSendingReplyFailed.Error())
		return err
	}

	return nil
}
