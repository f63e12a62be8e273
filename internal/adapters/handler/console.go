package handler

import (
	"context"
	"errors"
	"io"
	"os/user"
	"strings"
	"time"

	"askbot/internal/adapters/sender"
	"askbot/internal/core/domain"
	"askbot/internal/core/port"
)

// Console runs a single invocation given as command line arguments, e.g. `add 2 3`.
type Console struct {
	dispatcher port.Dispatcher
}

func NewConsole(dispatcher port.Dispatcher) *Console {
	return &Console{dispatcher: dispatcher}
}

func (c *Console) Run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("no command given")
	}

	name := "console"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}

	inv := &domain.Invocation{
		ID:         newInvocationID(),
		Platform:   domain.Console,
		Command:    domain.ParseCommand(args[0]),
		Caller:     domain.Caller{ID: name, Name: name, Mention: name},
		Text:       strings.Join(args[1:], " "),
		ReceivedAt: time.Now(),
	}

	c.dispatcher.Dispatch(ctx, inv, sender.NewConsole(out))

	return nil
}
