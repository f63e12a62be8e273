package sender

import (
	"context"
	"fmt"
	"io"

	"askbot/internal/core/domain"
	"askbot/internal/core/port"
)

// Console prints replies for invocations run from the command line.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) ReplyNow(_ context.Context, text string, visibility domain.Visibility) error {
	return c.write(text, visibility)
}

func (c *Console) Defer(_ context.Context) (port.FollowUp, error) {
	if _, err := fmt.Fprintln(c.out, "working..."); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Console) Send(_ context.Context, text string, visibility domain.Visibility) error {
	return c.write(text, visibility)
}

func (c *Console) write(text string, visibility domain.Visibility) error {
	if visibility == domain.Private {
		text = "(private) " + text
	}

	_, err := fmt.Fprintln(c.out, text)
	return err
}
