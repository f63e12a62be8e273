package command

import (
	"context"
	"fmt"

	"askbot/internal/core/domain"
	"askbot/internal/core/port"
)

type Add struct{}

func NewAdd() *Add {
	return &Add{}
}

func (a *Add) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "add",
		Description: "Add two numbers",
		Parameters: []domain.ParamSpec{
			{Name: "a", Description: "The first number", Type: domain.Integer, Required: true},
			{Name: "b", Description: "The second number", Type: domain.Integer, Required: true},
		},
	}
}

func (a *Add) Respond(ctx context.Context, _ *domain.Invocation, args domain.Args, sink port.ReplySink) error {
	x, y := args.Int("a"), args.Int("b")

	return sink.ReplyNow(ctx, fmt.Sprintf("%d + %d = %d", x, y, x+y), domain.Public)
}
