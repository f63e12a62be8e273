package command

import (
	"context"
	"fmt"

	"askbot/internal/core/domain"
	"askbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Ping struct{}

func NewPing() *Ping {
	return &Ping{}
}

func (p *Ping) Descriptor() domain.CommandDescriptor {
	return domain.CommandDescriptor{
		Name:        "ping",
		Description: "Check the bot latency",
	}
}

func (p *Ping) Respond(ctx context.Context, inv *domain.Invocation, _ domain.Args, sink port.ReplySink) error {
	latency := max(inv.Latency.Milliseconds(), 0)

	log.Debug().Str("invocationId", inv.ID).Int64("latencyMs", latency).Msg("answering ping")

	return sink.ReplyNow(ctx, fmt.Sprintf("Pong! latency is %dms", latency), domain.Public)
}
