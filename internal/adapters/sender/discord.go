package sender

import (
	"context"

	"askbot/internal/core/domain"
	"askbot/internal/core/port"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

//go:generate mockery --name DiscordSession

// DiscordSession is the part of *discordgo.Session used to answer interactions.
type DiscordSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse,
		options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams,
		options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Discord answers a single slash command interaction.
type Discord struct {
	session     DiscordSession
	interaction *discordgo.Interaction
}

func NewDiscord(session DiscordSession, interaction *discordgo.Interaction) *Discord {
	return &Discord{session: session, interaction: interaction}
}

func (d *Discord) ReplyNow(ctx context.Context, text string, visibility domain.Visibility) error {
	return d.session.InteractionRespond(d.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
			Flags:   discordFlags(visibility),
		},
	}, discordgo.WithContext(ctx))
}

func (d *Discord) Defer(ctx context.Context) (port.FollowUp, error) {
	err := d.session.InteractionRespond(d.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx))
	if err != nil {
		log.Error().Err(err).Str("interactionId", d.interaction.ID).Msg("failed to defer interaction")
		return nil, err
	}

	return &discordFollowUp{parent: d}, nil
}

type discordFollowUp struct {
	parent *Discord
}

func (f *discordFollowUp) Send(ctx context.Context, text string, visibility domain.Visibility) error {
	_, err := f.parent.session.FollowupMessageCreate(f.parent.interaction, true, &discordgo.WebhookParams{
		Content: text,
		Flags:   discordFlags(visibility),
	}, discordgo.WithContext(ctx))

	return err
}

func discordFlags(visibility domain.Visibility) discordgo.MessageFlags {
	if visibility == domain.Private {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}
