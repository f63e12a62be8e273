package handler

import (
	"context"
	"fmt"
	"time"

	"askbot/internal/adapters/sender"
	"askbot/internal/core/domain"
	"askbot/internal/core/port"
	"askbot/internal/core/service"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type DiscordMessenger interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordCommandSyncer interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand,
		options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Discord turns gateway events into invocations for the dispatcher.
type Discord struct {
	ctx        context.Context
	dispatcher port.Dispatcher
	greeting   bool
}

func NewDiscord(ctx context.Context, dispatcher port.Dispatcher, greeting bool) *Discord {
	return &Discord{ctx: ctx, dispatcher: dispatcher, greeting: greeting}
}

func (d *Discord) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	d.handleInteraction(s, s.HeartbeatLatency(), i)
}

func (d *Discord) HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	var botID string
	if s.State != nil && s.State.User != nil {
		botID = s.State.User.ID
	}

	d.handleMessage(s, botID, m)
}

func (d *Discord) handleInteraction(session sender.DiscordSession, latency time.Duration, i *discordgo.InteractionCreate) {
	if i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	inv := normalizeInteraction(i, latency)

	log.Debug().
		Str("invocationId", inv.ID).
		Str("command", inv.Command).
		Str("caller", inv.Caller.ID).
		Msg("received interaction")

	go d.dispatcher.Dispatch(d.ctx, inv, sender.NewDiscord(session, i.Interaction))
}

func (d *Discord) handleMessage(messenger DiscordMessenger, botID string, m *discordgo.MessageCreate) {
	if !d.greeting || m.Message == nil || m.Author == nil || m.Author.Bot || m.Author.ID == botID {
		return
	}

	reply, ok := service.Greeting(m.Content, m.Author.Mention())
	if !ok {
		return
	}

	if _, err := messenger.ChannelMessageSend(m.ChannelID, reply); err != nil {
		log.Err(err).Str("channelId", m.ChannelID).Msg("failed to send greeting")
	}
}

func normalizeInteraction(i *discordgo.InteractionCreate, latency time.Duration) *domain.Invocation {
	data := i.ApplicationCommandData()

	options := make(map[string]any, len(data.Options))
	for _, opt := range data.Options {
		options[opt.Name] = opt.Value
	}

	user := i.User
	if i.Member != nil && i.Member.User != nil {
		user = i.Member.User
	}

	var caller domain.Caller
	if user != nil {
		caller = domain.Caller{ID: user.ID, Name: user.Username, Mention: user.Mention()}
	}
	caller.ChannelID = i.ChannelID

	return &domain.Invocation{
		ID:         newInvocationID(),
		Platform:   domain.Discord,
		Command:    data.Name,
		Caller:     caller,
		Options:    options,
		Latency:    nonNegative(latency),
		ReceivedAt: time.Now(),
	}
}

// SyncCommands overwrites the application's slash commands with the registered descriptors.
// An empty guildID registers global commands.
func SyncCommands(syncer DiscordCommandSyncer, appID, guildID string, descriptors []domain.CommandDescriptor) error {
	commands := make([]*discordgo.ApplicationCommand, len(descriptors))
	for i, desc := range descriptors {
		commands[i] = toApplicationCommand(desc)
	}

	synced, err := syncer.ApplicationCommandBulkOverwrite(appID, guildID, commands)
	if err != nil {
		return fmt.Errorf("failed to sync slash commands: %w", err)
	}

	log.Info().Int("count", len(synced)).Str("guildId", guildID).Msg("synced slash commands")

	return nil
}

func toApplicationCommand(desc domain.CommandDescriptor) *discordgo.ApplicationCommand {
	options := make([]*discordgo.ApplicationCommandOption, len(desc.Parameters))
	for i, p := range desc.Parameters {
		optionType := discordgo.ApplicationCommandOptionString
		if p.Type == domain.Integer {
			optionType = discordgo.ApplicationCommandOptionInteger
		}

		options[i] = &discordgo.ApplicationCommandOption{
			Type:        optionType,
			Name:        p.Name,
			Description: orDefault(p.Description, p.Name),
			Required:    p.Required,
		}
	}

	return &discordgo.ApplicationCommand{
		Name:        desc.Name,
		Description: orDefault(desc.Description, desc.Name),
		Type:        discordgo.ChatApplicationCommand,
		Options:     options,
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
