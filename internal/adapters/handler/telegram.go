package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"askbot/internal/adapters/sender"
	"askbot/internal/core/domain"
	"askbot/internal/core/port"
	"askbot/internal/core/service"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// Telegram turns updates into invocations. It is registered as the bot's default handler.
// Commands addressed to another bot with /command@othername are ignored.
type Telegram struct {
	dispatcher port.Dispatcher
	greeting   bool
	username   string
}

func NewTelegram(dispatcher port.Dispatcher, greeting bool, username string) *Telegram {
	return &Telegram{dispatcher: dispatcher, greeting: greeting, username: username}
}

func (t *Telegram) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	t.handle(ctx, b, update)
}

func (t *Telegram) handle(ctx context.Context, b sender.TelegramBot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil {
		return
	}

	msg := update.Message

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	if !strings.HasPrefix(text, "/") {
		t.greet(ctx, b, msg, text)
		return
	}

	if target := domain.CommandTarget(text); target != "" && !strings.EqualFold(target, t.username) {
		log.Debug().Str("target", target).Int64("chatId", msg.Chat.ID).Msg("ignoring command for another bot")
		return
	}

	inv := normalizeMessage(msg, text)

	log.Debug().
		Str("invocationId", inv.ID).
		Str("command", inv.Command).
		Int64("chatId", msg.Chat.ID).
		Msg("received command")

	go t.dispatcher.Dispatch(ctx, inv, sender.NewTelegram(b, msg.Chat.ID, msg.ID, msg.From.ID))
}

func (t *Telegram) greet(ctx context.Context, b sender.TelegramBot, msg *models.Message, text string) {
	if !t.greeting || msg.From.IsBot {
		return
	}

	reply, ok := service.Greeting(text, getUserNameOrFirstName(msg.From))
	if !ok {
		return
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   reply,
		ReplyParameters: &models.ReplyParameters{
			MessageID: msg.ID,
			ChatID:    msg.Chat.ID,
		},
	})
	if err != nil {
		log.Err(err).Int64("chatId", msg.Chat.ID).Msg("failed to send greeting")
	}
}

func normalizeMessage(msg *models.Message, text string) *domain.Invocation {
	var latency time.Duration
	if msg.Date > 0 {
		latency = time.Since(time.Unix(int64(msg.Date), 0))
	}

	return &domain.Invocation{
		ID:       newInvocationID(),
		Platform: domain.Telegram,
		Command:  domain.ParseCommand(text),
		Caller: domain.Caller{
			ID:        strconv.FormatInt(msg.From.ID, 10),
			Name:      getUserNameOrFirstName(msg.From),
			ChannelID: strconv.FormatInt(msg.Chat.ID, 10),
			Mention:   getUserNameOrFirstName(msg.From),
		},
		Text:       domain.ParseCommandArgs(text),
		Latency:    nonNegative(latency),
		ReceivedAt: time.Now(),
	}
}

func getUserNameOrFirstName(user *models.User) string {
	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}

type TelegramCommandPublisher interface {
	SetMyCommands(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error)
}

// SyncTelegramCommands publishes the registered commands so clients can suggest them.
func SyncTelegramCommands(ctx context.Context, publisher TelegramCommandPublisher,
	descriptors []domain.CommandDescriptor) error {
	commands := make([]models.BotCommand, len(descriptors))
	for i, desc := range descriptors {
		commands[i] = models.BotCommand{
			Command:     desc.Name,
			Description: orDefault(desc.Description, desc.Name),
		}
	}

	if _, err := publisher.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: commands}); err != nil {
		return fmt.Errorf("failed to set bot commands: %w", err)
	}

	return nil
}
