package sender

import (
	"context"
	"time"

	"askbot/internal/core/domain"
	"askbot/internal/core/port"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

//go:generate mockery --name TelegramBot

type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
}

const ChatActionRepeatSeconds = 5

// Telegram answers a single command message. Private replies go to the caller's own chat.
type Telegram struct {
	bot            TelegramBot
	chatID         int64
	messageID      int
	userID         int64
	actionInterval time.Duration
}

func NewTelegram(b TelegramBot, chatID int64, messageID int, userID int64) *Telegram {
	return &Telegram{
		bot:            b,
		chatID:         chatID,
		messageID:      messageID,
		userID:         userID,
		actionInterval: ChatActionRepeatSeconds * time.Second,
	}
}

func (s *Telegram) ReplyNow(ctx context.Context, text string, visibility domain.Visibility) error {
	return s.send(ctx, text, visibility)
}

// Defer shows a typing indicator right away and keeps it alive until the follow-up is sent.
func (s *Telegram) Defer(ctx context.Context) (port.FollowUp, error) {
	if err := s.sendChatAction(ctx); err != nil {
		log.Warn().Err(err).Int64("chatId", s.chatID).Msg("error sending chat action")
	}

	actionCtx, cancel := context.WithCancel(ctx)
	go s.keepTyping(actionCtx)

	return &telegramFollowUp{parent: s, stopTyping: cancel}, nil
}

func (s *Telegram) send(ctx context.Context, text string, visibility domain.Visibility) error {
	params := &bot.SendMessageParams{
		ChatID: s.chatID,
		Text:   text,
		ReplyParameters: &models.ReplyParameters{
			MessageID: s.messageID,
			ChatID:    s.chatID,
		},
	}

	if visibility == domain.Private && s.userID != 0 && s.userID != s.chatID {
		_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{ChatID: s.userID, Text: text})
		if err == nil {
			return nil
		}
		// users who never started the bot cannot be messaged directly
		log.Warn().Err(err).Int64("userId", s.userID).Msg("direct message failed, replying in chat")
	}

	_, err := s.bot.SendMessage(ctx, params)
	if err != nil {
		log.Error().Err(err).Int64("chatId", s.chatID).Msg("failed to send message")
	}

	return err
}

func (s *Telegram) sendChatAction(ctx context.Context) error {
	_, err := s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
		ChatID: s.chatID,
		Action: models.ChatActionTyping,
	})
	return err
}

func (s *Telegram) keepTyping(ctx context.Context) {
	log.Debug().Int64("chatId", s.chatID).Msg("starting action routine")

	ticker := time.NewTicker(s.actionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Int64("chatId", s.chatID).Msg("done, stopping action routine")
			return
		case <-ticker.C:
		}

		log.Debug().Int64("chatId", s.chatID).Msg("transmitting action")
		if err := s.sendChatAction(ctx); err != nil {
			log.Err(err).Msg("error sending chat action")
			return
		}
	}
}

type telegramFollowUp struct {
	parent     *Telegram
	stopTyping context.CancelFunc
}

func (f *telegramFollowUp) Send(ctx context.Context, text string, visibility domain.Visibility) error {
	f.stopTyping()
	return f.parent.send(ctx, text, visibility)
}
