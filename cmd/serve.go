package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"askbot/internal/adapters/handler"
	"askbot/internal/config"

	"github.com/bwmarrin/discordgo"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	telegramPollTimeout = time.Minute
	discordHTTPTimeout  = 20 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Connect to the configured chat platform and answer commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		app, err := newApplication(cfg)
		if err != nil {
			return fmt.Errorf("building application: %w", err)
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		log.Info().
			Str("platform", cfg.Platform).
			Strs("commands", app.registry.ListCommands()).
			Bool("completion", cfg.Completion.Availability.Enabled).
			Msg("starting askbot")

		switch cfg.Platform {
		case config.PlatformTelegram:
			return serveTelegram(ctx, app)
		default:
			return serveDiscord(ctx, app)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serveDiscord(ctx context.Context, app *application) error {
	cfg := app.cfg

	s, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}

	s.Client = newHTTPClient(cfg.Proxy, discordHTTPTimeout)
	s.Dialer = newWebsocketDialer(cfg.Proxy)

	s.Identify.Intents = discordgo.IntentsGuilds
	if cfg.Greeting {
		s.Identify.Intents |= discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages |
			discordgo.IntentsMessageContent
	}

	h := handler.NewDiscord(ctx, app.dispatcher, cfg.Greeting)
	s.AddHandler(h.HandleInteraction)
	s.AddHandler(h.HandleMessage)
	s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("connected to discord")

		if !cfg.Discord.SyncCommands {
			return
		}

		if err := handler.SyncCommands(s, r.User.ID, cfg.Discord.GuildID, app.registry.Descriptors()); err != nil {
			log.Error().Err(err).Msg("failed to sync slash commands")
		}
	})

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	defer s.Close()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	return nil
}

func serveTelegram(ctx context.Context, app *application) error {
	cfg := app.cfg

	// updates only arrive after Start, by then h is set
	var h *handler.Telegram

	b, err := bot.New(cfg.Telegram.Token,
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			h.Handle(ctx, b, update)
		}),
		bot.WithHTTPClient(telegramPollTimeout, newHTTPClient(cfg.Proxy, telegramPollTimeout+10*time.Second)),
	)
	if err != nil {
		return fmt.Errorf("failed initializing telegram bot: %w", err)
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch bot identity: %w", err)
	}

	h = handler.NewTelegram(app.dispatcher, cfg.Greeting, me.Username)

	if err := handler.SyncTelegramCommands(ctx, b, app.registry.Descriptors()); err != nil {
		log.Error().Err(err).Msg("failed to publish command list")
	}

	log.Info().Str("username", me.Username).Msg("bot listening")
	b.Start(ctx)

	return nil
}
