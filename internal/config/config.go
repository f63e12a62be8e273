package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"askbot/internal/core/domain"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	PlatformDiscord  = "discord"
	PlatformTelegram = "telegram"

	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
)

type Config struct {
	Platform string
	LogLevel string
	Greeting bool

	Discord    Discord
	Telegram   Telegram
	Completion Completion

	MaxReplyLength int
	HandlerTimeout time.Duration
	Proxy          *url.URL
	AllowedIDs     []string
}

type Discord struct {
	Token        string
	GuildID      string
	SyncCommands bool
}

type Telegram struct {
	Token string
}

type Completion struct {
	Provider     string
	APIKey       string
	Model        string
	BaseURL      string
	SystemPrompt string
	Timeout      time.Duration
	Availability domain.FeatureAvailability
}

var envKeys = map[string]string{
	"bot.platform":             "BOT_PLATFORM",
	"bot.log_level":            "BOT_LOG_LEVEL",
	"bot.greeting":             "BOT_GREETING",
	"discord.bot_token":        "DISCORD_TOKEN",
	"discord.guild_id":         "DISCORD_GUILD_ID",
	"discord.sync_commands":    "DISCORD_SYNC_COMMANDS",
	"telegram.bot_token":       "TELEGRAM_BOT_TOKEN",
	"completion.provider":      "COMPLETION_PROVIDER",
	"completion.api_key":       "COMPLETION_API_KEY",
	"completion.model":         "COMPLETION_MODEL",
	"completion.base_url":      "COMPLETION_BASE_URL",
	"completion.system_prompt": "COMPLETION_SYSTEM_PROMPT",
	"completion.timeout":       "COMPLETION_TIMEOUT",
	"chat.max_reply_length":    "CHAT_MAX_REPLY_LENGTH",
	"handler.timeout":          "HANDLER_TIMEOUT",
	"network.proxy":            "BOT_PROXY",
	"access.allowed_ids":       "BOT_ALLOWED_IDS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.platform", PlatformDiscord)
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("bot.greeting", false)
	v.SetDefault("discord.sync_commands", true)
	v.SetDefault("completion.provider", ProviderOpenRouter)
	v.SetDefault("completion.model", "openai/gpt-4o-mini")
	v.SetDefault("completion.timeout", "30s")
	v.SetDefault("chat.max_reply_length", domain.MessageLimit)
	v.SetDefault("handler.timeout", "2m")
}

// Load reads configuration from an optional TOML file and the environment.
// An empty path searches for config.toml in the working directory.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}

	v := viper.New()
	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	setDefaults(v)
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		log.Debug().Msg("no config file found, using environment only")
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Platform: strings.ToLower(strings.TrimSpace(v.GetString("bot.platform"))),
		LogLevel: v.GetString("bot.log_level"),
		Greeting: v.GetBool("bot.greeting"),
		Discord: Discord{
			Token:        v.GetString("discord.bot_token"),
			GuildID:      v.GetString("discord.guild_id"),
			SyncCommands: v.GetBool("discord.sync_commands"),
		},
		Telegram: Telegram{
			Token: v.GetString("telegram.bot_token"),
		},
		Completion: Completion{
			Provider:     strings.ToLower(strings.TrimSpace(v.GetString("completion.provider"))),
			APIKey:       strings.TrimSpace(v.GetString("completion.api_key")),
			Model:        v.GetString("completion.model"),
			BaseURL:      v.GetString("completion.base_url"),
			SystemPrompt: v.GetString("completion.system_prompt"),
		},
		MaxReplyLength: v.GetInt("chat.max_reply_length"),
		AllowedIDs:     splitList(v.GetStringSlice("access.allowed_ids")),
	}

	var err error
	if cfg.Completion.Timeout, err = duration(v, "completion.timeout"); err != nil {
		return nil, err
	}
	if cfg.HandlerTimeout, err = duration(v, "handler.timeout"); err != nil {
		return nil, err
	}
	if cfg.Completion.Timeout >= cfg.HandlerTimeout {
		return nil, fmt.Errorf("completion.timeout (%s) must be shorter than handler.timeout (%s)",
			cfg.Completion.Timeout, cfg.HandlerTimeout)
	}

	if raw := strings.TrimSpace(v.GetString("network.proxy")); raw != "" {
		cfg.Proxy, err = url.Parse(raw)
		if err != nil || cfg.Proxy.Host == "" {
			return nil, fmt.Errorf("invalid proxy url %q", raw)
		}
	}

	if cfg.MaxReplyLength <= 0 {
		return nil, fmt.Errorf("chat.max_reply_length must be positive, got %d", cfg.MaxReplyLength)
	}

	switch cfg.Completion.Provider {
	case ProviderOpenRouter, ProviderOpenAI:
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Completion.Provider)
	}

	cfg.Completion.Availability = completionAvailability(cfg.Completion)

	return cfg, nil
}

// Validate checks the credentials needed to connect the selected platform.
func (c *Config) Validate() error {
	switch c.Platform {
	case PlatformDiscord:
		if c.Discord.Token == "" {
			return fmt.Errorf("%w: DISCORD_TOKEN (discord.bot_token)", domain.ErrConfigMissing)
		}
	case PlatformTelegram:
		if c.Telegram.Token == "" {
			return fmt.Errorf("%w: TELEGRAM_BOT_TOKEN (telegram.bot_token)", domain.ErrConfigMissing)
		}
	default:
		return fmt.Errorf("unknown platform %q, expected %q or %q", c.Platform, PlatformDiscord, PlatformTelegram)
	}

	return nil
}

func completionAvailability(c Completion) domain.FeatureAvailability {
	if c.APIKey == "" {
		return domain.Unavailable("COMPLETION_API_KEY is not set")
	}
	return domain.Available()
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

// splitList accepts both TOML arrays and comma separated environment values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
