package cmd

import (
	"net/http"
	"net/url"
	"time"

	"askbot/internal/adapters/generator"
	"askbot/internal/config"
	"askbot/internal/core/domain/command"
	"askbot/internal/core/port"
	"askbot/internal/core/service"

	"github.com/gorilla/websocket"
)

// application holds everything built once at startup and shared read-only by all invocations.
type application struct {
	cfg        *config.Config
	registry   *command.Registry
	dispatcher *service.Dispatcher
}

func newApplication(cfg *config.Config) (*application, error) {
	httpClient := newHTTPClient(cfg.Proxy, cfg.Completion.Timeout)

	completer := service.NewCompleter(
		cfg.Completion.Availability,
		newGenerator(cfg.Completion, httpClient),
		cfg.Completion.Timeout,
		cfg.MaxReplyLength,
	)

	registry := command.NewRegistry()
	for _, c := range []port.Command{
		command.NewPing(),
		command.NewAdd(),
		command.NewComplete(completer),
	} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &application{
		cfg:        cfg,
		registry:   registry,
		dispatcher: service.NewDispatcher(registry, service.NewAuthorizer(cfg.AllowedIDs), cfg.HandlerTimeout),
	}, nil
}

func newGenerator(c config.Completion, httpClient *http.Client) port.TextGenerator {
	if !c.Availability.Enabled {
		return nil
	}

	switch c.Provider {
	case config.ProviderOpenAI:
		return generator.NewOpenAI(c.APIKey, c.BaseURL, c.Model, c.SystemPrompt, httpClient)
	default:
		return generator.NewOpenRouter(c.APIKey, c.BaseURL, c.Model, c.SystemPrompt, httpClient)
	}
}

func newHTTPClient(proxy *url.URL, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxy != nil {
		transport.Proxy = http.ProxyURL(proxy)
	}

	return &http.Client{Transport: transport, Timeout: timeout}
}

func newWebsocketDialer(proxy *url.URL) *websocket.Dialer {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 45 * time.Second
	if proxy != nil {
		dialer.Proxy = http.ProxyURL(proxy)
	}

	return &dialer
}
