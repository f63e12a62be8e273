package generator

import (
	"context"
	"fmt"
	"net/http"

	"askbot/internal/core/domain"

	"github.com/revrost/go-openrouter"
)

type OpenRouterClient interface {
	CreateChatCompletion(ctx context.Context,
		ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

type OpenRouter struct {
	client       OpenRouterClient
	model        string
	systemPrompt string
}

func NewOpenRouter(apiKey, baseURL, model, systemPrompt string, httpClient *http.Client) *OpenRouter {
	opts := []openrouter.Option{
		openrouter.WithXTitle("askbot"),
		func(c *openrouter.ClientConfig) {
			if baseURL != "" {
				c.BaseURL = baseURL
			}
			if httpClient != nil {
				c.HTTPClient = httpClient
			}
		},
	}

	return &OpenRouter{
		model:        model,
		systemPrompt: systemPrompt,
		client:       openrouter.NewClient(apiKey, opts...),
	}
}

func (o *OpenRouter) GenerateFromPrompt(ctx context.Context, prompt domain.Prompt) (domain.ModelResponse, error) {
	var messages []openrouter.ChatCompletionMessage

	if o.systemPrompt != "" {
		messages = append(messages, openrouter.ChatCompletionMessage{
			Role:    openrouter.ChatMessageRoleSystem,
			Content: openrouter.Content{Text: o.systemPrompt},
		})
	}

	messages = append(messages, openrouter.ChatCompletionMessage{
		Role:    openrouter.ChatMessageRoleUser,
		Content: openrouter.Content{Text: prompt.Prompt},
	})

	resp, err := o.client.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
		Model:    o.model,
		Messages: messages,
	})
	if err != nil {
		return domain.ModelResponse{}, fmt.Errorf("openrouter API error: %w", err)
	}

	var text string
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content.Text
	}

	return domain.ModelResponse{
		Response: text,
		Metadata: domain.ResponseMetadata{
			Model:            resp.Model,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
