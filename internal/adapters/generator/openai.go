package generator

import (
	"context"
	"fmt"
	"net/http"

	"askbot/internal/core/domain"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAIClient interface {
	CreateChatCompletion(ctx context.Context,
		request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI talks to the OpenAI chat completions API or any compatible endpoint.
type OpenAI struct {
	client       OpenAIClient
	model        string
	systemPrompt string
}

func NewOpenAI(apiKey, baseURL, model, systemPrompt string, httpClient *http.Client) *OpenAI {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if httpClient != nil {
		config.HTTPClient = httpClient
	}

	return &OpenAI{
		client:       openai.NewClientWithConfig(config),
		model:        model,
		systemPrompt: systemPrompt,
	}
}

func (o *OpenAI) GenerateFromPrompt(ctx context.Context, prompt domain.Prompt) (domain.ModelResponse, error) {
	var messages []openai.ChatCompletionMessage

	if o.systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: o.systemPrompt,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt.Prompt,
	})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: messages,
	})
	if err != nil {
		return domain.ModelResponse{}, fmt.Errorf("openai API error: %w", err)
	}

	var text string
	if len(resp.Choices) > 0 {
		text = resp.Choices[0].Message.Content
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
