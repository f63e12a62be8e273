package generator

import (
	"context"
	"errors"
	"testing"

	"askbot/internal/core/domain"

	"github.com/revrost/go-openrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a test double for the OpenRouterClient interface.
type mockClient struct {
	createChatCompletionFunc func(ctx context.Context,
		ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

func (m *mockClient) CreateChatCompletion(ctx context.Context,
	ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error) {
	return m.createChatCompletionFunc(ctx, ccr)
}

func TestOpenRouter_GenerateFromPrompt(t *testing.T) {
	type TestCase struct {
		description  string
		systemPrompt string
		prompt       domain.Prompt
		mockResp     openrouter.ChatCompletionResponse
		mockErr      error
		wantMessages int
		expectedResp domain.ModelResponse
		expectErr    bool
	}

	testCases := []TestCase{
		{
			description: "success, user prompt only",
			prompt:      domain.Prompt{Prompt: "hi", Author: domain.User},
			mockResp:    openrouter.ChatCompletionResponse{
				Choices: []openrouter.ChatCompletionChoice{{
					Message: openrouter.ChatCompletionMessage{
						Content: openrouter.Content{Text: "hello!"},
					},
				}},
				Model: "openai/gpt-4.1",
				Usage: openrouter.Usage{
					CompletionTokens: 7,
					TotalTokens:      9,
				},
			},
			wantMessages: 1,
			expectedResp: domain.ModelResponse{
				Response: "hello!",
				Metadata: domain.ResponseMetadata{
					Model:            "openai/gpt-4.1",
					CompletionTokens: 7,
					TotalTokens:      9,
				},
			},
		},
		{
			description:  "success, with system prompt",
			systemPrompt: "be brief",
			prompt:       domain.Prompt{Prompt: "hi", Author: domain.User},
			mockResp:     openrouter.ChatCompletionResponse{
				Choices: []openrouter.ChatCompletionChoice{{
					Message: openrouter.ChatCompletionMessage{
						Content: openrouter.Content{Text: "hey"},
					},
				}},
				Model: "openai/gpt-4.1",
			},
			wantMessages: 2,
			expectedResp: domain.ModelResponse{
				Response: "hey",
				Metadata: domain.ResponseMetadata{Model: "openai/gpt-4.1"},
			},
		},
		{
			description:  "no choices yields empty response",
			prompt:       domain.Prompt{Prompt: "hi", Author: domain.User},
			mockResp:     openrouter.ChatCompletionResponse{Model: "openai/gpt-4.1"},
			wantMessages: 1,
			expectedResp: domain.ModelResponse{
				Metadata: domain.ResponseMetadata{Model: "openai/gpt-4.1"},
			},
		},
		{
			description:  "API error returned",
			prompt:       domain.Prompt{Prompt: "fail", Author: domain.User},
			mockErr:      errors.New("api failure"),
			wantMessages: 1,
			expectErr:    true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			var got openrouter.ChatCompletionRequest
			mock := &mockClient{
				createChatCompletionFunc: func(_ context.Context,
					ccr openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error) {
					got = ccr
					return testCase.mockResp, testCase.mockErr
				},
			}
			gen := &OpenRouter{
				client:       mock,
				model:        "openai/gpt-4.1",
				systemPrompt: testCase.systemPrompt,
			}

			resp, err := gen.GenerateFromPrompt(t.Context(), testCase.prompt)

			require.Len(t, got.Messages, testCase.wantMessages)
			assert.Equal(t, "openai/gpt-4.1", got.Model)
			assert.Equal(t, testCase.prompt.Prompt, got.Messages[len(got.Messages)-1].Content.Text)

			if testCase.expectErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testCase.expectedResp, resp)
			}
		})
	}
}

func TestNewOpenRouter(t *testing.T) {
	gen := NewOpenRouter("key", "", "openai/gpt-4o-mini", "system", nil)

	assert.NotNil(t, gen.client)
	assert.Equal(t, "openai/gpt-4o-mini", gen.model)
	assert.Equal(t, "system", gen.systemPrompt)
}
