package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"askbot/internal/core/domain"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBot struct {
	mock.Mock
}

func (m *MockBot) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	args := m.Called(ctx, params)
	return nil, args.Error(1)
}

func (m *MockBot) SetMyCommands(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error) {
	args := m.Called(ctx, params)
	return args.Bool(0), args.Error(1)
}

func (m *MockBot) SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error) {
	args := m.Called(ctx, params)
	return args.Bool(0), args.Error(1)
}

func textUpdate(text string, from *models.User) *models.Update {
	return &models.Update{Message: &models.Message{
		ID:   99,
		Date: int(time.Now().Unix()),
		Chat: models.Chat{ID: -100},
		From: from,
		Text: text,
	}}
}

func TestTelegram_HandleCommand(t *testing.T) {
	type TestCase struct {
		description string
		update      *models.Update
		wantCommand string
		wantText    string
		wantName    string
	}

	testCases := []TestCase{
		{
			description: "command with arguments",
			update:      textUpdate("/add 2 3", &models.User{ID: 5, Username: "gopher", FirstName: "Go"}),
			wantCommand: "add",
			wantText:    "2 3",
			wantName:    "@gopher",
		},
		{
			description: "command addressed to the bot",
			update:      textUpdate("/ping@askbot", &models.User{ID: 5, FirstName: "Go"}),
			wantCommand: "ping",
			wantText:    "",
			wantName:    "Go",
		},
		{
			description: "bot name matched case-insensitively",
			update:      textUpdate("/add@AskBot 1 2", &models.User{ID: 5, FirstName: "Go"}),
			wantCommand: "add",
			wantText:    "1 2",
			wantName:    "Go",
		},
		{
			description: "command in a caption",
			update: &models.Update{Message: &models.Message{
				ID:      99,
				Chat:    models.Chat{ID: -100},
				From:    &models.User{ID: 5, FirstName: "Go"},
				Caption: "/complete describe this",
			}},
			wantCommand: "complete",
			wantText:    "describe this",
			wantName:    "Go",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			dispatcher := newMockDispatcher()
			dispatcher.On("Dispatch", mock.Anything, mock.Anything, mock.Anything).Return()

			h := NewTelegram(dispatcher, false, "askbot")
			h.handle(context.Background(), &MockBot{}, testCase.update)

			inv := dispatcher.wait()
			require.NotNil(t, inv)

			assert.NotEmpty(t, inv.ID)
			assert.Equal(t, domain.Telegram, inv.Platform)
			assert.Equal(t, testCase.wantCommand, inv.Command)
			assert.Equal(t, testCase.wantText, inv.Text)
			assert.Equal(t, "5", inv.Caller.ID)
			assert.Equal(t, "-100", inv.Caller.ChannelID)
			assert.Equal(t, testCase.wantName, inv.Caller.Name)
			assert.GreaterOrEqual(t, inv.Latency, time.Duration(0))
		})
	}
}

func TestTelegram_IgnoresUpdatesWithoutMessage(t *testing.T) {
	dispatcher := newMockDispatcher()
	h := NewTelegram(dispatcher, true, "askbot")

	h.handle(context.Background(), &MockBot{}, &models.Update{})
	h.handle(context.Background(), &MockBot{}, &models.Update{Message: &models.Message{Text: "/ping"}})

	assert.Nil(t, dispatcher.wait())
}

func TestTelegram_IgnoresCommandsForOtherBots(t *testing.T) {
	type TestCase struct {
		description string
		text        string
	}

	testCases := []TestCase{
		{description: "known command", text: "/ping@someotherbot"},
		{description: "unknown command", text: "/weather@someotherbot berlin"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			b := &MockBot{}
			dispatcher := newMockDispatcher()

			h := NewTelegram(dispatcher, true, "askbot")
			h.handle(context.Background(), b, textUpdate(testCase.text, &models.User{ID: 5, FirstName: "Go"}))

			assert.Nil(t, dispatcher.wait())
			dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
			b.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
		})
	}
}

func TestTelegram_Greeting(t *testing.T) {
	type TestCase struct {
		description string
		greeting    bool
		from        *models.User
		text        string
		wantReply   string
	}

	testCases := []TestCase{
		{
			description: "greets when enabled",
			greeting:    true,
			from:        &models.User{ID: 5, Username: "gopher"},
			text:        "HELLO",
			wantReply:   "Hello, @gopher!",
		},
		{
			description: "silent when disabled",
			from:        &models.User{ID: 5, Username: "gopher"},
			text:        "hello",
		},
		{
			description: "ignores bots",
			greeting:    true,
			from:        &models.User{ID: 6, IsBot: true},
			text:        "hello",
		},
		{
			description: "ignores other text",
			greeting:    true,
			from:        &models.User{ID: 5},
			text:        "good morning",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			b := &MockBot{}
			if testCase.wantReply != "" {
				b.On("SendMessage", mock.Anything, mock.MatchedBy(func(p *bot.SendMessageParams) bool {
					return p.Text == testCase.wantReply && p.ChatID == int64(-100) && p.ReplyParameters.MessageID == 99
				})).Return(nil, nil).Once()
			}

			dispatcher := newMockDispatcher()
			h := NewTelegram(dispatcher, testCase.greeting, "askbot")
			h.handle(context.Background(), b, textUpdate(testCase.text, testCase.from))

			b.AssertExpectations(t)
			if testCase.wantReply == "" {
				b.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything)
			}
			dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTelegram_GreetingSendFailureIsLogged(t *testing.T) {
	b := &MockBot{}
	b.On("SendMessage", mock.Anything, mock.Anything).Return(nil, errors.New("blocked")).Once()

	h := NewTelegram(newMockDispatcher(), true, "askbot")

	assert.NotPanics(t, func() {
		h.handle(context.Background(), b, textUpdate("hello", &models.User{ID: 5}))
	})
	b.AssertExpectations(t)
}

func TestSyncTelegramCommands(t *testing.T) {
	b := &MockBot{}
	b.On("SetMyCommands", mock.Anything, mock.MatchedBy(func(p *bot.SetMyCommandsParams) bool {
		return len(p.Commands) == 2 &&
			p.Commands[0] == models.BotCommand{Command: "add", Description: "Add two integers"} &&
			p.Commands[1] == models.BotCommand{Command: "ping", Description: "ping"}
	})).Return(true, nil).Once()

	err := SyncTelegramCommands(context.Background(), b, []domain.CommandDescriptor{
		{Name: "add", Description: "Add two integers"},
		{Name: "ping"},
	})

	require.NoError(t, err)
	b.AssertExpectations(t)
}

func TestSyncTelegramCommandsError(t *testing.T) {
	b := &MockBot{}
	b.On("SetMyCommands", mock.Anything, mock.Anything).Return(false, errors.New("unauthorized"))

	err := SyncTelegramCommands(context.Background(), b, nil)
	assert.ErrorContains(t, err, "unauthorized")
}
