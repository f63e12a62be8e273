package handler

import (
	"context"
	"time"

	"askbot/internal/core/domain"
	"askbot/internal/core/port"

	"github.com/stretchr/testify/mock"
)

type MockDispatcher struct {
	mock.Mock
	done chan *domain.Invocation
}

func newMockDispatcher() *MockDispatcher {
	return &MockDispatcher{done: make(chan *domain.Invocation, 8)}
}

func (m *MockDispatcher) Dispatch(ctx context.Context, inv *domain.Invocation, sink port.ReplySink) {
	m.Called(ctx, inv, sink)
	m.done <- inv
}

func (m *MockDispatcher) wait() *domain.Invocation {
	select {
	case inv := <-m.done:
		return inv
	case <-time.After(time.Second):
		return nil
	}
}
