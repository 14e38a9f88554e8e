package testutil

import (
	"context"
	"errors"
	"sync"

	"guadavillas/model"
)

// MockProvider implements model.Provider for testing
type MockProvider struct {
	// Configurable responses
	ChatFunc func(ctx context.Context, messages []model.Message, callback model.StreamCallback) error

	mu           sync.Mutex
	calls        [][]model.Message
	currentModel string
}

// NewMockProvider creates a mock provider that streams chunks for every call.
func NewMockProvider(modelName string, chunks ...string) *MockProvider {
	if len(chunks) == 0 {
		chunks = []string{"Mock response"}
	}
	mock := &MockProvider{currentModel: modelName}
	mock.ChatFunc = func(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
		return streamChunks(ctx, chunks, nil, callback)
	}
	return mock
}

func (m *MockProvider) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	m.mu.Lock()
	m.calls = append(m.calls, append([]model.Message(nil), messages...))
	m.mu.Unlock()

	return m.ChatFunc(ctx, messages, callback)
}

func (m *MockProvider) GetModel() string {
	return m.currentModel
}

// Calls returns the message lists passed to Chat, oldest first.
func (m *MockProvider) Calls() [][]model.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]model.Message(nil), m.calls...)
}

// ScriptedSession implements model.ChatSession. Every Send streams
// Fragments in order, then returns Err.
type ScriptedSession struct {
	Fragments []string
	Err       error

	// Gate, when set, holds Send before the first fragment until it is
	// closed or the context ends.
	Gate chan struct{}

	mu   sync.Mutex
	sent []string
}

func NewScriptedSession(fragments ...string) *ScriptedSession {
	return &ScriptedSession{Fragments: fragments}
}

// NewFailingSession streams fragments and then fails with err.
func NewFailingSession(err error, fragments ...string) *ScriptedSession {
	return &ScriptedSession{Fragments: fragments, Err: err}
}

func (s *ScriptedSession) Send(ctx context.Context, text string, callback model.StreamCallback) error {
	s.mu.Lock()
	s.sent = append(s.sent, text)
	s.mu.Unlock()

	if s.Gate != nil {
		select {
		case <-s.Gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return streamChunks(ctx, s.Fragments, s.Err, callback)
}

// Sent returns the texts passed to Send, oldest first.
func (s *ScriptedSession) Sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func streamChunks(ctx context.Context, chunks []string, tail error, callback model.StreamCallback) error {
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if callback != nil {
			if err := callback(chunk); err != nil {
				return err
			}
		}
	}
	return tail
}

var ErrFactory = errors.New("session factory failure")

// CountingFactory builds sessions and counts the attempts. The first
// FailFirst calls fail with ErrFactory.
type CountingFactory struct {
	Session   model.ChatSession
	FailFirst int

	mu       sync.Mutex
	attempts int
}

func NewCountingFactory(session model.ChatSession) *CountingFactory {
	return &CountingFactory{Session: session}
}

// Build matches provider.SessionFactory.
func (f *CountingFactory) Build(ctx context.Context) (model.ChatSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.attempts++
	if f.attempts <= f.FailFirst {
		return nil, ErrFactory
	}
	return f.Session, nil
}

func (f *CountingFactory) Attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}

// StaticSource implements model.SessionSource without any caching logic.
type StaticSource struct {
	Session model.ChatSession
	Err     error
}

func (s StaticSource) Session(ctx context.Context) (model.ChatSession, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Session, nil
}
