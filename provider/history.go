package provider

import (
	"context"
	"strings"
	"sync"
	"time"

	"guadavillas/model"
)

// HistorySession turns a stateless model.Provider into a model.ChatSession
// by replaying the conversation on every request. History starts with the
// system instruction and only grows when an exchange completes, so it holds
// exactly what the provider answered.
type HistorySession struct {
	mu       sync.Mutex
	provider model.Provider
	history  []model.Message
}

func NewHistorySession(p model.Provider, instruction string) *HistorySession {
	s := &HistorySession{provider: p}
	if instruction != "" {
		s.history = append(s.history, model.Message{
			Role:      "system",
			Content:   instruction,
			Timestamp: time.Now(),
		})
	}
	return s
}

// Send implements model.ChatSession.
func (s *HistorySession) Send(ctx context.Context, text string, callback model.StreamCallback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userMsg := model.Message{Role: "user", Content: text, Timestamp: time.Now()}

	messages := make([]model.Message, 0, len(s.history)+1)
	messages = append(messages, s.history...)
	messages = append(messages, userMsg)

	var reply strings.Builder
	err := s.provider.Chat(ctx, messages, func(chunk string) error {
		reply.WriteString(chunk)
		if callback != nil {
			return callback(chunk)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.history = append(s.history, userMsg, model.Message{
		Role:      "assistant",
		Content:   reply.String(),
		Timestamp: time.Now(),
	})
	return nil
}

// History returns a copy of the messages sent with the next request.
func (s *HistorySession) History() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Message, len(s.history))
	copy(out, s.history)
	return out
}

func (s *HistorySession) GetModel() string {
	return s.provider.GetModel()
}
