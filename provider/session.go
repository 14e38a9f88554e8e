package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"guadavillas/model"
)

// SessionManager owns the single chat session of the process. The first
// successful call to Session builds it; every later call returns it.
// Failed builds are not kept, so the next call retries.
type SessionManager struct {
	mu            sync.Mutex
	factory       SessionFactory
	session       model.ChatSession
	constructions int
	logger        *zap.Logger
}

func NewSessionManager(factory SessionFactory, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{factory: factory, logger: logger}
}

// Session implements model.SessionSource. Concurrent callers wait for a
// build in progress instead of starting their own.
func (m *SessionManager) Session(ctx context.Context) (model.ChatSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		return m.session, nil
	}
	if m.factory == nil {
		return nil, errors.New("no session factory configured")
	}

	session, err := m.factory(ctx)
	if err != nil {
		m.logger.Debug("session construction failed", zap.Error(err))
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	if session == nil {
		return nil, errors.New("failed to create chat session: factory returned nil")
	}

	m.session = session
	m.constructions++
	m.logger.Debug("session created", zap.Int("constructions", m.constructions))
	return session, nil
}

// Constructions reports how many sessions were built successfully.
func (m *SessionManager) Constructions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.constructions
}

// Ready reports whether a session exists.
func (m *SessionManager) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil
}
