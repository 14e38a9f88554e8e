package model

import "context"

// StreamCallback is called once per streamed fragment, in arrival order.
// Returning an error aborts the stream with that error.
type StreamCallback func(chunk string) error

// Provider abstracts stateless chat-completion backends (OpenAI, OpenRouter,
// Anthropic, Ollama): every call carries the full message history.
//
// This interface is defined in the model package (not provider package) to avoid
// import cycles: provider implementations can import model, and model can use the
// Provider interface without importing the provider package.
type Provider interface {
	// Chat sends messages and streams the reply back via callback.
	Chat(ctx context.Context, messages []Message, callback StreamCallback) error

	// GetModel returns the model identifier used for API calls.
	GetModel() string
}

// ChatSession is one provider-side conversation with a fixed system
// instruction. Send appends text to the conversation and streams the reply.
// The conversation only records exchanges that completed.
type ChatSession interface {
	Send(ctx context.Context, text string, callback StreamCallback) error
}

// SessionSource hands out the live ChatSession, building it on first use.
// A failed build is not remembered, so the next call tries again.
type SessionSource interface {
	Session(ctx context.Context) (ChatSession, error)
}
