// Package provider connects the concierge to language-model backends.
//
// Two shapes of backend are supported:
//   - Gemini keeps the conversation server-side. GeminiSession wraps one
//     genai chat created with the persona as system instruction.
//   - OpenAI, OpenRouter, Anthropic and Ollama are stateless: each request
//     carries the whole history. HistorySession keeps that history locally
//     on top of any model.Provider.
//
// SessionManager builds the session lazily and hands the same one to every
// exchange for the life of the process.
//
// # Usage
//
//	factory, err := provider.NewSessionFactory(provider.Config{
//	    Type:   provider.ProviderTypeGemini,
//	    Model:  "gemini-2.5-flash",
//	    APIKey: os.Getenv("GEMINI_API_KEY"),
//	}, config.SystemInstruction)
//	if err != nil {
//	    // handle error
//	}
//	sessions := provider.NewSessionManager(factory, logger)
//	session, err := sessions.Session(ctx)
//	err = session.Send(ctx, "Bonjour", callback)
package provider

import "time"

// Note: The Provider, ChatSession and StreamCallback types are defined in the
// model package (model/provider.go) to avoid import cycles.

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeGemini     ProviderType = "gemini"
	ProviderTypeOllama     ProviderType = "ollama"
	ProviderTypeOpenRouter ProviderType = "openrouter"
	ProviderTypeOpenAI     ProviderType = "openai"
	ProviderTypeAnthropic  ProviderType = "anthropic"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // unused for Ollama

	// Timeout bounds the reachability check done while building an Ollama
	// session. Zero uses the client default.
	Timeout time.Duration
}
