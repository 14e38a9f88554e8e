package provider

import (
	"context"
	"fmt"

	"guadavillas/config"
	"guadavillas/model"
)

// NewProvider creates a stateless provider based on configuration.
//
// Gemini is not available here: it is served by GeminiSession, which keeps
// the conversation on the server. Use NewSessionFactory to get either kind.
func NewProvider(cfg Config) (model.Provider, error) {
	switch cfg.Type {
	case ProviderTypeOllama:
		return NewOllamaProvider(cfg.BaseURL, cfg.Model)
	case ProviderTypeOpenRouter:
		return NewOpenRouterProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case ProviderTypeOpenAI:
		return NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case ProviderTypeAnthropic:
		return NewAnthropicProvider(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case ProviderTypeGemini:
		return nil, fmt.Errorf("gemini is session-based, use NewSessionFactory")
	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}

// MapProviderIDToType converts config provider ID to factory ProviderType.
//
// For unknown IDs, returns the ID cast as ProviderType (factory will error).
func MapProviderIDToType(id string) ProviderType {
	switch id {
	case "gemini":
		return ProviderTypeGemini
	case "ollama":
		return ProviderTypeOllama
	case "openrouter":
		return ProviderTypeOpenRouter
	case "openai":
		return ProviderTypeOpenAI
	case "anthropic":
		return ProviderTypeAnthropic
	default:
		return ProviderType(id)
	}
}

// ConfigFromApp maps the application configuration onto a provider Config.
func ConfigFromApp(cfg *config.Config) Config {
	return Config{
		Type:    MapProviderIDToType(cfg.Provider),
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model(),
		APIKey:  cfg.APIKey,
		Timeout: cfg.RequestTimeout,
	}
}

// SessionFactory builds one chat session. It is called by SessionManager,
// at most once per successful construction.
type SessionFactory func(ctx context.Context) (model.ChatSession, error)

// NewSessionFactory validates the provider type up front and returns a
// factory whose sessions carry instruction as their system instruction.
// Missing credentials are reported by the factory, not here, so that the
// program starts and the failure surfaces on the first exchange.
func NewSessionFactory(cfg Config, instruction string) (SessionFactory, error) {
	switch cfg.Type {
	case ProviderTypeGemini:
		return func(ctx context.Context) (model.ChatSession, error) {
			return NewGeminiSession(ctx, cfg, instruction)
		}, nil

	case ProviderTypeOllama:
		return func(ctx context.Context) (model.ChatSession, error) {
			p, err := NewOllamaProvider(cfg.BaseURL, cfg.Model)
			if err != nil {
				return nil, err
			}
			pingCtx := ctx
			if cfg.Timeout > 0 {
				var cancel context.CancelFunc
				pingCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
				defer cancel()
			}
			if err := p.Ping(pingCtx); err != nil {
				return nil, err
			}
			return NewHistorySession(p, instruction), nil
		}, nil

	case ProviderTypeOpenAI, ProviderTypeOpenRouter, ProviderTypeAnthropic:
		return func(ctx context.Context) (model.ChatSession, error) {
			p, err := NewProvider(cfg)
			if err != nil {
				return nil, err
			}
			return NewHistorySession(p, instruction), nil
		}, nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}
}
