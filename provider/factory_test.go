package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guadavillas/config"
	"guadavillas/model"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name:   "ollama provider with defaults",
			config: Config{Type: ProviderTypeOllama},
		},
		{
			name: "ollama provider with custom config",
			config: Config{
				Type:    ProviderTypeOllama,
				BaseURL: "http://localhost:11434",
				Model:   "llama3.1",
			},
		},
		{
			name: "openai provider",
			config: Config{
				Type:   ProviderTypeOpenAI,
				Model:  "gpt-4o-mini",
				APIKey: "test-key",
			},
		},
		{
			name: "openrouter provider",
			config: Config{
				Type:   ProviderTypeOpenRouter,
				Model:  "google/gemini-2.5-flash",
				APIKey: "test-key",
			},
		},
		{
			name: "anthropic provider",
			config: Config{
				Type:   ProviderTypeAnthropic,
				Model:  "claude-sonnet-4-5-20250929",
				APIKey: "test-key",
			},
		},
		{
			name:        "openai without key",
			config:      Config{Type: ProviderTypeOpenAI},
			expectError: true,
		},
		{
			name:        "gemini is session based",
			config:      Config{Type: ProviderTypeGemini, APIKey: "test-key"},
			expectError: true,
		},
		{
			name:        "unknown provider type",
			config:      Config{Type: ProviderType("unknown")},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, p)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, p)
			assert.NotEmpty(t, p.GetModel())
		})
	}
}

func TestFactoryReturnsOllamaProvider(t *testing.T) {
	p, err := NewProvider(Config{Type: ProviderTypeOllama, Model: "llama3.1"})
	require.NoError(t, err)

	_, ok := p.(*OllamaProvider)
	assert.True(t, ok, "expected *OllamaProvider, got %T", p)
	assert.Equal(t, "llama3.1", p.GetModel())
}

func TestMapProviderIDToType(t *testing.T) {
	for _, id := range config.KnownProviders {
		assert.Equal(t, ProviderType(id), MapProviderIDToType(id))
	}
	assert.Equal(t, ProviderType("bard"), MapProviderIDToType("bard"))
}

func TestConfigFromApp(t *testing.T) {
	cfg := &config.Config{
		Provider:       "openai",
		DefaultModel:   "gpt-4o",
		BaseURL:        "http://proxy",
		APIKey:         "k",
		RequestTimeout: 30 * time.Second,
	}

	got := ConfigFromApp(cfg)
	assert.Equal(t, Config{
		Type:    ProviderTypeOpenAI,
		BaseURL: "http://proxy",
		Model:   "gpt-4o",
		APIKey:  "k",
		Timeout: 30 * time.Second,
	}, got)
}

func TestNewSessionFactory(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown type fails up front", func(t *testing.T) {
		_, err := NewSessionFactory(Config{Type: "bard"}, "persona")
		assert.Error(t, err)
	})

	t.Run("missing gemini key fails at construction", func(t *testing.T) {
		factory, err := NewSessionFactory(Config{Type: ProviderTypeGemini}, "persona")
		require.NoError(t, err)

		session, err := factory(ctx)
		assert.Error(t, err)
		assert.Nil(t, session)
	})

	t.Run("missing openai key fails at construction", func(t *testing.T) {
		factory, err := NewSessionFactory(Config{Type: ProviderTypeOpenAI}, "persona")
		require.NoError(t, err)

		_, err = factory(ctx)
		assert.Error(t, err)
	})

	t.Run("stateless provider gets a history session", func(t *testing.T) {
		factory, err := NewSessionFactory(Config{Type: ProviderTypeAnthropic, APIKey: "k"}, "persona")
		require.NoError(t, err)

		session, err := factory(ctx)
		require.NoError(t, err)

		hs, ok := session.(*HistorySession)
		require.True(t, ok, "expected *HistorySession, got %T", session)
		assert.Equal(t, []string{"system"}, roles(hs.History()))
		assert.Equal(t, "persona", hs.History()[0].Content)
	})
}

func roles(messages []model.Message) []string {
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = m.Role
	}
	return out
}
