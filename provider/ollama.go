package provider

import (
	"context"
	"fmt"

	"guadavillas/model"
	"guadavillas/ollama"
)

// OllamaProvider wraps ollama.Client to implement model.Provider.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a new Ollama provider instance.
//
// Parameters:
//   - baseURL: The Ollama server URL. Defaults to "http://localhost:11434".
//   - model: The model name to use. Defaults to "llama3.1:latest".
//
// Returns an error if the baseURL is invalid.
func NewOllamaProvider(baseURL, model string) (*OllamaProvider, error) {
	client, err := ollama.NewClient(baseURL, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{client: client}, nil
}

// Chat implements model.Provider by converting messages to Ollama's format.
func (p *OllamaProvider) Chat(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
	err := p.client.Chat(ctx, ConvertToOllamaMessages(messages), func(chunk string) error {
		if callback == nil {
			return nil
		}
		return callback(chunk)
	})
	if err != nil {
		return fmt.Errorf("Ollama streaming error: %w", err)
	}
	return nil
}

func (p *OllamaProvider) GetModel() string {
	return p.client.GetModel()
}

// Ping checks that the Ollama server is reachable.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}
