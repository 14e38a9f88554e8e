package provider

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"guadavillas/model"
)

const defaultGeminiModel = "gemini-2.5-flash"

// GeminiSession is a server-side Gemini chat. The persona is fixed when the
// chat is created; genai records an exchange in the chat history only once
// its stream completed.
type GeminiSession struct {
	mu    sync.Mutex
	chat  *genai.Chat
	model string
}

// NewGeminiSession creates the genai client and the chat.
//
// Returns an error if the API key is missing or the client cannot be created.
func NewGeminiSession(ctx context.Context, cfg Config, instruction string) (*GeminiSession, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultGeminiModel
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	var genCfg *genai.GenerateContentConfig
	if instruction != "" {
		genCfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		}
	}

	chat, err := client.Chats.Create(ctx, modelName, genCfg, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini chat: %w", err)
	}

	return &GeminiSession{chat: chat, model: modelName}, nil
}

// Send implements model.ChatSession.
func (s *GeminiSession) Send(ctx context.Context, text string, callback model.StreamCallback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for resp, err := range s.chat.SendMessageStream(ctx, genai.Part{Text: text}) {
		if err != nil {
			return fmt.Errorf("Gemini streaming error: %w", err)
		}
		chunk := resp.Text()
		if chunk == "" || callback == nil {
			continue
		}
		if err := callback(chunk); err != nil {
			return err
		}
	}
	return nil
}

func (s *GeminiSession) GetModel() string {
	return s.model
}
