package provider

import (
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"

	"guadavillas/model"
	"guadavillas/provider/testutil"
)

func TestConvertToOllamaMessages(t *testing.T) {
	tests := []struct {
		name     string
		input    []model.Message
		expected []api.Message
	}{
		{
			name:     "empty slice",
			input:    []model.Message{},
			expected: []api.Message{},
		},
		{
			name:  "single message",
			input: testutil.SingleUserMessage("Bonjour"),
			expected: []api.Message{
				{Role: "user", Content: "Bonjour"},
			},
		},
		{
			name: "system first",
			input: []model.Message{
				{Role: "system", Content: "Tu es Lola.", Timestamp: time.Now()},
				{Role: "user", Content: "Bonjour", Timestamp: time.Now()},
				{Role: "assistant", Content: "Bonjour !", Timestamp: time.Now()},
			},
			expected: []api.Message{
				{Role: "system", Content: "Tu es Lola."},
				{Role: "user", Content: "Bonjour"},
				{Role: "assistant", Content: "Bonjour !"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertToOllamaMessages(tt.input)

			if len(result) != len(tt.expected) {
				t.Fatalf("length mismatch: got %d, want %d", len(result), len(tt.expected))
			}

			for i, msg := range result {
				if msg.Role != tt.expected[i].Role {
					t.Errorf("message %d role: got %q, want %q", i, msg.Role, tt.expected[i].Role)
				}
				if msg.Content != tt.expected[i].Content {
					t.Errorf("message %d content: got %q, want %q", i, msg.Content, tt.expected[i].Content)
				}
			}
		})
	}
}

func TestConvertFromOllamaMessages(t *testing.T) {
	input := []api.Message{
		{Role: "assistant", Content: "Réponse"},
		{Role: "user", Content: "Merci"},
	}

	result := ConvertFromOllamaMessages(input)
	if len(result) != 2 {
		t.Fatalf("length mismatch: got %d, want 2", len(result))
	}
	for i, msg := range result {
		if msg.Role != input[i].Role || msg.Content != input[i].Content {
			t.Errorf("message %d: got %+v, want role %q content %q", i, msg, input[i].Role, input[i].Content)
		}
		if !msg.Timestamp.IsZero() {
			t.Errorf("message %d: expected zero timestamp", i)
		}
	}
}

func TestConvertToOpenAIMessages(t *testing.T) {
	input := []model.Message{
		testutil.SystemMessage("Tu es Lola."),
		{Role: "user", Content: "Bonjour"},
		{Role: "assistant", Content: "Bonjour !"},
		{Role: "tool", Content: "ignored role"},
	}

	result := ConvertToOpenAIMessages(input)
	if len(result) != len(input) {
		t.Fatalf("length mismatch: got %d, want %d", len(result), len(input))
	}
	if result[0].OfSystem == nil {
		t.Error("message 0: expected system message")
	}
	if result[1].OfUser == nil {
		t.Error("message 1: expected user message")
	}
	if result[2].OfAssistant == nil {
		t.Error("message 2: expected assistant message")
	}
	if result[3].OfUser == nil {
		t.Error("message 3: unknown roles should become user messages")
	}
}

func TestConvertToAnthropicMessages(t *testing.T) {
	msgs, system := convertToAnthropicMessages(testutil.TestMessages())

	if len(system) != 1 || system[0].Text != "Tu es Lola." {
		t.Fatalf("system blocks: got %+v", system)
	}
	if len(msgs) != 2 {
		t.Fatalf("message count: got %d, want 2", len(msgs))
	}
	if msgs[0].Role != anthropic.MessageParamRoleUser {
		t.Errorf("message 0 role: got %q", msgs[0].Role)
	}
	if msgs[1].Role != anthropic.MessageParamRoleAssistant {
		t.Errorf("message 1 role: got %q", msgs[1].Role)
	}
}
