package testutil

import (
	"time"

	"guadavillas/model"
)

// TestMessages returns a sample conversation for testing
func TestMessages() []model.Message {
	return []model.Message{
		{
			Role:      "system",
			Content:   "Tu es Lola.",
			Timestamp: time.Now(),
		},
		{
			Role:      "user",
			Content:   "Bonjour, une villa pour six ?",
			Timestamp: time.Now(),
		},
		{
			Role:      "assistant",
			Content:   "La Villa Colibri accueille six personnes.",
			Timestamp: time.Now(),
		},
	}
}

// SingleUserMessage returns a single user message for simple tests
func SingleUserMessage(content string) []model.Message {
	return []model.Message{
		{
			Role:      "user",
			Content:   content,
			Timestamp: time.Now(),
		},
	}
}

// SystemMessage returns a system message for testing
func SystemMessage(content string) model.Message {
	return model.Message{
		Role:      "system",
		Content:   content,
		Timestamp: time.Now(),
	}
}
