package model

import "time"

// Speaker identifies who wrote a turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one message of the concierge conversation as shown to the user.
// CreatedAt is set once; only the open assistant turn's Content changes.
type Turn struct {
	ID        string
	Speaker   Speaker
	Content   string
	CreatedAt time.Time
}

// Message is the provider-facing form of a conversation entry
// (roles: "system", "user", "assistant").
type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
}
