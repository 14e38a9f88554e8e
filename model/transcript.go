package model

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTurnOpen   = errors.New("transcript: an assistant turn is still open")
	ErrNoOpenTurn = errors.New("transcript: no open turn")
)

// Transcript is the append-only log of concierge turns. Turns are never
// reordered or removed; at most one turn is open (receiving fragments).
type Transcript struct {
	mu    sync.RWMutex
	turns []Turn
	open  bool
	now   func() time.Time
}

// NewTranscript creates a transcript seeded with an assistant greeting.
// An empty greeting yields an empty transcript.
func NewTranscript(greeting string) *Transcript {
	t := &Transcript{now: time.Now}
	if greeting != "" {
		t.turns = append(t.turns, t.newTurn(SpeakerAssistant, greeting))
	}
	return t
}

func (t *Transcript) newTurn(speaker Speaker, content string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Speaker:   speaker,
		Content:   content,
		CreatedAt: t.now(),
	}
}

// Append adds a closed turn and returns its index.
func (t *Transcript) Append(speaker Speaker, content string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open {
		return -1, ErrTurnOpen
	}
	t.turns = append(t.turns, t.newTurn(speaker, content))
	return len(t.turns) - 1, nil
}

// Open appends an empty turn that will receive fragments via UpdateLast.
func (t *Transcript) Open(speaker Speaker) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open {
		return -1, ErrTurnOpen
	}
	t.turns = append(t.turns, t.newTurn(speaker, ""))
	t.open = true
	return len(t.turns) - 1, nil
}

// UpdateLast replaces the content of the open turn.
func (t *Transcript) UpdateLast(content string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.open {
		return ErrNoOpenTurn
	}
	t.turns[len(t.turns)-1].Content = content
	return nil
}

// CloseLast marks the open turn final.
func (t *Transcript) CloseLast() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.open {
		return ErrNoOpenTurn
	}
	t.open = false
	return nil
}

func (t *Transcript) HasOpenTurn() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.open
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}

// Turns returns a copy of the log in conversation order.
func (t *Transcript) Turns() []Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

func (t *Transcript) At(i int) (Turn, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if i < 0 || i >= len(t.turns) {
		return Turn{}, false
	}
	return t.turns[i], true
}

func (t *Transcript) Last() (Turn, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.turns) == 0 {
		return Turn{}, false
	}
	return t.turns[len(t.turns)-1], true
}

// LastBy returns the most recent turn written by speaker.
func (t *Transcript) LastBy(speaker Speaker) (Turn, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i := len(t.turns) - 1; i >= 0; i-- {
		if t.turns[i].Speaker == speaker {
			return t.turns[i], true
		}
	}
	return Turn{}, false
}
