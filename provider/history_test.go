package provider_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guadavillas/model"
	"guadavillas/provider"
	"guadavillas/provider/testutil"
)

func contents(messages []model.Message) []string {
	out := make([]string, len(messages))
	for i, m := range messages {
		out[i] = m.Role + ":" + m.Content
	}
	return out
}

func TestHistorySessionRecordsCompletedExchanges(t *testing.T) {
	mock := testutil.NewMockProvider("mock", "Bon", "jour")
	s := provider.NewHistorySession(mock, "Tu es Lola.")
	ctx := context.Background()

	require.NoError(t, s.Send(ctx, "Salut", nil))
	require.NoError(t, s.Send(ctx, "Une villa ?", nil))

	assert.Equal(t, []string{
		"system:Tu es Lola.",
		"user:Salut",
		"assistant:Bonjour",
		"user:Une villa ?",
		"assistant:Bonjour",
	}, contents(s.History()))

	calls := mock.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"system:Tu es Lola.", "user:Salut"}, contents(calls[0]))
	assert.Equal(t, []string{
		"system:Tu es Lola.",
		"user:Salut",
		"assistant:Bonjour",
		"user:Une villa ?",
	}, contents(calls[1]))
	assert.Equal(t, "mock", s.GetModel())
}

func TestHistorySessionFailureLeavesHistoryUnchanged(t *testing.T) {
	boom := errors.New("connection reset")
	mock := testutil.NewMockProvider("mock")
	mock.ChatFunc = func(ctx context.Context, messages []model.Message, callback model.StreamCallback) error {
		if err := callback("partial"); err != nil {
			return err
		}
		return boom
	}
	s := provider.NewHistorySession(mock, "Tu es Lola.")

	err := s.Send(context.Background(), "Salut", nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"system:Tu es Lola."}, contents(s.History()))
}

func TestHistorySessionWithoutInstruction(t *testing.T) {
	s := provider.NewHistorySession(testutil.NewMockProvider("mock"), "")
	assert.Empty(t, s.History())

	require.NoError(t, s.Send(context.Background(), "Salut", nil))
	assert.Equal(t, []string{"user:Salut", "assistant:Mock response"}, contents(s.History()))
}
