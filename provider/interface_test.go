package provider_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"guadavillas/model"
	"guadavillas/provider"
	"guadavillas/provider/testutil"
)

// TestSessionContract defines the contract every model.ChatSession must
// satisfy: fragments arrive in order and a callback error aborts the stream.
func TestSessionContract(t *testing.T) {
	tests := []struct {
		name    string
		session func() model.ChatSession
	}{
		{"Scripted", func() model.ChatSession {
			return testutil.NewScriptedSession("Bon", "jour", " !")
		}},
		{"History", func() model.ChatSession {
			return provider.NewHistorySession(testutil.NewMockProvider("mock", "Bon", "jour", " !"), "Tu es Lola.")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Run("FragmentsInOrder", func(t *testing.T) {
				testSessionFragmentsInOrder(t, tt.session())
			})
			t.Run("CallbackErrorAborts", func(t *testing.T) {
				testSessionCallbackErrorAborts(t, tt.session())
			})
		})
	}
}

func testSessionFragmentsInOrder(t *testing.T, s model.ChatSession) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got []string
	err := s.Send(ctx, "Bonjour", func(chunk string) error {
		got = append(got, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if strings.Join(got, "|") != "Bon|jour| !" {
		t.Errorf("fragments = %q, want [Bon jour  !]", got)
	}
}

func testSessionCallbackErrorAborts(t *testing.T, s model.ChatSession) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stop := context.Canceled
	calls := 0
	err := s.Send(ctx, "Bonjour", func(chunk string) error {
		calls++
		return stop
	})
	if err == nil {
		t.Fatal("Send() should return the callback error")
	}
	if calls != 1 {
		t.Errorf("callback called %d times after returning an error, want 1", calls)
	}
}

func TestMockProviderImplementsInterface(t *testing.T) {
	var _ model.Provider = (*testutil.MockProvider)(nil)
	var _ model.ChatSession = (*testutil.ScriptedSession)(nil)
	var _ model.SessionSource = testutil.StaticSource{}
}

func TestProvidersImplementInterfaces(t *testing.T) {
	var _ model.Provider = (*provider.OpenAIProvider)(nil)
	var _ model.Provider = (*provider.OpenRouterProvider)(nil)
	var _ model.Provider = (*provider.AnthropicProvider)(nil)
	var _ model.Provider = (*provider.OllamaProvider)(nil)
	var _ model.ChatSession = (*provider.GeminiSession)(nil)
	var _ model.ChatSession = (*provider.HistorySession)(nil)
	var _ model.SessionSource = (*provider.SessionManager)(nil)
}
