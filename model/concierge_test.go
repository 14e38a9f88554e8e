package model_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"guadavillas/model"
	"guadavillas/provider"
	"guadavillas/provider/testutil"
)

const (
	greeting = "Bonjour ! Je suis Lola."
	fallback = "Désolée, une erreur est survenue. Veuillez réessayer."
)

type failure struct {
	kind model.FailureKind
	err  error
}

type failureLog struct {
	mu  sync.Mutex
	all []failure
}

func (l *failureLog) ObserveFailure(kind model.FailureKind, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.all = append(l.all, failure{kind, err})
}

func (l *failureLog) kinds() []model.FailureKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.FailureKind, len(l.all))
	for i, f := range l.all {
		out[i] = f.kind
	}
	return out
}

func newConcierge(t *testing.T, source model.SessionSource) (*model.Concierge, *model.Transcript, *failureLog) {
	t.Helper()
	tr := model.NewTranscript(greeting)
	failures := &failureLog{}
	c := model.NewConcierge(source, tr, model.ConciergeOptions{
		Fallback: fallback,
		Failures: failures,
	})
	return c, tr, failures
}

func TestSendTurnStreamsFragmentsInOrder(t *testing.T) {
	session := testutil.NewScriptedSession("Bon", "jour", " !")
	c, tr, failures := newConcierge(t, testutil.StaticSource{Session: session})

	var progress []string
	var states []model.RequestState
	var final model.TurnUpdate
	accepted := c.SendTurn(context.Background(), "Salut", func(u model.TurnUpdate) {
		if u.Settled() {
			final = u
			return
		}
		progress = append(progress, u.Turn.Content)
		states = append(states, c.State())
	})

	require.True(t, accepted)
	assert.Equal(t, []string{"", "Bon", "Bonjour", "Bonjour !"}, progress)
	for _, s := range states {
		assert.Equal(t, model.StateAwaitingResponse, s)
	}

	assert.Equal(t, model.StateIdle, final.State)
	assert.Equal(t, 2, final.Index)
	assert.Equal(t, "Bonjour !", final.Turn.Content)
	assert.Equal(t, model.StateIdle, c.State())
	assert.False(t, tr.HasOpenTurn())
	assert.Empty(t, failures.kinds())

	turns := tr.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, model.SpeakerUser, turns[1].Speaker)
	assert.Equal(t, "Salut", turns[1].Content)
	assert.Equal(t, model.SpeakerAssistant, turns[2].Speaker)
	assert.Equal(t, "Bonjour !", turns[2].Content)
	assert.Equal(t, []string{"Salut"}, session.Sent())
}

func TestSendTurnZeroFragments(t *testing.T) {
	c, tr, failures := newConcierge(t, testutil.StaticSource{Session: testutil.NewScriptedSession()})

	require.True(t, c.SendTurn(context.Background(), "Salut", nil))

	last, _ := tr.Last()
	assert.Equal(t, model.SpeakerAssistant, last.Speaker)
	assert.Equal(t, "", last.Content)
	assert.Equal(t, model.StateIdle, c.State())
	assert.Empty(t, failures.kinds())
}

func TestEmptyFragmentsAreNotSignalled(t *testing.T) {
	session := testutil.NewScriptedSession("", "Oui", "")
	c, _, _ := newConcierge(t, testutil.StaticSource{Session: session})

	var progress []string
	c.SendTurn(context.Background(), "Salut", func(u model.TurnUpdate) {
		if !u.Settled() {
			progress = append(progress, u.Turn.Content)
		}
	})
	assert.Equal(t, []string{"", "Oui"}, progress)
}

func TestBlankInputIsRejected(t *testing.T) {
	var calls atomic.Int32
	source := sourceFunc(func(ctx context.Context) (model.ChatSession, error) {
		calls.Add(1)
		return testutil.NewScriptedSession("x"), nil
	})
	c, tr, _ := newConcierge(t, source)

	for _, text := range []string{"", " ", "\n\t  "} {
		assert.False(t, c.SendTurn(context.Background(), text, nil), "text %q", text)
		assert.Equal(t, 1, tr.Len())
		assert.Equal(t, model.StateIdle, c.State())
	}
	assert.Zero(t, calls.Load())
}

func TestBeginRejectsWhileAwaiting(t *testing.T) {
	session := testutil.NewScriptedSession("ok")
	c, tr, _ := newConcierge(t, testutil.StaticSource{Session: session})

	ex, ok := c.Begin("première")
	require.True(t, ok)
	assert.Equal(t, model.StateAwaitingResponse, c.State())
	assert.Equal(t, 2, tr.Len())

	_, ok = c.Begin("deuxième")
	assert.False(t, ok)
	assert.False(t, c.SendTurn(context.Background(), "troisième", nil))
	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, model.StateAwaitingResponse, c.State())

	c.Run(context.Background(), ex, nil)
	assert.Equal(t, model.StateIdle, c.State())
	assert.Equal(t, []string{"première"}, session.Sent())

	assert.True(t, c.SendTurn(context.Background(), "quatrième", nil))
	assert.Equal(t, 5, tr.Len())
}

func TestOnlyOneConcurrentBeginWins(t *testing.T) {
	c, tr, _ := newConcierge(t, testutil.StaticSource{Session: testutil.NewScriptedSession("ok")})

	const callers = 32
	var accepted atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, ok := c.Begin("Salut"); ok {
				accepted.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	assert.Equal(t, 2, tr.Len())
}

func TestSendRejectedWhileStreaming(t *testing.T) {
	session := testutil.NewScriptedSession("Bon", "jour")
	session.Gate = make(chan struct{})
	c, tr, _ := newConcierge(t, testutil.StaticSource{Session: session})

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.SendTurn(context.Background(), "Salut", nil)
	}()

	require.Eventually(t, func() bool { return len(session.Sent()) == 1 }, time.Second, time.Millisecond)
	lenBefore := tr.Len()

	assert.False(t, c.SendTurn(context.Background(), "Encore", nil))
	assert.Equal(t, lenBefore, tr.Len())
	assert.Equal(t, model.StateAwaitingResponse, c.State())

	close(session.Gate)
	<-done
	assert.Equal(t, model.StateIdle, c.State())

	last, _ := tr.Last()
	assert.Equal(t, "Bonjour", last.Content)
}

func TestSessionFailureAppendsFallback(t *testing.T) {
	boom := errors.New("missing credential")
	c, tr, failures := newConcierge(t, testutil.StaticSource{Err: boom})

	var final model.TurnUpdate
	require.True(t, c.SendTurn(context.Background(), "Salut", func(u model.TurnUpdate) {
		final = u
	}))

	turns := tr.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, "Salut", turns[1].Content)
	assert.Equal(t, model.SpeakerAssistant, turns[2].Speaker)
	assert.Equal(t, fallback, turns[2].Content)

	assert.True(t, final.Settled())
	assert.Equal(t, fallback, final.Turn.Content)
	assert.Equal(t, model.StateIdle, c.State())
	assert.False(t, tr.HasOpenTurn())
	assert.Equal(t, []model.FailureKind{model.FailureSession}, failures.kinds())
}

func TestFeedFailureReplacesPartialReply(t *testing.T) {
	boom := errors.New("stream reset")

	for _, fragments := range [][]string{nil, {"Bon"}, {"Bon", "jour"}} {
		session := testutil.NewFailingSession(boom, fragments...)
		c, tr, failures := newConcierge(t, testutil.StaticSource{Session: session})

		require.True(t, c.SendTurn(context.Background(), "Salut", nil))

		turns := tr.Turns()
		require.Len(t, turns, 3, "fragments %q", fragments)
		assert.Equal(t, "Salut", turns[1].Content)
		assert.Equal(t, fallback, turns[2].Content, "fragments %q", fragments)
		assert.Equal(t, model.StateIdle, c.State())
		assert.Equal(t, []model.FailureKind{model.FailureExchange}, failures.kinds())
	}
}

func TestSessionRetriedAfterConstructionFailure(t *testing.T) {
	factory := testutil.NewCountingFactory(testutil.NewScriptedSession("Oui"))
	factory.FailFirst = 1
	sessions := provider.NewSessionManager(factory.Build, nil)
	c, tr, failures := newConcierge(t, sessions)

	require.True(t, c.SendTurn(context.Background(), "Salut", nil))
	last, _ := tr.Last()
	assert.Equal(t, fallback, last.Content)

	require.True(t, c.SendTurn(context.Background(), "Encore", nil))
	last, _ = tr.Last()
	assert.Equal(t, "Oui", last.Content)

	require.True(t, c.SendTurn(context.Background(), "Et après ?", nil))

	assert.Equal(t, 2, factory.Attempts())
	assert.Equal(t, 1, sessions.Constructions())
	assert.Equal(t, []model.FailureKind{model.FailureSession}, failures.kinds())
	assert.Equal(t, 7, tr.Len())
}

func TestTimeoutTakesFailurePath(t *testing.T) {
	session := testutil.NewScriptedSession("trop tard")
	session.Gate = make(chan struct{})
	defer close(session.Gate)

	tr := model.NewTranscript(greeting)
	failures := &failureLog{}
	c := model.NewConcierge(testutil.StaticSource{Session: session}, tr, model.ConciergeOptions{
		Fallback: fallback,
		Timeout:  20 * time.Millisecond,
		Failures: failures,
	})

	require.True(t, c.SendTurn(context.Background(), "Salut", nil))

	last, _ := tr.Last()
	assert.Equal(t, fallback, last.Content)
	assert.Equal(t, model.StateIdle, c.State())
	require.Len(t, failures.all, 1)
	assert.ErrorIs(t, failures.all[0].err, context.DeadlineExceeded)
}

func TestPanickingSessionStillSettles(t *testing.T) {
	source := testutil.StaticSource{Session: panicSession{}}
	c, tr, failures := newConcierge(t, source)

	var settled bool
	require.True(t, c.SendTurn(context.Background(), "Salut", func(u model.TurnUpdate) {
		settled = settled || u.Settled()
	}))

	assert.True(t, settled)
	assert.Equal(t, model.StateIdle, c.State())
	assert.False(t, tr.HasOpenTurn())
	last, _ := tr.Last()
	assert.Equal(t, fallback, last.Content)
	assert.Equal(t, []model.FailureKind{model.FailureExchange}, failures.kinds())
}

func TestPanickingSessionFactoryAppendsFallback(t *testing.T) {
	var builds int
	manager := provider.NewSessionManager(func(ctx context.Context) (model.ChatSession, error) {
		builds++
		panic("client construction failed")
	}, nil)
	c, tr, failures := newConcierge(t, manager)

	var settled model.TurnUpdate
	require.True(t, c.SendTurn(context.Background(), "Salut", func(u model.TurnUpdate) {
		if u.Settled() {
			settled = u
		}
	}))

	assert.Equal(t, model.StateIdle, c.State())
	assert.False(t, tr.HasOpenTurn())
	require.Equal(t, 3, tr.Len())
	last, _ := tr.Last()
	assert.Equal(t, model.SpeakerAssistant, last.Speaker)
	assert.Equal(t, fallback, last.Content)
	assert.Equal(t, 2, settled.Index)
	assert.Equal(t, fallback, settled.Turn.Content)
	assert.Equal(t, []model.FailureKind{model.FailureSession}, failures.kinds())

	// the manager lock was released: the next send builds again
	require.True(t, c.SendTurn(context.Background(), "Encore", nil))
	assert.Equal(t, 2, builds)
	assert.Equal(t, 5, tr.Len())
	assert.False(t, manager.Ready())
}

func TestLogFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	hook := model.LogFailures(zap.New(core))

	hook.ObserveFailure(model.FailureSession, errors.New("no key"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "concierge failure", entries[0].Message)
	assert.Equal(t, "session", entries[0].ContextMap()["kind"])
	assert.Equal(t, "no key", entries[0].ContextMap()["error"])
}

func TestDefaultFailureHookLogs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	tr := model.NewTranscript("")
	c := model.NewConcierge(testutil.StaticSource{Err: errors.New("offline")}, tr, model.ConciergeOptions{
		Fallback: fallback,
		Logger:   zap.New(core),
	})

	c.SendTurn(context.Background(), "Salut", nil)
	assert.Equal(t, 1, logs.FilterField(zap.String("kind", "session")).Len())
}

func TestRequestStateString(t *testing.T) {
	assert.Equal(t, "idle", model.StateIdle.String())
	assert.Equal(t, "awaiting-response", model.StateAwaitingResponse.String())
	assert.Equal(t, "RequestState(7)", model.RequestState(7).String())
}

type sourceFunc func(ctx context.Context) (model.ChatSession, error)

func (f sourceFunc) Session(ctx context.Context) (model.ChatSession, error) { return f(ctx) }

type panicSession struct{}

func (panicSession) Send(ctx context.Context, text string, callback model.StreamCallback) error {
	_ = callback("Bon")
	panic("decoder bug")
}
