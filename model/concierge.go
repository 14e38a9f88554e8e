package model

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// RequestState gates the one-in-flight rule of the concierge.
type RequestState int32

const (
	StateIdle RequestState = iota
	StateAwaitingResponse
)

func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingResponse:
		return "awaiting-response"
	default:
		return fmt.Sprintf("RequestState(%d)", int32(s))
	}
}

// FailureKind distinguishes where an absorbed error came from.
type FailureKind string

const (
	FailureSession  FailureKind = "session"
	FailureExchange FailureKind = "exchange"
)

// FailureHook receives every error the concierge absorbs.
type FailureHook interface {
	ObserveFailure(kind FailureKind, err error)
}

type FailureHookFunc func(kind FailureKind, err error)

func (f FailureHookFunc) ObserveFailure(kind FailureKind, err error) { f(kind, err) }

// LogFailures returns a hook writing failures to logger at warn level.
func LogFailures(logger *zap.Logger) FailureHook {
	return FailureHookFunc(func(kind FailureKind, err error) {
		logger.Warn("concierge failure", zap.String("kind", string(kind)), zap.Error(err))
	})
}

// TurnUpdate is delivered to observers after each change to the assistant
// turn of an exchange. The last update of an exchange has State == StateIdle.
type TurnUpdate struct {
	Index int
	Turn  Turn
	State RequestState
}

// Settled reports whether this is the final update of its exchange.
func (u TurnUpdate) Settled() bool { return u.State == StateIdle }

// Exchange is an accepted user turn waiting to be run.
type Exchange struct {
	Text      string
	UserIndex int
}

type ConciergeOptions struct {
	// Fallback replaces the assistant turn when an exchange fails.
	Fallback string
	// Timeout bounds one exchange, session construction included. Zero means none.
	Timeout  time.Duration
	Logger   *zap.Logger
	Failures FailureHook
}

// Concierge reconciles streamed replies into a Transcript. It accepts one
// exchange at a time and always returns to StateIdle, whatever the outcome.
type Concierge struct {
	sessions   SessionSource
	transcript *Transcript
	state      atomic.Int32

	fallback string
	timeout  time.Duration
	logger   *zap.Logger
	failures FailureHook
}

func NewConcierge(sessions SessionSource, transcript *Transcript, opts ConciergeOptions) *Concierge {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	failures := opts.Failures
	if failures == nil {
		failures = LogFailures(logger)
	}
	return &Concierge{
		sessions:   sessions,
		transcript: transcript,
		fallback:   opts.Fallback,
		timeout:    opts.Timeout,
		logger:     logger,
		failures:   failures,
	}
}

func (c *Concierge) State() RequestState {
	return RequestState(c.state.Load())
}

func (c *Concierge) Transcript() *Transcript {
	return c.transcript
}

// Begin records the user turn and moves to StateAwaitingResponse. It returns
// false, touching nothing, when text is blank or an exchange is in flight.
func (c *Concierge) Begin(text string) (Exchange, bool) {
	if strings.TrimSpace(text) == "" {
		return Exchange{}, false
	}
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateAwaitingResponse)) {
		c.logger.Debug("send rejected, exchange in flight")
		return Exchange{}, false
	}

	index, err := c.transcript.Append(SpeakerUser, text)
	if err != nil {
		c.state.Store(int32(StateIdle))
		c.logger.Error("user turn not recorded", zap.Error(err))
		return Exchange{}, false
	}

	c.logger.Debug("exchange accepted", zap.Int("user_turn", index))
	return Exchange{Text: text, UserIndex: index}, true
}

// Run performs an exchange accepted by Begin. Each non-empty fragment is
// appended to the open assistant turn and passed to observe before the next
// fragment is read. Errors never leave Run; the assistant turn then holds
// exactly the fallback text.
func (c *Concierge) Run(ctx context.Context, ex Exchange, observe func(TurnUpdate)) {
	if observe == nil {
		observe = func(TurnUpdate) {}
	}

	index := -1
	fragments := 0
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			// no assistant turn yet: the session was still being obtained
			kind := FailureExchange
			if index < 0 {
				kind = FailureSession
			}
			c.fail(kind, fmt.Errorf("exchange panicked: %v", r))

			if c.transcript.HasOpenTurn() {
				_ = c.transcript.UpdateLast(c.fallback)
			} else if index < 0 {
				index, _ = c.transcript.Append(SpeakerAssistant, c.fallback)
			}
		}
		if c.transcript.HasOpenTurn() {
			_ = c.transcript.CloseLast()
		}

		c.state.Store(int32(StateIdle))
		c.logger.Debug("exchange settled",
			zap.Int("fragments", fragments),
			zap.Duration("elapsed", time.Since(start)))

		update := TurnUpdate{Index: index, State: StateIdle}
		if turn, ok := c.transcript.At(index); ok {
			update.Turn = turn
		}
		observe(update)
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	session, err := c.sessions.Session(ctx)
	if err != nil {
		c.fail(FailureSession, err)
		index, _ = c.transcript.Append(SpeakerAssistant, c.fallback)
		return
	}

	index, err = c.transcript.Open(SpeakerAssistant)
	if err != nil {
		c.fail(FailureExchange, err)
		return
	}
	if turn, ok := c.transcript.At(index); ok {
		observe(TurnUpdate{Index: index, Turn: turn, State: StateAwaitingResponse})
	}

	var reply strings.Builder
	err = session.Send(ctx, ex.Text, func(chunk string) error {
		if chunk == "" {
			return nil
		}
		reply.WriteString(chunk)
		fragments++
		if err := c.transcript.UpdateLast(reply.String()); err != nil {
			return err
		}
		turn, _ := c.transcript.At(index)
		observe(TurnUpdate{Index: index, Turn: turn, State: StateAwaitingResponse})
		return nil
	})
	if err != nil {
		c.fail(FailureExchange, err)
		_ = c.transcript.UpdateLast(c.fallback)
	}
}

// SendTurn is Begin followed by Run on the calling goroutine. It reports
// whether the text was accepted.
func (c *Concierge) SendTurn(ctx context.Context, text string, observe func(TurnUpdate)) bool {
	ex, ok := c.Begin(text)
	if !ok {
		return false
	}
	c.Run(ctx, ex, observe)
	return true
}

func (c *Concierge) fail(kind FailureKind, err error) {
	c.failures.ObserveFailure(kind, err)
}
