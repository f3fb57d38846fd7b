// Package redeem implements the ticket scan-and-redeem flow.
//
// A Flow moves Idle -> PendingValidation -> Valid | Invalid -> Idle. Only one
// consume request is in flight per flow. Valid returns to Idle on its own
// after the reset delay; Invalid waits for Dismiss or Cancel.
package redeem

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"maCentral/internal/lib/logger/handlers/slogdiscard"
	"maCentral/internal/lib/logger/sl"
)

const DefaultResetDelay = time.Second

var (
	ErrBusy         = errors.New("a scan is already being processed")
	ErrEmptyPayload = errors.New("empty scan payload")
	ErrNotTerminal  = errors.New("no scan result to dismiss")
	ErrClosed       = errors.New("scanner closed")
)

type State int

const (
	Idle State = iota
	PendingValidation
	Valid
	Invalid
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case PendingValidation:
		return "pending_validation"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

type Consumer interface {
	ConsumeTicket(ctx context.Context, eventID int64, ticket string) error
}

// Capture is the payload source. It is paused while a payload is being
// validated so the same code is not read twice.
type Capture interface {
	Pause()
	Resume()
}

// Cue signals the result of a scan to the operator.
type Cue interface {
	Success()
	Failure()
}

// Outcome describes one finished attempt. Cancelled attempts report State Idle.
type Outcome struct {
	EventID   int64
	Payload   string
	State     State
	Cancelled bool
	Err       error
	Detail    string
	At        time.Time
}

type Snapshot struct {
	EventID   int64     `json:"event_id"`
	State     State     `json:"-"`
	Status    string    `json:"state"`
	Payload   string    `json:"payload,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Capturing bool      `json:"capturing"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Option func(*Flow)

func WithResetDelay(d time.Duration) Option {
	return func(f *Flow) {
		if d > 0 {
			f.resetDelay = d
		}
	}
}

func WithCapture(c Capture) Option {
	return func(f *Flow) {
		if c != nil {
			f.capture = c
		}
	}
}

func WithCue(c Cue) Option {
	return func(f *Flow) {
		if c != nil {
			f.cue = c
		}
	}
}

// WithReporter registers fn to receive every Outcome. fn runs without the
// flow lock held, on the goroutine that resolved the attempt.
func WithReporter(fn func(Outcome)) Option {
	return func(f *Flow) {
		f.report = fn
	}
}

// WithDescriber sets how a consume error is rendered into Snapshot.Detail.
func WithDescriber(fn func(error) string) Option {
	return func(f *Flow) {
		if fn != nil {
			f.describe = fn
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(f *Flow) {
		if log != nil {
			f.log = log
		}
	}
}

// Flow is safe for concurrent use. Capture and Cue methods are called with
// the flow lock held and must not call back into the flow.
type Flow struct {
	eventID  int64
	consumer Consumer

	capture    Capture
	cue        Cue
	report     func(Outcome)
	describe   func(error) string
	log        *slog.Logger
	resetDelay time.Duration

	base     context.Context
	stopBase context.CancelFunc
	wg       sync.WaitGroup

	mu        sync.Mutex
	state     State
	payload   string
	detail    string
	capturing bool
	updatedAt time.Time
	gen       uint64
	cancel    context.CancelFunc
	timer     *time.Timer
	closed    bool
}

func New(consumer Consumer, eventID int64, opts ...Option) *Flow {
	base, stop := context.WithCancel(context.Background())

	f := &Flow{
		eventID:    eventID,
		consumer:   consumer,
		capture:    nopCapture{},
		cue:        nopCue{},
		describe:   func(err error) string { return err.Error() },
		log:        slogdiscard.NewDiscardLogger(),
		resetDelay: DefaultResetDelay,
		base:       base,
		stopBase:   stop,
		state:      Idle,
		capturing:  true,
		updatedAt:  time.Now(),
	}

	for _, opt := range opts {
		opt(f)
	}

	f.log = f.log.With(slog.Int64("event_id", eventID))

	return f
}

func (f *Flow) EventID() int64 {
	return f.eventID
}

// Submit starts validating payload. It returns once the request is in
// flight; the result arrives through the state, the cue and the reporter.
func (f *Flow) Submit(payload string) error {
	if payload == "" {
		return ErrEmptyPayload
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	if f.state != Idle {
		return ErrBusy
	}

	f.gen++
	gen := f.gen

	ctx, cancel := context.WithCancel(f.base)
	f.cancel = cancel

	f.setState(PendingValidation)
	f.payload = payload
	f.detail = ""
	f.pauseCapture()

	f.log.Info("validating ticket", slog.String("payload", payload))

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		defer cancel()

		err := f.consumer.ConsumeTicket(ctx, f.eventID, payload)
		f.resolve(gen, payload, err)
	}()

	return nil
}

func (f *Flow) resolve(gen uint64, payload string, err error) {
	f.mu.Lock()

	if gen != f.gen || f.state != PendingValidation {
		f.mu.Unlock()
		f.log.Debug("discarding result of abandoned scan", slog.String("payload", payload))
		return
	}

	f.cancel = nil

	out := Outcome{EventID: f.eventID, Payload: payload, Err: err}

	if err == nil {
		f.setState(Valid)
		f.cue.Success()
		f.timer = time.AfterFunc(f.resetDelay, func() { f.autoReset(gen) })
		f.log.Info("ticket accepted", slog.String("payload", payload))
	} else {
		f.setState(Invalid)
		f.detail = f.describe(err)
		f.cue.Failure()
		f.log.Warn("ticket rejected", slog.String("payload", payload), sl.Err(err))
	}

	out.State = f.state
	out.Detail = f.detail
	out.At = f.updatedAt

	f.mu.Unlock()

	f.emit(out)
}

func (f *Flow) autoReset(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen || f.state != Valid {
		return
	}

	f.toIdle()
}

// Cancel abandons the current attempt and returns to Idle immediately. An
// in-flight request is aborted and its result, if any, is ignored.
func (f *Flow) Cancel() {
	f.mu.Lock()

	if f.state == Idle {
		f.mu.Unlock()
		return
	}

	pending := f.state == PendingValidation
	payload := f.payload

	f.toIdle()

	out := Outcome{
		EventID:   f.eventID,
		Payload:   payload,
		State:     Idle,
		Cancelled: true,
		At:        f.updatedAt,
	}

	f.mu.Unlock()

	if pending {
		f.log.Info("scan cancelled", slog.String("payload", payload))
		f.emit(out)
	}
}

// Dismiss clears a Valid or Invalid result.
func (f *Flow) Dismiss() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != Valid && f.state != Invalid {
		return ErrNotTerminal
	}

	f.toIdle()

	return nil
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return Snapshot{
		EventID:   f.eventID,
		State:     f.state,
		Status:    f.state.String(),
		Payload:   f.payload,
		Detail:    f.detail,
		Capturing: f.capturing,
		UpdatedAt: f.updatedAt,
	}
}

// Close abandons any attempt, refuses further submissions and waits for
// in-flight requests to return.
func (f *Flow) Close() {
	f.mu.Lock()
	if f.state != Idle {
		f.toIdle()
	}
	f.closed = true
	f.mu.Unlock()

	f.stopBase()
	f.wg.Wait()
}

// toIdle must be called with f.mu held.
func (f *Flow) toIdle() {
	f.gen++

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}

	f.setState(Idle)
	f.payload = ""
	f.detail = ""
	f.resumeCapture()
}

func (f *Flow) setState(s State) {
	f.state = s
	f.updatedAt = time.Now()
}

func (f *Flow) pauseCapture() {
	if f.capturing {
		f.capturing = false
		f.capture.Pause()
	}
}

func (f *Flow) resumeCapture() {
	if !f.capturing {
		f.capturing = true
		f.capture.Resume()
	}
}

func (f *Flow) emit(out Outcome) {
	if f.report != nil {
		f.report(out)
	}
}

type nopCapture struct{}

func (nopCapture) Pause()  {}
func (nopCapture) Resume() {}

type nopCue struct{}

func (nopCue) Success() {}
func (nopCue) Failure() {}
