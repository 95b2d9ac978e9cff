// Package fetch tracks one asynchronous HTTP request at a time as an
// Idle → Loading → Success | Failure state machine.
//
// A Machine may be run again from any state. Every run claims a
// generation number; only the run holding the latest generation is
// allowed to settle the machine, so an older response that arrives late
// is dropped instead of overwriting a newer one.
package fetch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

// RequestFunc performs one HTTP call
type RequestFunc func(ctx context.Context) (*http.Response, error)

// DecodeFunc turns a 2xx body into the typed value
type DecodeFunc[T any] func(body []byte) (T, error)

// Ticket is a claimed generation returned by Begin
type Ticket struct {
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// Generation returns the generation number this ticket settles
func (t Ticket) Generation() uint64 { return t.gen }

// Option configures a Machine
type Option func(*options)

type options struct {
	abortStale bool
	name       string
}

// WithAbortStale cancels the context of a superseded request when a
// newer one begins.
func WithAbortStale() Option {
	return func(o *options) { o.abortStale = true }
}

// WithName labels the machine in log output
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// Machine is safe for concurrent use
type Machine[T any] struct {
	mu        sync.Mutex
	state     State[T]
	gen       uint64
	cancel    context.CancelFunc
	listeners []func(State[T])

	opts   options
	logger *zap.Logger
}

// New returns an Idle machine
func New[T any](logger *zap.Logger, opts ...Option) *Machine[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Machine[T]{}
	for _, opt := range opts {
		opt(&m.opts)
	}
	if m.opts.name != "" {
		logger = logger.With(zap.String("machine", m.opts.name))
	}
	m.logger = logger
	return m
}

// State returns the current snapshot
func (m *Machine[T]) State() State[T] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// OnChange registers fn to be called after every transition. fn runs on
// the goroutine that caused the transition and must not block. Calls from
// concurrent runs may interleave; read State for the authoritative value.
func (m *Machine[T]) OnChange(fn func(State[T])) {
	m.mu.Lock()
	m.listeners = append(m.listeners, fn)
	m.mu.Unlock()
}

// Run begins and executes a request, blocking until it settles. The
// returned State is the machine's state afterwards, which belongs to a
// newer run if this one was superseded meanwhile.
func (m *Machine[T]) Run(ctx context.Context, request RequestFunc, decode DecodeFunc[T]) State[T] {
	return m.Execute(m.Begin(ctx), request, decode)
}

// Begin claims the next generation and moves the machine to Loading.
// Callers that dispatch the request on another goroutine must call Begin
// first so that issue order, not scheduling order, decides which run wins.
func (m *Machine[T]) Begin(ctx context.Context) Ticket {
	runCtx, cancel := context.WithCancel(ctx)

	m.mu.Lock()
	m.gen++
	t := Ticket{gen: m.gen, ctx: runCtx, cancel: cancel}
	if m.opts.abortStale && m.cancel != nil {
		m.cancel()
	}
	m.cancel = cancel
	var zero T
	m.state = State[T]{Status: StatusLoading, Value: zero, Generation: t.gen}
	snap, listeners := m.state, m.snapshotListeners()
	m.mu.Unlock()

	notify(listeners, snap)
	return t
}

// Execute performs the request for t and settles the machine if t still
// holds the latest generation.
func (m *Machine[T]) Execute(t Ticket, request RequestFunc, decode DecodeFunc[T]) State[T] {
	defer t.cancel()

	value, ferr := perform(t.ctx, request, decode)

	next := State[T]{Generation: t.gen}
	if ferr != nil {
		next.Status = StatusFailure
		next.Reason = ferr.Reason()
		next.Err = ferr
	} else {
		next.Status = StatusSuccess
		next.Value = value
	}

	m.mu.Lock()
	if t.gen != m.gen {
		current := m.state
		m.mu.Unlock()
		m.logger.Debug("discarding stale result",
			zap.Uint64("generation", t.gen),
			zap.Uint64("latest", current.Generation),
			zap.Stringer("status", next.Status))
		return current
	}
	m.state = next
	m.cancel = nil
	listeners := m.snapshotListeners()
	m.mu.Unlock()

	if ferr != nil {
		m.logger.Warn("request failed",
			zap.Uint64("generation", t.gen),
			zap.String("kind", string(ferr.Kind)),
			zap.Int("status", ferr.Status),
			zap.Error(ferr))
	}
	notify(listeners, next)
	return next
}

// Reject settles the machine as failed without sending anything. It
// supersedes any run in flight.
func (m *Machine[T]) Reject(ferr *Error) State[T] {
	m.mu.Lock()
	m.gen++
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	next := State[T]{Status: StatusFailure, Reason: ferr.Reason(), Err: ferr, Generation: m.gen}
	m.state = next
	listeners := m.snapshotListeners()
	m.mu.Unlock()

	m.logger.Debug("request rejected", zap.Uint64("generation", next.Generation), zap.String("reason", next.Reason))
	notify(listeners, next)
	return next
}

// IsCurrent reports whether t is the latest generation
func (m *Machine[T]) IsCurrent(t Ticket) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return t.gen == m.gen
}

func (m *Machine[T]) snapshotListeners() []func(State[T]) {
	if len(m.listeners) == 0 {
		return nil
	}
	out := make([]func(State[T]), len(m.listeners))
	copy(out, m.listeners)
	return out
}

func notify[T any](listeners []func(State[T]), s State[T]) {
	for _, fn := range listeners {
		fn(s)
	}
}

func perform[T any](ctx context.Context, request RequestFunc, decode DecodeFunc[T]) (T, *Error) {
	var zero T

	resp, err := request(ctx)
	if err != nil {
		return zero, NetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, NetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return zero, ServerError(resp.StatusCode, ServerMessage(body))
	}

	value, err := decode(body)
	if err != nil {
		return zero, DecodeError(err)
	}
	return value, nil
}

// ServerMessage extracts error_msg from an error body, or "" if absent
func ServerMessage(body []byte) string {
	var payload struct {
		ErrorMsg string `json:"error_msg"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.ErrorMsg
}
