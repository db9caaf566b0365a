// Package resource binds a remote, asynchronously fetched value to a synchronous
// snapshot of {value, loading, error} that a screen can render at any time.
//
// A Resource never returns fetch failures as errors. They are folded into the
// snapshot: the value resets to the configured empty default and Error carries a
// human-readable message.
package resource

import (
	"context"
	"errors"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

const defaultFallbackMessage = "Failed to fetch resource"

// ErrSuperseded is returned by Do when a newer loading operation started before
// the result arrived. The result was not committed.
var ErrSuperseded = errors.New("superseded by a newer request")

// FetchFunc loads the resource for the given parameter.
type FetchFunc[T any, P comparable] func(ctx context.Context, param P) (T, error)

// Operation is a loading call other than the fetch itself, e.g. a server-side generate.
type Operation[T any] func(ctx context.Context) (T, error)

// Mutation derives a new value from the current one.
type Mutation[T any] func(ctx context.Context, current T) (T, error)

// State is a consistent snapshot. Error is empty when there is no error.
type State[T any] struct {
	Value   T
	Loading bool
	Error   string
}

func (s State[T]) Failed() bool {
	return s.Error != ""
}

type Options[T any] struct {
	// Empty is stored whenever a loading operation fails.
	Empty T
	// FallbackMessage is reported when a failure carries no message.
	FallbackMessage string
	// ErrorMessage maps a failure to display text. Defaults to err.Error().
	ErrorMessage func(err error) string
}

type Resource[T any, P comparable] struct {
	name  string
	fetch FetchFunc[T, P]
	opts  Options[T]

	mu    sync.Mutex
	state State[T]
	param P
	used  bool
	// token identifies the latest loading operation; older responses are discarded.
	token uint64

	listenersMu sync.Mutex
	listeners   map[int]func(State[T])
	nextID      int

	// deliverMu keeps deliveries serial without holding listenersMu.
	deliverMu sync.Mutex
}

func New[T any, P comparable](name string, fetch FetchFunc[T, P], opts Options[T]) *Resource[T, P] {
	if opts.FallbackMessage == "" {
		opts.FallbackMessage = defaultFallbackMessage
	}

	return &Resource[T, P]{
		name:      name,
		fetch:     fetch,
		opts:      opts,
		state:     State[T]{Value: opts.Empty},
		listeners: make(map[int]func(State[T])),
	}
}

func (r *Resource[T, P]) Name() string {
	return r.name
}

func (r *Resource[T, P]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state
}

// Param returns the currently bound parameter.
func (r *Resource[T, P]) Param() P {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.param
}

// Bind sets the parameter Refresh and Load use before any Use. It does not fetch,
// and the first Use still fetches even for the same value.
func (r *Resource[T, P]) Bind(param P) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.param = param
}

// Use binds param and fetches on first use or when param changed. Otherwise it
// returns an already closed channel and performs no call.
func (r *Resource[T, P]) Use(ctx context.Context, param P) <-chan struct{} {
	r.mu.Lock()
	if r.used && r.param == param {
		r.mu.Unlock()
		return closedChan()
	}
	r.used = true
	r.param = param
	r.mu.Unlock()

	log.Debugf("%s: parameter bound to %v", r.name, param)
	return r.Refresh(ctx)
}

// Refresh re-fetches with the bound parameter without blocking. Loading is set
// before Refresh returns; the channel closes once the terminal state is committed.
func (r *Resource[T, P]) Refresh(ctx context.Context) <-chan struct{} {
	r.mu.Lock()
	param := r.param
	r.used = true
	r.mu.Unlock()

	return r.start(ctx, func(ctx context.Context) (T, error) {
		return r.fetch(ctx, param)
	}, nil)
}

// Load is a blocking Refresh.
func (r *Resource[T, P]) Load(ctx context.Context) State[T] {
	<-r.Refresh(ctx)
	return r.State()
}

// Do runs op with the same lifecycle as Refresh and waits for it. The result is
// returned to the caller in addition to being committed. When a newer loading
// operation started meanwhile the result is discarded and ErrSuperseded returned.
func (r *Resource[T, P]) Do(ctx context.Context, op Operation[T]) (T, error) {
	var (
		value     T
		err       error
		committed bool
	)

	done := r.start(ctx, func(ctx context.Context) (T, error) {
		value, err = op(ctx)
		return value, err
	}, &committed)
	<-done

	switch {
	case !committed:
		return r.opts.Empty, ErrSuperseded
	case err != nil:
		return r.opts.Empty, err
	}
	return value, nil
}

// Update applies mutation to the current value without toggling Loading. A failure
// leaves the state untouched and is returned. The result is dropped if a loading
// operation started while the mutation was in flight.
func (r *Resource[T, P]) Update(ctx context.Context, mutation Mutation[T]) error {
	r.mu.Lock()
	token := r.token
	current := r.state.Value
	r.mu.Unlock()

	value, err := mutation(ctx, current)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if token != r.token {
		r.mu.Unlock()
		log.Debugf("%s: dropping update superseded by a newer load", r.name)
		return nil
	}
	r.state.Value = value
	r.mu.Unlock()

	r.notify()
	return nil
}

// Subscribe registers fn to be called with the latest snapshot after every change.
func (r *Resource[T, P]) Subscribe(fn func(State[T])) (cancel func()) {
	r.listenersMu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.listenersMu.Unlock()

	return func() {
		r.listenersMu.Lock()
		delete(r.listeners, id)
		r.listenersMu.Unlock()
	}
}

// start runs op as the latest loading operation. When committed is non-nil it
// reports whether the result reached the state; it is set before done closes.
func (r *Resource[T, P]) start(ctx context.Context, op Operation[T], committed *bool) <-chan struct{} {
	r.mu.Lock()
	r.token++
	token := r.token
	r.state.Loading = true
	r.state.Error = ""
	r.mu.Unlock()

	r.notify()

	done := make(chan struct{})
	go func() {
		defer close(done)

		value, err := op(ctx)
		ok := r.commit(token, value, err)
		if committed != nil {
			*committed = ok
		}
	}()

	return done
}

func (r *Resource[T, P]) commit(token uint64, value T, err error) bool {
	r.mu.Lock()
	if token != r.token {
		r.mu.Unlock()
		log.Debugf("%s: discarding stale response (request %d superseded by %d)", r.name, token, r.token)
		return false
	}

	if err != nil {
		r.state.Value = r.opts.Empty
		r.state.Error = r.message(err)
		log.Warnf("%s: %s", r.name, r.state.Error)
	} else {
		r.state.Value = value
		r.state.Error = ""
	}
	r.state.Loading = false
	r.mu.Unlock()

	r.notify()
	return true
}

func (r *Resource[T, P]) message(err error) string {
	var msg string
	if r.opts.ErrorMessage != nil {
		msg = r.opts.ErrorMessage(err)
	} else {
		msg = err.Error()
	}

	if strings.TrimSpace(msg) == "" {
		return r.opts.FallbackMessage
	}
	return msg
}

// notify delivers the current snapshot. Listeners run serially so they observe
// changes in commit order. A listener may Subscribe or cancel, but must not start
// an operation on the same resource synchronously.
func (r *Resource[T, P]) notify() {
	r.deliverMu.Lock()
	defer r.deliverMu.Unlock()

	r.listenersMu.Lock()
	listeners := make([]func(State[T]), 0, len(r.listeners))
	for _, fn := range r.listeners {
		listeners = append(listeners, fn)
	}
	r.listenersMu.Unlock()

	if len(listeners) == 0 {
		return
	}

	snapshot := r.State()
	for _, fn := range listeners {
		fn(snapshot)
	}
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
