package resource

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	param string
	reply chan result
}

type result struct {
	value []string
	err   error
}

// gatedFetch records every call and blocks until the test replies.
type gatedFetch struct {
	mu    sync.Mutex
	calls []call
	seen  chan call
}

func newGatedFetch() *gatedFetch {
	return &gatedFetch{seen: make(chan call, 16)}
}

func (g *gatedFetch) fetch(ctx context.Context, param string) ([]string, error) {
	c := call{param: param, reply: make(chan result, 1)}

	g.mu.Lock()
	g.calls = append(g.calls, c)
	g.mu.Unlock()

	g.seen <- c

	select {
	case r := <-c.reply:
		return r.value, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedFetch) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func (g *gatedFetch) next(t *testing.T) call {
	t.Helper()
	select {
	case c := <-g.seen:
		return c
	case <-time.After(time.Second):
		t.Fatal("fetch was not called")
		return call{}
	}
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("operation did not complete")
	}
}

func newTestResource(fetch FetchFunc[[]string, string]) *Resource[[]string, string] {
	return New("test", fetch, Options[[]string]{
		Empty:           []string{},
		FallbackMessage: "Failed to fetch test",
	})
}

func TestRefreshSuccess(t *testing.T) {
	g := newGatedFetch()
	r := newTestResource(g.fetch)

	done := r.Use(context.Background(), "tops")

	// Loading is visible before the call resolves.
	state := r.State()
	assert.True(t, state.Loading)
	assert.Empty(t, state.Error)

	c := g.next(t)
	assert.Equal(t, "tops", c.param)
	c.reply <- result{value: []string{"black hoodie"}}
	wait(t, done)

	state = r.State()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
	assert.False(t, state.Failed())
	assert.Equal(t, []string{"black hoodie"}, state.Value)
}

func TestRefreshFailureResetsToEmpty(t *testing.T) {
	calls := 0
	r := newTestResource(func(ctx context.Context, _ string) ([]string, error) {
		calls++
		if calls == 1 {
			return []string{"white tee"}, nil
		}
		return nil, errors.New("network timeout")
	})

	state := r.Load(context.Background())
	require.Equal(t, []string{"white tee"}, state.Value)

	state = r.Load(context.Background())
	assert.False(t, state.Loading)
	assert.Equal(t, "network timeout", state.Error)
	assert.True(t, state.Failed())
	assert.Equal(t, []string{}, state.Value)
}

func TestFailureWithoutMessageUsesFallback(t *testing.T) {
	r := newTestResource(func(ctx context.Context, _ string) ([]string, error) {
		return nil, errors.New("")
	})

	state := r.Load(context.Background())
	assert.Equal(t, "Failed to fetch test", state.Error)
}

func TestCustomErrorMessage(t *testing.T) {
	r := New("test", func(ctx context.Context, _ string) (int, error) {
		return 0, errors.New("dial tcp: connection refused")
	}, Options[int]{
		Empty:        -1,
		ErrorMessage: func(err error) string { return "offline" },
	})

	state := r.Load(context.Background())
	assert.Equal(t, "offline", state.Error)
	assert.Equal(t, -1, state.Value)
}

func TestDefaultFallbackMessage(t *testing.T) {
	r := New("test", func(ctx context.Context, _ string) (int, error) {
		return 0, errors.New("  ")
	}, Options[int]{})

	state := r.Load(context.Background())
	assert.Equal(t, defaultFallbackMessage, state.Error)
}

func TestUseFetchesOnlyOnParamChange(t *testing.T) {
	g := newGatedFetch()
	r := newTestResource(g.fetch)
	ctx := context.Background()

	done := r.Use(ctx, "tops")
	g.next(t).reply <- result{value: []string{"a"}}
	wait(t, done)

	// Same parameter: no call.
	wait(t, r.Use(ctx, "tops"))
	assert.Equal(t, 1, g.count())

	// A -> B triggers exactly one call with B.
	done = r.Use(ctx, "shoes")
	c := g.next(t)
	assert.Equal(t, "shoes", c.param)
	c.reply <- result{value: []string{"b"}}
	wait(t, done)

	assert.Equal(t, 2, g.count())
	assert.Equal(t, "shoes", r.Param())
	assert.Equal(t, []string{"b"}, r.State().Value)
}

func TestRefreshUsesBoundParam(t *testing.T) {
	g := newGatedFetch()
	r := newTestResource(g.fetch)
	ctx := context.Background()

	done := r.Use(ctx, "layers")
	g.next(t).reply <- result{}
	wait(t, done)

	done = r.Refresh(ctx)
	c := g.next(t)
	assert.Equal(t, "layers", c.param)
	c.reply <- result{value: []string{"puffer jacket"}}
	wait(t, done)

	assert.Equal(t, 2, g.count())
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	g := newGatedFetch()
	r := newTestResource(g.fetch)
	ctx := context.Background()

	first := r.Use(ctx, "tops")
	firstCall := g.next(t)

	second := r.Use(ctx, "bottoms")
	secondCall := g.next(t)

	// Newer request resolves first.
	secondCall.reply <- result{value: []string{"blue denim"}}
	wait(t, second)

	// Older request resolves later and must not overwrite.
	firstCall.reply <- result{value: []string{"white tee"}}
	wait(t, first)

	state := r.State()
	assert.False(t, state.Loading)
	assert.Equal(t, []string{"blue denim"}, state.Value)
}

func TestStaleResponseKeepsLoading(t *testing.T) {
	g := newGatedFetch()
	r := newTestResource(g.fetch)
	ctx := context.Background()

	first := r.Refresh(ctx)
	firstCall := g.next(t)
	second := r.Refresh(ctx)
	secondCall := g.next(t)

	firstCall.reply <- result{err: errors.New("boom")}
	wait(t, first)

	// The outstanding request still owns the state.
	state := r.State()
	assert.True(t, state.Loading)
	assert.Empty(t, state.Error)

	secondCall.reply <- result{value: []string{"ok"}}
	wait(t, second)
	assert.False(t, r.State().Loading)
}

func TestDoReturnsAndCommits(t *testing.T) {
	r := newTestResource(func(ctx context.Context, _ string) ([]string, error) {
		return nil, errors.New("not yet")
	})
	ctx := context.Background()

	state := r.Load(ctx)
	require.Equal(t, "not yet", state.Error)

	value, err := r.Do(ctx, func(ctx context.Context) ([]string, error) {
		return []string{"generated"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"generated"}, value)

	state = r.State()
	assert.Equal(t, []string{"generated"}, state.Value)
	assert.Empty(t, state.Error)
	assert.False(t, state.Loading)
}

func TestDoFailure(t *testing.T) {
	r := newTestResource(func(ctx context.Context, _ string) ([]string, error) {
		return []string{"x"}, nil
	})
	ctx := context.Background()
	r.Load(ctx)

	value, err := r.Do(ctx, func(ctx context.Context) ([]string, error) {
		return nil, errors.New("generation failed")
	})
	require.Error(t, err)
	assert.Equal(t, []string{}, value)

	state := r.State()
	assert.Equal(t, "generation failed", state.Error)
	assert.Equal(t, []string{}, state.Value)
}

func TestUpdateSuccessAndFailure(t *testing.T) {
	r := newTestResource(func(ctx context.Context, _ string) ([]string, error) {
		return []string{"a"}, nil
	})
	ctx := context.Background()
	r.Load(ctx)

	err := r.Update(ctx, func(ctx context.Context, current []string) ([]string, error) {
		return append(append([]string{}, current...), "b"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, r.State().Value)

	err = r.Update(ctx, func(ctx context.Context, current []string) ([]string, error) {
		return nil, errors.New("rejected")
	})
	require.Error(t, err)

	state := r.State()
	assert.Equal(t, []string{"a", "b"}, state.Value)
	assert.Empty(t, state.Error)
	assert.False(t, state.Loading)
}

func TestUpdateDroppedWhenLoadStartsMeanwhile(t *testing.T) {
	g := newGatedFetch()
	r := newTestResource(g.fetch)
	ctx := context.Background()

	release := make(chan struct{})
	updated := make(chan error, 1)
	go func() {
		updated <- r.Update(ctx, func(ctx context.Context, _ []string) ([]string, error) {
			<-release
			return []string{"mutated"}, nil
		})
	}()

	// Give the update time to capture its token, then start a load.
	time.Sleep(20 * time.Millisecond)
	done := r.Refresh(ctx)
	c := g.next(t)

	close(release)
	require.NoError(t, <-updated)

	c.reply <- result{value: []string{"fresh"}}
	wait(t, done)

	assert.Equal(t, []string{"fresh"}, r.State().Value)
}

func TestSubscribeSeesLoadingTransition(t *testing.T) {
	r := newTestResource(func(ctx context.Context, _ string) ([]string, error) {
		return []string{"a"}, nil
	})

	var (
		mu     sync.Mutex
		states []State[[]string]
	)
	cancel := r.Subscribe(func(s State[[]string]) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
	})

	r.Load(context.Background())

	mu.Lock()
	require.Len(t, states, 2)
	assert.True(t, states[0].Loading)
	assert.False(t, states[1].Loading)
	assert.Equal(t, []string{"a"}, states[1].Value)
	mu.Unlock()

	cancel()
	r.Load(context.Background())

	mu.Lock()
	assert.Len(t, states, 2)
	mu.Unlock()
}

func TestDoSupersededByNewerLoad(t *testing.T) {
	g := newGatedFetch()
	r := newTestResource(g.fetch)
	ctx := context.Background()

	release := make(chan struct{})
	type doResult struct {
		value []string
		err   error
	}
	returned := make(chan doResult, 1)
	go func() {
		value, err := r.Do(ctx, func(ctx context.Context) ([]string, error) {
			<-release
			return []string{"generated"}, nil
		})
		returned <- doResult{value, err}
	}()

	require.Eventually(t, func() bool { return r.State().Loading }, time.Second, 5*time.Millisecond)
	done := r.Refresh(ctx)
	g.next(t).reply <- result{value: []string{"fetched"}}
	wait(t, done)

	close(release)
	res := <-returned

	require.ErrorIs(t, res.err, ErrSuperseded)
	assert.Equal(t, []string{}, res.value)
	assert.Equal(t, []string{"fetched"}, r.State().Value)
	assert.False(t, r.State().Loading)
}

func TestListenerMayCancelItself(t *testing.T) {
	r := newTestResource(func(ctx context.Context, _ string) ([]string, error) {
		return []string{"a"}, nil
	})

	var (
		cancel func()
		once   sync.Once
		calls  int
	)
	cancel = r.Subscribe(func(s State[[]string]) {
		calls++
		if !s.Loading {
			once.Do(cancel)
		}
	})

	loaded := make(chan struct{})
	go func() {
		r.Load(context.Background())
		close(loaded)
	}()
	wait(t, loaded)

	other := make(chan struct{})
	go func() {
		r.Load(context.Background())
		close(other)
	}()
	wait(t, other)

	// Loading and loaded of the first Load only.
	assert.Equal(t, 2, calls)
}

func TestListenerMaySubscribe(t *testing.T) {
	r := newTestResource(func(ctx context.Context, _ string) ([]string, error) {
		return []string{"a"}, nil
	})

	var (
		mu     sync.Mutex
		nested int
		added  bool
	)
	r.Subscribe(func(s State[[]string]) {
		mu.Lock()
		defer mu.Unlock()
		if added {
			return
		}
		added = true
		r.Subscribe(func(State[[]string]) {
			mu.Lock()
			nested++
			mu.Unlock()
		})
	})

	loaded := make(chan struct{})
	go func() {
		r.Load(context.Background())
		close(loaded)
	}()
	wait(t, loaded)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, added)
	assert.Equal(t, 1, nested)
}

func TestBindSetsRefreshParam(t *testing.T) {
	g := newGatedFetch()
	r := newTestResource(g.fetch)
	ctx := context.Background()

	r.Bind("shoes")
	done := r.Refresh(ctx)
	c := g.next(t)
	assert.Equal(t, "shoes", c.param)
	c.reply <- result{value: []string{"loafers"}}
	wait(t, done)

	// Refresh counts as first use, so the same value does not fetch again.
	wait(t, r.Use(ctx, "shoes"))
	assert.Equal(t, 1, g.count())
}
