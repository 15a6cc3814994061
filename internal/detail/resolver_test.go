package detail

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeFetcher serves records keyed by id. When gate is set every call blocks
// until the gate is closed or the context ends.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   map[string]int
	gate    chan struct{}
	respond func(id string, call int) (*domain.Pokemon, error)

	active    atomic.Int32
	maxActive atomic.Int32
	delay     time.Duration
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{calls: make(map[string]int)}
}

func (f *fakeFetcher) GetPokemon(ctx context.Context, id string) (*domain.Pokemon, error) {
	f.mu.Lock()
	f.calls[id]++
	call := f.calls[id]
	gate := f.gate
	f.mu.Unlock()

	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		m := f.maxActive.Load()
		if n <= m || f.maxActive.CompareAndSwap(m, n) {
			break
		}
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.respond != nil {
		return f.respond(id, call)
	}
	n64, _ := strconv.Atoi(id)
	return &domain.Pokemon{ID: n64, Name: "mon-" + id}, nil
}

func (f *fakeFetcher) callCount(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[id]
}

func newTestResolver(f Fetcher, opts ...Option) *Resolver {
	opts = append([]Option{WithLogger(logging.NullLogger())}, opts...)
	return NewResolver(f, opts...)
}

func TestEnsure_DeduplicatesInFlight(t *testing.T) {
	f := newFakeFetcher()
	f.gate = make(chan struct{})
	r := newTestResolver(f)
	defer r.Close()

	assert.True(t, r.Ensure("25"))
	assert.False(t, r.Ensure("25"))
	assert.False(t, r.Ensure("25"))
	assert.Equal(t, domain.StatusPending, r.Get("25").Status)

	close(f.gate)
	r.Wait()

	state := r.Get("25")
	require.Equal(t, domain.StatusResolved, state.Status)
	assert.Equal(t, "mon-25", state.Record.Name)
	assert.Equal(t, 1, f.callCount("25"))

	// Resolved ids are never refetched
	assert.False(t, r.Ensure("25"))
	assert.Equal(t, 1, f.callCount("25"))
}

func TestEnsure_ConcurrentCallersStartOneFetch(t *testing.T) {
	f := newFakeFetcher()
	f.gate = make(chan struct{})
	r := newTestResolver(f)
	defer r.Close()

	var started atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if r.Ensure("pikachu") {
				started.Add(1)
			}
		}()
	}
	wg.Wait()
	close(f.gate)
	r.Wait()

	assert.Equal(t, int32(1), started.Load())
	assert.Equal(t, 1, f.callCount("pikachu"))
}

func TestEnsure_EmptyID(t *testing.T) {
	r := newTestResolver(newFakeFetcher())
	defer r.Close()

	assert.False(t, r.Ensure(""))
	assert.Equal(t, 0, r.Len())
}

func TestEnsure_RetryAfterFailure(t *testing.T) {
	f := newFakeFetcher()
	f.respond = func(id string, call int) (*domain.Pokemon, error) {
		if call == 1 {
			return nil, &domain.HTTPError{StatusCode: 404, URL: "/pokemon/" + id}
		}
		return &domain.Pokemon{ID: 999999, Name: "late"}, nil
	}
	r := newTestResolver(f)
	defer r.Close()

	require.True(t, r.Ensure("999999"))
	r.Wait()

	state := r.Get("999999")
	require.Equal(t, domain.StatusFailed, state.Status)
	assert.True(t, errors.Is(state.Err, domain.ErrNotFound))
	var httpErr *domain.HTTPError
	require.ErrorAs(t, state.Err, &httpErr)
	assert.Equal(t, 404, httpErr.StatusCode)

	require.True(t, r.Ensure("999999"))
	r.Wait()

	state = r.Get("999999")
	require.Equal(t, domain.StatusResolved, state.Status)
	assert.Equal(t, "late", state.Record.Name)
	assert.Equal(t, 2, f.callCount("999999"))
}

func TestEnsure_ClassifiesUnknownErrorsAsNetwork(t *testing.T) {
	f := newFakeFetcher()
	f.respond = func(string, int) (*domain.Pokemon, error) {
		return nil, errors.New("connection refused")
	}
	r := newTestResolver(f)
	defer r.Close()

	r.Ensure("1")
	r.Wait()

	state := r.Get("1")
	require.Equal(t, domain.StatusFailed, state.Status)
	var netErr *domain.NetworkError
	assert.ErrorAs(t, state.Err, &netErr)
	assert.ErrorIs(t, state.Err, domain.ErrServerOffline)
}

func TestEnsure_NilRecordIsDecodeFailure(t *testing.T) {
	f := newFakeFetcher()
	f.respond = func(string, int) (*domain.Pokemon, error) { return nil, nil }
	r := newTestResolver(f)
	defer r.Close()

	r.Ensure("1")
	r.Wait()

	state := r.Get("1")
	require.Equal(t, domain.StatusFailed, state.Status)
	var decErr *domain.DecodeError
	assert.ErrorAs(t, state.Err, &decErr)
}

func TestSubscribe_ReportsTransitions(t *testing.T) {
	f := newFakeFetcher()
	r := newTestResolver(f)
	defer r.Close()

	var mu sync.Mutex
	var got []string
	unsub := r.Subscribe(func(id string, state domain.FetchState) {
		mu.Lock()
		got = append(got, fmt.Sprintf("%s:%s", id, state.Status))
		mu.Unlock()
	})

	r.Ensure("4")
	r.Wait()
	unsub()
	r.Evict("4")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"4:pending", "4:resolved"}, got)
}

func TestGet_UnknownIsUnfetched(t *testing.T) {
	r := newTestResolver(newFakeFetcher())
	defer r.Close()

	assert.Equal(t, domain.StatusUnfetched, r.Get("151").Status)
	assert.Equal(t, 0, r.Len())
}

func TestEvict(t *testing.T) {
	f := newFakeFetcher()
	f.gate = make(chan struct{})
	r := newTestResolver(f)
	defer r.Close()

	assert.False(t, r.Evict("7"), "unknown id")

	r.Ensure("7")
	assert.False(t, r.Evict("7"), "pending entries stay")

	close(f.gate)
	r.Wait()
	require.Equal(t, domain.StatusResolved, r.Get("7").Status)

	var last domain.FetchState
	r.Subscribe(func(_ string, s domain.FetchState) { last = s })
	assert.True(t, r.Evict("7"))
	assert.Equal(t, domain.StatusUnfetched, last.Status)
	assert.Equal(t, domain.StatusUnfetched, r.Get("7").Status)

	assert.True(t, r.Ensure("7"))
	r.Wait()
	assert.Equal(t, 2, f.callCount("7"))
}

func TestWithDispatch_DefersCompletion(t *testing.T) {
	queue := make(chan func(), 1)
	r := newTestResolver(newFakeFetcher(), WithDispatch(func(fn func()) { queue <- fn }))
	defer r.Close()

	r.Ensure("1")
	fn := <-queue
	assert.Equal(t, domain.StatusPending, r.Get("1").Status)

	fn()
	assert.Equal(t, domain.StatusResolved, r.Get("1").Status)
	r.Wait()
}

func TestPrefetch_BoundsConcurrency(t *testing.T) {
	f := newFakeFetcher()
	f.delay = 5 * time.Millisecond
	r := newTestResolver(f)
	defer r.Close()

	ids := make([]string, 12)
	for i := range ids {
		ids[i] = strconv.Itoa(i + 1)
	}

	require.NoError(t, r.Prefetch(context.Background(), ids, 3))

	for _, id := range ids {
		assert.Equal(t, domain.StatusResolved, r.Get(id).Status, id)
		assert.Equal(t, 1, f.callCount(id), id)
	}
	assert.LessOrEqual(t, f.maxActive.Load(), int32(3))
}

func TestPrefetch_SkipsKnownIDs(t *testing.T) {
	f := newFakeFetcher()
	r := newTestResolver(f)
	defer r.Close()

	r.Ensure("1")
	r.Wait()

	require.NoError(t, r.Prefetch(context.Background(), []string{"1", "2", "2"}, 0))
	assert.Equal(t, 1, f.callCount("1"))
	assert.Equal(t, 1, f.callCount("2"))
}

func TestPrefetch_CancelledContext(t *testing.T) {
	f := newFakeFetcher()
	r := newTestResolver(f)
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Prefetch(ctx, []string{"1", "2"}, 2)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, f.callCount("1"))
}

func TestClose_CancelsInFlight(t *testing.T) {
	f := newFakeFetcher()
	f.gate = make(chan struct{})
	r := newTestResolver(f)

	r.Ensure("25")
	r.Close()

	// the cancelled fetch is dropped, not recorded as a failure
	assert.Equal(t, domain.StatusPending, r.Get("25").Status)
	assert.False(t, r.Ensure("26"))
}
