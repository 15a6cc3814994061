// Package detail caches Pokémon detail records per identifier and
// deduplicates their fetches.
package detail

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/observer"
)

const (
	defaultFetchTimeout  = 30 * time.Second
	defaultPrefetchLimit = 4
)

// Fetcher loads one detail record. pokeapi.Client implements it.
type Fetcher interface {
	GetPokemon(ctx context.Context, id string) (*domain.Pokemon, error)
}

// Change is delivered to subscribers after every state transition.
type Change struct {
	ID    string
	State domain.FetchState
}

// Option configures a Resolver
type Option func(*Resolver)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDispatch routes fetch completions through dispatch. The TUI uses this
// to run every completion on the bubbletea update loop. The default runs the
// completion on the goroutine that performed the fetch.
func WithDispatch(dispatch func(func())) Option {
	return func(r *Resolver) {
		if dispatch != nil {
			r.dispatch = dispatch
		}
	}
}

// WithTimeout bounds each individual fetch
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

type entry struct {
	state domain.FetchState
}

// Resolver is the per-identifier detail cache.
//
// Each identifier moves Unfetched → Pending → Resolved | Failed, and Failed
// may go back to Pending through Ensure. At most one fetch per identifier is
// in flight at any time. Entries are never evicted automatically.
type Resolver struct {
	fetcher  Fetcher
	logger   *slog.Logger
	dispatch func(func())
	timeout  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	entries map[string]*entry

	listeners observer.Set[Change]
}

// NewResolver creates a resolver backed by fetcher.
func NewResolver(fetcher Fetcher, opts ...Option) *Resolver {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Resolver{
		fetcher:  fetcher,
		logger:   slog.Default(),
		dispatch: func(fn func()) { fn() },
		timeout:  defaultFetchTimeout,
		ctx:      ctx,
		cancel:   cancel,
		entries:  make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ensure starts a fetch for id if it is Unfetched or Failed and returns true.
// Pending and Resolved ids are left alone. Ensure never blocks on the network.
func (r *Resolver) Ensure(id string) bool {
	if !r.begin(id) {
		return false
	}
	go r.run(id)
	return true
}

// Get returns the current state for id without triggering a fetch
func (r *Resolver) Get(id string) domain.FetchState {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[id]; ok {
		return e.state
	}
	return domain.Unfetched()
}

// Evict drops a Resolved or Failed entry, returning id to Unfetched.
// Pending entries are kept so that a later Ensure cannot start a second
// fetch for the same id; Evict reports false for them.
func (r *Resolver) Evict(id string) bool {
	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok || e.state.Status == domain.StatusPending {
		r.mu.Unlock()
		return false
	}
	delete(r.entries, id)
	r.mu.Unlock()

	r.logger.Debug("evicted detail", "id", id)
	r.listeners.Notify(Change{ID: id, State: domain.Unfetched()})
	return true
}

// Len returns the number of cached entries in any state except Unfetched
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Subscribe registers fn for state transitions. Pending transitions are
// reported on the goroutine that called Ensure; completions are reported
// through the dispatcher.
func (r *Resolver) Subscribe(fn func(id string, state domain.FetchState)) (unsubscribe func()) {
	return r.listeners.Add(func(c Change) { fn(c.ID, c.State) })
}

// Prefetch fetches every fetchable id with at most limit requests in flight
// and returns once they have all settled. Ids that are already Pending
// elsewhere are skipped, not awaited. Fetch failures become Failed states;
// the only error returned is ctx's.
func (r *Resolver) Prefetch(ctx context.Context, ids []string, limit int) error {
	if limit <= 0 {
		limit = defaultPrefetchLimit
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, id := range ids {
		if gctx.Err() != nil {
			break
		}
		if !r.begin(id) {
			continue
		}
		g.Go(func() error {
			r.run(id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Wait blocks until every in-flight fetch has completed
func (r *Resolver) Wait() {
	r.wg.Wait()
}

// Close cancels in-flight fetches and waits for them to return.
// Results that arrive after Close are dropped.
func (r *Resolver) Close() {
	r.mu.Lock()
	r.cancel()
	r.mu.Unlock()
	r.wg.Wait()
}

// begin moves id to Pending if allowed. The caller must then run the fetch.
func (r *Resolver) begin(id string) bool {
	if id == "" {
		return false
	}

	r.mu.Lock()
	if r.ctx.Err() != nil {
		r.mu.Unlock()
		return false
	}
	e, ok := r.entries[id]
	if ok && !e.state.CanFetch() {
		r.mu.Unlock()
		return false
	}
	if !ok {
		e = &entry{}
		r.entries[id] = e
	}
	e.state = domain.Pending()
	r.wg.Add(1)
	r.mu.Unlock()

	r.logger.Debug("fetching detail", "id", id)
	r.listeners.Notify(Change{ID: id, State: domain.Pending()})
	return true
}

func (r *Resolver) run(id string) {
	defer r.wg.Done()

	ctx, cancel := context.WithTimeout(r.ctx, r.timeout)
	defer cancel()

	record, err := r.fetcher.GetPokemon(ctx, id)
	if err == nil && record == nil {
		err = &domain.DecodeError{Err: domain.ErrNotFound}
	}
	if r.ctx.Err() != nil {
		return
	}

	r.dispatch(func() { r.complete(id, record, err) })
}

// complete applies a finished fetch to its Pending entry.
func (r *Resolver) complete(id string, record *domain.Pokemon, err error) {
	var state domain.FetchState
	if err != nil {
		state = domain.Failed(domain.ClassifyFetchError(err))
	} else {
		state = domain.Resolved(record)
	}

	r.mu.Lock()
	e, ok := r.entries[id]
	if !ok || e.state.Status != domain.StatusPending {
		r.mu.Unlock()
		r.logger.Debug("dropped stale detail", "id", id)
		return
	}
	e.state = state
	r.mu.Unlock()

	if err != nil {
		r.logger.Warn("fetch failed", "id", id, "error", state.Err)
	} else {
		r.logger.Debug("fetched detail", "id", id, "name", record.Name)
	}
	r.listeners.Notify(Change{ID: id, State: state})
}
