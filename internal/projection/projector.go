// Package projection derives the renderable favorites list from the
// favorites set and the detail cache.
package projection

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/observer"
)

// Entry is one row of the derived list.
type Entry struct {
	ID    string
	State domain.FetchState
}

// Equal compares entries by id and state identity
func (e Entry) Equal(o Entry) bool {
	return e.ID == o.ID && e.State.Equal(o.State)
}

// Projector keeps an ordered (id, state) list in sync with its two inputs.
//
// Every favorited id appears exactly once, in favorites order, as Resolved,
// Pending or Failed. Unfetched ids are handed to Ensure during the recompute,
// so they surface as Pending; an id whose Ensure is refused (a closed cache)
// surfaces as Failed with domain.ErrFetchRefused. Recomputes are serialised: a
// notification that arrives while one is running (including one raised by that
// recompute's own Ensure calls) marks the projector dirty and the running pass
// loops once more.
type Projector struct {
	ids     domain.IDSource
	details domain.DetailSource
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
	dirty   bool
	current []Entry

	listeners observer.Set[[]Entry]
	unsubs    []func()
}

// New creates a projector subscribed to ids and details and computes the
// initial list.
func New(ids domain.IDSource, details domain.DetailSource, logger *slog.Logger) *Projector {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Projector{
		ids:     ids,
		details: details,
		logger:  logger,
	}
	p.unsubs = append(p.unsubs,
		ids.Subscribe(func([]string) { p.Recompute() }),
		details.Subscribe(func(string, domain.FetchState) { p.Recompute() }),
	)
	p.Recompute()
	return p
}

// Recompute rebuilds the list and emits it to subscribers if it changed.
// It returns the latest list. When called re-entrantly it only marks the
// running pass dirty and returns the last emitted list.
func (p *Projector) Recompute() []Entry {
	p.mu.Lock()
	if p.running {
		p.dirty = true
		last := slices.Clone(p.current)
		p.mu.Unlock()
		return last
	}
	p.running = true
	p.mu.Unlock()

	for {
		entries := p.compute()

		p.mu.Lock()
		if p.dirty {
			p.dirty = false
			p.mu.Unlock()
			continue
		}
		changed := !slices.EqualFunc(p.current, entries, Entry.Equal)
		p.current = entries
		p.mu.Unlock()

		if changed {
			p.logger.Debug("favorites list changed", "count", len(entries))
			p.listeners.Notify(slices.Clone(entries))
		}

		// Listeners may have mutated an input; settle before releasing.
		p.mu.Lock()
		if p.dirty {
			p.dirty = false
			p.mu.Unlock()
			continue
		}
		p.running = false
		p.mu.Unlock()
		return slices.Clone(entries)
	}
}

// Current returns the last computed list without recomputing
func (p *Projector) Current() []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.current)
}

// Subscribe registers fn to receive every changed list
func (p *Projector) Subscribe(fn func([]Entry)) (unsubscribe func()) {
	return p.listeners.Add(fn)
}

// Close detaches the projector from its inputs
func (p *Projector) Close() {
	for _, unsub := range p.unsubs {
		unsub()
	}
	p.unsubs = nil
}

func (p *Projector) compute() []Entry {
	ids := p.ids.Snapshot()
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		state := p.details.Get(id)
		if state.Status == domain.StatusUnfetched {
			p.details.Ensure(id)
			state = p.details.Get(id)
			if state.Status == domain.StatusUnfetched {
				// Ensure was refused; the entry still needs a visible state
				state = domain.Failed(domain.ErrFetchRefused)
			}
		}
		entries = append(entries, Entry{ID: id, State: state})
	}
	return entries
}

// Counts tallies entries by status
func Counts(entries []Entry) map[domain.FetchStatus]int {
	counts := make(map[domain.FetchStatus]int)
	for _, e := range entries {
		counts[e.State.Status]++
	}
	return counts
}
