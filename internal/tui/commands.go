package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/pokedex/internal/detail"
	"github.com/mmcdole/pokedex/internal/domain"
	"github.com/mmcdole/pokedex/internal/search"
)

// Command factories for async operations

// LoadSpeciesCmd loads the species index, from the store unless force is set
func LoadSpeciesCmd(svc *search.Service, force bool) tea.Cmd {
	return func() tea.Msg {
		if !force {
			if refs, ok := svc.CachedIndex(); ok {
				return SpeciesLoadedMsg{Refs: refs, Cached: true}
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		refs, err := svc.LoadIndex(ctx, force)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading species index"}
		}
		return SpeciesLoadedMsg{Refs: refs}
	}
}

// PrefetchRosterCmd warms the detail cache for a trainer's roster with at
// most limit requests in flight
func PrefetchRosterCmd(r *detail.Resolver, trainer domain.Trainer, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		err := r.Prefetch(ctx, trainer.Roster, limit)
		return RosterPrefetchedMsg{Trainer: trainer.Name, Err: err}
	}
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
