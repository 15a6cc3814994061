package tui

import "github.com/mmcdole/pokedex/internal/domain"

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// DispatchMsg carries a detail cache completion onto the update loop
type DispatchMsg struct {
	Fn func()
}

// SpeciesLoadedMsg signals that the species index is available
type SpeciesLoadedMsg struct {
	Refs   []domain.SpeciesRef
	Cached bool
}

// RosterPrefetchedMsg signals that a trainer roster has been warmed
type RosterPrefetchedMsg struct {
	Trainer string
	Err     error
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}
