package domain

import "context"

// PokemonClient: network operations against the upstream API.
type PokemonClient interface {
	// GetPokemon fetches one detail record by dex number or name.
	// Failures are *NetworkError, *HTTPError or *DecodeError.
	GetPokemon(ctx context.Context, id string) (*Pokemon, error)

	// ListSpecies fetches the first limit entries of the species index.
	ListSpecies(ctx context.Context, limit int) ([]SpeciesRef, error)
}

// DetailSource is the read/trigger surface of the detail cache.
type DetailSource interface {
	Ensure(id string) bool
	Get(id string) FetchState
	Subscribe(fn func(id string, state FetchState)) (unsubscribe func())
}

// IDSource is the read surface of the favorites set.
type IDSource interface {
	Snapshot() []string
	Subscribe(fn func(ids []string)) (unsubscribe func())
}
