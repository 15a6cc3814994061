package domain

// Store handles the local durable cache (BoltDB + memory).
// Nothing in the favorites core depends on it; the application attaches it
// as a subscriber when persistence is enabled.
type Store interface {
	// === Favorites ===
	GetFavorites() ([]string, bool)
	SaveFavorites(ids []string) error

	// === Species index ===
	GetSpecies(limit int) ([]SpeciesRef, bool)
	SaveSpecies(limit int, refs []SpeciesRef) error

	// === Invalidation ===
	InvalidateSpecies()
	InvalidateAll()

	Close() error
}
