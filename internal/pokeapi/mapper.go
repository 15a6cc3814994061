package pokeapi

import (
	"errors"
	"sort"
	"strings"

	"github.com/mmcdole/pokedex/internal/domain"
)

var errMissingName = errors.New("response has no name")

// MapPokemon converts a PokeAPI response to a domain record
func MapPokemon(r PokemonResponse) (*domain.Pokemon, error) {
	if r.Name == "" {
		return nil, errMissingName
	}

	p := &domain.Pokemon{
		ID:             r.ID,
		Name:           r.Name,
		BaseExperience: r.BaseExperience,
		Height:         r.Height,
		Weight:         r.Weight,
		Sprites: domain.Sprites{
			Front:   r.Sprites.FrontDefault,
			Artwork: r.Sprites.Other.OfficialArtwork.FrontDefault,
		},
	}

	slots := make([]TypeSlot, len(r.Types))
	copy(slots, r.Types)
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })
	for _, t := range slots {
		p.Types = append(p.Types, t.Type.Name)
	}

	for _, a := range r.Abilities {
		p.Abilities = append(p.Abilities, a.Ability.Name)
	}
	for _, s := range r.Stats {
		p.Stats = append(p.Stats, domain.Stat{Name: s.Stat.Name, Base: s.BaseStat})
	}
	for _, m := range r.Moves {
		p.Moves = append(p.Moves, m.Move.Name)
	}

	return p, nil
}

// MapSpecies converts list results to species refs, skipping unnamed entries
func MapSpecies(results []NamedResource) []domain.SpeciesRef {
	refs := make([]domain.SpeciesRef, 0, len(results))
	for _, r := range results {
		if r.Name == "" {
			continue
		}
		refs = append(refs, domain.SpeciesRef{
			ID:   IDFromURL(r.URL),
			Name: r.Name,
			URL:  r.URL,
		})
	}
	return refs
}

// IDFromURL returns the last non-empty path segment of a resource URL
// ("https://pokeapi.co/api/v2/pokemon/25/" → "25"), or "unknown".
func IDFromURL(u string) string {
	parts := strings.Split(u, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return "unknown"
}
