// Package search loads the species index and filters it by name.
package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/pokedex/internal/domain"
)

const (
	// DefaultLimit is how many species the index holds
	DefaultLimit = 500

	maxSuggestions = 5
)

// Result is the outcome of filtering the index
type Result struct {
	Query       string
	Matches     []domain.SpeciesRef
	Suggestions []domain.SpeciesRef // only set when Matches is empty
}

// Service loads the species index, caching it in the store
type Service struct {
	client domain.PokemonClient
	store  domain.Store
	limit  int
	logger *slog.Logger
}

// NewService creates a new search service. store may be nil.
func NewService(client domain.PokemonClient, store domain.Store, limit int, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Service{
		client: client,
		store:  store,
		limit:  limit,
		logger: logger,
	}
}

// CachedIndex returns the stored index without touching the network
func (s *Service) CachedIndex() ([]domain.SpeciesRef, bool) {
	if s.store == nil {
		return nil, false
	}
	return s.store.GetSpecies(s.limit)
}

// LoadIndex returns the species index, from the store when cached and from
// the API otherwise. force skips the cache.
func (s *Service) LoadIndex(ctx context.Context, force bool) ([]domain.SpeciesRef, error) {
	if !force {
		if refs, ok := s.CachedIndex(); ok {
			s.logger.Debug("species index cache hit", "count", len(refs))
			return refs, nil
		}
	} else if s.store != nil {
		s.store.InvalidateSpecies()
	}

	refs, err := s.client.ListSpecies(ctx, s.limit)
	if err != nil {
		s.logger.Error("failed to fetch species index", "error", err)
		return nil, err
	}
	if s.store != nil {
		if err := s.store.SaveSpecies(s.limit, refs); err != nil {
			s.logger.Error("failed to save species index", "error", err)
		}
	}
	s.logger.Info("loaded species index", "count", len(refs))
	return refs, nil
}

// Filter keeps the species whose name contains query, case-insensitively,
// preserving index order. An empty query keeps everything. When nothing
// matches, near misses are offered as suggestions.
func Filter(query string, refs []domain.SpeciesRef) Result {
	q := strings.ToLower(strings.TrimSpace(query))
	res := Result{Query: query}
	if q == "" {
		res.Matches = refs
		return res
	}

	for _, ref := range refs {
		if strings.Contains(strings.ToLower(ref.Name), q) {
			res.Matches = append(res.Matches, ref)
		}
	}
	if len(res.Matches) == 0 {
		res.Suggestions = Suggest(q, refs, maxSuggestions)
	}
	return res
}

// Lookup finds a species by dex number or exact name
func Lookup(refs []domain.SpeciesRef, id string) (domain.SpeciesRef, bool) {
	id = domain.NormalizeID(id)
	for _, ref := range refs {
		if ref.ID == id || ref.Name == id {
			return ref, true
		}
	}
	return domain.SpeciesRef{}, false
}
