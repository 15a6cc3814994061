package store

import (
	"log/slog"

	"github.com/mmcdole/pokedex/internal/domain"
)

// RestoreFavorites returns the persisted favorites, or nil when none are stored
func RestoreFavorites(s domain.Store) []string {
	ids, ok := s.GetFavorites()
	if !ok {
		return nil
	}
	return ids
}

// SyncFavorites writes the favorites set to s after every change until the
// returned stop function is called. Write failures are logged, never surfaced.
func SyncFavorites(s domain.Store, ids domain.IDSource, logger *slog.Logger) (stop func()) {
	if logger == nil {
		logger = slog.Default()
	}
	return ids.Subscribe(func(snapshot []string) {
		if err := s.SaveFavorites(snapshot); err != nil {
			logger.Error("failed to save favorites", "error", err, "count", len(snapshot))
			return
		}
		logger.Debug("saved favorites", "count", len(snapshot))
	})
}
