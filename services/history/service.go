// Package history keeps the user's recent search queries and their
// pinned favorite functions.
package history

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dlformula/assistant/models"
	"github.com/dlformula/assistant/repositories"
	"github.com/dlformula/assistant/services"
	"github.com/dlformula/assistant/services/knowledge"
)

// HistoryLimit caps the number of retained search queries.
const HistoryLimit = 50

// Service manages search history and favorites on the key-value store
type Service struct {
	store  repositories.KeyValueStore
	logger *zap.Logger

	now func() time.Time
}

// NewService creates a new history service
func NewService(store repositories.KeyValueStore, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// RecordSearch prepends a query to the history. A repeat of an earlier
// query moves it to the front instead of duplicating it.
func (s *Service) RecordSearch(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return services.ErrEmptyQuery
	}

	entries, err := s.loadHistory(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.HistoryEntry, 0, len(entries)+1)
	kept = append(kept, models.HistoryEntry{Query: query, Timestamp: s.now()})
	for _, e := range entries {
		if strings.EqualFold(e.Query, query) {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) > HistoryLimit {
		kept = kept[:HistoryLimit]
	}

	if err := repositories.SetJSON(ctx, s.store, repositories.KeySearchHistory, kept); err != nil {
		return services.WrapStorage("failed to save search history", err)
	}
	return nil
}

// History returns the recorded queries, most recent first
func (s *Service) History(ctx context.Context) ([]models.HistoryEntry, error) {
	return s.loadHistory(ctx)
}

// ClearHistory removes all recorded queries
func (s *Service) ClearHistory(ctx context.Context) error {
	if err := repositories.SetJSON(ctx, s.store, repositories.KeySearchHistory, []models.HistoryEntry{}); err != nil {
		return services.WrapStorage("failed to clear search history", err)
	}

	s.logger.Info("search history cleared")
	return nil
}

// AddFavorite pins a catalog function by name
func (s *Service) AddFavorite(ctx context.Context, name string) (*models.Favorite, error) {
	name = strings.TrimSpace(name)

	// Catalog names are uppercase
	entry, ok := knowledge.Lookup(strings.ToUpper(name))
	if !ok {
		return nil, services.ErrFormulaNotFound
	}

	favorites, err := s.loadFavorites(ctx)
	if err != nil {
		return nil, err
	}

	for _, f := range favorites {
		if strings.EqualFold(f.Name, entry.Name) {
			return nil, services.ErrDuplicateFavorite
		}
	}

	favorite := models.Favorite{
		Name:    entry.Name,
		Syntax:  entry.Syntax,
		AddedAt: s.now(),
	}
	favorites = append(favorites, favorite)

	if err := repositories.SetJSON(ctx, s.store, repositories.KeyFavorites, favorites); err != nil {
		return nil, services.WrapStorage("failed to save favorites", err)
	}

	s.logger.Info("favorite added", zap.String("name", favorite.Name))
	return &favorite, nil
}

// RemoveFavorite unpins a function by name
func (s *Service) RemoveFavorite(ctx context.Context, name string) error {
	favorites, err := s.loadFavorites(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.Favorite, 0, len(favorites))
	for _, f := range favorites {
		if strings.EqualFold(f.Name, name) {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == len(favorites) {
		return services.ErrFavoriteNotFound
	}

	if err := repositories.SetJSON(ctx, s.store, repositories.KeyFavorites, kept); err != nil {
		return services.WrapStorage("failed to save favorites", err)
	}

	s.logger.Info("favorite removed", zap.String("name", name))
	return nil
}

// Favorites returns the pinned functions in insertion order
func (s *Service) Favorites(ctx context.Context) ([]models.Favorite, error) {
	return s.loadFavorites(ctx)
}

func (s *Service) loadHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	if _, err := repositories.GetJSON(ctx, s.store, repositories.KeySearchHistory, &entries); err != nil {
		return nil, services.WrapStorage("failed to load search history", err)
	}
	return entries, nil
}

func (s *Service) loadFavorites(ctx context.Context) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if _, err := repositories.GetJSON(ctx, s.store, repositories.KeyFavorites, &favorites); err != nil {
		return nil, services.WrapStorage("failed to load favorites", err)
	}
	return favorites, nil
}
