package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketsense/marketsense/internal/domain"
)

// historyLimit caps the search history at the most recent entries.
const historyLimit = 50

// HistoryRepository persists recent search queries under KeySearchHistory.
// Queries are de-duplicated case-insensitively, most recent first.
type HistoryRepository struct {
	kv KV
}

// NewHistoryRepository creates a new search-history repository
func NewHistoryRepository(kv KV) *HistoryRepository {
	return &HistoryRepository{kv: kv}
}

// List returns the search history, newest first
func (r *HistoryRepository) List(ctx context.Context) ([]domain.SearchHistoryItem, error) {
	raw, err := r.kv.Get(ctx, KeySearchHistory)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []domain.SearchHistoryItem{}, nil
	}

	var items []domain.SearchHistoryItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return []domain.SearchHistoryItem{}, nil
	}
	if items == nil {
		items = []domain.SearchHistoryItem{}
	}
	return items, nil
}

// Add records a query at the front of the history. An existing entry
// matching case-insensitively is removed first, so repeats move to the
// front as a fresh item. The history is capped at historyLimit entries.
func (r *HistoryRepository) Add(ctx context.Context, query string) (*domain.SearchHistoryItem, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(query)
	filtered := make([]domain.SearchHistoryItem, 0, len(items))
	for _, it := range items {
		if strings.ToLower(it.Query) != lower {
			filtered = append(filtered, it)
		}
	}

	item := domain.SearchHistoryItem{
		ID:        uuid.New().String(),
		Query:     query,
		Timestamp: time.Now().UTC(),
	}
	filtered = append([]domain.SearchHistoryItem{item}, filtered...)
	if len(filtered) > historyLimit {
		filtered = filtered[:historyLimit]
	}

	data, err := json.Marshal(filtered)
	if err != nil {
		return nil, err
	}
	if err := r.kv.Set(ctx, KeySearchHistory, data); err != nil {
		return nil, err
	}
	return &item, nil
}

// Clear resets the search history to empty
func (r *HistoryRepository) Clear(ctx context.Context) error {
	return r.kv.Set(ctx, KeySearchHistory, []byte("[]"))
}
