package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/marketsense/marketsense/internal/domain"
)

// ResearchRepository persists the saved-research collection under
// KeySavedResearch, same shape as notes minus references.
type ResearchRepository struct {
	kv KV
}

// NewResearchRepository creates a new saved-research repository
func NewResearchRepository(kv KV) *ResearchRepository {
	return &ResearchRepository{kv: kv}
}

// List returns all saved research, newest first
func (r *ResearchRepository) List(ctx context.Context) ([]domain.SavedResearch, error) {
	raw, err := r.kv.Get(ctx, KeySavedResearch)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []domain.SavedResearch{}, nil
	}

	var items []domain.SavedResearch
	if err := json.Unmarshal(raw, &items); err != nil {
		return []domain.SavedResearch{}, nil
	}
	if items == nil {
		items = []domain.SavedResearch{}
	}
	return items, nil
}

// Save prepends a new saved-research item to the collection
func (r *ResearchRepository) Save(ctx context.Context, title, content, researchDomain string) (*domain.SavedResearch, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	item := domain.SavedResearch{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		Domain:    researchDomain,
		CreatedAt: time.Now().UTC(),
	}
	items = append([]domain.SavedResearch{item}, items...)

	data, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	if err := r.kv.Set(ctx, KeySavedResearch, data); err != nil {
		return nil, err
	}
	return &item, nil
}

// Get retrieves a saved-research item by ID, or nil when absent
func (r *ResearchRepository) Get(ctx context.Context, id string) (*domain.SavedResearch, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// Delete removes a saved-research item by ID
func (r *ResearchRepository) Delete(ctx context.Context, id string) error {
	items, err := r.List(ctx)
	if err != nil {
		return err
	}

	filtered := make([]domain.SavedResearch, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			filtered = append(filtered, it)
		}
	}

	data, err := json.Marshal(filtered)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, KeySavedResearch, data)
}
