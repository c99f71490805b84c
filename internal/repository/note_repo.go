package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/marketsense/marketsense/internal/domain"
)

// NoteRepository persists the notes collection, most-recent-first, as one
// JSON array under KeyNotes.
type NoteRepository struct {
	kv KV
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(kv KV) *NoteRepository {
	return &NoteRepository{kv: kv}
}

// List returns all notes, newest first. A missing key or a corrupt value
// reads as an empty collection; store errors propagate.
func (r *NoteRepository) List(ctx context.Context) ([]domain.Note, error) {
	raw, err := r.kv.Get(ctx, KeyNotes)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []domain.Note{}, nil
	}

	var notes []domain.Note
	if err := json.Unmarshal(raw, &notes); err != nil {
		return []domain.Note{}, nil
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return notes, nil
}

// Save prepends a new note to the collection
func (r *NoteRepository) Save(ctx context.Context, title, content, noteDomain string, references []string) (*domain.Note, error) {
	notes, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	note := domain.Note{
		ID:         uuid.New().String(),
		Title:      title,
		Content:    content,
		Domain:     noteDomain,
		CreatedAt:  time.Now().UTC(),
		References: references,
	}
	notes = append([]domain.Note{note}, notes...)

	data, err := json.Marshal(notes)
	if err != nil {
		return nil, err
	}
	if err := r.kv.Set(ctx, KeyNotes, data); err != nil {
		return nil, err
	}
	return &note, nil
}

// Get retrieves a note by ID, or nil when absent
func (r *NoteRepository) Get(ctx context.Context, id string) (*domain.Note, error) {
	notes, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range notes {
		if notes[i].ID == id {
			return &notes[i], nil
		}
	}
	return nil, nil
}

// Delete removes a note by ID
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	notes, err := r.List(ctx)
	if err != nil {
		return err
	}

	filtered := make([]domain.Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			filtered = append(filtered, n)
		}
	}

	data, err := json.Marshal(filtered)
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, KeyNotes, data)
}
