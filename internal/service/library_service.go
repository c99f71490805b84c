package service

import (
	"context"

	"go.uber.org/zap"

	msdomain "github.com/marketsense/marketsense/internal/domain"
	"github.com/marketsense/marketsense/internal/repository"
)

// maxPromptContentLength bounds the raw content sent to note generation.
const maxPromptContentLength = 2000

// maxFallbackContentLength bounds note content when the LLM is
// unavailable and the raw research text is stored instead.
const maxFallbackContentLength = 1000

// NoteGenerator is the slice of the LLM gateway the library needs.
type NoteGenerator interface {
	GenerateNote(ctx context.Context, title, domain, content string) (string, error)
	ExtractInsights(ctx context.Context, content string) (string, error)
	ExtractReferences(ctx context.Context, content string) []msdomain.Reference
}

// LibraryService manages the user's notes, saved research and search
// history collections.
type LibraryService struct {
	notes     *repository.NoteRepository
	research  *repository.ResearchRepository
	history   *repository.HistoryRepository
	generator NoteGenerator
	logger    *zap.Logger
}

// NewLibraryService creates a new library service
func NewLibraryService(
	notes *repository.NoteRepository,
	research *repository.ResearchRepository,
	history *repository.HistoryRepository,
	generator NoteGenerator,
	logger *zap.Logger,
) *LibraryService {
	return &LibraryService{
		notes:     notes,
		research:  research,
		history:   history,
		generator: generator,
		logger:    logger,
	}
}

// SaveNote synthesizes a polished note from raw research content and
// stores it. When the LLM cannot produce a note it falls back to key
// insights, and failing that to the truncated raw content, so saving
// never fails for LLM reasons.
func (s *LibraryService) SaveNote(ctx context.Context, title, content, noteDomain string) (*msdomain.Note, error) {
	body, refs := s.synthesize(ctx, title, content, noteDomain)
	return s.notes.Save(ctx, title, body, noteDomain, refs)
}

func (s *LibraryService) synthesize(ctx context.Context, title, content, noteDomain string) (string, []string) {
	body, err := s.generator.GenerateNote(ctx, title, noteDomain, head(content, maxPromptContentLength))
	if err == nil && body != "" {
		// References come from the generated note, not the raw content.
		refs := s.generator.ExtractReferences(ctx, body)
		display := make([]string, 0, len(refs))
		for _, ref := range refs {
			display = append(display, ref.Display())
		}
		return body, display
	}
	if err != nil {
		s.logger.Warn("note generation failed, falling back to insights", zap.Error(err))
	}

	insights, err := s.generator.ExtractInsights(ctx, content)
	if err == nil && insights != "" {
		return insights, []string{}
	}
	if err != nil {
		s.logger.Warn("insight extraction failed, falling back to raw content", zap.Error(err))
	}

	return truncate(content, maxFallbackContentLength), []string{}
}

// truncate limits s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// head limits s to max runes with no marker.
func head(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// Notes returns all notes, newest first
func (s *LibraryService) Notes(ctx context.Context) ([]msdomain.Note, error) {
	return s.notes.List(ctx)
}

// Note retrieves a single note by ID
func (s *LibraryService) Note(ctx context.Context, id string) (*msdomain.Note, error) {
	note, err := s.notes.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, msdomain.ErrNotFound
	}
	return note, nil
}

// DeleteNote removes a note by ID
func (s *LibraryService) DeleteNote(ctx context.Context, id string) error {
	return s.notes.Delete(ctx, id)
}

// SaveResearch stores a raw research result without synthesis
func (s *LibraryService) SaveResearch(ctx context.Context, title, content, researchDomain string) (*msdomain.SavedResearch, error) {
	return s.research.Save(ctx, title, content, researchDomain)
}

// ResearchList returns all saved research, newest first
func (s *LibraryService) ResearchList(ctx context.Context) ([]msdomain.SavedResearch, error) {
	return s.research.List(ctx)
}

// ResearchItem retrieves a saved research item by ID
func (s *LibraryService) ResearchItem(ctx context.Context, id string) (*msdomain.SavedResearch, error) {
	item, err := s.research.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, msdomain.ErrNotFound
	}
	return item, nil
}

// DeleteResearch removes a saved research item by ID
func (s *LibraryService) DeleteResearch(ctx context.Context, id string) error {
	return s.research.Delete(ctx, id)
}

// History returns the recent search queries, newest first
func (s *LibraryService) History(ctx context.Context) ([]msdomain.SearchHistoryItem, error) {
	return s.history.List(ctx)
}

// ClearHistory empties the search history
func (s *LibraryService) ClearHistory(ctx context.Context) error {
	return s.history.Clear(ctx)
}
