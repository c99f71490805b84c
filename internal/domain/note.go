package domain

import "time"

// Note is a user-saved research note with extracted references
type Note struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Domain     string    `json:"domain"`
	CreatedAt  time.Time `json:"created_at"`
	References []string  `json:"references,omitempty"`
}

// SavedResearch is a user-saved raw research artifact, no references
type SavedResearch struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Domain    string    `json:"domain"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchHistoryItem is one recorded research query
type SearchHistoryItem struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateNoteRequest is the request to synthesize and save a note
type CreateNoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Domain  string `json:"domain,omitempty"`
	Content string `json:"content" binding:"required"`
}

// SaveResearchRequest is the request to save raw research
type SaveResearchRequest struct {
	Title   string `json:"title" binding:"required"`
	Domain  string `json:"domain,omitempty"`
	Content string `json:"content" binding:"required"`
}
