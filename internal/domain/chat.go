package domain

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single turn in a research conversation
type Message struct {
	Role      string   `json:"role"` // user, assistant
	Content   string   `json:"content"`
	Sources   []Source `json:"sources,omitempty"`
	Charts    []Chart  `json:"charts,omitempty"`
	Streaming bool     `json:"streaming,omitempty"`
}

// Source represents a citation source attached to a message
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Chart describes a chart the presentation layer may render for a message
type Chart struct {
	Type  string `json:"type"`
	Title string `json:"title"`
}

// StreamChunk types
const (
	ChunkContent = "content"
	ChunkDone    = "done"
	ChunkError   = "error"
)

// StreamChunk represents one unit in a research stream (and SSE event).
// A stream carries zero or more content chunks followed by exactly one
// done chunk whose Content is the full accumulated text.
type StreamChunk struct {
	Type    string `json:"type"` // content, done, error
	Content string `json:"content,omitempty"`
}

// ResearchRequest is the request to submit a research prompt
type ResearchRequest struct {
	Message string `json:"message"`
}

// CreateConversationRequest is the request to start a conversation
type CreateConversationRequest struct {
	Domain string `json:"domain,omitempty"`
}

// ResetChatRequest is the request to reset a domain's chat session
type ResetChatRequest struct {
	Domain string `json:"domain,omitempty"`
}
