package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	msdomain "github.com/marketsense/marketsense/internal/domain"
)

// streamFailureMessage replaces the placeholder when a stream ends
// without a done chunk.
const streamFailureMessage = "Failed to generate research. Please try again."

const historyRecordTimeout = 5 * time.Second

// Gateway is the slice of the LLM gateway the orchestrator needs.
type Gateway interface {
	Stream(ctx context.Context, prompt, domain string) <-chan msdomain.StreamChunk
	ResetChat(domain string)
}

// HistoryRecorder records submitted queries into the search history.
type HistoryRecorder interface {
	Add(ctx context.Context, query string) (*msdomain.SearchHistoryItem, error)
}

type conversationState int

const (
	stateIdle conversationState = iota
	stateAwaiting
)

// Conversation holds the message transcript for one research session.
// All exported accessors copy, so callers never see internal slices.
type Conversation struct {
	ID     string
	Domain string

	mu        sync.Mutex
	state     conversationState
	messages  []msdomain.Message
	streaming strings.Builder
	closed    bool
}

// Messages returns a snapshot of the transcript.
func (c *Conversation) Messages() []msdomain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]msdomain.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// StreamingText returns the partial assistant text accumulated so far,
// or "" when no response is in flight.
func (c *Conversation) StreamingText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.streaming.String()
}

// Busy reports whether a response is currently being generated.
func (c *Conversation) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateAwaiting
}

func (c *Conversation) begin(input string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return msdomain.ErrNotFound
	}
	if c.state == stateAwaiting {
		return msdomain.ErrConversationBusy
	}
	// Blank input is allowed on re-submission over an existing transcript.
	if strings.TrimSpace(input) == "" && len(c.messages) == 0 {
		return msdomain.ErrEmptyInput
	}
	c.state = stateAwaiting
	c.messages = append(c.messages,
		msdomain.Message{Role: msdomain.RoleUser, Content: input},
		msdomain.Message{Role: msdomain.RoleAssistant, Streaming: true},
	)
	c.streaming.Reset()
	return nil
}

func (c *Conversation) appendStreaming(chunk string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != stateAwaiting {
		return
	}
	c.streaming.WriteString(chunk)
}

// finalize replaces the streaming placeholder with the full response
// and returns the conversation to idle.
func (c *Conversation) finalize(full string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != stateAwaiting {
		return
	}
	last := len(c.messages) - 1
	c.messages[last] = msdomain.Message{Role: msdomain.RoleAssistant, Content: full}
	c.streaming.Reset()
	c.state = stateIdle
}

// rollback removes the streaming placeholder added by begin. The user
// message stays in the transcript.
func (c *Conversation) rollback() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != stateAwaiting {
		return
	}
	c.messages = c.messages[:len(c.messages)-1]
	c.streaming.Reset()
	c.state = stateIdle
}

func (c *Conversation) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.messages = nil
	c.streaming.Reset()
	c.state = stateIdle
}

// ResearchService orchestrates research conversations over the LLM
// gateway and records queries into the search history.
type ResearchService struct {
	gateway Gateway
	history HistoryRecorder
	logger  *zap.Logger

	mu            sync.RWMutex
	conversations map[string]*Conversation
}

// NewResearchService creates a new research orchestrator
func NewResearchService(gateway Gateway, history HistoryRecorder, logger *zap.Logger) *ResearchService {
	return &ResearchService{
		gateway:       gateway,
		history:       history,
		logger:        logger,
		conversations: make(map[string]*Conversation),
	}
}

// StartConversation opens a new conversation for the given domain.
func (s *ResearchService) StartConversation(domain string) *Conversation {
	if domain == "" {
		domain = "default"
	}
	conv := &Conversation{
		ID:       uuid.New().String(),
		Domain:   domain,
		messages: []msdomain.Message{},
	}
	s.mu.Lock()
	s.conversations[conv.ID] = conv
	s.mu.Unlock()
	return conv
}

// Conversation looks up a conversation by ID.
func (s *ResearchService) Conversation(id string) (*Conversation, error) {
	s.mu.RLock()
	conv, ok := s.conversations[id]
	s.mu.RUnlock()
	if !ok {
		return nil, msdomain.ErrNotFound
	}
	return conv, nil
}

// CloseConversation disposes of a conversation. Closing an unknown ID
// is a no-op.
func (s *ResearchService) CloseConversation(id string) {
	s.mu.Lock()
	conv, ok := s.conversations[id]
	if ok {
		delete(s.conversations, id)
	}
	s.mu.Unlock()
	if ok {
		conv.close()
	}
}

// ResetDomain clears the gateway chat session for a domain so the next
// conversation starts from a fresh seeded session.
func (s *ResearchService) ResetDomain(domain string) {
	if domain == "" {
		domain = "default"
	}
	s.gateway.ResetChat(domain)
}

// Submit sends a research query on a conversation and returns the
// stream of response chunks. The transcript gains the user message and
// a streaming placeholder immediately. If the stream ends without a
// done chunk the placeholder is rolled back and a failure chunk is
// emitted. The query is recorded to the search history best-effort.
func (s *ResearchService) Submit(ctx context.Context, id, input string) (<-chan msdomain.StreamChunk, error) {
	conv, err := s.Conversation(id)
	if err != nil {
		return nil, err
	}
	if err := conv.begin(input); err != nil {
		return nil, err
	}

	go s.recordHistory(input)

	src := s.gateway.Stream(ctx, input, conv.Domain)
	out := make(chan msdomain.StreamChunk, 16)
	go func() {
		defer close(out)
		finished := false
		canceled := false
		// Keep draining src even once the consumer is gone so the
		// conversation state still settles.
		for chunk := range src {
			switch chunk.Type {
			case msdomain.ChunkContent:
				conv.appendStreaming(chunk.Content)
			case msdomain.ChunkDone:
				conv.finalize(chunk.Content)
				finished = true
			}
			if canceled {
				continue
			}
			select {
			case out <- chunk:
			case <-ctx.Done():
				canceled = true
			}
		}
		if !finished {
			conv.rollback()
			if !canceled {
				select {
				case out <- msdomain.StreamChunk{Type: msdomain.ChunkError, Content: streamFailureMessage}:
				case <-ctx.Done():
				}
			}
		}
	}()
	return out, nil
}

// recordHistory is fire-and-forget. A failed write never affects the
// research flow.
func (s *ResearchService) recordHistory(query string) {
	ctx, cancel := context.WithTimeout(context.Background(), historyRecordTimeout)
	defer cancel()
	if _, err := s.history.Add(ctx, query); err != nil {
		s.logger.Warn("failed to record search history", zap.Error(err))
	}
}
