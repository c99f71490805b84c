package gateway

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	msdomain "github.com/marketsense/marketsense/internal/domain"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// One-shot (non-chat) generation parameters.
const (
	taskTemperature = 0.3
	taskTopP        = 0.8
	taskTopK        = 40
)

// Client wraps the generative-text provider behind the research operations.
// It owns one lazily-created chat session per research domain; sessions
// persist for the lifetime of the client until reset.
type Client struct {
	model  llms.Model
	logger *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// NewClient creates a gateway client over the given model.
func NewClient(model llms.Model, logger *zap.Logger) *Client {
	return &Client{
		model:    model,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// session returns the chat session for a domain, creating and seeding it on
// first use.
func (c *Client) session(domain string) *session {
	if domain == "" {
		domain = "default"
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[domain]
	if !ok {
		s = newSession(domain)
		c.sessions[domain] = s
	}
	return s
}

// ResetChat discards the cached session for a domain; the next call
// recreates it with a fresh seeded history. Other domains are unaffected.
func (c *Client) ResetChat(domain string) {
	if domain == "" {
		domain = "default"
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, domain)
}

// ChatMessages returns a copy of the chat history for a domain, creating the
// session if needed.
func (c *Client) ChatMessages(domain string) []llms.MessageContent {
	return c.session(domain).messages()
}

// Generate performs a single research turn on the domain's chat session.
// It never fails: a blank prompt, a blank response or a provider error all
// resolve to the fixed apology string.
func (c *Client) Generate(ctx context.Context, prompt, domain string) string {
	text, err := c.complete(ctx, prompt, domain)
	if err != nil {
		c.logger.Warn("research generation failed",
			zap.String("domain", domain),
			zap.Error(err),
		)
		return Apology
	}
	return text
}

func (c *Client) complete(ctx context.Context, prompt, domain string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", msdomain.ErrEmptyInput
	}
	return c.session(domain).send(ctx, c.model, prompt)
}

// Stream performs a streaming research turn on the domain's chat session.
// The returned channel carries content chunks in arrival order (blank chunks
// skipped) followed by exactly one done chunk with the full accumulated text,
// always last. On any failure (blank prompt, zero non-empty chunks, provider
// error mid-stream) the channel carries one content chunk with the apology
// string and then the done chunk with that same string. Canceling ctx stops
// delivery and closes the channel; the session stays usable.
func (c *Client) Stream(ctx context.Context, prompt, domain string) <-chan msdomain.StreamChunk {
	ch := make(chan msdomain.StreamChunk, 16)

	go func() {
		defer close(ch)

		// Every delivery races ctx so an abandoned consumer never blocks
		// the producer (and with it the session mutex) forever.
		send := func(chunk msdomain.StreamChunk) bool {
			select {
			case ch <- chunk:
				return true
			case <-ctx.Done():
				return false
			}
		}

		fail := func(err error) {
			c.logger.Warn("research stream failed",
				zap.String("domain", domain),
				zap.Error(err),
			)
			if send(msdomain.StreamChunk{Type: msdomain.ChunkContent, Content: Apology}) {
				send(msdomain.StreamChunk{Type: msdomain.ChunkDone, Content: Apology})
			}
		}

		if strings.TrimSpace(prompt) == "" {
			fail(msdomain.ErrEmptyInput)
			return
		}

		full, err := c.session(domain).stream(ctx, c.model, prompt, func(text string) error {
			if !send(msdomain.StreamChunk{Type: msdomain.ChunkContent, Content: text}) {
				return ctx.Err()
			}
			return nil
		})
		if err != nil {
			fail(err)
			return
		}

		send(msdomain.StreamChunk{Type: msdomain.ChunkDone, Content: full})
	}()

	return ch
}

// GenerateNote asks for a structured research note on the domain's chat
// session. Unlike Generate it reports failure, so the note synthesizer can
// run its fallback chain.
func (c *Client) GenerateNote(ctx context.Context, title, domain, content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", msdomain.ErrEmptyInput
	}
	return c.session(domain).send(ctx, c.model,
		noteSystemPrompt+"\n\n"+notePrompt(title, domain, content))
}

// ExtractInsights performs a one-shot summarization of research text.
func (c *Client) ExtractInsights(ctx context.Context, research string) (string, error) {
	if strings.TrimSpace(research) == "" {
		return "", msdomain.ErrEmptyInput
	}
	return c.oneShot(ctx, insightsSystemPrompt, insightsPrompt(research))
}

// ExtractReferences asks the provider for a JSON array of {title, url}
// references found in research. It never fails: code fences around the array
// are stripped before parsing; on parse failure each non-blank line of the
// raw response becomes one plain-text reference; on any other failure the
// result is empty.
func (c *Client) ExtractReferences(ctx context.Context, research string) []msdomain.Reference {
	if strings.TrimSpace(research) == "" {
		return []msdomain.Reference{}
	}

	text, err := c.oneShot(ctx, referencesSystemPrompt, referencesPrompt(research))
	if err != nil {
		c.logger.Warn("reference extraction failed", zap.Error(err))
		return []msdomain.Reference{}
	}

	var refs []msdomain.Reference
	if err := json.Unmarshal([]byte(stripCodeFences(text)), &refs); err != nil {
		refs = make([]msdomain.Reference, 0)
		for _, line := range nonBlankLines(text) {
			refs = append(refs, msdomain.Reference{Text: line})
		}
	}
	return refs
}

// oneShot runs a single system+user generation outside any chat session,
// with the lower task temperature.
func (c *Client) oneShot(ctx context.Context, system, prompt string) (string, error) {
	msgs := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	resp, err := c.model.GenerateContent(ctx, msgs,
		llms.WithTemperature(taskTemperature),
		llms.WithTopP(taskTopP),
		llms.WithTopK(taskTopK),
	)
	if err != nil {
		return "", err
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", msdomain.ErrEmptyResponse
	}
	return text, nil
}
