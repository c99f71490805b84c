package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"

	msdomain "github.com/marketsense/marketsense/internal/domain"
	"github.com/tmc/langchaingo/llms"
)

// Chat generation parameters, shared by every domain session.
const (
	chatTemperature = 0.7
	chatTopP        = 0.8
	chatTopK        = 40
)

// session is one multi-turn chat bound to a research domain. Its history
// starts with the analyst persona preamble and a canned acknowledgement;
// user/model turns are appended only after a successful provider call, so a
// failed turn leaves the history untouched.
type session struct {
	domain string

	mu      sync.Mutex
	history []llms.MessageContent
}

func newSession(domain string) *session {
	return &session{
		domain: domain,
		history: []llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeHuman, sessionPreamble+personaFor(domain)),
			llms.TextParts(llms.ChatMessageTypeAI, sessionAck),
		},
	}
}

// messages returns a copy of the session history.
func (s *session) messages() []llms.MessageContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]llms.MessageContent(nil), s.history...)
}

func (s *session) chatOptions() []llms.CallOption {
	return []llms.CallOption{
		llms.WithTemperature(chatTemperature),
		llms.WithTopP(chatTopP),
		llms.WithTopK(chatTopK),
	}
}

// send submits prompt as the next user turn and returns the model reply.
func (s *session) send(ctx context.Context, model llms.Model, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := append(append([]llms.MessageContent(nil), s.history...),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	resp, err := model.GenerateContent(ctx, msgs, s.chatOptions()...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", msdomain.ErrTransport, err)
	}

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return "", msdomain.ErrEmptyResponse
	}

	s.append(prompt, text)
	return text, nil
}

// stream submits prompt as the next user turn, invoking emit for every
// non-blank chunk in arrival order. An emit error aborts the provider call,
// so a gone consumer cannot wedge the session mutex. Returns the full
// accumulated text.
func (s *session) stream(ctx context.Context, model llms.Model, prompt string, emit func(string) error) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := append(append([]llms.MessageContent(nil), s.history...),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt))

	var full strings.Builder
	opts := append(s.chatOptions(), llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
		text := string(chunk)
		if strings.TrimSpace(text) == "" {
			return nil
		}
		if err := emit(text); err != nil {
			return err
		}
		full.WriteString(text)
		return nil
	}))

	if _, err := model.GenerateContent(ctx, msgs, opts...); err != nil {
		return "", fmt.Errorf("%w: %v", msdomain.ErrTransport, err)
	}

	if strings.TrimSpace(full.String()) == "" {
		return "", msdomain.ErrEmptyResponse
	}

	s.append(prompt, full.String())
	return full.String(), nil
}

// append records a completed turn. Caller must hold s.mu.
func (s *session) append(prompt, reply string) {
	s.history = append(s.history,
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		llms.TextParts(llms.ChatMessageTypeAI, reply),
	)
}

func responseText(resp *llms.ContentResponse) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Content
}
