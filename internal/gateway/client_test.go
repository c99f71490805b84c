package gateway

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	msdomain "github.com/marketsense/marketsense/internal/domain"
)

// fakeModel scripts provider responses. When chunks are set and the caller
// passes a streaming func, the chunks are replayed through it.
type fakeModel struct {
	mu       sync.Mutex
	calls    [][]llms.MessageContent
	response string
	chunks   []string
	err      error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, messages)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	var opts llms.CallOptions
	for _, opt := range options {
		opt(&opts)
	}
	if opts.StreamingFunc != nil {
		for _, chunk := range f.chunks {
			if err := opts.StreamingFunc(ctx, []byte(chunk)); err != nil {
				return nil, err
			}
		}
	}

	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.response}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeModel) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeModel) lastCall() []llms.MessageContent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func messageText(t *testing.T, msg llms.MessageContent) string {
	t.Helper()
	require.NotEmpty(t, msg.Parts)
	text, ok := msg.Parts[0].(llms.TextContent)
	require.True(t, ok, "expected text part")
	return text.Text
}

func collect(ch <-chan msdomain.StreamChunk) []msdomain.StreamChunk {
	var out []msdomain.StreamChunk
	for chunk := range ch {
		out = append(out, chunk)
	}
	return out
}

func TestSessionSeeding(t *testing.T) {
	model := &fakeModel{response: "The technology sector is growing."}
	client := NewClient(model, zap.NewNop())

	msgs := client.ChatMessages("technology")
	require.Len(t, msgs, 2)
	require.Equal(t, llms.ChatMessageTypeHuman, msgs[0].Role)
	require.Contains(t, messageText(t, msgs[0]), sessionPreamble)
	require.Contains(t, messageText(t, msgs[0]), "technology market analyst")
	require.Equal(t, llms.ChatMessageTypeAI, msgs[1].Role)
	require.Equal(t, sessionAck, messageText(t, msgs[1]))

	client.Generate(context.Background(), "What about chips?", "technology")
	require.Len(t, client.ChatMessages("technology"), 4)

	// Reset recreates the session from scratch.
	client.ResetChat("technology")
	require.Len(t, client.ChatMessages("technology"), 2)
}

func TestSessionSeedingUnknownDomainUsesDefault(t *testing.T) {
	client := NewClient(&fakeModel{}, zap.NewNop())

	for _, domain := range []string{"", "default", "astrology"} {
		msgs := client.ChatMessages(domain)
		require.Len(t, msgs, 2)
		require.Contains(t, messageText(t, msgs[0]), "professional market research analyst")
	}
}

func TestGenerate(t *testing.T) {
	t.Run("returns provider text", func(t *testing.T) {
		model := &fakeModel{response: "Market is up."}
		client := NewClient(model, zap.NewNop())

		got := client.Generate(context.Background(), "How is the market?", "finance")
		require.Equal(t, "Market is up.", got)
	})

	t.Run("provider error resolves to apology", func(t *testing.T) {
		model := &fakeModel{err: errors.New("quota exceeded")}
		client := NewClient(model, zap.NewNop())

		got := client.Generate(context.Background(), "How is the market?", "finance")
		require.Equal(t, Apology, got)
	})

	t.Run("blank prompt resolves to apology without a provider call", func(t *testing.T) {
		model := &fakeModel{response: "unused"}
		client := NewClient(model, zap.NewNop())

		got := client.Generate(context.Background(), "   ", "finance")
		require.Equal(t, Apology, got)
		require.Zero(t, model.callCount())
	})

	t.Run("failed turn leaves history untouched", func(t *testing.T) {
		model := &fakeModel{err: errors.New("unavailable")}
		client := NewClient(model, zap.NewNop())

		client.Generate(context.Background(), "hi", "finance")
		require.Len(t, client.ChatMessages("finance"), 2)
	})
}

func TestStream(t *testing.T) {
	t.Run("content chunks then exactly one done chunk", func(t *testing.T) {
		model := &fakeModel{chunks: []string{"Mar", "ket", " is up"}}
		client := NewClient(model, zap.NewNop())

		chunks := collect(client.Stream(context.Background(), "How is the market?", "default"))
		require.Len(t, chunks, 4)
		require.Equal(t, msdomain.StreamChunk{Type: msdomain.ChunkContent, Content: "Mar"}, chunks[0])
		require.Equal(t, msdomain.StreamChunk{Type: msdomain.ChunkContent, Content: "ket"}, chunks[1])
		require.Equal(t, msdomain.StreamChunk{Type: msdomain.ChunkContent, Content: " is up"}, chunks[2])
		require.Equal(t, msdomain.StreamChunk{Type: msdomain.ChunkDone, Content: "Market is up"}, chunks[3])
	})

	t.Run("blank chunks are skipped", func(t *testing.T) {
		model := &fakeModel{chunks: []string{"", "Hello", "   "}}
		client := NewClient(model, zap.NewNop())

		chunks := collect(client.Stream(context.Background(), "hi", "default"))
		require.Len(t, chunks, 2)
		require.Equal(t, msdomain.StreamChunk{Type: msdomain.ChunkContent, Content: "Hello"}, chunks[0])
		require.Equal(t, msdomain.StreamChunk{Type: msdomain.ChunkDone, Content: "Hello"}, chunks[1])
	})

	t.Run("provider error yields apology content and done", func(t *testing.T) {
		model := &fakeModel{err: errors.New("unavailable")}
		client := NewClient(model, zap.NewNop())

		chunks := collect(client.Stream(context.Background(), "hi", "default"))
		require.Equal(t, []msdomain.StreamChunk{
			{Type: msdomain.ChunkContent, Content: Apology},
			{Type: msdomain.ChunkDone, Content: Apology},
		}, chunks)
	})

	t.Run("zero non-blank chunks yields apology", func(t *testing.T) {
		model := &fakeModel{chunks: []string{"", "  "}}
		client := NewClient(model, zap.NewNop())

		chunks := collect(client.Stream(context.Background(), "hi", "default"))
		require.Equal(t, []msdomain.StreamChunk{
			{Type: msdomain.ChunkContent, Content: Apology},
			{Type: msdomain.ChunkDone, Content: Apology},
		}, chunks)
	})

	t.Run("blank prompt yields apology without a provider call", func(t *testing.T) {
		model := &fakeModel{}
		client := NewClient(model, zap.NewNop())

		chunks := collect(client.Stream(context.Background(), "\n\t", "default"))
		require.Len(t, chunks, 2)
		require.Equal(t, msdomain.ChunkDone, chunks[1].Type)
		require.Equal(t, Apology, chunks[1].Content)
		require.Zero(t, model.callCount())
	})

	t.Run("abandoned consumer does not wedge the session", func(t *testing.T) {
		chunks := make([]string, 40)
		for i := range chunks {
			chunks[i] = "x"
		}
		model := &fakeModel{chunks: chunks, response: "ok"}
		client := NewClient(model, zap.NewNop())

		ctx, cancel := context.WithCancel(context.Background())
		client.Stream(ctx, "long question", "finance") // never read
		cancel()

		done := make(chan string, 1)
		go func() {
			done <- client.Generate(context.Background(), "follow-up", "finance")
		}()
		select {
		case got := <-done:
			require.Equal(t, "ok", got)
		case <-time.After(2 * time.Second):
			t.Fatal("session stayed locked after the stream consumer went away")
		}
	})

	t.Run("successful turn is appended to history", func(t *testing.T) {
		model := &fakeModel{chunks: []string{"Growth ", "continues"}}
		client := NewClient(model, zap.NewNop())

		collect(client.Stream(context.Background(), "trends?", "retail"))

		msgs := client.ChatMessages("retail")
		require.Len(t, msgs, 4)
		require.Equal(t, "trends?", messageText(t, msgs[2]))
		require.Equal(t, "Growth continues", messageText(t, msgs[3]))
	})
}

func TestGenerateNote(t *testing.T) {
	t.Run("returns the note body", func(t *testing.T) {
		model := &fakeModel{response: "## Summary\nRates held steady."}
		client := NewClient(model, zap.NewNop())

		got, err := client.GenerateNote(context.Background(), "Rates", "finance", "The Fed held rates.")
		require.NoError(t, err)
		require.Equal(t, "## Summary\nRates held steady.", got)
	})

	t.Run("propagates provider failure", func(t *testing.T) {
		model := &fakeModel{err: errors.New("unavailable")}
		client := NewClient(model, zap.NewNop())

		_, err := client.GenerateNote(context.Background(), "Rates", "finance", "content")
		require.ErrorIs(t, err, msdomain.ErrTransport)
	})

	t.Run("rejects blank content", func(t *testing.T) {
		client := NewClient(&fakeModel{}, zap.NewNop())

		_, err := client.GenerateNote(context.Background(), "Rates", "finance", "  ")
		require.ErrorIs(t, err, msdomain.ErrEmptyInput)
	})
}

func TestExtractInsights(t *testing.T) {
	t.Run("uses a one-shot outside the chat session", func(t *testing.T) {
		model := &fakeModel{response: "- Key point one\n- Key point two"}
		client := NewClient(model, zap.NewNop())

		got, err := client.ExtractInsights(context.Background(), "long research text")
		require.NoError(t, err)
		require.Equal(t, "- Key point one\n- Key point two", got)

		// One-shot messages carry no session seeding.
		call := model.lastCall()
		require.Len(t, call, 2)
		require.Equal(t, llms.ChatMessageTypeSystem, call[0].Role)
	})

	t.Run("blank response is an error", func(t *testing.T) {
		model := &fakeModel{response: "   "}
		client := NewClient(model, zap.NewNop())

		_, err := client.ExtractInsights(context.Background(), "text")
		require.ErrorIs(t, err, msdomain.ErrEmptyResponse)
	})
}

func TestExtractReferences(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []msdomain.Reference
	}{
		{
			name:     "plain JSON array",
			response: `[{"title":"Reuters","url":"https://reuters.com/a"}]`,
			want:     []msdomain.Reference{{Title: "Reuters", URL: "https://reuters.com/a"}},
		},
		{
			name:     "fenced JSON array",
			response: "```json\n[{\"title\":\"Bloomberg\",\"url\":\"https://bloomberg.com/b\"}]\n```",
			want:     []msdomain.Reference{{Title: "Bloomberg", URL: "https://bloomberg.com/b"}},
		},
		{
			name:     "array of strings",
			response: `["https://example.com/report"]`,
			want:     []msdomain.Reference{{Text: "https://example.com/report"}},
		},
		{
			name:     "malformed JSON falls back to lines",
			response: "Reuters market wrap\n\nBloomberg daily brief\n",
			want: []msdomain.Reference{
				{Text: "Reuters market wrap"},
				{Text: "Bloomberg daily brief"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeModel{response: tt.response}
			client := NewClient(model, zap.NewNop())

			got := client.ExtractReferences(context.Background(), "research text")
			require.Equal(t, tt.want, got)
		})
	}

	t.Run("provider error yields empty slice", func(t *testing.T) {
		model := &fakeModel{err: errors.New("unavailable")}
		client := NewClient(model, zap.NewNop())

		got := client.ExtractReferences(context.Background(), "research text")
		require.Empty(t, got)
		require.NotNil(t, got)
	})

	t.Run("blank input yields empty slice without a provider call", func(t *testing.T) {
		model := &fakeModel{}
		client := NewClient(model, zap.NewNop())

		got := client.ExtractReferences(context.Background(), "  ")
		require.Empty(t, got)
		require.Zero(t, model.callCount())
	})
}
