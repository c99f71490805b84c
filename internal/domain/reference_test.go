package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferenceUnmarshal(t *testing.T) {
	t.Run("object form", func(t *testing.T) {
		var refs []Reference
		err := json.Unmarshal([]byte(`[{"title":"Reuters","url":"https://reuters.com/a"}]`), &refs)
		require.NoError(t, err)
		require.Equal(t, []Reference{{Title: "Reuters", URL: "https://reuters.com/a"}}, refs)
	})

	t.Run("string form", func(t *testing.T) {
		var refs []Reference
		err := json.Unmarshal([]byte(`["https://example.com/report"]`), &refs)
		require.NoError(t, err)
		require.Equal(t, []Reference{{Text: "https://example.com/report"}}, refs)
	})

	t.Run("mixed forms", func(t *testing.T) {
		var refs []Reference
		err := json.Unmarshal([]byte(`[{"title":"Reuters"},"plain text"]`), &refs)
		require.NoError(t, err)
		require.Len(t, refs, 2)
		require.Equal(t, "Reuters", refs[0].Title)
		require.Equal(t, "plain text", refs[1].Text)
	})
}

func TestReferenceDisplay(t *testing.T) {
	tests := []struct {
		name string
		ref  Reference
		want string
	}{
		{"title and url", Reference{Title: "Reuters", URL: "https://reuters.com/a"}, "Reuters - https://reuters.com/a"},
		{"title only", Reference{Title: "Reuters"}, "Reuters"},
		{"url only", Reference{URL: "https://reuters.com/a"}, "https://reuters.com/a"},
		{"text only", Reference{Text: "a plain citation"}, "a plain citation"},
		{"empty", Reference{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.ref.Display())
		})
	}
}
