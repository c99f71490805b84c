package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `[{"a":1}]`, `[{"a":1}]`},
		{"json fence", "```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"bare fence", "```\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"surrounding whitespace", "  [1,2]  ", "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, stripCodeFences(tt.in))
		})
	}
}

func TestFirstJSONArray(t *testing.T) {
	t.Run("span inside prose", func(t *testing.T) {
		got, ok := FirstJSONArray("Here you go:\n[{\"title\":\"x\"}]\nHope that helps.")
		require.True(t, ok)
		require.Equal(t, `[{"title":"x"}]`, got)
	})

	t.Run("spans newlines", func(t *testing.T) {
		got, ok := FirstJSONArray("[\n  1,\n  2\n]")
		require.True(t, ok)
		require.Equal(t, "[\n  1,\n  2\n]", got)
	})

	t.Run("greedy across multiple arrays", func(t *testing.T) {
		got, ok := FirstJSONArray("a [1] b [2] c")
		require.True(t, ok)
		require.Equal(t, "[1] b [2]", got)
	})

	t.Run("no array", func(t *testing.T) {
		_, ok := FirstJSONArray("no brackets here")
		require.False(t, ok)
	})
}
