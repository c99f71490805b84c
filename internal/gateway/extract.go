package gateway

import (
	"regexp"
	"strings"
)

var (
	codeFencePattern = regexp.MustCompile("```json\n|\n```|```")

	// Greedy first-to-last bracket span, matching how the provider's JSON is
	// located inside surrounding prose. Known to break on nested arrays in
	// prose; kept for compatibility.
	jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)
)

// stripCodeFences removes markdown code-fence markers the provider sometimes
// wraps around JSON output.
func stripCodeFences(text string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(text, ""))
}

// FirstJSONArray returns the first [...] span found in text.
func FirstJSONArray(text string) (string, bool) {
	span := jsonArrayPattern.FindString(text)
	if span == "" {
		return "", false
	}
	return span, true
}

// nonBlankLines splits text into its non-blank lines.
func nonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
