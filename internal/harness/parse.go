package harness

import (
	"regexp"
	"strings"
)

// agentResponseMarker labels the line carrying the agent's actual answer in
// its otherwise debug-heavy stdout.
const agentResponseMarker = "Agent Response:"

// debugLinePrefixes mark agent debug/progress lines that must be skipped by
// the fallback line selection. This list is a compatibility constant for the
// companion agent's output format; do not extend it.
var debugLinePrefixes = []string{"🤖", "📝", "✅", "🆔", "📊", "🔗", "📈", "🏷️", "🔄", "🎯"}

// isoTimestampPattern matches ISO-8601 timestamps like
// 2024-01-01T00:00:00Z or 2024-03-05T10:20:30.123Z.
var isoTimestampPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?Z?`)

// ExtractAgentResponse pulls the agent's answer out of its captured stdout.
// The first line containing the "Agent Response:" marker wins; the response
// is everything after the marker on that line, trimmed. Without a usable
// marker line it falls back to the first line that is non-empty, carries no
// debug prefix and is not a "=" separator.
func ExtractAgentResponse(output string) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")

	for _, line := range lines {
		if strings.Contains(line, agentResponseMarker) {
			_, after, _ := strings.Cut(line, agentResponseMarker)
			if resp := strings.TrimSpace(after); resp != "" {
				return resp
			}
			break
		}
	}

	for _, line := range lines {
		if hasDebugPrefix(line) {
			continue
		}
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "=") {
			continue
		}
		return strings.TrimSpace(line)
	}

	return ""
}

func hasDebugPrefix(line string) bool {
	for _, prefix := range debugLinePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// MentionsISO reports whether the response mentions "iso" in any casing.
func MentionsISO(s string) bool {
	return strings.Contains(strings.ToLower(s), "iso")
}

// HasTimestamp reports whether the response contains an ISO-8601 timestamp.
func HasTimestamp(s string) bool {
	return isoTimestampPattern.MatchString(s)
}

// Preview truncates diagnostic output to at most n characters, marking the
// cut with an ellipsis.
func Preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
