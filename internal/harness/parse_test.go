package harness

import (
	"strings"
	"testing"
)

func TestExtractAgentResponseMarker(t *testing.T) {
	output := strings.Join([]string{
		"🤖 Starting agent...",
		"📝 Loading tools",
		"Agent Response: 2024-01-01T00:00:00Z",
		"📊 Usage: 120 tokens",
	}, "\n")

	got := ExtractAgentResponse(output)
	if got != "2024-01-01T00:00:00Z" {
		t.Fatalf("ExtractAgentResponse = %q, want 2024-01-01T00:00:00Z", got)
	}
}

func TestExtractAgentResponseMarkerTrimsWhitespace(t *testing.T) {
	got := ExtractAgentResponse("Agent Response:    spaced out   \n")
	if got != "spaced out" {
		t.Fatalf("ExtractAgentResponse = %q, want %q", got, "spaced out")
	}
}

func TestExtractAgentResponseFirstMarkerWins(t *testing.T) {
	output := "Agent Response: first\nAgent Response: second\n"
	if got := ExtractAgentResponse(output); got != "first" {
		t.Fatalf("ExtractAgentResponse = %q, want first", got)
	}
}

func TestExtractAgentResponseFallback(t *testing.T) {
	output := strings.Join([]string{
		"🤖 debug line",
		"==================",
		"",
		"📈 more debug",
		"The current time is 10am.",
		"trailing line",
	}, "\n")

	got := ExtractAgentResponse(output)
	if got != "The current time is 10am." {
		t.Fatalf("ExtractAgentResponse fallback = %q", got)
	}
}

func TestExtractAgentResponseEmptyMarkerFallsBack(t *testing.T) {
	output := "Agent Response:\nplain answer line\n"
	if got := ExtractAgentResponse(output); got != "plain answer line" {
		t.Fatalf("ExtractAgentResponse = %q, want fallback line", got)
	}
}

func TestExtractAgentResponseAllDebug(t *testing.T) {
	output := "🤖 one\n✅ two\n====\n"
	if got := ExtractAgentResponse(output); got != "" {
		t.Fatalf("ExtractAgentResponse = %q, want empty", got)
	}
}

func TestMentionsISO(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"the ISO-8601 format", true},
		{"respond in iso format", true},
		{"IsO mixed case", true},
		{"no timestamps here", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := MentionsISO(tc.in); got != tc.want {
			t.Errorf("MentionsISO(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestHasTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"The time is 2024-03-05T10:20:30.123Z now", true},
		{"2024-01-01T00:00:00Z", true},
		{"2024-01-01T00:00:00", true}, // trailing Z optional
		{"The time is around 10am", false},
		{"2024-01-01 00:00:00", false}, // missing T separator
		{"", false},
	}
	for _, tc := range cases {
		if got := HasTimestamp(tc.in); got != tc.want {
			t.Errorf("HasTimestamp(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPreviewTruncation(t *testing.T) {
	long := strings.Repeat("x", 600)
	got := Preview(long, 500)
	if len(got) != 503 {
		t.Fatalf("Preview length = %d, want 503", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("Preview should end with ellipsis: %q", got[490:])
	}

	short := "short output"
	if got := Preview(short, 500); got != short {
		t.Fatalf("Preview should not touch short strings, got %q", got)
	}

	exact := strings.Repeat("y", 500)
	if got := Preview(exact, 500); got != exact {
		t.Fatalf("Preview should not truncate at exactly the limit")
	}
}
