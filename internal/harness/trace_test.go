package harness

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"agenteval/internal/agent"
)

func suiteRunner(t *testing.T, script string) *agent.Runner {
	t.Helper()
	return agent.NewRunner(agent.Options{
		Command:      "sh",
		SuiteArgs:    []string{"-c", script},
		SuiteTimeout: 5 * time.Second,
	})
}

func runTraceCheck(t *testing.T, script string) (CheckResult, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	check := NewTraceGenerationCheck(suiteRunner(t, script), 5*time.Second, &out)
	check.sleep = func(time.Duration) {} // skip the export delay in tests
	return check.Run(context.Background()), &out
}

func TestTraceGenerationSuccess(t *testing.T) {
	script := `
echo "Starting comprehensive test suite"
echo "OpenTelemetry initialized"
echo "Test Results: 5 passed"
echo "Flushing traces"
`
	res, out := runTraceCheck(t, script)

	if !res.Success {
		t.Fatalf("expected success: %+v", res)
	}
	if !res.DetailBool("traces_flushed") || !res.DetailBool("otel_initialized") || !res.DetailBool("tests_ran") {
		t.Fatalf("marker detection wrong: %+v", res.Details)
	}
	if !strings.Contains(out.String(), "Waiting 5 seconds for trace export") {
		t.Fatalf("missing export wait line, got %q", out.String())
	}
}

func TestTraceGenerationAlternateFlushMarker(t *testing.T) {
	script := `
echo "OpenTelemetry initialized"
echo "12 spans flushed"
`
	res, _ := runTraceCheck(t, script)
	if !res.DetailBool("traces_flushed") {
		t.Fatal("spans flushed marker not recognized")
	}
}

func TestTraceGenerationMissingMarkersFails(t *testing.T) {
	res, _ := runTraceCheck(t, `echo "tests ran fine but no telemetry output"`)

	if res.Success {
		t.Fatal("expected failure without telemetry markers")
	}
	if res.DetailBool("traces_flushed") || res.DetailBool("otel_initialized") {
		t.Fatalf("markers should be false: %+v", res.Details)
	}
	// Subprocess itself exited zero
	if !res.DetailBool("typescript_success") {
		t.Fatal("typescript_success should be true for a clean exit")
	}
}

func TestTraceGenerationSuiteFailure(t *testing.T) {
	res, _ := runTraceCheck(t, `echo "OpenTelemetry initialized"; echo "Flushing traces"; exit 1`)

	if res.Success {
		t.Fatal("non-zero suite exit must fail the check even with markers present")
	}
	if res.DetailBool("typescript_success") {
		t.Fatal("typescript_success should be false")
	}
}

func TestTraceGenerationTimeoutDegrades(t *testing.T) {
	var out bytes.Buffer
	runner := agent.NewRunner(agent.Options{
		Command:      "sh",
		SuiteArgs:    []string{"-c", "sleep 10"},
		SuiteTimeout: 200 * time.Millisecond,
	})
	check := NewTraceGenerationCheck(runner, time.Second, &out)
	check.sleep = func(time.Duration) {}

	res := check.Run(context.Background())
	if res.Success {
		t.Fatal("expected timeout failure")
	}
	if !strings.Contains(res.Error, "timeout") && !strings.Contains(res.Error, "Timeout") {
		t.Fatalf("expected timeout error text, got %q", res.Error)
	}
}

func TestTraceGenerationPreviewTruncated(t *testing.T) {
	script := `printf 'OpenTelemetry initialized\nFlushing traces\n'; printf 'x%.0s' $(seq 1 600)`
	res, _ := runTraceCheck(t, script)

	preview := res.DetailString("output_preview")
	if len([]rune(preview)) != 503 {
		t.Fatalf("preview length = %d, want 503", len([]rune(preview)))
	}
	if !strings.HasSuffix(preview, "...") {
		t.Fatal("preview should end with ellipsis")
	}
}
