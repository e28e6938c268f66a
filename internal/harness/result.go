// Package harness executes the evaluation checks against the companion
// agent and its telemetry infrastructure, and aggregates pass/fail results.
//
// Every check is a single linear sequence: invoke, wait/parse, classify.
// External calls (HTTP, subprocess, API) never raise past the check
// boundary - failures degrade to a failed CheckResult so the harness
// always completes and always prints a summary.
package harness

import "context"

// CheckResult is the uniform outcome record for one evaluation check.
// Immutable after creation; held in run order for the duration of one
// harness run and discarded at process exit.
type CheckResult struct {
	TestName   string
	Success    bool
	Details    map[string]any
	Error      string
	DurationMs int64
}

// Check is a single evaluation probe with no retry and no intermediate
// state.
type Check interface {
	// Name is the stable test identifier used in result records.
	Name() string

	// Headline is the progress line printed before the check runs.
	Headline() string

	// Run executes the check. It must not return an error or panic:
	// failure is expressed through the result record.
	Run(ctx context.Context) CheckResult
}

// DetailBool returns a boolean diagnostic field, false when absent or of
// another type.
func (r CheckResult) DetailBool(key string) bool {
	v, ok := r.Details[key].(bool)
	return ok && v
}

// DetailString returns a string diagnostic field, "" when absent.
func (r CheckResult) DetailString(key string) string {
	v, _ := r.Details[key].(string)
	return v
}

// DetailFloat returns a numeric diagnostic field, 0 when absent.
func (r CheckResult) DetailFloat(key string) float64 {
	v, _ := r.Details[key].(float64)
	return v
}
