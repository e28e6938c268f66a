// Package agent invokes the companion agent implementation as subprocesses.
// The agent is treated as an opaque black box: the only contract is captured
// stdout/stderr text and the process exit code.
package agent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"agenteval/internal/logging"
)

// Result captures one subprocess invocation outcome.
type Result struct {
	TestName   string
	Success    bool
	Output     string // captured stdout
	Error      string // captured stderr, or the failure description
	DurationMs int64
}

// Runner executes the companion agent entry points with bounded timeouts.
type Runner struct {
	dir     string
	command string

	singleShotArgs []string
	suiteArgs      []string

	singleShotTimeout time.Duration
	suiteTimeout      time.Duration
}

// Options configures a Runner.
type Options struct {
	Dir               string
	Command           string
	SingleShotArgs    []string
	SuiteArgs         []string
	SingleShotTimeout time.Duration
	SuiteTimeout      time.Duration
}

// NewRunner creates a runner for the companion working directory.
func NewRunner(opts Options) *Runner {
	if opts.SingleShotTimeout <= 0 {
		opts.SingleShotTimeout = 30 * time.Second
	}
	if opts.SuiteTimeout <= 0 {
		opts.SuiteTimeout = 120 * time.Second
	}
	return &Runner{
		dir:               opts.Dir,
		command:           opts.Command,
		singleShotArgs:    opts.SingleShotArgs,
		suiteArgs:         opts.SuiteArgs,
		singleShotTimeout: opts.SingleShotTimeout,
		suiteTimeout:      opts.SuiteTimeout,
	}
}

// RunSingleShot runs the one-query agent entry point and captures output.
func (r *Runner) RunSingleShot(ctx context.Context, testName string) Result {
	timeoutMsg := fmt.Sprintf("Timeout after %d seconds", int(r.singleShotTimeout.Seconds()))
	return r.run(ctx, testName, r.singleShotArgs, r.singleShotTimeout, timeoutMsg)
}

// RunSuite runs the full companion test-suite entry point.
func (r *Runner) RunSuite(ctx context.Context) Result {
	timeoutMsg := fmt.Sprintf("Test suite timeout after %d seconds", int(r.suiteTimeout.Seconds()))
	return r.run(ctx, "full_test_suite", r.suiteArgs, r.suiteTimeout, timeoutMsg)
}

// run executes one entry point. Failures never propagate: timeout, spawn
// error and non-zero exit all degrade to a failed Result. The process is
// never retried.
func (r *Runner) run(ctx context.Context, testName string, args []string, timeout time.Duration, timeoutMsg string) Result {
	start := time.Now()

	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(tctx, r.command, args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logging.Agent("running %s %v in %s (timeout %v)", r.command, args, r.dir, timeout)
	err := cmd.Run()
	durationMs := time.Since(start).Milliseconds()

	res := Result{
		TestName:   testName,
		Output:     stdout.String(),
		Error:      stderr.String(),
		DurationMs: durationMs,
	}

	switch {
	case tctx.Err() != nil && errors.Is(tctx.Err(), context.DeadlineExceeded):
		res.Success = false
		res.Output = ""
		res.Error = timeoutMsg
		logging.AgentError("%s: %s", testName, timeoutMsg)
	case err != nil:
		res.Success = false
		if res.Error == "" {
			res.Error = err.Error()
		}
		logging.AgentError("%s failed after %dms: %v", testName, durationMs, err)
	default:
		res.Success = true
		logging.Agent("%s completed in %dms (stdout %d bytes)", testName, durationMs, stdout.Len())
	}

	return res
}
