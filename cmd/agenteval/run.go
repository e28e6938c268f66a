package main

import (
	"context"
	"os"

	"agenteval/internal/agent"
	"agenteval/internal/harness"
	"agenteval/internal/llm"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runEval executes the full evaluation harness. Check failures are reported
// in the summary, never through the exit code.
func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger.Info("starting evaluation",
		zap.String("agent_dir", cfg.Agent.Dir),
		zap.String("model", cfg.LLM.Model),
		zap.Bool("api_key_configured", cfg.LLM.APIKey != ""))

	runner := agent.NewRunner(agent.Options{
		Dir:               cfg.Agent.Dir,
		Command:           cfg.Agent.Command,
		SingleShotArgs:    cfg.Agent.SingleShotArgs,
		SuiteArgs:         cfg.Agent.SuiteArgs,
		SingleShotTimeout: cfg.GetSingleShotTimeout(),
		SuiteTimeout:      cfg.GetSuiteTimeout(),
	})

	client := llm.NewClient(llm.ClientConfig{
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
		Timeout:   cfg.GetLLMTimeout(),
	})

	checks := []harness.Check{
		harness.NewConnectivityCheck(cfg.Telemetry.DashboardURL, cfg.Telemetry.OTLPURL, cfg.GetProbeTimeout()),
		harness.NewTraceGenerationCheck(runner, cfg.GetExportDelay(), os.Stdout),
		harness.NewConsistencyCheck(client, runner),
	}

	h := harness.New(checks,
		harness.WithOutput(os.Stdout),
		harness.WithDashboardURL(cfg.Telemetry.DashboardURL),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	results := h.RunAll(ctx)
	logger.Info("evaluation finished",
		zap.String("run_id", h.RunID()),
		zap.Int("passed", harness.Passed(results)),
		zap.Int("total", len(results)))

	return nil
}
