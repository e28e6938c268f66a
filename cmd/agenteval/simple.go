package main

import (
	"context"
	"os"

	"agenteval/internal/harness"
	"agenteval/internal/llm"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runSimple executes the fixture-based single eval.
func runSimple(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := llm.NewClient(llm.ClientConfig{
		APIKey:    cfg.LLM.APIKey,
		BaseURL:   cfg.LLM.BaseURL,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
		Timeout:   cfg.GetLLMTimeout(),
	})

	eval := harness.NewSimpleEval(client, cfg.Eval.FixturePath, os.Stdout)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res := eval.Run(ctx)
	logger.Info("simple eval finished",
		zap.Bool("success", res.Success),
		zap.Float64("score", res.DetailFloat("score")))

	return nil
}
