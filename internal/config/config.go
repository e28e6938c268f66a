package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all agenteval configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Direct chat-completions API used for the consistency and simple evals
	LLM LLMConfig `yaml:"llm"`

	// Companion agent under test (invoked as subprocesses)
	Agent AgentConfig `yaml:"agent"`

	// Telemetry infrastructure probed by the connectivity check
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Eval fixtures
	Eval EvalConfig `yaml:"eval"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the direct chat-completions client.
type LLMConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	MaxTokens int    `yaml:"max_tokens"`
	Timeout   string `yaml:"timeout"`
}

// AgentConfig configures how the companion agent is executed.
// The agent is a black box: communication is stdout/stderr text and
// exit codes only.
type AgentConfig struct {
	// Dir is the companion working directory both entry points run in.
	Dir string `yaml:"dir"`

	// Command is the launcher binary (npx for the TypeScript agent).
	Command string `yaml:"command"`

	// SingleShotArgs runs the one-query agent entry point.
	SingleShotArgs []string `yaml:"single_shot_args"`

	// SuiteArgs runs the full test-suite entry point.
	SuiteArgs []string `yaml:"suite_args"`

	SingleShotTimeout string `yaml:"single_shot_timeout"`
	SuiteTimeout      string `yaml:"suite_timeout"`

	// ExportDelay is the unconditional wait after the suite exits so
	// asynchronous trace export can land before stdout is inspected.
	ExportDelay string `yaml:"export_delay"`
}

// TelemetryConfig holds the two loopback endpoints probed for reachability.
type TelemetryConfig struct {
	DashboardURL string `yaml:"dashboard_url"`
	OTLPURL      string `yaml:"otlp_url"`
	ProbeTimeout string `yaml:"probe_timeout"`
}

// EvalConfig configures static fixtures.
type EvalConfig struct {
	FixturePath string `yaml:"fixture_path"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
// Defaults mirror the companion deployment: Aspire dashboard on 18888,
// OTLP ingestion on 18889, agent sources one directory over.
func DefaultConfig() *Config {
	return &Config{
		Name:    "agenteval",
		Version: "1.0.0",

		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			BaseURL:   "https://api.openai.com/v1",
			MaxTokens: 200,
			Timeout:   "60s",
		},

		Agent: AgentConfig{
			Dir:               "../agents-sdk-ts",
			Command:           "npx",
			SingleShotArgs:    []string{"ts-node", "simple-agent.ts"},
			SuiteArgs:         []string{"ts-node", "test-suite.ts"},
			SingleShotTimeout: "30s",
			SuiteTimeout:      "120s",
			ExportDelay:       "5s",
		},

		Telemetry: TelemetryConfig{
			DashboardURL: "http://localhost:18888",
			OTLPURL:      "http://localhost:18889/v1/traces",
			ProbeTimeout: "5s",
		},

		Eval: EvalConfig{
			FixturePath: "data/simple_time_eval.jsonl",
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "agenteval.log",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if dir := os.Getenv("AGENTEVAL_AGENT_DIR"); dir != "" {
		c.Agent.Dir = dir
	}
	if url := os.Getenv("AGENTEVAL_DASHBOARD_URL"); url != "" {
		c.Telemetry.DashboardURL = url
	}
	if url := os.Getenv("AGENTEVAL_OTLP_URL"); url != "" {
		c.Telemetry.OTLPURL = url
	}
}

// GetLLMTimeout returns the chat-completions timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	return parseDuration(c.LLM.Timeout, 60*time.Second)
}

// GetProbeTimeout returns the HTTP probe timeout as a duration.
func (c *Config) GetProbeTimeout() time.Duration {
	return parseDuration(c.Telemetry.ProbeTimeout, 5*time.Second)
}

// GetSingleShotTimeout returns the single-shot agent timeout as a duration.
func (c *Config) GetSingleShotTimeout() time.Duration {
	return parseDuration(c.Agent.SingleShotTimeout, 30*time.Second)
}

// GetSuiteTimeout returns the full test-suite timeout as a duration.
func (c *Config) GetSuiteTimeout() time.Duration {
	return parseDuration(c.Agent.SuiteTimeout, 120*time.Second)
}

// GetExportDelay returns the post-suite trace export wait as a duration.
func (c *Config) GetExportDelay() time.Duration {
	return parseDuration(c.Agent.ExportDelay, 5*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
