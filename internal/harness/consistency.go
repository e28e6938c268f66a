package harness

import (
	"context"
	"fmt"
	"time"

	"agenteval/internal/agent"
	"agenteval/internal/llm"
	"agenteval/internal/logging"
)

// ConsistencyQuery is the fixed prompt sent to both implementations.
const ConsistencyQuery = "What time is it right now? Respond with an ISO-8601 timestamp."

// ConsistencyCheck sends one fixed query to the chat-completions API
// directly and to the companion single-shot agent, then compares the two
// responses for agreement on ISO-8601 behavior.
type ConsistencyCheck struct {
	llm    *llm.Client
	runner *agent.Runner
}

// NewConsistencyCheck creates the cross-implementation consistency check.
func NewConsistencyCheck(client *llm.Client, runner *agent.Runner) *ConsistencyCheck {
	return &ConsistencyCheck{llm: client, runner: runner}
}

// Name implements Check.
func (c *ConsistencyCheck) Name() string { return "api_vs_typescript_consistency" }

// Headline implements Check.
func (c *ConsistencyCheck) Headline() string {
	return "Testing direct API vs TypeScript agent consistency..."
}

// Run queries both implementations and scores them. A score of 1.0 means
// both responses agree on mentioning ISO (either both do or neither does);
// disagreement scores 0.5. Overall success requires the agent subprocess to
// exit zero and the score to be positive. API failure degrades to an error
// string in the comparison, never to a check abort.
func (c *ConsistencyCheck) Run(ctx context.Context) CheckResult {
	start := time.Now()

	apiResponse, err := c.llm.Complete(ctx, ConsistencyQuery)
	if err != nil {
		apiResponse = fmt.Sprintf("Error: %v", err)
	}

	agentRun := c.runner.RunSingleShot(ctx, "consistency_test")
	agentResponse := ExtractAgentResponse(agentRun.Output)

	apiMentionsISO := MentionsISO(apiResponse)
	agentMentionsISO := MentionsISO(agentResponse)
	apiHasTimestamp := HasTimestamp(apiResponse)
	agentHasTimestamp := HasTimestamp(agentResponse)

	consistencyScore := 0.5
	if apiMentionsISO == agentMentionsISO {
		consistencyScore = 1.0
	}

	logging.Harness("consistency: agent_ok=%v score=%.1f api_iso=%v agent_iso=%v",
		agentRun.Success, consistencyScore, apiMentionsISO, agentMentionsISO)

	return CheckResult{
		TestName: c.Name(),
		Success:  agentRun.Success && consistencyScore > 0,
		Details: map[string]any{
			"api_response":             apiResponse,
			"typescript_response":      agentResponse,
			"typescript_raw_output":    Preview(agentRun.Output, 500),
			"api_mentions_iso":         apiMentionsISO,
			"typescript_mentions_iso":  agentMentionsISO,
			"api_has_timestamp":        apiHasTimestamp,
			"typescript_has_timestamp": agentHasTimestamp,
			"consistency_score":        consistencyScore,
			"typescript_success":       agentRun.Success,
			"typescript_error":         agentRun.Error,
		},
		DurationMs: time.Since(start).Milliseconds(),
	}
}
