package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// EvalCase is a single static eval fixture loaded from a line-delimited
// record. Read-only; lifetime is one invocation.
type EvalCase struct {
	Input string `json:"input"`
	Ideal string `json:"ideal"`
}

// LoadEvalCase reads the first record from a jsonl fixture file.
func LoadEvalCase(path string) (*EvalCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var line string
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(l) != "" {
			line = strings.TrimSpace(l)
			break
		}
	}
	if line == "" {
		return nil, fmt.Errorf("fixture %s contains no records", path)
	}

	var ec EvalCase
	if err := json.Unmarshal([]byte(line), &ec); err != nil {
		return nil, fmt.Errorf("failed to parse fixture record: %w", err)
	}
	if ec.Input == "" {
		return nil, fmt.Errorf("fixture record has no input field")
	}

	return &ec, nil
}
