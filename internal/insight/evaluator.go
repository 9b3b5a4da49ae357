// Package insight attaches AI-generated commentary to report sections: one
// LLM call per section, returning a free-text insight and a buy/hold/sell
// signal, with per-section failure isolation.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/equitas/internal/report"
)

// Judgment is the LLM's structured verdict on one section's data: a
// free-text insight and an integer signal (1 buy, 0 hold, -1 sell).
type Judgment struct {
	Insight string `json:"insight"`
	Signal  int    `json:"signal"`
}

// Evaluator produces a judgment for one report section. Implementations
// wrap an LLM backend; tests substitute a deterministic stub.
type Evaluator interface {
	Evaluate(ctx context.Context, section *report.Section) (Judgment, error)
}

// decodeJudgment parses a model response into a Judgment. Models wrap
// JSON in markdown fences or prose often enough that the parser extracts
// the outermost object before unmarshaling.
func decodeJudgment(text string) (Judgment, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return Judgment{}, fmt.Errorf("no JSON object in model response")
	}

	var j Judgment
	if err := json.Unmarshal([]byte(text[start:end+1]), &j); err != nil {
		return Judgment{}, fmt.Errorf("malformed judgment JSON: %w", err)
	}
	if strings.TrimSpace(j.Insight) == "" {
		return Judgment{}, fmt.Errorf("judgment has empty insight")
	}
	return j, nil
}
