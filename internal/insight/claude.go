package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/equitas/internal/common"
	"github.com/ternarybob/equitas/internal/report"
)

// claudeEvaluator evaluates sections with the Anthropic Claude API.
type claudeEvaluator struct {
	client      anthropic.Client
	model       string
	maxTokens   int
	temperature float32
	logger      arbor.ILogger
}

// newClaudeEvaluator creates a Claude-backed evaluator.
func newClaudeEvaluator(config *common.ClaudeConfig, model string, logger arbor.ILogger) (*claudeEvaluator, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required (set ANTHROPIC_API_KEY or claude.api_key in config)")
	}
	if model == "" {
		model = config.Model
	}
	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &claudeEvaluator{
		client:      anthropic.NewClient(option.WithAPIKey(config.APIKey)),
		model:       model,
		maxTokens:   maxTokens,
		temperature: config.Temperature,
		logger:      logger,
	}, nil
}

// Evaluate requests a judgment for one section. A single attempt: the
// annotator treats any failure as that section's terminal outcome.
func (e *claudeEvaluator) Evaluate(ctx context.Context, section *report.Section) (Judgment, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(e.model),
		MaxTokens: int64(e.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(section))),
		},
	}
	if e.temperature > 0 {
		params.Temperature = anthropic.Float(float64(e.temperature))
	}

	resp, err := e.client.Messages.New(ctx, params)
	if err != nil {
		return Judgment{}, fmt.Errorf("Claude API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return Judgment{}, fmt.Errorf("empty response from Claude API")
	}

	return decodeJudgment(text.String())
}
