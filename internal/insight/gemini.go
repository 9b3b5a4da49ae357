package insight

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"google.golang.org/genai"

	"github.com/ternarybob/equitas/internal/common"
	"github.com/ternarybob/equitas/internal/report"
)

// geminiEvaluator evaluates sections with the Google Gemini API, using a
// response schema so the model is constrained to the judgment shape.
type geminiEvaluator struct {
	client      *genai.Client
	model       string
	temperature float32
	logger      arbor.ILogger
}

// judgmentSchema constrains Gemini output to {insight, signal}.
func judgmentSchema() *genai.Schema {
	minSignal := float64(-1)
	maxSignal := float64(1)
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"insight": {
				Type:        genai.TypeString,
				Description: "Concise equity research insight for the section",
			},
			"signal": {
				Type:        genai.TypeInteger,
				Description: "Investment signal: 1 buy, 0 hold, -1 sell",
				Minimum:     &minSignal,
				Maximum:     &maxSignal,
			},
		},
		Required: []string{"insight", "signal"},
	}
}

// newGeminiEvaluator creates a Gemini-backed evaluator.
func newGeminiEvaluator(ctx context.Context, config *common.GeminiConfig, model string, logger arbor.ILogger) (*geminiEvaluator, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or gemini.api_key in config)")
	}
	if model == "" {
		model = config.Model
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiEvaluator{
		client:      client,
		model:       model,
		temperature: config.Temperature,
		logger:      logger,
	}, nil
}

// Evaluate requests a judgment for one section. A single attempt: the
// annotator treats any failure as that section's terminal outcome.
func (e *geminiEvaluator) Evaluate(ctx context.Context, section *report.Section) (Judgment, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(e.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   judgmentSchema(),
	}

	contents := []*genai.Content{
		genai.NewContentFromText(buildPrompt(section), genai.RoleUser),
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, config)
	if err != nil {
		return Judgment{}, fmt.Errorf("Gemini API call failed: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return Judgment{}, fmt.Errorf("empty response from Gemini API")
	}

	text := resp.Text()
	if text == "" {
		return Judgment{}, fmt.Errorf("empty text in Gemini response")
	}

	return decodeJudgment(text)
}
