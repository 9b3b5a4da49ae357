package insight

import (
	"context"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/equitas/internal/common"
)

// ProviderType represents the AI provider type
type ProviderType string

const (
	// ProviderGemini uses Google Gemini API
	ProviderGemini ProviderType = "gemini"
	// ProviderClaude uses Anthropic Claude API
	ProviderClaude ProviderType = "claude"
)

// DetectProvider determines the provider type from a model string.
// Model strings can be:
// - "claude-haiku-3-5-20241022" -> Claude
// - "claude/claude-haiku-3-5-20241022" -> Claude (with prefix)
// - "gemini-3-flash-preview" -> Gemini
// - "gemini/gemini-3-flash-preview" -> Gemini (with prefix)
// - Empty string -> uses default provider from config
func DetectProvider(model string, fallback common.LLMProvider) ProviderType {
	if model == "" {
		return ProviderType(fallback)
	}

	model = strings.ToLower(model)

	if strings.HasPrefix(model, "claude/") || strings.HasPrefix(model, "anthropic/") {
		return ProviderClaude
	}
	if strings.HasPrefix(model, "gemini/") || strings.HasPrefix(model, "google/") {
		return ProviderGemini
	}

	if strings.HasPrefix(model, "claude-") {
		return ProviderClaude
	}
	if strings.HasPrefix(model, "gemini-") {
		return ProviderGemini
	}

	return ProviderType(fallback)
}

// NormalizeModel removes provider prefix from model name if present
func NormalizeModel(model string) string {
	prefixes := []string{"claude/", "anthropic/", "gemini/", "google/"}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToLower(model), prefix) {
			return model[len(prefix):]
		}
	}
	return model
}

// NewEvaluator creates the evaluator selected by the configured model
// string, falling back to the default provider when the model carries no
// provider hint.
func NewEvaluator(ctx context.Context, cfg *common.Config, logger arbor.ILogger) (Evaluator, error) {
	provider := DetectProvider(cfg.LLM.Model, cfg.LLM.DefaultProvider)
	model := NormalizeModel(cfg.LLM.Model)

	logger.Info().
		Str("provider", string(provider)).
		Str("model", model).
		Msg("Initializing insight evaluator")

	switch provider {
	case ProviderClaude:
		return newClaudeEvaluator(&cfg.Claude, model, logger)
	default:
		return newGeminiEvaluator(ctx, &cfg.Gemini, model, logger)
	}
}
