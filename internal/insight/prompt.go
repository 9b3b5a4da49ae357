package insight

import (
	"fmt"
	"strings"

	"github.com/ternarybob/equitas/internal/report"
)

// buildPrompt renders one section into the analysis prompt. The data block
// lists every field in the section's fixed order so the model sees
// unavailable fields explicitly rather than inferring from absence.
func buildPrompt(section *report.Section) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze the provided %s data in the context of a comprehensive Equity Research report.\n", section.Kind)
	b.WriteString("Deliver clear and concise insights, including actionable recommendations, while highlighting key risks and opportunities.\n")
	b.WriteString("Based on your analysis, assign a signal: Buy 1, Sell -1, or Hold 0.\n")
	b.WriteString("Respond with a JSON object containing exactly two fields: \"insight\" (string) and \"signal\" (integer -1, 0 or 1).\n\n")

	fmt.Fprintf(&b, "%s data:\n", section.Kind)
	for _, key := range section.Kind.FieldKeys() {
		fmt.Fprintf(&b, "- %s: %s\n", key, section.Field(key).Display())
	}
	if section.Kind == report.RecentNews {
		for _, item := range section.News {
			fmt.Fprintf(&b, "- headline: %s (%s)\n", item.Title, item.Publisher)
		}
	}

	return b.String()
}
