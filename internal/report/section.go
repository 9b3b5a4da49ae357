package report

import "time"

// SectionKind identifies one of the fixed report sections. The set is
// closed: renderers and exporters index sections by kind rather than
// scanning for names.
type SectionKind int

const (
	CompanyOverview SectionKind = iota
	FinancialPerformance
	MarketPerformance
	AnalystRecommendations
	SectorIndustry
	RecentNews
)

// SectionKinds returns all section kinds in document order. Company
// Overview is always first and Recent News always last; downstream
// consumers depend on this ordering.
func SectionKinds() []SectionKind {
	return []SectionKind{
		CompanyOverview,
		FinancialPerformance,
		MarketPerformance,
		AnalystRecommendations,
		SectorIndustry,
		RecentNews,
	}
}

// String returns the section's display name.
func (k SectionKind) String() string {
	switch k {
	case CompanyOverview:
		return "Company Overview"
	case FinancialPerformance:
		return "Financial Performance"
	case MarketPerformance:
		return "Market Performance"
	case AnalystRecommendations:
		return "Analyst Recommendations"
	case SectorIndustry:
		return "Sector and Industry"
	case RecentNews:
		return "Recent News"
	default:
		return "Unknown"
	}
}

// FieldKeys returns the fixed, ordered field set for a section kind.
// A built section's data map carries exactly these keys, each holding a
// value or the unavailable marker.
func (k SectionKind) FieldKeys() []string {
	switch k {
	case CompanyOverview:
		return []string{
			"name", "sector", "industry", "exchange", "currency",
			"market_cap", "employees",
		}
	case FinancialPerformance:
		return []string{
			"revenue", "net_income", "operating_cash_flow", "capital_expenditure",
			"trailing_pe_ratio", "forward_pe_ratio", "price_to_book", "price_to_sales_ratio",
			"dividend_rate", "dividend_yield", "payout_ratio",
			"earnings_growth", "revenue_growth",
			"profit_margin", "operating_margin", "return_on_assets", "return_on_equity",
		}
	case MarketPerformance:
		return []string{
			"current_price", "average_price", "price_change", "high_low_spread",
			"volatility", "average_volume", "max_volume",
			"52_week_high", "52_week_low", "beta",
		}
	case AnalystRecommendations:
		return []string{
			"target_price", "rating",
			"strong_buy", "buy", "hold", "sell", "strong_sell",
		}
	case SectorIndustry:
		return []string{
			"sector", "industry",
			"gic_sector", "gic_group", "gic_industry", "gic_sub_industry",
		}
	case RecentNews:
		return []string{
			"article_count", "latest_headline", "latest_published",
		}
	default:
		return nil
	}
}

// NewsItem is one headline in the Recent News section.
type NewsItem struct {
	Title     string
	Publisher string
	Link      string
	Published time.Time
}

// PriceBar is one day of OHLCV history, the raw input for Market
// Performance derivations.
type PriceBar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Section is one named block of the report: normalized data plus the
// AI-generated insight and signal. Data is populated once by the builder
// and never mutated afterwards; the insight/signal pair is set exactly
// once by the annotator, atomically (both on success, both on failure).
type Section struct {
	Kind    SectionKind
	Data    map[string]Value
	News    []NewsItem // populated for RecentNews only
	Insight string
	Signal  Signal
}

// NewSection builds a section whose data map carries every expected field,
// defaulting each to the unavailable marker before overlaying the supplied
// values. Keys outside the section's fixed field set are dropped.
func NewSection(kind SectionKind, data map[string]Value) *Section {
	full := make(map[string]Value, len(kind.FieldKeys()))
	for _, key := range kind.FieldKeys() {
		full[key] = Unavailable()
		if v, ok := data[key]; ok {
			full[key] = v
		}
	}
	return &Section{Kind: kind, Data: full}
}

// Field returns the named field's value. Fields outside the section's
// fixed set report as unavailable rather than a zero Value surprise.
func (s *Section) Field(key string) Value {
	if v, ok := s.Data[key]; ok {
		return v
	}
	return Unavailable()
}

// SetJudgment records a successful annotation.
func (s *Section) SetJudgment(insight string, signal Signal) {
	s.Insight = insight
	s.Signal = signal
}

// SetJudgmentFailed records a failed annotation: a diagnostic insight and
// the neutral failure signal, set together so the pair is never half-filled.
func (s *Section) SetJudgmentFailed(err error) {
	s.Insight = "Error generating insight: " + err.Error()
	s.Signal = SignalNone
}

// Annotated reports whether this section carries a genuine LLM judgment,
// as opposed to the failure fallback or no annotation at all.
func (s *Section) Annotated() bool {
	switch s.Signal {
	case SignalBuy, SignalHold, SignalSell:
		return true
	default:
		return false
	}
}
