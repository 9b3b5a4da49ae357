// Package market implements the market-data gateway: a narrow, degrade-safe
// facade over the EODHD client that normalizes provider responses into the
// report model's field maps.
package market

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/equitas/internal/eodhd"
	"github.com/ternarybob/equitas/internal/report"
)

// Client is the subset of the EODHD client the gateway consumes.
type Client interface {
	GetEOD(ctx context.Context, symbol string, opts ...eodhd.QueryOption) (eodhd.EODResponse, error)
	GetFundamentals(ctx context.Context, symbol string) (*eodhd.FundamentalsResponse, error)
	GetNews(ctx context.Context, symbols []string, opts ...eodhd.QueryOption) (eodhd.NewsResponse, error)
}

// Gateway adapts the EODHD API to the report builder's needs. Every method
// absorbs upstream failures: a failed call yields unavailable markers (or
// an empty series), never an error, so one provider hiccup degrades one
// section rather than aborting the report.
type Gateway struct {
	client    Client
	logger    arbor.ILogger
	newsLimit int

	// Several sections draw on the same fundamentals payload; memoize it
	// per symbol so concurrent section fetches share one upstream call.
	mu    sync.Mutex
	funds map[string]*fundamentalsResult
}

type fundamentalsResult struct {
	once sync.Once
	resp *eodhd.FundamentalsResponse
}

// NewGateway creates a gateway over the given client. newsLimit caps the
// number of headlines fetched for the Recent News section.
func NewGateway(client Client, newsLimit int, logger arbor.ILogger) *Gateway {
	if newsLimit <= 0 {
		newsLimit = 5
	}
	return &Gateway{
		client:    client,
		logger:    logger,
		newsLimit: newsLimit,
		funds:     map[string]*fundamentalsResult{},
	}
}

// fundamentals returns the memoized fundamentals payload for a symbol, or
// nil if the upstream call failed.
func (g *Gateway) fundamentals(ctx context.Context, symbol string) *eodhd.FundamentalsResponse {
	g.mu.Lock()
	entry, ok := g.funds[symbol]
	if !ok {
		entry = &fundamentalsResult{}
		g.funds[symbol] = entry
	}
	g.mu.Unlock()

	entry.once.Do(func() {
		resp, err := g.client.GetFundamentals(ctx, symbol)
		if err != nil {
			g.logger.Warn().Err(err).Str("symbol", symbol).Msg("Fundamentals fetch failed, fields degraded to unavailable")
			return
		}
		entry.resp = resp
	})
	return entry.resp
}

// Overview returns the Company Overview fields, plus the market snapshot
// fields (52-week range, beta) the builder overlays onto Market
// Performance.
func (g *Gateway) Overview(ctx context.Context, symbol string) map[string]report.Value {
	funds := g.fundamentals(ctx, symbol)
	if funds == nil {
		return map[string]report.Value{}
	}

	data := map[string]report.Value{}
	if gen := funds.General; gen != nil {
		data["name"] = report.Str(gen.Name)
		data["sector"] = report.Str(gen.Sector)
		data["industry"] = report.Str(gen.Industry)
		data["exchange"] = report.Str(gen.Exchange)
		data["currency"] = report.Str(gen.CurrencyCode)
		if gen.FullTimeEmployees > 0 {
			data["employees"] = report.Count(float64(gen.FullTimeEmployees))
		}
	}
	if hl := funds.Highlights; hl != nil {
		data["market_cap"] = currency(hl.MarketCapitalization)
	}
	if tech := funds.Technicals; tech != nil {
		data["52_week_high"] = currency(tech.FiftyTwoWeekHigh)
		data["52_week_low"] = currency(tech.FiftyTwoWeekLow)
		data["beta"] = metric(tech.Beta)
	}
	return data
}

// Financials returns the Financial Performance fields: the most recent
// quarterly statement line items plus ratio, dividend, growth and
// profitability metrics. Each line item falls back to unavailable
// independently; absence of one never blanks the others.
func (g *Gateway) Financials(ctx context.Context, symbol string) map[string]report.Value {
	funds := g.fundamentals(ctx, symbol)
	if funds == nil {
		return map[string]report.Value{}
	}

	data := map[string]report.Value{}
	if fin := funds.Financials; fin != nil {
		if fin.IncomeStatement != nil {
			data["revenue"] = latestQuarterly(fin.IncomeStatement, "totalRevenue")
			data["net_income"] = latestQuarterly(fin.IncomeStatement, "netIncome")
		}
		if fin.CashFlow != nil {
			data["operating_cash_flow"] = latestQuarterly(fin.CashFlow, "totalCashFromOperatingActivities")
			data["capital_expenditure"] = latestQuarterly(fin.CashFlow, "capitalExpenditures")
		}
	}
	if val := funds.Valuation; val != nil {
		data["trailing_pe_ratio"] = metric(val.TrailingPE)
		data["forward_pe_ratio"] = metric(val.ForwardPE)
		data["price_to_book"] = metric(val.PriceBookMRQ)
		data["price_to_sales_ratio"] = metric(val.PriceSalesTTM)
	}
	if div := funds.SplitsDividends; div != nil {
		data["dividend_rate"] = metric(div.ForwardAnnualDividendRate)
		data["dividend_yield"] = fraction(div.ForwardAnnualDividendYield)
		data["payout_ratio"] = fraction(div.PayoutRatio)
	}
	if hl := funds.Highlights; hl != nil {
		data["earnings_growth"] = fraction(hl.QuarterlyEarningsGrowthYOY)
		data["revenue_growth"] = fraction(hl.QuarterlyRevenueGrowthYOY)
		data["profit_margin"] = fraction(hl.ProfitMargin)
		data["operating_margin"] = fraction(hl.OperatingMarginTTM)
		data["return_on_assets"] = fraction(hl.ReturnOnAssetsTTM)
		data["return_on_equity"] = fraction(hl.ReturnOnEquityTTM)
	}
	return data
}

// History returns the daily price series for the date range, oldest first.
// Failures and empty ranges both yield an empty series.
func (g *Gateway) History(ctx context.Context, symbol string, from, to time.Time) []report.PriceBar {
	if from.After(to) {
		g.logger.Warn().Str("symbol", symbol).Msg("Inverted date range for price history")
		return nil
	}

	resp, err := g.client.GetEOD(ctx, symbol, eodhd.WithDateRange(from, to), eodhd.WithOrder("a"))
	if err != nil {
		g.logger.Warn().Err(err).Str("symbol", symbol).Msg("Price history fetch failed, market performance degraded")
		return nil
	}

	bars := make([]report.PriceBar, 0, len(resp))
	for _, d := range resp {
		bars = append(bars, report.PriceBar{
			Date:   d.Date,
			Open:   d.Open,
			High:   d.High,
			Low:    d.Low,
			Close:  d.Close,
			Volume: d.Volume,
		})
	}
	return bars
}

// Recommendations returns the most recent analyst recommendation snapshot.
// Counts are meaningful zeros when the snapshot exists; everything is
// unavailable when no recommendation history exists.
func (g *Gateway) Recommendations(ctx context.Context, symbol string) map[string]report.Value {
	funds := g.fundamentals(ctx, symbol)
	if funds == nil || funds.AnalystRatings == nil {
		return map[string]report.Value{}
	}

	ratings := funds.AnalystRatings
	return map[string]report.Value{
		"target_price": currency(ratings.TargetPrice),
		"rating":       metric(ratings.Rating),
		"strong_buy":   report.Count(float64(ratings.StrongBuy)),
		"buy":          report.Count(float64(ratings.Buy)),
		"hold":         report.Count(float64(ratings.Hold)),
		"sell":         report.Count(float64(ratings.Sell)),
		"strong_sell":  report.Count(float64(ratings.StrongSell)),
	}
}

// SectorIndustry returns the sector/industry classification fields.
func (g *Gateway) SectorIndustry(ctx context.Context, symbol string) map[string]report.Value {
	funds := g.fundamentals(ctx, symbol)
	if funds == nil || funds.General == nil {
		return map[string]report.Value{}
	}

	gen := funds.General
	return map[string]report.Value{
		"sector":           report.Str(gen.Sector),
		"industry":         report.Str(gen.Industry),
		"gic_sector":       report.Str(gen.GicSector),
		"gic_group":        report.Str(gen.GicGroup),
		"gic_industry":     report.Str(gen.GicIndustry),
		"gic_sub_industry": report.Str(gen.GicSubIndustry),
	}
}

// News returns recent headlines for the symbol, newest first.
func (g *Gateway) News(ctx context.Context, symbol string) []report.NewsItem {
	resp, err := g.client.GetNews(ctx, []string{symbol}, eodhd.WithLimit(g.newsLimit))
	if err != nil {
		g.logger.Warn().Err(err).Str("symbol", symbol).Msg("News fetch failed, section degraded")
		return nil
	}

	items := make([]report.NewsItem, 0, len(resp))
	for _, n := range resp {
		items = append(items, report.NewsItem{
			Title:     n.Title,
			Publisher: publisherFromLink(n.Link),
			Link:      n.Link,
			Published: n.Date,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})
	return items
}

// metric wraps a provider float where zero means the field was absent
// from the payload (EODHD omits by zero value).
func metric(f float64) report.Value {
	if f == 0 {
		return report.Unavailable()
	}
	return report.Number(f)
}

// currency is metric with dollar formatting.
func currency(f float64) report.Value {
	if f == 0 {
		return report.Unavailable()
	}
	return report.Currency(f)
}

// fraction converts a provider ratio (0.2531) to a display percentage.
func fraction(f float64) report.Value {
	if f == 0 {
		return report.Unavailable()
	}
	return report.Percent(f * 100)
}

// latestQuarterly extracts a line item from the most recent quarterly
// period that carries it. Period keys are dates, so a descending string
// sort walks newest to oldest.
func latestQuarterly(stmt *eodhd.FinancialStatement, field string) report.Value {
	if stmt == nil || len(stmt.Quarterly) == 0 {
		return report.Unavailable()
	}

	dates := make([]string, 0, len(stmt.Quarterly))
	for date := range stmt.Quarterly {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	for _, date := range dates {
		if raw, ok := stmt.Quarterly[date][field]; ok {
			if f, ok := toFloat(raw); ok {
				return report.Currency(f)
			}
		}
	}
	return report.Unavailable()
}

// toFloat converts a statement line-item value, which the API returns as
// either a number or a numeric string.
func toFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// publisherFromLink derives a display publisher from the article URL host.
func publisherFromLink(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	host := u.Host
	if len(host) > 4 && host[:4] == "www." {
		host = host[4:]
	}
	return host
}
