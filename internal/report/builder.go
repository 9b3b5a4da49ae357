package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
)

// ErrInvalidTicker is returned when the ticker symbol fails structural
// validation before any upstream call is made.
var ErrInvalidTicker = errors.New("invalid ticker symbol")

// Gateway is the market-data source the builder consumes. Each method
// covers one section's data needs and never fails: a whole-call upstream
// error degrades to unavailable markers (or an empty series) so one
// provider hiccup degrades one section rather than aborting the report.
type Gateway interface {
	Overview(ctx context.Context, symbol string) map[string]Value
	Financials(ctx context.Context, symbol string) map[string]Value
	History(ctx context.Context, symbol string, from, to time.Time) []PriceBar
	Recommendations(ctx context.Context, symbol string) map[string]Value
	SectorIndustry(ctx context.Context, symbol string) map[string]Value
	News(ctx context.Context, symbol string) []NewsItem
}

// Builder assembles the fixed, ordered section list for one ticker and
// reporting period.
type Builder struct {
	gateway Gateway
	logger  arbor.ILogger
}

// NewBuilder creates a section builder on top of a market-data gateway.
func NewBuilder(gateway Gateway, logger arbor.ILogger) *Builder {
	return &Builder{
		gateway: gateway,
		logger:  logger,
	}
}

// Build fetches and normalizes every section for the given ticker and
// period and returns the assembled document, without insights.
//
// Only structural problems (empty ticker, invalid period) are fatal.
// Per-section gateway calls run concurrently; they are independent, and a
// failure in one never cancels the others.
func (b *Builder) Build(ctx context.Context, symbol string, period Period) (*Document, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty symbol", ErrInvalidTicker)
	}
	if _, err := NewPeriod(period.Year, string(period.Quarter)); err != nil {
		return nil, err
	}

	start, end := period.Bounds()

	b.logger.Info().
		Str("symbol", symbol).
		Str("period", period.String()).
		Msg("Building report sections")

	var (
		wg              sync.WaitGroup
		overview        map[string]Value
		financials      map[string]Value
		history         []PriceBar
		recommendations map[string]Value
		sectorIndustry  map[string]Value
		news            []NewsItem
	)

	fetch := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	fetch(func() { overview = b.gateway.Overview(ctx, symbol) })
	fetch(func() { financials = b.gateway.Financials(ctx, symbol) })
	fetch(func() { history = b.gateway.History(ctx, symbol, start, end) })
	fetch(func() { recommendations = b.gateway.Recommendations(ctx, symbol) })
	fetch(func() { sectorIndustry = b.gateway.SectorIndustry(ctx, symbol) })
	fetch(func() { news = b.gateway.News(ctx, symbol) })
	wg.Wait()

	marketData := b.deriveMarketPerformance(history)
	// 52-week range and beta come from the provider snapshot, not the
	// quarter's series; overlay them onto the derived statistics.
	for _, key := range []string{"52_week_high", "52_week_low", "beta"} {
		if v, ok := overview[key]; ok {
			marketData[key] = v
		}
	}

	newsSection := NewSection(RecentNews, summarizeNews(news))
	newsSection.News = news

	doc := &Document{
		Ticker:      symbol,
		GeneratedOn: time.Now().UTC(),
		Period:      period,
		Sections: []*Section{
			NewSection(CompanyOverview, overview),
			NewSection(FinancialPerformance, financials),
			NewSection(MarketPerformance, marketData),
			NewSection(AnalystRecommendations, recommendations),
			NewSection(SectorIndustry, sectorIndustry),
			newsSection,
		},
	}

	return doc, nil
}

// deriveMarketPerformance computes the quarter's price statistics from the
// historical series. An empty series yields unavailable markers for every
// derived field; NewSection fills those in from the empty map.
//
// The average volume is derived from the requested range's series; the
// provider's own reported average is not consulted, so there is a single
// source of truth for the figure.
func (b *Builder) deriveMarketPerformance(history []PriceBar) map[string]Value {
	if len(history) == 0 {
		b.logger.Warn().Msg("No price history for requested period, market performance degraded")
		return map[string]Value{}
	}

	closes := make([]float64, len(history))
	maxHigh := history[0].High
	minLow := history[0].Low
	var volumeSum, maxVolume int64
	for i, bar := range history {
		closes[i] = bar.Close
		if bar.High > maxHigh {
			maxHigh = bar.High
		}
		if bar.Low < minLow {
			minLow = bar.Low
		}
		volumeSum += bar.Volume
		if bar.Volume > maxVolume {
			maxVolume = bar.Volume
		}
	}

	meanClose := avg(closes)
	data := map[string]Value{
		"current_price": Currency(closes[len(closes)-1]),
		"average_price": Currency(meanClose),
		"price_change":  Percent(pctChange(closes[0], closes[len(closes)-1])),
		"volatility":    Number(stddev(closes)),
		"max_volume":    Count(float64(maxVolume)),
	}
	if meanClose != 0 {
		data["high_low_spread"] = Percent((maxHigh - minLow) / meanClose * 100)
	}
	data["average_volume"] = Count(float64(volumeSum) / float64(len(history)))
	return data
}

// summarizeNews reduces the headline list to the Recent News section's
// scalar fields so the section flattens into the tabular export like any
// other.
func summarizeNews(news []NewsItem) map[string]Value {
	if len(news) == 0 {
		return map[string]Value{}
	}
	data := map[string]Value{
		"article_count":   Count(float64(len(news))),
		"latest_headline": Str(news[0].Title),
	}
	if !news[0].Published.IsZero() {
		data["latest_published"] = Str(news[0].Published.Format("2006-01-02"))
	}
	return data
}
