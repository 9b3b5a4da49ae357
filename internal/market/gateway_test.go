package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/equitas/internal/eodhd"
)

// fakeClient serves canned EODHD payloads and records call counts.
type fakeClient struct {
	eod          eodhd.EODResponse
	eodErr       error
	fundamentals *eodhd.FundamentalsResponse
	fundsErr     error
	fundsCalls   int
	news         eodhd.NewsResponse
	newsErr      error
}

func (c *fakeClient) GetEOD(ctx context.Context, symbol string, opts ...eodhd.QueryOption) (eodhd.EODResponse, error) {
	return c.eod, c.eodErr
}

func (c *fakeClient) GetFundamentals(ctx context.Context, symbol string) (*eodhd.FundamentalsResponse, error) {
	c.fundsCalls++
	return c.fundamentals, c.fundsErr
}

func (c *fakeClient) GetNews(ctx context.Context, symbols []string, opts ...eodhd.QueryOption) (eodhd.NewsResponse, error) {
	return c.news, c.newsErr
}

func fullFundamentals() *eodhd.FundamentalsResponse {
	return &eodhd.FundamentalsResponse{
		General: &eodhd.GeneralInfo{
			Name:              "Apple Inc",
			Exchange:          "NASDAQ",
			CurrencyCode:      "USD",
			Sector:            "Technology",
			Industry:          "Consumer Electronics",
			GicSector:         "Information Technology",
			GicGroup:          "Technology Hardware & Equipment",
			FullTimeEmployees: 161000,
		},
		Highlights: &eodhd.Highlights{
			MarketCapitalization:       2.95e12,
			ProfitMargin:               0.2531,
			OperatingMarginTTM:         0.3017,
			ReturnOnAssetsTTM:          0.2118,
			ReturnOnEquityTTM:          1.4725,
			QuarterlyRevenueGrowthYOY:  0.061,
			QuarterlyEarningsGrowthYOY: 0.111,
		},
		Valuation: &eodhd.Valuation{
			TrailingPE:    29.5,
			ForwardPE:     27.1,
			PriceSalesTTM: 7.6,
			PriceBookMRQ:  44.9,
		},
		Technicals: &eodhd.Technicals{
			Beta:             1.25,
			FiftyTwoWeekHigh: 199.62,
			FiftyTwoWeekLow:  123.15,
		},
		SplitsDividends: &eodhd.SplitsDividends{
			ForwardAnnualDividendRate:  0.96,
			ForwardAnnualDividendYield: 0.0052,
			PayoutRatio:                0.1547,
		},
		AnalystRatings: &eodhd.AnalystRatings{
			Rating:      4.2,
			TargetPrice: 210.5,
			StrongBuy:   18,
			Buy:         12,
			Hold:        7,
			Sell:        0,
			StrongSell:  1,
		},
		Financials: &eodhd.Financials{
			IncomeStatement: &eodhd.FinancialStatement{
				Quarterly: map[string]map[string]interface{}{
					"2024-09-30": {"totalRevenue": "94930000000", "netIncome": 14736000000.0},
					"2024-06-30": {"totalRevenue": "85777000000", "netIncome": 21448000000.0},
				},
			},
			CashFlow: &eodhd.FinancialStatement{
				Quarterly: map[string]map[string]interface{}{
					"2024-09-30": {"totalCashFromOperatingActivities": 26811000000.0},
					"2024-06-30": {"capitalExpenditures": "2151000000"},
				},
			},
		},
	}
}

func TestOverviewFields(t *testing.T) {
	gw := NewGateway(&fakeClient{fundamentals: fullFundamentals()}, 5, arbor.NewLogger())

	data := gw.Overview(context.Background(), "AAPL.US")

	assert.Equal(t, "Apple Inc", data["name"].Display())
	assert.Equal(t, "Technology", data["sector"].Display())
	assert.Equal(t, "USD", data["currency"].Display())
	assert.Equal(t, "161000", data["employees"].Display())
	assert.Equal(t, "$2,950,000,000,000.00", data["market_cap"].Display())
	// snapshot extras for the market performance overlay
	assert.Equal(t, "$199.62", data["52_week_high"].Display())
	assert.Equal(t, "1.25", data["beta"].Display())
}

func TestOverviewDegradesOnFailure(t *testing.T) {
	gw := NewGateway(&fakeClient{fundsErr: errors.New("upstream down")}, 5, arbor.NewLogger())

	data := gw.Overview(context.Background(), "AAPL.US")

	assert.Empty(t, data)
}

func TestFinancialsLatestQuarterly(t *testing.T) {
	gw := NewGateway(&fakeClient{fundamentals: fullFundamentals()}, 5, arbor.NewLogger())

	data := gw.Financials(context.Background(), "AAPL.US")

	// latest quarter wins, numeric strings parse
	assert.Equal(t, "$94,930,000,000.00", data["revenue"].Display())
	assert.Equal(t, "$14,736,000,000.00", data["net_income"].Display())
	// line items resolve independently: capex only exists in the older quarter
	assert.Equal(t, "$26,811,000,000.00", data["operating_cash_flow"].Display())
	assert.Equal(t, "$2,151,000,000.00", data["capital_expenditure"].Display())
	// fractions convert to display percentages
	assert.Equal(t, "25.31%", data["profit_margin"].Display())
	assert.Equal(t, "0.52%", data["dividend_yield"].Display())
	assert.Equal(t, "29.50", data["trailing_pe_ratio"].Display())
}

func TestRecommendationsCountsAreMeaningfulZeros(t *testing.T) {
	gw := NewGateway(&fakeClient{fundamentals: fullFundamentals()}, 5, arbor.NewLogger())

	data := gw.Recommendations(context.Background(), "AAPL.US")

	require.Contains(t, data, "sell")
	assert.True(t, data["sell"].IsAvailable(), "zero count with a snapshot present is data")
	assert.Equal(t, "0", data["sell"].Display())
	assert.Equal(t, "18", data["strong_buy"].Display())
	assert.Equal(t, "$210.50", data["target_price"].Display())
}

func TestRecommendationsDegradeWithoutSnapshot(t *testing.T) {
	funds := fullFundamentals()
	funds.AnalystRatings = nil
	gw := NewGateway(&fakeClient{fundamentals: funds}, 5, arbor.NewLogger())

	data := gw.Recommendations(context.Background(), "AAPL.US")

	assert.Empty(t, data)
}

func TestFundamentalsFetchedOnce(t *testing.T) {
	client := &fakeClient{fundamentals: fullFundamentals()}
	gw := NewGateway(client, 5, arbor.NewLogger())
	ctx := context.Background()

	gw.Overview(ctx, "AAPL.US")
	gw.Financials(ctx, "AAPL.US")
	gw.Recommendations(ctx, "AAPL.US")
	gw.SectorIndustry(ctx, "AAPL.US")

	assert.Equal(t, 1, client.fundsCalls, "fundamentals should be memoized per symbol")
}

func TestHistoryMapsBars(t *testing.T) {
	day := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	client := &fakeClient{
		eod: eodhd.EODResponse{
			{Date: day, Open: 150, High: 152, Low: 149, Close: 151, Volume: 1000},
			{Date: day.AddDate(0, 0, 1), Open: 151, High: 155, Low: 150, Close: 154, Volume: 2000},
		},
	}
	gw := NewGateway(client, 5, arbor.NewLogger())

	bars := gw.History(context.Background(), "AAPL.US", day, day.AddDate(0, 0, 30))

	require.Len(t, bars, 2)
	assert.Equal(t, 151.0, bars[0].Close)
	assert.Equal(t, int64(2000), bars[1].Volume)
}

func TestHistoryDegradesOnFailure(t *testing.T) {
	gw := NewGateway(&fakeClient{eodErr: errors.New("rate limited")}, 5, arbor.NewLogger())

	bars := gw.History(context.Background(), "AAPL.US", time.Now().AddDate(0, -3, 0), time.Now())

	assert.Empty(t, bars)
}

func TestHistoryRejectsInvertedRange(t *testing.T) {
	gw := NewGateway(&fakeClient{eod: eodhd.EODResponse{{Close: 1}}}, 5, arbor.NewLogger())

	to := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	bars := gw.History(context.Background(), "AAPL.US", to.AddDate(0, 3, 0), to)

	assert.Empty(t, bars)
}

func TestNewsNewestFirst(t *testing.T) {
	base := time.Date(2024, 12, 18, 0, 0, 0, 0, time.UTC)
	client := &fakeClient{
		news: eodhd.NewsResponse{
			{Title: "older", Link: "https://www.example.com/a", Date: base},
			{Title: "newest", Link: "https://news.example.org/b", Date: base.AddDate(0, 0, 2)},
		},
	}
	gw := NewGateway(client, 5, arbor.NewLogger())

	items := gw.News(context.Background(), "AAPL.US")

	require.Len(t, items, 2)
	assert.Equal(t, "newest", items[0].Title)
	assert.Equal(t, "news.example.org", items[0].Publisher)
	assert.Equal(t, "example.com", items[1].Publisher, "www prefix stripped")
}

func TestNewsDegradesOnFailure(t *testing.T) {
	gw := NewGateway(&fakeClient{newsErr: errors.New("timeout")}, 5, arbor.NewLogger())

	items := gw.News(context.Background(), "AAPL.US")

	assert.Empty(t, items)
}
