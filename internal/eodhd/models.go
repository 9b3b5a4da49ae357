package eodhd

import "time"

// EODData represents a single day's end-of-day price data.
type EODData struct {
	Date          time.Time `json:"-"`
	DateStr       string    `json:"date"`
	Open          float64   `json:"open"`
	High          float64   `json:"high"`
	Low           float64   `json:"low"`
	Close         float64   `json:"close"`
	AdjustedClose float64   `json:"adjusted_close"`
	Volume        int64     `json:"volume"`
}

// EODResponse is a slice of EODData.
type EODResponse []EODData

// NewsItem represents a single news article.
type NewsItem struct {
	Date    time.Time `json:"-"`
	DateStr string    `json:"date"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	Link    string    `json:"link"`
	Symbols []string  `json:"symbols"`
	Tags    []string  `json:"tags"`
}

// NewsResponse is a slice of NewsItem.
type NewsResponse []NewsItem

// SearchResult represents one hit from the symbol search endpoint.
type SearchResult struct {
	Code          string  `json:"Code"`
	Exchange      string  `json:"Exchange"`
	Name          string  `json:"Name"`
	Type          string  `json:"Type"`
	Country       string  `json:"Country"`
	Currency      string  `json:"Currency"`
	ISIN          string  `json:"ISIN"`
	PreviousClose float64 `json:"previousClose"`
}

// SearchResponse is a slice of SearchResult.
type SearchResponse []SearchResult

// FundamentalsResponse represents the fundamentals data for a symbol.
// Top-level groups the API does not return come back as nil pointers;
// callers must treat a nil group as "no data".
type FundamentalsResponse struct {
	General         *GeneralInfo     `json:"General"`
	Highlights      *Highlights      `json:"Highlights"`
	Valuation       *Valuation       `json:"Valuation"`
	Technicals      *Technicals      `json:"Technicals"`
	SplitsDividends *SplitsDividends `json:"SplitsDividends"`
	AnalystRatings  *AnalystRatings  `json:"AnalystRatings"`
	Financials      *Financials      `json:"Financials"`
}

// GeneralInfo contains general company information.
type GeneralInfo struct {
	Code              string `json:"Code"`
	Type              string `json:"Type"`
	Name              string `json:"Name"`
	Exchange          string `json:"Exchange"`
	CurrencyCode      string `json:"CurrencyCode"`
	CurrencyName      string `json:"CurrencyName"`
	CountryName       string `json:"CountryName"`
	Sector            string `json:"Sector"`
	Industry          string `json:"Industry"`
	GicSector         string `json:"GicSector"`
	GicGroup          string `json:"GicGroup"`
	GicIndustry       string `json:"GicIndustry"`
	GicSubIndustry    string `json:"GicSubIndustry"`
	IsDelisted        bool   `json:"IsDelisted"`
	Description       string `json:"Description"`
	WebURL            string `json:"WebURL"`
	FullTimeEmployees int    `json:"FullTimeEmployees"`
	UpdatedAt         string `json:"UpdatedAt"`
}

// Highlights contains key financial highlights.
type Highlights struct {
	MarketCapitalization       float64 `json:"MarketCapitalization"`
	EBITDA                     float64 `json:"EBITDA"`
	PERatio                    float64 `json:"PERatio"`
	PEGRatio                   float64 `json:"PEGRatio"`
	WallStreetTargetPrice      float64 `json:"WallStreetTargetPrice"`
	BookValue                  float64 `json:"BookValue"`
	DividendShare              float64 `json:"DividendShare"`
	DividendYield              float64 `json:"DividendYield"`
	EarningsShare              float64 `json:"EarningsShare"`
	MostRecentQuarter          string  `json:"MostRecentQuarter"`
	ProfitMargin               float64 `json:"ProfitMargin"`
	OperatingMarginTTM         float64 `json:"OperatingMarginTTM"`
	ReturnOnAssetsTTM          float64 `json:"ReturnOnAssetsTTM"`
	ReturnOnEquityTTM          float64 `json:"ReturnOnEquityTTM"`
	RevenueTTM                 float64 `json:"RevenueTTM"`
	QuarterlyRevenueGrowthYOY  float64 `json:"QuarterlyRevenueGrowthYOY"`
	QuarterlyEarningsGrowthYOY float64 `json:"QuarterlyEarningsGrowthYOY"`
}

// Valuation contains valuation metrics.
type Valuation struct {
	TrailingPE             float64 `json:"TrailingPE"`
	ForwardPE              float64 `json:"ForwardPE"`
	PriceSalesTTM          float64 `json:"PriceSalesTTM"`
	PriceBookMRQ           float64 `json:"PriceBookMRQ"`
	EnterpriseValue        float64 `json:"EnterpriseValue"`
	EnterpriseValueRevenue float64 `json:"EnterpriseValueRevenue"`
	EnterpriseValueEbitda  float64 `json:"EnterpriseValueEbitda"`
}

// Technicals contains technical analysis data.
type Technicals struct {
	Beta             float64 `json:"Beta"`
	FiftyTwoWeekHigh float64 `json:"52WeekHigh"`
	FiftyTwoWeekLow  float64 `json:"52WeekLow"`
	FiftyDayMA       float64 `json:"50DayMA"`
	TwoHundredDayMA  float64 `json:"200DayMA"`
}

// SplitsDividends contains splits and dividend information.
type SplitsDividends struct {
	ForwardAnnualDividendRate  float64 `json:"ForwardAnnualDividendRate"`
	ForwardAnnualDividendYield float64 `json:"ForwardAnnualDividendYield"`
	PayoutRatio                float64 `json:"PayoutRatio"`
	DividendDate               string  `json:"DividendDate"`
	ExDividendDate             string  `json:"ExDividendDate"`
}

// AnalystRatings contains the most recent analyst recommendation snapshot.
type AnalystRatings struct {
	Rating      float64 `json:"Rating"`
	TargetPrice float64 `json:"TargetPrice"`
	StrongBuy   int     `json:"StrongBuy"`
	Buy         int     `json:"Buy"`
	Hold        int     `json:"Hold"`
	Sell        int     `json:"Sell"`
	StrongSell  int     `json:"StrongSell"`
}

// Financials contains financial statements.
type Financials struct {
	BalanceSheet    *FinancialStatement `json:"Balance_Sheet"`
	CashFlow        *FinancialStatement `json:"Cash_Flow"`
	IncomeStatement *FinancialStatement `json:"Income_Statement"`
}

// FinancialStatement represents a financial statement with quarterly and
// yearly data, keyed by period end date. Line-item values arrive as
// strings or numbers depending on the endpoint, hence interface{}.
type FinancialStatement struct {
	Currency  string                            `json:"currency"`
	Quarterly map[string]map[string]interface{} `json:"quarterly"`
	Yearly    map[string]map[string]interface{} `json:"yearly"`
}
