package common

import (
	"testing"
)

func TestParseTicker(t *testing.T) {
	// Ensure default exchange is US for these tests
	originalDefault := DefaultExchange
	DefaultExchange = "US"
	defer func() { DefaultExchange = originalDefault }()

	tests := []struct {
		input        string
		wantExchange string
		wantCode     string
		wantString   string
		wantEODHD    string
	}{
		// Exchange-qualified format with colon separator
		{"NASDAQ:AAPL", "NASDAQ", "AAPL", "NASDAQ:AAPL", "AAPL.US"},
		{"NYSE:IBM", "NYSE", "IBM", "NYSE:IBM", "IBM.US"},
		{"ASX:GNP", "ASX", "GNP", "ASX:GNP", "GNP.AU"},
		{"LSE:VOD", "LSE", "VOD", "LSE:VOD", "VOD.LSE"},

		// Exchange-qualified format with dot separator (EXCHANGE.CODE)
		{"NASDAQ.MSFT", "NASDAQ", "MSFT", "NASDAQ:MSFT", "MSFT.US"},
		{"ASX.GNP", "ASX", "GNP", "ASX:GNP", "GNP.AU"},

		// Bare code defaults to US
		{"AAPL", "US", "AAPL", "US:AAPL", "AAPL.US"},
		{"MSFT", "US", "MSFT", "US:MSFT", "MSFT.US"},

		// Case normalization
		{"nasdaq:aapl", "NASDAQ", "AAPL", "NASDAQ:AAPL", "AAPL.US"},
		{"aapl", "US", "AAPL", "US:AAPL", "AAPL.US"},

		// Whitespace handling
		{"  NASDAQ:AAPL  ", "NASDAQ", "AAPL", "NASDAQ:AAPL", "AAPL.US"},
		{"  AAPL  ", "US", "AAPL", "US:AAPL", "AAPL.US"},

		// Unknown exchange falls back to .US suffix
		{"FOO:BAR", "FOO", "BAR", "FOO:BAR", "BAR.US"},

		// Empty input
		{"", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseTicker(tt.input)

			if result.Exchange != tt.wantExchange {
				t.Errorf("Exchange = %q, want %q", result.Exchange, tt.wantExchange)
			}
			if result.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", result.Code, tt.wantCode)
			}
			if result.String() != tt.wantString {
				t.Errorf("String() = %q, want %q", result.String(), tt.wantString)
			}
			if result.EODHDSymbol() != tt.wantEODHD {
				t.Errorf("EODHDSymbol() = %q, want %q", result.EODHDSymbol(), tt.wantEODHD)
			}
		})
	}
}

func TestSetDefaultExchange(t *testing.T) {
	originalDefault := DefaultExchange
	defer func() { DefaultExchange = originalDefault }()

	SetDefaultExchange("asx")
	if DefaultExchange != "ASX" {
		t.Errorf("DefaultExchange = %q, want ASX", DefaultExchange)
	}
	if got := ParseTicker("GNP").EODHDSymbol(); got != "GNP.AU" {
		t.Errorf("EODHDSymbol() = %q, want GNP.AU", got)
	}

	// Empty string leaves the default untouched
	SetDefaultExchange("")
	if DefaultExchange != "ASX" {
		t.Errorf("DefaultExchange = %q after empty set", DefaultExchange)
	}
}

func TestParseTickers(t *testing.T) {
	input := []string{"NASDAQ:AAPL", "ASX:GNP", "MSFT", "  ", ""}
	result := ParseTickers(input)

	if len(result) != 3 {
		t.Fatalf("ParseTickers returned %d tickers, want 3", len(result))
	}

	expected := []string{"AAPL", "GNP", "MSFT"}
	for i, ticker := range result {
		if ticker.Code != expected[i] {
			t.Errorf("result[%d].Code = %q, want %q", i, ticker.Code, expected[i])
		}
	}
}
