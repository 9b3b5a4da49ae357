package eodhd

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testServer(t *testing.T, wantPath string, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var captured http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r
		if wantPath != "" && r.URL.Path != wantPath {
			t.Errorf("request path = %s, want %s", r.URL.Path, wantPath)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestGetEOD(t *testing.T) {
	body := `[
		{"date": "2024-10-01", "open": 150, "high": 152, "low": 149, "close": 151, "adjusted_close": 151, "volume": 1000},
		{"date": "2024-10-02", "open": 151, "high": 155, "low": 150, "close": 154, "adjusted_close": 154, "volume": 2000}
	]`
	srv, captured := testServer(t, "/eod/AAPL.US", http.StatusOK, body)
	client := NewClient("test-key", WithBaseURL(srv.URL))

	from := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	result, err := client.GetEOD(context.Background(), "AAPL.US", WithDateRange(from, to))
	if err != nil {
		t.Fatalf("GetEOD: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("got %d bars, want 2", len(result))
	}
	if result[0].Close != 151 {
		t.Errorf("close = %v", result[0].Close)
	}
	if !result[0].Date.Equal(from) {
		t.Errorf("date = %v, want %v", result[0].Date, from)
	}

	q := captured.URL.Query()
	if q.Get("api_token") != "test-key" {
		t.Errorf("api_token = %q", q.Get("api_token"))
	}
	if q.Get("from") != "2024-10-01" || q.Get("to") != "2024-12-31" {
		t.Errorf("date range = %q..%q", q.Get("from"), q.Get("to"))
	}
	if q.Get("period") != "d" {
		t.Errorf("period = %q, want d", q.Get("period"))
	}
}

func TestGetFundamentals(t *testing.T) {
	body := `{
		"General": {"Name": "Apple Inc", "Sector": "Technology", "FullTimeEmployees": 161000},
		"Technicals": {"Beta": 1.25, "52WeekHigh": 199.62, "52WeekLow": 123.15},
		"Financials": {"Income_Statement": {"quarterly": {"2024-09-30": {"totalRevenue": "94930000000"}}}}
	}`
	srv, _ := testServer(t, "/fundamentals/AAPL.US", http.StatusOK, body)
	client := NewClient("test-key", WithBaseURL(srv.URL))

	result, err := client.GetFundamentals(context.Background(), "AAPL.US")
	if err != nil {
		t.Fatalf("GetFundamentals: %v", err)
	}

	if result.General == nil || result.General.Name != "Apple Inc" {
		t.Errorf("General = %+v", result.General)
	}
	if result.Technicals.FiftyTwoWeekHigh != 199.62 {
		t.Errorf("52WeekHigh = %v", result.Technicals.FiftyTwoWeekHigh)
	}
	if result.Highlights != nil {
		t.Error("absent group should stay nil")
	}
	if result.Financials.IncomeStatement.Quarterly["2024-09-30"]["totalRevenue"] != "94930000000" {
		t.Error("quarterly line item not decoded")
	}
}

func TestGetNews(t *testing.T) {
	body := `[
		{"date": "2024-12-20 09:30:00", "title": "Apple ships new thing", "link": "https://example.com/a", "symbols": ["AAPL.US"]}
	]`
	srv, captured := testServer(t, "/news", http.StatusOK, body)
	client := NewClient("test-key", WithBaseURL(srv.URL))

	result, err := client.GetNews(context.Background(), []string{"AAPL.US"}, WithLimit(5))
	if err != nil {
		t.Fatalf("GetNews: %v", err)
	}

	if len(result) != 1 || result[0].Title != "Apple ships new thing" {
		t.Fatalf("result = %+v", result)
	}
	want := time.Date(2024, 12, 20, 9, 30, 0, 0, time.UTC)
	if !result[0].Date.Equal(want) {
		t.Errorf("date = %v, want %v", result[0].Date, want)
	}

	q := captured.URL.Query()
	if q.Get("s") != "AAPL.US" {
		t.Errorf("s = %q", q.Get("s"))
	}
	if q.Get("limit") != "5" {
		t.Errorf("limit = %q", q.Get("limit"))
	}
}

func TestSearch(t *testing.T) {
	body := `[{"Code": "AAPL", "Exchange": "US", "Name": "Apple Inc", "Currency": "USD"}]`
	srv, _ := testServer(t, "/search/apple", http.StatusOK, body)
	client := NewClient("test-key", WithBaseURL(srv.URL))

	result, err := client.Search(context.Background(), "apple")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result) != 1 || result[0].Code != "AAPL" {
		t.Fatalf("result = %+v", result)
	}
}

func TestAPIErrorOnNon200(t *testing.T) {
	srv, _ := testServer(t, "", http.StatusForbidden, `{"error": "invalid token"}`)
	client := NewClient("bad-key", WithBaseURL(srv.URL))

	_, err := client.GetFundamentals(context.Background(), "AAPL.US")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
}
