package report

import (
	"errors"
	"testing"
	"time"
)

func TestNewPeriod(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		quarter string
		want    Quarter
		wantErr bool
	}{
		{
			name:    "valid Q4",
			year:    2024,
			quarter: "Q4",
			want:    Q4,
		},
		{
			name:    "lowercase quarter accepted",
			year:    2024,
			quarter: "q2",
			want:    Q2,
		},
		{
			name:    "whitespace trimmed",
			year:    2023,
			quarter: " Q1 ",
			want:    Q1,
		},
		{
			name:    "Q5 rejected",
			year:    2024,
			quarter: "Q5",
			wantErr: true,
		},
		{
			name:    "empty quarter rejected",
			year:    2024,
			quarter: "",
			wantErr: true,
		},
		{
			name:    "year out of range",
			year:    1776,
			quarter: "Q1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPeriod(tt.year, tt.quarter)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewPeriod(%d, %q) expected error, got %v", tt.year, tt.quarter, p)
				}
				if !errors.Is(err, ErrInvalidPeriod) {
					t.Errorf("error %v is not ErrInvalidPeriod", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewPeriod(%d, %q) unexpected error: %v", tt.year, tt.quarter, err)
			}
			if p.Quarter != tt.want {
				t.Errorf("quarter = %s, want %s", p.Quarter, tt.want)
			}
			if p.Year != tt.year {
				t.Errorf("year = %d, want %d", p.Year, tt.year)
			}
		})
	}
}

func TestPeriodBounds(t *testing.T) {
	tests := []struct {
		name      string
		period    Period
		wantStart string
		wantEnd   string
	}{
		{
			name:      "Q1 calendar bounds",
			period:    Period{Year: 2024, Quarter: Q1},
			wantStart: "2024-01-01",
			wantEnd:   "2024-03-31",
		},
		{
			name:      "Q2 calendar bounds",
			period:    Period{Year: 2024, Quarter: Q2},
			wantStart: "2024-04-01",
			wantEnd:   "2024-06-30",
		},
		{
			name:      "Q3 calendar bounds",
			period:    Period{Year: 2024, Quarter: Q3},
			wantStart: "2024-07-01",
			wantEnd:   "2024-09-30",
		},
		{
			name:      "Q4 calendar bounds",
			period:    Period{Year: 2024, Quarter: Q4},
			wantStart: "2024-10-01",
			wantEnd:   "2024-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.period.Bounds()
			if got := start.Format("2006-01-02"); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format("2006-01-02"); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
			if start.Location() != time.UTC || end.Location() != time.UTC {
				t.Error("bounds must be UTC")
			}
		})
	}
}

func TestPeriodString(t *testing.T) {
	p := Period{Year: 2024, Quarter: Q4}
	if got := p.String(); got != "2024 Q4" {
		t.Errorf("String() = %q, want %q", got, "2024 Q4")
	}
}
