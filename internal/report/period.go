package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidPeriod is returned when the reporting period fails validation.
// It is a structural error: the pipeline run for that ticker aborts.
var ErrInvalidPeriod = errors.New("invalid reporting period")

// Quarter is a calendar quarter identifier.
type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

// Period is a (year, quarter) reporting period.
type Period struct {
	Year    int
	Quarter Quarter
}

// NewPeriod validates and constructs a reporting period. The quarter string
// is case-insensitive ("q4" is accepted).
func NewPeriod(year int, quarter string) (Period, error) {
	q := Quarter(strings.ToUpper(strings.TrimSpace(quarter)))
	switch q {
	case Q1, Q2, Q3, Q4:
	default:
		return Period{}, fmt.Errorf("%w: quarter must be one of Q1, Q2, Q3, Q4, got %q", ErrInvalidPeriod, quarter)
	}
	if year < 1900 || year > 2200 {
		return Period{}, fmt.Errorf("%w: year %d out of range", ErrInvalidPeriod, year)
	}
	return Period{Year: year, Quarter: q}, nil
}

// Bounds returns the quarter's fixed calendar start and end dates (UTC).
func (p Period) Bounds() (time.Time, time.Time) {
	var startMonth, endMonth time.Month
	var endDay int
	switch p.Quarter {
	case Q1:
		startMonth, endMonth, endDay = time.January, time.March, 31
	case Q2:
		startMonth, endMonth, endDay = time.April, time.June, 30
	case Q3:
		startMonth, endMonth, endDay = time.July, time.September, 30
	default:
		startMonth, endMonth, endDay = time.October, time.December, 31
	}
	start := time.Date(p.Year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(p.Year, endMonth, endDay, 0, 0, 0, 0, time.UTC)
	return start, end
}

// String returns the period as "2024 Q4".
func (p Period) String() string {
	return fmt.Sprintf("%d %s", p.Year, p.Quarter)
}
