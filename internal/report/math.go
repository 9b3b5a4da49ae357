package report

import "math"

// avg calculates the average of all values
func avg(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev calculates the sample standard deviation
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := avg(values)
	sumSquares := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)-1))
}

// pctChange calculates the percentage change from old to new
func pctChange(old, newVal float64) float64 {
	if old == 0 {
		return 0
	}
	return ((newVal - old) / old) * 100
}
