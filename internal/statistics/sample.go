// Package statistics summarises simulated matches: match lengths and how
// pots were won.
package statistics

import (
	"math"
	"slices"
)

// Sample accumulates numeric observations
type Sample struct {
	sum    float64
	sum2   float64 // sum of squares for the variance
	values []float64
}

// Add records one observation
func (s *Sample) Add(v float64) {
	s.sum += v
	s.sum2 += v * v
	s.values = append(s.values, v)
}

// Merge adds every observation of other
func (s *Sample) Merge(other *Sample) {
	for _, v := range other.values {
		s.Add(v)
	}
}

// Len is the number of observations
func (s *Sample) Len() int {
	return len(s.values)
}

// Mean returns the arithmetic mean
func (s *Sample) Mean() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.sum / float64(len(s.values))
}

// Variance returns the sample variance
func (s *Sample) Variance() float64 {
	n := len(s.values)
	if n < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.sum2 - float64(n)*mean*mean) / float64(n-1)
}

// StdDev returns the sample standard deviation
func (s *Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Sample) StdError() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(len(s.values)))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Min returns the smallest observation
func (s *Sample) Min() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return slices.Min(s.values)
}

// Max returns the largest observation
func (s *Sample) Max() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return slices.Max(s.values)
}

// Median returns the middle observation
func (s *Sample) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at p (0.0 to 1.0), interpolating between
// neighbouring observations
func (s *Sample) Percentile(p float64) float64 {
	if len(s.values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
