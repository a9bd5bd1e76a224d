// Package stats computes the aggregate statistics the table endpoints
// report: arithmetic mean, sample standard deviation, min and max, each
// rounded to two decimal places.
package stats

import "math"

// Round2 rounds to two decimal places, the precision every aggregate on the
// API carries.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MeanStdDev returns the mean and sample standard deviation of values,
// rounded to two decimal places. An empty slice yields (0, 0) and a single
// value yields (value, 0); the computation never divides by zero.
func MeanStdDev(values []float64) (float64, float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	if n < 2 {
		return Round2(mean), 0
	}

	varianceSum := 0.0
	for _, v := range values {
		d := v - mean
		varianceSum += d * d
	}
	stdDev := math.Sqrt(varianceSum / float64(n-1))

	return Round2(mean), Round2(stdDev)
}

// Summary is the full aggregate block for one series.
type Summary struct {
	Average float64
	StdDev  float64
	Min     float64
	Max     float64
}

// Summarize computes the Summary of values; all zeros for an empty slice.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	mean, stdDev := MeanStdDev(values)
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return Summary{Average: mean, StdDev: stdDev, Min: min, Max: max}
}

// LegSeries partitions one metric's values by leading leg while keeping the
// combined series.
type LegSeries struct {
	Left  []float64
	Right []float64
	All   []float64
}

// Append files v under the given leg ("left" or "right"; anything else only
// lands in the combined series) and always into the combined series.
func (s *LegSeries) Append(leg string, v float64) {
	switch leg {
	case "left":
		s.Left = append(s.Left, v)
	case "right":
		s.Right = append(s.Right, v)
	}
	s.All = append(s.All, v)
}
