package stats

import "testing"

func TestMeanStdDevEmpty(t *testing.T) {
	mean, stdDev := MeanStdDev(nil)
	if mean != 0 || stdDev != 0 {
		t.Fatalf("expected (0, 0) for empty input, got (%v, %v)", mean, stdDev)
	}
}

func TestMeanStdDevSingleValue(t *testing.T) {
	mean, stdDev := MeanStdDev([]float64{3.14159})
	if mean != 3.14 {
		t.Fatalf("expected mean 3.14, got %v", mean)
	}
	if stdDev != 0 {
		t.Fatalf("expected zero std dev for a single value, got %v", stdDev)
	}
}

func TestMeanStdDevSample(t *testing.T) {
	mean, stdDev := MeanStdDev([]float64{1, 2, 3})
	if mean != 2.0 {
		t.Fatalf("expected mean 2.0, got %v", mean)
	}
	// Sample (n-1) standard deviation, not population.
	if stdDev != 1.0 {
		t.Fatalf("expected std dev 1.0, got %v", stdDev)
	}
}

func TestMeanStdDevRounding(t *testing.T) {
	mean, _ := MeanStdDev([]float64{1, 2})
	if mean != 1.5 {
		t.Fatalf("expected mean 1.5, got %v", mean)
	}
	mean, _ = MeanStdDev([]float64{0.111, 0.222, 0.333})
	if mean != 0.22 {
		t.Fatalf("expected mean rounded to 0.22, got %v", mean)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 8, 5})
	if s.Average != 5.0 {
		t.Fatalf("expected average 5.0, got %v", s.Average)
	}
	if s.StdDev != 3.0 {
		t.Fatalf("expected std dev 3.0, got %v", s.StdDev)
	}
	if s.Min != 2 || s.Max != 8 {
		t.Fatalf("expected min 2 / max 8, got %v / %v", s.Min, s.Max)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s != (Summary{}) {
		t.Fatalf("expected zero summary for empty input, got %+v", s)
	}
}

func TestLegSeriesPartitions(t *testing.T) {
	var s LegSeries
	s.Append("left", 1)
	s.Append("right", 2)
	s.Append("left", 3)
	s.Append("unknown", 4)

	if len(s.Left) != 2 || s.Left[0] != 1 || s.Left[1] != 3 {
		t.Fatalf("unexpected left partition: %v", s.Left)
	}
	if len(s.Right) != 1 || s.Right[0] != 2 {
		t.Fatalf("unexpected right partition: %v", s.Right)
	}
	if len(s.All) != 4 {
		t.Fatalf("combined series should keep every value, got %v", s.All)
	}
}
