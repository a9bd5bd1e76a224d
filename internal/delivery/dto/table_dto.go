package dto

// MetricStatsResponse is the aggregate block every table metric shares:
// mean, sample standard deviation and extrema, split by leading leg and
// combined. Averages and deviations carry two decimal places; extrema are
// the raw stored values.
type MetricStatsResponse struct {
	LeftAverage            float64 `json:"left_average"`
	RightAverage           float64 `json:"right_average"`
	Average                float64 `json:"average"`
	LeftStandardDeviation  float64 `json:"left_standard_deviation"`
	RightStandardDeviation float64 `json:"right_standard_deviation"`
	StandardDeviation      float64 `json:"standard_deviation"`
	LeftMinValue           float64 `json:"left_min_value"`
	LeftMaxValue           float64 `json:"left_max_value"`
	RightMinValue          float64 `json:"right_min_value"`
	RightMaxValue          float64 `json:"right_max_value"`
	MinValue               float64 `json:"min_value"`
	MaxValue               float64 `json:"max_value"`
	ChartURL               string  `json:"chart_url"`
}

// HipDegreeStatsResponse extends the shared block with per-bound aggregates
// over the hip angle minima ("low") and maxima ("high"). The combined fields
// of the embedded block aggregate the union of both bounds.
type HipDegreeStatsResponse struct {
	MetricStatsResponse
	LowAverage                 float64 `json:"low_average"`
	HighAverage                float64 `json:"high_average"`
	LeftLowAverage             float64 `json:"left_low_average"`
	LeftHighAverage            float64 `json:"left_high_average"`
	RightLowAverage            float64 `json:"right_low_average"`
	RightHighAverage           float64 `json:"right_high_average"`
	LowStandardDeviation       float64 `json:"low_standard_deviation"`
	HighStandardDeviation      float64 `json:"high_standard_deviation"`
	LeftLowStandardDeviation   float64 `json:"left_low_standard_deviation"`
	LeftHighStandardDeviation  float64 `json:"left_high_standard_deviation"`
	RightLowStandardDeviation  float64 `json:"right_low_standard_deviation"`
	RightHighStandardDeviation float64 `json:"right_high_standard_deviation"`
}
