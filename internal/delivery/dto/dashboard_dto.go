package dto

// Raw series payloads backing the dashboard charts. Values are rounded to
// two decimal places but never unit-scaled; the chart endpoints scale to
// centimeters themselves.

type StepSeriesResponse struct {
	XData []string  `json:"x_data"`
	YData []float64 `json:"y_data"`
}

type HipRangeSeriesResponse struct {
	XData     []string  `json:"x_data"`
	YLowData  []float64 `json:"y_low_data"`
	YHighData []float64 `json:"y_high_data"`
}

// LegSplitSeriesResponse carries one point per step with the value filed
// under the leading leg; the other leg holds null for that step.
type LegSplitSeriesResponse struct {
	XData  []string   `json:"x_data"`
	YLeft  []*float64 `json:"y_left"`
	YRight []*float64 `json:"y_right"`
}

// StepSpeedSeriesResponse is the speed flavor of the split series; the key
// names differ from LegSplitSeriesResponse and are pinned by the frontend.
type StepSpeedSeriesResponse struct {
	XData      []string   `json:"x_data"`
	YLeftData  []*float64 `json:"y_left_data"`
	YRightData []*float64 `json:"y_right_data"`
}
