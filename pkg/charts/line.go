// Package charts builds ECharts line-chart option payloads. The JSON shape
// mirrors what the frontend already consumes, so the structs are marshaled
// as-is instead of going through a chart-rendering library.
package charts

// LineOption is the top-level ECharts option object.
type LineOption struct {
	Title   Title    `json:"title"`
	Tooltip *Tooltip `json:"tooltip,omitempty"`
	Legend  Legend   `json:"legend"`
	Toolbox Toolbox  `json:"toolbox"`
	XAxis   []Axis   `json:"xAxis"`
	YAxis   []Axis   `json:"yAxis"`
	Series  []Series `json:"series"`
}

type Title struct {
	Text string `json:"text"`
}

type Tooltip struct {
	Trigger     string       `json:"trigger,omitempty"`
	AxisPointer *AxisPointer `json:"axisPointer,omitempty"`
}

type AxisPointer struct {
	Type string `json:"type"`
}

type Legend struct {
	Data []string `json:"data"`
}

type Toolbox struct {
	Show    bool           `json:"show"`
	Feature ToolboxFeature `json:"feature"`
}

type ToolboxFeature struct {
	SaveAsImage SaveAsImage `json:"saveAsImage"`
}

type SaveAsImage struct {
	Show  bool   `json:"show"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type Axis struct {
	Type         string     `json:"type"`
	BoundaryGap  *bool      `json:"boundaryGap,omitempty"`
	Name         string     `json:"name,omitempty"`
	NameLocation string     `json:"nameLocation,omitempty"`
	NameGap      int        `json:"nameGap,omitempty"`
	Data         []string   `json:"data,omitempty"`
	AxisLabel    *AxisLabel `json:"axisLabel,omitempty"`
}

type AxisLabel struct {
	Rotate int `json:"rotate"`
}

type Series struct {
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Smooth       bool       `json:"smooth"`
	ConnectNulls bool       `json:"connectNulls,omitempty"`
	SymbolSize   int        `json:"symbolSize,omitempty"`
	Stack        string     `json:"stack,omitempty"`
	Color        string     `json:"color,omitempty"`
	AreaStyle    *AreaStyle `json:"areaStyle,omitempty"`
	Data         []*float64 `json:"data"`
}

type AreaStyle struct {
	Opacity float64 `json:"opacity"`
}

// Line accumulates series before producing a LineOption.
type Line struct {
	opt LineOption
}

// NewLine starts a line chart with the save-as-image toolbox and rotated
// category labels every dashboard chart shares.
func NewLine(title, yAxisName string) *Line {
	return &Line{opt: LineOption{
		Title: Title{Text: title},
		Toolbox: Toolbox{
			Show: true,
			Feature: ToolboxFeature{
				SaveAsImage: SaveAsImage{Show: true, Title: "save as image", Type: "png"},
			},
		},
		XAxis: []Axis{{
			Type:      "category",
			AxisLabel: &AxisLabel{Rotate: 90},
		}},
		YAxis: []Axis{{
			Type:         "value",
			Name:         yAxisName,
			NameLocation: "end",
			NameGap:      15,
		}},
	}}
}

// WithAxisTooltip enables the crosshair tooltip and removes the gap between
// the axis boundary and the first point (the hip-angle range chart style).
func (l *Line) WithAxisTooltip() *Line {
	l.opt.Tooltip = &Tooltip{Trigger: "axis", AxisPointer: &AxisPointer{Type: "cross"}}
	gap := false
	l.opt.XAxis[0].BoundaryGap = &gap
	return l
}

// SetXData sets the category labels.
func (l *Line) SetXData(labels []string) *Line {
	l.opt.XAxis[0].Data = labels
	return l
}

// AddSeries appends one smooth line series. Nil points serialize as null,
// which ECharts skips (or bridges when ConnectNulls is set).
func (l *Line) AddSeries(s Series) *Line {
	s.Type = "line"
	s.Smooth = true
	l.opt.Series = append(l.opt.Series, s)
	l.opt.Legend.Data = append(l.opt.Legend.Data, s.Name)
	return l
}

// Options returns the assembled option payload.
func (l *Line) Options() LineOption {
	return l.opt
}

// F boxes a value for nullable series data.
func F(v float64) *float64 {
	return &v
}
