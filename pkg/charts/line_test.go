package charts

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestLineOptionShape(t *testing.T) {
	opt := NewLine("步宽", "厘米").
		SetXData([]string{"第1步", "第2步"}).
		AddSeries(Series{Name: "步宽", Data: []*float64{F(12.5), F(13)}}).
		Options()

	raw, err := json.Marshal(opt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	payload := string(raw)

	for _, want := range []string{
		`"title":{"text":"步宽"}`,
		`"legend":{"data":["步宽"]}`,
		`"saveAsImage":{"show":true,"title":"save as image","type":"png"}`,
		`"axisLabel":{"rotate":90}`,
		`"name":"厘米"`,
		`"type":"line"`,
		`"smooth":true`,
		`"data":[12.5,13]`,
	} {
		if !strings.Contains(payload, want) {
			t.Fatalf("option payload missing %s:\n%s", want, payload)
		}
	}
	if strings.Contains(payload, "tooltip") {
		t.Fatalf("tooltip must be absent unless enabled:\n%s", payload)
	}
}

func TestLineNullPointsAndAxisTooltip(t *testing.T) {
	opt := NewLine("步长", "厘米").
		WithAxisTooltip().
		SetXData([]string{"第1步", "第2步"}).
		AddSeries(Series{Name: "左脚", ConnectNulls: true, SymbolSize: 8, Data: []*float64{F(50), nil}}).
		AddSeries(Series{Name: "右脚", ConnectNulls: true, SymbolSize: 8, Data: []*float64{nil, F(48.2)}}).
		Options()

	raw, err := json.Marshal(opt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	payload := string(raw)

	for _, want := range []string{
		`"tooltip":{"trigger":"axis","axisPointer":{"type":"cross"}}`,
		`"boundaryGap":false`,
		`"connectNulls":true`,
		`"data":[50,null]`,
		`"data":[null,48.2]`,
	} {
		if !strings.Contains(payload, want) {
			t.Fatalf("option payload missing %s:\n%s", want, payload)
		}
	}
	if len(opt.Legend.Data) != 2 || opt.Legend.Data[0] != "左脚" {
		t.Fatalf("legend should track series order, got %v", opt.Legend.Data)
	}
}
