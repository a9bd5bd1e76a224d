package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"gait-analysis-backend/internal/repository"

	"gorm.io/gorm"
)

func newDashboardUsecase(t *testing.T) (DashboardUsecase, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	u := NewDashboardUsecase(db, testLogger(), repository.NewStageRepository(), repository.NewStepInfoRepository())
	return u, db
}

func TestStepWidthRawKeepsStoredUnit(t *testing.T) {
	u, db := newDashboardUsecase(t)
	actionID := seedAnalyzedAction(t, db)

	resp, err := u.StepWidthRaw(context.Background(), actionID)
	if err != nil {
		t.Fatalf("raw: %v", err)
	}

	if len(resp.XData) != 3 || resp.XData[0] != "第1步" || resp.XData[2] != "第3步" {
		t.Fatalf("unexpected labels: %v", resp.XData)
	}
	// Steps number across stages in storage order: 0.4, 0.6, then 0.5.
	if resp.YData[0] != 0.4 || resp.YData[1] != 0.6 || resp.YData[2] != 0.5 {
		t.Fatalf("unexpected values: %v", resp.YData)
	}
}

func TestStepWidthChartScalesToCentimeters(t *testing.T) {
	u, db := newDashboardUsecase(t)
	actionID := seedAnalyzedAction(t, db)

	option, err := u.StepWidthChart(context.Background(), actionID)
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	if option.Title.Text != "步宽" {
		t.Fatalf("unexpected title: %s", option.Title.Text)
	}
	if len(option.Series) != 1 || len(option.Series[0].Data) != 3 {
		t.Fatalf("unexpected series shape: %+v", option.Series)
	}
	if v := option.Series[0].Data[0]; v == nil || *v != 40 {
		t.Fatalf("expected 0.4 m scaled to 40 cm, got %v", v)
	}
}

func TestStepLengthRawSplitsByLeadingLeg(t *testing.T) {
	u, db := newDashboardUsecase(t)
	actionID := seedAnalyzedAction(t, db)

	resp, err := u.StepLengthRaw(context.Background(), actionID)
	if err != nil {
		t.Fatalf("raw: %v", err)
	}

	// Steps: left, right, left. The off-leg holds null per point.
	if resp.YLeft[0] == nil || *resp.YLeft[0] != 0.4 || resp.YRight[0] != nil {
		t.Fatalf("step 1 should be left-only: %v / %v", resp.YLeft[0], resp.YRight[0])
	}
	if resp.YLeft[1] != nil || resp.YRight[1] == nil || *resp.YRight[1] != 0.6 {
		t.Fatalf("step 2 should be right-only: %v / %v", resp.YLeft[1], resp.YRight[1])
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"x_data"`, `"y_left"`, `"y_right"`} {
		if !strings.Contains(string(payload), key) {
			t.Fatalf("payload missing %s: %s", key, payload)
		}
	}
}

func TestStepSpeedRawUsesPinnedKeyNames(t *testing.T) {
	u, db := newDashboardUsecase(t)
	actionID := seedAnalyzedAction(t, db)

	resp, err := u.StepSpeedRaw(context.Background(), actionID)
	if err != nil {
		t.Fatalf("raw: %v", err)
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"y_left_data"`, `"y_right_data"`} {
		if !strings.Contains(string(payload), key) {
			t.Fatalf("payload missing %s: %s", key, payload)
		}
	}
}

func TestStepDifferenceLabelsNamePairs(t *testing.T) {
	u, db := newDashboardUsecase(t)
	actionID := seedAnalyzedAction(t, db)

	resp, err := u.StepDifferenceRaw(context.Background(), actionID)
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	if resp.XData[0] != "第1 - 2步" || resp.XData[1] != "第2 - 3步" {
		t.Fatalf("unexpected pair labels: %v", resp.XData)
	}
}

func TestHipDegreeChartStacksBothBounds(t *testing.T) {
	u, db := newDashboardUsecase(t)
	actionID := seedAnalyzedAction(t, db)

	option, err := u.HipDegreeChart(context.Background(), actionID)
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	if len(option.Series) != 2 {
		t.Fatalf("expected two series, got %d", len(option.Series))
	}
	if option.Series[0].Name != "最小值" || option.Series[1].Name != "最大值" {
		t.Fatalf("unexpected series names: %s / %s", option.Series[0].Name, option.Series[1].Name)
	}
	if option.Series[0].Stack != "stack1" || option.Series[0].AreaStyle == nil {
		t.Fatalf("expected stacked area series, got %+v", option.Series[0])
	}
	// Angles are already degrees; no unit scaling.
	if v := option.Series[0].Data[0]; v == nil || *v != 10 {
		t.Fatalf("expected raw degrees, got %v", v)
	}
}

func TestSupportTimeChartKeepsSeconds(t *testing.T) {
	u, db := newDashboardUsecase(t)
	actionID := seedAnalyzedAction(t, db)

	option, err := u.SupportTimeChart(context.Background(), actionID)
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	if v := option.Series[0].Data[0]; v == nil || *v != 0.4 {
		t.Fatalf("support time must not be unit-scaled, got %v", v)
	}
}

func TestChartsOnEmptyActionAreEmpty(t *testing.T) {
	u, _ := newDashboardUsecase(t)

	option, err := u.StepLengthChart(context.Background(), 42)
	if err != nil {
		t.Fatalf("chart: %v", err)
	}
	if len(option.XAxis) == 0 || len(option.XAxis[0].Data) != 0 {
		t.Fatalf("expected empty x axis, got %+v", option.XAxis)
	}
	for _, s := range option.Series {
		if len(s.Data) != 0 {
			t.Fatalf("expected empty series, got %+v", s)
		}
	}
}
