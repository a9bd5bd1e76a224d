package usecase

import (
	"context"
	"fmt"

	"gait-analysis-backend/internal/delivery/dto"
	"gait-analysis-backend/internal/domain/entity"
	"gait-analysis-backend/internal/domain/repository"
	"gait-analysis-backend/pkg/charts"
	"gait-analysis-backend/pkg/stats"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// metersToCentimeters scales the stored SI values for the chart endpoints;
// the raw endpoints return the stored unit untouched.
const metersToCentimeters = 100

// DashboardUsecase renders per-step metric series, either as ready-to-plot
// ECharts line options or as raw arrays. Steps are numbered across the
// action's stages in storage order ("第1步", "第2步", ...).
type DashboardUsecase interface {
	HipDegreeChart(ctx context.Context, actionID uint) (charts.LineOption, error)
	HipDegreeRaw(ctx context.Context, actionID uint) (*dto.HipRangeSeriesResponse, error)
	StepWidthChart(ctx context.Context, actionID uint) (charts.LineOption, error)
	StepWidthRaw(ctx context.Context, actionID uint) (*dto.StepSeriesResponse, error)
	StepLengthChart(ctx context.Context, actionID uint) (charts.LineOption, error)
	StepLengthRaw(ctx context.Context, actionID uint) (*dto.LegSplitSeriesResponse, error)
	StepSpeedChart(ctx context.Context, actionID uint) (charts.LineOption, error)
	StepSpeedRaw(ctx context.Context, actionID uint) (*dto.StepSpeedSeriesResponse, error)
	StepStrideChart(ctx context.Context, actionID uint) (charts.LineOption, error)
	StepStrideRaw(ctx context.Context, actionID uint) (*dto.StepSeriesResponse, error)
	StepDifferenceChart(ctx context.Context, actionID uint) (charts.LineOption, error)
	StepDifferenceRaw(ctx context.Context, actionID uint) (*dto.StepSeriesResponse, error)
	SupportTimeChart(ctx context.Context, actionID uint) (charts.LineOption, error)
	SupportTimeRaw(ctx context.Context, actionID uint) (*dto.StepSeriesResponse, error)
	LiftoffHeightChart(ctx context.Context, actionID uint) (charts.LineOption, error)
	LiftoffHeightRaw(ctx context.Context, actionID uint) (*dto.StepSeriesResponse, error)
}

type dashboardUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	stageRepo repository.StageRepository
	stepRepo  repository.StepInfoRepository
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	stageRepo repository.StageRepository,
	stepRepo repository.StepInfoRepository,
) DashboardUsecase {
	return &dashboardUsecase{db: db, log: log, stageRepo: stageRepo, stepRepo: stepRepo}
}

// walk visits the action's live steps stage by stage, in storage order.
func (u *dashboardUsecase) walk(ctx context.Context, actionID uint, visit func(entity.StepInfo)) error {
	stages, err := u.stageRepo.FindActiveByAction(ctx, u.db, actionID)
	if err != nil {
		return err
	}
	for _, stage := range stages {
		steps, err := u.stepRepo.FindActiveByStage(ctx, u.db, stage.ID)
		if err != nil {
			return err
		}
		for _, step := range steps {
			visit(step)
		}
	}
	return nil
}

func stepLabel(n int) string {
	return fmt.Sprintf("第%d步", n)
}

// simpleSeries gathers one single-line metric: x labels plus values scaled
// by scale and rounded to two decimal places.
func (u *dashboardUsecase) simpleSeries(ctx context.Context, actionID uint, scale float64, value func(entity.StepInfo) float64) ([]string, []float64, error) {
	var xData []string
	var yData []float64
	n := 1
	err := u.walk(ctx, actionID, func(step entity.StepInfo) {
		xData = append(xData, stepLabel(n))
		yData = append(yData, stats.Round2(value(step)*scale))
		n++
	})
	if err != nil {
		return nil, nil, err
	}
	return xData, yData, nil
}

// splitSeries gathers a per-leg metric: each step's value lands in the
// leading leg's series and the other leg holds nil for that step.
func (u *dashboardUsecase) splitSeries(ctx context.Context, actionID uint, scale float64, value func(entity.StepInfo) float64) ([]string, []*float64, []*float64, error) {
	var xData []string
	var left, right []*float64
	n := 1
	err := u.walk(ctx, actionID, func(step entity.StepInfo) {
		xData = append(xData, stepLabel(n))
		v := stats.Round2(value(step) * scale)
		if step.FrontLeg == entity.LegLeft {
			left = append(left, &v)
			right = append(right, nil)
		} else {
			left = append(left, nil)
			right = append(right, &v)
		}
		n++
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return xData, left, right, nil
}

func simpleChart(title, yAxisName, seriesName string, xData []string, yData []float64) charts.LineOption {
	points := make([]*float64, len(yData))
	for i := range yData {
		points[i] = charts.F(yData[i])
	}
	return charts.NewLine(title, yAxisName).
		SetXData(xData).
		AddSeries(charts.Series{Name: seriesName, Data: points}).
		Options()
}

// HipDegreeChart plots the hip angle range as two stacked area series, one
// per bound.
func (u *dashboardUsecase) HipDegreeChart(ctx context.Context, actionID uint) (charts.LineOption, error) {
	raw, err := u.HipDegreeRaw(ctx, actionID)
	if err != nil {
		return charts.LineOption{}, err
	}

	low := make([]*float64, len(raw.YLowData))
	high := make([]*float64, len(raw.YHighData))
	for i := range raw.YLowData {
		low[i] = charts.F(raw.YLowData[i])
		high[i] = charts.F(raw.YHighData[i])
	}

	return charts.NewLine("髋关节角度范围", "度").
		WithAxisTooltip().
		SetXData(raw.XData).
		AddSeries(charts.Series{Name: "最小值", Stack: "stack1", AreaStyle: &charts.AreaStyle{Opacity: 0.3}, Data: low}).
		AddSeries(charts.Series{Name: "最大值", Stack: "stack1", AreaStyle: &charts.AreaStyle{Opacity: 0.3}, Data: high}).
		Options(), nil
}

func (u *dashboardUsecase) HipDegreeRaw(ctx context.Context, actionID uint) (*dto.HipRangeSeriesResponse, error) {
	resp := &dto.HipRangeSeriesResponse{}
	n := 1
	err := u.walk(ctx, actionID, func(step entity.StepInfo) {
		resp.XData = append(resp.XData, stepLabel(n))
		resp.YLowData = append(resp.YLowData, stats.Round2(step.HipMinDegree))
		resp.YHighData = append(resp.YHighData, stats.Round2(step.HipMaxDegree))
		n++
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (u *dashboardUsecase) StepWidthChart(ctx context.Context, actionID uint) (charts.LineOption, error) {
	xData, yData, err := u.simpleSeries(ctx, actionID, metersToCentimeters, func(s entity.StepInfo) float64 { return s.StepWidth })
	if err != nil {
		return charts.LineOption{}, err
	}
	return simpleChart("步宽", "厘米", "步宽", xData, yData), nil
}

func (u *dashboardUsecase) StepWidthRaw(ctx context.Context, actionID uint) (*dto.StepSeriesResponse, error) {
	xData, yData, err := u.simpleSeries(ctx, actionID, 1, func(s entity.StepInfo) float64 { return s.StepWidth })
	if err != nil {
		return nil, err
	}
	return &dto.StepSeriesResponse{XData: xData, YData: yData}, nil
}

func (u *dashboardUsecase) StepLengthChart(ctx context.Context, actionID uint) (charts.LineOption, error) {
	xData, left, right, err := u.splitSeries(ctx, actionID, metersToCentimeters, func(s entity.StepInfo) float64 { return s.StepLength })
	if err != nil {
		return charts.LineOption{}, err
	}
	return charts.NewLine("步长", "厘米").
		SetXData(xData).
		AddSeries(charts.Series{Name: "左脚", ConnectNulls: true, SymbolSize: 8, Data: left}).
		AddSeries(charts.Series{Name: "右脚", ConnectNulls: true, SymbolSize: 8, Data: right}).
		Options(), nil
}

func (u *dashboardUsecase) StepLengthRaw(ctx context.Context, actionID uint) (*dto.LegSplitSeriesResponse, error) {
	xData, left, right, err := u.splitSeries(ctx, actionID, 1, func(s entity.StepInfo) float64 { return s.StepLength })
	if err != nil {
		return nil, err
	}
	return &dto.LegSplitSeriesResponse{XData: xData, YLeft: left, YRight: right}, nil
}

func (u *dashboardUsecase) StepSpeedChart(ctx context.Context, actionID uint) (charts.LineOption, error) {
	xData, left, right, err := u.splitSeries(ctx, actionID, metersToCentimeters, func(s entity.StepInfo) float64 { return s.StepSpeed })
	if err != nil {
		return charts.LineOption{}, err
	}
	return charts.NewLine("步速", "厘米/秒").
		SetXData(xData).
		AddSeries(charts.Series{Name: "左脚", Color: "blue", ConnectNulls: true, SymbolSize: 8, Data: left}).
		AddSeries(charts.Series{Name: "右脚", Color: "red", ConnectNulls: true, SymbolSize: 8, Data: right}).
		Options(), nil
}

func (u *dashboardUsecase) StepSpeedRaw(ctx context.Context, actionID uint) (*dto.StepSpeedSeriesResponse, error) {
	xData, left, right, err := u.splitSeries(ctx, actionID, 1, func(s entity.StepInfo) float64 { return s.StepSpeed })
	if err != nil {
		return nil, err
	}
	return &dto.StepSpeedSeriesResponse{XData: xData, YLeftData: left, YRightData: right}, nil
}

func (u *dashboardUsecase) StepStrideChart(ctx context.Context, actionID uint) (charts.LineOption, error) {
	xData, yData, err := u.simpleSeries(ctx, actionID, metersToCentimeters, func(s entity.StepInfo) float64 { return s.StrideLength })
	if err != nil {
		return charts.LineOption{}, err
	}
	return simpleChart("步幅", "厘米", "步幅", xData, yData), nil
}

func (u *dashboardUsecase) StepStrideRaw(ctx context.Context, actionID uint) (*dto.StepSeriesResponse, error) {
	xData, yData, err := u.simpleSeries(ctx, actionID, 1, func(s entity.StepInfo) float64 { return s.StrideLength })
	if err != nil {
		return nil, err
	}
	return &dto.StepSeriesResponse{XData: xData, YData: yData}, nil
}

// StepDifferenceChart labels each point with the step pair it compares
// ("第1 - 2步").
func (u *dashboardUsecase) StepDifferenceChart(ctx context.Context, actionID uint) (charts.LineOption, error) {
	raw, err := u.stepDifferenceSeries(ctx, actionID, metersToCentimeters)
	if err != nil {
		return charts.LineOption{}, err
	}
	return simpleChart("步长差", "厘米", "步长差", raw.XData, raw.YData), nil
}

func (u *dashboardUsecase) StepDifferenceRaw(ctx context.Context, actionID uint) (*dto.StepSeriesResponse, error) {
	return u.stepDifferenceSeries(ctx, actionID, 1)
}

func (u *dashboardUsecase) stepDifferenceSeries(ctx context.Context, actionID uint, scale float64) (*dto.StepSeriesResponse, error) {
	resp := &dto.StepSeriesResponse{}
	n := 1
	err := u.walk(ctx, actionID, func(step entity.StepInfo) {
		resp.XData = append(resp.XData, fmt.Sprintf("第%d - %d步", n, n+1))
		resp.YData = append(resp.YData, stats.Round2(step.StepsDiff*scale))
		n++
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (u *dashboardUsecase) SupportTimeChart(ctx context.Context, actionID uint) (charts.LineOption, error) {
	xData, yData, err := u.simpleSeries(ctx, actionID, 1, func(s entity.StepInfo) float64 { return s.SupportTime })
	if err != nil {
		return charts.LineOption{}, err
	}
	return simpleChart("支撑时间", "秒", "支撑时间", xData, yData), nil
}

func (u *dashboardUsecase) SupportTimeRaw(ctx context.Context, actionID uint) (*dto.StepSeriesResponse, error) {
	xData, yData, err := u.simpleSeries(ctx, actionID, 1, func(s entity.StepInfo) float64 { return s.SupportTime })
	if err != nil {
		return nil, err
	}
	return &dto.StepSeriesResponse{XData: xData, YData: yData}, nil
}

func (u *dashboardUsecase) LiftoffHeightChart(ctx context.Context, actionID uint) (charts.LineOption, error) {
	xData, yData, err := u.simpleSeries(ctx, actionID, metersToCentimeters, func(s entity.StepInfo) float64 { return s.LiftoffHeight })
	if err != nil {
		return charts.LineOption{}, err
	}
	return simpleChart("离地距离", "厘米", "离地距离", xData, yData), nil
}

func (u *dashboardUsecase) LiftoffHeightRaw(ctx context.Context, actionID uint) (*dto.StepSeriesResponse, error) {
	xData, yData, err := u.simpleSeries(ctx, actionID, 1, func(s entity.StepInfo) float64 { return s.LiftoffHeight })
	if err != nil {
		return nil, err
	}
	return &dto.StepSeriesResponse{XData: xData, YData: yData}, nil
}
