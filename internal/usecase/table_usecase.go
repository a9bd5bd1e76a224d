package usecase

import (
	"context"
	"fmt"

	"gait-analysis-backend/internal/delivery/dto"
	"gait-analysis-backend/internal/domain/entity"
	"gait-analysis-backend/internal/domain/repository"
	"gait-analysis-backend/pkg/stats"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TableUsecase aggregates an action's step measurements into the summary
// rows the report table shows: mean, sample standard deviation and extrema
// per metric, split by leading leg and combined. An action without results
// yields an all-zero block rather than an error.
type TableUsecase interface {
	StepLengthStats(ctx context.Context, actionID uint) (*dto.MetricStatsResponse, error)
	StepSpeedStats(ctx context.Context, actionID uint) (*dto.MetricStatsResponse, error)
	StepWidthStats(ctx context.Context, actionID uint) (*dto.MetricStatsResponse, error)
	StepStrideStats(ctx context.Context, actionID uint) (*dto.MetricStatsResponse, error)
	StepDifferenceStats(ctx context.Context, actionID uint) (*dto.MetricStatsResponse, error)
	SupportTimeStats(ctx context.Context, actionID uint) (*dto.MetricStatsResponse, error)
	LiftoffHeightStats(ctx context.Context, actionID uint) (*dto.MetricStatsResponse, error)
	HipDegreeStats(ctx context.Context, actionID uint) (*dto.HipDegreeStatsResponse, error)
}

type tableUsecase struct {
	db        *gorm.DB
	log       *logrus.Logger
	stageRepo repository.StageRepository
	stepRepo  repository.StepInfoRepository
}

func NewTableUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	stageRepo repository.StageRepository,
	stepRepo repository.StepInfoRepository,
) TableUsecase {
	return &tableUsecase{db: db, log: log, stageRepo: stageRepo, stepRepo: stepRepo}
}

// steps loads every live step of the action across its stages.
func (u *tableUsecase) steps(ctx context.Context, actionID uint) ([]entity.StepInfo, error) {
	stageIDs, err := u.stageRepo.ActiveIDsByAction(ctx, u.db, actionID)
	if err != nil {
		return nil, err
	}
	if len(stageIDs) == 0 {
		return nil, nil
	}
	return u.stepRepo.FindActiveByStageIDs(ctx, u.db, stageIDs)
}

// metricStats collects one metric across the action's steps and aggregates
// it. skipFirst drops first-of-stage steps, which carry no meaningful value
// for the stride and step-difference metrics.
func (u *tableUsecase) metricStats(ctx context.Context, actionID uint, metric string, skipFirst bool, value func(entity.StepInfo) float64) (*dto.MetricStatsResponse, error) {
	steps, err := u.steps(ctx, actionID)
	if err != nil {
		return nil, err
	}

	var series stats.LegSeries
	for _, step := range steps {
		if skipFirst && step.FirstStep {
			continue
		}
		series.Append(step.FrontLeg, value(step))
	}

	resp := buildMetricStats(series)
	resp.ChartURL = chartURL(metric, actionID)
	return &resp, nil
}

func (u *tableUsecase) StepLengthStats(ctx context.Context, actionID uint) (*dto.MetricStatsResponse, error) {
	return u.metricStats(ctx, actionID, "step_length", false, func(s entity.StepInfo) float64 { return s.StepLength })
}

func (u *tableUsecase) StepSpeedStats(ctx context.Context, actionID uint) (*dto.MetricStatsResponse, error) {
	return u.metricStats(ctx, actionID, "step_speed", false, func(s entity.StepInfo) float64 { return s.StepSpeed })
}

func (u *tableUsecase) StepWidthStats(ctx context.Context, actionID uint) (*dto.MetricStatsResponse, error) {
	return u.metricStats(ctx, actionID, "step_width", false, func(s entity.StepInfo) float64 { return s.StepWidth })
}

func (u *tableUsecase) StepStrideStats(ctx context.Context, actionID uint) (*dto.MetricStatsResponse, error) {
	return u.metricStats(ctx, actionID, "step_stride", true, func(s entity.StepInfo) float64 { return s.StrideLength })
}

func (u *tableUsecase) StepDifferenceStats(ctx context.Context, actionID uint) (*dto.MetricStatsResponse, error) {
	return u.metricStats(ctx, actionID, "step_difference", true, func(s entity.StepInfo) float64 { return s.StepsDiff })
}

func (u *tableUsecase) SupportTimeStats(ctx context.Context, actionID uint) (*dto.MetricStatsResponse, error) {
	return u.metricStats(ctx, actionID, "support_time", false, func(s entity.StepInfo) float64 { return s.SupportTime })
}

func (u *tableUsecase) LiftoffHeightStats(ctx context.Context, actionID uint) (*dto.MetricStatsResponse, error) {
	return u.metricStats(ctx, actionID, "liftoff_height", false, func(s entity.StepInfo) float64 { return s.LiftoffHeight })
}

// HipDegreeStats aggregates the hip angle minima ("low") and maxima ("high")
// separately and, for the shared block, over the union of both bounds.
func (u *tableUsecase) HipDegreeStats(ctx context.Context, actionID uint) (*dto.HipDegreeStatsResponse, error) {
	steps, err := u.steps(ctx, actionID)
	if err != nil {
		return nil, err
	}

	var low, high, all stats.LegSeries
	for _, step := range steps {
		low.Append(step.FrontLeg, step.HipMinDegree)
		high.Append(step.FrontLeg, step.HipMaxDegree)
		all.Append(step.FrontLeg, step.HipMinDegree)
		all.Append(step.FrontLeg, step.HipMaxDegree)
	}

	resp := dto.HipDegreeStatsResponse{MetricStatsResponse: buildMetricStats(all)}
	resp.ChartURL = chartURL("step_hip_degree", actionID)

	resp.LowAverage, resp.LowStandardDeviation = stats.MeanStdDev(low.All)
	resp.HighAverage, resp.HighStandardDeviation = stats.MeanStdDev(high.All)
	resp.LeftLowAverage, resp.LeftLowStandardDeviation = stats.MeanStdDev(low.Left)
	resp.LeftHighAverage, resp.LeftHighStandardDeviation = stats.MeanStdDev(high.Left)
	resp.RightLowAverage, resp.RightLowStandardDeviation = stats.MeanStdDev(low.Right)
	resp.RightHighAverage, resp.RightHighStandardDeviation = stats.MeanStdDev(high.Right)

	return &resp, nil
}

func buildMetricStats(series stats.LegSeries) dto.MetricStatsResponse {
	left := stats.Summarize(series.Left)
	right := stats.Summarize(series.Right)
	all := stats.Summarize(series.All)

	return dto.MetricStatsResponse{
		LeftAverage:            left.Average,
		RightAverage:           right.Average,
		Average:                all.Average,
		LeftStandardDeviation:  left.StdDev,
		RightStandardDeviation: right.StdDev,
		StandardDeviation:      all.StdDev,
		LeftMinValue:           left.Min,
		LeftMaxValue:           left.Max,
		RightMinValue:          right.Min,
		RightMaxValue:          right.Max,
		MinValue:               all.Min,
		MaxValue:               all.Max,
	}
}

func chartURL(metric string, actionID uint) string {
	return fmt.Sprintf("/dashboard/%s/%d", metric, actionID)
}
