package handler

import (
	"net/http"

	"gait-analysis-backend/internal/usecase"
	"gait-analysis-backend/pkg/response"
)

// DashboardHandler serves per-step metric series for one action, addressed
// as /dashboard/{metric}/{action_id} (ECharts option) and
// /dashboard/{metric}/raw/{action_id} (plain arrays).
type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

func (h *DashboardHandler) Chart(w http.ResponseWriter, r *http.Request) {
	actionID, err := parseUintVar(r, "action_id")
	if err != nil {
		response.BadRequest(w, "Invalid action ID")
		return
	}

	ctx := r.Context()
	var option interface{}
	switch metric := muxVar(r, "metric"); metric {
	case "step_hip_degree":
		option, err = h.dashboardUsecase.HipDegreeChart(ctx, actionID)
	case "step_width":
		option, err = h.dashboardUsecase.StepWidthChart(ctx, actionID)
	case "step_length":
		option, err = h.dashboardUsecase.StepLengthChart(ctx, actionID)
	case "step_speed":
		option, err = h.dashboardUsecase.StepSpeedChart(ctx, actionID)
	case "step_stride":
		option, err = h.dashboardUsecase.StepStrideChart(ctx, actionID)
	case "step_difference":
		option, err = h.dashboardUsecase.StepDifferenceChart(ctx, actionID)
	case "support_time":
		option, err = h.dashboardUsecase.SupportTimeChart(ctx, actionID)
	case "liftoff_height":
		option, err = h.dashboardUsecase.LiftoffHeightChart(ctx, actionID)
	default:
		response.NotFound(w, "Unknown metric")
		return
	}
	if err != nil {
		response.InternalServerError(w, "Failed to build chart")
		return
	}

	response.Success(w, http.StatusOK, "Chart retrieved successfully", option)
}

func (h *DashboardHandler) Raw(w http.ResponseWriter, r *http.Request) {
	actionID, err := parseUintVar(r, "action_id")
	if err != nil {
		response.BadRequest(w, "Invalid action ID")
		return
	}

	ctx := r.Context()
	var series interface{}
	switch metric := muxVar(r, "metric"); metric {
	case "step_hip_degree":
		series, err = h.dashboardUsecase.HipDegreeRaw(ctx, actionID)
	case "step_width":
		series, err = h.dashboardUsecase.StepWidthRaw(ctx, actionID)
	case "step_length":
		series, err = h.dashboardUsecase.StepLengthRaw(ctx, actionID)
	case "step_speed":
		series, err = h.dashboardUsecase.StepSpeedRaw(ctx, actionID)
	case "step_stride":
		series, err = h.dashboardUsecase.StepStrideRaw(ctx, actionID)
	case "step_difference":
		series, err = h.dashboardUsecase.StepDifferenceRaw(ctx, actionID)
	case "support_time":
		series, err = h.dashboardUsecase.SupportTimeRaw(ctx, actionID)
	case "liftoff_height":
		series, err = h.dashboardUsecase.LiftoffHeightRaw(ctx, actionID)
	default:
		response.NotFound(w, "Unknown metric")
		return
	}
	if err != nil {
		response.InternalServerError(w, "Failed to build series")
		return
	}

	response.Success(w, http.StatusOK, "Series retrieved successfully", series)
}
