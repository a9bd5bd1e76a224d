package handler

import (
	"net/http"

	"gait-analysis-backend/internal/usecase"
	"gait-analysis-backend/pkg/response"
)

// TableHandler serves the per-metric summary rows the report table shows,
// addressed as /table/{metric}/{action_id}.
type TableHandler struct {
	tableUsecase usecase.TableUsecase
}

func NewTableHandler(tableUsecase usecase.TableUsecase) *TableHandler {
	return &TableHandler{tableUsecase: tableUsecase}
}

func (h *TableHandler) Stats(w http.ResponseWriter, r *http.Request) {
	actionID, err := parseUintVar(r, "action_id")
	if err != nil {
		response.BadRequest(w, "Invalid action ID")
		return
	}

	ctx := r.Context()
	var result interface{}
	switch metric := muxVar(r, "metric"); metric {
	case "step_hip_degree":
		result, err = h.tableUsecase.HipDegreeStats(ctx, actionID)
	case "step_width":
		result, err = h.tableUsecase.StepWidthStats(ctx, actionID)
	case "step_length":
		result, err = h.tableUsecase.StepLengthStats(ctx, actionID)
	case "step_speed":
		result, err = h.tableUsecase.StepSpeedStats(ctx, actionID)
	case "step_stride":
		result, err = h.tableUsecase.StepStrideStats(ctx, actionID)
	case "step_difference":
		result, err = h.tableUsecase.StepDifferenceStats(ctx, actionID)
	case "support_time":
		result, err = h.tableUsecase.SupportTimeStats(ctx, actionID)
	case "liftoff_height":
		result, err = h.tableUsecase.LiftoffHeightStats(ctx, actionID)
	default:
		response.NotFound(w, "Unknown metric")
		return
	}
	if err != nil {
		response.InternalServerError(w, "Failed to compute statistics")
		return
	}

	response.Success(w, http.StatusOK, "Statistics retrieved successfully", result)
}
