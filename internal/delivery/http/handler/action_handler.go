package handler

import (
	"encoding/json"
	"net/http"

	"gait-analysis-backend/internal/delivery/dto"
	"gait-analysis-backend/internal/usecase"
	"gait-analysis-backend/pkg/response"
	"gait-analysis-backend/pkg/validator"
)

type ActionHandler struct {
	actionUsecase usecase.ActionUsecase
	validator     *validator.CustomValidator
}

func NewActionHandler(actionUsecase usecase.ActionUsecase, validator *validator.CustomValidator) *ActionHandler {
	return &ActionHandler{actionUsecase: actionUsecase, validator: validator}
}

func (h *ActionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.actionUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrActionVideoNotFound:
			response.NotFound(w, "Video not found")
		default:
			response.InternalServerError(w, "Failed to create action")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Action created successfully", result)
}

func (h *ActionHandler) GetByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := parseUintVar(r, "patient_id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	actions, err := h.actionUsecase.GetByPatient(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrNoActions:
			response.NotFound(w, "No actions found")
		default:
			response.InternalServerError(w, "Failed to get actions")
		}
		return
	}

	response.Success(w, http.StatusOK, "Actions retrieved successfully", actions)
}

func (h *ActionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actionID, err := parseUintVar(r, "action_id")
	if err != nil {
		response.BadRequest(w, "Invalid action ID")
		return
	}

	action, err := h.actionUsecase.GetByID(r.Context(), actionID)
	if err != nil {
		switch err {
		case usecase.ErrActionNotFound:
			response.NotFound(w, "Action not found")
		default:
			response.InternalServerError(w, "Failed to get action")
		}
		return
	}

	response.Success(w, http.StatusOK, "Action retrieved successfully", action)
}

func (h *ActionHandler) GetByParent(w http.ResponseWriter, r *http.Request) {
	parentID, err := parseUintVar(r, "parent_id")
	if err != nil {
		response.BadRequest(w, "Invalid parent ID")
		return
	}

	actions, err := h.actionUsecase.GetByParent(r.Context(), parentID)
	if err != nil {
		switch err {
		case usecase.ErrNoActions:
			response.NotFound(w, "No actions found")
		default:
			response.InternalServerError(w, "Failed to get actions")
		}
		return
	}

	response.Success(w, http.StatusOK, "Actions retrieved successfully", actions)
}

func (h *ActionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actionID, err := parseUintVar(r, "action_id")
	if err != nil {
		response.BadRequest(w, "Invalid action ID")
		return
	}

	if err := h.actionUsecase.Delete(r.Context(), actionID); err != nil {
		switch err {
		case usecase.ErrActionNotFound:
			response.NotFound(w, "Action not found")
		default:
			response.InternalServerError(w, "Failed to delete action")
		}
		return
	}

	response.Success(w, http.StatusOK, "Action deleted successfully", nil)
}

func (h *ActionHandler) UpdateData(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.actionUsecase.UpdateData(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrActionNotFound:
			response.NotFound(w, "Action not found")
		default:
			response.InternalServerError(w, "Failed to update action")
		}
		return
	}

	response.Success(w, http.StatusOK, "Action updated successfully", nil)
}

func (h *ActionHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateActionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.actionUsecase.UpdateStatus(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrActionNotFound:
			response.NotFound(w, "Action not found")
		default:
			response.InternalServerError(w, "Failed to update action status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Action status updated successfully", nil)
}

func (h *ActionHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateActionProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.actionUsecase.UpdateProgress(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrActionNotFound:
			response.NotFound(w, "Action not found")
		default:
			response.InternalServerError(w, "Failed to update action progress")
		}
		return
	}

	response.Success(w, http.StatusOK, "Action progress updated successfully", nil)
}
