package handler

import (
	"encoding/json"
	"net/http"

	"gait-analysis-backend/internal/delivery/dto"
	"gait-analysis-backend/internal/usecase"
	"gait-analysis-backend/pkg/response"
	"gait-analysis-backend/pkg/validator"
)

// ManagementHandler exposes the admin console. Read endpoints identify the
// acting admin through the admin_doctor_id query parameter; mutations carry
// it in the request body.
type ManagementHandler struct {
	managementUsecase usecase.ManagementUsecase
	validator         *validator.CustomValidator
}

func NewManagementHandler(managementUsecase usecase.ManagementUsecase, validator *validator.CustomValidator) *ManagementHandler {
	return &ManagementHandler{managementUsecase: managementUsecase, validator: validator}
}

// adminFromQuery resolves the acting admin's id for read endpoints. A
// missing or malformed value writes the error response and reports false.
func (h *ManagementHandler) adminFromQuery(w http.ResponseWriter, r *http.Request) (uint, bool) {
	adminID, err := parseUintQuery(r, "admin_doctor_id")
	if err != nil || adminID == 0 {
		response.BadRequest(w, "Missing or invalid admin_doctor_id")
		return 0, false
	}
	return adminID, true
}

func (h *ManagementHandler) writeAdminError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrNotAdmin:
		response.Forbidden(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

func (h *ManagementHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	admin, err := h.managementUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, err.Error())
		case usecase.ErrNotAdmin:
			response.Forbidden(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", admin)
}

func (h *ManagementHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.adminFromQuery(w, r)
	if !ok {
		return
	}

	doctors, err := h.managementUsecase.ListDoctors(r.Context(), adminID)
	if err != nil {
		h.writeAdminError(w, err, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *ManagementHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDoctorManagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.managementUsecase.CreateDoctor(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUsernameTaken, usecase.ErrEmailTaken:
			response.Conflict(w, err.Error())
		default:
			h.writeAdminError(w, err, "Failed to create doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *ManagementHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDoctorManagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.managementUsecase.UpdateDoctor(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUsernameTaken, usecase.ErrEmailTaken:
			response.Conflict(w, err.Error())
		default:
			h.writeAdminError(w, err, "Failed to update doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *ManagementHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteDoctorManagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.managementUsecase.DeleteDoctor(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrAssignDoctorNotFound, usecase.ErrSelfReassign:
			response.BadRequest(w, err.Error())
		default:
			h.writeAdminError(w, err, "Failed to delete doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

func (h *ManagementHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.adminFromQuery(w, r)
	if !ok {
		return
	}
	doctorID, err := parseUintQuery(r, "doctor_id")
	if err != nil || doctorID == 0 {
		response.BadRequest(w, "Missing or invalid doctor_id")
		return
	}

	doctor, err := h.managementUsecase.GetDoctor(r.Context(), doctorID, adminID)
	if err != nil {
		h.writeAdminError(w, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *ManagementHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.adminFromQuery(w, r)
	if !ok {
		return
	}

	patients, err := h.managementUsecase.ListPatients(r.Context(), adminID)
	if err != nil {
		h.writeAdminError(w, err, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *ManagementHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientManagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.managementUsecase.CreatePatient(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCaseIDTaken:
			response.Conflict(w, err.Error())
		case usecase.ErrAssignDoctorNotFound:
			response.BadRequest(w, err.Error())
		default:
			h.writeAdminError(w, err, "Failed to create patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

func (h *ManagementHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePatientManagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.managementUsecase.UpdatePatient(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrCaseIDTaken:
			response.Conflict(w, err.Error())
		case usecase.ErrAssignDoctorNotFound:
			response.BadRequest(w, err.Error())
		default:
			h.writeAdminError(w, err, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *ManagementHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.DeletePatientManagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.managementUsecase.DeletePatient(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			h.writeAdminError(w, err, "Failed to delete patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}

func (h *ManagementHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.adminFromQuery(w, r)
	if !ok {
		return
	}
	patientID, err := parseUintQuery(r, "patient_id")
	if err != nil || patientID == 0 {
		response.BadRequest(w, "Missing or invalid patient_id")
		return
	}

	patient, err := h.managementUsecase.GetPatient(r.Context(), patientID, adminID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			h.writeAdminError(w, err, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *ManagementHandler) ListActions(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.adminFromQuery(w, r)
	if !ok {
		return
	}

	actions, err := h.managementUsecase.ListActions(r.Context(), adminID)
	if err != nil {
		h.writeAdminError(w, err, "Failed to list actions")
		return
	}

	response.Success(w, http.StatusOK, "Actions retrieved successfully", actions)
}

func (h *ManagementHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.adminFromQuery(w, r)
	if !ok {
		return
	}

	videos, err := h.managementUsecase.ListVideos(r.Context(), adminID)
	if err != nil {
		h.writeAdminError(w, err, "Failed to list videos")
		return
	}

	response.Success(w, http.StatusOK, "Videos retrieved successfully", videos)
}

func (h *ManagementHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteVideoManagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.managementUsecase.DeleteVideo(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrVideoNotFound:
			response.NotFound(w, "Video not found")
		default:
			h.writeAdminError(w, err, "Failed to delete video")
		}
		return
	}

	response.Success(w, http.StatusOK, "Video deleted successfully", nil)
}

func (h *ManagementHandler) DeleteAction(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteActionManagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.managementUsecase.DeleteAction(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrActionNotFound:
			response.NotFound(w, "Action not found")
		default:
			h.writeAdminError(w, err, "Failed to delete action")
		}
		return
	}

	response.Success(w, http.StatusOK, "Action deleted successfully", nil)
}

func (h *ManagementHandler) DashboardMetrics(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.adminFromQuery(w, r)
	if !ok {
		return
	}

	metrics, err := h.managementUsecase.DashboardMetrics(r.Context(), adminID)
	if err != nil {
		h.writeAdminError(w, err, "Failed to get dashboard metrics")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard metrics retrieved successfully", metrics)
}

func (h *ManagementHandler) AnalysisTrends(w http.ResponseWriter, r *http.Request) {
	adminID, ok := h.adminFromQuery(w, r)
	if !ok {
		return
	}

	trends, err := h.managementUsecase.AnalysisTrends(r.Context(), adminID)
	if err != nil {
		h.writeAdminError(w, err, "Failed to get analysis trends")
		return
	}

	response.Success(w, http.StatusOK, "Analysis trends retrieved successfully", trends)
}
