package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"gait-analysis-backend/internal/delivery/dto"
	"gait-analysis-backend/internal/domain/repository"
	"gait-analysis-backend/internal/usecase"
	"gait-analysis-backend/pkg/response"
	"gait-analysis-backend/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{patientUsecase: patientUsecase, validator: validator}
}

func (h *PatientHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrCaseIDMismatch:
			response.Unauthorized(w, "Case ID verification failed")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", patient)
}

func (h *PatientHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Insert(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCaseIDTaken:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to insert patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

func (h *PatientHandler) GetAllByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, err := parseUintVar(r, "doctor_id")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	patients, err := h.patientUsecase.GetAllByDoctor(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get patients")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrPatientNotFound, usecase.ErrPatientNotOwned:
			response.NotFound(w, err.Error())
		case usecase.ErrCaseIDTaken:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	patientID, err := parseUintVar(r, "patient_id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}
	doctorID, err := parseUintVar(r, "doctor_id")
	if err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	}

	if err := h.patientUsecase.Delete(r.Context(), patientID, doctorID); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrPatientNotFound, usecase.ErrPatientNotOwned:
			response.NotFound(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to delete patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}

func (h *PatientHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(query.Get("page_size"))
	if pageSize < 1 {
		pageSize = 10
	}

	filter := repository.PatientPageFilter{
		Page:      page,
		PageSize:  pageSize,
		SortBy:    query.Get("sort_by"),
		SortOrder: query.Get("sort_order"),
	}
	if doctorID, err := parseUintQuery(r, "doctor_id"); err != nil {
		response.BadRequest(w, "Invalid doctor ID")
		return
	} else if doctorID != 0 {
		filter.DoctorID = &doctorID
	}

	result, err := h.patientUsecase.GetPage(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	meta := response.NewMeta(result.Page, result.PageSize, result.Total)
	response.SuccessWithMeta(w, http.StatusOK, "Patients retrieved successfully", result.Patients, meta)
}
