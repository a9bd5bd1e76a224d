package dto

import "gait-analysis-backend/internal/domain/entity"

// Request DTOs

type PatientLoginRequest struct {
	CaseID       string `json:"case_id" validate:"required"`
	VerifyCaseID string `json:"verify_case_id" validate:"required"`
}

type CreatePatientRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Age      int    `json:"age" validate:"min=0,max=150"`
	Gender   string `json:"gender"`
	CaseID   string `json:"case_id" validate:"required"`
	DoctorID uint   `json:"doctor_id" validate:"required,min=1"`
}

type UpdatePatientRequest struct {
	PatientID uint   `json:"patient_id" validate:"required,min=1"`
	Username  string `json:"username" validate:"required,max=100"`
	Age       int    `json:"age" validate:"min=0,max=150"`
	Gender    string `json:"gender"`
	CaseID    string `json:"case_id" validate:"required"`
	DoctorID  uint   `json:"doctor_id" validate:"required,min=1"`
}

// Response DTOs

type PatientPageResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Patients []entity.Patient `json:"patients"`
}
