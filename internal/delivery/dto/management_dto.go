package dto

import "gait-analysis-backend/internal/domain/entity"

// Request DTOs. Every management mutation carries the acting admin's id;
// the usecase rejects callers without the admin role.

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateDoctorManagementRequest struct {
	AdminDoctorID uint    `json:"admin_doctor_id" validate:"required,min=1"`
	Username      string  `json:"username" validate:"required,min=3,max=100"`
	Password      string  `json:"password" validate:"required,min=6"`
	Email         string  `json:"email" validate:"required,email"`
	Phone         *string `json:"phone"`
	Department    *string `json:"department"`
	RoleID        *uint   `json:"role_id"`
	Notes         *string `json:"notes"`
}

type UpdateDoctorManagementRequest struct {
	AdminDoctorID uint    `json:"admin_doctor_id" validate:"required,min=1"`
	DoctorID      uint    `json:"doctor_id" validate:"required,min=1"`
	Username      *string `json:"username"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone"`
	Password      *string `json:"password" validate:"omitempty,min=6"`
	Department    *string `json:"department"`
	RoleID        *uint   `json:"role_id"`
	Notes         *string `json:"notes"`
}

type DeleteDoctorManagementRequest struct {
	AdminDoctorID uint `json:"admin_doctor_id" validate:"required,min=1"`
	DoctorID      uint `json:"doctor_id" validate:"required,min=1"`
	// AssignDoctorID receives the deleted doctor's patients; required only
	// when the doctor still has patients.
	AssignDoctorID uint `json:"assign_doctor_id"`
}

type CreatePatientManagementRequest struct {
	AdminDoctorID uint    `json:"admin_doctor_id" validate:"required,min=1"`
	Username      string  `json:"username" validate:"required,max=100"`
	Age           *int    `json:"age"`
	Gender        *string `json:"gender"`
	CaseID        string  `json:"case_id" validate:"required"`
	DoctorID      *uint   `json:"doctor_id"`
	Notes         *string `json:"notes"`
}

type UpdatePatientManagementRequest struct {
	AdminDoctorID uint    `json:"admin_doctor_id" validate:"required,min=1"`
	PatientID     uint    `json:"patient_id" validate:"required,min=1"`
	Username      *string `json:"username"`
	Age           *int    `json:"age"`
	Gender        *string `json:"gender"`
	CaseID        *string `json:"case_id"`
	// DoctorID of 0 unassigns the patient.
	DoctorID *uint   `json:"doctor_id"`
	Notes    *string `json:"notes"`
}

type DeletePatientManagementRequest struct {
	AdminDoctorID uint `json:"admin_doctor_id" validate:"required,min=1"`
	PatientID     uint `json:"patient_id" validate:"required,min=1"`
	// Force hard-deletes the patient and every dependent row instead of
	// soft-deleting.
	Force bool `json:"force"`
}

type DeleteVideoManagementRequest struct {
	AdminDoctorID uint `json:"admin_doctor_id" validate:"required,min=1"`
	VideoID       uint `json:"video_id" validate:"required,min=1"`
	Force         bool `json:"force"`
}

type DeleteActionManagementRequest struct {
	AdminDoctorID uint `json:"admin_doctor_id" validate:"required,min=1"`
	ActionID      uint `json:"action_id" validate:"required,min=1"`
}

// Response DTOs

type DoctorDetailResponse struct {
	entity.Doctor
	PatientCount int64 `json:"patientCount"`
}

type PatientDetailResponse struct {
	entity.Patient
	AttendingDoctorName string `json:"attendingDoctorName"`
	VideoCount          int64  `json:"videoCount"`
	AnalysisCount       int64  `json:"analysisCount"`
}

type DoctorWithPatientsResponse struct {
	Doctor   DoctorDetailResponse `json:"doctor"`
	Patients []entity.Patient     `json:"patients"`
}

type PatientWithRecordsResponse struct {
	Patient PatientDetailResponse `json:"patient"`
	Videos  []entity.Video        `json:"videos"`
	Actions []entity.Action       `json:"actions"`
}

type ActionDetailResponse struct {
	entity.Action
	PatientUsername   string `json:"patient_username"`
	OriginalVideoPath string `json:"original_video_path"`
}

type VideoDetailResponse struct {
	entity.Video
	PatientUsername string `json:"patient_username"`
}

type DashboardMetricsResponse struct {
	DoctorCount       int64 `json:"doctorCount"`
	PatientCount      int64 `json:"patientCount"`
	VideoCount        int64 `json:"videoCount"`
	DataAnalysisCount int64 `json:"dataAnalysisCount"`
}

// AnalysisTrendPoint is one month of analysis volume, e.g. {"Aug '26", 12}.
type AnalysisTrendPoint struct {
	Date     string `json:"date"`
	Analyses int64  `json:"analyses"`
}
