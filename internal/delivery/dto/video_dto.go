package dto

// Request DTOs

type DeleteVideoRequest struct {
	VideoID   uint `json:"video_id" validate:"required,min=1"`
	DoctorID  uint `json:"doctor_id" validate:"required,min=1"`
	PatientID uint `json:"patient_id" validate:"required,min=1"`
}

// Response DTOs

type UploadVideoResponse struct {
	VideoID uint `json:"video_id"`
}

type InsertInferenceVideoResponse struct {
	VideoID uint `json:"video_id"`
}
