package dto

// Request DTOs

type RegisterDoctorRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=100"`
	Password   string `json:"password" validate:"required,min=6"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Department string `json:"department"`
}

type UpdateDoctorRequest struct {
	DoctorID   uint   `json:"doctor_id" validate:"required,min=1"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
	Department string `json:"department"`
}

type DoctorLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type DeleteDoctorRequest struct {
	Password string `json:"password" validate:"required"`
}
