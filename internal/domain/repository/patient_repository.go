package repository

import (
	"context"

	"gait-analysis-backend/internal/domain/entity"

	"gorm.io/gorm"
)

// PatientPageFilter drives the paginated patient listing.
type PatientPageFilter struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	DoctorID  *uint
}

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindActiveByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Patient, error)
	FindActiveByCaseID(ctx context.Context, db *gorm.DB, caseID string) (*entity.Patient, error)
	FindActiveByDoctor(ctx context.Context, db *gorm.DB, doctorID uint) ([]entity.Patient, error)
	FindAllActive(ctx context.Context, db *gorm.DB) ([]entity.Patient, error)
	FindPage(ctx context.Context, db *gorm.DB, filter PatientPageFilter) ([]entity.Patient, int64, error)
	SoftDelete(ctx context.Context, db *gorm.DB, id uint, now string) error
	HardDelete(ctx context.Context, db *gorm.DB, id uint) error
	CountActive(ctx context.Context, db *gorm.DB) (int64, error)
	CountActiveByDoctor(ctx context.Context, db *gorm.DB, doctorID uint) (int64, error)
}
