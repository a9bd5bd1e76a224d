package repository

import (
	"context"

	"gait-analysis-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type VideoRepository interface {
	Create(ctx context.Context, db *gorm.DB, video *entity.Video) error
	Update(ctx context.Context, db *gorm.DB, video *entity.Video) error
	FindActiveByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Video, error)
	// FindActiveOriginal looks up a live original upload owned by the patient.
	FindActiveOriginal(ctx context.Context, db *gorm.DB, id, patientID uint) (*entity.Video, error)
	// FindActiveTyped looks up a live video of one flavor (original or
	// inference) owned by the patient; the two flags are mutually exclusive.
	FindActiveTyped(ctx context.Context, db *gorm.DB, id, patientID uint, inference bool) (*entity.Video, error)
	FindActiveByPath(ctx context.Context, db *gorm.DB, path string, inference bool) (*entity.Video, error)
	FindActiveByPatient(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Video, error)
	FindActiveByAction(ctx context.Context, db *gorm.DB, actionID uint) ([]entity.Video, error)
	FindActiveInferenceByAction(ctx context.Context, db *gorm.DB, actionID uint) ([]entity.Video, error)
	// FindByPatient also returns soft-deleted rows; the hard-delete path
	// removes everything the patient ever owned.
	FindByPatient(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Video, error)
	FindAllActive(ctx context.Context, db *gorm.DB) ([]entity.Video, error)
	SoftDelete(ctx context.Context, db *gorm.DB, id uint, now string) error
	HardDelete(ctx context.Context, db *gorm.DB, id uint) error
	HardDeleteInferenceByAction(ctx context.Context, db *gorm.DB, actionID uint) error
	CountActive(ctx context.Context, db *gorm.DB) (int64, error)
	CountActiveByPatient(ctx context.Context, db *gorm.DB, patientID uint) (int64, error)
}
