package repository

import (
	"context"

	"gait-analysis-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type ActionRepository interface {
	Create(ctx context.Context, db *gorm.DB, action *entity.Action) error
	Update(ctx context.Context, db *gorm.DB, action *entity.Action) error
	FindActiveByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Action, error)
	// FindActiveByPatient/FindActiveByParent return newest-first.
	FindActiveByPatient(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Action, error)
	FindActiveByParent(ctx context.Context, db *gorm.DB, parentID uint) ([]entity.Action, error)
	FindActiveByVideo(ctx context.Context, db *gorm.DB, videoID uint) ([]entity.Action, error)
	FindAllActive(ctx context.Context, db *gorm.DB) ([]entity.Action, error)
	// FindByPatient/FindByVideo include soft-deleted rows for hard deletes.
	FindByPatient(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Action, error)
	FindByVideo(ctx context.Context, db *gorm.DB, videoID uint) ([]entity.Action, error)
	SoftDelete(ctx context.Context, db *gorm.DB, id uint, now string) error
	HardDelete(ctx context.Context, db *gorm.DB, id uint) error
	CountActive(ctx context.Context, db *gorm.DB) (int64, error)
	CountActiveByPatient(ctx context.Context, db *gorm.DB, patientID uint) (int64, error)
}
