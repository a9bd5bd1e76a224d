package repository

import (
	"context"

	"gait-analysis-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type StageRepository interface {
	Create(ctx context.Context, db *gorm.DB, stage *entity.Stage) error
	FindActiveByAction(ctx context.Context, db *gorm.DB, actionID uint) ([]entity.Stage, error)
	// FindByAction includes soft-deleted rows for hard deletes.
	FindByAction(ctx context.Context, db *gorm.DB, actionID uint) ([]entity.Stage, error)
	ActiveIDsByAction(ctx context.Context, db *gorm.DB, actionID uint) ([]uint, error)
	SoftDelete(ctx context.Context, db *gorm.DB, id uint, now string) error
	HardDelete(ctx context.Context, db *gorm.DB, id uint) error
}
