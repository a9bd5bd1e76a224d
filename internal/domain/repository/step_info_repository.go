package repository

import (
	"context"

	"gait-analysis-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type StepInfoRepository interface {
	Create(ctx context.Context, db *gorm.DB, step *entity.StepInfo) error
	FindActiveByStage(ctx context.Context, db *gorm.DB, stageID uint) ([]entity.StepInfo, error)
	FindActiveByStageIDs(ctx context.Context, db *gorm.DB, stageIDs []uint) ([]entity.StepInfo, error)
	SoftDeleteByStage(ctx context.Context, db *gorm.DB, stageID uint, now string) error
	HardDeleteByStage(ctx context.Context, db *gorm.DB, stageID uint) error
}
