package repository

import (
	"context"

	"gait-analysis-backend/internal/domain/entity"
	domainRepo "gait-analysis-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type stepInfoRepository struct{}

func NewStepInfoRepository() domainRepo.StepInfoRepository {
	return &stepInfoRepository{}
}

func (r *stepInfoRepository) Create(ctx context.Context, db *gorm.DB, step *entity.StepInfo) error {
	return db.WithContext(ctx).Create(step).Error
}

func (r *stepInfoRepository) FindActiveByStage(ctx context.Context, db *gorm.DB, stageID uint) ([]entity.StepInfo, error) {
	var steps []entity.StepInfo
	err := db.WithContext(ctx).
		Where("stage_id = ? AND is_deleted = ?", stageID, false).
		Order("step_id asc").
		Find(&steps).Error
	if err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *stepInfoRepository) FindActiveByStageIDs(ctx context.Context, db *gorm.DB, stageIDs []uint) ([]entity.StepInfo, error) {
	if len(stageIDs) == 0 {
		return nil, nil
	}
	var steps []entity.StepInfo
	err := db.WithContext(ctx).
		Where("stage_id IN ? AND is_deleted = ?", stageIDs, false).
		Order("stage_id asc, step_id asc").
		Find(&steps).Error
	if err != nil {
		return nil, err
	}
	return steps, nil
}

func (r *stepInfoRepository) SoftDeleteByStage(ctx context.Context, db *gorm.DB, stageID uint, now string) error {
	return db.WithContext(ctx).Model(&entity.StepInfo{}).
		Where("stage_id = ? AND is_deleted = ?", stageID, false).
		Updates(map[string]interface{}{"is_deleted": true, "update_time": now}).Error
}

func (r *stepInfoRepository) HardDeleteByStage(ctx context.Context, db *gorm.DB, stageID uint) error {
	return db.WithContext(ctx).Where("stage_id = ?", stageID).Delete(&entity.StepInfo{}).Error
}
