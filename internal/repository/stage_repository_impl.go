package repository

import (
	"context"

	"gait-analysis-backend/internal/domain/entity"
	domainRepo "gait-analysis-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type stageRepository struct{}

func NewStageRepository() domainRepo.StageRepository {
	return &stageRepository{}
}

func (r *stageRepository) Create(ctx context.Context, db *gorm.DB, stage *entity.Stage) error {
	return db.WithContext(ctx).Create(stage).Error
}

func (r *stageRepository) FindActiveByAction(ctx context.Context, db *gorm.DB, actionID uint) ([]entity.Stage, error) {
	var stages []entity.Stage
	err := db.WithContext(ctx).
		Where("action_id = ? AND is_deleted = ?", actionID, false).
		Order("stage_n asc").
		Find(&stages).Error
	if err != nil {
		return nil, err
	}
	return stages, nil
}

func (r *stageRepository) FindByAction(ctx context.Context, db *gorm.DB, actionID uint) ([]entity.Stage, error) {
	var stages []entity.Stage
	err := db.WithContext(ctx).Where("action_id = ?", actionID).Find(&stages).Error
	if err != nil {
		return nil, err
	}
	return stages, nil
}

func (r *stageRepository) ActiveIDsByAction(ctx context.Context, db *gorm.DB, actionID uint) ([]uint, error) {
	var ids []uint
	err := db.WithContext(ctx).Model(&entity.Stage{}).
		Where("action_id = ? AND is_deleted = ?", actionID, false).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *stageRepository) SoftDelete(ctx context.Context, db *gorm.DB, id uint, now string) error {
	return db.WithContext(ctx).Model(&entity.Stage{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "update_time": now}).Error
}

func (r *stageRepository) HardDelete(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Delete(&entity.Stage{}, id).Error
}
