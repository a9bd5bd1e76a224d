package repository

import (
	"context"
	"errors"

	"gait-analysis-backend/internal/domain/entity"
	domainRepo "gait-analysis-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type actionRepository struct{}

func NewActionRepository() domainRepo.ActionRepository {
	return &actionRepository{}
}

func (r *actionRepository) Create(ctx context.Context, db *gorm.DB, action *entity.Action) error {
	return db.WithContext(ctx).Create(action).Error
}

func (r *actionRepository) Update(ctx context.Context, db *gorm.DB, action *entity.Action) error {
	return db.WithContext(ctx).Save(action).Error
}

func (r *actionRepository) FindActiveByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Action, error) {
	var action entity.Action
	err := db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false).First(&action).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &action, nil
}

func (r *actionRepository) FindActiveByPatient(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Action, error) {
	return findActions(db.WithContext(ctx).
		Where("patient_id = ? AND is_deleted = ?", patientID, false).
		Order("create_time desc"))
}

func (r *actionRepository) FindActiveByParent(ctx context.Context, db *gorm.DB, parentID uint) ([]entity.Action, error) {
	return findActions(db.WithContext(ctx).
		Where("parent_id = ? AND is_deleted = ?", parentID, false).
		Order("create_time desc"))
}

func (r *actionRepository) FindActiveByVideo(ctx context.Context, db *gorm.DB, videoID uint) ([]entity.Action, error) {
	return findActions(db.WithContext(ctx).Where("video_id = ? AND is_deleted = ?", videoID, false))
}

func (r *actionRepository) FindAllActive(ctx context.Context, db *gorm.DB) ([]entity.Action, error) {
	return findActions(db.WithContext(ctx).Where("is_deleted = ?", false).Order("create_time desc"))
}

func (r *actionRepository) FindByPatient(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Action, error) {
	return findActions(db.WithContext(ctx).Where("patient_id = ?", patientID))
}

func (r *actionRepository) FindByVideo(ctx context.Context, db *gorm.DB, videoID uint) ([]entity.Action, error) {
	return findActions(db.WithContext(ctx).Where("video_id = ?", videoID))
}

func (r *actionRepository) SoftDelete(ctx context.Context, db *gorm.DB, id uint, now string) error {
	return db.WithContext(ctx).Model(&entity.Action{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "update_time": now}).Error
}

func (r *actionRepository) HardDelete(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Delete(&entity.Action{}, id).Error
}

func (r *actionRepository) CountActive(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Action{}).Where("is_deleted = ?", false).Count(&count).Error
	return count, err
}

func (r *actionRepository) CountActiveByPatient(ctx context.Context, db *gorm.DB, patientID uint) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Action{}).
		Where("patient_id = ? AND is_deleted = ?", patientID, false).Count(&count).Error
	return count, err
}

func findActions(query *gorm.DB) ([]entity.Action, error) {
	var actions []entity.Action
	if err := query.Find(&actions).Error; err != nil {
		return nil, err
	}
	return actions, nil
}
