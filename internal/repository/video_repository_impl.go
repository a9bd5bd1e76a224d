package repository

import (
	"context"
	"errors"

	"gait-analysis-backend/internal/domain/entity"
	domainRepo "gait-analysis-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type videoRepository struct{}

func NewVideoRepository() domainRepo.VideoRepository {
	return &videoRepository{}
}

func (r *videoRepository) Create(ctx context.Context, db *gorm.DB, video *entity.Video) error {
	return db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) Update(ctx context.Context, db *gorm.DB, video *entity.Video) error {
	return db.WithContext(ctx).Save(video).Error
}

func (r *videoRepository) FindActiveByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Video, error) {
	return firstVideo(db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false))
}

func (r *videoRepository) FindActiveOriginal(ctx context.Context, db *gorm.DB, id, patientID uint) (*entity.Video, error) {
	return firstVideo(db.WithContext(ctx).Where(
		"id = ? AND patient_id = ? AND original_video = ? AND is_deleted = ?",
		id, patientID, true, false))
}

func (r *videoRepository) FindActiveTyped(ctx context.Context, db *gorm.DB, id, patientID uint, inference bool) (*entity.Video, error) {
	return firstVideo(db.WithContext(ctx).Where(
		"id = ? AND patient_id = ? AND original_video = ? AND inference_video = ? AND is_deleted = ?",
		id, patientID, !inference, inference, false))
}

func (r *videoRepository) FindActiveByPath(ctx context.Context, db *gorm.DB, path string, inference bool) (*entity.Video, error) {
	return firstVideo(db.WithContext(ctx).Where(
		"video_path = ? AND original_video = ? AND inference_video = ? AND is_deleted = ?",
		path, !inference, inference, false))
}

func (r *videoRepository) FindActiveByPatient(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Video, error) {
	return findVideos(db.WithContext(ctx).
		Where("patient_id = ? AND is_deleted = ?", patientID, false).
		Order("create_time desc"))
}

func (r *videoRepository) FindActiveByAction(ctx context.Context, db *gorm.DB, actionID uint) ([]entity.Video, error) {
	return findVideos(db.WithContext(ctx).Where("action_id = ? AND is_deleted = ?", actionID, false))
}

func (r *videoRepository) FindActiveInferenceByAction(ctx context.Context, db *gorm.DB, actionID uint) ([]entity.Video, error) {
	return findVideos(db.WithContext(ctx).Where(
		"action_id = ? AND inference_video = ? AND is_deleted = ?", actionID, true, false))
}

func (r *videoRepository) FindByPatient(ctx context.Context, db *gorm.DB, patientID uint) ([]entity.Video, error) {
	return findVideos(db.WithContext(ctx).Where("patient_id = ?", patientID))
}

func (r *videoRepository) FindAllActive(ctx context.Context, db *gorm.DB) ([]entity.Video, error) {
	return findVideos(db.WithContext(ctx).Where("is_deleted = ?", false).Order("create_time desc"))
}

func (r *videoRepository) SoftDelete(ctx context.Context, db *gorm.DB, id uint, now string) error {
	return db.WithContext(ctx).Model(&entity.Video{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "update_time": now}).Error
}

func (r *videoRepository) HardDelete(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Delete(&entity.Video{}, id).Error
}

func (r *videoRepository) HardDeleteInferenceByAction(ctx context.Context, db *gorm.DB, actionID uint) error {
	return db.WithContext(ctx).
		Where("action_id = ? AND inference_video = ?", actionID, true).
		Delete(&entity.Video{}).Error
}

func (r *videoRepository) CountActive(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Video{}).Where("is_deleted = ?", false).Count(&count).Error
	return count, err
}

func (r *videoRepository) CountActiveByPatient(ctx context.Context, db *gorm.DB, patientID uint) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Video{}).
		Where("patient_id = ? AND is_deleted = ?", patientID, false).Count(&count).Error
	return count, err
}

func firstVideo(query *gorm.DB) (*entity.Video, error) {
	var video entity.Video
	if err := query.First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

func findVideos(query *gorm.DB) ([]entity.Video, error) {
	var videos []entity.Video
	if err := query.Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}
