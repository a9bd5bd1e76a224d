package repository

import (
	"context"
	"errors"

	"gait-analysis-backend/internal/domain/entity"
	domainRepo "gait-analysis-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Create(doctor).Error
}

func (r *doctorRepository) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Save(doctor).Error
}

func (r *doctorRepository) FindActiveByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Doctor, error) {
	return firstDoctor(db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false))
}

func (r *doctorRepository) FindActiveByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.Doctor, error) {
	return firstDoctor(db.WithContext(ctx).Where("username = ? AND is_deleted = ?", username, false))
}

func (r *doctorRepository) FindActiveByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Doctor, error) {
	return firstDoctor(db.WithContext(ctx).Where("email = ? AND is_deleted = ?", email, false))
}

func (r *doctorRepository) FindAllActive(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.WithContext(ctx).Where("is_deleted = ?", false).Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) SoftDelete(ctx context.Context, db *gorm.DB, id uint, now string) error {
	return db.WithContext(ctx).Model(&entity.Doctor{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "update_time": now}).Error
}

func (r *doctorRepository) CountActive(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Doctor{}).Where("is_deleted = ?", false).Count(&count).Error
	return count, err
}

func firstDoctor(query *gorm.DB) (*entity.Doctor, error) {
	var doctor entity.Doctor
	if err := query.First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}
