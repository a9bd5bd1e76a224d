package repository

import (
	"context"

	"gait-analysis-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindActiveByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Doctor, error)
	FindActiveByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.Doctor, error)
	FindActiveByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.Doctor, error)
	FindAllActive(ctx context.Context, db *gorm.DB) ([]entity.Doctor, error)
	SoftDelete(ctx context.Context, db *gorm.DB, id uint, now string) error
	CountActive(ctx context.Context, db *gorm.DB) (int64, error)
}
