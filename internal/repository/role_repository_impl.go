package repository

import (
	"context"
	"errors"

	"gait-analysis-backend/internal/domain/entity"
	domainRepo "gait-analysis-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type roleRepository struct{}

func NewRoleRepository() domainRepo.RoleRepository {
	return &roleRepository{}
}

func (r *roleRepository) Create(ctx context.Context, db *gorm.DB, role *entity.Role) error {
	return db.WithContext(ctx).Create(role).Error
}

func (r *roleRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Role, error) {
	var role entity.Role
	if err := db.WithContext(ctx).First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}
