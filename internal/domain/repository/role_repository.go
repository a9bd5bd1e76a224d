package repository

import (
	"context"

	"gait-analysis-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type RoleRepository interface {
	Create(ctx context.Context, db *gorm.DB, role *entity.Role) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Role, error)
}
