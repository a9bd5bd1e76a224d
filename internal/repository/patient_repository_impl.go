package repository

import (
	"context"
	"errors"

	"gait-analysis-backend/internal/domain/entity"
	domainRepo "gait-analysis-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return db.WithContext(ctx).Save(patient).Error
}

func (r *patientRepository) FindActiveByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Patient, error) {
	return firstPatient(db.WithContext(ctx).Where("id = ? AND is_deleted = ?", id, false))
}

func (r *patientRepository) FindActiveByCaseID(ctx context.Context, db *gorm.DB, caseID string) (*entity.Patient, error) {
	return firstPatient(db.WithContext(ctx).Where("case_id = ? AND is_deleted = ?", caseID, false))
}

func (r *patientRepository) FindActiveByDoctor(ctx context.Context, db *gorm.DB, doctorID uint) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.WithContext(ctx).Where("doctor_id = ? AND is_deleted = ?", doctorID, false).Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) FindAllActive(ctx context.Context, db *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.WithContext(ctx).Where("is_deleted = ?", false).Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// patientSortColumns whitelists sortable fields so sort_by never reaches the
// ORDER BY clause raw.
var patientSortColumns = map[string]string{
	"id":          "id",
	"username":    "username",
	"case_id":     "case_id",
	"age":         "age",
	"gender":      "gender",
	"doctor_id":   "doctor_id",
	"create_time": "create_time",
	"update_time": "update_time",
}

func (r *patientRepository) FindPage(ctx context.Context, db *gorm.DB, filter domainRepo.PatientPageFilter) ([]entity.Patient, int64, error) {
	query := db.WithContext(ctx).Model(&entity.Patient{}).Where("is_deleted = ?", false)
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := patientSortColumns[filter.SortBy]
	if !ok {
		column = "id"
	}
	order := "asc"
	if filter.SortOrder == "desc" {
		order = "desc"
	}

	var patients []entity.Patient
	err := query.Order(column + " " + order).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&patients).Error
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *patientRepository) SoftDelete(ctx context.Context, db *gorm.DB, id uint, now string) error {
	return db.WithContext(ctx).Model(&entity.Patient{}).Where("id = ?", id).
		Updates(map[string]interface{}{"is_deleted": true, "update_time": now}).Error
}

func (r *patientRepository) HardDelete(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Delete(&entity.Patient{}, id).Error
}

func (r *patientRepository) CountActive(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Patient{}).Where("is_deleted = ?", false).Count(&count).Error
	return count, err
}

func (r *patientRepository) CountActiveByDoctor(ctx context.Context, db *gorm.DB, doctorID uint) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Patient{}).
		Where("doctor_id = ? AND is_deleted = ?", doctorID, false).Count(&count).Error
	return count, err
}

func firstPatient(query *gorm.DB) (*entity.Patient, error) {
	var patient entity.Patient
	if err := query.First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}
