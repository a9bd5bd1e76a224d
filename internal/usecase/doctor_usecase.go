package usecase

import (
	"context"
	"errors"

	"gait-analysis-backend/internal/delivery/dto"
	"gait-analysis-backend/internal/domain/entity"
	"gait-analysis-backend/internal/domain/repository"
	"gait-analysis-backend/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrEmailTaken      = errors.New("email already exists")
)

// DefaultDepartment is assigned when registration omits one.
const DefaultDepartment = "康复科"

type DoctorUsecase interface {
	Register(ctx context.Context, req *dto.RegisterDoctorRequest) (*entity.Doctor, error)
	Login(ctx context.Context, req *dto.DoctorLoginRequest) (*entity.Doctor, error)
	GetAll(ctx context.Context) ([]entity.Doctor, error)
	GetByID(ctx context.Context, doctorID uint) (*entity.Doctor, error)
	GetByName(ctx context.Context, username string) (*entity.Doctor, error)
	Update(ctx context.Context, req *dto.UpdateDoctorRequest) (*entity.Doctor, error)
	Delete(ctx context.Context, doctorID uint, plainPassword string) error
}

type doctorUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
}

func NewDoctorUsecase(db *gorm.DB, log *logrus.Logger, doctorRepo repository.DoctorRepository) DoctorUsecase {
	return &doctorUsecase{db: db, log: log, doctorRepo: doctorRepo}
}

func (u *doctorUsecase) Register(ctx context.Context, req *dto.RegisterDoctorRequest) (*entity.Doctor, error) {
	existing, err := u.doctorRepo.FindActiveByUsername(ctx, u.db, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}
	existing, err = u.doctorRepo.FindActiveByEmail(ctx, u.db, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		u.log.Errorf("Failed to hash password: %+v", err)
		return nil, err
	}

	department := req.Department
	if department == "" {
		department = DefaultDepartment
	}

	now := entity.TimestampNow()
	doctor := &entity.Doctor{
		Username:   req.Username,
		Password:   hashed,
		Email:      req.Email,
		Phone:      &req.Phone,
		Department: &department,
		CreateTime: now,
		UpdateTime: now,
	}
	if err := u.doctorRepo.Create(ctx, u.db, doctor); err != nil {
		u.log.Errorf("Failed to register doctor %s: %+v", req.Username, err)
		return nil, err
	}

	u.log.Infof("Doctor registered: id=%d, username=%s", doctor.ID, doctor.Username)
	return doctor, nil
}

func (u *doctorUsecase) Login(ctx context.Context, req *dto.DoctorLoginRequest) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindActiveByUsername(ctx, u.db, req.Username)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !password.Check(req.Password, doctor.Password) {
		return nil, ErrInvalidPassword
	}
	return doctor, nil
}

func (u *doctorUsecase) GetAll(ctx context.Context) ([]entity.Doctor, error) {
	return u.doctorRepo.FindAllActive(ctx, u.db)
}

func (u *doctorUsecase) GetByID(ctx context.Context, doctorID uint) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindActiveByID(ctx, u.db, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

func (u *doctorUsecase) GetByName(ctx context.Context, username string) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindActiveByUsername(ctx, u.db, username)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}

// Update rewrites the doctor's contact data, password and department.
func (u *doctorUsecase) Update(ctx context.Context, req *dto.UpdateDoctorRequest) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindActiveByID(ctx, u.db, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	department := req.Department
	if department == "" {
		department = DefaultDepartment
	}

	doctor.Email = req.Email
	doctor.Phone = &req.Phone
	doctor.Password = hashed
	doctor.Department = &department
	doctor.UpdateTime = entity.TimestampNow()
	if err := u.doctorRepo.Update(ctx, u.db, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

// Delete soft-deletes the doctor's own account after re-verifying the
// password.
func (u *doctorUsecase) Delete(ctx context.Context, doctorID uint, plainPassword string) error {
	doctor, err := u.doctorRepo.FindActiveByID(ctx, u.db, doctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}
	if !password.Check(plainPassword, doctor.Password) {
		return ErrInvalidPassword
	}

	if err := u.doctorRepo.SoftDelete(ctx, u.db, doctorID, entity.TimestampNow()); err != nil {
		return err
	}
	u.log.Infof("Doctor deleted: id=%d", doctorID)
	return nil
}
