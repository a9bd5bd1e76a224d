package usecase

import (
	"context"
	"errors"

	"gait-analysis-backend/internal/delivery/dto"
	"gait-analysis-backend/internal/domain/entity"
	"gait-analysis-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrCaseIDTaken     = errors.New("case id already exists")
	ErrCaseIDMismatch  = errors.New("case id verification failed")
	// ErrPatientNotOwned covers both a missing patient and one assigned to
	// a different doctor; the response does not reveal which.
	ErrPatientNotOwned = errors.New("patient not found or not assigned to this doctor")
)

type PatientUsecase interface {
	Login(ctx context.Context, req *dto.PatientLoginRequest) (*entity.Patient, error)
	Insert(ctx context.Context, req *dto.CreatePatientRequest) (*entity.Patient, error)
	GetAllByDoctor(ctx context.Context, doctorID uint) ([]entity.Patient, error)
	Update(ctx context.Context, req *dto.UpdatePatientRequest) (*entity.Patient, error)
	Delete(ctx context.Context, patientID, doctorID uint) error
	GetPage(ctx context.Context, filter repository.PatientPageFilter) (*dto.PatientPageResponse, error)
}

type patientUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
) PatientUsecase {
	return &patientUsecase{db: db, log: log, patientRepo: patientRepo, doctorRepo: doctorRepo}
}

// Login authenticates a patient by case id. The client submits the case id
// twice; a mismatch rejects the login.
func (u *patientUsecase) Login(ctx context.Context, req *dto.PatientLoginRequest) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindActiveByCaseID(ctx, u.db, req.CaseID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if patient.CaseID != req.VerifyCaseID {
		return nil, ErrCaseIDMismatch
	}
	return patient, nil
}

// Insert creates a patient. The case id must be unique among live patients;
// a soft-deleted patient's case id may be reissued.
func (u *patientUsecase) Insert(ctx context.Context, req *dto.CreatePatientRequest) (*entity.Patient, error) {
	existing, err := u.patientRepo.FindActiveByCaseID(ctx, u.db, req.CaseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCaseIDTaken
	}

	now := entity.TimestampNow()
	age := req.Age
	gender := req.Gender
	doctorID := req.DoctorID
	patient := &entity.Patient{
		Username:   req.Username,
		Age:        &age,
		Gender:     &gender,
		CaseID:     req.CaseID,
		DoctorID:   &doctorID,
		CreateTime: now,
		UpdateTime: now,
	}
	if err := u.patientRepo.Create(ctx, u.db, patient); err != nil {
		u.log.Errorf("Failed to insert patient %s: %+v", req.Username, err)
		return nil, err
	}

	u.log.Infof("Patient created: id=%d, case_id=%s", patient.ID, patient.CaseID)
	return patient, nil
}

// GetAllByDoctor lists the doctor's patients; an admin sees every patient.
func (u *patientUsecase) GetAllByDoctor(ctx context.Context, doctorID uint) ([]entity.Patient, error) {
	doctor, err := u.doctorRepo.FindActiveByID(ctx, u.db, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if doctor.IsAdmin() {
		return u.patientRepo.FindAllActive(ctx, u.db)
	}
	return u.patientRepo.FindActiveByDoctor(ctx, u.db, doctorID)
}

// Update rewrites the patient record. Non-admin doctors may only touch their
// own patients. Changing the case id re-checks uniqueness.
func (u *patientUsecase) Update(ctx context.Context, req *dto.UpdatePatientRequest) (*entity.Patient, error) {
	patient, err := u.findOwned(ctx, req.PatientID, req.DoctorID)
	if err != nil {
		return nil, err
	}

	if req.CaseID != patient.CaseID {
		existing, err := u.patientRepo.FindActiveByCaseID(ctx, u.db, req.CaseID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrCaseIDTaken
		}
	}

	age := req.Age
	gender := req.Gender
	doctorID := req.DoctorID
	patient.Username = req.Username
	patient.Age = &age
	patient.Gender = &gender
	patient.CaseID = req.CaseID
	patient.DoctorID = &doctorID
	patient.UpdateTime = entity.TimestampNow()
	if err := u.patientRepo.Update(ctx, u.db, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// Delete soft-deletes the patient record. Videos and actions stay live;
// only the management API cascades them.
func (u *patientUsecase) Delete(ctx context.Context, patientID, doctorID uint) error {
	patient, err := u.findOwned(ctx, patientID, doctorID)
	if err != nil {
		return err
	}

	if err := u.patientRepo.SoftDelete(ctx, u.db, patient.ID, entity.TimestampNow()); err != nil {
		return err
	}
	u.log.Infof("Patient deleted: id=%d, by doctor=%d", patientID, doctorID)
	return nil
}

func (u *patientUsecase) GetPage(ctx context.Context, filter repository.PatientPageFilter) (*dto.PatientPageResponse, error) {
	patients, total, err := u.patientRepo.FindPage(ctx, u.db, filter)
	if err != nil {
		return nil, err
	}
	return &dto.PatientPageResponse{
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Patients: patients,
	}, nil
}

// findOwned resolves the patient subject to the doctor's role: an admin may
// reach any live patient, other doctors only their own.
func (u *patientUsecase) findOwned(ctx context.Context, patientID, doctorID uint) (*entity.Patient, error) {
	doctor, err := u.doctorRepo.FindActiveByID(ctx, u.db, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	patient, err := u.patientRepo.FindActiveByID(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if !doctor.IsAdmin() {
		if patient.DoctorID == nil || *patient.DoctorID != doctorID {
			return nil, ErrPatientNotOwned
		}
	}
	return patient, nil
}
