package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"gait-analysis-backend/internal/delivery/dto"
	"gait-analysis-backend/internal/domain/entity"
	"gait-analysis-backend/internal/domain/repository"
	"gait-analysis-backend/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotAdmin             = errors.New("you do not have permission to access this resource")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAssignDoctorNotFound = errors.New("assigned doctor for patient reassignment not found")
	ErrSelfReassign         = errors.New("cannot reassign patients to the doctor being deleted")
)

// placeholderNA fills display fields whose referenced row is missing: an
// unassigned attending doctor, a deleted patient on an action or video.
const placeholderNA = "N/A"

// ManagementUsecase is the admin console: full control over doctors,
// patients, videos and actions, plus the operational dashboard. Every call
// re-authorizes the acting doctor against the admin role.
type ManagementUsecase interface {
	Login(ctx context.Context, req *dto.AdminLoginRequest) (*entity.Doctor, error)

	ListDoctors(ctx context.Context, adminID uint) ([]dto.DoctorDetailResponse, error)
	CreateDoctor(ctx context.Context, req *dto.CreateDoctorManagementRequest) (*dto.DoctorDetailResponse, error)
	UpdateDoctor(ctx context.Context, req *dto.UpdateDoctorManagementRequest) (*dto.DoctorDetailResponse, error)
	DeleteDoctor(ctx context.Context, req *dto.DeleteDoctorManagementRequest) error
	GetDoctor(ctx context.Context, doctorID, adminID uint) (*dto.DoctorWithPatientsResponse, error)

	ListPatients(ctx context.Context, adminID uint) ([]dto.PatientDetailResponse, error)
	CreatePatient(ctx context.Context, req *dto.CreatePatientManagementRequest) (*dto.PatientDetailResponse, error)
	UpdatePatient(ctx context.Context, req *dto.UpdatePatientManagementRequest) (*dto.PatientDetailResponse, error)
	DeletePatient(ctx context.Context, req *dto.DeletePatientManagementRequest) error
	GetPatient(ctx context.Context, patientID, adminID uint) (*dto.PatientWithRecordsResponse, error)

	ListActions(ctx context.Context, adminID uint) ([]dto.ActionDetailResponse, error)
	ListVideos(ctx context.Context, adminID uint) ([]dto.VideoDetailResponse, error)
	DeleteVideo(ctx context.Context, req *dto.DeleteVideoManagementRequest) error
	DeleteAction(ctx context.Context, req *dto.DeleteActionManagementRequest) error

	DashboardMetrics(ctx context.Context, adminID uint) (*dto.DashboardMetricsResponse, error)
	AnalysisTrends(ctx context.Context, adminID uint) ([]dto.AnalysisTrendPoint, error)
}

type managementUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	doctorRepo  repository.DoctorRepository
	patientRepo repository.PatientRepository
	videoRepo   repository.VideoRepository
	actionRepo  repository.ActionRepository
	stageRepo   repository.StageRepository
	stepRepo    repository.StepInfoRepository
}

func NewManagementUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	videoRepo repository.VideoRepository,
	actionRepo repository.ActionRepository,
	stageRepo repository.StageRepository,
	stepRepo repository.StepInfoRepository,
) ManagementUsecase {
	return &managementUsecase{
		db:          db,
		log:         log,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		videoRepo:   videoRepo,
		actionRepo:  actionRepo,
		stageRepo:   stageRepo,
		stepRepo:    stepRepo,
	}
}

func (u *managementUsecase) authorize(ctx context.Context, adminID uint) (*entity.Doctor, error) {
	admin, err := u.doctorRepo.FindActiveByID(ctx, u.db, adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrDoctorNotFound
	}
	if !admin.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return admin, nil
}

// Login authenticates by email and additionally requires the admin role.
// Credential failures and unknown emails share one error so the response
// does not reveal which part was wrong.
func (u *managementUsecase) Login(ctx context.Context, req *dto.AdminLoginRequest) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindActiveByEmail(ctx, u.db, req.Email)
	if err != nil {
		return nil, err
	}
	if doctor == nil || !password.Check(req.Password, doctor.Password) {
		return nil, ErrInvalidCredentials
	}
	if !doctor.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return doctor, nil
}

func (u *managementUsecase) ListDoctors(ctx context.Context, adminID uint) ([]dto.DoctorDetailResponse, error) {
	if _, err := u.authorize(ctx, adminID); err != nil {
		return nil, err
	}

	doctors, err := u.doctorRepo.FindAllActive(ctx, u.db)
	if err != nil {
		return nil, err
	}

	result := make([]dto.DoctorDetailResponse, 0, len(doctors))
	for _, doctor := range doctors {
		count, err := u.patientRepo.CountActiveByDoctor(ctx, u.db, doctor.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, dto.DoctorDetailResponse{Doctor: doctor, PatientCount: count})
	}
	return result, nil
}

func (u *managementUsecase) CreateDoctor(ctx context.Context, req *dto.CreateDoctorManagementRequest) (*dto.DoctorDetailResponse, error) {
	if _, err := u.authorize(ctx, req.AdminDoctorID); err != nil {
		return nil, err
	}

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
		return nil, err
	}

	roleID := entity.RoleDoctor
	if req.RoleID != nil {
		roleID = *req.RoleID
	}

	now := entity.TimestampNow()
	doctor := &entity.Doctor{
		Username:   req.Username,
		Password:   hashed,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		RoleID:     &roleID,
		Notes:      req.Notes,
		CreateTime: now,
		UpdateTime: now,
	}
	if err := u.doctorRepo.Create(ctx, u.db, doctor); err != nil {
		return nil, err
	}

	u.log.Infof("Doctor created by admin %d: id=%d", req.AdminDoctorID, doctor.ID)
	return &dto.DoctorDetailResponse{Doctor: *doctor}, nil
}

func (u *managementUsecase) UpdateDoctor(ctx context.Context, req *dto.UpdateDoctorManagementRequest) (*dto.DoctorDetailResponse, error) {
	if _, err := u.authorize(ctx, req.AdminDoctorID); err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindActiveByID(ctx, u.db, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if req.Username != nil && *req.Username != doctor.Username {
		existing, err := u.doctorRepo.FindActiveByUsername(ctx, u.db, *req.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != doctor.ID {
			return nil, ErrUsernameTaken
		}
		doctor.Username = *req.Username
	}
	if req.Email != nil && *req.Email != doctor.Email {
		existing, err := u.doctorRepo.FindActiveByEmail(ctx, u.db, *req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != doctor.ID {
			return nil, ErrEmailTaken
		}
		doctor.Email = *req.Email
	}
	if req.Phone != nil {
		doctor.Phone = req.Phone
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := password.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		doctor.Password = hashed
	}
	if req.Department != nil {
		doctor.Department = req.Department
	}
	if req.RoleID != nil {
		doctor.RoleID = req.RoleID
	}
	if req.Notes != nil {
		doctor.Notes = req.Notes
	}

	doctor.UpdateTime = entity.TimestampNow()
	if err := u.doctorRepo.Update(ctx, u.db, doctor); err != nil {
		return nil, err
	}

	count, err := u.patientRepo.CountActiveByDoctor(ctx, u.db, doctor.ID)
	if err != nil {
		return nil, err
	}
	return &dto.DoctorDetailResponse{Doctor: *doctor, PatientCount: count}, nil
}

// DeleteDoctor soft-deletes a doctor account. If the doctor still has live
// patients they are reassigned to another doctor first; deleting and
// reassignment happen in one transaction.
func (u *managementUsecase) DeleteDoctor(ctx context.Context, req *dto.DeleteDoctorManagementRequest) error {
	if _, err := u.authorize(ctx, req.AdminDoctorID); err != nil {
		return err
	}

	doctor, err := u.doctorRepo.FindActiveByID(ctx, u.db, req.DoctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	now := entity.TimestampNow()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patients, err := u.patientRepo.FindActiveByDoctor(ctx, tx, req.DoctorID)
	if err != nil {
		return err
	}
	if len(patients) > 0 {
		assignee, err := u.doctorRepo.FindActiveByID(ctx, tx, req.AssignDoctorID)
		if err != nil {
			return err
		}
		if assignee == nil {
			return ErrAssignDoctorNotFound
		}
		if assignee.ID == doctor.ID {
			return ErrSelfReassign
		}
		for i := range patients {
			patients[i].DoctorID = &assignee.ID
			patients[i].UpdateTime = now
			if err := u.patientRepo.Update(ctx, tx, &patients[i]); err != nil {
				return err
			}
		}
	}

	if err := u.doctorRepo.SoftDelete(ctx, tx, req.DoctorID, now); err != nil {
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return err
	}

	u.log.Infof("Doctor %d deleted by admin %d, %d patient(s) reassigned", req.DoctorID, req.AdminDoctorID, len(patients))
	return nil
}

func (u *managementUsecase) GetDoctor(ctx context.Context, doctorID, adminID uint) (*dto.DoctorWithPatientsResponse, error) {
	if _, err := u.authorize(ctx, adminID); err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindActiveByID(ctx, u.db, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	patients, err := u.patientRepo.FindActiveByDoctor(ctx, u.db, doctorID)
	if err != nil {
		return nil, err
	}

	return &dto.DoctorWithPatientsResponse{
		Doctor:   dto.DoctorDetailResponse{Doctor: *doctor, PatientCount: int64(len(patients))},
		Patients: patients,
	}, nil
}

func (u *managementUsecase) ListPatients(ctx context.Context, adminID uint) ([]dto.PatientDetailResponse, error) {
	if _, err := u.authorize(ctx, adminID); err != nil {
		return nil, err
	}

	patients, err := u.patientRepo.FindAllActive(ctx, u.db)
	if err != nil {
		return nil, err
	}

	doctorNames := map[uint]string{}
	result := make([]dto.PatientDetailResponse, 0, len(patients))
	for _, patient := range patients {
		detail, err := u.patientDetail(ctx, patient, doctorNames)
		if err != nil {
			return nil, err
		}
		result = append(result, *detail)
	}
	return result, nil
}

func (u *managementUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientManagementRequest) (*dto.PatientDetailResponse, error) {
	if _, err := u.authorize(ctx, req.AdminDoctorID); err != nil {
		return nil, err
	}

	existing, err := u.patientRepo.FindActiveByCaseID(ctx, u.db, req.CaseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCaseIDTaken
	}

	doctorName := placeholderNA
	if req.DoctorID != nil {
		doctor, err := u.doctorRepo.FindActiveByID(ctx, u.db, *req.DoctorID)
		if err != nil {
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
		doctorName = doctor.Username
	}

	now := entity.TimestampNow()
	patient := &entity.Patient{
		Username:   req.Username,
		Age:        req.Age,
		Gender:     req.Gender,
		CaseID:     req.CaseID,
		DoctorID:   req.DoctorID,
		Notes:      req.Notes,
		CreateTime: now,
		UpdateTime: now,
	}
	if err := u.patientRepo.Create(ctx, u.db, patient); err != nil {
		return nil, err
	}

	u.log.Infof("Patient created by admin %d: id=%d", req.AdminDoctorID, patient.ID)
	return &dto.PatientDetailResponse{Patient: *patient, AttendingDoctorName: doctorName}, nil
}

func (u *managementUsecase) UpdatePatient(ctx context.Context, req *dto.UpdatePatientManagementRequest) (*dto.PatientDetailResponse, error) {
	if _, err := u.authorize(ctx, req.AdminDoctorID); err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindActiveByID(ctx, u.db, req.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.Username != nil && *req.Username != "" {
		patient.Username = *req.Username
	}
	if req.Age != nil {
		patient.Age = req.Age
	}
	if req.Gender != nil {
		patient.Gender = req.Gender
	}
	if req.CaseID != nil && *req.CaseID != "" && *req.CaseID != patient.CaseID {
		existing, err := u.patientRepo.FindActiveByCaseID(ctx, u.db, *req.CaseID)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != patient.ID {
			return nil, ErrCaseIDTaken
		}
		patient.CaseID = *req.CaseID
	}
	if req.DoctorID != nil {
		if *req.DoctorID == 0 {
			patient.DoctorID = nil
		} else {
			doctor, err := u.doctorRepo.FindActiveByID(ctx, u.db, *req.DoctorID)
			if err != nil {
				return nil, err
			}
			if doctor == nil {
				return nil, ErrDoctorNotFound
			}
			patient.DoctorID = req.DoctorID
		}
	}
	if req.Notes != nil {
		patient.Notes = req.Notes
	}

	patient.UpdateTime = entity.TimestampNow()
	if err := u.patientRepo.Update(ctx, u.db, patient); err != nil {
		return nil, err
	}

	return u.patientDetail(ctx, *patient, map[uint]string{})
}

// DeletePatient soft-deletes the patient and cascades over videos, actions,
// stages and steps. With Force set, the patient and every dependent row are
// removed permanently instead, children first.
func (u *managementUsecase) DeletePatient(ctx context.Context, req *dto.DeletePatientManagementRequest) error {
	if _, err := u.authorize(ctx, req.AdminDoctorID); err != nil {
		return err
	}

	patient, err := u.patientRepo.FindActiveByID(ctx, u.db, req.PatientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	now := entity.TimestampNow()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if req.Force {
		actions, err := u.actionRepo.FindByPatient(ctx, tx, req.PatientID)
		if err != nil {
			return err
		}
		for _, action := range actions {
			stages, err := u.stageRepo.FindByAction(ctx, tx, action.ID)
			if err != nil {
				return err
			}
			for _, stage := range stages {
				if err := u.stepRepo.HardDeleteByStage(ctx, tx, stage.ID); err != nil {
					return err
				}
				if err := u.stageRepo.HardDelete(ctx, tx, stage.ID); err != nil {
					return err
				}
			}
			if err := u.actionRepo.HardDelete(ctx, tx, action.ID); err != nil {
				return err
			}
		}

		videos, err := u.videoRepo.FindByPatient(ctx, tx, req.PatientID)
		if err != nil {
			return err
		}
		for _, video := range videos {
			if err := u.videoRepo.HardDelete(ctx, tx, video.ID); err != nil {
				return err
			}
		}

		if err := u.patientRepo.HardDelete(ctx, tx, req.PatientID); err != nil {
			return err
		}
	} else {
		if err := u.patientRepo.SoftDelete(ctx, tx, req.PatientID, now); err != nil {
			return err
		}

		videos, err := u.videoRepo.FindActiveByPatient(ctx, tx, req.PatientID)
		if err != nil {
			return err
		}
		for _, video := range videos {
			if err := u.videoRepo.SoftDelete(ctx, tx, video.ID, now); err != nil {
				return err
			}
		}

		actions, err := u.actionRepo.FindActiveByPatient(ctx, tx, req.PatientID)
		if err != nil {
			return err
		}
		for _, action := range actions {
			if err := u.actionRepo.SoftDelete(ctx, tx, action.ID, now); err != nil {
				return err
			}
			if err := u.softDeleteStages(ctx, tx, action.ID, now); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	u.log.Infof("Patient %d deleted by admin %d (force=%v)", req.PatientID, req.AdminDoctorID, req.Force)
	return nil
}

func (u *managementUsecase) GetPatient(ctx context.Context, patientID, adminID uint) (*dto.PatientWithRecordsResponse, error) {
	if _, err := u.authorize(ctx, adminID); err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindActiveByID(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	detail, err := u.patientDetail(ctx, *patient, map[uint]string{})
	if err != nil {
		return nil, err
	}

	videos, err := u.videoRepo.FindActiveByPatient(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	actions, err := u.actionRepo.FindActiveByPatient(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}

	return &dto.PatientWithRecordsResponse{Patient: *detail, Videos: videos, Actions: actions}, nil
}

func (u *managementUsecase) ListActions(ctx context.Context, adminID uint) ([]dto.ActionDetailResponse, error) {
	if _, err := u.authorize(ctx, adminID); err != nil {
		return nil, err
	}

	actions, err := u.actionRepo.FindAllActive(ctx, u.db)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(actions, func(i, j int) bool { return actions[i].CreateTime > actions[j].CreateTime })

	patientNames := map[uint]string{}
	result := make([]dto.ActionDetailResponse, 0, len(actions))
	for _, action := range actions {
		detail := dto.ActionDetailResponse{
			Action:            action,
			PatientUsername:   placeholderNA,
			OriginalVideoPath: placeholderNA,
		}

		name, ok := patientNames[action.PatientID]
		if !ok {
			patient, err := u.patientRepo.FindActiveByID(ctx, u.db, action.PatientID)
			if err != nil {
				return nil, err
			}
			name = placeholderNA
			if patient != nil {
				name = patient.Username
			}
			patientNames[action.PatientID] = name
		}
		detail.PatientUsername = name

		video, err := u.videoRepo.FindActiveByID(ctx, u.db, action.VideoID)
		if err != nil {
			return nil, err
		}
		if video != nil {
			detail.OriginalVideoPath = video.VideoPath
		}

		result = append(result, detail)
	}
	return result, nil
}

func (u *managementUsecase) ListVideos(ctx context.Context, adminID uint) ([]dto.VideoDetailResponse, error) {
	if _, err := u.authorize(ctx, adminID); err != nil {
		return nil, err
	}

	videos, err := u.videoRepo.FindAllActive(ctx, u.db)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(videos, func(i, j int) bool { return videos[i].CreateTime > videos[j].CreateTime })

	patientNames := map[uint]string{}
	result := make([]dto.VideoDetailResponse, 0, len(videos))
	for _, video := range videos {
		name, ok := patientNames[video.PatientID]
		if !ok {
			patient, err := u.patientRepo.FindActiveByID(ctx, u.db, video.PatientID)
			if err != nil {
				return nil, err
			}
			name = placeholderNA
			if patient != nil {
				name = patient.Username
			}
			patientNames[video.PatientID] = name
		}
		result = append(result, dto.VideoDetailResponse{Video: video, PatientUsername: name})
	}
	return result, nil
}

// DeleteVideo soft-deletes a video; when the video is an original its
// actions, their stages, steps and inference videos go with it. Force
// hard-deletes the same set.
func (u *managementUsecase) DeleteVideo(ctx context.Context, req *dto.DeleteVideoManagementRequest) error {
	if _, err := u.authorize(ctx, req.AdminDoctorID); err != nil {
		return err
	}

	video, err := u.videoRepo.FindActiveByID(ctx, u.db, req.VideoID)
	if err != nil {
		return err
	}
	if video == nil {
		return ErrVideoNotFound
	}

	now := entity.TimestampNow()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if req.Force {
		if video.OriginalVideo {
			actions, err := u.actionRepo.FindByVideo(ctx, tx, req.VideoID)
			if err != nil {
				return err
			}
			for _, action := range actions {
				if err := u.videoRepo.HardDeleteInferenceByAction(ctx, tx, action.ID); err != nil {
					return err
				}
				stages, err := u.stageRepo.FindByAction(ctx, tx, action.ID)
				if err != nil {
					return err
				}
				for _, stage := range stages {
					if err := u.stepRepo.HardDeleteByStage(ctx, tx, stage.ID); err != nil {
						return err
					}
					if err := u.stageRepo.HardDelete(ctx, tx, stage.ID); err != nil {
						return err
					}
				}
				if err := u.actionRepo.HardDelete(ctx, tx, action.ID); err != nil {
					return err
				}
			}
		}
		if err := u.videoRepo.HardDelete(ctx, tx, req.VideoID); err != nil {
			return err
		}
	} else {
		if err := u.videoRepo.SoftDelete(ctx, tx, req.VideoID, now); err != nil {
			return err
		}
		if video.OriginalVideo {
			actions, err := u.actionRepo.FindActiveByVideo(ctx, tx, req.VideoID)
			if err != nil {
				return err
			}
			for _, action := range actions {
				if err := u.softDeleteActionCascade(ctx, tx, action.ID, now); err != nil {
					return err
				}
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	u.log.Infof("Video %d deleted by admin %d (force=%v)", req.VideoID, req.AdminDoctorID, req.Force)
	return nil
}

// DeleteAction soft-deletes the action with its stages, steps and inference
// videos; a root action takes its whole group down.
func (u *managementUsecase) DeleteAction(ctx context.Context, req *dto.DeleteActionManagementRequest) error {
	if _, err := u.authorize(ctx, req.AdminDoctorID); err != nil {
		return err
	}

	action, err := u.actionRepo.FindActiveByID(ctx, u.db, req.ActionID)
	if err != nil {
		return err
	}
	if action == nil {
		return ErrActionNotFound
	}

	now := entity.TimestampNow()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.softDeleteActionCascade(ctx, tx, req.ActionID, now); err != nil {
		return err
	}

	if action.IsRoot() {
		children, err := u.actionRepo.FindActiveByParent(ctx, tx, req.ActionID)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := u.softDeleteActionCascade(ctx, tx, child.ID, now); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	u.log.Infof("Action %d deleted by admin %d", req.ActionID, req.AdminDoctorID)
	return nil
}

func (u *managementUsecase) DashboardMetrics(ctx context.Context, adminID uint) (*dto.DashboardMetricsResponse, error) {
	if _, err := u.authorize(ctx, adminID); err != nil {
		return nil, err
	}

	doctorCount, err := u.doctorRepo.CountActive(ctx, u.db)
	if err != nil {
		return nil, err
	}
	patientCount, err := u.patientRepo.CountActive(ctx, u.db)
	if err != nil {
		return nil, err
	}
	videoCount, err := u.videoRepo.CountActive(ctx, u.db)
	if err != nil {
		return nil, err
	}
	analysisCount, err := u.actionRepo.CountActive(ctx, u.db)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardMetricsResponse{
		DoctorCount:       doctorCount,
		PatientCount:      patientCount,
		VideoCount:        videoCount,
		DataAnalysisCount: analysisCount,
	}, nil
}

// AnalysisTrends buckets live actions per calendar month, oldest first.
func (u *managementUsecase) AnalysisTrends(ctx context.Context, adminID uint) ([]dto.AnalysisTrendPoint, error) {
	if _, err := u.authorize(ctx, adminID); err != nil {
		return nil, err
	}

	actions, err := u.actionRepo.FindAllActive(ctx, u.db)
	if err != nil {
		return nil, err
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	counts := map[monthKey]int64{}
	for _, action := range actions {
		t, err := time.Parse(entity.TimeLayout, action.CreateTime)
		if err != nil {
			u.log.Warnf("Skipping action %d with malformed create_time %q", action.ID, action.CreateTime)
			continue
		}
		counts[monthKey{t.Year(), t.Month()}]++
	}

	keys := make([]monthKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	trends := make([]dto.AnalysisTrendPoint, 0, len(keys))
	for _, k := range keys {
		label := time.Date(k.year, k.month, 1, 0, 0, 0, 0, time.UTC).Format("Jan '06")
		trends = append(trends, dto.AnalysisTrendPoint{Date: label, Analyses: counts[k]})
	}
	return trends, nil
}

// softDeleteActionCascade soft-deletes one action with its stages, steps and
// inference videos.
func (u *managementUsecase) softDeleteActionCascade(ctx context.Context, tx *gorm.DB, actionID uint, now string) error {
	if err := u.actionRepo.SoftDelete(ctx, tx, actionID, now); err != nil {
		return err
	}
	if err := u.softDeleteStages(ctx, tx, actionID, now); err != nil {
		return err
	}

	inferenceVideos, err := u.videoRepo.FindActiveInferenceByAction(ctx, tx, actionID)
	if err != nil {
		return err
	}
	for _, video := range inferenceVideos {
		if err := u.videoRepo.SoftDelete(ctx, tx, video.ID, now); err != nil {
			return err
		}
	}
	return nil
}

func (u *managementUsecase) softDeleteStages(ctx context.Context, tx *gorm.DB, actionID uint, now string) error {
	stages, err := u.stageRepo.FindActiveByAction(ctx, tx, actionID)
	if err != nil {
		return err
	}
	for _, stage := range stages {
		if err := u.stepRepo.SoftDeleteByStage(ctx, tx, stage.ID, now); err != nil {
			return err
		}
		if err := u.stageRepo.SoftDelete(ctx, tx, stage.ID, now); err != nil {
			return err
		}
	}
	return nil
}

// patientDetail enriches a patient with the attending doctor's name and the
// patient's video/analysis counts. doctorNames caches name lookups across a
// listing.
func (u *managementUsecase) patientDetail(ctx context.Context, patient entity.Patient, doctorNames map[uint]string) (*dto.PatientDetailResponse, error) {
	doctorName := placeholderNA
	if patient.DoctorID != nil {
		name, ok := doctorNames[*patient.DoctorID]
		if !ok {
			doctor, err := u.doctorRepo.FindActiveByID(ctx, u.db, *patient.DoctorID)
			if err != nil {
				return nil, err
			}
			name = placeholderNA
			if doctor != nil {
				name = doctor.Username
			}
			doctorNames[*patient.DoctorID] = name
		}
		doctorName = name
	}

	videoCount, err := u.videoRepo.CountActiveByPatient(ctx, u.db, patient.ID)
	if err != nil {
		return nil, err
	}
	analysisCount, err := u.actionRepo.CountActiveByPatient(ctx, u.db, patient.ID)
	if err != nil {
		return nil, err
	}

	return &dto.PatientDetailResponse{
		Patient:             patient,
		AttendingDoctorName: doctorName,
		VideoCount:          videoCount,
		AnalysisCount:       analysisCount,
	}, nil
}
