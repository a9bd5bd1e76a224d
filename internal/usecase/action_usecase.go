package usecase

import (
	"context"
	"errors"
	"sort"

	"gait-analysis-backend/internal/delivery/dto"
	"gait-analysis-backend/internal/domain/entity"
	"gait-analysis-backend/internal/domain/repository"
	"gait-analysis-backend/pkg/queue"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrActionNotFound      = errors.New("action not found")
	ErrActionVideoNotFound = errors.New("original video not found for this patient")
	ErrNoActions           = errors.New("no actions found")
)

type ActionUsecase interface {
	Create(ctx context.Context, req *dto.CreateActionRequest) (*dto.CreateActionResponse, error)
	GetByPatient(ctx context.Context, patientID uint) ([]entity.Action, error)
	GetByID(ctx context.Context, actionID uint) (*entity.Action, error)
	GetByParent(ctx context.Context, parentID uint) ([]entity.Action, error)
	Delete(ctx context.Context, actionID uint) error
	UpdateData(ctx context.Context, req *dto.UpdateActionRequest) error
	UpdateStatus(ctx context.Context, req *dto.UpdateActionStatusRequest) error
	UpdateProgress(ctx context.Context, req *dto.UpdateActionProgressRequest) error
}

type actionUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	queue      *queue.Gateway
	actionRepo repository.ActionRepository
	videoRepo  repository.VideoRepository
	stageRepo  repository.StageRepository
	stepRepo   repository.StepInfoRepository
}

func NewActionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	queueGateway *queue.Gateway,
	actionRepo repository.ActionRepository,
	videoRepo repository.VideoRepository,
	stageRepo repository.StageRepository,
	stepRepo repository.StepInfoRepository,
) ActionUsecase {
	return &actionUsecase{
		db:         db,
		log:        log,
		queue:      queueGateway,
		actionRepo: actionRepo,
		videoRepo:  videoRepo,
		stageRepo:  stageRepo,
		stepRepo:   stepRepo,
	}
}

// Create registers a new analysis job over an original video and enqueues it
// for the external worker.
//
// The action's parent id is resolved in a second write: a re-analysis carries
// the requested parent, a fresh analysis becomes its own root (parent_id ==
// id), which is only known after the insert assigns the id. The job token is
// pushed onto the waiting list after the transaction commits so the worker
// can never observe an uncommitted action.
func (u *actionUsecase) Create(ctx context.Context, req *dto.CreateActionRequest) (*dto.CreateActionResponse, error) {
	video, err := u.videoRepo.FindActiveOriginal(ctx, u.db, req.VideoID, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find video %d for patient %d: %+v", req.VideoID, req.PatientID, err)
		return nil, err
	}
	if video == nil {
		return nil, ErrActionVideoNotFound
	}

	now := entity.TimestampNow()
	action := &entity.Action{
		PatientID:  req.PatientID,
		VideoID:    req.VideoID,
		Status:     entity.ActionStatusWaiting,
		Progress:   entity.ActionProgressInitial,
		CreateTime: now,
		UpdateTime: now,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.actionRepo.Create(ctx, tx, action); err != nil {
		u.log.Errorf("Failed to create action: %+v", err)
		return nil, err
	}

	parentID := action.ID
	if req.ParentID != nil {
		parentID = *req.ParentID
	}
	action.ParentID = &parentID
	if err := u.actionRepo.Update(ctx, tx, action); err != nil {
		u.log.Errorf("Failed to set parent for action %d: %+v", action.ID, err)
		return nil, err
	}

	video.ActionID = &action.ID
	video.UpdateTime = entity.TimestampNow()
	if err := u.videoRepo.Update(ctx, tx, video); err != nil {
		u.log.Errorf("Failed to bind video %d to action %d: %+v", video.ID, action.ID, err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	token := queue.JobToken{PatientID: req.PatientID, ActionID: action.ID, VideoID: req.VideoID}
	if err := u.queue.PushWaiting(ctx, token); err != nil {
		u.log.Errorf("Failed to enqueue action %d: %+v", action.ID, err)
		return nil, err
	}

	u.log.Infof("Action created: id=%d, patient=%d, video=%d", action.ID, req.PatientID, req.VideoID)
	return &dto.CreateActionResponse{ActionID: action.ID}, nil
}

func (u *actionUsecase) GetByPatient(ctx context.Context, patientID uint) ([]entity.Action, error) {
	actions, err := u.actionRepo.FindActiveByPatient(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	if len(actions) == 0 {
		return nil, ErrNoActions
	}
	return actions, nil
}

func (u *actionUsecase) GetByID(ctx context.Context, actionID uint) (*entity.Action, error) {
	action, err := u.actionRepo.FindActiveByID(ctx, u.db, actionID)
	if err != nil {
		return nil, err
	}
	if action == nil {
		return nil, ErrActionNotFound
	}
	return action, nil
}

func (u *actionUsecase) GetByParent(ctx context.Context, parentID uint) ([]entity.Action, error) {
	actions, err := u.actionRepo.FindActiveByParent(ctx, u.db, parentID)
	if err != nil {
		return nil, err
	}
	if len(actions) == 0 {
		return nil, ErrNoActions
	}
	return actions, nil
}

// Delete soft-deletes the action and its stages and steps. Deleting a root
// action additionally takes down every action in its group and the videos
// bound to it. The job token is dropped from both worker lists afterwards.
func (u *actionUsecase) Delete(ctx context.Context, actionID uint) error {
	action, err := u.actionRepo.FindActiveByID(ctx, u.db, actionID)
	if err != nil {
		return err
	}
	if action == nil {
		return ErrActionNotFound
	}

	now := entity.TimestampNow()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.actionRepo.SoftDelete(ctx, tx, actionID, now); err != nil {
		return err
	}

	if action.IsRoot() {
		children, err := u.actionRepo.FindActiveByParent(ctx, tx, actionID)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := u.actionRepo.SoftDelete(ctx, tx, child.ID, now); err != nil {
				return err
			}
			if err := u.softDeleteStages(ctx, tx, child.ID, now); err != nil {
				return err
			}
		}

		videos, err := u.videoRepo.FindActiveByAction(ctx, tx, actionID)
		if err != nil {
			return err
		}
		for _, video := range videos {
			if err := u.videoRepo.SoftDelete(ctx, tx, video.ID, now); err != nil {
				return err
			}
		}
	}

	if err := u.softDeleteStages(ctx, tx, actionID, now); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	token := queue.JobToken{PatientID: action.PatientID, ActionID: actionID, VideoID: action.VideoID}
	if err := u.queue.Remove(ctx, token.Encode()); err != nil {
		// The rows are gone; a stale token only costs the worker a lookup.
		u.log.Warnf("Failed to remove token %s from worker lists: %+v", token.Encode(), err)
	}

	u.log.Infof("Action deleted: id=%d, root=%v", actionID, action.IsRoot())
	return nil
}

func (u *actionUsecase) softDeleteStages(ctx context.Context, tx *gorm.DB, actionID uint, now string) error {
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

// UpdateData appends the submitted stages and steps to the action. Rows are
// append-only: resubmitting results adds new stages rather than replacing
// the old ones. Stages are stored in stage_n order and steps get 1-based
// positions within their stage.
func (u *actionUsecase) UpdateData(ctx context.Context, req *dto.UpdateActionRequest) error {
	action, err := u.actionRepo.FindActiveByID(ctx, u.db, req.ActionID)
	if err != nil {
		return err
	}
	if action == nil {
		return ErrActionNotFound
	}

	stages := make([]dto.StageData, len(req.Data))
	copy(stages, req.Data)
	sort.SliceStable(stages, func(i, j int) bool { return stages[i].StageN < stages[j].StageN })

	now := entity.TimestampNow()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	for _, stageData := range stages {
		stage := &entity.Stage{
			ActionID:   req.ActionID,
			StageN:     stageData.StageN,
			StartFrame: stageData.StartFrame,
			EndFrame:   stageData.EndFrame,
			CreateTime: now,
			UpdateTime: now,
		}
		if err := u.stageRepo.Create(ctx, tx, stage); err != nil {
			return err
		}

		for n, stepData := range stageData.StepsInfo {
			step := &entity.StepInfo{
				StageID:       stage.ID,
				StepID:        n + 1,
				StartFrame:    stepData.StartFrame,
				EndFrame:      stepData.EndFrame,
				StepLength:    stepData.StepLength,
				StepSpeed:     stepData.StepSpeed,
				FrontLeg:      stepData.FrontLeg,
				SupportTime:   stepData.SupportTime,
				LiftoffHeight: stepData.LiftoffHeight,
				HipMinDegree:  stepData.HipMinDegree,
				HipMaxDegree:  stepData.HipMaxDegree,
				FirstStep:     stepData.FirstStep,
				StepsDiff:     stepData.StepsDiff,
				StrideLength:  stepData.StrideLength,
				StepWidth:     stepData.StepWidth,
				CreateTime:    now,
				UpdateTime:    now,
			}
			if err := u.stepRepo.Create(ctx, tx, step); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	u.log.Infof("Action %d received %d stage(s)", req.ActionID, len(stages))
	return nil
}

// UpdateStatus records the worker-reported status. Any status other than
// "running" also retires the worker's job token from the running list; the
// token is removed even if the action row no longer exists.
func (u *actionUsecase) UpdateStatus(ctx context.Context, req *dto.UpdateActionStatusRequest) error {
	if req.Status != entity.ActionStatusRunning && req.Action != "" {
		if err := u.queue.RemoveRunning(ctx, req.Action); err != nil {
			u.log.Warnf("Failed to remove token %s from running list: %+v", req.Action, err)
		}
	}

	action, err := u.actionRepo.FindActiveByID(ctx, u.db, req.ActionID)
	if err != nil {
		return err
	}
	if action == nil {
		return ErrActionNotFound
	}

	action.Status = req.Status
	action.UpdateTime = entity.TimestampNow()
	return u.actionRepo.Update(ctx, u.db, action)
}

func (u *actionUsecase) UpdateProgress(ctx context.Context, req *dto.UpdateActionProgressRequest) error {
	action, err := u.actionRepo.FindActiveByID(ctx, u.db, req.ActionID)
	if err != nil {
		return err
	}
	if action == nil {
		return ErrActionNotFound
	}

	action.Progress = req.Progress
	action.UpdateTime = entity.TimestampNow()
	return u.actionRepo.Update(ctx, u.db, action)
}
