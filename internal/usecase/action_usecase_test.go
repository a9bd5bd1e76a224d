package usecase

import (
	"context"
	"testing"

	"gait-analysis-backend/internal/delivery/dto"
	"gait-analysis-backend/internal/domain/entity"
	"gait-analysis-backend/internal/repository"
	"gait-analysis-backend/pkg/queue"

	"gorm.io/gorm"
)

func newActionUsecase(t *testing.T) (ActionUsecase, *gorm.DB, *queue.Gateway) {
	t.Helper()
	db := newTestDB(t)
	gateway, _ := newTestQueue(t)
	u := NewActionUsecase(
		db, testLogger(), gateway,
		repository.NewActionRepository(),
		repository.NewVideoRepository(),
		repository.NewStageRepository(),
		repository.NewStepInfoRepository(),
	)
	return u, db, gateway
}

func TestCreateActionBecomesOwnRoot(t *testing.T) {
	u, db, gateway := newActionUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)
	video := seedOriginalVideo(t, db, patient.ID)

	result, err := u.Create(ctx, &dto.CreateActionRequest{PatientID: patient.ID, VideoID: video.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var action entity.Action
	if err := db.First(&action, result.ActionID).Error; err != nil {
		t.Fatalf("load action: %v", err)
	}
	if action.ParentID == nil || *action.ParentID != action.ID {
		t.Fatalf("expected self-rooted action, got parent %v", action.ParentID)
	}
	if action.Status != entity.ActionStatusWaiting || action.Progress != entity.ActionProgressInitial {
		t.Fatalf("unexpected initial state: %s / %s", action.Status, action.Progress)
	}

	var bound entity.Video
	if err := db.First(&bound, video.ID).Error; err != nil {
		t.Fatalf("load video: %v", err)
	}
	if bound.ActionID == nil || *bound.ActionID != action.ID {
		t.Fatalf("video not bound to action: %v", bound.ActionID)
	}

	waiting, err := gateway.Waiting(ctx)
	if err != nil {
		t.Fatalf("waiting list: %v", err)
	}
	want := queue.JobToken{PatientID: patient.ID, ActionID: action.ID, VideoID: video.ID}.Encode()
	if len(waiting) != 1 || waiting[0] != want {
		t.Fatalf("expected waiting list [%s], got %v", want, waiting)
	}
}

func TestCreateActionKeepsRequestedParent(t *testing.T) {
	u, db, _ := newActionUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)
	video := seedOriginalVideo(t, db, patient.ID)

	root, err := u.Create(ctx, &dto.CreateActionRequest{PatientID: patient.ID, VideoID: video.ID})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	child, err := u.Create(ctx, &dto.CreateActionRequest{
		PatientID: patient.ID,
		VideoID:   video.ID,
		ParentID:  uintPtr(root.ActionID),
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	var action entity.Action
	if err := db.First(&action, child.ActionID).Error; err != nil {
		t.Fatalf("load child: %v", err)
	}
	if action.ParentID == nil || *action.ParentID != root.ActionID {
		t.Fatalf("expected parent %d, got %v", root.ActionID, action.ParentID)
	}
}

func TestCreateActionRejectsMissingVideo(t *testing.T) {
	u, db, _ := newActionUsecase(t)

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)

	_, err := u.Create(context.Background(), &dto.CreateActionRequest{PatientID: patient.ID, VideoID: 999})
	if err != ErrActionVideoNotFound {
		t.Fatalf("expected ErrActionVideoNotFound, got %v", err)
	}
}

func TestUpdateDataAppendsStagesInOrder(t *testing.T) {
	u, db, _ := newActionUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)
	video := seedOriginalVideo(t, db, patient.ID)
	created, err := u.Create(ctx, &dto.CreateActionRequest{PatientID: patient.ID, VideoID: video.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	req := &dto.UpdateActionRequest{
		ActionID: created.ActionID,
		Data: []dto.StageData{
			{StageN: 2, StepsInfo: []dto.StepInfoData{{FrontLeg: "right", StepLength: 0.5}}},
			{StageN: 1, StepsInfo: []dto.StepInfoData{
				{FrontLeg: "left", StepLength: 0.4, FirstStep: true},
				{FrontLeg: "right", StepLength: 0.6},
			}},
		},
	}
	if err := u.UpdateData(ctx, req); err != nil {
		t.Fatalf("update data: %v", err)
	}

	var stages []entity.Stage
	if err := db.Order("id").Find(&stages).Error; err != nil {
		t.Fatalf("load stages: %v", err)
	}
	if len(stages) != 2 || stages[0].StageN != 1 || stages[1].StageN != 2 {
		t.Fatalf("expected stages stored in stage_n order, got %+v", stages)
	}

	var steps []entity.StepInfo
	if err := db.Where("stage_id = ?", stages[0].ID).Order("id").Find(&steps).Error; err != nil {
		t.Fatalf("load steps: %v", err)
	}
	if len(steps) != 2 || steps[0].StepID != 1 || steps[1].StepID != 2 {
		t.Fatalf("expected 1-based step ids, got %+v", steps)
	}

	// A resubmission appends rather than replacing.
	if err := u.UpdateData(ctx, req); err != nil {
		t.Fatalf("second update: %v", err)
	}
	var count int64
	db.Model(&entity.Stage{}).Count(&count)
	if count != 4 {
		t.Fatalf("expected 4 stages after resubmission, got %d", count)
	}
}

func TestDeleteRootActionCascadesGroup(t *testing.T) {
	u, db, gateway := newActionUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)
	video := seedOriginalVideo(t, db, patient.ID)

	root, err := u.Create(ctx, &dto.CreateActionRequest{PatientID: patient.ID, VideoID: video.ID})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	child, err := u.Create(ctx, &dto.CreateActionRequest{
		PatientID: patient.ID,
		VideoID:   video.ID,
		ParentID:  uintPtr(root.ActionID),
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if err := u.UpdateData(ctx, &dto.UpdateActionRequest{
		ActionID: child.ActionID,
		Data:     []dto.StageData{{StageN: 1, StepsInfo: []dto.StepInfoData{{FrontLeg: "left"}}}},
	}); err != nil {
		t.Fatalf("update data: %v", err)
	}

	if err := u.Delete(ctx, root.ActionID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var liveActions, liveStages, liveSteps, liveVideos int64
	db.Model(&entity.Action{}).Where("is_deleted = ?", false).Count(&liveActions)
	db.Model(&entity.Stage{}).Where("is_deleted = ?", false).Count(&liveStages)
	db.Model(&entity.StepInfo{}).Where("is_deleted = ?", false).Count(&liveSteps)
	db.Model(&entity.Video{}).Where("is_deleted = ?", false).Count(&liveVideos)
	if liveActions != 0 || liveStages != 0 || liveSteps != 0 {
		t.Fatalf("expected full cascade, live actions=%d stages=%d steps=%d", liveActions, liveStages, liveSteps)
	}
	if liveVideos != 0 {
		t.Fatalf("expected bound videos soft-deleted, %d still live", liveVideos)
	}

	waiting, _ := gateway.Waiting(ctx)
	for _, token := range waiting {
		parsed, err := queue.ParseToken(token)
		if err != nil {
			t.Fatalf("parse token %q: %v", token, err)
		}
		if parsed.ActionID == root.ActionID {
			t.Fatalf("root token still on waiting list: %v", waiting)
		}
	}
}

func TestDeleteChildActionLeavesGroupAlive(t *testing.T) {
	u, db, _ := newActionUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)
	video := seedOriginalVideo(t, db, patient.ID)

	root, err := u.Create(ctx, &dto.CreateActionRequest{PatientID: patient.ID, VideoID: video.ID})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	child, err := u.Create(ctx, &dto.CreateActionRequest{
		PatientID: patient.ID,
		VideoID:   video.ID,
		ParentID:  uintPtr(root.ActionID),
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}

	if err := u.Delete(ctx, child.ActionID); err != nil {
		t.Fatalf("delete child: %v", err)
	}

	var rootAction entity.Action
	if err := db.First(&rootAction, root.ActionID).Error; err != nil {
		t.Fatalf("load root: %v", err)
	}
	if rootAction.IsDeleted {
		t.Fatal("deleting a child must not take down the root")
	}
	var liveVideos int64
	db.Model(&entity.Video{}).Where("is_deleted = ?", false).Count(&liveVideos)
	if liveVideos != 1 {
		t.Fatalf("expected video untouched, %d live", liveVideos)
	}
}

func TestUpdateStatusRetiresRunningToken(t *testing.T) {
	u, db, gateway := newActionUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)
	video := seedOriginalVideo(t, db, patient.ID)
	created, err := u.Create(ctx, &dto.CreateActionRequest{PatientID: patient.ID, VideoID: video.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	token := queue.JobToken{PatientID: patient.ID, ActionID: created.ActionID, VideoID: video.ID}
	// Simulate the worker having claimed the job.
	if err := gateway.RemoveWaiting(ctx, token.Encode()); err != nil {
		t.Fatalf("remove waiting: %v", err)
	}

	if err := u.UpdateStatus(ctx, &dto.UpdateActionStatusRequest{
		ActionID: created.ActionID,
		Status:   entity.ActionStatusCompleted,
		Action:   token.Encode(),
	}); err != nil {
		t.Fatalf("update status: %v", err)
	}

	var action entity.Action
	if err := db.First(&action, created.ActionID).Error; err != nil {
		t.Fatalf("load action: %v", err)
	}
	if action.Status != entity.ActionStatusCompleted {
		t.Fatalf("expected completed, got %s", action.Status)
	}
	running, _ := gateway.Running(ctx)
	if len(running) != 0 {
		t.Fatalf("running list should be empty, got %v", running)
	}
}

func TestUpdateProgress(t *testing.T) {
	u, db, _ := newActionUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)
	video := seedOriginalVideo(t, db, patient.ID)
	created, err := u.Create(ctx, &dto.CreateActionRequest{PatientID: patient.ID, VideoID: video.ID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := u.UpdateProgress(ctx, &dto.UpdateActionProgressRequest{
		ActionID: created.ActionID,
		Progress: "45%",
	}); err != nil {
		t.Fatalf("update progress: %v", err)
	}

	action, err := u.GetByID(ctx, created.ActionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if action.Progress != "45%" {
		t.Fatalf("expected progress 45%%, got %s", action.Progress)
	}

	if err := u.UpdateProgress(ctx, &dto.UpdateActionProgressRequest{ActionID: 999, Progress: "1%"}); err != ErrActionNotFound {
		t.Fatalf("expected ErrActionNotFound, got %v", err)
	}
}
