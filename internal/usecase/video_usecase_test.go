package usecase

import (
	"context"
	"os"
	"strings"
	"testing"

	"gait-analysis-backend/internal/delivery/dto"
	"gait-analysis-backend/internal/domain/entity"
	"gait-analysis-backend/internal/media"
	"gait-analysis-backend/internal/repository"

	"gorm.io/gorm"
)

func newVideoUsecase(t *testing.T) (VideoUsecase, *gorm.DB, *media.Store) {
	t.Helper()
	db := newTestDB(t)
	store := media.NewStore(t.TempDir())
	if err := store.EnsureDirs(); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}
	u := NewVideoUsecase(
		db, testLogger(), store, media.NewConverter("ffmpeg", testLogger()),
		repository.NewVideoRepository(),
		repository.NewPatientRepository(),
		repository.NewDoctorRepository(),
		repository.NewActionRepository(),
		repository.NewStageRepository(),
		repository.NewStepInfoRepository(),
	)
	return u, db, store
}

func TestUploadStoresMP4AsIs(t *testing.T) {
	u, db, _ := newVideoUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)

	result, err := u.Upload(ctx, patient.ID, "morning walk.mp4", "video/mp4", strings.NewReader("not really a video"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	var video entity.Video
	if err := db.First(&video, result.VideoID).Error; err != nil {
		t.Fatalf("load video: %v", err)
	}
	if !video.OriginalVideo || video.InferenceVideo {
		t.Fatalf("expected an original video row, got %+v", video)
	}
	if _, err := os.Stat(video.VideoPath); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if !strings.HasSuffix(video.VideoPath, ".mp4") {
		t.Fatalf("expected .mp4 path, got %s", video.VideoPath)
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	u, db, _ := newVideoUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)

	if _, err := u.Upload(ctx, patient.ID, "notes.txt", "video/mp4", strings.NewReader("text")); err != ErrUnsupportedFormat {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := u.Upload(ctx, 999, "walk.mp4", "video/mp4", strings.NewReader("x")); err != ErrPatientNotFound {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestUploadRejectsNonVideoContentType(t *testing.T) {
	u, db, _ := newVideoUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)

	// A text payload disguised with an .mp4 name must not pass.
	if _, err := u.Upload(ctx, patient.ID, "not-a-video.mp4", "text/plain", strings.NewReader("plain text")); err != ErrNotVideoContent {
		t.Fatalf("expected ErrNotVideoContent, got %v", err)
	}
	if _, err := u.Upload(ctx, patient.ID, "walk.mp4", "", strings.NewReader("x")); err != ErrNotVideoContent {
		t.Fatalf("expected ErrNotVideoContent for missing content type, got %v", err)
	}

	var count int64
	db.Model(&entity.Video{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected upload must not be recorded, got %d rows", count)
	}
}

func TestDeleteVideoOwnershipGuard(t *testing.T) {
	u, db, _ := newVideoUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)
	video := seedOriginalVideo(t, db, patient.ID)

	err := u.Delete(ctx, &dto.DeleteVideoRequest{VideoID: video.ID, DoctorID: doctor.ID, PatientID: patient.ID + 1})
	if err != ErrVideoNotOwned {
		t.Fatalf("expected ErrVideoNotOwned, got %v", err)
	}

	admin := seedDoctor(t, db, "dr-admin", entity.RoleAdmin)
	// Admins delete regardless of the patient id on the request.
	if err := u.Delete(ctx, &dto.DeleteVideoRequest{VideoID: video.ID, DoctorID: admin.ID, PatientID: patient.ID + 1}); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestDeleteUnanalyzedVideoRemovesOnlyItsRow(t *testing.T) {
	u, db, _ := newVideoUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)
	video := seedOriginalVideo(t, db, patient.ID)
	other := seedOriginalVideo(t, db, patient.ID)

	if err := u.Delete(ctx, &dto.DeleteVideoRequest{VideoID: video.ID, DoctorID: doctor.ID, PatientID: patient.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	db.Model(&entity.Video{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 remaining video row, got %d", count)
	}
	if _, err := u.GetByID(ctx, other.ID); err != nil {
		t.Fatalf("unrelated video should survive: %v", err)
	}
}

func TestDeleteAnalyzedVideoTakesDownActionGroup(t *testing.T) {
	u, db, _ := newVideoUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)
	video := seedOriginalVideo(t, db, patient.ID)

	// One root action with results, bound to the video.
	now := entity.TimestampNow()
	action := &entity.Action{PatientID: patient.ID, VideoID: video.ID, Status: entity.ActionStatusCompleted, CreateTime: now, UpdateTime: now}
	if err := db.Create(action).Error; err != nil {
		t.Fatalf("seed action: %v", err)
	}
	action.ParentID = &action.ID
	if err := db.Save(action).Error; err != nil {
		t.Fatalf("root action: %v", err)
	}
	video.ActionID = &action.ID
	if err := db.Save(video).Error; err != nil {
		t.Fatalf("bind video: %v", err)
	}
	stage := &entity.Stage{ActionID: action.ID, StageN: 1, CreateTime: now, UpdateTime: now}
	if err := db.Create(stage).Error; err != nil {
		t.Fatalf("seed stage: %v", err)
	}
	step := &entity.StepInfo{StageID: stage.ID, StepID: 1, FrontLeg: entity.LegLeft, CreateTime: now, UpdateTime: now}
	if err := db.Create(step).Error; err != nil {
		t.Fatalf("seed step: %v", err)
	}

	if err := u.Delete(ctx, &dto.DeleteVideoRequest{VideoID: video.ID, DoctorID: doctor.ID, PatientID: patient.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var videos, actions, stages, steps int64
	db.Model(&entity.Video{}).Count(&videos)
	db.Model(&entity.Action{}).Count(&actions)
	db.Model(&entity.Stage{}).Count(&stages)
	db.Model(&entity.StepInfo{}).Count(&steps)
	if videos != 0 || actions != 0 || stages != 0 || steps != 0 {
		t.Fatalf("expected hard cascade, rows left: videos=%d actions=%d stages=%d steps=%d", videos, actions, stages, steps)
	}
}

func TestInsertInferenceDerivesPath(t *testing.T) {
	u, db, _ := newVideoUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)
	video := seedOriginalVideo(t, db, patient.ID)

	now := entity.TimestampNow()
	action := &entity.Action{PatientID: patient.ID, VideoID: video.ID, CreateTime: now, UpdateTime: now}
	if err := db.Create(action).Error; err != nil {
		t.Fatalf("seed action: %v", err)
	}
	video.ActionID = &action.ID
	if err := db.Save(video).Error; err != nil {
		t.Fatalf("bind video: %v", err)
	}

	result, err := u.InsertInference(ctx, action.ID)
	if err != nil {
		t.Fatalf("insert inference: %v", err)
	}

	var inference entity.Video
	if err := db.First(&inference, result.VideoID).Error; err != nil {
		t.Fatalf("load inference: %v", err)
	}
	if !inference.InferenceVideo || inference.OriginalVideo {
		t.Fatalf("expected an inference row, got %+v", inference)
	}
	if inference.VideoPath != media.InferencePathFor(video.VideoPath) {
		t.Fatalf("unexpected inference path %s", inference.VideoPath)
	}

	// The lookup by original id resolves through the same path mapping.
	found, err := u.GetInferenceByOriginal(ctx, video.ID)
	if err != nil {
		t.Fatalf("get inference by original: %v", err)
	}
	if found.ID != inference.ID {
		t.Fatalf("expected inference %d, got %d", inference.ID, found.ID)
	}
}
