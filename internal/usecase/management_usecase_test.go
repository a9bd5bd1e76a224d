package usecase

import (
	"context"
	"testing"

	"gait-analysis-backend/internal/delivery/dto"
	"gait-analysis-backend/internal/domain/entity"
	"gait-analysis-backend/internal/repository"

	"gorm.io/gorm"
)

func newManagementUsecase(t *testing.T) (ManagementUsecase, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	u := NewManagementUsecase(
		db, testLogger(),
		repository.NewDoctorRepository(),
		repository.NewPatientRepository(),
		repository.NewVideoRepository(),
		repository.NewActionRepository(),
		repository.NewStageRepository(),
		repository.NewStepInfoRepository(),
	)
	return u, db
}

func TestManagementLoginRequiresAdminRole(t *testing.T) {
	u, db := newManagementUsecase(t)
	ctx := context.Background()

	seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	seedDoctor(t, db, "dr-admin", entity.RoleAdmin)

	if _, err := u.Login(ctx, &dto.AdminLoginRequest{Email: "dr-admin@clinic.test", Password: "secret123"}); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if _, err := u.Login(ctx, &dto.AdminLoginRequest{Email: "dr-zhang@clinic.test", Password: "secret123"}); err != ErrNotAdmin {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	// Unknown email and bad password collapse into one error.
	if _, err := u.Login(ctx, &dto.AdminLoginRequest{Email: "ghost@clinic.test", Password: "secret123"}); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := u.Login(ctx, &dto.AdminLoginRequest{Email: "dr-admin@clinic.test", Password: "wrong"}); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestManagementReadsRejectNonAdmins(t *testing.T) {
	u, db := newManagementUsecase(t)
	ctx := context.Background()

	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)

	if _, err := u.ListDoctors(ctx, doctor.ID); err != ErrNotAdmin {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	if _, err := u.DashboardMetrics(ctx, 999); err != ErrDoctorNotFound {
		t.Fatalf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestDeleteDoctorReassignsPatients(t *testing.T) {
	u, db := newManagementUsecase(t)
	ctx := context.Background()

	admin := seedDoctor(t, db, "dr-admin", entity.RoleAdmin)
	leaving := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	assignee := seedDoctor(t, db, "dr-li", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", leaving.ID)

	// Reassigning to the doctor being deleted is rejected.
	err := u.DeleteDoctor(ctx, &dto.DeleteDoctorManagementRequest{
		AdminDoctorID:  admin.ID,
		DoctorID:       leaving.ID,
		AssignDoctorID: leaving.ID,
	})
	if err != ErrSelfReassign {
		t.Fatalf("expected ErrSelfReassign, got %v", err)
	}

	if err := u.DeleteDoctor(ctx, &dto.DeleteDoctorManagementRequest{
		AdminDoctorID:  admin.ID,
		DoctorID:       leaving.ID,
		AssignDoctorID: assignee.ID,
	}); err != nil {
		t.Fatalf("delete doctor: %v", err)
	}

	var reassigned entity.Patient
	if err := db.First(&reassigned, patient.ID).Error; err != nil {
		t.Fatalf("load patient: %v", err)
	}
	if reassigned.DoctorID == nil || *reassigned.DoctorID != assignee.ID {
		t.Fatalf("expected patient reassigned to %d, got %v", assignee.ID, reassigned.DoctorID)
	}

	var gone entity.Doctor
	if err := db.First(&gone, leaving.ID).Error; err != nil {
		t.Fatalf("load doctor: %v", err)
	}
	if !gone.IsDeleted {
		t.Fatal("doctor should be soft-deleted")
	}
}

func TestDeleteDoctorWithoutPatientsNeedsNoAssignee(t *testing.T) {
	u, db := newManagementUsecase(t)
	ctx := context.Background()

	admin := seedDoctor(t, db, "dr-admin", entity.RoleAdmin)
	leaving := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)

	if err := u.DeleteDoctor(ctx, &dto.DeleteDoctorManagementRequest{
		AdminDoctorID: admin.ID,
		DoctorID:      leaving.ID,
	}); err != nil {
		t.Fatalf("delete doctor: %v", err)
	}
}

func TestUpdatePatientUnassignsDoctorWithZero(t *testing.T) {
	u, db := newManagementUsecase(t)
	ctx := context.Background()

	admin := seedDoctor(t, db, "dr-admin", entity.RoleAdmin)
	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)

	detail, err := u.UpdatePatient(ctx, &dto.UpdatePatientManagementRequest{
		AdminDoctorID: admin.ID,
		PatientID:     patient.ID,
		DoctorID:      uintPtr(0),
	})
	if err != nil {
		t.Fatalf("update patient: %v", err)
	}
	if detail.DoctorID != nil {
		t.Fatalf("expected unassigned patient, got doctor %v", detail.DoctorID)
	}
	if detail.AttendingDoctorName != "N/A" {
		t.Fatalf("expected N/A doctor name, got %s", detail.AttendingDoctorName)
	}
}

func TestDeletePatientSoftCascades(t *testing.T) {
	u, db := newManagementUsecase(t)
	ctx := context.Background()

	admin := seedDoctor(t, db, "dr-admin", entity.RoleAdmin)
	actionID := seedAnalyzedAction(t, db)

	var action entity.Action
	if err := db.First(&action, actionID).Error; err != nil {
		t.Fatalf("load action: %v", err)
	}

	if err := u.DeletePatient(ctx, &dto.DeletePatientManagementRequest{
		AdminDoctorID: admin.ID,
		PatientID:     action.PatientID,
	}); err != nil {
		t.Fatalf("delete patient: %v", err)
	}

	var livePatients, liveVideos, liveActions, liveStages, liveSteps int64
	db.Model(&entity.Patient{}).Where("is_deleted = ?", false).Count(&livePatients)
	db.Model(&entity.Video{}).Where("is_deleted = ?", false).Count(&liveVideos)
	db.Model(&entity.Action{}).Where("is_deleted = ?", false).Count(&liveActions)
	db.Model(&entity.Stage{}).Where("is_deleted = ?", false).Count(&liveStages)
	db.Model(&entity.StepInfo{}).Where("is_deleted = ?", false).Count(&liveSteps)
	if livePatients != 0 || liveVideos != 0 || liveActions != 0 || liveStages != 0 || liveSteps != 0 {
		t.Fatalf("expected soft cascade, live: patients=%d videos=%d actions=%d stages=%d steps=%d",
			livePatients, liveVideos, liveActions, liveStages, liveSteps)
	}

	// Rows survive as tombstones.
	var totalSteps int64
	db.Model(&entity.StepInfo{}).Count(&totalSteps)
	if totalSteps == 0 {
		t.Fatal("soft delete must keep the rows")
	}
}

func TestDeletePatientForceHardDeletes(t *testing.T) {
	u, db := newManagementUsecase(t)
	ctx := context.Background()

	admin := seedDoctor(t, db, "dr-admin", entity.RoleAdmin)
	actionID := seedAnalyzedAction(t, db)

	var action entity.Action
	if err := db.First(&action, actionID).Error; err != nil {
		t.Fatalf("load action: %v", err)
	}

	if err := u.DeletePatient(ctx, &dto.DeletePatientManagementRequest{
		AdminDoctorID: admin.ID,
		PatientID:     action.PatientID,
		Force:         true,
	}); err != nil {
		t.Fatalf("force delete patient: %v", err)
	}

	var patients, videos, actions, stages, steps int64
	db.Model(&entity.Patient{}).Count(&patients)
	db.Model(&entity.Video{}).Count(&videos)
	db.Model(&entity.Action{}).Count(&actions)
	db.Model(&entity.Stage{}).Count(&stages)
	db.Model(&entity.StepInfo{}).Count(&steps)
	if patients != 0 || videos != 0 || actions != 0 || stages != 0 || steps != 0 {
		t.Fatalf("expected permanent removal, rows left: patients=%d videos=%d actions=%d stages=%d steps=%d",
			patients, videos, actions, stages, steps)
	}
}

func TestDashboardMetricsCountsLiveRows(t *testing.T) {
	u, db := newManagementUsecase(t)
	ctx := context.Background()

	admin := seedDoctor(t, db, "dr-admin", entity.RoleAdmin)
	seedAnalyzedAction(t, db)

	metrics, err := u.DashboardMetrics(ctx, admin.ID)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	// seedAnalyzedAction adds a doctor, a patient, a video and one action.
	if metrics.DoctorCount != 2 || metrics.PatientCount != 1 || metrics.VideoCount != 1 || metrics.DataAnalysisCount != 1 {
		t.Fatalf("unexpected metrics: %+v", metrics)
	}
}

func TestAnalysisTrendsBucketsByMonth(t *testing.T) {
	u, db := newManagementUsecase(t)
	ctx := context.Background()

	admin := seedDoctor(t, db, "dr-admin", entity.RoleAdmin)
	doctor := seedDoctor(t, db, "dr-zhang", entity.RoleDoctor)
	patient := seedPatient(t, db, "case-001", doctor.ID)
	video := seedOriginalVideo(t, db, patient.ID)

	for _, createTime := range []string{
		"2026-07-01 09:00:00",
		"2026-07-15 10:30:00",
		"2026-08-02 11:00:00",
	} {
		action := &entity.Action{
			PatientID:  patient.ID,
			VideoID:    video.ID,
			Status:     entity.ActionStatusCompleted,
			CreateTime: createTime,
			UpdateTime: createTime,
		}
		if err := db.Create(action).Error; err != nil {
			t.Fatalf("seed action: %v", err)
		}
	}

	trends, err := u.AnalysisTrends(ctx, admin.ID)
	if err != nil {
		t.Fatalf("trends: %v", err)
	}
	if len(trends) != 2 {
		t.Fatalf("expected 2 buckets, got %+v", trends)
	}
	if trends[0].Date != "Jul '26" || trends[0].Analyses != 2 {
		t.Fatalf("unexpected first bucket: %+v", trends[0])
	}
	if trends[1].Date != "Aug '26" || trends[1].Analyses != 1 {
		t.Fatalf("unexpected second bucket: %+v", trends[1])
	}
}

func TestManagementDeleteActionCascadesInferenceVideos(t *testing.T) {
	u, db := newManagementUsecase(t)
	ctx := context.Background()

	admin := seedDoctor(t, db, "dr-admin", entity.RoleAdmin)
	actionID := seedAnalyzedAction(t, db)

	now := entity.TimestampNow()
	inference := &entity.Video{
		PatientID:      1,
		ActionID:       &actionID,
		InferenceVideo: true,
		VideoPath:      "/data/videos/inference/test.mp4",
		CreateTime:     now,
		UpdateTime:     now,
	}
	if err := db.Create(inference).Error; err != nil {
		t.Fatalf("seed inference video: %v", err)
	}

	if err := u.DeleteAction(ctx, &dto.DeleteActionManagementRequest{
		AdminDoctorID: admin.ID,
		ActionID:      actionID,
	}); err != nil {
		t.Fatalf("delete action: %v", err)
	}

	var loaded entity.Video
	if err := db.First(&loaded, inference.ID).Error; err != nil {
		t.Fatalf("load inference: %v", err)
	}
	if !loaded.IsDeleted {
		t.Fatal("inference video should be soft-deleted with its action")
	}
	var liveStages int64
	db.Model(&entity.Stage{}).Where("is_deleted = ?", false).Count(&liveStages)
	if liveStages != 0 {
		t.Fatalf("stages should cascade, %d live", liveStages)
	}
}
