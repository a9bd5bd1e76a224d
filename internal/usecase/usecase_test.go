package usecase

import (
	"io"
	"testing"

	"gait-analysis-backend/internal/domain/entity"
	"gait-analysis-backend/pkg/password"
	"gait-analysis-backend/pkg/queue"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	// A pooled second connection would see a different in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.Doctor{},
		&entity.Patient{},
		&entity.Video{},
		&entity.Action{},
		&entity.Stage{},
		&entity.StepInfo{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestQueue(t *testing.T) (*queue.Gateway, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	return queue.NewGateway(client), client
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func seedDoctor(t *testing.T, db *gorm.DB, username string, roleID uint) *entity.Doctor {
	t.Helper()
	hashed, err := password.Hash("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	now := entity.TimestampNow()
	doctor := &entity.Doctor{
		Username:   username,
		Password:   hashed,
		Email:      username + "@clinic.test",
		RoleID:     &roleID,
		CreateTime: now,
		UpdateTime: now,
	}
	if err := db.Create(doctor).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	return doctor
}

func seedPatient(t *testing.T, db *gorm.DB, caseID string, doctorID uint) *entity.Patient {
	t.Helper()
	now := entity.TimestampNow()
	patient := &entity.Patient{
		Username:   "patient-" + caseID,
		CaseID:     caseID,
		DoctorID:   &doctorID,
		CreateTime: now,
		UpdateTime: now,
	}
	if err := db.Create(patient).Error; err != nil {
		t.Fatalf("seed patient: %v", err)
	}
	return patient
}

func seedOriginalVideo(t *testing.T, db *gorm.DB, patientID uint) *entity.Video {
	t.Helper()
	now := entity.TimestampNow()
	video := &entity.Video{
		PatientID:     patientID,
		OriginalVideo: true,
		VideoPath:     "/data/videos/original/test.mp4",
		CreateTime:    now,
		UpdateTime:    now,
	}
	if err := db.Create(video).Error; err != nil {
		t.Fatalf("seed video: %v", err)
	}
	return video
}
