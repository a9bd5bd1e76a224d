package usecase

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gait-analysis-backend/internal/delivery/dto"
	"gait-analysis-backend/internal/domain/entity"
	"gait-analysis-backend/internal/domain/repository"
	"gait-analysis-backend/internal/media"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound          = errors.New("video not found")
	ErrNoVideos               = errors.New("no videos found")
	ErrVideoNotOwned          = errors.New("video not found or this doctor does not have permission")
	ErrInvalidVideoType       = errors.New("invalid video type")
	ErrUnsupportedFormat      = errors.New("unsupported file format")
	ErrNotVideoContent        = errors.New("file must be a video")
	ErrInferenceVideoNotFound = errors.New("inference video not found")
)

// Video flavors addressable over the API.
const (
	VideoTypeOriginal  = "original"
	VideoTypeInference = "inference"
)

type VideoUsecase interface {
	Upload(ctx context.Context, patientID uint, filename, contentType string, src io.Reader) (*dto.UploadVideoResponse, error)
	Delete(ctx context.Context, req *dto.DeleteVideoRequest) error
	GetTyped(ctx context.Context, videoType string, patientID, videoID uint) (*entity.Video, error)
	Thumbnail(ctx context.Context, videoType string, patientID, videoID uint) (string, error)
	GetByPatient(ctx context.Context, patientID uint) ([]entity.Video, error)
	GetByID(ctx context.Context, videoID uint) (*entity.Video, error)
	GetInferenceByOriginal(ctx context.Context, originalVideoID uint) (*entity.Video, error)
	InsertInference(ctx context.Context, actionID uint) (*dto.InsertInferenceVideoResponse, error)
}

type videoUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	store       *media.Store
	converter   *media.Converter
	videoRepo   repository.VideoRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	actionRepo  repository.ActionRepository
	stageRepo   repository.StageRepository
	stepRepo    repository.StepInfoRepository
}

func NewVideoUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	store *media.Store,
	converter *media.Converter,
	videoRepo repository.VideoRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	actionRepo repository.ActionRepository,
	stageRepo repository.StageRepository,
	stepRepo repository.StepInfoRepository,
) VideoUsecase {
	return &videoUsecase{
		db:          db,
		log:         log,
		store:       store,
		converter:   converter,
		videoRepo:   videoRepo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		actionRepo:  actionRepo,
		stageRepo:   stageRepo,
		stepRepo:    stepRepo,
	}
}

// Upload spools the client's file to a temporary location, normalizes it to
// H.264 MP4 in the original store and records it. Non-MP4 uploads go through
// ffmpeg; MP4s are moved as-is.
func (u *videoUsecase) Upload(ctx context.Context, patientID uint, filename, contentType string, src io.Reader) (*dto.UploadVideoResponse, error) {
	patient, err := u.patientRepo.FindActiveByID(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if !strings.HasPrefix(contentType, "video/") {
		return nil, ErrNotVideoContent
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || !media.SupportedExt(ext) {
		return nil, ErrUnsupportedFormat
	}

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	finalPath := u.store.OriginalPath(patientID, filename)
	if ext == ".mp4" {
		if err := moveFile(tmpPath, finalPath); err != nil {
			u.log.Errorf("Failed to move upload into store: %+v", err)
			return nil, err
		}
	} else {
		if err := u.converter.ConvertToMP4(ctx, tmpPath, finalPath); err != nil {
			return nil, err
		}
	}

	now := entity.TimestampNow()
	video := &entity.Video{
		PatientID:     patientID,
		OriginalVideo: true,
		VideoPath:     finalPath,
		CreateTime:    now,
		UpdateTime:    now,
	}
	if err := u.videoRepo.Create(ctx, u.db, video); err != nil {
		u.log.Errorf("Failed to record uploaded video: %+v", err)
		return nil, err
	}

	u.log.Infof("Video uploaded: id=%d, patient=%d, path=%s", video.ID, patientID, finalPath)
	return &dto.UploadVideoResponse{VideoID: video.ID}, nil
}

// Delete hard-deletes a video. An unanalyzed video loses only its own row;
// a video bound to an action takes the whole analysis with it: every video
// of the action (files and pose sidecars included), the action group, its
// stages and steps.
func (u *videoUsecase) Delete(ctx context.Context, req *dto.DeleteVideoRequest) error {
	doctor, err := u.doctorRepo.FindActiveByID(ctx, u.db, req.DoctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	video, err := u.videoRepo.FindActiveByID(ctx, u.db, req.VideoID)
	if err != nil {
		return err
	}
	if video == nil {
		return ErrVideoNotFound
	}
	if !doctor.IsAdmin() && video.PatientID != req.PatientID {
		return ErrVideoNotOwned
	}

	if video.ActionID == nil {
		return u.videoRepo.HardDelete(ctx, u.db, video.ID)
	}
	actionID := *video.ActionID

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	videos, err := u.videoRepo.FindActiveByAction(ctx, tx, actionID)
	if err != nil {
		return err
	}
	for _, v := range videos {
		if err := media.RemoveWithSidecar(v.VideoPath); err != nil {
			u.log.Warnf("Failed to remove files for video %d: %+v", v.ID, err)
		}
		if err := u.videoRepo.HardDelete(ctx, tx, v.ID); err != nil {
			return err
		}
	}

	group := map[uint]bool{}
	root, err := u.actionRepo.FindActiveByID(ctx, tx, actionID)
	if err != nil {
		return err
	}
	if root != nil {
		group[root.ID] = true
	}
	siblings, err := u.actionRepo.FindActiveByParent(ctx, tx, actionID)
	if err != nil {
		return err
	}
	for _, a := range siblings {
		group[a.ID] = true
	}

	for id := range group {
		stages, err := u.stageRepo.FindActiveByAction(ctx, tx, id)
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
		if err := u.actionRepo.HardDelete(ctx, tx, id); err != nil {
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	u.log.Infof("Video %d and action group %d deleted", req.VideoID, actionID)
	return nil
}

func (u *videoUsecase) GetTyped(ctx context.Context, videoType string, patientID, videoID uint) (*entity.Video, error) {
	if videoType != VideoTypeOriginal && videoType != VideoTypeInference {
		return nil, ErrInvalidVideoType
	}
	video, err := u.videoRepo.FindActiveTyped(ctx, u.db, videoID, patientID, videoType == VideoTypeInference)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

// Thumbnail returns the path to the video's JPEG thumbnail, extracting one
// through ffmpeg on first access.
func (u *videoUsecase) Thumbnail(ctx context.Context, videoType string, patientID, videoID uint) (string, error) {
	video, err := u.GetTyped(ctx, videoType, patientID, videoID)
	if err != nil {
		return "", err
	}

	thumbPath := media.ThumbnailPath(video.VideoPath)
	if _, err := os.Stat(thumbPath); os.IsNotExist(err) {
		if err := u.converter.GenerateThumbnail(ctx, video.VideoPath, thumbPath, 1); err != nil {
			return "", err
		}
	}
	return thumbPath, nil
}

func (u *videoUsecase) GetByPatient(ctx context.Context, patientID uint) ([]entity.Video, error) {
	videos, err := u.videoRepo.FindActiveByPatient(ctx, u.db, patientID)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, ErrNoVideos
	}
	return videos, nil
}

func (u *videoUsecase) GetByID(ctx context.Context, videoID uint) (*entity.Video, error) {
	video, err := u.videoRepo.FindActiveByID(ctx, u.db, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}
	return video, nil
}

// GetInferenceByOriginal resolves the worker-rendered counterpart of an
// original video through the parallel directory layout.
func (u *videoUsecase) GetInferenceByOriginal(ctx context.Context, originalVideoID uint) (*entity.Video, error) {
	original, err := u.videoRepo.FindActiveByID(ctx, u.db, originalVideoID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrVideoNotFound
	}

	inference, err := u.videoRepo.FindActiveByPath(ctx, u.db, media.InferencePathFor(original.VideoPath), true)
	if err != nil {
		return nil, err
	}
	if inference == nil {
		return nil, ErrInferenceVideoNotFound
	}
	return inference, nil
}

// InsertInference records the inference rendering the worker wrote for the
// action's original video.
func (u *videoUsecase) InsertInference(ctx context.Context, actionID uint) (*dto.InsertInferenceVideoResponse, error) {
	videos, err := u.videoRepo.FindActiveByAction(ctx, u.db, actionID)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, ErrVideoNotFound
	}
	original := videos[0]

	now := entity.TimestampNow()
	inference := &entity.Video{
		PatientID:      original.PatientID,
		ActionID:       &actionID,
		InferenceVideo: true,
		VideoPath:      media.InferencePathFor(original.VideoPath),
		CreateTime:     now,
		UpdateTime:     now,
	}
	if err := u.videoRepo.Create(ctx, u.db, inference); err != nil {
		return nil, err
	}

	u.log.Infof("Inference video recorded: id=%d, action=%d", inference.ID, actionID)
	return &dto.InsertInferenceVideoResponse{VideoID: inference.ID}, nil
}

// moveFile renames src to dst, falling back to copy+remove when the two
// paths live on different filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
