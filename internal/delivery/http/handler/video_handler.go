package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"gait-analysis-backend/internal/delivery/dto"
	"gait-analysis-backend/internal/usecase"
	"gait-analysis-backend/pkg/response"
	"gait-analysis-backend/pkg/validator"
)

type VideoHandler struct {
	videoUsecase usecase.VideoUsecase
	validator    *validator.CustomValidator
}

func NewVideoHandler(videoUsecase usecase.VideoUsecase, validator *validator.CustomValidator) *VideoHandler {
	return &VideoHandler{videoUsecase: videoUsecase, validator: validator}
}

// maxUploadMemory bounds the multipart parser's in-memory buffer; larger
// uploads spill to disk.
const maxUploadMemory = 32 << 20

func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	patientID, err := parseUintVar(r, "patient_id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.BadRequest(w, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("video")
	if err != nil {
		response.BadRequest(w, "Missing video file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	result, err := h.videoUsecase.Upload(r.Context(), patientID, header.Filename, contentType, file)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrUnsupportedFormat:
			response.BadRequest(w, "Unsupported file format")
		case usecase.ErrNotVideoContent:
			response.BadRequest(w, "File must be a video")
		default:
			response.InternalServerError(w, "Failed to upload video")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Video uploaded successfully", result)
}

func (h *VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.videoUsecase.Delete(r.Context(), &req); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrVideoNotFound:
			response.NotFound(w, "Video not found")
		case usecase.ErrVideoNotOwned:
			response.Forbidden(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to delete video")
		}
		return
	}

	response.Success(w, http.StatusOK, "Video deleted successfully", nil)
}

// typedVideoVars reads the {video_type}/{patient_id}/{video_id} triple shared
// by the download, stream and thumbnail routes.
func (h *VideoHandler) typedVideoVars(w http.ResponseWriter, r *http.Request) (string, uint, uint, bool) {
	patientID, err := parseUintVar(r, "patient_id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return "", 0, 0, false
	}
	videoID, err := parseUintVar(r, "video_id")
	if err != nil {
		response.BadRequest(w, "Invalid video ID")
		return "", 0, 0, false
	}
	return muxVar(r, "video_type"), patientID, videoID, true
}

func (h *VideoHandler) Download(w http.ResponseWriter, r *http.Request) {
	videoType, patientID, videoID, ok := h.typedVideoVars(w, r)
	if !ok {
		return
	}

	video, err := h.videoUsecase.GetTyped(r.Context(), videoType, patientID, videoID)
	if err != nil {
		h.writeTypedError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(video.VideoPath)))
	w.Header().Set("Content-Type", "video/mp4")
	http.ServeFile(w, r, video.VideoPath)
}

// Stream serves the file through http.ServeFile, which honors Range requests
// so the browser player can seek.
func (h *VideoHandler) Stream(w http.ResponseWriter, r *http.Request) {
	videoType, patientID, videoID, ok := h.typedVideoVars(w, r)
	if !ok {
		return
	}

	video, err := h.videoUsecase.GetTyped(r.Context(), videoType, patientID, videoID)
	if err != nil {
		h.writeTypedError(w, err)
		return
	}

	w.Header().Set("Content-Type", "video/mp4")
	http.ServeFile(w, r, video.VideoPath)
}

func (h *VideoHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	videoType, patientID, videoID, ok := h.typedVideoVars(w, r)
	if !ok {
		return
	}

	thumbnailPath, err := h.videoUsecase.Thumbnail(r.Context(), videoType, patientID, videoID)
	if err != nil {
		h.writeTypedError(w, err)
		return
	}
	if _, err := os.Stat(thumbnailPath); err != nil {
		response.NotFound(w, "Thumbnail not found")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	http.ServeFile(w, r, thumbnailPath)
}

func (h *VideoHandler) writeTypedError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrInvalidVideoType:
		response.BadRequest(w, "Invalid video type")
	case usecase.ErrVideoNotFound:
		response.NotFound(w, "Video not found")
	default:
		response.InternalServerError(w, "Failed to get video")
	}
}

func (h *VideoHandler) GetByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := parseUintVar(r, "patient_id")
	if err != nil {
		response.BadRequest(w, "Invalid patient ID")
		return
	}

	videos, err := h.videoUsecase.GetByPatient(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrNoVideos:
			response.NotFound(w, "No videos found")
		default:
			response.InternalServerError(w, "Failed to get videos")
		}
		return
	}

	response.Success(w, http.StatusOK, "Videos retrieved successfully", videos)
}

func (h *VideoHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	videoID, err := parseUintVar(r, "video_id")
	if err != nil {
		response.BadRequest(w, "Invalid video ID")
		return
	}

	video, err := h.videoUsecase.GetByID(r.Context(), videoID)
	if err != nil {
		switch err {
		case usecase.ErrVideoNotFound:
			response.NotFound(w, "Video not found")
		default:
			response.InternalServerError(w, "Failed to get video")
		}
		return
	}

	response.Success(w, http.StatusOK, "Video retrieved successfully", video)
}

func (h *VideoHandler) GetInferenceByOriginal(w http.ResponseWriter, r *http.Request) {
	originalVideoID, err := parseUintVar(r, "original_video_id")
	if err != nil {
		response.BadRequest(w, "Invalid video ID")
		return
	}

	video, err := h.videoUsecase.GetInferenceByOriginal(r.Context(), originalVideoID)
	if err != nil {
		switch err {
		case usecase.ErrVideoNotFound:
			response.NotFound(w, "Video not found")
		case usecase.ErrInferenceVideoNotFound:
			response.NotFound(w, "Inference video not found")
		default:
			response.InternalServerError(w, "Failed to get inference video")
		}
		return
	}

	response.Success(w, http.StatusOK, "Inference video retrieved successfully", video)
}

func (h *VideoHandler) InsertInference(w http.ResponseWriter, r *http.Request) {
	actionID, err := parseUintVar(r, "action_id")
	if err != nil {
		response.BadRequest(w, "Invalid action ID")
		return
	}

	result, err := h.videoUsecase.InsertInference(r.Context(), actionID)
	if err != nil {
		switch err {
		case usecase.ErrVideoNotFound:
			response.NotFound(w, "Video not found")
		default:
			response.InternalServerError(w, "Failed to insert inference video")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Inference video inserted successfully", result)
}
