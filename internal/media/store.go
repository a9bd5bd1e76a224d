// Package media manages the on-disk video store and ffmpeg invocations.
package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Video flavors map to subdirectories of the store root. Inference paths are
// derived from original paths by substituting the directory name, so the two
// names must stay parallel.
const (
	DirOriginal  = "original"
	DirFlipped   = "flipped"
	DirInference = "inference"
)

// supportedExtensions lists the upload formats ffmpeg is expected to handle.
var supportedExtensions = map[string]bool{
	".avi": true, ".mov": true, ".wmv": true, ".mkv": true, ".flv": true,
	".mp4v": true, ".m4v": true, ".rmvb": true, ".webm": true, ".mpeg": true,
	".mpg": true, ".ts": true, ".vob": true, ".mp4": true,
}

// SupportedExt reports whether the (lowercased, dot-prefixed) extension is an
// accepted upload format.
func SupportedExt(ext string) bool {
	return supportedExtensions[strings.ToLower(ext)]
}

// Store resolves file locations under the video root.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// EnsureDirs creates the store subdirectories.
func (s *Store) EnsureDirs() error {
	for _, dir := range []string{DirOriginal, DirFlipped, DirInference} {
		if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
			return fmt.Errorf("media: create %s dir: %w", dir, err)
		}
	}
	return nil
}

// OriginalPath builds a unique destination for an upload. The stored name
// keeps the sanitized client filename so clinicians can still recognize it.
func (s *Store) OriginalPath(patientID uint, originalFilename string) string {
	base := strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename))
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.ReplaceAll(base, "/", "_")
	suffix := uuid.New().String()[:8]
	return filepath.Join(s.root, DirOriginal, fmt.Sprintf("%d-%s-%s.mp4", patientID, base, suffix))
}

// InferencePathFor maps an original video path to where the worker writes
// the rendered inference counterpart.
func InferencePathFor(originalPath string) string {
	return strings.ReplaceAll(originalPath, DirOriginal, DirInference)
}

// SidecarJSONPath is the pose-data sidecar the worker writes next to a video.
func SidecarJSONPath(videoPath string) string {
	return strings.ReplaceAll(videoPath, "mp4", "json")
}

// ThumbnailPath is the cached thumbnail location for a video.
func ThumbnailPath(videoPath string) string {
	return strings.ReplaceAll(videoPath, "mp4", "jpg")
}

// RemoveWithSidecar deletes the video file and its pose-data sidecar if they
// exist. Missing files are not an error; the database row is authoritative.
func RemoveWithSidecar(videoPath string) error {
	for _, path := range []string{videoPath, SidecarJSONPath(videoPath)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("media: remove %s: %w", path, err)
		}
	}
	return nil
}
