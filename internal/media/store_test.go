package media

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSupportedExt(t *testing.T) {
	for _, ext := range []string{".mp4", ".MOV", ".mkv", ".webm"} {
		if !SupportedExt(ext) {
			t.Fatalf("expected %s to be supported", ext)
		}
	}
	for _, ext := range []string{".exe", ".txt", "", ".gif"} {
		if SupportedExt(ext) {
			t.Fatalf("expected %s to be rejected", ext)
		}
	}
}

func TestOriginalPathIsUniqueAndSanitized(t *testing.T) {
	s := NewStore("/data/videos")

	first := s.OriginalPath(7, "my walk/test clip.mov")
	second := s.OriginalPath(7, "my walk/test clip.mov")

	if first == second {
		t.Fatalf("paths for repeated uploads must differ: %s", first)
	}
	base := filepath.Base(first)
	if !strings.HasPrefix(base, "7-my_walk_test_clip-") || !strings.HasSuffix(base, ".mp4") {
		t.Fatalf("unexpected filename %s", base)
	}
	if filepath.Dir(first) != filepath.Join("/data/videos", DirOriginal) {
		t.Fatalf("unexpected directory %s", filepath.Dir(first))
	}
}

func TestDerivedPaths(t *testing.T) {
	original := "/data/videos/original/7-clip-abcd1234.mp4"
	if got := InferencePathFor(original); got != "/data/videos/inference/7-clip-abcd1234.mp4" {
		t.Fatalf("inference path: %s", got)
	}
	if got := SidecarJSONPath(original); got != "/data/videos/original/7-clip-abcd1234.json" {
		t.Fatalf("sidecar path: %s", got)
	}
	if got := ThumbnailPath(original); got != "/data/videos/original/7-clip-abcd1234.jpg" {
		t.Fatalf("thumbnail path: %s", got)
	}
}

func TestEnsureDirsAndRemoveWithSidecar(t *testing.T) {
	root := t.TempDir()
	s := NewStore(root)
	if err := s.EnsureDirs(); err != nil {
		t.Fatalf("ensure dirs: %v", err)
	}
	for _, dir := range []string{DirOriginal, DirFlipped, DirInference} {
		if _, err := os.Stat(filepath.Join(root, dir)); err != nil {
			t.Fatalf("missing %s dir: %v", dir, err)
		}
	}

	video := filepath.Join(root, DirOriginal, "1-clip-deadbeef.mp4")
	if err := os.WriteFile(video, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(SidecarJSONPath(video), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RemoveWithSidecar(video); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(video); !os.IsNotExist(err) {
		t.Fatal("video file should be gone")
	}
	if _, err := os.Stat(SidecarJSONPath(video)); !os.IsNotExist(err) {
		t.Fatal("sidecar should be gone")
	}

	// Removing again must stay quiet.
	if err := RemoveWithSidecar(video); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}
