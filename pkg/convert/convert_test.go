package convert

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ideamans/ugoira2mp4/pkg/frame"
	"github.com/ideamans/ugoira2mp4/pkg/mocks"
	"github.com/ideamans/ugoira2mp4/pkg/options"
	"github.com/ideamans/ugoira2mp4/pkg/ugoiraerr"
)

func oneFrame(t *testing.T) frame.List {
	t.Helper()
	var list frame.List
	list, err := list.Append("000.jpg", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return list
}

// Validation failures must short-circuit before any resource (archive,
// encoder, output file) is touched, so they are safe to exercise without
// a real ZIP file or any decoding or encoding work.

func TestConvertRejectsInvalidMaxFPSBeforeOpeningArchive(t *testing.T) {
	err := Convert(context.Background(), nil, nil, "/does/not/exist.zip", filepath.Join(t.TempDir(), "out.mp4"), oneFrame(t), 0, options.Map{}, options.Map{})
	if err == nil {
		t.Fatal("expected error for max_fps=0")
	}
	if err.Code != ugoiraerr.InvalidMaxFPS {
		t.Fatalf("expected InvalidMaxFPS, got %v", err.Code)
	}
}

func TestConvertRejectsEmptyFrameList(t *testing.T) {
	var frames frame.List
	err := Convert(context.Background(), nil, nil, "/does/not/exist.zip", filepath.Join(t.TempDir(), "out.mp4"), frames, 30, options.Map{}, options.Map{})
	if err == nil {
		t.Fatal("expected error for empty frame list")
	}
}

func TestConvertRejectsInvalidCRFBeforeOpeningArchive(t *testing.T) {
	err := Convert(context.Background(), nil, nil, "/does/not/exist.zip", filepath.Join(t.TempDir(), "out.mp4"), oneFrame(t), 30, options.Map{"crf": "999"}, options.Map{})
	if err == nil {
		t.Fatal("expected error for out-of-range crf")
	}
	if err.Code != ugoiraerr.InvalidCRF {
		t.Fatalf("expected InvalidCRF, got %v", err.Code)
	}
}

func TestConvertRemovesPreExistingOutputFileBeforeOpeningArchive(t *testing.T) {
	fs := mocks.NewFileSystem()
	out := filepath.Join(t.TempDir(), "out.mp4")
	if err := fs.WriteFile(out, []byte("stale")); err != nil {
		t.Fatalf("seeding stale output: %v", err)
	}

	err := Convert(context.Background(), fs, nil, "/does/not/exist.zip", out, oneFrame(t), 30, options.Map{}, options.Map{})
	if err == nil {
		t.Fatal("expected error for nonexistent archive")
	}
	if _, ok := fs.GetFile(out); ok {
		t.Fatal("expected pre-existing output file to be removed before the archive was opened")
	}
}

func TestConvertSurfacesRemoveOutputFileFailure(t *testing.T) {
	fs := mocks.NewFileSystem()
	out := filepath.Join(t.TempDir(), "out.mp4")
	fs.ExistsFunc = func(string) (bool, error) { return true, nil }
	fs.RemoveFunc = func(string) error { return errors.New("permission denied") }

	err := Convert(context.Background(), fs, nil, "/does/not/exist.zip", out, oneFrame(t), 30, options.Map{}, options.Map{})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Code != ugoiraerr.RemoveOutputFileFailed {
		t.Fatalf("expected RemoveOutputFileFailed, got %v", err.Code)
	}
}

func TestConvertSurfacesArchiveOpenFailureAsArchiveKind(t *testing.T) {
	err := Convert(context.Background(), nil, nil, "/does/not/exist.zip", filepath.Join(t.TempDir(), "out.mp4"), oneFrame(t), 30, options.Map{}, options.Map{})
	if err == nil {
		t.Fatal("expected error for nonexistent archive")
	}
	if err.Code != ugoiraerr.Archive {
		t.Fatalf("expected Archive, got %v", err.Code)
	}
	if !errors.As(error(err), new(*ugoiraerr.Error)) {
		t.Fatal("expected *ugoiraerr.Error")
	}
}
