package probe

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestInspectNonexistentFile(t *testing.T) {
	if _, err := Inspect(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Fatal("expected error for nonexistent file")
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.mp4")
	if err := os.WriteFile(path, []byte("not an mp4 file at all"), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := Inspect(path); err == nil {
		t.Fatal("expected error for a file with no valid box structure")
	}
}

func TestInspectReaderRejectsEmptyInput(t *testing.T) {
	if _, err := InspectReader(bytes.NewReader(nil)); err == nil {
		t.Fatal("expected error for empty input")
	}
}
