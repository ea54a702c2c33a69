package zipreader

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func buildTestZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestOpenEntryReadsContent(t *testing.T) {
	path := buildTestZip(t, map[string]string{"000.jpg": "fake-jpeg-bytes"})
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	rc, err := a.OpenEntry("000.jpg")
	if err != nil {
		t.Fatalf("OpenEntry: %v", err)
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	rc.Close()
	if string(data) != "fake-jpeg-bytes" {
		t.Fatalf("got %q", data)
	}
}

func TestOpenEntryMissingReturnsArchiveError(t *testing.T) {
	path := buildTestZip(t, map[string]string{"000.jpg": "x"})
	a, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer a.Close()

	if _, err := a.OpenEntry("missing.jpg"); err == nil {
		t.Fatal("expected error for missing entry")
	}
}

func TestOpenNonexistentFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.zip")); err == nil {
		t.Fatal("expected error opening nonexistent file")
	}
}
