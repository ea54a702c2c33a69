package avpipeline

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"testing"
)

type singleEntryArchive struct {
	name string
	data []byte
}

func (a *singleEntryArchive) OpenEntry(name string) (io.ReadCloser, error) {
	if name != a.name {
		return nil, &entryNotFoundError{name}
	}
	return io.NopCloser(bytes.NewReader(a.data)), nil
}

func (a *singleEntryArchive) Close() error { return nil }

type entryNotFoundError struct{ name string }

func (e *entryNotFoundError) Error() string { return "entry not found: " + e.name }

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encoding fixture jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeEntryReturnsFirstPicture(t *testing.T) {
	archive := &singleEntryArchive{name: "000.jpg", data: encodeTestJPEG(t, 64, 48)}

	picture, err := DecodeEntry(archive, "000.jpg", nil)
	if err != nil {
		t.Fatalf("DecodeEntry: %v", err)
	}
	defer picture.Free()

	if picture.Width != 64 || picture.Height != 48 {
		t.Fatalf("expected 64x48, got %dx%d", picture.Width, picture.Height)
	}
	if picture.Frame == nil {
		t.Fatal("expected a decoded frame")
	}
}

func TestDecodeEntryPropagatesArchiveError(t *testing.T) {
	archive := &singleEntryArchive{name: "000.jpg", data: nil}

	if _, err := DecodeEntry(archive, "missing.jpg", nil); err == nil {
		t.Fatal("expected an error for a missing entry")
	}
}
