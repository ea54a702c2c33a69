package frame

import (
	"errors"
	"testing"

	"github.com/ideamans/ugoira2mp4/pkg/ugoiraerr"
)

func TestAppendRoundTrip(t *testing.T) {
	var list List
	var err error
	list, err = list.Append("000.jpg", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, err = list.Append("001.jpg", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Record{{"000.jpg", 100}, {"001.jpg", 50}}
	for i, r := range want {
		if list[i] != r {
			t.Fatalf("record %d: got %+v want %+v", i, list[i], r)
		}
	}
}

func TestAppendRejectsEmptyFile(t *testing.T) {
	var list List
	_, err := list.Append("", 100)
	if err == nil {
		t.Fatal("expected error for empty file name")
	}
	var uerr *ugoiraerr.Error
	if !errors.As(err, &uerr) || uerr.Code != ugoiraerr.InvalidFrames {
		t.Fatalf("expected InvalidFrames error, got %v", err)
	}
}

func TestAppendRejectsNonPositiveDelay(t *testing.T) {
	var list List
	if _, err := list.Append("a.jpg", 0); err == nil {
		t.Fatal("expected error for zero delay")
	}
	if _, err := list.Append("a.jpg", -5); err == nil {
		t.Fatal("expected error for negative delay")
	}
}

func TestValidateEmptyList(t *testing.T) {
	var list List
	if err := list.Validate(); err == nil {
		t.Fatal("expected error for empty list")
	}
}

func TestValidateGoodList(t *testing.T) {
	var list List
	list, _ = list.Append("a.jpg", 100)
	list, _ = list.Append("b.jpg", 100)
	if err := list.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
