package ugoiraerr

import (
	"errors"
	"testing"
)

func TestNewDomainError(t *testing.T) {
	err := New(InvalidMaxFPS, "must be positive")
	if err.Code != InvalidMaxFPS {
		t.Fatalf("expected InvalidMaxFPS, got %v", err.Code)
	}
	if err.ArchiveDetail != nil {
		t.Fatalf("expected nil ArchiveDetail, got %v", err.ArchiveDetail)
	}
	if err.Error() == "" {
		t.Fatal("expected non-empty message")
	}
}

func TestNewPanicsOnArchiveCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic when calling New with Archive code")
		}
	}()
	New(Archive, "oops")
}

func TestFromArchiveWrapsDetail(t *testing.T) {
	inner := errors.New("no such entry")
	err := FromArchive(inner)
	if err.Code != Archive {
		t.Fatalf("expected Archive, got %v", err.Code)
	}
	if !errors.Is(err, inner) {
		t.Fatal("expected errors.Is to unwrap to the inner error")
	}
}

func TestExitCodeMatchesDomainCode(t *testing.T) {
	err := New(NoVideoStream, "")
	if err.ExitCode() != int(NoVideoStream) {
		t.Fatalf("expected exit code %d, got %d", NoVideoStream, err.ExitCode())
	}
	var nilErr *Error
	if nilErr.ExitCode() != int(OK) {
		t.Fatalf("expected nil error to report OK exit code, got %d", nilErr.ExitCode())
	}
}
