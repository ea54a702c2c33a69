package fpsplan

import (
	"math"
	"testing"

	"github.com/ideamans/ugoira2mp4/pkg/frame"
)

func buildFrames(t *testing.T, delays ...float64) frame.List {
	t.Helper()
	var list frame.List
	for i, d := range delays {
		var err error
		list, err = list.Append("frame", d)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	return list
}

func TestPlanEqualDelays(t *testing.T) {
	frames := buildFrames(t, 100, 100, 100)
	plan, err := Compute(frames, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := plan.FPS.Float64(); math.Abs(got-10) > 1e-9 {
		t.Fatalf("expected chosen_fps=10, got %v", got)
	}
}

func TestPlanGCDOfUnequalDelays(t *testing.T) {
	frames := buildFrames(t, 50, 100, 150)
	plan, err := Compute(frames, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := plan.FPS.Float64(); math.Abs(got-20) > 1e-9 {
		t.Fatalf("expected chosen_fps=20 (gcd=50), got %v", got)
	}
}

func TestPlanCappedByMaxFPS(t *testing.T) {
	frames := buildFrames(t, 10, 10)
	plan, err := Compute(frames, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := plan.FPS.Float64(); math.Abs(got-60) > 1e-9 {
		t.Fatalf("expected chosen_fps capped to 60, got %v", got)
	}
}

func TestPlanRejectsZeroMaxFPS(t *testing.T) {
	frames := buildFrames(t, 100)
	if _, err := Compute(frames, 0); err == nil {
		t.Fatal("expected error for max_fps=0")
	}
}

func TestPlanRejectsEmptyFrameList(t *testing.T) {
	var frames frame.List
	if _, err := Compute(frames, 30); err == nil {
		t.Fatal("expected error for empty frame list")
	}
}

func TestPlanTimeBaseIsFPSInverse(t *testing.T) {
	frames := buildFrames(t, 100)
	plan, err := Compute(frames, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.TimeBase.Num != plan.FPS.Den || plan.TimeBase.Den != plan.FPS.Num {
		t.Fatalf("time base %+v is not the inverse of fps %+v", plan.TimeBase, plan.FPS)
	}
}
