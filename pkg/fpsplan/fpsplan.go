// Package fpsplan derives the output frame rate and time base from a
// frame list, following the GCD-of-delays rule described for the
// ugoira conversion core.
package fpsplan

import (
	"math"

	"github.com/ideamans/ugoira2mp4/pkg/frame"
	"github.com/ideamans/ugoira2mp4/pkg/ugoiraerr"
)

// AVTimeBase is the microsecond-resolution rational denominator used to
// express the output frame rate, matching FFmpeg's AV_TIME_BASE.
const AVTimeBase = 1_000_000

// Rational is a num/den pair, matching the AVRational shape used
// throughout the rest of the pipeline.
type Rational struct {
	Num int
	Den int
}

// Float64 returns the rational as a floating point ratio.
func (r Rational) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// Plan is the immutable result of fps planning.
type Plan struct {
	FPS      Rational
	TimeBase Rational
}

// Compute computes the output fps and time base for frames, capped at
// maxFPS. maxFPS must be strictly positive.
func Compute(frames frame.List, maxFPS float64) (Plan, error) {
	if maxFPS <= 0 {
		return Plan{}, ugoiraerr.New(ugoiraerr.InvalidMaxFPS, "max_fps must be strictly positive")
	}
	if err := frames.Validate(); err != nil {
		return Plan{}, err
	}

	g := 0
	for _, r := range frames {
		ms := int(math.Round(r.DelayMs))
		if ms <= 0 {
			return Plan{}, ugoiraerr.New(ugoiraerr.InvalidFrames, "rounded delay must be strictly positive")
		}
		g = gcd(g, ms)
	}

	naturalFPS := 1000.0 / float64(g)
	chosenFPS := math.Min(naturalFPS, maxFPS)

	num := int(math.Round(chosenFPS * AVTimeBase))
	if num <= 0 {
		return Plan{}, ugoiraerr.New(ugoiraerr.InvalidMaxFPS, "resulting fps rational is not representable")
	}
	fps := Rational{Num: num, Den: AVTimeBase}
	timeBase := Rational{Num: fps.Den, Den: fps.Num}

	return Plan{FPS: fps, TimeBase: timeBase}, nil
}

func gcd(a, b int) int {
	if a == 0 {
		return b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
