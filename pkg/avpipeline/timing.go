package avpipeline

import (
	"math/big"

	"github.com/asticode/go-astiav"
)

// Driver converts millisecond per-frame delays into a monotonically
// increasing PTS sequence in the output stream's time base, repeating
// the same rescaled picture as many times as a delay requires.
type Driver struct {
	pts      int64
	maxDE    int64
	streamTB astiav.Rational
	outputTB astiav.Rational
}

// NewDriver builds a timing driver for a stream whose time base is
// streamTB, advancing by one output tick of outputTB at a time.
func NewDriver(streamTB, outputTB astiav.Rational) *Driver {
	return &Driver{streamTB: streamTB, outputTB: outputTB}
}

// Emit computes how many times the current rescaled picture must be
// sent to cover delayMs of display time, returning the PTS to stamp on
// each repetition in order. The caller is responsible for actually
// sending the picture once per returned PTS value.
func (d *Driver) Emit(delayMs float64) []int64 {
	delta := rescaleRound(int64(delayMs), astiav.NewRational(1, 1000), d.streamTB)
	d.maxDE += delta

	var ptsValues []int64
	tick := rescaleRound(1, d.outputTB, d.streamTB)
	for d.pts < d.maxDE {
		ptsValues = append(ptsValues, d.pts)
		d.pts += tick
	}
	return ptsValues
}

// sentinel min/max int64 values pass through rescaling unchanged,
// matching PASS_MINMAX semantics for av_rescale_q_rnd.
const (
	sentinelMin = int64(-1) << 63
	sentinelMax = int64(1)<<63 - 1
)

// rescaleRound converts a value expressed in fromTB into toTB, rounding
// half-away-from-zero (NEAR_INF), using math/big so that large
// numerators never overflow int64 during the intermediate multiply -
// the same technique used elsewhere in the retrieved pack for
// timestamp/time_base conversions.
func rescaleRound(value int64, fromTB, toTB astiav.Rational) int64 {
	if value == sentinelMin || value == sentinelMax {
		return value
	}

	num := big.NewInt(value)
	num.Mul(num, big.NewInt(int64(fromTB.Num())))
	num.Mul(num, big.NewInt(int64(toTB.Den())))

	den := big.NewInt(int64(fromTB.Den()))
	den.Mul(den, big.NewInt(int64(toTB.Num())))

	return roundHalfAwayFromZero(num, den)
}

func roundHalfAwayFromZero(num, den *big.Int) int64 {
	neg := num.Sign() < 0 != (den.Sign() < 0)

	absNum := new(big.Int).Abs(num)
	absDen := new(big.Int).Abs(den)

	quo, rem := new(big.Int).QuoRem(absNum, absDen, new(big.Int))
	twiceRem := new(big.Int).Lsh(rem, 1)
	if twiceRem.Cmp(absDen) >= 0 {
		quo.Add(quo, big.NewInt(1))
	}

	if neg {
		quo.Neg(quo)
	}
	return quo.Int64()
}
