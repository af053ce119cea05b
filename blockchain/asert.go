// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"time"

	"github.com/doriansuite/doriand/chaincfg"
)

// calcASERTRequiredDifficulty calculates the required difficulty for the
// block after the current tip of the passed view using the absolutely
// scheduled exponential rise target algorithm (aserti3-2d).
//
// The target is computed from the total deviation of the chain from an ideal
// block schedule anchored at the activation height:
//
//	target = anchorTarget * 2^((timeDelta - T*heightDelta) / halfLife)
//
// Parent timestamps are used on both ends of the time delta so the current
// block's own timestamp cannot influence its required difficulty.  The
// exponent is evaluated in fixed point with 16 fractional bits; the
// fractional factor 2^(frac/65536) is approximated by a cubic polynomial
// whose coefficients are chosen to keep the intermediate products within 64
// bits.  With a constant hash rate the computed difficulty stays flat, and
// the schedule provably never oscillates.
func calcASERTRequiredDifficulty(view *chainView,
	params *chaincfg.Params) (uint32, error) {

	// Genesis block.
	lastNode := view.tip()
	if lastNode == nil {
		return params.PowLimitBits, nil
	}

	// Retargeting disabled by network policy.
	if params.PoWNoRetargeting {
		return lastNode.bits, nil
	}

	// The anchor block is at the activation height.  The height-indexed
	// view makes it a direct lookup, so no memoized anchor that could go
	// stale across a reorganization is needed.
	anchorParent := view.nodeByHeight(params.ASERTActivationHeight - 1)
	if anchorParent == nil {
		return 0, AssertError("unable to obtain the exponential " +
			"schedule anchor block")
	}

	anchorTarget := CompactToBig(params.ASERTAnchorBits)

	// Time delta between the current block's parent and the anchor's
	// parent.
	timeDelta := lastNode.timestamp - anchorParent.timestamp

	// Height delta between the block being computed and the anchor.
	nextHeight := int64(lastNode.height) + 1
	heightDelta := nextHeight - int64(params.ASERTActivationHeight)

	targetSpacing := int64(params.TargetTimePerBlock / time.Second)

	// exponent = (timeDelta - T*heightDelta) / halfLife, as fixed point
	// with 16 fractional bits.
	exponent := ((timeDelta - targetSpacing*heightDelta) * 65536) /
		params.ASERTHalfLife

	// Decompose into integer shifts and a fractional part in [0, 65536).
	var shifts int32
	var frac uint32
	if exponent >= 0 {
		shifts = int32(exponent >> 16)
		frac = uint32(exponent & 0xffff)
	} else {
		// For negative exponents round the shift count down so the
		// fractional part stays non-negative, e.g. -2.3 becomes
		// shifts = -3, frac = 0.7.
		absExponent := -exponent
		shifts = -int32(absExponent >> 16)
		remainder := uint32(absExponent & 0xffff)
		if remainder != 0 {
			shifts--
			frac = 65536 - remainder
		}
	}

	// factor = 65536 * 2^(frac/65536), via a cubic polynomial
	// approximation.  The coefficients keep every term within uint64.
	factor := uint64(65536)
	if frac > 0 {
		f := uint64(frac)
		factor = 65536 + ((195766423245049*f +
			971821376*f*f +
			5127*f*f*f +
			(uint64(1) << 47)) >> 48)
	}

	// Apply the fractional part: target = anchorTarget * factor / 65536.
	nextTarget := new(big.Int).Mul(anchorTarget,
		new(big.Int).SetUint64(factor))
	nextTarget.Rsh(nextTarget, 16)

	// Apply the integer shifts.  Left shifts ease difficulty, right shifts
	// harden it; saturate at the representable extremes.
	switch {
	case shifts >= 256:
		return params.PowLimitBits, nil
	case shifts <= -256:
		// The target would be essentially zero, so return the maximum
		// possible difficulty.
		return BigToCompact(bigOne), nil
	case shifts > 0:
		nextTarget.Lsh(nextTarget, uint(shifts))
	case shifts < 0:
		nextTarget.Rsh(nextTarget, uint(-shifts))
	}

	// Clamp to [1, powLimit].
	if nextTarget.Sign() == 0 {
		nextTarget.Set(bigOne)
	}
	if nextTarget.Cmp(params.PowLimit) > 0 {
		nextTarget.Set(params.PowLimit)
	}

	return BigToCompact(nextTarget), nil
}
