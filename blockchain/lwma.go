// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"time"

	"github.com/doriansuite/doriand/chaincfg"
)

// clampSolvetime bounds the elapsed time between two consecutive block
// timestamps to the configured per-block limits.  Bounding each solvetime
// individually resists time-warp attacks: a single manipulated timestamp
// cannot disproportionately move the weighted average.
func clampSolvetime(solvetime int64, params *chaincfg.Params) int64 {
	if solvetime < params.LWMAMinSolvetime {
		return params.LWMAMinSolvetime
	}
	if solvetime > params.LWMAMaxSolvetime {
		return params.LWMAMaxSolvetime
	}
	return solvetime
}

// calcLWMARequiredDifficulty calculates the required difficulty for the block
// after the current tip of the passed view using a linearly weighted moving
// average of recent solve times.
//
// For a window of the most recent k blocks (k is the configured window size,
// or the entire post-genesis history when the chain is younger than that),
// each block i in the window (1 = oldest, k = newest) contributes its clamped
// solvetime with weight i, so the newest blocks dominate the average.  The
// next target is the arithmetic mean of the window's targets scaled by the
// ratio of the weighted average solvetime to the target spacing:
//
//	nextTarget = avgTarget * sum(weight_i * solvetime_i) / (sum(weight_i) * T)
//
// The result is clamped to [1, powLimit].  Weighting recent blocks more
// heavily keeps the algorithm responsive to hash-rate swings without the
// oscillation a single-block ratio would cause.
func calcLWMARequiredDifficulty(view *chainView,
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

	// Use every block back to the first post-genesis block when the chain
	// is younger than the window.  The genesis block itself has no
	// solvetime, so with no usable history the previous difficulty is
	// reused.
	window := params.LWMAWindow
	if lastNode.height < window {
		window = lastNode.height
	}
	if window < 1 {
		return lastNode.bits, nil
	}

	targetSpacing := int64(params.TargetTimePerBlock / time.Second)

	var weightedSolvetimeSum, weightSum int64
	avgTarget := new(big.Int)
	oldestHeight := lastNode.height - window + 1
	for i := int32(1); i <= window; i++ {
		node := view.nodeByHeight(oldestHeight + i - 1)
		parent := view.nodeByHeight(node.height - 1)

		solvetime := clampSolvetime(node.timestamp-parent.timestamp, params)
		weightedSolvetimeSum += solvetime * int64(i)
		weightSum += int64(i)

		avgTarget.Add(avgTarget, CompactToBig(node.bits))
	}
	avgTarget.Div(avgTarget, big.NewInt(int64(window)))

	// nextTarget = avgTarget * weightedSolvetimeSum / (weightSum * T)
	nextTarget := new(big.Int).Mul(avgTarget,
		big.NewInt(weightedSolvetimeSum))
	nextTarget.Div(nextTarget, big.NewInt(weightSum*targetSpacing))

	// Clamp to [1, powLimit].
	if nextTarget.Sign() <= 0 {
		nextTarget.Set(bigOne)
	}
	if nextTarget.Cmp(params.PowLimit) > 0 {
		nextTarget.Set(params.PowLimit)
	}

	return BigToCompact(nextTarget), nil
}

// calcLWMAv2RequiredDifficulty calculates the required difficulty for the
// block after the current tip of the passed view using the stabilized LWMA
// variant.
//
// The variant differs from calcLWMARequiredDifficulty in two ways that break
// the feedback loop responsible for compounding oscillations in the original:
// the reference target is taken from the block at the start of the window
// rather than derived from the window itself, and the weighted solvetime sum
// is capped to limit any single adjustment to 3x in either direction.
func calcLWMAv2RequiredDifficulty(view *chainView,
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

	// Only count blocks mined since LWMA activation, and never more than
	// the chain can supply parents for.
	window := params.LWMAWindow
	nextHeight := lastNode.height + 1
	if available := nextHeight - params.LWMAActivationHeight; available < window {
		window = available
	}
	if window > lastNode.height {
		window = lastNode.height
	}

	// A meaningful average needs a few blocks of history.
	if window < 3 {
		return lastNode.bits, nil
	}

	// Reference target from the start of the window, not the previous
	// block.
	windowStart := view.nodeByHeight(lastNode.height - window)
	referenceTarget := CompactToBig(windowStart.bits)

	targetSpacing := int64(params.TargetTimePerBlock / time.Second)

	var weightedSolvetimeSum, weightSum int64
	oldestHeight := lastNode.height - window + 1
	for i := int32(1); i <= window; i++ {
		node := view.nodeByHeight(oldestHeight + i - 1)
		parent := view.nodeByHeight(node.height - 1)

		solvetime := clampSolvetime(node.timestamp-parent.timestamp, params)
		weightedSolvetimeSum += solvetime * int64(i)
		weightSum += int64(i)
	}

	// Cap the adjustment to 3x per block in either direction.  With the
	// window-start reference the caps are rarely hit; they are a safety
	// valve against pathological timestamp runs.
	expectedWeightedSolvetimes := weightSum * targetSpacing
	if weightedSolvetimeSum < expectedWeightedSolvetimes/3 {
		weightedSolvetimeSum = expectedWeightedSolvetimes / 3
	}
	if weightedSolvetimeSum > expectedWeightedSolvetimes*3 {
		weightedSolvetimeSum = expectedWeightedSolvetimes * 3
	}

	nextTarget := new(big.Int).Mul(referenceTarget,
		big.NewInt(weightedSolvetimeSum))
	nextTarget.Div(nextTarget, big.NewInt(expectedWeightedSolvetimes))

	// Clamp to [1, powLimit].
	if nextTarget.Sign() <= 0 {
		nextTarget.Set(bigOne)
	}
	if nextTarget.Cmp(params.PowLimit) > 0 {
		nextTarget.Set(params.PowLimit)
	}

	return BigToCompact(nextTarget), nil
}
