// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"math/big"
	"time"

	"github.com/doriansuite/doriand/wire"
)

// MaxTimeOffsetSeconds is the maximum number of seconds a block time is
// allowed to be ahead of the current time.
const MaxTimeOffsetSeconds = 2 * 60 * 60

// checkProofOfWork ensures the block header bits which indicate the target
// difficulty is in min/max range and that the block hash is less than the
// target difficulty as claimed.
//
// The flags modify the behavior of this function as follows:
//   - BFNoPoWCheck: The check to ensure the block hash is less than the target
//     difficulty is not performed.
func checkProofOfWork(header *wire.BlockHeader, powLimit *big.Int,
	flags BehaviorFlags) error {

	// The target difficulty must be larger than zero.  A compact value
	// with the sign bit set, or one whose exponent/mantissa combination
	// overflows 256 bits, decodes to a value outside this range, so
	// malformed encodings are rejected here rather than crashing.
	target := CompactToBig(header.Bits)
	if target.Sign() <= 0 {
		str := fmt.Sprintf("block target difficulty of %064x is too low",
			target)
		return ruleError(ErrUnexpectedDifficulty, str)
	}

	// The target difficulty must be less than the maximum allowed.
	if target.Cmp(powLimit) > 0 {
		str := fmt.Sprintf("block target difficulty of %064x is "+
			"higher than max of %064x", target, powLimit)
		return ruleError(ErrUnexpectedDifficulty, str)
	}

	// The block hash must be less than the claimed target unless the flag
	// to avoid proof of work checks is set.
	if flags&BFNoPoWCheck != BFNoPoWCheck {
		// The block hash must be less than the claimed target.
		hash := header.BlockHash()
		hashNum := HashToBig(&hash)
		if hashNum.Cmp(target) > 0 {
			str := fmt.Sprintf("block hash of %064x is higher than "+
				"expected max of %064x", hashNum, target)
			return ruleError(ErrHighHash, str)
		}
	}

	return nil
}

// CheckProofOfWork ensures the block header bits which indicate the target
// difficulty is in min/max range and that the block hash is less than the
// target difficulty as claimed.
func CheckProofOfWork(header *wire.BlockHeader, powLimit *big.Int) error {
	return checkProofOfWork(header, powLimit, BFNone)
}

// checkBlockHeaderSanity performs some preliminary checks on a block header to
// ensure it is sane before continuing with contextual processing.  These
// checks are context free.
func checkBlockHeaderSanity(header *wire.BlockHeader, powLimit *big.Int,
	flags BehaviorFlags) error {

	// Ensure the proof of work bits in the block header is in min/max
	// range and the block hash is less than the target value described by
	// the bits.
	err := checkProofOfWork(header, powLimit, flags)
	if err != nil {
		return err
	}

	// A block timestamp must not have a greater precision than one second.
	// This check is necessary because Go time.Time values support
	// nanosecond precision whereas the consensus rules only apply to
	// seconds and it's much nicer to deal with standard Go time values
	// instead of converting to seconds everywhere.
	if !header.Timestamp.Equal(time.Unix(header.Timestamp.Unix(), 0)) {
		str := fmt.Sprintf("block timestamp of %v has a higher "+
			"precision than one second", header.Timestamp)
		return ruleError(ErrInvalidTime, str)
	}

	// Ensure the block time is not too far in the future.
	maxTimestamp := time.Now().Add(time.Second * MaxTimeOffsetSeconds)
	if header.Timestamp.After(maxTimestamp) {
		str := fmt.Sprintf("block timestamp of %v is too far in the "+
			"future", header.Timestamp)
		return ruleError(ErrTimeTooNew, str)
	}

	return nil
}

// checkBlockHeaderContext performs several validation checks on the block
// header which depend on its position within the block chain represented by
// the passed view.
//
// The flags modify the behavior of this function as follows:
//   - BFFastAdd: The checks are not performed.  This is used when replaying
//     headers that were already validated before they were stored.
//
// This function MUST be called with the chain lock held (for writes, since
// the required difficulty cache may be populated).
func (b *BlockChain) checkBlockHeaderContext(header *wire.BlockHeader,
	view *chainView, flags BehaviorFlags) error {

	fastAdd := flags&BFFastAdd == BFFastAdd
	if fastAdd {
		return nil
	}

	// Ensure the difficulty specified in the block header matches the
	// calculated difficulty based on the previous block and difficulty
	// retarget rules.  The comparison is between compact values, so a
	// non-canonical encoding of the correct target is still rejected.
	expectedDifficulty, err := b.calcRequiredDifficulty(view,
		header.Timestamp)
	if err != nil {
		return err
	}
	blockDifficulty := header.Bits
	if blockDifficulty != expectedDifficulty {
		str := "block difficulty of %08x is not the expected value of %08x"
		str = fmt.Sprintf(str, blockDifficulty, expectedDifficulty)
		return ruleError(ErrUnexpectedDifficulty, str)
	}

	// Ensure the timestamp for the block header is after the median time
	// of the last several blocks (medianTimeBlocks).
	medianTime := view.calcPastMedianTime(view.tip())
	if header.Timestamp.Unix() <= medianTime {
		str := fmt.Sprintf("block timestamp of %v is not after expected "+
			"%v", header.Timestamp, time.Unix(medianTime, 0))
		return ruleError(ErrTimeTooOld, str)
	}

	return nil
}
