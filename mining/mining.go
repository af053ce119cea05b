// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mining

import (
	"time"

	"github.com/doriansuite/doriand/blockchain"
	"github.com/doriansuite/doriand/chaincfg"
	"github.com/doriansuite/doriand/wire"
)

// generatedBlockVersion is the version of the block being generated.
const generatedBlockVersion = 1

// BlockTemplate houses a block header that is ready to be solved by a miner
// along with the height it will occupy once solved.  The header carries the
// required difficulty for that height, so a solution satisfying its own bits
// also satisfies the chain's consensus rules.
type BlockTemplate struct {
	// Header is the header of the block to be solved.  Only the nonce (and
	// possibly the timestamp, via UpdateBlockTime) should be changed while
	// solving.
	Header *wire.BlockHeader

	// Height is the height at which the block template connects to the
	// main chain.
	Height int32
}

// BlkTmplGenerator provides a type that can be used to generate block
// templates extending the current best chain.
//
// Templates are rebuilt from a fresh chain snapshot on every call, so a
// template handed to a miner is never silently invalidated by a concurrent
// reorganization; it simply stops connecting and the miner requests a new
// one.
type BlkTmplGenerator struct {
	chainParams *chaincfg.Params
	chain       *blockchain.BlockChain
}

// NewBlkTmplGenerator returns a new block template generator for the given
// chain parameters and chain instance.
func NewBlkTmplGenerator(chainParams *chaincfg.Params,
	chain *blockchain.BlockChain) *BlkTmplGenerator {

	return &BlkTmplGenerator{
		chainParams: chainParams,
		chain:       chain,
	}
}

// medianAdjustedTime returns the current time adjusted to ensure it is at
// least one second after the median timestamp of the last several blocks per
// the chain consensus rules.
func medianAdjustedTime(best *blockchain.BestState) time.Time {
	// The timestamp for the block must not be before the median timestamp
	// of the last several blocks.  Thus, choose the maximum between the
	// current time and one second after the past median time.  The current
	// timestamp is truncated to a second boundary before comparison since
	// a block timestamp does not support a precision greater than one
	// second.
	newTimestamp := time.Unix(time.Now().Unix(), 0)
	minTimestamp := best.MedianTime.Add(time.Second)
	if newTimestamp.Before(minTimestamp) {
		newTimestamp = minTimestamp
	}
	return newTimestamp
}

// NewBlockTemplate returns a new block template extending the current best
// chain.  The header's difficulty bits are the required difficulty for the
// template height computed from a consistent snapshot of the chain, so two
// concurrent calls may return templates for the same height but never for an
// inconsistent mixture of chain states.
func (g *BlkTmplGenerator) NewBlockTemplate() (*BlockTemplate, error) {
	best := g.chain.BestSnapshot()

	ts := medianAdjustedTime(best)
	reqDifficulty, err := g.chain.CalcNextRequiredDifficulty(ts)
	if err != nil {
		return nil, err
	}

	header := &wire.BlockHeader{
		Version:   generatedBlockVersion,
		PrevBlock: best.Hash,
		Timestamp: ts,
		Bits:      reqDifficulty,
	}
	nextHeight := best.Height + 1

	log.Debugf("Created new block template (height %d, previous %v, "+
		"difficulty bits %08x)", nextHeight, best.Hash, reqDifficulty)

	return &BlockTemplate{
		Header: header,
		Height: nextHeight,
	}, nil
}

// UpdateBlockTime updates the timestamp in the header of the passed template
// to the current time while taking into account the median time of the last
// several blocks to maintain consensus validity.  The required difficulty is
// recomputed as well since networks with the minimum difficulty reduction
// rule derive it from the timestamp.
func (g *BlkTmplGenerator) UpdateBlockTime(template *BlockTemplate) error {
	best := g.chain.BestSnapshot()

	newTime := medianAdjustedTime(best)
	template.Header.Timestamp = newTime

	if g.chainParams.ReduceMinDifficulty {
		difficulty, err := g.chain.CalcNextRequiredDifficulty(newTime)
		if err != nil {
			return err
		}
		template.Header.Bits = difficulty
	}

	return nil
}
