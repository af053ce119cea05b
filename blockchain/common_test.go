// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math"
	"testing"
	"time"

	"github.com/doriansuite/doriand/chaincfg"
	"github.com/doriansuite/doriand/wire"
)

// newFakeParams returns a copy of the simulation network parameters suitable
// for modification by a single test without affecting the shared globals.
func newFakeParams() *chaincfg.Params {
	params := chaincfg.SimNetParams
	params.PoWNoRetargeting = false
	params.ReduceMinDifficulty = false
	return &params
}

// newFakeView returns a chain view containing only the genesis block of the
// given network parameters.
func newFakeView(params *chaincfg.Params) *chainView {
	return newChainView(newBlockNode(params.GenesisHeader, 0, nil))
}

// appendFakeNode extends the view with a synthetic block carrying the given
// difficulty bits and timestamp.  The header does not carry valid proof of
// work, which is fine for exercising the retarget calculations since they
// never hash.
func appendFakeNode(view *chainView, bits uint32, timestamp int64) {
	tip := view.tip()
	header := &wire.BlockHeader{
		Version:   1,
		PrevBlock: tip.hash,
		Timestamp: time.Unix(timestamp, 0),
		Bits:      bits,
		Nonce:     uint32(tip.height) + 1,
	}
	view.appendNode(newBlockNode(header, tip.height+1, tip))
}

// buildFakeChain appends count synthetic blocks to the view, each spaced
// solvetime seconds after its parent and all carrying the given bits.
func buildFakeChain(view *chainView, count int32, bits uint32, solvetime int64) {
	for i := int32(0); i < count; i++ {
		appendFakeNode(view, bits, view.tip().timestamp+solvetime)
	}
}

// solveHeader grinds the header nonce until the block hash satisfies the
// target difficulty claimed by its bits.
func solveHeader(t *testing.T, header *wire.BlockHeader) {
	t.Helper()

	target := CompactToBig(header.Bits)
	for nonce := uint32(0); nonce < math.MaxUint32; nonce++ {
		header.Nonce = nonce
		hash := header.BlockHash()
		if HashToBig(&hash).Cmp(target) <= 0 {
			return
		}
	}
	t.Fatalf("unable to solve header with bits %08x", header.Bits)
}

// nextTestHeader builds a solved header extending the current best chain of
// the given blockchain, with a timestamp the given number of seconds after
// the current tip's and the required difficulty for its height.
func nextTestHeader(t *testing.T, chain *BlockChain, solvetime int64) *wire.BlockHeader {
	t.Helper()

	snapshot := chain.BestSnapshot()
	tipHeader, err := chain.HeaderByHeight(snapshot.Height)
	if err != nil {
		t.Fatalf("HeaderByHeight: %v", err)
	}

	timestamp := tipHeader.Timestamp.Add(time.Duration(solvetime) * time.Second)
	bits, err := chain.CalcNextRequiredDifficulty(timestamp)
	if err != nil {
		t.Fatalf("CalcNextRequiredDifficulty: %v", err)
	}

	header := &wire.BlockHeader{
		Version:   1,
		PrevBlock: snapshot.Hash,
		Timestamp: timestamp,
		Bits:      bits,
	}
	solveHeader(t, header)
	return header
}

// memHeaderStore is a HeaderStore backed by a map.  It exercises the chain's
// persistence paths without involving a real database.
type memHeaderStore struct {
	headers map[int32]wire.BlockHeader
}

func newMemHeaderStore() *memHeaderStore {
	return &memHeaderStore{headers: make(map[int32]wire.BlockHeader)}
}

func (s *memHeaderStore) PutHeader(height int32, header *wire.BlockHeader) error {
	s.headers[height] = *header
	return nil
}

func (s *memHeaderStore) Truncate(height int32) error {
	for h := range s.headers {
		if h > height {
			delete(s.headers, h)
		}
	}
	return nil
}

func (s *memHeaderStore) Headers(fn func(int32, *wire.BlockHeader) error) error {
	// Heights are contiguous from zero, so ascending iteration stops at
	// the first gap.
	for height := int32(0); ; height++ {
		header, ok := s.headers[height]
		if !ok {
			return nil
		}
		if err := fn(height, &header); err != nil {
			return err
		}
	}
}

// assertRuleError checks that the passed error is a RuleError with the given
// code and reject reason.
func assertRuleError(t *testing.T, err error, code ErrorCode, reason string) {
	t.Helper()

	rerr, ok := err.(RuleError)
	if !ok {
		t.Fatalf("error %v (%T) is not a RuleError", err, err)
	}
	if rerr.ErrorCode != code {
		t.Fatalf("wrong error code: got %v, want %v (%v)",
			rerr.ErrorCode, code, rerr)
	}
	if got := rerr.RejectReason(); got != reason {
		t.Fatalf("wrong reject reason: got %q, want %q", got, reason)
	}
}
