// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"sync"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"

	"github.com/doriansuite/doriand/chaincfg"
	"github.com/doriansuite/doriand/wire"
)

// TestChainRegressionNetDifficulty mines a regression test chain across the
// moving average activation height and ensures every block is required to
// carry the genesis difficulty, including a block that claims the proof of
// work limit instead.
func TestChainRegressionNetDifficulty(t *testing.T) {
	params := &chaincfg.RegressionNetParams
	chain, err := New(&Config{ChainParams: params})
	require.NoError(t, err)

	genesisBits := params.GenesisHeader.Bits
	require.Equal(t, genesisBits, chain.BestSnapshot().Bits)

	// Mine through the activation height.  Retargeting is disabled on
	// this network, so the genesis difficulty persists under both the
	// legacy and the moving average algorithm.
	for height := int32(1); height <= params.LWMAActivationHeight+50; height++ {
		header := nextTestHeader(t, chain, 1)
		require.Equal(t, genesisBits, header.Bits, "height %d", height)
		require.NoError(t, chain.ProcessBlock(header, BFNone))
	}

	tipHeight := params.LWMAActivationHeight + 50
	require.Equal(t, tipHeight, chain.BestSnapshot().Height)

	// A block claiming the proof of work limit is within the valid target
	// range but does not match the required difficulty, so it is rejected
	// without moving the tip.
	header := nextTestHeader(t, chain, 1)
	header.Bits = params.PowLimitBits
	solveHeader(t, header)
	err = chain.ProcessBlock(header, BFNone)
	assertRuleError(t, err, ErrUnexpectedDifficulty, "bad-diffbits")
	require.Equal(t, tipHeight, chain.BestSnapshot().Height)

	// The same slot with the required difficulty is accepted.
	header = nextTestHeader(t, chain, 1)
	require.NoError(t, chain.ProcessBlock(header, BFNone))
	require.Equal(t, tipHeight+1, chain.BestSnapshot().Height)
}

// TestChainRejections exercises the process-time rejection paths: duplicate
// blocks, unknown parents, and timestamps at or below the past median.
func TestChainRejections(t *testing.T) {
	params := &chaincfg.RegressionNetParams
	chain, err := New(&Config{ChainParams: params})
	require.NoError(t, err)

	headers := make([]*wire.BlockHeader, 0, 15)
	for height := int32(1); height <= 15; height++ {
		header := nextTestHeader(t, chain, 1)
		require.NoError(t, chain.ProcessBlock(header, BFNone))
		headers = append(headers, header)
	}

	// Submitting the tip again is a duplicate.
	err = chain.ProcessBlock(headers[len(headers)-1], BFNone)
	assertRuleError(t, err, ErrDuplicateBlock, "duplicate")

	// So is any block already in the chain.
	err = chain.ProcessBlock(headers[3], BFNone)
	assertRuleError(t, err, ErrDuplicateBlock, "duplicate")

	// A header whose parent is unknown cannot connect.
	orphan := nextTestHeader(t, chain, 1)
	orphan.PrevBlock = chainhash.Hash{0x01}
	solveHeader(t, orphan)
	err = chain.ProcessBlock(orphan, BFNone)
	assertRuleError(t, err, ErrMissingParent, "bad-prevblk")

	// A header building on a non-tip block is also treated as a missing
	// parent; displacing the tip requires a reorganization.
	sideHash := headers[10].BlockHash()
	side := nextTestHeader(t, chain, 1)
	side.PrevBlock = sideHash
	solveHeader(t, side)
	err = chain.ProcessBlock(side, BFNone)
	assertRuleError(t, err, ErrMissingParent, "bad-prevblk")

	// A timestamp at the past median is too old.
	stale := nextTestHeader(t, chain, 1)
	stale.Timestamp = chain.BestSnapshot().MedianTime
	solveHeader(t, stale)
	err = chain.ProcessBlock(stale, BFNone)
	assertRuleError(t, err, ErrTimeTooOld, "time-too-old")
}

// buildBranch constructs a solved branch of the given length building on the
// main chain block at the fork height.  The branch timestamps are offset so
// its headers never collide with the main chain's.
func buildBranch(t *testing.T, chain *BlockChain, forkHeight int32,
	length int) []*wire.BlockHeader {

	t.Helper()

	forkHeader, err := chain.HeaderByHeight(forkHeight)
	require.NoError(t, err)

	prevHash := forkHeader.BlockHash()
	prevTime := forkHeader.Timestamp
	bits := chain.chainParams.GenesisHeader.Bits

	branch := make([]*wire.BlockHeader, 0, length)
	for i := 0; i < length; i++ {
		header := &wire.BlockHeader{
			Version:   1,
			PrevBlock: prevHash,
			Timestamp: prevTime.Add(2 * time.Second),
			Bits:      bits,
		}
		solveHeader(t, header)
		branch = append(branch, header)
		prevHash = header.BlockHash()
		prevTime = header.Timestamp
	}
	return branch
}

// TestChainReorganize ensures a branch with strictly more cumulative work
// displaces the active chain atomically, while branches with equal or less
// work are rejected without side effects.
func TestChainReorganize(t *testing.T) {
	params := &chaincfg.RegressionNetParams
	chain, err := New(&Config{ChainParams: params})
	require.NoError(t, err)

	for height := int32(1); height <= 5; height++ {
		require.NoError(t, chain.ProcessBlock(nextTestHeader(t, chain, 1), BFNone))
	}
	oldTip := chain.BestSnapshot().Hash

	// A branch from an unknown block cannot fork the chain.
	bogus := buildBranch(t, chain, 3, 3)
	bogus[0].PrevBlock = chainhash.Hash{0x02}
	err = chain.ReorganizeChain(bogus, BFNone)
	assertRuleError(t, err, ErrMissingParent, "bad-prevblk")

	// Every block carries identical work on this network, so an
	// equal-length branch ties on cumulative work and must not displace
	// the chain the node saw first.
	tie := buildBranch(t, chain, 3, 2)
	err = chain.ReorganizeChain(tie, BFNone)
	assertRuleError(t, err, ErrInsufficientChainWork, "insufficient-work")
	require.Equal(t, oldTip, chain.BestSnapshot().Hash)

	// A longer branch wins.
	branch := buildBranch(t, chain, 3, 3)
	require.NoError(t, chain.ReorganizeChain(branch, BFNone))

	snapshot := chain.BestSnapshot()
	require.Equal(t, int32(6), snapshot.Height)
	require.Equal(t, branch[2].BlockHash(), snapshot.Hash)

	// The displaced blocks are gone from the main chain and the branch
	// headers replaced them.
	require.False(t, chain.MainChainHasBlock(&oldTip))
	gotHeader, err := chain.HeaderByHeight(4)
	require.NoError(t, err)
	require.Equal(t, branch[0].BlockHash(), gotHeader.BlockHash())

	// The chain extends normally from the new tip.
	require.NoError(t, chain.ProcessBlock(nextTestHeader(t, chain, 1), BFNone))
	require.Equal(t, int32(7), chain.BestSnapshot().Height)
}

// TestChainReorganizeCacheEviction ensures memoized required difficulties
// above the fork point do not survive a reorganization.
func TestChainReorganizeCacheEviction(t *testing.T) {
	params := &chaincfg.RegressionNetParams
	chain, err := New(&Config{ChainParams: params})
	require.NoError(t, err)

	for height := int32(1); height <= 5; height++ {
		require.NoError(t, chain.ProcessBlock(nextTestHeader(t, chain, 1), BFNone))
	}

	// Accepting each block memoizes the required difficulty at its
	// height.
	require.Contains(t, chain.nextBitsCache, int32(5))

	branch := buildBranch(t, chain, 3, 3)
	require.NoError(t, chain.ReorganizeChain(branch, BFNone))

	for height := range chain.nextBitsCache {
		require.LessOrEqual(t, height, int32(3))
	}
}

// TestChainPersistence ensures the chain is restored from its header store
// across restarts, including after a reorganization.
func TestChainPersistence(t *testing.T) {
	params := &chaincfg.RegressionNetParams
	store := newMemHeaderStore()

	chain, err := New(&Config{ChainParams: params, Store: store})
	require.NoError(t, err)
	for height := int32(1); height <= 8; height++ {
		require.NoError(t, chain.ProcessBlock(nextTestHeader(t, chain, 1), BFNone))
	}
	tip := chain.BestSnapshot().Hash

	restored, err := New(&Config{ChainParams: params, Store: store})
	require.NoError(t, err)
	require.Equal(t, int32(8), restored.BestSnapshot().Height)
	require.Equal(t, tip, restored.BestSnapshot().Hash)

	// A reorganization truncates and rewrites the store suffix.
	branch := buildBranch(t, chain, 5, 4)
	require.NoError(t, chain.ReorganizeChain(branch, BFNone))

	restored, err = New(&Config{ChainParams: params, Store: store})
	require.NoError(t, err)
	require.Equal(t, chain.BestSnapshot().Hash, restored.BestSnapshot().Hash)
	require.Equal(t, int32(9), restored.BestSnapshot().Height)

	// A store seeded with a different network's chain is refused.
	_, err = New(&Config{ChainParams: &chaincfg.SimNetParams, Store: store})
	require.Error(t, err)
}

// TestChainConcurrentReaders runs snapshot and difficulty queries against a
// chain that is being extended concurrently.  It mainly exists to give the
// race detector something to chew on.
func TestChainConcurrentReaders(t *testing.T) {
	params := &chaincfg.RegressionNetParams
	chain, err := New(&Config{ChainParams: params})
	require.NoError(t, err)

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				snapshot := chain.BestSnapshot()
				_, err := chain.CalcNextRequiredDifficulty(
					snapshot.MedianTime.Add(time.Second))
				if err != nil {
					t.Errorf("CalcNextRequiredDifficulty: %v", err)
					return
				}
				if _, err := chain.HeaderByHeight(snapshot.Height); err != nil {
					t.Errorf("HeaderByHeight: %v", err)
					return
				}
			}
		}()
	}

	for height := int32(1); height <= 30; height++ {
		require.NoError(t, chain.ProcessBlock(nextTestHeader(t, chain, 1), BFNone))
	}
	close(done)
	wg.Wait()
}
