// Copyright (c) 2013-2018 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/doriansuite/doriand/chaincfg"
	"github.com/doriansuite/doriand/wire"
)

// HeaderStore houses the block headers of the main chain keyed by height.
// The chain writes headers through it as they are accepted and replays them
// on startup, so implementations only need ordered iteration and a suffix
// truncate for reorganizations.
type HeaderStore interface {
	// PutHeader stores the header for the given main chain height,
	// replacing any header previously stored at that height.
	PutHeader(height int32, header *wire.BlockHeader) error

	// Truncate removes all stored headers above the given height.
	Truncate(height int32) error

	// Headers invokes the given function for each stored header in
	// ascending height order.  Iteration stops at the first error, which
	// is returned to the caller.
	Headers(fn func(height int32, header *wire.BlockHeader) error) error
}

// BestState houses information about the current best block and other info
// related to the state of the main chain as it exists from the point of view
// of the current best block.
//
// The BestSnapshot method can be used to obtain access to this information
// in a concurrent safe manner and the data will not be changed out from under
// the caller when chain state changes occur as the function name implies.
type BestState struct {
	Hash       chainhash.Hash // The hash of the block.
	Height     int32          // The height of the block.
	Bits       uint32         // The difficulty bits of the block.
	MedianTime time.Time      // Median time as per calcPastMedianTime.
}

// newBestState returns a new best stats instance for the given parameters.
func newBestState(node *blockNode, medianTime time.Time) *BestState {
	return &BestState{
		Hash:       node.hash,
		Height:     node.height,
		Bits:       node.bits,
		MedianTime: medianTime,
	}
}

// Config is a descriptor which specifies the blockchain instance
// configuration.
type Config struct {
	// ChainParams identifies which chain parameters the chain is
	// associated with.
	//
	// This field is required.
	ChainParams *chaincfg.Params

	// Store defines the header store to use for persisting the main
	// chain across restarts.
	//
	// This field can be nil, in which case the chain is kept entirely in
	// memory.
	Store HeaderStore
}

// BlockChain provides functions for working with the header chain of a
// Doriancoin network.  It includes functionality such as rejecting duplicate
// blocks, ensuring headers follow all consensus rules including the
// difficulty retarget rules in force at their height, and best chain
// selection with reorganization.
type BlockChain struct {
	// The following fields are set when the instance is created and can't
	// be changed afterwards, so there is no need to protect them with a
	// separate mutex.
	chainParams *chaincfg.Params
	store       HeaderStore

	// chainLock protects concurrent access to the vast majority of the
	// fields in this struct below this point.
	chainLock sync.RWMutex

	// view tracks the active branch of the chain from the genesis block
	// to the current tip.
	view *chainView

	// index maps the hash of every known main chain block to its node so
	// duplicates and reorganization fork points can be found without
	// scanning.
	index map[chainhash.Hash]*blockNode

	// nextBitsCache memoizes the required difficulty for the block at a
	// given next height on the active chain.  The calculation walks a
	// window of ancestors, so templates and header validation at the same
	// height would otherwise repeat it.  Entries above the fork point are
	// evicted on reorganization, and the cache is disabled entirely on
	// networks where the required difficulty depends on the new block's
	// timestamp rather than the height alone.
	nextBitsCache map[int32]uint32
}

// New returns a BlockChain instance using the provided configuration details.
// When the configuration includes a header store, any headers it contains are
// validated and replayed to restore the chain state.
func New(config *Config) (*BlockChain, error) {
	if config.ChainParams == nil {
		return nil, AssertError("blockchain.New chain parameters nil")
	}

	params := config.ChainParams
	genesisNode := newBlockNode(params.GenesisHeader, 0, nil)
	b := &BlockChain{
		chainParams:   params,
		store:         config.Store,
		view:          newChainView(genesisNode),
		index:         map[chainhash.Hash]*blockNode{genesisNode.hash: genesisNode},
		nextBitsCache: make(map[int32]uint32),
	}

	if config.Store != nil {
		storeEmpty := true
		err := config.Store.Headers(func(height int32, header *wire.BlockHeader) error {
			storeEmpty = false
			if height == 0 {
				hash := header.BlockHash()
				if !hash.IsEqual(params.GenesisHash) {
					return AssertError(fmt.Sprintf("header "+
						"store genesis block %v does not "+
						"match chain parameters genesis "+
						"block %v", hash, params.GenesisHash))
				}
				return nil
			}
			return b.connectHeader(header, BFFastAdd)
		})
		if err != nil {
			return nil, err
		}

		// Make a fresh store self-contained by seeding it with the
		// genesis header.
		if storeEmpty {
			err := config.Store.PutHeader(0, params.GenesisHeader)
			if err != nil {
				return nil, err
			}
		}

		log.Infof("Chain state (height %d, hash %v)", b.view.height(),
			b.view.tip().hash)
	}

	return b, nil
}

// calcRequiredDifficulty returns the required difficulty for the block after
// the tip of the given view, consulting the cache when the view is the active
// chain and the network's rules make the result a pure function of height.
//
// This function MUST be called with the chain lock held (for writes).
func (b *BlockChain) calcRequiredDifficulty(view *chainView,
	newBlockTime time.Time) (uint32, error) {

	// On networks with the minimum difficulty reduction rule the result
	// depends on the new block's timestamp, so it cannot be memoized by
	// height.  Candidate views built during a reorganization share node
	// heights with the active chain and must not read its cache.
	nextHeight := view.height() + 1
	cacheable := view == b.view && !b.chainParams.ReduceMinDifficulty
	if cacheable {
		if bits, ok := b.nextBitsCache[nextHeight]; ok {
			return bits, nil
		}
	}

	bits, err := calcNextRequiredDifficulty(view, newBlockTime, b.chainParams)
	if err != nil {
		return 0, err
	}
	if cacheable {
		b.nextBitsCache[nextHeight] = bits
	}
	return bits, nil
}

// connectHeader validates the given header against the current tip of the
// active chain and, when it passes all consensus rules, persists it and
// extends the chain with it.
//
// This function MUST be called with the chain lock held (for writes).
func (b *BlockChain) connectHeader(header *wire.BlockHeader, flags BehaviorFlags) error {
	blockHash := header.BlockHash()
	if _, exists := b.index[blockHash]; exists {
		str := fmt.Sprintf("already have block %v", blockHash)
		return ruleError(ErrDuplicateBlock, str)
	}

	// Headers may only build on the current tip.  Extending any other
	// known block is a branch and must go through ReorganizeChain.
	tip := b.view.tip()
	if !header.PrevBlock.IsEqual(&tip.hash) {
		str := fmt.Sprintf("previous block %v is not the current "+
			"chain tip %v", header.PrevBlock, tip.hash)
		return ruleError(ErrMissingParent, str)
	}

	err := checkBlockHeaderSanity(header, b.chainParams.PowLimit, flags)
	if err != nil {
		return err
	}
	err = b.checkBlockHeaderContext(header, b.view, flags)
	if err != nil {
		return err
	}

	// Persist before extending the in-memory chain so a store failure
	// leaves the chain state untouched.
	node := newBlockNode(header, tip.height+1, tip)
	if b.store != nil {
		if err := b.store.PutHeader(node.height, header); err != nil {
			return err
		}
	}
	b.view.appendNode(node)
	b.index[node.hash] = node

	return nil
}

// ProcessBlock is the main workhorse for handling insertion of new blocks into
// the block chain.  It includes functionality such as rejecting duplicate
// blocks, ensuring headers follow all rules, and insertion into the chain.
//
// This function is safe for concurrent access.
func (b *BlockChain) ProcessBlock(header *wire.BlockHeader, flags BehaviorFlags) error {
	b.chainLock.Lock()
	defer b.chainLock.Unlock()

	err := b.connectHeader(header, flags)
	if err != nil {
		return err
	}

	tip := b.view.tip()
	log.Debugf("Accepted block %v (height %d, bits %08x)", tip.hash,
		tip.height, tip.bits)
	return nil
}

// ReorganizeChain switches the active chain to the branch described by the
// given headers.  The first header must connect to a block on the active
// chain (the fork point), the branch must be internally valid under the
// consensus rules in force along it, and its cumulative work must strictly
// exceed that of the active chain.  The switch is atomic: on any failure the
// active chain is left untouched.
//
// This function is safe for concurrent access.
func (b *BlockChain) ReorganizeChain(headers []*wire.BlockHeader, flags BehaviorFlags) error {
	b.chainLock.Lock()
	defer b.chainLock.Unlock()

	if len(headers) == 0 {
		return AssertError("ReorganizeChain called with no headers")
	}

	forkNode, exists := b.index[headers[0].PrevBlock]
	if !exists {
		str := fmt.Sprintf("reorganize branch builds on unknown "+
			"block %v", headers[0].PrevBlock)
		return ruleError(ErrMissingParent, str)
	}

	// Build the candidate branch on a cloned view so the validation of
	// each header sees the branch, not the active chain, as its history.
	// The clone shares the immutable nodes below the fork point.
	sideView := b.view.clone(forkNode.height)
	for _, header := range headers {
		tip := sideView.tip()
		if !header.PrevBlock.IsEqual(&tip.hash) {
			str := fmt.Sprintf("reorganize header %v does not "+
				"connect to branch tip %v", header.BlockHash(),
				tip.hash)
			return ruleError(ErrMissingParent, str)
		}

		err := checkBlockHeaderSanity(header, b.chainParams.PowLimit, flags)
		if err != nil {
			return err
		}
		err = b.checkBlockHeaderContext(header, sideView, flags)
		if err != nil {
			return err
		}

		sideView.appendNode(newBlockNode(header, tip.height+1, tip))
	}

	// The branch must carry strictly more cumulative work than the active
	// chain, so an equal-work branch never displaces the chain the node
	// saw first.
	oldTip := b.view.tip()
	newTip := sideView.tip()
	if newTip.workSum.Cmp(oldTip.workSum) <= 0 {
		str := fmt.Sprintf("reorganize branch cumulative work %v does "+
			"not exceed the active chain's %v", newTip.workSum,
			oldTip.workSum)
		return ruleError(ErrInsufficientChainWork, str)
	}

	// Commit the new branch to the store first so a store failure leaves
	// the in-memory chain consistent with what callers have observed.
	if b.store != nil {
		if err := b.store.Truncate(forkNode.height); err != nil {
			return err
		}
		for height := forkNode.height + 1; height <= sideView.height(); height++ {
			node := sideView.nodeByHeight(height)
			hdr := node.header(sideView.nodeByHeight(height - 1))
			if err := b.store.PutHeader(height, &hdr); err != nil {
				return err
			}
		}
	}

	// Swap the active view and rebuild the affected index entries.
	for height := b.view.height(); height > forkNode.height; height-- {
		delete(b.index, b.view.nodeByHeight(height).hash)
	}
	for height := forkNode.height + 1; height <= sideView.height(); height++ {
		node := sideView.nodeByHeight(height)
		b.index[node.hash] = node
	}
	b.view = sideView

	// Required difficulty above the fork point was computed against the
	// old branch.
	for height := range b.nextBitsCache {
		if height > forkNode.height {
			delete(b.nextBitsCache, height)
		}
	}

	log.Infof("REORGANIZE: chain forks at height %d", forkNode.height)
	log.Infof("REORGANIZE: old best chain tip was %v (height %d)",
		oldTip.hash, oldTip.height)
	log.Infof("REORGANIZE: new best chain tip is %v (height %d)",
		newTip.hash, newTip.height)
	return nil
}

// CalcNextRequiredDifficulty calculates the required difficulty for the block
// after the end of the current best chain based on the difficulty retarget
// rules.  The timestamp is the expected timestamp of the new block; it only
// influences the result on networks with the minimum difficulty reduction
// rule.
//
// This function is safe for concurrent access.
func (b *BlockChain) CalcNextRequiredDifficulty(timestamp time.Time) (uint32, error) {
	// A write lock since the difficulty cache may be populated.
	b.chainLock.Lock()
	difficulty, err := b.calcRequiredDifficulty(b.view, timestamp)
	b.chainLock.Unlock()
	return difficulty, err
}

// BestSnapshot returns information about the current best chain block and
// related state as of the current point in time.  The returned instance must
// be treated as immutable since it is shared by all callers.
//
// This function is safe for concurrent access.
func (b *BlockChain) BestSnapshot() *BestState {
	b.chainLock.RLock()
	defer b.chainLock.RUnlock()

	tip := b.view.tip()
	medianTime := time.Unix(b.view.calcPastMedianTime(tip), 0)
	return newBestState(tip, medianTime)
}

// HeaderByHeight returns the block header at the given height in the main
// chain.
//
// This function is safe for concurrent access.
func (b *BlockChain) HeaderByHeight(height int32) (*wire.BlockHeader, error) {
	b.chainLock.RLock()
	defer b.chainLock.RUnlock()

	node := b.view.nodeByHeight(height)
	if node == nil {
		str := fmt.Sprintf("no block at height %d exists", height)
		return nil, errNotInMainChain(str)
	}
	header := node.header(b.view.nodeByHeight(height - 1))
	return &header, nil
}

// MainChainHasBlock returns whether or not the block with the given hash is in
// the main chain.
//
// This function is safe for concurrent access.
func (b *BlockChain) MainChainHasBlock(hash *chainhash.Hash) bool {
	b.chainLock.RLock()
	defer b.chainLock.RUnlock()

	_, exists := b.index[*hash]
	return exists
}
