// Copyright (c) 2017 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"math/big"
	"sort"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/doriansuite/doriand/wire"
)

// medianTimeBlocks is the number of previous blocks which should be used to
// calculate the median time used to validate block timestamps.
const medianTimeBlocks = 11

// blockNode represents a block header within the chain view.  Nodes are
// immutable once created, so they may be freely shared between the active
// view and candidate views built during a reorganization.
type blockNode struct {
	// hash is the block identifier hash of the header.
	hash chainhash.Hash

	// height is the position in the block chain.  It is not stored in the
	// header itself.
	height int32

	// workSum is the total amount of work in the chain up to and including
	// this node.
	workSum *big.Int

	// Some fields from the block header to aid in difficulty calculation
	// and reconstructing headers from memory.
	version    int32
	merkleRoot chainhash.Hash
	bits       uint32
	nonce      uint32
	timestamp  int64
}

// newBlockNode returns a new block node for the given block header at the
// given height, accumulating the proof of work on top of the parent node.
// The parent must be nil only for the genesis block.
func newBlockNode(header *wire.BlockHeader, height int32, parent *blockNode) *blockNode {
	node := blockNode{
		hash:       header.BlockHash(),
		height:     height,
		workSum:    CalcWork(header.Bits),
		version:    header.Version,
		merkleRoot: header.MerkleRoot,
		bits:       header.Bits,
		nonce:      header.Nonce,
		timestamp:  header.Timestamp.Unix(),
	}
	if parent != nil {
		node.workSum = node.workSum.Add(parent.workSum, node.workSum)
	}
	return &node
}

// header reconstructs the block header represented by the node.  The previous
// block hash is taken from the passed parent, which must be the node at
// height-1 (or nil for the genesis node).
func (node *blockNode) header(parent *blockNode) wire.BlockHeader {
	prevHash := chainhash.Hash{}
	if parent != nil {
		prevHash = parent.hash
	}
	return wire.BlockHeader{
		Version:    node.version,
		PrevBlock:  prevHash,
		MerkleRoot: node.merkleRoot,
		Timestamp:  time.Unix(node.timestamp, 0),
		Bits:       node.bits,
		Nonce:      node.nonce,
	}
}

// chainView provides a flat, height-indexed view of a specific branch of the
// block chain from its tip back to the genesis block.  Heights are contiguous
// from 0, each node's header links to the node below it, and the view only
// ever grows by one node at the tip.  A reorganization is expressed by
// truncating a suffix of the view and appending the replacement branch, never
// by rewiring pointers.
//
// The view is deliberately not synchronized: all access is serialized by the
// chain lock of the owning BlockChain, which admits many concurrent readers
// against a consistent snapshot and exactly one writer.
type chainView struct {
	nodes []*blockNode
}

// newChainView returns a new chain view with the given genesis node as its
// only entry.
func newChainView(genesisNode *blockNode) *chainView {
	return &chainView{nodes: []*blockNode{genesisNode}}
}

// clone returns a copy of the view whose node slice is independent of the
// receiver, truncated to the given height.  The nodes themselves are shared
// since they are immutable.
func (c *chainView) clone(height int32) *chainView {
	nodes := make([]*blockNode, height+1)
	copy(nodes, c.nodes[:height+1])
	return &chainView{nodes: nodes}
}

// tip returns the current tip block node for the chain view.
func (c *chainView) tip() *blockNode {
	if len(c.nodes) == 0 {
		return nil
	}
	return c.nodes[len(c.nodes)-1]
}

// height returns the height of the tip of the chain view.
func (c *chainView) height() int32 {
	return int32(len(c.nodes) - 1)
}

// nodeByHeight returns the block node at the specified height, or nil if the
// height is out of range for the view.
func (c *chainView) nodeByHeight(height int32) *blockNode {
	if height < 0 || height >= int32(len(c.nodes)) {
		return nil
	}
	return c.nodes[height]
}

// appendNode adds the given node as the new tip of the view.  The caller is
// responsible for ensuring the node connects to the current tip.
func (c *chainView) appendNode(node *blockNode) {
	c.nodes = append(c.nodes, node)
}

// calcPastMedianTime calculates the median time of the previous several
// blocks ending with the passed node (medianTimeBlocks in total).
func (c *chainView) calcPastMedianTime(node *blockNode) int64 {
	timestamps := make([]int64, 0, medianTimeBlocks)
	for i := 0; i < medianTimeBlocks && node != nil; i++ {
		timestamps = append(timestamps, node.timestamp)
		node = c.nodeByHeight(node.height - 1)
	}
	sort.Slice(timestamps, func(i, j int) bool {
		return timestamps[i] < timestamps[j]
	})

	// NOTE: The consensus rules require the timestamp of the middle block
	// after sorting, not the average.  This must be kept to remain
	// consensus compatible with bitcoin-derived chains.
	return timestamps[len(timestamps)/2]
}
