// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/doriansuite/doriand/wire"
)

// genesisMerkleRoot is the hash of the single coinbase transaction in the
// genesis block.  It is shared by all networks since the genesis coinbase is
// identical on each of them.
var genesisMerkleRoot = chainhash.Hash([chainhash.HashSize]byte{
	0x5e, 0x29, 0xd1, 0xf0, 0x18, 0x7b, 0x33, 0xa1,
	0x7c, 0x80, 0x4e, 0x86, 0x0c, 0x45, 0x1d, 0xd3,
	0x06, 0x8c, 0x4e, 0x2f, 0x3b, 0x9f, 0x2e, 0x11,
	0x90, 0x2d, 0xc5, 0xa5, 0x8a, 0x61, 0xfe, 0xd2,
})

// genesisHeader is the block header of the first block in the block chain
// for the main network.
var genesisHeader = wire.BlockHeader{
	Version:    1,
	PrevBlock:  chainhash.Hash{}, // All zeroes.
	MerkleRoot: genesisMerkleRoot,
	Timestamp:  time.Unix(1706745600, 0), // 2024-02-01 00:00:00 +0000 UTC
	Bits:       0x1e0ffff0,
	Nonce:      0x18aea41a,
}

// genesisHash is the hash of the first block in the block chain for the main
// network.  It is derived from the header rather than hard-coded so the two
// can never drift apart.
var genesisHash = genesisHeader.BlockHash()

// testNetGenesisHeader is the block header of the first block in the block
// chain for the test network.
var testNetGenesisHeader = wire.BlockHeader{
	Version:    1,
	PrevBlock:  chainhash.Hash{},
	MerkleRoot: genesisMerkleRoot,
	Timestamp:  time.Unix(1706745601, 0),
	Bits:       0x1e0ffff0,
	Nonce:      0x18aea41a,
}

// testNetGenesisHash is the hash of the first block in the block chain for
// the test network.
var testNetGenesisHash = testNetGenesisHeader.BlockHash()

// regTestGenesisHeader is the block header of the first block in the block
// chain for the regression test network.  Note the bits intentionally encode
// a target just below the proof of work limit so a block carrying the limit
// itself is a distinct, invalid difficulty on this network.
var regTestGenesisHeader = wire.BlockHeader{
	Version:    1,
	PrevBlock:  chainhash.Hash{},
	MerkleRoot: genesisMerkleRoot,
	Timestamp:  time.Unix(1706745602, 0),
	Bits:       0x207ffffe,
	Nonce:      2,
}

// regTestGenesisHash is the hash of the first block in the block chain for
// the regression test network.
var regTestGenesisHash = regTestGenesisHeader.BlockHash()

// simNetGenesisHeader is the block header of the first block in the block
// chain for the simulation test network.
var simNetGenesisHeader = wire.BlockHeader{
	Version:    1,
	PrevBlock:  chainhash.Hash{},
	MerkleRoot: genesisMerkleRoot,
	Timestamp:  time.Unix(1706745603, 0),
	Bits:       0x207fffff,
	Nonce:      2,
}

// simNetGenesisHash is the hash of the first block in the block chain for the
// simulation test network.
var simNetGenesisHash = simNetGenesisHeader.BlockHash()
