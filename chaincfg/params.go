// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math/big"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/doriansuite/doriand/wire"
)

// These variables are the chain proof-of-work limit parameters for each
// default network.
var (
	// bigOne is 1 represented as a big.Int.  It is defined here to avoid
	// the overhead of creating it multiple times.
	bigOne = big.NewInt(1)

	// mainPowLimit is the highest proof of work value a doriancoin block can
	// have for the main network.  It is the value 2^236 - 1.
	mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne)

	// regressionPowLimit is the highest proof of work value a doriancoin
	// block can have for the regression test network.  It is the value
	// 2^255 - 1.
	regressionPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)

	// simNetPowLimit is the highest proof of work value a doriancoin block
	// can have for the simulation test network.  It is the value 2^255 - 1.
	simNetPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 255), bigOne)
)

// Params defines a doriancoin network by its parameters.  These parameters may
// be used by doriancoin applications to differentiate networks as well as
// addresses and keys for one network from those intended for use on another
// network.
//
// A Params value is immutable configuration.  It is supplied once at startup
// and passed explicitly into every computation that needs it, which allows
// the same code to validate multiple networks concurrently without
// cross-contamination.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net wire.DoriancoinNet

	// GenesisHeader defines the first block of the chain.
	GenesisHeader *wire.BlockHeader

	// GenesisHash is the starting block hash.
	GenesisHash *chainhash.Hash

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// PoWNoRetargeting defines whether the network has difficulty
	// retargeting disabled.  When set, every block is required to carry
	// the previous block's bits, so the genesis difficulty persists
	// forever.  This is only ever set on regression test networks.
	PoWNoRetargeting bool

	// ReduceMinDifficulty defines whether the network should reduce the
	// minimum required difficulty after a long enough period of time has
	// passed without finding a block.  This is really only useful for test
	// networks and MUST NOT be set on the main network.
	ReduceMinDifficulty bool

	// MinDiffReductionTime is the amount of time after which the minimum
	// required difficulty should be reduced when a block hasn't been found.
	//
	// NOTE: This only applies if ReduceMinDifficulty is true.
	MinDiffReductionTime time.Duration

	// TargetTimespan is the desired amount of time that should elapse
	// before the block difficulty requirement is examined to determine how
	// it should be changed in order to maintain the desired block
	// generation rate.
	TargetTimespan time.Duration

	// TargetTimePerBlock is the desired amount of time to generate each
	// block.
	TargetTimePerBlock time.Duration

	// RetargetAdjustmentFactor is the adjustment factor used to limit
	// the minimum and maximum amount of adjustment that can occur between
	// difficulty retargets.
	RetargetAdjustmentFactor int64

	// LWMAActivationHeight is the first height at which the linearly
	// weighted moving average difficulty algorithm supersedes the
	// fixed-interval algorithm.
	LWMAActivationHeight int32

	// LWMAFixHeight is the first height at which the stabilized LWMA
	// variant, which references the window-start target instead of the
	// previous block's target, supersedes the original LWMA.  A value of
	// zero means the variant never activates.
	LWMAFixHeight int32

	// LWMAWindow is the number of recent blocks examined by the LWMA
	// algorithms.
	LWMAWindow int32

	// LWMAMinSolvetime and LWMAMaxSolvetime bound the per-block solvetime,
	// in seconds, used by the LWMA algorithms.  The bounds resist
	// difficulty manipulation via falsified timestamps.
	LWMAMinSolvetime int64
	LWMAMaxSolvetime int64

	// ASERTActivationHeight is the anchor height of the absolutely
	// scheduled exponential rise target algorithm.  Heights strictly
	// greater than it use ASERT.  A value of zero means ASERT never
	// activates.
	ASERTActivationHeight int32

	// ASERTAnchorBits is the compact target the exponential schedule is
	// anchored to.
	ASERTAnchorBits uint32

	// ASERTHalfLife is the number of seconds of schedule deviation that
	// doubles (or halves) the target.
	ASERTHalfLife int64
}

// MainNetParams defines the network parameters for the main doriancoin
// network.
var MainNetParams = Params{
	Name: "mainnet",
	Net:  wire.MainNet,

	// Chain parameters
	GenesisHeader:            &genesisHeader,
	GenesisHash:              &genesisHash,
	PowLimit:                 mainPowLimit,
	PowLimitBits:             0x1e0fffff,
	PoWNoRetargeting:         false,
	ReduceMinDifficulty:      false,
	MinDiffReductionTime:     0,
	TargetTimespan:           time.Hour * 84,    // 3.5 days
	TargetTimePerBlock:       time.Second * 150, // 2.5 minutes
	RetargetAdjustmentFactor: 4, // 25% less, 400% more

	// Difficulty algorithm activation schedule
	LWMAActivationHeight:  87600,
	LWMAFixHeight:         133000,
	LWMAWindow:            45,
	LWMAMinSolvetime:      1,
	LWMAMaxSolvetime:      900, // 6 * TargetTimePerBlock
	ASERTActivationHeight: 222000,
	ASERTAnchorBits:       0x1e00ffff,
	ASERTHalfLife:         172800, // 2 days
}

// TestNetParams defines the network parameters for the test doriancoin
// network.
var TestNetParams = Params{
	Name: "testnet",
	Net:  wire.TestNet,

	// Chain parameters
	GenesisHeader:            &testNetGenesisHeader,
	GenesisHash:              &testNetGenesisHash,
	PowLimit:                 mainPowLimit,
	PowLimitBits:             0x1e0fffff,
	PoWNoRetargeting:         false,
	ReduceMinDifficulty:      true,
	MinDiffReductionTime:     time.Minute * 5, // TargetTimePerBlock * 2
	TargetTimespan:           time.Hour * 84,
	TargetTimePerBlock:       time.Second * 150,
	RetargetAdjustmentFactor: 4,

	// Difficulty algorithm activation schedule
	LWMAActivationHeight:  2400,
	LWMAFixHeight:         26000,
	LWMAWindow:            45,
	LWMAMinSolvetime:      1,
	LWMAMaxSolvetime:      900,
	ASERTActivationHeight: 58000,
	ASERTAnchorBits:       0x1e00ffff,
	ASERTHalfLife:         172800,
}

// RegressionNetParams defines the network parameters for the regression test
// doriancoin network.  Not to be confused with the test network, this network
// is sometimes simply called "testnet".
var RegressionNetParams = Params{
	Name: "regtest",
	Net:  wire.RegTestNet,

	// Chain parameters
	GenesisHeader:            &regTestGenesisHeader,
	GenesisHash:              &regTestGenesisHash,
	PowLimit:                 regressionPowLimit,
	PowLimitBits:             0x207fffff,
	PoWNoRetargeting:         true,
	ReduceMinDifficulty:      false,
	MinDiffReductionTime:     0,
	TargetTimespan:           time.Hour * 84,
	TargetTimePerBlock:       time.Second * 150,
	RetargetAdjustmentFactor: 4,

	// Difficulty algorithm activation schedule.  The LWMA fix and ASERT
	// never activate on regtest.
	LWMAActivationHeight:  500,
	LWMAFixHeight:         0,
	LWMAWindow:            45,
	LWMAMinSolvetime:      1,
	LWMAMaxSolvetime:      900,
	ASERTActivationHeight: 0,
	ASERTAnchorBits:       0,
	ASERTHalfLife:         0,
}

// SimNetParams defines the network parameters for the simulation test
// doriancoin network.  This network is similar to the regression test network
// except it is intended for private use within a group of individuals doing
// simulation testing.
var SimNetParams = Params{
	Name: "simnet",
	Net:  wire.SimNet,

	// Chain parameters
	GenesisHeader:            &simNetGenesisHeader,
	GenesisHash:              &simNetGenesisHash,
	PowLimit:                 simNetPowLimit,
	PowLimitBits:             0x207fffff,
	PoWNoRetargeting:         false,
	ReduceMinDifficulty:      true,
	MinDiffReductionTime:     time.Minute * 5,
	TargetTimespan:           time.Hour * 84,
	TargetTimePerBlock:       time.Second * 150,
	RetargetAdjustmentFactor: 4,

	// Difficulty algorithm activation schedule
	LWMAActivationHeight:  500,
	LWMAFixHeight:         550,
	LWMAWindow:            45,
	LWMAMinSolvetime:      1,
	LWMAMaxSolvetime:      900,
	ASERTActivationHeight: 600,
	ASERTAnchorBits:       0x207fffff,
	ASERTHalfLife:         172800,
}
