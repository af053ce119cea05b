// Copyright (c) 2016 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/doriansuite/doriand/blockchain"
	"github.com/doriansuite/doriand/chaincfg"
)

// allParams lists every registered network for the table-driven sanity
// checks below.
var allParams = []*chaincfg.Params{
	&chaincfg.MainNetParams,
	&chaincfg.TestNetParams,
	&chaincfg.RegressionNetParams,
	&chaincfg.SimNetParams,
}

// TestParamsSanity ensures the hard-coded parameters of every network are
// internally consistent.
func TestParamsSanity(t *testing.T) {
	for _, params := range allParams {
		params := params
		t.Run(params.Name, func(t *testing.T) {
			// The genesis difficulty must be a positive target no
			// easier than the proof of work limit.
			target := blockchain.CompactToBig(params.GenesisHeader.Bits)
			require.Equal(t, 1, target.Sign())
			require.LessOrEqual(t, target.Cmp(params.PowLimit), 0)

			// The compact form of the limit must round trip.
			limit := blockchain.CompactToBig(params.PowLimitBits)
			require.Equal(t, params.PowLimitBits,
				blockchain.BigToCompact(limit))

			// The genesis hash is derived from the header.
			require.Equal(t, params.GenesisHeader.BlockHash(),
				*params.GenesisHash)

			// The retarget interval must be a whole number of
			// blocks.
			timespan := int64(params.TargetTimespan / time.Second)
			spacing := int64(params.TargetTimePerBlock / time.Second)
			require.NotZero(t, spacing)
			require.Zero(t, timespan%spacing)

			// The solvetime bounds must straddle the spacing.
			require.Less(t, params.LWMAMinSolvetime, spacing)
			require.Greater(t, params.LWMAMaxSolvetime, spacing)
			require.Positive(t, params.LWMAWindow)
		})
	}
}

// TestParamsUnique ensures no two networks share a name, magic, or genesis
// hash.
func TestParamsUnique(t *testing.T) {
	names := make(map[string]struct{})
	nets := make(map[uint32]struct{})
	genesis := make(map[string]struct{})
	for _, params := range allParams {
		_, dup := names[params.Name]
		require.False(t, dup, "duplicate name %q", params.Name)
		names[params.Name] = struct{}{}

		_, dup = nets[uint32(params.Net)]
		require.False(t, dup, "duplicate magic %08x", uint32(params.Net))
		nets[uint32(params.Net)] = struct{}{}

		hash := params.GenesisHash.String()
		_, dup = genesis[hash]
		require.False(t, dup, "duplicate genesis hash %s", hash)
		genesis[hash] = struct{}{}
	}
}
