// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package blockchain implements Doriancoin header chain processing and
difficulty retargeting rules.

The Doriancoin header chain consists of a series of 80-byte block headers
where each header links to the previous one via its hash.  A header is only
valid within the chain when it follows all of the consensus rules in force at
its height, the most involved of which is the required proof-of-work
difficulty.  Doriancoin has changed its retarget algorithm twice over its
lifetime, so which rule applies depends on where the block sits relative to
the configured activation heights:

  - Before LWMA activation, the legacy fixed-interval algorithm retargets
    once per interval from the actual versus intended duration of the
    interval, clamped to a maximum adjustment factor.
  - From LWMA activation, a linearly weighted moving average of the recent
    solve times retargets every block.
  - From the LWMA stabilization height, a variant of the moving average
    anchored at the start of the window removes the compounding feedback of
    the original.
  - From ASERT activation, an absolutely scheduled exponential schedule
    computes the target directly from the chain's total deviation from the
    ideal block cadence.

Errors returned by this package are either the expected AssertError type or
the RuleError type, which carries a machine-readable ErrorCode and a short
reject reason string suitable for reporting to block submitters.
*/
package blockchain
