// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package chaincfg defines chain configuration parameters for the Doriancoin
networks.

In addition to the main network, which is intended for the transfer of
monetary value, there is a public test network, a regression test network,
and a simulation test network.  Each network has its own genesis block,
proof-of-work limit, and difficulty algorithm activation schedule, all
expressed as an immutable Params value.  Code that validates headers or
computes required difficulties takes a *Params explicitly, so a single
process can work with multiple networks at once.
*/
package chaincfg
