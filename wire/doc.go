// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package wire implements the doriancoin wire protocol primitives needed to
represent and serialize block headers.

The block header uses the classic 80-byte bitcoin layout: a 4-byte
little-endian signed version, the 32-byte previous block hash, the 32-byte
merkle root, a 4-byte unsigned timestamp in seconds, the 4-byte compact
difficulty target (bits), and a 4-byte nonce.  The block identifier hash is
the double sha256 of that serialization.
*/
package wire
