// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "fmt"

// DoriancoinNet represents which doriancoin network a message belongs to.
type DoriancoinNet uint32

// Constants used to indicate the message doriancoin network.  They can also be
// used to seek to the next message when a stream's state is unknown, but
// this package does not provide that functionality since it's generally a
// better idea to simply disconnect clients that are misbehaving over TCP.
const (
	// MainNet represents the main doriancoin network.
	MainNet DoriancoinNet = 0xd9b4bef9

	// TestNet represents the test network.
	TestNet DoriancoinNet = 0x0709110b

	// RegTestNet represents the regression test network.
	RegTestNet DoriancoinNet = 0xdab5bffa

	// SimNet represents the simulation test network.
	SimNet DoriancoinNet = 0x12141c16
)

// dnStrings is a map of doriancoin networks back to their constant names for
// pretty printing.
var dnStrings = map[DoriancoinNet]string{
	MainNet:    "MainNet",
	TestNet:    "TestNet",
	RegTestNet: "RegTestNet",
	SimNet:     "SimNet",
}

// String returns the DoriancoinNet in human-readable form.
func (n DoriancoinNet) String() string {
	if s, ok := dnStrings[n]; ok {
		return s
	}

	return fmt.Sprintf("Unknown DoriancoinNet (%d)", uint32(n))
}
