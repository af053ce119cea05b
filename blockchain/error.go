// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2024 The Doriancoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
)

// AssertError identifies an error that indicates an internal code consistency
// issue and should be treated as a critical and unrecoverable error.
type AssertError string

// Error returns the assertion error as a human-readable string and satisfies
// the error interface.
func (e AssertError) Error() string {
	return "assertion failed: " + string(e)
}

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific RuleError.
const (
	// ErrDuplicateBlock indicates a block with the same hash already
	// exists.
	ErrDuplicateBlock ErrorCode = iota

	// ErrMissingParent indicates the previous block hash named by a header
	// is not part of the known chain.
	ErrMissingParent

	// ErrInvalidTime indicates the time in the passed block has a precision
	// that is more than one second.  The chain consensus rules require
	// timestamps to have a maximum precision of one second.
	ErrInvalidTime

	// ErrTimeTooOld indicates the time is before the median time of the
	// last several blocks per the chain consensus rules.
	ErrTimeTooOld

	// ErrTimeTooNew indicates the time is too far in the future as compared
	// the current time.
	ErrTimeTooNew

	// ErrUnexpectedDifficulty indicates specified bits do not align with
	// the expected value either because it doesn't match the calculated
	// value based on difficulty retarget rules or it is out of the valid
	// range.
	ErrUnexpectedDifficulty

	// ErrHighHash indicates the block does not hash to a value which is
	// lower than the required target difficulty.
	ErrHighHash

	// ErrInsufficientChainWork indicates a proposed replacement branch does
	// not have more cumulative proof of work than the current best chain.
	ErrInsufficientChainWork
)

// errorCodeStrings is a map of ErrorCode back to their constant names for
// pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrDuplicateBlock:        "ErrDuplicateBlock",
	ErrMissingParent:         "ErrMissingParent",
	ErrInvalidTime:           "ErrInvalidTime",
	ErrTimeTooOld:            "ErrTimeTooOld",
	ErrTimeTooNew:            "ErrTimeTooNew",
	ErrUnexpectedDifficulty:  "ErrUnexpectedDifficulty",
	ErrHighHash:              "ErrHighHash",
	ErrInsufficientChainWork: "ErrInsufficientChainWork",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// rejectReasons maps rule violation codes to the short symbolic reason
// strings reported to block submitters.
var rejectReasons = map[ErrorCode]string{
	ErrDuplicateBlock:        "duplicate",
	ErrMissingParent:         "bad-prevblk",
	ErrInvalidTime:           "bad-time",
	ErrTimeTooOld:            "time-too-old",
	ErrTimeTooNew:            "time-too-new",
	ErrUnexpectedDifficulty:  "bad-diffbits",
	ErrHighHash:              "high-hash",
	ErrInsufficientChainWork: "insufficient-work",
}

// RuleError identifies a rule violation.  It is used to indicate that
// processing of a block failed due to one of the many validation rules.  The
// caller can use type assertions to determine if a failure was specifically
// due to a rule violation and access the ErrorCode field to ascertain the
// specific reason for the rule violation.
type RuleError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

// RejectReason returns the short symbolic reason string for the rule
// violation suitable for inclusion in a block submission verdict.
func (e RuleError) RejectReason() string {
	if s := rejectReasons[e.ErrorCode]; s != "" {
		return s
	}
	return "rejected"
}

// ruleError creates an RuleError given a set of arguments.
func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}

// errNotInMainChain signifies that a block hash or height that is not in the
// main chain was requested.
type errNotInMainChain string

// Error implements the error interface.
func (e errNotInMainChain) Error() string {
	return string(e)
}
