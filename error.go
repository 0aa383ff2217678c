// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sset

import "fmt"

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrIndexOutOfRange indicates a positional operation was given an
	// index outside of the valid range for the list.
	ErrIndexOutOfRange ErrorCode = iota

	// ErrKeyWidth indicates a key whose integer projection does not fit
	// in the bit width of a binary trie.
	ErrKeyWidth

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrIndexOutOfRange: "ErrIndexOutOfRange",
	ErrKeyWidth:        "ErrKeyWidth",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error identifies a usage error.  The caller can use errors.As to access
// the ErrorCode field, or errors.Is against another Error with the same code.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Is reports whether target is an Error carrying the same code.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.ErrorCode == e.ErrorCode
}

// MakeError creates an Error given a set of arguments.
func MakeError(c ErrorCode, desc string) Error {
	return Error{ErrorCode: c, Description: desc}
}

// IndexError returns the error reported when index i is not valid for a
// list of size n.  Insertion passes inclusive so that i == n is accepted.
func IndexError(i, n int, inclusive bool) Error {
	op := "<"
	if inclusive {
		op = "<="
	}
	str := fmt.Sprintf("index %d out of range (want 0 <= i %s %d)", i, op, n)
	return MakeError(ErrIndexOutOfRange, str)
}

// CheckIndex returns nil when 0 <= i < n, or 0 <= i <= n when inclusive is
// set, and an ErrIndexOutOfRange error otherwise.
func CheckIndex(i, n int, inclusive bool) error {
	if i < 0 || i > n || (i == n && !inclusive) {
		return IndexError(i, n, inclusive)
	}
	return nil
}
