package bytestore

import "errors"

// Sentinel errors for Bytes cursor operations. These mirror the bounds,
// format, and contract categories of the store package's taxonomy but are
// distinct values since a Bytes-level failure (e.g. a read underflow) is
// not itself a store-level failure.
var (
	// ErrReadUnderflow is returned by a strict cursor when a read would
	// advance readPosition past readLimit.
	ErrReadUnderflow = errors.New("bytestore: read underflow")

	// ErrWriteOverflow is returned by a non-elastic cursor when a write
	// would advance writePosition past writeLimit.
	ErrWriteOverflow = errors.New("bytestore: write overflow")

	// ErrCursorClosed is returned by any operation on a Bytes whose
	// underlying store has been released.
	ErrCursorClosed = errors.New("bytestore: cursor closed")

	// ErrInvalidUTF8 reports malformed UTF-8 input. No function in this
	// package returns it; codec.ReadUTF8String reports malformed input
	// with codec.ErrInvalidUTF8.
	ErrInvalidUTF8 = errors.New("bytestore: invalid utf-8")

	// ErrMalformedNumber is returned by ParseLong/ParseDouble when the
	// cursor does not begin with a valid numeric token.
	ErrMalformedNumber = errors.New("bytestore: malformed number")

	// ErrNotEnoughPadding is returned by a prewrite operation when
	// readPosition cannot be decremented far enough — no ClearAndPad
	// reservation covers it.
	ErrNotEnoughPadding = errors.New("bytestore: not enough prewrite padding")
)
