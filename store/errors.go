package store

import "errors"

// Sentinel errors for the store package's error taxonomy. Most call sites
// return them as is; some wrap them with fmt.Errorf("%w: ...") to add
// context, so callers should match against the sentinel with errors.Is.
var (
	// ErrClosed is returned by any operation on a store whose reference
	// count has reached zero.
	ErrClosed = errors.New("store: closed illegal state")

	// ErrOutOfBounds is returned for an absolute offset outside
	// [start, realCapacity).
	ErrOutOfBounds = errors.New("store: offset out of bounds")

	// ErrNoStableAddress is returned by AddressForRead/AddressForWrite on
	// stores with no stable native address (heap-backed stores).
	ErrNoStableAddress = errors.New("store: no stable native address")

	// ErrInvalidArgument is returned when a store is constructed or used
	// in a way its contract disallows (e.g. wrapping a read-only buffer
	// for write).
	ErrInvalidArgument = errors.New("store: invalid argument")

	// ErrDoubleRelease names the double-release contract error.
	// AtomicRefCounted does not return it: a second release by the same
	// owner is reported as ErrUnknownOwner.
	ErrDoubleRelease = errors.New("store: double release")

	// ErrUnknownOwner is returned by a tracing AtomicRefCounted when an
	// owner releases a reservation it never made or has already released.
	ErrUnknownOwner = errors.New("store: release by unknown owner")

	// ErrNotLastHolder is returned by ReleaseLast when references other
	// than the creator's are still outstanding.
	ErrNotLastHolder = errors.New("store: releaseLast called while other references remain")

	// ErrCapacityExceeded is returned when a requested capacity exceeds
	// MaxCapacity.
	ErrCapacityExceeded = errors.New("store: capacity exceeds maximum")
)
