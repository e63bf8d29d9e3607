package mmap

import "errors"

var (
	// ErrNotLockHolder is returned by Unlock when the supplied scope does
	// not hold the lock.
	ErrNotLockHolder = errors.New("mmap: unlock by a scope that does not hold the lock")

	// ErrInvalidGeometry is returned when chunkSize is non-positive,
	// overlap is negative, or overlap is not smaller than chunkSize.
	ErrInvalidGeometry = errors.New("mmap: invalid chunk geometry")
)
