package uniquetime

import "errors"

var (
	// ErrAlreadyInitialized is returned by Init when a provider is already
	// active; call Close first.
	ErrAlreadyInitialized = errors.New("uniquetime: already initialized")

	// ErrHeaderChecksumMismatch is returned when the shared timestamp
	// file's host-identifier checksum does not match the locally derived
	// host identifier, indicating the file is shared across hosts or
	// corrupted.
	ErrHeaderChecksumMismatch = errors.New("uniquetime: shared file header checksum mismatch")
)
