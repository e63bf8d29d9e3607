// Package bytestore provides Bytes, a dual-cursor (read position / write
// position) view over a store.BytesStore. Bytes enforces the bounds
// invariant
//
//	start <= readPosition <= writePosition <= readLimit <= writeLimit <= capacity
//
// and layers three optional, composable relaxations over the checked base
// cursor: Unchecked (skip bounds checks entirely), Lenient (return
// sentinel values on read-past-limit instead of failing), and elastic
// (grow the underlying store instead of failing a write-past-limit).
//
// Bytes is not safe for concurrent use by itself — readPosition and
// writePosition are plain fields — but distinct Bytes cursors over the
// same store may run on distinct goroutines, since the store's
// absolute-offset operations are themselves safe for concurrent use.
package bytestore
