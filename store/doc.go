// Package store provides the BytesStore hierarchy: contiguous,
// reference-counted regions of addressable bytes backed by native
// memory, heap byte slices, wrapped user buffers, or caller-asserted
// pointers.
//
// A BytesStore is created with a reference count of one, held by its
// creator. Additional holders call Reserve with a ReferenceOwner handle;
// each reservation must eventually be matched by a Release using the same
// owner. When the count reaches zero the store's resources are freed and
// the store transitions to a released state in which every further
// operation fails with ErrClosed.
//
// BytesStore implementations are safe for concurrent use at their
// absolute-offset operations; they provide no cursor and no higher-level
// bounds policy beyond start/capacity/realCapacity — that is the
// responsibility of the bytestore package's Bytes cursor.
package store
