package store

import "unsafe"

// BytesStore is a contiguous, reference-counted region of addressable
// bytes. All operations are at absolute offsets; a BytesStore has no
// cursor of its own — that is layered on by bytestore.Bytes.
//
// Implementations must be safe for concurrent use of their absolute-offset
// read/write/CAS operations; Reserve/Release/RefCount are always safe for
// concurrent use.
type BytesStore interface {
	RefCounted

	// Start is the first valid offset, usually 0.
	Start() int64
	// Capacity is the exclusive upper bound on addressable offsets.
	Capacity() int64
	// RealCapacity is the currently allocated capacity; for elastic
	// stores this may be less than Capacity.
	RealCapacity() int64
	// Direct reports whether the store is off-heap (true) or on-heap
	// (false).
	Direct() bool

	ReadByte(offset int64) (byte, error)
	WriteByte(offset int64, v byte) error
	ReadShort(offset int64) (int16, error)
	WriteShort(offset int64, v int16) error
	ReadInt(offset int64) (int32, error)
	WriteInt(offset int64, v int32) error
	ReadLong(offset int64) (int64, error)
	WriteLong(offset int64, v int64) error
	ReadFloat(offset int64) (float32, error)
	WriteFloat(offset int64, v float32) error
	ReadDouble(offset int64) (float64, error)
	WriteDouble(offset int64, v float64) error

	// Write copies src into the store starting at offset, returning the
	// number of bytes written.
	Write(offset int64, src []byte) (int, error)
	// Read copies out of the store starting at offset into dst, returning
	// the number of bytes read.
	Read(offset int64, dst []byte) (int, error)

	// CopyTo copies the full [start, realCapacity) range of the receiver
	// into dst, starting at dst's start offset.
	CopyTo(dst BytesStore) (int64, error)
	// Move copies length bytes from offset `from` to offset `to` within
	// the same store, handling overlap correctly.
	Move(from, to, length int64) error

	CompareAndSwapInt(offset int64, expected, new int32) (bool, error)
	CompareAndSwapLong(offset int64, expected, new int64) (bool, error)

	// AddressForRead and AddressForWrite return a native pointer usable
	// for the lifetime of the current reservation. Stores with no stable
	// native address (heap-backed) return ErrNoStableAddress.
	AddressForRead(offset int64) (unsafe.Pointer, error)
	AddressForWrite(offset int64) (unsafe.Pointer, error)
}

func checkOffset(start, realCapacity, offset, width int64) error {
	if offset < start || offset+width > realCapacity {
		return ErrOutOfBounds
	}
	return nil
}

// copyToGeneric is shared by store implementations' CopyTo: it reads the
// receiver's live range in chunks and writes it into dst starting at dst's
// own start offset.
func copyToGeneric(src BytesStore, dst BytesStore) (int64, error) {
	n := src.RealCapacity() - src.Start()
	buf := make([]byte, 64*1024)
	var total int64
	srcOff := src.Start()
	dstOff := dst.Start()
	for total < n {
		chunk := int64(len(buf))
		if remaining := n - total; remaining < chunk {
			chunk = remaining
		}
		rn, err := src.Read(srcOff+total, buf[:chunk])
		if err != nil {
			return total, err
		}
		wn, err := dst.Write(dstOff+total, buf[:rn])
		if err != nil {
			return total, err
		}
		total += int64(wn)
		if int64(rn) < chunk {
			break
		}
	}
	return total, nil
}
