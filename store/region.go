package store

import (
	"unsafe"

	"github.com/gholt/bytestore/memory"
)

// region is the common byte-slice-backed implementation shared by the
// heap, native, and wrapped-buffer store variants. It is not itself a
// BytesStore; each variant embeds it and supplies Direct/AddressForRead/
// AddressForWrite according to its own contract.
type region struct {
	data  []byte
	start int64
	// end is the exclusive upper bound of the valid [start, end) region —
	// realCapacity. It may be less than len(data) when the backing slice
	// carries guard canaries or unused growth headroom.
	end int64
}

func (r *region) realCapacity() int64 { return r.end }

func (r *region) addr(offset int64) unsafe.Pointer {
	return unsafe.Pointer(&r.data[offset])
}

func (r *region) readByte(offset int64) (byte, error) {
	if err := checkOffset(r.start, r.realCapacity(), offset, 1); err != nil {
		return 0, err
	}
	return r.data[offset], nil
}

func (r *region) writeByte(offset int64, v byte) error {
	if err := checkOffset(r.start, r.realCapacity(), offset, 1); err != nil {
		return err
	}
	r.data[offset] = v
	return nil
}

func (r *region) readShort(offset int64) (int16, error) {
	if err := checkOffset(r.start, r.realCapacity(), offset, 2); err != nil {
		return 0, err
	}
	return memory.ReadInt16(r.addr(offset)), nil
}

func (r *region) writeShort(offset int64, v int16) error {
	if err := checkOffset(r.start, r.realCapacity(), offset, 2); err != nil {
		return err
	}
	memory.WriteInt16(r.addr(offset), v)
	return nil
}

func (r *region) readInt(offset int64) (int32, error) {
	if err := checkOffset(r.start, r.realCapacity(), offset, 4); err != nil {
		return 0, err
	}
	return memory.ReadInt32(r.addr(offset)), nil
}

func (r *region) writeInt(offset int64, v int32) error {
	if err := checkOffset(r.start, r.realCapacity(), offset, 4); err != nil {
		return err
	}
	memory.WriteInt32(r.addr(offset), v)
	return nil
}

func (r *region) readLong(offset int64) (int64, error) {
	if err := checkOffset(r.start, r.realCapacity(), offset, 8); err != nil {
		return 0, err
	}
	return memory.ReadInt64(r.addr(offset)), nil
}

func (r *region) writeLong(offset int64, v int64) error {
	if err := checkOffset(r.start, r.realCapacity(), offset, 8); err != nil {
		return err
	}
	memory.WriteInt64(r.addr(offset), v)
	return nil
}

func (r *region) readFloat(offset int64) (float32, error) {
	if err := checkOffset(r.start, r.realCapacity(), offset, 4); err != nil {
		return 0, err
	}
	return memory.ReadFloat32(r.addr(offset)), nil
}

func (r *region) writeFloat(offset int64, v float32) error {
	if err := checkOffset(r.start, r.realCapacity(), offset, 4); err != nil {
		return err
	}
	memory.WriteFloat32(r.addr(offset), v)
	return nil
}

func (r *region) readDouble(offset int64) (float64, error) {
	if err := checkOffset(r.start, r.realCapacity(), offset, 8); err != nil {
		return 0, err
	}
	return memory.ReadFloat64(r.addr(offset)), nil
}

func (r *region) writeDouble(offset int64, v float64) error {
	if err := checkOffset(r.start, r.realCapacity(), offset, 8); err != nil {
		return err
	}
	memory.WriteFloat64(r.addr(offset), v)
	return nil
}

func (r *region) write(offset int64, src []byte) (int, error) {
	if err := checkOffset(r.start, r.realCapacity(), offset, int64(len(src))); err != nil {
		return 0, err
	}
	return copy(r.data[offset:], src), nil
}

func (r *region) read(offset int64, dst []byte) (int, error) {
	if offset < r.start || offset > r.realCapacity() {
		return 0, ErrOutOfBounds
	}
	n := copy(dst, r.data[offset:r.realCapacity()])
	return n, nil
}

func (r *region) move(from, to, length int64) error {
	if err := checkOffset(r.start, r.realCapacity(), from, length); err != nil {
		return err
	}
	if err := checkOffset(r.start, r.realCapacity(), to, length); err != nil {
		return err
	}
	memory.CopyAddr(r.addr(to), r.addr(from), length)
	return nil
}

func (r *region) compareAndSwapInt(offset int64, expected, new int32) (bool, error) {
	if err := checkOffset(r.start, r.realCapacity(), offset, 4); err != nil {
		return false, err
	}
	return memory.CompareAndSwapInt32(r.addr(offset), expected, new)
}

func (r *region) compareAndSwapLong(offset int64, expected, new int64) (bool, error) {
	if err := checkOffset(r.start, r.realCapacity(), offset, 8); err != nil {
		return false, err
	}
	return memory.CompareAndSwapInt64(r.addr(offset), expected, new)
}
