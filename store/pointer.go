package store

import (
	"log"
	"os"
	"unsafe"
)

var logPointerWarn = log.New(os.Stderr, "store: ", log.LstdFlags)

// PointerBytesStore wraps a caller-supplied (address, length) pair. The
// caller asserts the lifetime of the memory at that address for as long as
// any reference to the store is outstanding; this store performs no
// allocation and no release of the underlying memory.
//
// It must not be used to wrap a region that an elastic store may later
// reallocate, since the address captured here would silently go stale. As
// a heuristic safety net, Reserve logs a warning if the capacity observed
// at construction no longer matches the capacity observed at the time of
// the reservation, which is the pattern an elastic source exhibits after a
// regrow.
type PointerBytesStore struct {
	*AtomicRefCounted
	region
	capacityAtConstruction int64
	capacityProbe          func() int64
}

// NewPointerBytesStore wraps length bytes at addr. capacityProbe, if
// non-nil, is consulted on each Reserve to detect a capacity change
// suggestive of the address having been invalidated by a reallocation.
func NewPointerBytesStore(addr unsafe.Pointer, length int64, capacityProbe func() int64) *PointerBytesStore {
	data := unsafe.Slice((*byte)(addr), length)
	s := &PointerBytesStore{
		region:                 region{data: data, start: 0, end: length},
		capacityAtConstruction: length,
		capacityProbe:          capacityProbe,
	}
	s.AtomicRefCounted = NewAtomicRefCounted(false, nil)
	return s
}

func (s *PointerBytesStore) Reserve(owner ReferenceOwner) error {
	if s.capacityProbe != nil {
		if cur := s.capacityProbe(); cur != s.capacityAtConstruction {
			logPointerWarn.Printf("pointer store capacity changed from %d to %d since construction; address may be stale (elastic source?)", s.capacityAtConstruction, cur)
		}
	}
	return s.AtomicRefCounted.Reserve(owner)
}

func (s *PointerBytesStore) Start() int64        { return s.start }
func (s *PointerBytesStore) Capacity() int64     { return s.end }
func (s *PointerBytesStore) RealCapacity() int64 { return s.end }
func (s *PointerBytesStore) Direct() bool        { return true }

func (s *PointerBytesStore) ReadByte(offset int64) (byte, error)       { return s.readByte(offset) }
func (s *PointerBytesStore) WriteByte(offset int64, v byte) error      { return s.writeByte(offset, v) }
func (s *PointerBytesStore) ReadShort(offset int64) (int16, error)     { return s.readShort(offset) }
func (s *PointerBytesStore) WriteShort(offset int64, v int16) error    { return s.writeShort(offset, v) }
func (s *PointerBytesStore) ReadInt(offset int64) (int32, error)       { return s.readInt(offset) }
func (s *PointerBytesStore) WriteInt(offset int64, v int32) error      { return s.writeInt(offset, v) }
func (s *PointerBytesStore) ReadLong(offset int64) (int64, error)      { return s.readLong(offset) }
func (s *PointerBytesStore) WriteLong(offset int64, v int64) error     { return s.writeLong(offset, v) }
func (s *PointerBytesStore) ReadFloat(offset int64) (float32, error)   { return s.readFloat(offset) }
func (s *PointerBytesStore) WriteFloat(offset int64, v float32) error  { return s.writeFloat(offset, v) }
func (s *PointerBytesStore) ReadDouble(offset int64) (float64, error)  { return s.readDouble(offset) }
func (s *PointerBytesStore) WriteDouble(offset int64, v float64) error { return s.writeDouble(offset, v) }

func (s *PointerBytesStore) Write(offset int64, src []byte) (int, error) {
	return s.write(offset, src)
}
func (s *PointerBytesStore) Read(offset int64, dst []byte) (int, error) { return s.read(offset, dst) }
func (s *PointerBytesStore) Move(from, to, length int64) error         { return s.move(from, to, length) }
func (s *PointerBytesStore) CopyTo(dst BytesStore) (int64, error)      { return copyToGeneric(s, dst) }

func (s *PointerBytesStore) CompareAndSwapInt(offset int64, expected, new int32) (bool, error) {
	return s.compareAndSwapInt(offset, expected, new)
}
func (s *PointerBytesStore) CompareAndSwapLong(offset int64, expected, new int64) (bool, error) {
	return s.compareAndSwapLong(offset, expected, new)
}

func (s *PointerBytesStore) AddressForRead(offset int64) (unsafe.Pointer, error) {
	if err := checkOffset(s.start, s.end, offset, 0); err != nil {
		return nil, err
	}
	return s.addr(offset), nil
}
func (s *PointerBytesStore) AddressForWrite(offset int64) (unsafe.Pointer, error) {
	return s.AddressForRead(offset)
}
