package store

import "unsafe"

// HeapBytesStore is backed by an on-heap []byte. It has no stable native
// address: AddressForRead/AddressForWrite always fail with
// ErrNoStableAddress.
type HeapBytesStore struct {
	*AtomicRefCounted
	region
}

// NewHeapBytesStore wraps a freshly allocated byte slice of the given
// capacity.
func NewHeapBytesStore(capacity int64) *HeapBytesStore {
	s := &HeapBytesStore{region: region{data: make([]byte, capacity), start: 0, end: capacity}}
	s.AtomicRefCounted = NewAtomicRefCounted(false, nil)
	return s
}

// WrapHeapBytesStore wraps an existing byte slice without copying it.
func WrapHeapBytesStore(data []byte) *HeapBytesStore {
	s := &HeapBytesStore{region: region{data: data, start: 0, end: int64(len(data))}}
	s.AtomicRefCounted = NewAtomicRefCounted(false, nil)
	return s
}

func (s *HeapBytesStore) Start() int64        { return s.start }
func (s *HeapBytesStore) Capacity() int64     { return s.end }
func (s *HeapBytesStore) RealCapacity() int64 { return s.end }
func (s *HeapBytesStore) Direct() bool        { return false }

func (s *HeapBytesStore) ReadByte(offset int64) (byte, error)       { return s.readByte(offset) }
func (s *HeapBytesStore) WriteByte(offset int64, v byte) error      { return s.writeByte(offset, v) }
func (s *HeapBytesStore) ReadShort(offset int64) (int16, error)     { return s.readShort(offset) }
func (s *HeapBytesStore) WriteShort(offset int64, v int16) error    { return s.writeShort(offset, v) }
func (s *HeapBytesStore) ReadInt(offset int64) (int32, error)       { return s.readInt(offset) }
func (s *HeapBytesStore) WriteInt(offset int64, v int32) error      { return s.writeInt(offset, v) }
func (s *HeapBytesStore) ReadLong(offset int64) (int64, error)      { return s.readLong(offset) }
func (s *HeapBytesStore) WriteLong(offset int64, v int64) error     { return s.writeLong(offset, v) }
func (s *HeapBytesStore) ReadFloat(offset int64) (float32, error)   { return s.readFloat(offset) }
func (s *HeapBytesStore) WriteFloat(offset int64, v float32) error  { return s.writeFloat(offset, v) }
func (s *HeapBytesStore) ReadDouble(offset int64) (float64, error)  { return s.readDouble(offset) }
func (s *HeapBytesStore) WriteDouble(offset int64, v float64) error { return s.writeDouble(offset, v) }

func (s *HeapBytesStore) Write(offset int64, src []byte) (int, error) { return s.write(offset, src) }
func (s *HeapBytesStore) Read(offset int64, dst []byte) (int, error)  { return s.read(offset, dst) }
func (s *HeapBytesStore) Move(from, to, length int64) error           { return s.move(from, to, length) }
func (s *HeapBytesStore) CopyTo(dst BytesStore) (int64, error)        { return copyToGeneric(s, dst) }

func (s *HeapBytesStore) CompareAndSwapInt(offset int64, expected, new int32) (bool, error) {
	return s.compareAndSwapInt(offset, expected, new)
}
func (s *HeapBytesStore) CompareAndSwapLong(offset int64, expected, new int64) (bool, error) {
	return s.compareAndSwapLong(offset, expected, new)
}

func (s *HeapBytesStore) AddressForRead(offset int64) (unsafe.Pointer, error) {
	return nil, ErrNoStableAddress
}
func (s *HeapBytesStore) AddressForWrite(offset int64) (unsafe.Pointer, error) {
	return nil, ErrNoStableAddress
}
