package store

import "unsafe"

// WrappedBytesStore wraps a caller-supplied buffer, marked direct or heap
// by the direct argument of NewWrappedBytesStore or
// NewWrappedReadOnlyBytesStore, without copying it. The
// caller retains ownership of the underlying memory and must keep it alive
// for as long as any reference to the store is outstanding.
type WrappedBytesStore struct {
	*AtomicRefCounted
	region
	readOnly bool
	direct   bool
}

// NewWrappedBytesStore wraps data for read/write use.
func NewWrappedBytesStore(data []byte, direct bool) *WrappedBytesStore {
	s := &WrappedBytesStore{region: region{data: data, start: 0, end: int64(len(data))}, direct: direct}
	s.AtomicRefCounted = NewAtomicRefCounted(false, nil)
	return s
}

// NewWrappedReadOnlyBytesStore wraps data for read-only use. Any write
// operation fails with ErrInvalidArgument.
func NewWrappedReadOnlyBytesStore(data []byte, direct bool) *WrappedBytesStore {
	s := NewWrappedBytesStore(data, direct)
	s.readOnly = true
	return s
}

func (s *WrappedBytesStore) Start() int64        { return s.start }
func (s *WrappedBytesStore) Capacity() int64     { return s.end }
func (s *WrappedBytesStore) RealCapacity() int64 { return s.end }
func (s *WrappedBytesStore) Direct() bool        { return s.direct }

func (s *WrappedBytesStore) ReadByte(offset int64) (byte, error)   { return s.readByte(offset) }
func (s *WrappedBytesStore) ReadShort(offset int64) (int16, error) { return s.readShort(offset) }
func (s *WrappedBytesStore) ReadInt(offset int64) (int32, error)   { return s.readInt(offset) }
func (s *WrappedBytesStore) ReadLong(offset int64) (int64, error)  { return s.readLong(offset) }
func (s *WrappedBytesStore) ReadFloat(offset int64) (float32, error) {
	return s.readFloat(offset)
}
func (s *WrappedBytesStore) ReadDouble(offset int64) (float64, error) {
	return s.readDouble(offset)
}

func (s *WrappedBytesStore) WriteByte(offset int64, v byte) error {
	if s.readOnly {
		return ErrInvalidArgument
	}
	return s.writeByte(offset, v)
}
func (s *WrappedBytesStore) WriteShort(offset int64, v int16) error {
	if s.readOnly {
		return ErrInvalidArgument
	}
	return s.writeShort(offset, v)
}
func (s *WrappedBytesStore) WriteInt(offset int64, v int32) error {
	if s.readOnly {
		return ErrInvalidArgument
	}
	return s.writeInt(offset, v)
}
func (s *WrappedBytesStore) WriteLong(offset int64, v int64) error {
	if s.readOnly {
		return ErrInvalidArgument
	}
	return s.writeLong(offset, v)
}
func (s *WrappedBytesStore) WriteFloat(offset int64, v float32) error {
	if s.readOnly {
		return ErrInvalidArgument
	}
	return s.writeFloat(offset, v)
}
func (s *WrappedBytesStore) WriteDouble(offset int64, v float64) error {
	if s.readOnly {
		return ErrInvalidArgument
	}
	return s.writeDouble(offset, v)
}

func (s *WrappedBytesStore) Write(offset int64, src []byte) (int, error) {
	if s.readOnly {
		return 0, ErrInvalidArgument
	}
	return s.write(offset, src)
}
func (s *WrappedBytesStore) Read(offset int64, dst []byte) (int, error) { return s.read(offset, dst) }
func (s *WrappedBytesStore) Move(from, to, length int64) error {
	if s.readOnly {
		return ErrInvalidArgument
	}
	return s.move(from, to, length)
}
func (s *WrappedBytesStore) CopyTo(dst BytesStore) (int64, error) { return copyToGeneric(s, dst) }

func (s *WrappedBytesStore) CompareAndSwapInt(offset int64, expected, new int32) (bool, error) {
	if s.readOnly {
		return false, ErrInvalidArgument
	}
	return s.compareAndSwapInt(offset, expected, new)
}
func (s *WrappedBytesStore) CompareAndSwapLong(offset int64, expected, new int64) (bool, error) {
	if s.readOnly {
		return false, ErrInvalidArgument
	}
	return s.compareAndSwapLong(offset, expected, new)
}

func (s *WrappedBytesStore) AddressForRead(offset int64) (unsafe.Pointer, error) {
	if !s.direct {
		return nil, ErrNoStableAddress
	}
	if err := checkOffset(s.start, s.end, offset, 0); err != nil {
		return nil, err
	}
	return s.addr(offset), nil
}
func (s *WrappedBytesStore) AddressForWrite(offset int64) (unsafe.Pointer, error) {
	if s.readOnly {
		return nil, ErrInvalidArgument
	}
	return s.AddressForRead(offset)
}
