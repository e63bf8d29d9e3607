package store

import (
	"log"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// canarySize is the width of each guard band installed around a guarded
// native allocation.
const canarySize = 16

var canaryByte byte = 0xAC

var logGuard = log.New(os.Stderr, "store: ", log.LstdFlags)

// NativeFixedBytesStore is a single off-heap allocation of fixed size,
// obtained via an anonymous memory mapping. RealCapacity always equals
// Capacity; it never grows.
type NativeFixedBytesStore struct {
	*AtomicRefCounted
	region
	guarded bool
}

// NewNativeFixedBytesStore allocates capacity bytes of off-heap memory. If
// guarded is true, the allocation is bracketed by canary bytes that are
// verified when the store's last reference is released.
func NewNativeFixedBytesStore(capacity int64, guarded bool) (*NativeFixedBytesStore, error) {
	if capacity < 0 {
		return nil, ErrInvalidArgument
	}
	total := capacity
	var start int64
	if guarded {
		start = canarySize
		total += 2 * canarySize
	}
	if total == 0 {
		total = 1 // mmap requires a non-zero length
	}
	data, err := unix.Mmap(-1, 0, int(total), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	if guarded {
		fillCanary(data[:canarySize])
		fillCanary(data[start+capacity:])
	}
	s := &NativeFixedBytesStore{
		region:  region{data: data, start: start, end: start + capacity},
		guarded: guarded,
	}
	s.AtomicRefCounted = NewAtomicRefCounted(false, s.release)
	return s, nil
}

func fillCanary(b []byte) {
	for i := range b {
		b[i] = canaryByte
	}
}

func verifyCanary(b []byte) bool {
	for _, v := range b {
		if v != canaryByte {
			return false
		}
	}
	return true
}

func (s *NativeFixedBytesStore) release() error {
	if s.guarded {
		if !verifyCanary(s.data[:s.start]) || !verifyCanary(s.data[s.end:]) {
			logGuard.Printf("guard canary corrupted on release of native store at %p", unsafe.Pointer(&s.data[0]))
		}
	}
	return unix.Munmap(s.data)
}

func (s *NativeFixedBytesStore) Start() int64       { return s.start }
func (s *NativeFixedBytesStore) Capacity() int64     { return s.end }
func (s *NativeFixedBytesStore) RealCapacity() int64 { return s.end }
func (s *NativeFixedBytesStore) Direct() bool        { return true }

func (s *NativeFixedBytesStore) ReadByte(offset int64) (byte, error)      { return s.readByte(offset) }
func (s *NativeFixedBytesStore) WriteByte(offset int64, v byte) error     { return s.writeByte(offset, v) }
func (s *NativeFixedBytesStore) ReadShort(offset int64) (int16, error)    { return s.readShort(offset) }
func (s *NativeFixedBytesStore) WriteShort(offset int64, v int16) error   { return s.writeShort(offset, v) }
func (s *NativeFixedBytesStore) ReadInt(offset int64) (int32, error)      { return s.readInt(offset) }
func (s *NativeFixedBytesStore) WriteInt(offset int64, v int32) error     { return s.writeInt(offset, v) }
func (s *NativeFixedBytesStore) ReadLong(offset int64) (int64, error)     { return s.readLong(offset) }
func (s *NativeFixedBytesStore) WriteLong(offset int64, v int64) error    { return s.writeLong(offset, v) }
func (s *NativeFixedBytesStore) ReadFloat(offset int64) (float32, error)  { return s.readFloat(offset) }
func (s *NativeFixedBytesStore) WriteFloat(offset int64, v float32) error { return s.writeFloat(offset, v) }
func (s *NativeFixedBytesStore) ReadDouble(offset int64) (float64, error) { return s.readDouble(offset) }
func (s *NativeFixedBytesStore) WriteDouble(offset int64, v float64) error {
	return s.writeDouble(offset, v)
}

func (s *NativeFixedBytesStore) Write(offset int64, src []byte) (int, error) { return s.write(offset, src) }
func (s *NativeFixedBytesStore) Read(offset int64, dst []byte) (int, error)  { return s.read(offset, dst) }
func (s *NativeFixedBytesStore) Move(from, to, length int64) error          { return s.move(from, to, length) }

func (s *NativeFixedBytesStore) CopyTo(dst BytesStore) (int64, error) { return copyToGeneric(s, dst) }

func (s *NativeFixedBytesStore) CompareAndSwapInt(offset int64, expected, new int32) (bool, error) {
	return s.compareAndSwapInt(offset, expected, new)
}

func (s *NativeFixedBytesStore) CompareAndSwapLong(offset int64, expected, new int64) (bool, error) {
	return s.compareAndSwapLong(offset, expected, new)
}

func (s *NativeFixedBytesStore) AddressForRead(offset int64) (unsafe.Pointer, error) {
	if err := checkOffset(s.start, s.end, offset, 0); err != nil {
		return nil, err
	}
	return s.addr(offset), nil
}

func (s *NativeFixedBytesStore) AddressForWrite(offset int64) (unsafe.Pointer, error) {
	return s.AddressForRead(offset)
}
