package store

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
	"gopkg.in/gholt/brimutil.v1"
)

// MaxCapacity is the platform ceiling for a single elastic native
// allocation: 2 GiB minus one page.
var MaxCapacity int64 = (2 << 30) - int64(unix.Getpagesize())

// NativeElasticBytesStore is a native allocation that reallocates to a
// larger backing region on overflow, copying existing contents. Growth
// policy: newCapacity = max(requested, 2*current) rounded up to a power
// of two, capped at MaxCapacity.
//
// Growth releases the previous allocation as soon as its contents have
// been copied. A reservation on this store does not keep a previous
// allocation alive, and a read that runs concurrently with a growth is
// not protected against that release.
type NativeElasticBytesStore struct {
	*AtomicRefCounted
	mu      sync.RWMutex
	current *NativeFixedBytesStore
	guarded bool
}

// NewNativeElasticBytesStore creates an elastic store with an initial
// capacity of initialCap bytes (rounded up to at least 1).
func NewNativeElasticBytesStore(initialCap int64, guarded bool) (*NativeElasticBytesStore, error) {
	if initialCap < 1 {
		initialCap = 1
	}
	fixed, err := NewNativeFixedBytesStore(initialCap, guarded)
	if err != nil {
		return nil, err
	}
	s := &NativeElasticBytesStore{current: fixed, guarded: guarded}
	s.AtomicRefCounted = NewAtomicRefCounted(false, s.release)
	return s, nil
}

func (s *NativeElasticBytesStore) release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.ReleaseLast()
}

// EnsureCapacity grows the store so that RealCapacity() >= requested, if
// it isn't already. It is the mechanism bytestore.Bytes calls when an
// elastic cursor's write would overflow the current allocation.
func (s *NativeElasticBytesStore) EnsureCapacity(requested int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if requested <= s.current.RealCapacity() {
		return nil
	}
	candidate := requested
	if grown := 2 * s.current.RealCapacity(); grown > candidate {
		candidate = grown
	}
	// Round the growth target up to a power of two, the same sizing idiom
	// the teacher uses for its value-page allocations.
	newCap := int64(1) << brimutil.PowerOfTwoNeeded(uint64(candidate))
	if newCap > MaxCapacity {
		if requested > MaxCapacity {
			return ErrCapacityExceeded
		}
		newCap = MaxCapacity
	}
	grownStore, err := NewNativeFixedBytesStore(newCap, s.guarded)
	if err != nil {
		return err
	}
	if _, err := s.current.CopyTo(grownStore); err != nil {
		grownStore.ReleaseLast()
		return err
	}
	old := s.current
	s.current = grownStore
	return old.ReleaseLast()
}

func (s *NativeElasticBytesStore) snapshot() *NativeFixedBytesStore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *NativeElasticBytesStore) Start() int64        { return s.snapshot().Start() }
func (s *NativeElasticBytesStore) Capacity() int64     { return MaxCapacity }
func (s *NativeElasticBytesStore) RealCapacity() int64 { return s.snapshot().RealCapacity() }
func (s *NativeElasticBytesStore) Direct() bool        { return true }

func (s *NativeElasticBytesStore) ReadByte(offset int64) (byte, error) {
	return s.snapshot().ReadByte(offset)
}
func (s *NativeElasticBytesStore) WriteByte(offset int64, v byte) error {
	if err := s.EnsureCapacity(offset + 1); err != nil {
		return err
	}
	return s.snapshot().WriteByte(offset, v)
}
func (s *NativeElasticBytesStore) ReadShort(offset int64) (int16, error) {
	return s.snapshot().ReadShort(offset)
}
func (s *NativeElasticBytesStore) WriteShort(offset int64, v int16) error {
	if err := s.EnsureCapacity(offset + 2); err != nil {
		return err
	}
	return s.snapshot().WriteShort(offset, v)
}
func (s *NativeElasticBytesStore) ReadInt(offset int64) (int32, error) {
	return s.snapshot().ReadInt(offset)
}
func (s *NativeElasticBytesStore) WriteInt(offset int64, v int32) error {
	if err := s.EnsureCapacity(offset + 4); err != nil {
		return err
	}
	return s.snapshot().WriteInt(offset, v)
}
func (s *NativeElasticBytesStore) ReadLong(offset int64) (int64, error) {
	return s.snapshot().ReadLong(offset)
}
func (s *NativeElasticBytesStore) WriteLong(offset int64, v int64) error {
	if err := s.EnsureCapacity(offset + 8); err != nil {
		return err
	}
	return s.snapshot().WriteLong(offset, v)
}
func (s *NativeElasticBytesStore) ReadFloat(offset int64) (float32, error) {
	return s.snapshot().ReadFloat(offset)
}
func (s *NativeElasticBytesStore) WriteFloat(offset int64, v float32) error {
	if err := s.EnsureCapacity(offset + 4); err != nil {
		return err
	}
	return s.snapshot().WriteFloat(offset, v)
}
func (s *NativeElasticBytesStore) ReadDouble(offset int64) (float64, error) {
	return s.snapshot().ReadDouble(offset)
}
func (s *NativeElasticBytesStore) WriteDouble(offset int64, v float64) error {
	if err := s.EnsureCapacity(offset + 8); err != nil {
		return err
	}
	return s.snapshot().WriteDouble(offset, v)
}

func (s *NativeElasticBytesStore) Write(offset int64, src []byte) (int, error) {
	if err := s.EnsureCapacity(offset + int64(len(src))); err != nil {
		return 0, err
	}
	return s.snapshot().Write(offset, src)
}
func (s *NativeElasticBytesStore) Read(offset int64, dst []byte) (int, error) {
	return s.snapshot().Read(offset, dst)
}
func (s *NativeElasticBytesStore) Move(from, to, length int64) error {
	if err := s.EnsureCapacity(to + length); err != nil {
		return err
	}
	return s.snapshot().Move(from, to, length)
}
func (s *NativeElasticBytesStore) CopyTo(dst BytesStore) (int64, error) {
	return copyToGeneric(s.snapshot(), dst)
}
func (s *NativeElasticBytesStore) CompareAndSwapInt(offset int64, expected, new int32) (bool, error) {
	return s.snapshot().CompareAndSwapInt(offset, expected, new)
}
func (s *NativeElasticBytesStore) CompareAndSwapLong(offset int64, expected, new int64) (bool, error) {
	return s.snapshot().CompareAndSwapLong(offset, expected, new)
}
func (s *NativeElasticBytesStore) AddressForRead(offset int64) (unsafe.Pointer, error) {
	return s.snapshot().AddressForRead(offset)
}
func (s *NativeElasticBytesStore) AddressForWrite(offset int64) (unsafe.Pointer, error) {
	if err := s.EnsureCapacity(offset); err != nil {
		return nil, err
	}
	return s.snapshot().AddressForWrite(offset)
}
