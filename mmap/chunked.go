// Package mmap implements the chunked memory-mapped BytesStore: a file's
// logical address space is exposed as a sequence of fixed-size,
// overlapping chunks, faulted in on demand and coordinated by a
// reentrant, scope-aware advisory file lock.
package mmap

import (
	"os"
	"sort"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/gholt/bytestore/memory"
	"github.com/gholt/bytestore/store"
)

// chunk is one resident mapping: the file region
// [start, start+chunkSize+overlap) mapped shared from the file via mmap.
type chunk struct {
	start int64
	data  []byte
}

func (c *chunk) end() int64 { return c.start + int64(len(c.data)) }

// ChunkedBytesStore is a store.BytesStore whose addressable range grows
// with the backing file, mapping page-aligned chunks on demand rather
// than the whole file at once.
type ChunkedBytesStore struct {
	*store.AtomicRefCounted

	file      *os.File
	chunkSize int64
	overlap   int64
	syncMode  SyncMode
	lock      *FileLock

	mu     sync.RWMutex
	chunks map[int64]*chunk
	length int64
}

// Open maps path (creating it if absent) as a ChunkedBytesStore with the
// given chunk geometry. overlap must be strictly smaller than chunkSize.
func Open(path string, chunkSize, overlap int64, syncMode SyncMode) (*ChunkedBytesStore, error) {
	if chunkSize <= 0 || overlap < 0 || overlap >= chunkSize {
		return nil, ErrInvalidGeometry
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	s := &ChunkedBytesStore{
		file:      f,
		chunkSize: chunkSize,
		overlap:   overlap,
		syncMode:  syncMode,
		lock:      NewFileLock(int(f.Fd())),
		chunks:    make(map[int64]*chunk),
		length:    fi.Size(),
	}
	s.AtomicRefCounted = store.NewAtomicRefCounted(false, s.release)
	return s, nil
}

func (s *ChunkedBytesStore) Start() int64    { return 0 }
func (s *ChunkedBytesStore) Capacity() int64 { return 1 << 62 }
func (s *ChunkedBytesStore) Direct() bool    { return true }

func (s *ChunkedBytesStore) RealCapacity() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.length
}

// resolve implements the chunk-resolution algorithm from the mapped-file
// data model: prefer the lowest-numbered already-resident chunk whose
// window fully covers [p, p+length); otherwise map the naive candidate
// chunk ⌊p/chunkSize⌋, promoting to the next chunk when the access
// straddles past that chunk's overlap-extended window.
func (s *ChunkedBytesStore) resolve(p, length int64) (*chunk, int64, error) {
	if c := s.findResident(p, length); c != nil {
		return c, p - c.start, nil
	}
	k := p / s.chunkSize
	c, err := s.ensureChunk(k)
	if err != nil {
		return nil, 0, err
	}
	if p+length > c.end() {
		c, err = s.ensureChunk(k + 1)
		if err != nil {
			return nil, 0, err
		}
	}
	return c, p - c.start, nil
}

func (s *ChunkedBytesStore) findResident(p, length int64) *chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []int64
	for k := range s.chunks {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		c := s.chunks[k]
		if p >= c.start && p+length <= c.end() {
			return c
		}
	}
	return nil
}

// ensureChunk maps chunk k if not already resident, extending the file
// under the file lock as spec.md §4.5 step 2 requires.
func (s *ChunkedBytesStore) ensureChunk(k int64) (*chunk, error) {
	s.mu.RLock()
	if c, ok := s.chunks[k]; ok {
		s.mu.RUnlock()
		return c, nil
	}
	s.mu.RUnlock()

	scope := NewLockScope()
	if err := s.lock.Lock(scope); err != nil {
		return nil, err
	}
	defer s.lock.Unlock(scope)

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.chunks[k]; ok {
		return c, nil
	}

	start := k * s.chunkSize
	mapLen := s.chunkSize + s.overlap
	needed := start + mapLen
	if needed > s.length {
		if err := s.file.Truncate(needed); err != nil {
			return nil, err
		}
		s.length = needed
	}
	data, err := unix.Mmap(int(s.file.Fd()), start, int(mapLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	c := &chunk{start: start, data: data}
	s.chunks[k] = c
	return c, nil
}

func (s *ChunkedBytesStore) release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for k, c := range s.chunks {
		if err := unix.Munmap(c.data); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(s.chunks, k)
	}
	if err := s.file.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (s *ChunkedBytesStore) addr(c *chunk, local int64) unsafe.Pointer {
	return unsafe.Pointer(&c.data[local])
}

func (s *ChunkedBytesStore) ReadByte(offset int64) (byte, error) {
	c, local, err := s.resolve(offset, 1)
	if err != nil {
		return 0, err
	}
	return c.data[local], nil
}

func (s *ChunkedBytesStore) WriteByte(offset int64, v byte) error {
	c, local, err := s.resolve(offset, 1)
	if err != nil {
		return err
	}
	c.data[local] = v
	return nil
}

func (s *ChunkedBytesStore) ReadShort(offset int64) (int16, error) {
	c, local, err := s.resolve(offset, 2)
	if err != nil {
		return 0, err
	}
	return memory.ReadInt16(s.addr(c, local)), nil
}

func (s *ChunkedBytesStore) WriteShort(offset int64, v int16) error {
	c, local, err := s.resolve(offset, 2)
	if err != nil {
		return err
	}
	memory.WriteInt16(s.addr(c, local), v)
	return nil
}

func (s *ChunkedBytesStore) ReadInt(offset int64) (int32, error) {
	c, local, err := s.resolve(offset, 4)
	if err != nil {
		return 0, err
	}
	return memory.ReadInt32(s.addr(c, local)), nil
}

func (s *ChunkedBytesStore) WriteInt(offset int64, v int32) error {
	c, local, err := s.resolve(offset, 4)
	if err != nil {
		return err
	}
	memory.WriteInt32(s.addr(c, local), v)
	return nil
}

func (s *ChunkedBytesStore) ReadLong(offset int64) (int64, error) {
	c, local, err := s.resolve(offset, 8)
	if err != nil {
		return 0, err
	}
	return memory.ReadInt64(s.addr(c, local)), nil
}

func (s *ChunkedBytesStore) WriteLong(offset int64, v int64) error {
	c, local, err := s.resolve(offset, 8)
	if err != nil {
		return err
	}
	memory.WriteInt64(s.addr(c, local), v)
	return nil
}

func (s *ChunkedBytesStore) ReadFloat(offset int64) (float32, error) {
	c, local, err := s.resolve(offset, 4)
	if err != nil {
		return 0, err
	}
	return memory.ReadFloat32(s.addr(c, local)), nil
}

func (s *ChunkedBytesStore) WriteFloat(offset int64, v float32) error {
	c, local, err := s.resolve(offset, 4)
	if err != nil {
		return err
	}
	memory.WriteFloat32(s.addr(c, local), v)
	return nil
}

func (s *ChunkedBytesStore) ReadDouble(offset int64) (float64, error) {
	c, local, err := s.resolve(offset, 8)
	if err != nil {
		return 0, err
	}
	return memory.ReadFloat64(s.addr(c, local)), nil
}

func (s *ChunkedBytesStore) WriteDouble(offset int64, v float64) error {
	c, local, err := s.resolve(offset, 8)
	if err != nil {
		return err
	}
	memory.WriteFloat64(s.addr(c, local), v)
	return nil
}

// Write copies src into the store starting at offset. A src that would
// straddle further than the next chunk's overlap window is written in
// chunk-sized pieces.
func (s *ChunkedBytesStore) Write(offset int64, src []byte) (int, error) {
	total := 0
	for total < len(src) {
		c, local, err := s.resolve(offset+int64(total), 1)
		if err != nil {
			return total, err
		}
		n := copy(c.data[local:], src[total:])
		total += n
		if n == 0 {
			break
		}
	}
	return total, nil
}

// Read copies out of the store starting at offset into dst.
func (s *ChunkedBytesStore) Read(offset int64, dst []byte) (int, error) {
	total := 0
	for total < len(dst) {
		c, local, err := s.resolve(offset+int64(total), 1)
		if err != nil {
			return total, err
		}
		n := copy(dst[total:], c.data[local:])
		total += n
		if n == 0 {
			break
		}
	}
	return total, nil
}

func (s *ChunkedBytesStore) Move(from, to, length int64) error {
	buf := make([]byte, length)
	if _, err := s.Read(from, buf); err != nil {
		return err
	}
	_, err := s.Write(to, buf)
	return err
}

func (s *ChunkedBytesStore) CopyTo(dst store.BytesStore) (int64, error) {
	n := s.RealCapacity() - s.Start()
	buf := make([]byte, 64*1024)
	var total int64
	for total < n {
		chunkLen := int64(len(buf))
		if remaining := n - total; remaining < chunkLen {
			chunkLen = remaining
		}
		rn, err := s.Read(s.Start()+total, buf[:chunkLen])
		if err != nil {
			return total, err
		}
		wn, err := dst.Write(dst.Start()+total, buf[:rn])
		if err != nil {
			return total, err
		}
		total += int64(wn)
		if int64(rn) < chunkLen {
			break
		}
	}
	return total, nil
}

func (s *ChunkedBytesStore) CompareAndSwapInt(offset int64, expected, new int32) (bool, error) {
	c, local, err := s.resolve(offset, 4)
	if err != nil {
		return false, err
	}
	return memory.CompareAndSwapInt32(s.addr(c, local), expected, new)
}

func (s *ChunkedBytesStore) CompareAndSwapLong(offset int64, expected, new int64) (bool, error) {
	c, local, err := s.resolve(offset, 8)
	if err != nil {
		return false, err
	}
	return memory.CompareAndSwapInt64(s.addr(c, local), expected, new)
}

// AddressForRead and AddressForWrite return a pointer valid only while
// the resolved chunk remains resident; the chunk table never evicts
// mapped chunks during a store's lifetime, so the pointer is stable for
// as long as the reservation that obtained it is held.
func (s *ChunkedBytesStore) AddressForRead(offset int64) (unsafe.Pointer, error) {
	c, local, err := s.resolve(offset, 0)
	if err != nil {
		return nil, err
	}
	return s.addr(c, local), nil
}

func (s *ChunkedBytesStore) AddressForWrite(offset int64) (unsafe.Pointer, error) {
	c, local, err := s.resolve(offset, 0)
	if err != nil {
		return nil, err
	}
	return s.addr(c, local), nil
}

// SyncUpTo flushes dirty pages in every resident chunk intersecting
// [0, offset) according to the store's configured SyncMode.
func (s *ChunkedBytesStore) SyncUpTo(offset int64) error {
	if s.syncMode == SyncNone {
		return nil
	}
	flags := unix.MS_ASYNC
	if s.syncMode == SyncSync {
		flags = unix.MS_SYNC
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.chunks {
		if c.start >= offset {
			continue
		}
		if err := unix.Msync(c.data, flags); err != nil {
			return err
		}
	}
	return nil
}
