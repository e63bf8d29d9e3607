// Package memory provides raw, endian-correct load/store primitives over
// native addresses and heap byte slices, along with the volatile, ordered
// and compare-and-swap variants needed by the store and bytestore packages.
//
// Little-endian is the default representation; *BE variants are provided
// where big-endian is required and must produce bit-identical results to
// byte-swapping the little-endian form.
package memory

import (
	"encoding/binary"
	"errors"
	"math"
	"sync/atomic"
	"unsafe"
)

// ErrUnaligned is returned by the volatile and CAS operations when the
// address is not naturally aligned for the access width.
var ErrUnaligned = errors.New("memory: unaligned access")

func checkAlign(addr unsafe.Pointer, width uintptr) error {
	if uintptr(addr)%width != 0 {
		return ErrUnaligned
	}
	return nil
}

// ReadByte reads a single byte at addr.
func ReadByte(addr unsafe.Pointer) byte {
	return *(*byte)(addr)
}

// WriteByte writes a single byte at addr.
func WriteByte(addr unsafe.Pointer, v byte) {
	*(*byte)(addr) = v
}

// ReadInt16 reads a little-endian int16 at addr.
func ReadInt16(addr unsafe.Pointer) int16 {
	b := (*[2]byte)(addr)
	return int16(binary.LittleEndian.Uint16(b[:]))
}

// WriteInt16 writes a little-endian int16 at addr.
func WriteInt16(addr unsafe.Pointer, v int16) {
	b := (*[2]byte)(addr)
	binary.LittleEndian.PutUint16(b[:], uint16(v))
}

// ReadInt16BE reads a big-endian int16 at addr.
func ReadInt16BE(addr unsafe.Pointer) int16 {
	b := (*[2]byte)(addr)
	return int16(binary.BigEndian.Uint16(b[:]))
}

// WriteInt16BE writes a big-endian int16 at addr.
func WriteInt16BE(addr unsafe.Pointer, v int16) {
	b := (*[2]byte)(addr)
	binary.BigEndian.PutUint16(b[:], uint16(v))
}

// ReadInt32 reads a little-endian int32 at addr.
func ReadInt32(addr unsafe.Pointer) int32 {
	b := (*[4]byte)(addr)
	return int32(binary.LittleEndian.Uint32(b[:]))
}

// WriteInt32 writes a little-endian int32 at addr.
func WriteInt32(addr unsafe.Pointer, v int32) {
	b := (*[4]byte)(addr)
	binary.LittleEndian.PutUint32(b[:], uint32(v))
}

// ReadInt32BE reads a big-endian int32 at addr.
func ReadInt32BE(addr unsafe.Pointer) int32 {
	b := (*[4]byte)(addr)
	return int32(binary.BigEndian.Uint32(b[:]))
}

// WriteInt32BE writes a big-endian int32 at addr.
func WriteInt32BE(addr unsafe.Pointer, v int32) {
	b := (*[4]byte)(addr)
	binary.BigEndian.PutUint32(b[:], uint32(v))
}

// ReadInt64 reads a little-endian int64 at addr.
func ReadInt64(addr unsafe.Pointer) int64 {
	b := (*[8]byte)(addr)
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// WriteInt64 writes a little-endian int64 at addr.
func WriteInt64(addr unsafe.Pointer, v int64) {
	b := (*[8]byte)(addr)
	binary.LittleEndian.PutUint64(b[:], uint64(v))
}

// ReadInt64BE reads a big-endian int64 at addr.
func ReadInt64BE(addr unsafe.Pointer) int64 {
	b := (*[8]byte)(addr)
	return int64(binary.BigEndian.Uint64(b[:]))
}

// WriteInt64BE writes a big-endian int64 at addr.
func WriteInt64BE(addr unsafe.Pointer, v int64) {
	b := (*[8]byte)(addr)
	binary.BigEndian.PutUint64(b[:], uint64(v))
}

// ReadFloat32 reads a little-endian float32 at addr.
func ReadFloat32(addr unsafe.Pointer) float32 {
	return math.Float32frombits(uint32(ReadInt32(addr)))
}

// WriteFloat32 writes a little-endian float32 at addr.
func WriteFloat32(addr unsafe.Pointer, v float32) {
	WriteInt32(addr, int32(math.Float32bits(v)))
}

// ReadFloat64 reads a little-endian float64 at addr.
func ReadFloat64(addr unsafe.Pointer) float64 {
	return math.Float64frombits(uint64(ReadInt64(addr)))
}

// WriteFloat64 writes a little-endian float64 at addr.
func WriteFloat64(addr unsafe.Pointer, v float64) {
	WriteInt64(addr, int64(math.Float64bits(v)))
}

// ReadVolatileInt32 is an acquire load of the int32 at addr.
func ReadVolatileInt32(addr unsafe.Pointer) (int32, error) {
	if err := checkAlign(addr, 4); err != nil {
		return 0, err
	}
	return atomic.LoadInt32((*int32)(addr)), nil
}

// WriteVolatileInt32 is a release store of v at addr.
func WriteVolatileInt32(addr unsafe.Pointer, v int32) error {
	if err := checkAlign(addr, 4); err != nil {
		return err
	}
	atomic.StoreInt32((*int32)(addr), v)
	return nil
}

// ReadVolatileInt64 is an acquire load of the int64 at addr.
func ReadVolatileInt64(addr unsafe.Pointer) (int64, error) {
	if err := checkAlign(addr, 8); err != nil {
		return 0, err
	}
	return atomic.LoadInt64((*int64)(addr)), nil
}

// WriteVolatileInt64 is a release store of v at addr.
func WriteVolatileInt64(addr unsafe.Pointer, v int64) error {
	if err := checkAlign(addr, 8); err != nil {
		return err
	}
	atomic.StoreInt64((*int64)(addr), v)
	return nil
}

// WriteOrderedInt32 is a release store; it will not be reordered with
// prior writes issued by the same goroutine.
func WriteOrderedInt32(addr unsafe.Pointer, v int32) error {
	return WriteVolatileInt32(addr, v)
}

// WriteOrderedInt64 is a release store; it will not be reordered with
// prior writes issued by the same goroutine.
func WriteOrderedInt64(addr unsafe.Pointer, v int64) error {
	return WriteVolatileInt64(addr, v)
}

// CompareAndSwapInt32 is a sequentially consistent CAS on a naturally
// aligned address.
func CompareAndSwapInt32(addr unsafe.Pointer, expected, new int32) (bool, error) {
	if err := checkAlign(addr, 4); err != nil {
		return false, err
	}
	return atomic.CompareAndSwapInt32((*int32)(addr), expected, new), nil
}

// CompareAndSwapInt64 is a sequentially consistent CAS on a naturally
// aligned address.
func CompareAndSwapInt64(addr unsafe.Pointer, expected, new int64) (bool, error) {
	if err := checkAlign(addr, 8); err != nil {
		return false, err
	}
	return atomic.CompareAndSwapInt64((*int64)(addr), expected, new), nil
}
