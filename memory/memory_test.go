package memory

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestRoundTripFixedWidth(t *testing.T) {
	buf := make([]byte, 64)
	addr := unsafe.Pointer(&buf[0])

	WriteByte(addr, 0xAB)
	require.Equal(t, byte(0xAB), ReadByte(addr))

	WriteInt16(addr, -1234)
	require.Equal(t, int16(-1234), ReadInt16(addr))

	WriteInt32(addr, -123456789)
	require.Equal(t, int32(-123456789), ReadInt32(addr))

	WriteInt64(addr, -1234567890123456789)
	require.Equal(t, int64(-1234567890123456789), ReadInt64(addr))

	WriteFloat32(addr, 3.14159)
	require.InDelta(t, float32(3.14159), ReadFloat32(addr), 0.0001)

	WriteFloat64(addr, 2.718281828)
	require.InDelta(t, 2.718281828, ReadFloat64(addr), 1e-9)
}

func TestBigEndianMatchesByteSwap(t *testing.T) {
	buf := make([]byte, 16)
	addr := unsafe.Pointer(&buf[0])

	WriteInt32(addr, 0x01020304)
	le := append([]byte(nil), buf[:4]...)
	WriteInt32BE(addr, 0x01020304)
	be := append([]byte(nil), buf[:4]...)
	for i := range le {
		require.Equal(t, le[i], be[len(be)-1-i])
	}

	require.Equal(t, int32(0x01020304), ReadInt32BE(addr))
}

func TestVolatileRoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	addr := unsafe.Pointer(&buf[0])

	require.NoError(t, WriteVolatileInt64(addr, 42))
	v, err := ReadVolatileInt64(addr)
	require.NoError(t, err)
	require.EqualValues(t, 42, v)
}

func TestUnalignedVolatileFails(t *testing.T) {
	buf := make([]byte, 16)
	addr := unsafe.Pointer(&buf[1])
	_, err := ReadVolatileInt64(addr)
	require.ErrorIs(t, err, ErrUnaligned)
}

func TestCompareAndSwap(t *testing.T) {
	buf := make([]byte, 8)
	addr := unsafe.Pointer(&buf[0])
	WriteInt64(addr, 10)

	ok, err := CompareAndSwapInt64(addr, 10, 20)
	require.NoError(t, err)
	require.True(t, ok)
	require.EqualValues(t, 20, ReadInt64(addr))

	ok, err = CompareAndSwapInt64(addr, 10, 30)
	require.NoError(t, err)
	require.False(t, ok)
	require.EqualValues(t, 20, ReadInt64(addr))
}

func TestByteCheckSum(t *testing.T) {
	b := []byte{1, 2, 3, 255, 255}
	require.Equal(t, byte((1+2+3+255+255)&0xFF), ByteCheckSum(b, 0, len(b)))
}

func TestCopyOverlap(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	Copy(b, 2, b, 0, 4)
	require.Equal(t, []byte{1, 2, 1, 2, 3, 4, 7, 8}, b)
}
