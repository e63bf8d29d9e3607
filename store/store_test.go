package store

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func allVariants(t *testing.T, capacity int64) []BytesStore {
	t.Helper()
	native, err := NewNativeFixedBytesStore(capacity, false)
	require.NoError(t, err)
	guarded, err := NewNativeFixedBytesStore(capacity, true)
	require.NoError(t, err)
	elastic, err := NewNativeElasticBytesStore(capacity, false)
	require.NoError(t, err)
	heap := NewHeapBytesStore(capacity)
	wrapped := NewWrappedBytesStore(make([]byte, capacity), false)
	return []BytesStore{native, guarded, elastic, heap, wrapped}
}

func TestRoundTripAllVariants(t *testing.T) {
	for _, s := range allVariants(t, 64) {
		s := s
		t.Run("", func(t *testing.T) {
			base := s.Start()
			require.NoError(t, s.WriteLong(base, 1234567890123))
			v, err := s.ReadLong(base)
			require.NoError(t, err)
			require.EqualValues(t, 1234567890123, v)

			require.NoError(t, s.WriteInt(base+8, -42))
			iv, err := s.ReadInt(base + 8)
			require.NoError(t, err)
			require.EqualValues(t, -42, iv)

			require.NoError(t, s.WriteDouble(base+16, 3.25))
			dv, err := s.ReadDouble(base + 16)
			require.NoError(t, err)
			require.InDelta(t, 3.25, dv, 1e-12)
		})
	}
}

func TestRefCountZeroClosesStore(t *testing.T) {
	s, err := NewNativeFixedBytesStore(16, false)
	require.NoError(t, err)
	require.NoError(t, s.ReleaseLast())
	require.EqualValues(t, 0, s.RefCount())
}

func TestHeapStoreHasNoStableAddress(t *testing.T) {
	s := NewHeapBytesStore(16)
	_, err := s.AddressForRead(0)
	require.ErrorIs(t, err, ErrNoStableAddress)
}

func TestWrappedReadOnlyRejectsWrite(t *testing.T) {
	s := NewWrappedReadOnlyBytesStore(make([]byte, 16), false)
	err := s.WriteByte(0, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOutOfBoundsOffset(t *testing.T) {
	s := NewHeapBytesStore(8)
	_, err := s.ReadLong(4)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestElasticGrowsOnOverflow(t *testing.T) {
	s, err := NewNativeElasticBytesStore(8, false)
	require.NoError(t, err)
	require.NoError(t, s.WriteLong(100, 99))
	require.GreaterOrEqual(t, s.RealCapacity(), int64(108))
	v, err := s.ReadLong(100)
	require.NoError(t, err)
	require.EqualValues(t, 99, v)
}

func TestCompareAndSwap(t *testing.T) {
	s, err := NewNativeFixedBytesStore(16, false)
	require.NoError(t, err)
	require.NoError(t, s.WriteLong(0, 10))
	ok, err := s.CompareAndSwapLong(0, 10, 20)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = s.CompareAndSwapLong(0, 10, 30)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCopyToCopiesContents(t *testing.T) {
	src := NewHeapBytesStore(16)
	_, err := src.Write(0, []byte("hello world!!!!!"))
	require.NoError(t, err)
	dst := NewHeapBytesStore(16)
	n, err := src.CopyTo(dst)
	require.NoError(t, err)
	require.EqualValues(t, 16, n)
	got := make([]byte, 16)
	_, err = dst.Read(0, got)
	require.NoError(t, err)
	require.Equal(t, "hello world!!!!!", string(got))
}

func TestPointerStoreWrapsCallerMemory(t *testing.T) {
	backing := make([]byte, 32)
	ps := NewPointerBytesStore(unsafe.Pointer(&backing[0]), 32, nil)
	require.NoError(t, ps.WriteInt(0, 7))
	v, err := ps.ReadInt(0)
	require.NoError(t, err)
	require.EqualValues(t, 7, v)
}
