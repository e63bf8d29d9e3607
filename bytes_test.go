package bytestore

import (
	"bytes"
	"math"
	"testing"

	"github.com/gholt/bytestore/store"
	"github.com/stretchr/testify/require"
)

func TestScenarioACursorBounds(t *testing.T) {
	elastic, err := NewElastic(16, false)
	require.NoError(t, err)
	for i := int32(0); i < 6; i++ {
		require.NoError(t, elastic.WriteInt(i))
	}
	require.EqualValues(t, 24, elastic.WritePosition())
	require.GreaterOrEqual(t, elastic.Store().RealCapacity(), int64(24))

	hs := store.NewHeapBytesStore(16)
	fixed, err := NewChecked(hs)
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		require.NoError(t, fixed.WriteByte(byte(i)))
	}
	require.EqualValues(t, 16, fixed.WritePosition())
	err = fixed.WriteByte(99)
	require.ErrorIs(t, err, ErrWriteOverflow)
	require.EqualValues(t, 16, fixed.WritePosition())
}

func TestInvariantAtRest(t *testing.T) {
	hs := store.NewHeapBytesStore(32)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	require.NoError(t, b.WriteLong(42))
	b.FlipToRead()
	require.True(t, b.ReadPosition() <= b.WritePosition())
	require.True(t, b.WritePosition() <= b.ReadLimit())
	require.True(t, b.ReadLimit() <= b.WriteLimit())
	require.True(t, b.WriteLimit() <= hs.Capacity())
}

func TestRoundTripFixedWidth(t *testing.T) {
	hs := store.NewHeapBytesStore(64)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	require.NoError(t, b.WriteLong(-9001))
	require.NoError(t, b.WriteInt(123456))
	require.NoError(t, b.WriteDouble(2.5))
	b.FlipToRead()
	lv, err := b.ReadLong()
	require.NoError(t, err)
	require.EqualValues(t, -9001, lv)
	iv, err := b.ReadInt()
	require.NoError(t, err)
	require.EqualValues(t, 123456, iv)
	dv, err := b.ReadDouble()
	require.NoError(t, err)
	require.Equal(t, 2.5, dv)
}

func TestLenientReadPastLimit(t *testing.T) {
	hs := store.NewHeapBytesStore(8)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	b.Lenient(true)
	v, err := b.ReadUnsignedByte()
	require.NoError(t, err)
	require.Equal(t, -1, v)
	iv, err := b.ReadInt()
	require.NoError(t, err)
	require.EqualValues(t, 0, iv)
}

func TestStrictReadPastLimitFails(t *testing.T) {
	hs := store.NewHeapBytesStore(8)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	_, err = b.ReadInt()
	require.ErrorIs(t, err, ErrReadUnderflow)
}

func TestAppendLong(t *testing.T) {
	hs := store.NewHeapBytesStore(32)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	require.NoError(t, b.AppendLong(-42))
	require.NoError(t, b.AppendLong(0))
	require.NoError(t, b.AppendLong(7))
	b.FlipToRead()
	got := make([]byte, b.ReadRemaining())
	_, err = b.Read(got)
	require.NoError(t, err)
	require.Equal(t, "-4207", string(got))
}

func TestAppendLongWidth(t *testing.T) {
	hs := store.NewHeapBytesStore(32)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	require.NoError(t, b.AppendLongWidth(7, 4))
	require.NoError(t, b.AppendLongWidth(-7, 4))
	b.FlipToRead()
	got := make([]byte, b.ReadRemaining())
	_, err = b.Read(got)
	require.NoError(t, err)
	require.Equal(t, "0007-007", string(got))

	hs2 := store.NewHeapBytesStore(32)
	b2, _ := NewChecked(hs2)
	err = b2.AppendLongWidth(12345, 3)
	require.ErrorIs(t, err, ErrWriteOverflow)
}

func TestAppendDoubleSpecialValues(t *testing.T) {
	hs := store.NewHeapBytesStore(64)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	require.NoError(t, b.AppendDouble(math.NaN()))
	require.NoError(t, b.Append(","))
	require.NoError(t, b.AppendDouble(math.Inf(1)))
	require.NoError(t, b.Append(","))
	require.NoError(t, b.AppendDouble(math.Inf(-1)))
	b.FlipToRead()
	got := make([]byte, b.ReadRemaining())
	_, err = b.Read(got)
	require.NoError(t, err)
	require.Equal(t, "NaN,Infinity,-Infinity", string(got))
}

func TestAppendDoublePrecisionRoundHalfEven(t *testing.T) {
	hs := store.NewHeapBytesStore(32)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	require.NoError(t, b.AppendDoublePrecision(2.5, 0))
	b.FlipToRead()
	got := make([]byte, b.ReadRemaining())
	_, _ = b.Read(got)
	require.Equal(t, "2", string(got))
}

func TestParseLongParseDoubleRoundTrip(t *testing.T) {
	hs := store.NewHeapBytesStore(64)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	require.NoError(t, b.AppendLong(-123456789))
	b.FlipToRead()
	v, err := b.ParseLong()
	require.NoError(t, err)
	require.EqualValues(t, -123456789, v)

	for _, d := range []float64{0, 1, -1, 3.14159, 1e10, -2.5e-7} {
		hs := store.NewHeapBytesStore(64)
		b, _ := NewChecked(hs)
		require.NoError(t, b.AppendDouble(d))
		b.FlipToRead()
		got, err := b.ParseDouble()
		require.NoError(t, err)
		require.Equal(t, d, got)
	}
}

func TestPrewriteAndClearAndPad(t *testing.T) {
	hs := store.NewHeapBytesStore(32)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	require.NoError(t, b.ClearAndPad(8))
	require.NoError(t, b.Append("payload"))
	require.NoError(t, b.PrewriteInt(int32(len("payload"))))
	require.EqualValues(t, 4, b.ReadPosition())
	length, err := b.ReadInt()
	require.NoError(t, err)
	require.EqualValues(t, len("payload"), length)
}

func TestPrewriteWithoutPaddingFails(t *testing.T) {
	hs := store.NewHeapBytesStore(32)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	err = b.PrewriteByte(1)
	require.ErrorIs(t, err, ErrNotEnoughPadding)
}

func TestIndexOfAndContentEquals(t *testing.T) {
	hs := store.NewHeapBytesStore(64)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	require.NoError(t, b.Append("hello world"))
	b.FlipToRead()
	idx := b.IndexOf([]byte("world"))
	require.EqualValues(t, 6, idx)

	hs2 := store.NewHeapBytesStore(64)
	b2, _ := NewChecked(hs2)
	require.NoError(t, b2.Append("hello world"))
	b2.FlipToRead()
	require.True(t, b.ContentEquals(b2))
}

func TestCopyTo(t *testing.T) {
	hs := store.NewHeapBytesStore(64)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	require.NoError(t, b.Append("abc123"))
	b.FlipToRead()
	var out bytes.Buffer
	n, err := b.CopyTo(&out)
	require.NoError(t, err)
	require.EqualValues(t, 6, n)
	require.Equal(t, "abc123", out.String())
}

func TestUncheckedSkipsBounds(t *testing.T) {
	hs := store.NewHeapBytesStore(8)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	b.Unchecked(true)
	require.NoError(t, b.WriteByte(1))
	b.SetWritePosition(0)
	require.NoError(t, b.WriteByte(2))
}

func TestAbsoluteWriteConvention(t *testing.T) {
	hs := store.NewHeapBytesStore(32)
	b, err := NewChecked(hs)
	require.NoError(t, err)
	require.NoError(t, b.WriteByte(0xFF))
	require.EqualValues(t, 1, b.WritePosition())
	require.NoError(t, b.WriteLongAt(8, 1234))
	require.EqualValues(t, 16, b.WritePosition())
	require.NoError(t, b.WriteLongAt(0, 5678))
	require.EqualValues(t, 16, b.WritePosition())
}
