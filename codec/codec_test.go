package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// byteBuf is a minimal StringWriter/StringReader over a bytes.Buffer,
// standing in for a *bytestore.Bytes cursor without importing it (codec
// must not depend on the package that depends on it).
type byteBuf struct {
	bytes.Buffer
	lenient bool
}

func (b *byteBuf) ReadUnsignedByte() (int, error) {
	v, err := b.Buffer.ReadByte()
	if err != nil {
		if b.lenient {
			return -1, nil
		}
		return 0, err
	}
	return int(v), nil
}

func TestScenarioCStopBitRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 16384, 1 << 40, ^uint64(0)}
	for _, v := range values {
		var buf byteBuf
		n, err := WriteStopBitUint64(&buf, v)
		require.NoError(t, err)
		require.LessOrEqual(t, n, 10)
		got, rn, err := ReadStopBitUint64(&buf)
		require.NoError(t, err)
		require.Equal(t, n, rn)
		require.Equal(t, v, got)
	}
}

func TestStopBitSignedZigZag(t *testing.T) {
	for _, v := range []int64{0, -1, 1, -64, 64, 1 << 33, -(1 << 33)} {
		var buf byteBuf
		_, err := WriteStopBitInt64(&buf, v)
		require.NoError(t, err)
		got, _, err := ReadStopBitInt64(&buf)
		require.NoError(t, err)
		require.Equal(t, v, got)
	}
}

func TestStopBitUnderflow(t *testing.T) {
	buf := &byteBuf{lenient: true}
	_, _, err := ReadStopBitUint64(buf)
	require.ErrorIs(t, err, ErrStopBitUnderflow)
}

func TestStopBitTooLong(t *testing.T) {
	var buf byteBuf
	for i := 0; i < 11; i++ {
		require.NoError(t, buf.WriteByte(0x80))
	}
	require.NoError(t, buf.WriteByte(0x01))
	_, _, err := ReadStopBitUint64(&buf)
	require.ErrorIs(t, err, ErrStopBitTooLong)
}

func TestStopBitDecimalRoundTrip(t *testing.T) {
	cases := []Decimal{
		{Unscaled: 0, Scale: 0},
		{Unscaled: 12345, Scale: 2},
		{Unscaled: -12345, Scale: 2},
		{Unscaled: -1, Scale: 9},
	}
	for _, d := range cases {
		var buf byteBuf
		_, err := WriteStopBitDecimal(&buf, d)
		require.NoError(t, err)
		got, _, err := ReadStopBitDecimal(&buf)
		require.NoError(t, err)
		require.Equal(t, d, got)
	}
}

func TestStopBitDecimalScaleOutOfRange(t *testing.T) {
	var buf byteBuf
	_, err := WriteStopBitDecimal(&buf, Decimal{Unscaled: 1, Scale: 10})
	require.ErrorIs(t, err, ErrScaleOutOfRange)
}

func TestAppendDecimalFixedPoint(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, AppendDecimal(&out, 123, 0))
	require.Equal(t, "123", out.String())

	out.Reset()
	require.NoError(t, AppendDecimal(&out, 12345, 2))
	require.Equal(t, "123.45", out.String())

	out.Reset()
	require.NoError(t, AppendDecimal(&out, -7, 3))
	require.Equal(t, "-0.007", out.String())
}

func TestWriteRead8BitStringRoundTrip(t *testing.T) {
	var buf byteBuf
	_, err := Write8BitString(&buf, "hello", false)
	require.NoError(t, err)
	s, isNull, err := Read8BitString(&buf, false)
	require.NoError(t, err)
	require.False(t, isNull)
	require.Equal(t, "hello", s)
}

func TestWriteRead8BitStringNull(t *testing.T) {
	var buf byteBuf
	_, err := Write8BitString(&buf, "", true)
	require.NoError(t, err)
	_, isNull, err := Read8BitString(&buf, false)
	require.NoError(t, err)
	require.True(t, isNull)

	var buf2 byteBuf
	_, err = Write8BitString(&buf2, "", true)
	require.NoError(t, err)
	s, isNull, err := Read8BitString(&buf2, true)
	require.NoError(t, err)
	require.False(t, isNull)
	require.Equal(t, "", s)
}

func TestScenarioDUTF8StringStrictVsLenient(t *testing.T) {
	invalid := []byte{'a', 0xff, 'b'}

	var buf byteBuf
	_, err := WriteStopBitInt64(&buf, int64(len(invalid)))
	require.NoError(t, err)
	_, err = buf.Write(invalid)
	require.NoError(t, err)
	_, _, err = ReadUTF8String(&buf, false)
	require.ErrorIs(t, err, ErrInvalidUTF8)

	var buf2 byteBuf
	_, err = WriteStopBitInt64(&buf2, int64(len(invalid)))
	require.NoError(t, err)
	_, err = buf2.Write(invalid)
	require.NoError(t, err)
	s, isNull, err := ReadUTF8String(&buf2, true)
	require.NoError(t, err)
	require.False(t, isNull)
	require.Equal(t, "a�b", s)
}

func TestWriteReadUTF8StringRoundTrip(t *testing.T) {
	var buf byteBuf
	_, err := WriteUTF8String(&buf, "héllo wörld", false)
	require.NoError(t, err)
	s, isNull, err := ReadUTF8String(&buf, false)
	require.NoError(t, err)
	require.False(t, isNull)
	require.Equal(t, "héllo wörld", s)
}
