package bytestore

import (
	"math"
	"strconv"
)

// Append writes s's bytes at the current writePosition, advancing it by
// len(s). No length prefix is written; pair with ReadPositionForHeader or
// a caller-managed delimiter to find the end again.
func (b *Bytes) Append(s string) error {
	_, err := b.Write([]byte(s))
	return err
}

// AppendLong writes the decimal representation of v: a leading '-' for
// negative values, no leading zeros except for zero itself.
func (b *Bytes) AppendLong(v int64) error {
	return b.Append(strconv.FormatInt(v, 10))
}

// AppendLongWidth left-pads v's decimal representation with ASCII '0' to
// exactly width bytes, including the sign if negative. It fails with
// ErrWriteOverflow if the number (with sign) does not fit in width digits.
func (b *Bytes) AppendLongWidth(v int64, width int) error {
	s := strconv.FormatInt(v, 10)
	neg := v < 0
	digits := s
	if neg {
		digits = s[1:]
	}
	padLen := width
	if neg {
		padLen--
	}
	if len(digits) > padLen {
		return ErrWriteOverflow
	}
	out := make([]byte, 0, width)
	if neg {
		out = append(out, '-')
	}
	for i := 0; i < padLen-len(digits); i++ {
		out = append(out, '0')
	}
	out = append(out, digits...)
	_, err := b.Write(out)
	return err
}

// AppendDouble writes the shortest decimal representation of v that
// round-trips back to v exactly, matching the platform's canonical
// float-to-string conversion. Special values are spelled "NaN",
// "Infinity", and "-Infinity".
func (b *Bytes) AppendDouble(v float64) error {
	switch {
	case math.IsNaN(v):
		return b.Append("NaN")
	case math.IsInf(v, 1):
		return b.Append("Infinity")
	case math.IsInf(v, -1):
		return b.Append("-Infinity")
	}
	return b.Append(strconv.FormatFloat(v, 'g', -1, 64))
}

// AppendDoublePrecision writes v with exactly precision digits after the
// decimal point, rounded half-to-even. Special values are spelled as in
// AppendDouble.
func (b *Bytes) AppendDoublePrecision(v float64, precision int) error {
	switch {
	case math.IsNaN(v):
		return b.Append("NaN")
	case math.IsInf(v, 1):
		return b.Append("Infinity")
	case math.IsInf(v, -1):
		return b.Append("-Infinity")
	}
	return b.Append(strconv.FormatFloat(v, 'f', precision, 64))
}

// ParseLong consumes an optional sign followed by a run of ASCII digits at
// the current readPosition, advancing it past the consumed bytes, and
// returns the parsed value.
func (b *Bytes) ParseLong() (int64, error) {
	start := b.readPosition
	buf := make([]byte, 0, 20)
	first := true
	for {
		ok, err := b.checkRead(1)
		if err != nil || !ok {
			break
		}
		c, err := b.bs.ReadByte(b.readPosition)
		if err != nil {
			return 0, err
		}
		if first && (c == '-' || c == '+') {
			buf = append(buf, c)
			b.readPosition++
			first = false
			continue
		}
		first = false
		if c < '0' || c > '9' {
			break
		}
		buf = append(buf, c)
		b.readPosition++
	}
	if len(buf) == 0 || (len(buf) == 1 && (buf[0] == '-' || buf[0] == '+')) {
		b.readPosition = start
		return 0, ErrMalformedNumber
	}
	v, err := strconv.ParseInt(string(buf), 10, 64)
	if err != nil {
		b.readPosition = start
		return 0, ErrMalformedNumber
	}
	return v, nil
}

// ParseDouble consumes an optional sign, digits, an optional '.' followed
// by digits, and an optional [eE][+-]?digits+ exponent, stopping at the
// first non-matching byte (readPosition is left on it). The result is the
// nearest double to the parsed decimal.
func (b *Bytes) ParseDouble() (float64, error) {
	start := b.readPosition
	buf := make([]byte, 0, 32)

	readByteIf := func(pred func(byte) bool) (byte, bool) {
		ok, err := b.checkRead(1)
		if err != nil || !ok {
			return 0, false
		}
		c, err := b.bs.ReadByte(b.readPosition)
		if err != nil || !pred(c) {
			return 0, false
		}
		b.readPosition++
		return c, true
	}
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }

	if c, ok := readByteIf(func(c byte) bool { return c == '-' || c == '+' }); ok {
		buf = append(buf, c)
	}
	digitsSeen := 0
	for {
		c, ok := readByteIf(isDigit)
		if !ok {
			break
		}
		buf = append(buf, c)
		digitsSeen++
	}
	if c, ok := readByteIf(func(c byte) bool { return c == '.' }); ok {
		buf = append(buf, c)
		for {
			c, ok := readByteIf(isDigit)
			if !ok {
				break
			}
			buf = append(buf, c)
			digitsSeen++
		}
	}
	if digitsSeen == 0 {
		b.readPosition = start
		return 0, ErrMalformedNumber
	}
	if c, ok := readByteIf(func(c byte) bool { return c == 'e' || c == 'E' }); ok {
		expBuf := []byte{c}
		mark := b.readPosition
		if c2, ok := readByteIf(func(c byte) bool { return c == '-' || c == '+' }); ok {
			expBuf = append(expBuf, c2)
		}
		expDigits := 0
		for {
			c2, ok := readByteIf(isDigit)
			if !ok {
				break
			}
			expBuf = append(expBuf, c2)
			expDigits++
		}
		if expDigits == 0 {
			// Not a real exponent; rewind past the 'e'/'E' we spent.
			b.readPosition = mark - 1
		} else {
			buf = append(buf, expBuf...)
		}
	}
	v, err := strconv.ParseFloat(string(buf), 64)
	if err != nil {
		b.readPosition = start
		return 0, ErrMalformedNumber
	}
	return v, nil
}
