package bytestore

// Parse8Bit copies bytes from the current readPosition into dst until the
// stop byte is encountered (consumed but not copied) or dst fills,
// returning the number of bytes copied. readPosition is advanced past
// every byte consumed, including the stop byte.
func (b *Bytes) Parse8Bit(dst []byte, stop byte) (int, error) {
	n := 0
	for n < len(dst) {
		ok, err := b.checkRead(1)
		if err != nil {
			return n, err
		}
		if !ok {
			return n, nil
		}
		c, err := b.bs.ReadByte(b.readPosition)
		if err != nil {
			return n, err
		}
		b.readPosition++
		if c == stop {
			return n, nil
		}
		dst[n] = c
		n++
	}
	return n, nil
}
