package bytestore

import "bytes"

// IndexOf returns the absolute offset of the first occurrence of sub
// within [readPosition, readLimit), or -1 if not found. It does not move
// readPosition.
func (b *Bytes) IndexOf(sub []byte) int64 {
	if len(sub) == 0 {
		return b.readPosition
	}
	n := b.readLimit - b.readPosition
	buf := make([]byte, n)
	if _, err := b.bs.Read(b.readPosition, buf); err != nil {
		return -1
	}
	idx := bytes.Index(buf, sub)
	if idx < 0 {
		return -1
	}
	return b.readPosition + int64(idx)
}

// ContentEquals reports whether the unread bytes of b and other are
// byte-for-byte identical. It does not move either cursor.
func (b *Bytes) ContentEquals(other *Bytes) bool {
	if b.ReadRemaining() != other.ReadRemaining() {
		return false
	}
	n := b.ReadRemaining()
	bufA := make([]byte, n)
	bufB := make([]byte, n)
	if _, err := b.bs.Read(b.readPosition, bufA); err != nil {
		return false
	}
	if _, err := other.bs.Read(other.readPosition, bufB); err != nil {
		return false
	}
	return bytes.Equal(bufA, bufB)
}
