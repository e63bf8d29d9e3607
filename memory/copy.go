package memory

import "unsafe"

// Copy copies length bytes from src[srcOff:] to dst[dstOff:]; overlapping
// ranges are handled correctly, with semantics identical to a memmove.
func Copy(dst []byte, dstOff int, src []byte, srcOff int, length int) int {
	return copy(dst[dstOff:dstOff+length], src[srcOff:srcOff+length])
}

// CopyAddr copies length bytes from the native address src to the native
// address dst, correctly for overlapping ranges.
func CopyAddr(dst, src unsafe.Pointer, length int64) {
	if length <= 0 {
		return
	}
	d := unsafe.Slice((*byte)(dst), length)
	s := unsafe.Slice((*byte)(src), length)
	copy(d, s)
}
