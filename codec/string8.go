package codec

import "io"

// Write8BitString writes s as a stop-bit length prefix followed by its
// raw bytes, each byte taken as one ISO-8859-1 code point. Passing
// null=true writes the -1 length sentinel and no payload.
func Write8BitString(w StringWriter, s string, null bool) (int, error) {
	if null {
		return WriteStopBitInt64(w, -1)
	}
	n, err := WriteStopBitInt64(w, int64(len(s)))
	if err != nil {
		return n, err
	}
	wn, err := w.Write([]byte(s))
	return n + wn, err
}

// Read8BitString decodes a string written by Write8BitString. A -1 length
// sentinel means the string is null: in lenient mode that decodes as ""
// with isNull false, matching the cursor's general lenient convention of
// substituting a zero value rather than surfacing an error; in strict
// mode it is reported via isNull so the caller can distinguish null from
// empty.
func Read8BitString(r StringReader, lenient bool) (s string, isNull bool, err error) {
	length, _, err := ReadStopBitInt64(r)
	if err != nil {
		return "", false, err
	}
	if length == -1 {
		if lenient {
			return "", false, nil
		}
		return "", true, nil
	}
	if length == 0 {
		return "", false, nil
	}
	buf := make([]byte, length)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return "", false, err
	}
	return string(buf[:n]), false, nil
}
