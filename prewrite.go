package bytestore

// ClearAndPad resets the cursor like Clear, then reserves padding bytes at
// the front of the store (growing an elastic store if necessary) so that
// subsequent Prewrite* calls have somewhere to decrement readPosition
// into.
func (b *Bytes) ClearAndPad(padding int64) error {
	start := b.bs.Start()
	b.writePosition = start
	b.writeLimit = b.bs.Capacity()
	if err := b.ensureWrite(padding); err != nil {
		return err
	}
	b.writePosition = start + padding
	b.readPosition = b.writePosition
	b.readLimit = b.writePosition
	return nil
}

// prewriteCheckOffset validates the position a prewrite would land on.
// Running out of reserved padding is ErrNotEnoughPadding; the spec pins
// offset > writeLimit (which should not normally arise from a decrement)
// as ErrWriteOverflow.
func (b *Bytes) prewriteCheckOffset(newPos int64) error {
	if newPos < b.bs.Start() {
		return ErrNotEnoughPadding
	}
	if newPos > b.writeLimit {
		return ErrWriteOverflow
	}
	return nil
}

// PrewriteByte writes v immediately before the current readPosition,
// decrementing it by one.
func (b *Bytes) PrewriteByte(v byte) error {
	newPos := b.readPosition - 1
	if err := b.prewriteCheckOffset(newPos); err != nil {
		return err
	}
	if err := b.bs.WriteByte(newPos, v); err != nil {
		return err
	}
	b.readPosition = newPos
	return nil
}

// PrewriteShort writes v (little-endian) immediately before the current
// readPosition, decrementing it by two.
func (b *Bytes) PrewriteShort(v int16) error {
	newPos := b.readPosition - 2
	if err := b.prewriteCheckOffset(newPos); err != nil {
		return err
	}
	if err := b.bs.WriteShort(newPos, v); err != nil {
		return err
	}
	b.readPosition = newPos
	return nil
}

// PrewriteInt writes v (little-endian) immediately before the current
// readPosition, decrementing it by four.
func (b *Bytes) PrewriteInt(v int32) error {
	newPos := b.readPosition - 4
	if err := b.prewriteCheckOffset(newPos); err != nil {
		return err
	}
	if err := b.bs.WriteInt(newPos, v); err != nil {
		return err
	}
	b.readPosition = newPos
	return nil
}

// PrewriteLong writes v (little-endian) immediately before the current
// readPosition, decrementing it by eight.
func (b *Bytes) PrewriteLong(v int64) error {
	newPos := b.readPosition - 8
	if err := b.prewriteCheckOffset(newPos); err != nil {
		return err
	}
	if err := b.bs.WriteLong(newPos, v); err != nil {
		return err
	}
	b.readPosition = newPos
	return nil
}

// PrewriteShortString writes a one-byte length prefix followed by s's
// bytes, immediately before the current readPosition.
func (b *Bytes) PrewriteShortString(s string) error {
	n := int64(len(s))
	if n > 255 {
		return ErrWriteOverflow
	}
	newPos := b.readPosition - n - 1
	if err := b.prewriteCheckOffset(newPos); err != nil {
		return err
	}
	if err := b.bs.WriteByte(newPos, byte(n)); err != nil {
		return err
	}
	if n > 0 {
		if _, err := b.bs.Write(newPos+1, []byte(s)); err != nil {
			return err
		}
	}
	b.readPosition = newPos
	return nil
}

// ReadPositionForHeader returns the position a message header begins at.
// When skipPadding is true, any run of zero-padding bytes at the current
// readPosition is skipped first.
func (b *Bytes) ReadPositionForHeader(skipPadding bool) int64 {
	if skipPadding {
		for b.readPosition < b.readLimit {
			v, err := b.bs.ReadByte(b.readPosition)
			if err != nil || v != 0 {
				break
			}
			b.readPosition++
		}
	}
	return b.readPosition
}
