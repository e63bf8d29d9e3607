package bytestore

import (
	"github.com/gholt/bytestore/store"
)

// Bytes is a dual-cursor view over exactly one store.BytesStore. See the
// package doc comment for the bounds invariant it enforces.
type Bytes struct {
	bs    store.BytesStore
	owner store.ReferenceOwner

	readPosition  int64
	writePosition int64
	readLimit     int64
	writeLimit    int64

	elastic   *store.NativeElasticBytesStore
	unchecked bool
	lenient   bool
	closed    bool
}

func newOwner(tag string) store.ReferenceOwner {
	return store.NewReferenceOwner(tag)
}

// NewChecked returns a Bytes cursor over bs, reserving a reference on it.
// The cursor starts cleared: readPosition = writePosition = bs.Start(),
// writeLimit = bs.Capacity(), readLimit = writePosition.
func NewChecked(bs store.BytesStore) (*Bytes, error) {
	owner := newOwner("bytestore.Bytes")
	if err := bs.Reserve(owner); err != nil {
		return nil, err
	}
	b := &Bytes{bs: bs, owner: owner}
	b.Clear()
	return b, nil
}

// NewElastic returns a Bytes cursor backed by a fresh
// store.NativeElasticBytesStore of initialCap bytes; writes past the
// current capacity grow the store instead of failing.
func NewElastic(initialCap int64, guarded bool) (*Bytes, error) {
	es, err := store.NewNativeElasticBytesStore(initialCap, guarded)
	if err != nil {
		return nil, err
	}
	owner := newOwner("bytestore.Bytes#elastic")
	if err := es.Reserve(owner); err != nil {
		return nil, err
	}
	b := &Bytes{bs: es, owner: owner, elastic: es}
	b.Clear()
	return b, nil
}

// Unchecked toggles unchecked mode: when enabled, all bounds checks are
// skipped and the caller is responsible for having validated positions.
// Returns the receiver for chaining.
func (b *Bytes) Unchecked(v bool) *Bytes {
	b.unchecked = v
	return b
}

// Lenient toggles lenient mode: when enabled, reads past readLimit return a
// sentinel value instead of ErrReadUnderflow.
func (b *Bytes) Lenient(v bool) *Bytes {
	b.lenient = v
	return b
}

// IsElastic reports whether this cursor grows its store on write overflow.
func (b *Bytes) IsElastic() bool { return b.elastic != nil }

// Store returns the underlying store.BytesStore.
func (b *Bytes) Store() store.BytesStore { return b.bs }

// Release releases this cursor's reservation on its store. The Bytes must
// not be used after Release.
func (b *Bytes) Release() error {
	if b.closed {
		return ErrCursorClosed
	}
	b.closed = true
	return b.bs.Release(b.owner)
}

// Clear resets the cursor to its post-construction state: readPosition =
// writePosition = start, writeLimit = capacity, readLimit = writePosition.
func (b *Bytes) Clear() {
	start := b.bs.Start()
	b.readPosition = start
	b.writePosition = start
	b.writeLimit = b.bs.Capacity()
	b.readLimit = b.writePosition
}

// ReadPosition returns the current read cursor.
func (b *Bytes) ReadPosition() int64 { return b.readPosition }

// WritePosition returns the current write cursor.
func (b *Bytes) WritePosition() int64 { return b.writePosition }

// ReadLimit returns the current read limit.
func (b *Bytes) ReadLimit() int64 { return b.readLimit }

// WriteLimit returns the current write limit.
func (b *Bytes) WriteLimit() int64 { return b.writeLimit }

// ReadRemaining returns readLimit - readPosition.
func (b *Bytes) ReadRemaining() int64 { return b.readLimit - b.readPosition }

// WriteRemaining returns writeLimit - writePosition.
func (b *Bytes) WriteRemaining() int64 { return b.writeLimit - b.writePosition }

// SetReadPosition repositions the read cursor.
func (b *Bytes) SetReadPosition(p int64) { b.readPosition = p }

// SetWritePosition repositions the write cursor and advances readLimit to
// match it, mirroring a write followed immediately by a read of what was
// written (the convention used after, e.g., a raw byte-slice Write).
func (b *Bytes) SetWritePosition(p int64) {
	b.writePosition = p
	if b.readLimit < p {
		b.readLimit = p
	}
}

// FlipToRead sets readLimit to the current writePosition and readPosition
// to start, preparing the buffer built up by writes to be consumed by
// reads — the common "done writing, now read it back" transition.
func (b *Bytes) FlipToRead() {
	b.readLimit = b.writePosition
	b.readPosition = b.bs.Start()
}

func (b *Bytes) ensureWrite(n int64) error {
	if b.unchecked {
		return nil
	}
	if b.writePosition+n <= b.writeLimit {
		return nil
	}
	if b.elastic != nil {
		if err := b.elastic.EnsureCapacity(b.writePosition + n); err != nil {
			return err
		}
		b.writeLimit = b.elastic.RealCapacity()
		return nil
	}
	return ErrWriteOverflow
}

// checkRead reports whether n bytes may be read at the current
// readPosition. When it returns (false, nil) the caller is in lenient mode
// and must return its sentinel value.
func (b *Bytes) checkRead(n int64) (bool, error) {
	if b.unchecked {
		return true, nil
	}
	if b.readPosition+n <= b.readLimit {
		return true, nil
	}
	if b.lenient {
		return false, nil
	}
	return false, ErrReadUnderflow
}

// --- fixed-width writes (advance writePosition) ---

func (b *Bytes) WriteByte(v byte) error {
	if err := b.ensureWrite(1); err != nil {
		return err
	}
	if err := b.bs.WriteByte(b.writePosition, v); err != nil {
		return err
	}
	b.writePosition++
	if b.readLimit < b.writePosition {
		b.readLimit = b.writePosition
	}
	return nil
}

func (b *Bytes) WriteShort(v int16) error {
	if err := b.ensureWrite(2); err != nil {
		return err
	}
	if err := b.bs.WriteShort(b.writePosition, v); err != nil {
		return err
	}
	b.writePosition += 2
	if b.readLimit < b.writePosition {
		b.readLimit = b.writePosition
	}
	return nil
}

func (b *Bytes) WriteInt(v int32) error {
	if err := b.ensureWrite(4); err != nil {
		return err
	}
	if err := b.bs.WriteInt(b.writePosition, v); err != nil {
		return err
	}
	b.writePosition += 4
	if b.readLimit < b.writePosition {
		b.readLimit = b.writePosition
	}
	return nil
}

func (b *Bytes) WriteLong(v int64) error {
	if err := b.ensureWrite(8); err != nil {
		return err
	}
	if err := b.bs.WriteLong(b.writePosition, v); err != nil {
		return err
	}
	b.writePosition += 8
	if b.readLimit < b.writePosition {
		b.readLimit = b.writePosition
	}
	return nil
}

func (b *Bytes) WriteFloat(v float32) error {
	if err := b.ensureWrite(4); err != nil {
		return err
	}
	if err := b.bs.WriteFloat(b.writePosition, v); err != nil {
		return err
	}
	b.writePosition += 4
	if b.readLimit < b.writePosition {
		b.readLimit = b.writePosition
	}
	return nil
}

func (b *Bytes) WriteDouble(v float64) error {
	if err := b.ensureWrite(8); err != nil {
		return err
	}
	if err := b.bs.WriteDouble(b.writePosition, v); err != nil {
		return err
	}
	b.writePosition += 8
	if b.readLimit < b.writePosition {
		b.readLimit = b.writePosition
	}
	return nil
}

// Write copies src at the current writePosition, advancing it by len(src).
func (b *Bytes) Write(src []byte) (int, error) {
	if err := b.ensureWrite(int64(len(src))); err != nil {
		return 0, err
	}
	n, err := b.bs.Write(b.writePosition, src)
	b.writePosition += int64(n)
	if b.readLimit < b.writePosition {
		b.readLimit = b.writePosition
	}
	return n, err
}

// --- absolute-offset writes (never move writePosition backward; move it
// forward to max(writePosition, offset+width) per spec convention) ---

func (b *Bytes) WriteByteAt(offset int64, v byte) error {
	if err := b.bs.WriteByte(offset, v); err != nil {
		return err
	}
	b.bumpWritePosition(offset + 1)
	return nil
}

func (b *Bytes) WriteShortAt(offset int64, v int16) error {
	if err := b.bs.WriteShort(offset, v); err != nil {
		return err
	}
	b.bumpWritePosition(offset + 2)
	return nil
}

func (b *Bytes) WriteIntAt(offset int64, v int32) error {
	if err := b.bs.WriteInt(offset, v); err != nil {
		return err
	}
	b.bumpWritePosition(offset + 4)
	return nil
}

func (b *Bytes) WriteLongAt(offset int64, v int64) error {
	if err := b.bs.WriteLong(offset, v); err != nil {
		return err
	}
	b.bumpWritePosition(offset + 8)
	return nil
}

func (b *Bytes) bumpWritePosition(afterOffset int64) {
	if afterOffset > b.writePosition {
		b.writePosition = afterOffset
		if b.readLimit < b.writePosition {
			b.readLimit = b.writePosition
		}
	}
}

// --- fixed-width reads (advance readPosition) ---

func (b *Bytes) ReadUnsignedByte() (int, error) {
	ok, err := b.checkRead(1)
	if err != nil {
		return 0, err
	}
	if !ok {
		return -1, nil
	}
	v, err := b.bs.ReadByte(b.readPosition)
	if err != nil {
		return 0, err
	}
	b.readPosition++
	return int(v), nil
}

func (b *Bytes) ReadShort() (int16, error) {
	ok, err := b.checkRead(2)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	v, err := b.bs.ReadShort(b.readPosition)
	if err != nil {
		return 0, err
	}
	b.readPosition += 2
	return v, nil
}

func (b *Bytes) ReadInt() (int32, error) {
	ok, err := b.checkRead(4)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	v, err := b.bs.ReadInt(b.readPosition)
	if err != nil {
		return 0, err
	}
	b.readPosition += 4
	return v, nil
}

func (b *Bytes) ReadLong() (int64, error) {
	ok, err := b.checkRead(8)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	v, err := b.bs.ReadLong(b.readPosition)
	if err != nil {
		return 0, err
	}
	b.readPosition += 8
	return v, nil
}

func (b *Bytes) ReadFloat() (float32, error) {
	ok, err := b.checkRead(4)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	v, err := b.bs.ReadFloat(b.readPosition)
	if err != nil {
		return 0, err
	}
	b.readPosition += 4
	return v, nil
}

func (b *Bytes) ReadDouble() (float64, error) {
	ok, err := b.checkRead(8)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	v, err := b.bs.ReadDouble(b.readPosition)
	if err != nil {
		return 0, err
	}
	b.readPosition += 8
	return v, nil
}

// Read copies up to len(dst) bytes from the current readPosition, advancing
// it by the number actually read.
func (b *Bytes) Read(dst []byte) (int, error) {
	ok, err := b.checkRead(int64(len(dst)))
	if err != nil {
		return 0, err
	}
	if !ok {
		avail := b.readLimit - b.readPosition
		if avail <= 0 {
			return 0, nil
		}
		n, err := b.bs.Read(b.readPosition, dst[:avail])
		b.readPosition += int64(n)
		return n, err
	}
	n, err := b.bs.Read(b.readPosition, dst)
	b.readPosition += int64(n)
	return n, err
}

// --- absolute-offset reads ---

func (b *Bytes) ReadLongAt(offset int64) (int64, error) { return b.bs.ReadLong(offset) }
func (b *Bytes) ReadIntAt(offset int64) (int32, error)  { return b.bs.ReadInt(offset) }

// CopyTo copies the cursor's unread bytes ([readPosition, readLimit)) to w,
// without moving readPosition.
func (b *Bytes) CopyTo(w interface{ Write([]byte) (int, error) }) (int64, error) {
	buf := make([]byte, 64*1024)
	var total int64
	pos := b.readPosition
	for pos < b.readLimit {
		chunk := int64(len(buf))
		if remaining := b.readLimit - pos; remaining < chunk {
			chunk = remaining
		}
		n, err := b.bs.Read(pos, buf[:chunk])
		if err != nil {
			return total, err
		}
		wn, err := w.Write(buf[:n])
		total += int64(wn)
		if err != nil {
			return total, err
		}
		pos += int64(n)
	}
	return total, nil
}
