package mmap

import "github.com/spaolacci/murmur3"

// Checksum returns the murmur3 checksum of the full resident chunk
// window covering offset, the same hash the teacher's
// ChecksummedReader/ChecksummedWriter validate file headers with
// (murmur3.New32), applied here to a live mapped chunk rather than a
// streamed file section.
func (s *ChunkedBytesStore) Checksum(offset int64) (uint32, error) {
	c, _, err := s.resolve(offset, 0)
	if err != nil {
		return 0, err
	}
	h := murmur3.New32()
	h.Write(c.data)
	return h.Sum32(), nil
}
