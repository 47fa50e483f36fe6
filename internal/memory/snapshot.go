package memory

import "fmt"

// Snapshot serves reads from in-memory regions. It backs raw memory dumps
// loaded from disk and the synthetic targets used in tests.
type Snapshot struct {
	regions []region
}

type region struct {
	start uint64
	data  []byte
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Map adds a region of target memory starting at addr. The slice is not
// copied, callers keep ownership of the backing array.
func (s *Snapshot) Map(addr uint64, data []byte) {
	s.regions = append(s.regions, region{start: addr, data: data})
}

// ReadAt implements Reader. A read has to be served by a single region,
// reads crossing a region boundary fail.
func (s *Snapshot) ReadAt(addr uint64, n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative read size %d", ErrUnreadable, n)
	}
	for _, reg := range s.regions {
		if addr < reg.start {
			continue
		}
		// Compare offsets against the region size instead of computing
		// addr+n, which wraps for addresses near the top of the address
		// space.
		off := addr - reg.start
		if off > uint64(len(reg.data)) || uint64(n) > uint64(len(reg.data))-off {
			continue
		}
		buf := make([]byte, n)
		copy(buf, reg.data[off:])
		return buf, nil
	}
	return nil, fmt.Errorf("%w: 0x%x", ErrUnreadable, addr)
}
