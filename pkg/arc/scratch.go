package arc

// Scratch hands out transient byte buffers for a serialization session.
// The writer obtains all of its memory through this interface so callers can
// bound or pool the space an archive operation may consume.
type Scratch interface {
	Alloc(n int) ([]byte, error)
	Free(b []byte)
}

// heapScratch allocates from the Go heap and leaves reclamation to the GC.
type heapScratch struct{}

func (heapScratch) Alloc(n int) ([]byte, error) { return make([]byte, 0, n), nil }
func (heapScratch) Free([]byte)                 {}

// HeapScratch returns an unbounded allocator backed by the runtime heap.
func HeapScratch() Scratch { return heapScratch{} }

// FixedScratch is a bump allocator over a single preallocated arena.
// Alloc fails with ErrScratchExhausted once the arena is spent. Free only
// reclaims the most recent allocation; anything older stays spent, so the
// arena must be sized for a session's peak footprint, not its final buffer.
type FixedScratch struct {
	arena []byte
	off   int
	last  int // offset of the most recent allocation, -1 if none
}

// NewFixedScratch creates a bounded arena of the given capacity.
func NewFixedScratch(capacity int) *FixedScratch {
	return &FixedScratch{arena: make([]byte, capacity), last: -1}
}

func (s *FixedScratch) Alloc(n int) ([]byte, error) {
	if s.off+n > len(s.arena) {
		return nil, ErrScratchExhausted
	}
	b := s.arena[s.off : s.off : s.off+n]
	s.last = s.off
	s.off += n
	return b, nil
}

func (s *FixedScratch) Free(b []byte) {
	if s.last < 0 || len(s.arena) == 0 {
		return
	}
	if cap(b) > 0 && &s.arena[s.last:s.last+1][0] == &b[:1][0] {
		s.off = s.last
		s.last = -1
	}
}

// Remaining reports how many bytes are still available in the arena.
func (s *FixedScratch) Remaining() int { return len(s.arena) - s.off }
