package arc

import (
	"github.com/rawbytedev/flatarc/internal/common"
)

// Position is an offset into the output buffer of a single serialization
// session. Positions advance monotonically and are only meaningful against
// that session's buffer (or the buffer after it is handed out).
type Position uint64

const defaultCap = 256

// Writer owns the output buffer of one serialization session. It is not safe
// for concurrent use; concurrent archiving needs independent writers.
type Writer struct {
	buf     []byte
	scratch Scratch
	shared  map[any]Position
	zeroPad [8]byte
}

// NewWriter creates a session backed by the runtime heap.
func NewWriter() *Writer {
	w, _ := NewWriterWith(HeapScratch())
	return w
}

// NewWriterWith creates a session drawing all buffer space from s.
func NewWriterWith(s Scratch) (*Writer, error) {
	buf, err := s.Alloc(defaultCap)
	if err != nil {
		return nil, err
	}
	return &Writer{buf: buf, scratch: s}, nil
}

// Pos returns the current tail position.
func (w *Writer) Pos() Position { return Position(len(w.buf)) }

// Bytes returns the archived buffer accumulated so far. The slice aliases
// the writer's storage; it is only stable once archiving has finished.
func (w *Writer) Bytes() []byte { return w.buf }

// Reset drops all written data so the session can be reused.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.shared = nil
}

func (w *Writer) ensure(n int) error {
	need := len(w.buf) + n
	if need <= cap(w.buf) {
		return nil
	}
	newCap := cap(w.buf) * 2
	if newCap < need {
		newCap = need
	}
	nb, err := w.scratch.Alloc(newCap)
	if err != nil {
		return err
	}
	nb = nb[:len(w.buf)]
	copy(nb, w.buf)
	old := w.buf
	w.buf = nb
	w.scratch.Free(old[:0])
	return nil
}

// Write appends p at the tail and returns the position it was written at.
func (w *Writer) Write(p []byte) (Position, error) {
	if err := w.ensure(len(p)); err != nil {
		return 0, err
	}
	pos := w.Pos()
	w.buf = append(w.buf, p...)
	return pos, nil
}

// Align pads the tail with zero bytes until the position is a multiple of a.
func (w *Writer) Align(a int) error {
	if !common.IsPow2(a) {
		return ErrBadAlign
	}
	pad := common.AlignUp(len(w.buf), a) - len(w.buf)
	if pad == 0 {
		return nil
	}
	if err := w.ensure(pad); err != nil {
		return err
	}
	for pad > len(w.zeroPad) {
		w.buf = append(w.buf, w.zeroPad[:]...)
		pad -= len(w.zeroPad)
	}
	w.buf = append(w.buf, w.zeroPad[:pad]...)
	return nil
}

// Reserve extends the buffer by n zeroed bytes and returns the reserved
// window along with its position. The window stays valid until the next
// write against this session.
func (w *Writer) Reserve(n int) (Position, []byte, error) {
	if err := w.ensure(n); err != nil {
		return 0, nil, err
	}
	pos := w.Pos()
	w.buf = append(w.buf, make([]byte, n)...)
	return pos, w.buf[pos:], nil
}
