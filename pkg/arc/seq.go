package arc

import (
	"github.com/rawbytedev/flatarc/internal/common"
)

// Seq archives a homogeneous sequence: the elements' own archived forms laid
// out contiguously, behind a wide pointer {rel i32, len u32}. Element
// children are archived first, then the element array, so every pointer in
// the array still points backward.
type Seq[T Archiver] []T

func (s Seq[T]) ArchivedSize() int  { return WidePtrSize }
func (s Seq[T]) ArchivedAlign() int { return WidePtrAlign }

func (s Seq[T]) Serialize(w *Writer) (Resolver, error) {
	if len(s) == 0 {
		return ResolverFunc(func(here Position, out []byte) error {
			return PutWidePtr(out, 0, here, 0, 0)
		}), nil
	}
	resolvers := make([]Resolver, len(s))
	for i, e := range s {
		r, err := e.Serialize(w)
		if err != nil {
			return nil, err
		}
		resolvers[i] = r
	}
	size, align := s[0].ArchivedSize(), s[0].ArchivedAlign()
	if err := w.Align(align); err != nil {
		return nil, err
	}
	base, win, err := w.Reserve(size * len(s))
	if err != nil {
		return nil, err
	}
	for i, r := range resolvers {
		off := i * size
		if err := r.Resolve(base+Position(off), win[off:off+size]); err != nil {
			return nil, err
		}
	}
	n := len(s)
	return ResolverFunc(func(here Position, out []byte) error {
		return PutWidePtr(out, 0, here, base, n)
	}), nil
}

// SeqView interprets a wide pointer at pos as an archived sequence of
// fixed-size elements. The element size comes from the declared type, not
// the buffer.
type SeqView struct {
	buf      []byte
	pos      Position
	elemSize int
}

func ViewSeq(buf []byte, pos Position, elemSize int) SeqView {
	return SeqView{buf: buf, pos: pos, elemSize: elemSize}
}

func (v SeqView) Len() int { return int(Uint32At(v.buf, v.pos+4)) }

// Base returns the position of element zero; ok is false for empty sequences.
func (v SeqView) Base() (Position, bool) { return DerefRelPtr(v.buf, v.pos) }

// At returns the position of element i without bounds checking.
func (v SeqView) At(i int) Position {
	base, _ := v.Base()
	return base + Position(i*v.elemSize)
}

// Bytes returns the raw element array aliasing the archived buffer.
func (v SeqView) Bytes() []byte {
	base, ok := v.Base()
	if !ok {
		return nil
	}
	return v.buf[base : int(base)+v.Len()*v.elemSize]
}

// AliasUint32s aliases the element array as []uint32 without copying.
// Fails when the mapped data is misaligned for the host.
func (v SeqView) AliasUint32s() ([]uint32, bool) { return common.AliasUint32s(v.Bytes()) }

// AliasUint64s aliases the element array as []uint64 without copying.
func (v SeqView) AliasUint64s() ([]uint64, bool) { return common.AliasUint64s(v.Bytes()) }

// SeqValues deserializes every element of an archived sequence through elem.
func SeqValues[T any](buf []byte, pos Position, elemSize int, elem func([]byte, Position) T) []T {
	v := ViewSeq(buf, pos, elemSize)
	n := v.Len()
	if n == 0 {
		return nil
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = elem(buf, v.At(i))
	}
	return out
}
