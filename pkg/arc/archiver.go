package arc

// Archiver is the capability every archivable value implements. The archived
// form is fixed-size and position-independent except for embedded relative
// pointers, so size and alignment are known before any byte is written.
//
// Serialize is phase one: it writes the archived bytes of every child the
// value owns (advancing the writer) and returns a resolver holding the
// children's final positions. It must not emit the value's own
// representation.
//
// The returned resolver is phase two: given the final position of the
// value's own archived form and the reserved window for it, it writes
// exactly ArchivedSize bytes, including any relative pointers back to the
// children. A resolver is consumed exactly once by the matching resolve.
type Archiver interface {
	ArchivedSize() int
	ArchivedAlign() int
	Serialize(w *Writer) (Resolver, error)
}

// Resolver is the deferred second phase of serialization.
type Resolver interface {
	Resolve(here Position, out []byte) error
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(here Position, out []byte) error

func (f ResolverFunc) Resolve(here Position, out []byte) error { return f(here, out) }

// Archive runs both phases for v at the writer's tail: children first, then
// the value's own bytes at the next aligned position. Because every child is
// fully written before the parent resolves, all relative pointers in the
// buffer point strictly backward.
func Archive(w *Writer, v Archiver) (Position, error) {
	res, err := v.Serialize(w)
	if err != nil {
		return 0, err
	}
	if err := w.Align(v.ArchivedAlign()); err != nil {
		return 0, err
	}
	here, out, err := w.Reserve(v.ArchivedSize())
	if err != nil {
		return 0, err
	}
	return here, res.Resolve(here, out)
}

// SerializeShared archives a child at most once per session, keyed by
// identity. Later calls with the same key reuse the first position, so
// aliased children share one archived copy and every pointer to them
// resolves to the same bytes.
func (w *Writer) SerializeShared(key any, archive func(w *Writer) (Position, error)) (Position, error) {
	if pos, ok := w.shared[key]; ok {
		return pos, nil
	}
	pos, err := archive(w)
	if err != nil {
		return 0, err
	}
	if w.shared == nil {
		w.shared = make(map[any]Position)
	}
	w.shared[key] = pos
	return pos, nil
}
