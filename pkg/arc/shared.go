package arc

// Shared archives an aliased value behind a single relative pointer,
// deduplicating by Key: every Shared with the same key in one session
// points at one archived copy. Key must be comparable; pointer identity of
// the shared value is the usual choice.
type Shared struct {
	Key   any
	Value Archiver
}

func (s Shared) ArchivedSize() int  { return PtrSize }
func (s Shared) ArchivedAlign() int { return PtrAlign }

func (s Shared) Serialize(w *Writer) (Resolver, error) {
	pos, err := w.SerializeShared(s.Key, func(w *Writer) (Position, error) {
		return Archive(w, s.Value)
	})
	if err != nil {
		return nil, err
	}
	return ResolverFunc(func(here Position, out []byte) error {
		return PutRelPtr(out, 0, here, pos)
	}), nil
}

// ViewShared resolves an archived shared pointer to its target.
func ViewShared(buf []byte, pos Position) (Position, bool) {
	return DerefRelPtr(buf, pos)
}

// SharedMemo rebuilds owned values for shared targets at most once per
// buffer, so aliased archived children deserialize back into one owned copy.
type SharedMemo map[Position]any

// Load returns the memoized owned value for pos, building it on first use.
func (m SharedMemo) Load(pos Position, build func() any) any {
	if v, ok := m[pos]; ok {
		return v
	}
	v := build()
	m[pos] = v
	return v
}
