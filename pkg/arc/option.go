package arc

// Option archives an optional value as a single nullable relative pointer.
// A nil Value archives as the null encoding; otherwise the value is fully
// archived out-of-line and the pointer resolves to it.
type Option struct {
	Value Archiver
}

func (o Option) ArchivedSize() int  { return PtrSize }
func (o Option) ArchivedAlign() int { return PtrAlign }

func (o Option) Serialize(w *Writer) (Resolver, error) {
	if o.Value == nil {
		return ResolverFunc(func(_ Position, out []byte) error {
			PutNullPtr(out, 0)
			return nil
		}), nil
	}
	pos, err := Archive(w, o.Value)
	if err != nil {
		return nil, err
	}
	return ResolverFunc(func(here Position, out []byte) error {
		return PutRelPtr(out, 0, here, pos)
	}), nil
}

// ViewOption resolves an archived option. ok is false when none.
func ViewOption(buf []byte, pos Position) (Position, bool) {
	return DerefRelPtr(buf, pos)
}
