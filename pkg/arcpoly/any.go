package arcpoly

import (
	"github.com/rawbytedev/flatarc/pkg/arc"
)

// Any archives a value behind a polymorphic handle: the concrete type's
// descriptor serializes the value out-of-line, and the archived form pairs a
// relative pointer with the type identifier {rel i32, pad u32, id u64}.
type Any struct {
	Reg   *Registry
	Name  string
	Value any
}

func (a Any) ArchivedSize() int  { return arc.AnyPtrSize }
func (a Any) ArchivedAlign() int { return arc.AnyPtrAlign }

func (a Any) Serialize(w *arc.Writer) (arc.Resolver, error) {
	e, err := a.Reg.LookupName(a.Name)
	if err != nil {
		return nil, err
	}
	pos, err := e.Serialize(w, a.Value)
	if err != nil {
		return nil, err
	}
	id := arc.NamedID(a.Name)
	return arc.ResolverFunc(func(here arc.Position, out []byte) error {
		return arc.PutAnyPtr(out, 0, here, pos, id)
	}), nil
}

// AnyView interprets a polymorphic pointer at pos.
type AnyView struct {
	buf []byte
	pos arc.Position
}

func ViewAny(buf []byte, pos arc.Position) AnyView { return AnyView{buf: buf, pos: pos} }

// TypeID returns the archived type identifier.
func (v AnyView) TypeID() arc.TypeID {
	return arc.TypeID(arc.Uint64At(v.buf, v.pos+8))
}

// Target returns the position of the referenced archived value.
func (v AnyView) Target() (arc.Position, bool) {
	return arc.DerefRelPtr(v.buf, v.pos)
}

// Reattach resolves the identifier through reg and rebuilds the concrete
// type's dispatch handle over the archived bytes. Fails with
// ErrUnknownTypeID when the identifier is not registered.
func (v AnyView) Reattach(reg *Registry) (any, error) {
	e, err := reg.Lookup(v.TypeID())
	if err != nil {
		return nil, err
	}
	target, _ := v.Target()
	return e.Reattach(v.buf, target), nil
}

// Deserialize reconstructs the owned value behind the polymorphic pointer.
func (v AnyView) Deserialize(reg *Registry) (any, error) {
	e, err := reg.Lookup(v.TypeID())
	if err != nil {
		return nil, err
	}
	target, _ := v.Target()
	return e.Deserialize(v.buf, target)
}
