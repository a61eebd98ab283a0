package arccheck

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/rawbytedev/flatarc/pkg/arc"
	"github.com/rawbytedev/flatarc/pkg/arcpoly"
)

// PrimRule checks a fixed-width primitive of the given size and alignment.
func PrimRule(size, align int) arc.CheckFunc {
	return func(c arc.Checker, pos arc.Position) error {
		_, err := c.Window(pos, size, align)
		return err
	}
}

var (
	BoolRule = PrimRule(1, 1)
	U8Rule   = PrimRule(1, 1)
	U16Rule  = PrimRule(2, 2)
	U32Rule  = PrimRule(4, 4)
	U64Rule  = PrimRule(8, 8)
	I8Rule   = U8Rule
	I16Rule  = U16Rule
	I32Rule  = U32Rule
	I64Rule  = U64Rule
	F32Rule  = U32Rule
	F64Rule  = U64Rule
)

// widePtr validates the {rel, len} cell itself and returns its parts.
func widePtr(c arc.Checker, pos arc.Position) (target arc.Position, n int, ok bool, err error) {
	win, err := c.Window(pos, arc.WidePtrSize, arc.WidePtrAlign)
	if err != nil {
		return 0, 0, false, err
	}
	n = int(binary.LittleEndian.Uint32(win[4:8]))
	target, ok, err = c.Deref(pos)
	if err != nil {
		return 0, 0, false, err
	}
	if !ok && n != 0 {
		return 0, 0, false, c.Fail(pos, "ptr.null-len")
	}
	return target, n, ok, nil
}

// StrRule checks an archived string: a wide pointer whose target bytes lie
// inside the buffer.
func StrRule(c arc.Checker, pos arc.Position) error {
	target, n, ok, err := widePtr(c, pos)
	if err != nil || !ok {
		return err
	}
	_, err = c.Window(target, n, 1)
	return err
}

// RawRule checks an archived byte slice; same layout as a string.
var RawRule arc.CheckFunc = StrRule

// SeqRule checks an archived sequence of fixed-size elements, recursing into
// each element with elem.
func SeqRule(elemSize, elemAlign int, elem arc.CheckFunc) arc.CheckFunc {
	return func(c arc.Checker, pos arc.Position) error {
		target, n, ok, err := widePtr(c, pos)
		if err != nil || !ok {
			return err
		}
		total := int64(n) * int64(elemSize)
		if total > int64(1)<<31 {
			return c.Fail(pos, "seq.bounds")
		}
		if _, err := c.Window(target, int(total), elemAlign); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			at := target + arc.Position(i*elemSize)
			if err := c.Recurse(fmt.Sprintf("[%d]", i), at, elem); err != nil {
				return err
			}
		}
		return nil
	}
}

// OptionRule checks a nullable pointer, recursing into the target when set.
func OptionRule(inner arc.CheckFunc) arc.CheckFunc {
	return func(c arc.Checker, pos arc.Position) error {
		target, ok, err := c.Deref(pos)
		if err != nil || !ok {
			return err
		}
		return c.Recurse("some", target, inner)
	}
}

// SharedRule checks a shared pointer: never null, target validated by inner.
// Aliased pointers revalidate the same target; that is redundant work, not
// an error.
func SharedRule(inner arc.CheckFunc) arc.CheckFunc {
	return func(c arc.Checker, pos arc.Position) error {
		target, ok, err := c.Deref(pos)
		if err != nil {
			return err
		}
		if !ok {
			return c.Fail(pos, "shared.null")
		}
		return c.Recurse("shared", target, inner)
	}
}

// DictRule checks an archived dictionary with the given value geometry,
// including the sorted-key invariant the binary search relies on.
func DictRule(valSize, valAlign int, val arc.CheckFunc) arc.CheckFunc {
	valOff, entrySize, entryAlign := arc.DictLayout(valSize, valAlign)
	return func(c arc.Checker, pos arc.Position) error {
		target, n, ok, err := widePtr(c, pos)
		if err != nil || !ok {
			return err
		}
		total := int64(n) * int64(entrySize)
		if total > int64(1)<<31 {
			return c.Fail(pos, "dict.bounds")
		}
		if _, err := c.Window(target, int(total), entryAlign); err != nil {
			return err
		}
		var prevKey []byte
		for i := 0; i < n; i++ {
			entry := target + arc.Position(i*entrySize)
			field := fmt.Sprintf("[%d]", i)
			if err := c.Recurse(field+".key", entry, StrRule); err != nil {
				return err
			}
			if err := c.Recurse(field+".val", entry+arc.Position(valOff), val); err != nil {
				return err
			}
			key := keyBytes(c, entry)
			if i > 0 && bytes.Compare(prevKey, key) >= 0 {
				return c.Fail(entry, "dict.order")
			}
			prevKey = key
		}
		return nil
	}
}

// keyBytes reads an already-validated key wide pointer.
func keyBytes(c arc.Checker, entry arc.Position) []byte {
	win, err := c.Window(entry, arc.WidePtrSize, arc.WidePtrAlign)
	if err != nil {
		return nil
	}
	n := int(binary.LittleEndian.Uint32(win[4:8]))
	target, ok, err := c.Deref(entry)
	if err != nil || !ok {
		return nil
	}
	data, err := c.Window(target, n, 1)
	if err != nil {
		return nil
	}
	return data
}

// Field names one member of a composite layout for StructRule.
type Field struct {
	Name string
	Off  int
	Rule arc.CheckFunc
}

// StructRule checks a composite archived value of the given total size and
// alignment, recursing into each field at its fixed offset.
func StructRule(size, align int, fields ...Field) arc.CheckFunc {
	return func(c arc.Checker, pos arc.Position) error {
		if _, err := c.Window(pos, size, align); err != nil {
			return err
		}
		for _, f := range fields {
			if err := c.Recurse(f.Name, pos+arc.Position(f.Off), f.Rule); err != nil {
				return err
			}
		}
		return nil
	}
}

// AnyRule checks a polymorphic pointer: the identifier must be registered
// and the target must satisfy that type's own layout rule.
func AnyRule(reg *arcpoly.Registry) arc.CheckFunc {
	return func(c arc.Checker, pos arc.Position) error {
		win, err := c.Window(pos, arc.AnyPtrSize, arc.AnyPtrAlign)
		if err != nil {
			return err
		}
		id := arc.TypeID(binary.LittleEndian.Uint64(win[8:16]))
		e, err := reg.Lookup(id)
		if err != nil {
			return fmt.Errorf("%w: %w", c.Fail(pos, "any.unknown-type"), err)
		}
		target, ok, err := c.Deref(pos)
		if err != nil {
			return err
		}
		if !ok {
			return c.Fail(pos, "any.null")
		}
		if e.Check == nil {
			return c.Fail(pos, "any.unverifiable")
		}
		return c.Recurse(e.Name, target, e.Check)
	}
}
