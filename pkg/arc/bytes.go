package arc

import (
	"github.com/rawbytedev/flatarc/internal/common"
)

// Str archives a string as out-of-line bytes behind a wide pointer
// {rel i32, len u32}. The empty string archives as a null pointer.
type Str string

func (s Str) ArchivedSize() int  { return WidePtrSize }
func (s Str) ArchivedAlign() int { return WidePtrAlign }

func (s Str) Serialize(w *Writer) (Resolver, error) {
	var pos Position
	if len(s) > 0 {
		var err error
		if pos, err = w.Write([]byte(s)); err != nil {
			return nil, err
		}
	}
	n := len(s)
	return ResolverFunc(func(here Position, out []byte) error {
		return PutWidePtr(out, 0, here, pos, n)
	}), nil
}

// Raw archives a byte slice the same way as Str.
type Raw []byte

func (r Raw) ArchivedSize() int  { return WidePtrSize }
func (r Raw) ArchivedAlign() int { return WidePtrAlign }

func (r Raw) Serialize(w *Writer) (Resolver, error) {
	var pos Position
	if len(r) > 0 {
		var err error
		if pos, err = w.Write(r); err != nil {
			return nil, err
		}
	}
	n := len(r)
	return ResolverFunc(func(here Position, out []byte) error {
		return PutWidePtr(out, 0, here, pos, n)
	}), nil
}

// StrView interprets a wide pointer at pos as archived string data.
type StrView struct {
	buf []byte
	pos Position
}

func ViewStr(buf []byte, pos Position) StrView { return StrView{buf: buf, pos: pos} }

func (v StrView) Len() int { return int(Uint32At(v.buf, v.pos+4)) }

// Bytes returns the string data aliasing the archived buffer.
func (v StrView) Bytes() []byte {
	target, ok := DerefRelPtr(v.buf, v.pos)
	if !ok {
		return nil
	}
	return v.buf[target : int(target)+v.Len()]
}

// Deserialize reconstructs an owned string.
func (v StrView) Deserialize() string { return string(v.Bytes()) }

// ZeroCopy returns a string aliasing the archived buffer without copying.
// The buffer must outlive the result and stay unmodified.
func (v StrView) ZeroCopy() string { return common.UnsafeString(v.Bytes()) }

// RawView interprets a wide pointer at pos as archived byte-slice data.
type RawView struct {
	buf []byte
	pos Position
}

func ViewRaw(buf []byte, pos Position) RawView { return RawView{buf: buf, pos: pos} }

func (v RawView) Len() int { return int(Uint32At(v.buf, v.pos+4)) }

// Bytes returns the data aliasing the archived buffer.
func (v RawView) Bytes() []byte {
	target, ok := DerefRelPtr(v.buf, v.pos)
	if !ok {
		return nil
	}
	return v.buf[target : int(target)+v.Len()]
}

// Deserialize reconstructs an owned copy of the data.
func (v RawView) Deserialize() []byte {
	b := v.Bytes()
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
