package arc

import (
	"encoding/binary"
	"math"
)

// Fixed-width primitives archive as their little-endian byte image with
// natural alignment. They own no children, so their serialize phase is empty
// and the resolver does all the work.

type (
	Bool bool
	U8   uint8
	U16  uint16
	U32  uint32
	U64  uint64
	I8   int8
	I16  int16
	I32  int32
	I64  int64
	F32  float32
	F64  float64
)

func (v Bool) ArchivedSize() int  { return 1 }
func (v Bool) ArchivedAlign() int { return 1 }
func (v Bool) Serialize(w *Writer) (Resolver, error) {
	return ResolverFunc(func(_ Position, out []byte) error {
		out[0] = 0
		if v {
			out[0] = 1
		}
		return nil
	}), nil
}

func (v U8) ArchivedSize() int  { return 1 }
func (v U8) ArchivedAlign() int { return 1 }
func (v U8) Serialize(w *Writer) (Resolver, error) {
	return ResolverFunc(func(_ Position, out []byte) error {
		out[0] = byte(v)
		return nil
	}), nil
}

func (v U16) ArchivedSize() int  { return 2 }
func (v U16) ArchivedAlign() int { return 2 }
func (v U16) Serialize(w *Writer) (Resolver, error) {
	return ResolverFunc(func(_ Position, out []byte) error {
		binary.LittleEndian.PutUint16(out, uint16(v))
		return nil
	}), nil
}

func (v U32) ArchivedSize() int  { return 4 }
func (v U32) ArchivedAlign() int { return 4 }
func (v U32) Serialize(w *Writer) (Resolver, error) {
	return ResolverFunc(func(_ Position, out []byte) error {
		binary.LittleEndian.PutUint32(out, uint32(v))
		return nil
	}), nil
}

func (v U64) ArchivedSize() int  { return 8 }
func (v U64) ArchivedAlign() int { return 8 }
func (v U64) Serialize(w *Writer) (Resolver, error) {
	return ResolverFunc(func(_ Position, out []byte) error {
		binary.LittleEndian.PutUint64(out, uint64(v))
		return nil
	}), nil
}

func (v I8) ArchivedSize() int  { return 1 }
func (v I8) ArchivedAlign() int { return 1 }
func (v I8) Serialize(w *Writer) (Resolver, error) {
	return ResolverFunc(func(_ Position, out []byte) error {
		out[0] = byte(v)
		return nil
	}), nil
}

func (v I16) ArchivedSize() int  { return 2 }
func (v I16) ArchivedAlign() int { return 2 }
func (v I16) Serialize(w *Writer) (Resolver, error) {
	return U16(v).Serialize(w)
}

func (v I32) ArchivedSize() int  { return 4 }
func (v I32) ArchivedAlign() int { return 4 }
func (v I32) Serialize(w *Writer) (Resolver, error) {
	return U32(v).Serialize(w)
}

func (v I64) ArchivedSize() int  { return 8 }
func (v I64) ArchivedAlign() int { return 8 }
func (v I64) Serialize(w *Writer) (Resolver, error) {
	return U64(v).Serialize(w)
}

func (v F32) ArchivedSize() int  { return 4 }
func (v F32) ArchivedAlign() int { return 4 }
func (v F32) Serialize(w *Writer) (Resolver, error) {
	return U32(math.Float32bits(float32(v))).Serialize(w)
}

func (v F64) ArchivedSize() int  { return 8 }
func (v F64) ArchivedAlign() int { return 8 }
func (v F64) Serialize(w *Writer) (Resolver, error) {
	return U64(math.Float64bits(float64(v))).Serialize(w)
}

// Unchecked primitive accessors. The caller asserts the buffer came from a
// matching archiving session or has passed validation.

func BoolAt(buf []byte, pos Position) bool  { return buf[pos] != 0 }
func Uint8At(buf []byte, pos Position) byte { return buf[pos] }
func Uint16At(buf []byte, pos Position) uint16 {
	return binary.LittleEndian.Uint16(buf[pos:])
}
func Uint32At(buf []byte, pos Position) uint32 {
	return binary.LittleEndian.Uint32(buf[pos:])
}
func Uint64At(buf []byte, pos Position) uint64 {
	return binary.LittleEndian.Uint64(buf[pos:])
}
func Int8At(buf []byte, pos Position) int8   { return int8(buf[pos]) }
func Int16At(buf []byte, pos Position) int16 { return int16(Uint16At(buf, pos)) }
func Int32At(buf []byte, pos Position) int32 { return int32(Uint32At(buf, pos)) }
func Int64At(buf []byte, pos Position) int64 { return int64(Uint64At(buf, pos)) }
func Float32At(buf []byte, pos Position) float32 {
	return math.Float32frombits(Uint32At(buf, pos))
}
func Float64At(buf []byte, pos Position) float64 {
	return math.Float64frombits(Uint64At(buf, pos))
}
