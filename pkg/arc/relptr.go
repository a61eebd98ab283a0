package arc

import (
	"encoding/binary"

	"github.com/dgryski/go-farm"
)

// Archived pointer widths. A relative pointer is a 32-bit two's-complement
// self-relative offset; an offset of zero is the null encoding, since no
// pointer ever targets its own cell.
const (
	PtrSize  = 4
	PtrAlign = 4

	// WidePtrSize is a pointer to unsized data: {rel i32, len u32}.
	WidePtrSize  = 8
	WidePtrAlign = 4

	// AnyPtrSize is a polymorphic pointer: {rel i32, pad u32, TypeID u64}.
	AnyPtrSize  = 16
	AnyPtrAlign = 8
)

// TypeID names a concrete type inside the polymorphic system. It is derived
// from the registered type name alone, so the same source type produces the
// same identifier across processes and runs.
type TypeID uint64

// NamedID derives the stable identifier for a registered type name.
func NamedID(name string) TypeID {
	return TypeID(farm.Hash64([]byte(name)))
}

// PutRelPtr encodes a relative pointer at out[fieldOff:]. here is the
// position out[0] will occupy in the final buffer, so the pointer cell
// itself sits at here+fieldOff and the stored offset is target minus that.
func PutRelPtr(out []byte, fieldOff int, here Position, target Position) error {
	ptrPos := int64(here) + int64(fieldOff)
	off := int64(target) - ptrPos
	if off < -(1<<31) || off >= 1<<31 || off == 0 {
		return ErrOffsetOverflow
	}
	binary.LittleEndian.PutUint32(out[fieldOff:], uint32(int32(off)))
	return nil
}

// PutNullPtr encodes the null relative pointer at out[fieldOff:].
func PutNullPtr(out []byte, fieldOff int) {
	binary.LittleEndian.PutUint32(out[fieldOff:], 0)
}

// DerefRelPtr resolves the relative pointer stored at ptrPos. Only the
// pointer's own position is needed; the buffer may live at any base address.
// ok is false for the null encoding.
func DerefRelPtr(buf []byte, ptrPos Position) (target Position, ok bool) {
	off := int32(binary.LittleEndian.Uint32(buf[ptrPos:]))
	if off == 0 {
		return 0, false
	}
	return Position(int64(ptrPos) + int64(off)), true
}

// PutWidePtr encodes an unsized-data pointer {rel, len} at out[fieldOff:].
// A zero-length target is stored as null.
func PutWidePtr(out []byte, fieldOff int, here Position, target Position, length int) error {
	if length == 0 {
		PutNullPtr(out, fieldOff)
	} else if err := PutRelPtr(out, fieldOff, here, target); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(out[fieldOff+4:], uint32(length))
	return nil
}

// PutAnyPtr encodes a polymorphic pointer {rel, pad, id} at out[fieldOff:].
func PutAnyPtr(out []byte, fieldOff int, here Position, target Position, id TypeID) error {
	if err := PutRelPtr(out, fieldOff, here, target); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(out[fieldOff+4:], 0)
	binary.LittleEndian.PutUint64(out[fieldOff+8:], uint64(id))
	return nil
}
