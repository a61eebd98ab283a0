package common

import (
	"unsafe"
)

// AlignUp rounds n up to the next multiple of a. a must be a power of two.
func AlignUp(n int, a int) int {
	return (n + a - 1) &^ (a - 1)
}

// IsAligned reports whether off is a multiple of a. a must be a power of two.
func IsAligned(off uint64, a int) bool {
	return off&uint64(a-1) == 0
}

// IsPow2 reports whether a is a positive power of two.
func IsPow2(a int) bool {
	return a > 0 && a&(a-1) == 0
}

// UnsafeString aliases b as a string without copying.
// The caller must keep b alive and unmodified for the lifetime of the result.
func UnsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// AliasUint32s aliases b as a []uint32 without copying. Returns false when
// the backing data is misaligned or not a whole number of elements.
func AliasUint32s(b []byte) ([]uint32, bool) {
	if len(b)%4 != 0 {
		return nil, false
	}
	if len(b) == 0 {
		return nil, true
	}
	if uintptr(unsafe.Pointer(&b[0]))%4 != 0 {
		return nil, false
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), len(b)/4), true
}

// AliasUint64s aliases b as a []uint64 without copying. Returns false when
// the backing data is misaligned or not a whole number of elements.
func AliasUint64s(b []byte) ([]uint64, bool) {
	if len(b)%8 != 0 {
		return nil, false
	}
	if len(b) == 0 {
		return nil, true
	}
	if uintptr(unsafe.Pointer(&b[0]))%8 != 0 {
		return nil, false
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(&b[0])), len(b)/8), true
}
