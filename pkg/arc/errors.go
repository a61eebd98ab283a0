package arc

import "errors"

var (
	// ErrOffsetOverflow means a relative pointer target is farther away than
	// the 32-bit offset encoding can represent. Fatal to the archive
	// operation; the writer buffer is undefined until Reset.
	ErrOffsetOverflow = errors.New("relative pointer offset overflow")

	// ErrScratchExhausted means the session's scratch allocator ran out of
	// capacity. The caller may retry with a larger scratch arena.
	ErrScratchExhausted = errors.New("scratch allocator exhausted")

	// ErrUnknownTypeID means a polymorphic type identifier is not present in
	// the registry.
	ErrUnknownTypeID = errors.New("unknown type identifier")

	// ErrRegistrationConflict means two registrations collided on the same
	// type identifier during registry population.
	ErrRegistrationConflict = errors.New("type registration conflict")

	// ErrBadAlign means a requested alignment is not a positive power of two.
	ErrBadAlign = errors.New("alignment must be a power of two")
)
