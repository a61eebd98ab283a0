// Package flatarc is a zero-copy archiving engine: it converts an in-memory
// value graph into a flat byte buffer whose layout mirrors the archived
// types, so reading back is interpreting bytes at fixed offsets with no
// decode or allocate pass. Pointers inside the buffer are self-relative
// offsets, keeping the buffer valid after it is copied, memory-mapped, or
// relocated.
//
// The engine lives in pkg/arc (two-phase resolver protocol, relative
// pointers, built-in archivable values), pkg/arcpoly (type registry and
// polymorphic pointers), pkg/arccheck (structural validation of untrusted
// buffers) and pkg/arcfile (on-disk container with mmap loading). This
// package is the thin facade over a one-shot session.
package flatarc

import (
	"github.com/rawbytedev/flatarc/pkg/arc"
	"github.com/rawbytedev/flatarc/pkg/arccheck"
)

// Options contains runtime flags controlling zero-copy behaviour.
type Options struct {
	// ZeroCopyStrings returns string views aliasing the archived buffer
	// instead of copying; the caller must keep the buffer alive.
	ZeroCopyStrings bool
}

// Archive runs a one-shot serialization session for v and returns the
// archived buffer together with the root's position.
func Archive(v arc.Archiver) ([]byte, arc.Position, error) {
	w := arc.NewWriter()
	root, err := arc.Archive(w, v)
	if err != nil {
		return nil, 0, err
	}
	return w.Bytes(), root, nil
}

// ArchiveWith is Archive with the session's memory drawn from s, so callers
// can bound what one archive operation may allocate.
func ArchiveWith(s arc.Scratch, v arc.Archiver) ([]byte, arc.Position, error) {
	w, err := arc.NewWriterWith(s)
	if err != nil {
		return nil, 0, err
	}
	root, err := arc.Archive(w, v)
	if err != nil {
		return nil, 0, err
	}
	return w.Bytes(), root, nil
}

// Validate is the sanctioned way to accept an externally sourced buffer:
// it structurally checks buf against the declared layout before any
// unchecked view is taken over it.
func Validate(buf []byte, root arc.Position, rule arc.CheckFunc) error {
	return arccheck.Validate(buf, root, rule)
}

// StringAt reads an archived string under the receiver's copy policy.
func (o Options) StringAt(buf []byte, pos arc.Position) string {
	v := arc.ViewStr(buf, pos)
	if o.ZeroCopyStrings {
		return v.ZeroCopy()
	}
	return v.Deserialize()
}
