// Package arcpoly adds dynamically typed references to archived buffers.
// Concrete types register implementation descriptors under stable type
// identifiers; archived polymorphic pointers carry the identifier next to a
// relative pointer, and access resolves it back through the registry.
package arcpoly

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rawbytedev/flatarc/pkg/arc"
)

// Entry describes one concrete type participating in polymorphism.
// All functions must be safe for concurrent use once the registry is
// populated.
type Entry struct {
	// Name keys the type; the stable identifier is derived from it alone.
	Name string

	// Serialize archives the concrete value and returns its position.
	Serialize func(w *arc.Writer, v any) (arc.Position, error)

	// Reattach rebuilds the runtime dispatch handle over the archived bytes
	// at pos. The result is typically an interface value the caller asserts
	// to the behavior it expects.
	Reattach func(buf []byte, pos arc.Position) any

	// Deserialize reconstructs an owned value from the archived bytes.
	Deserialize func(buf []byte, pos arc.Position) (any, error)

	// Check validates the type's archived layout; consumed by the
	// structural validator when it meets a polymorphic pointer.
	Check arc.CheckFunc
}

// Registry maps type identifiers to entries. Registration sites stage
// entries in any order; a single explicit Populate pass builds the immutable
// lookup table, after which the registry is read-only and safe for unbounded
// concurrent lookups.
type Registry struct {
	mu        sync.Mutex
	staged    []Entry
	populated atomic.Bool
	entries   map[arc.TypeID]*Entry
	fast      sync.Map // TypeID -> *Entry, memoized lookups
}

// NewRegistry returns an empty, unpopulated registry.
func NewRegistry() *Registry { return &Registry{} }

// Stage queues an entry for the next Populate pass. Staging after the
// registry has been populated is a programming error.
func (r *Registry) Stage(e Entry) error {
	if e.Name == "" {
		return fmt.Errorf("arcpoly: entry with empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.populated.Load() {
		return fmt.Errorf("arcpoly: stage %q after populate", e.Name)
	}
	r.staged = append(r.staged, e)
	return nil
}

// Populate builds the lookup table from every staged entry. It is
// idempotent; the first successful call wins and later calls are no-ops.
// Duplicate identifiers, including distinct names colliding on one hash,
// fail before population completes — never silently overwritten.
func (r *Registry) Populate() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.populated.Load() {
		return nil
	}
	entries := make(map[arc.TypeID]*Entry, len(r.staged))
	for i := range r.staged {
		e := &r.staged[i]
		id := arc.NamedID(e.Name)
		if prev, dup := entries[id]; dup {
			return fmt.Errorf("%w: %q and %q both map to %#x",
				arc.ErrRegistrationConflict, prev.Name, e.Name, uint64(id))
		}
		entries[id] = e
	}
	r.entries = entries
	r.staged = nil
	r.populated.Store(true)
	return nil
}

// Lookup resolves an identifier. The result is memoized; redundant
// concurrent first lookups are idempotent.
func (r *Registry) Lookup(id arc.TypeID) (*Entry, error) {
	if e, ok := r.fast.Load(id); ok {
		return e.(*Entry), nil
	}
	if !r.populated.Load() {
		return nil, fmt.Errorf("arcpoly: lookup before populate")
	}
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %#x", arc.ErrUnknownTypeID, uint64(id))
	}
	r.fast.Store(id, e)
	return e, nil
}

// LookupName resolves a registered type by name.
func (r *Registry) LookupName(name string) (*Entry, error) {
	return r.Lookup(arc.NamedID(name))
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// Stage queues an entry on the process-wide registry.
func Stage(e Entry) error { return defaultRegistry.Stage(e) }

// Populate populates the process-wide registry. Call once, before any
// archiving or access through it.
func Populate() error { return defaultRegistry.Populate() }
