// Package arccheck proves a raw byte buffer is safe to interpret as a
// declared archived type before any unchecked access happens. It walks the
// declared layout only: bounds, alignment, relative-pointer targets, and
// registry membership for polymorphic pointers. Accepting a buffer any other
// way is out of contract for untrusted input.
package arccheck

import (
	"fmt"
	"strings"

	"github.com/rawbytedev/flatarc/internal/common"
	"github.com/rawbytedev/flatarc/pkg/arc"
)

// ValidationError identifies the offending position, the rule violated, and
// the field path leading to it. A buffer failing validation is rejected
// wholesale; there is no partial acceptance.
type ValidationError struct {
	Pos  arc.Position
	Rule string
	Path string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed at %d: rule %q violated (path %s)", e.Pos, e.Rule, e.Path)
}

// DefaultMaxDepth bounds recursion through nested pointers. Archived
// pointers always point strictly backward, so cycles cannot occur in
// accepted buffers; the cap keeps adversarial deep chains from exhausting
// the stack.
const DefaultMaxDepth = 64

// Option adjusts a validation walk.
type Option func(*walker)

// MaxDepth overrides the recursion budget.
func MaxDepth(n int) Option {
	return func(w *walker) { w.maxDepth = n }
}

// Validate structurally checks buf as the layout described by rule, rooted
// at root. On success the buffer is safe to interpret as that type through
// the unchecked accessors; on failure it must be rejected.
func Validate(buf []byte, root arc.Position, rule arc.CheckFunc, opts ...Option) error {
	w := &walker{buf: buf, maxDepth: DefaultMaxDepth, path: []string{"root"}}
	for _, o := range opts {
		o(w)
	}
	return rule(w, root)
}

type walker struct {
	buf      []byte
	path     []string
	depth    int
	maxDepth int
}

var _ arc.Checker = (*walker)(nil)

func (w *walker) Window(pos arc.Position, size, align int) ([]byte, error) {
	if size < 0 || uint64(pos) > uint64(len(w.buf)) || uint64(size) > uint64(len(w.buf))-uint64(pos) {
		return nil, w.Fail(pos, "bounds")
	}
	if !common.IsPow2(align) || !common.IsAligned(uint64(pos), align) {
		return nil, w.Fail(pos, "align")
	}
	return w.buf[pos : uint64(pos)+uint64(size)], nil
}

func (w *walker) Deref(ptrPos arc.Position) (arc.Position, bool, error) {
	if _, err := w.Window(ptrPos, arc.PtrSize, arc.PtrAlign); err != nil {
		return 0, false, err
	}
	target, ok := arc.DerefRelPtr(w.buf, ptrPos)
	if !ok {
		return 0, false, nil
	}
	// Producers lay children out strictly before parents; a forward or
	// self-referential pointer can only come from corruption.
	if target >= ptrPos {
		return 0, false, w.Fail(ptrPos, "ptr.forward")
	}
	return target, true, nil
}

func (w *walker) Recurse(field string, pos arc.Position, rule arc.CheckFunc) error {
	if w.depth >= w.maxDepth {
		return w.Fail(pos, "depth")
	}
	w.depth++
	w.path = append(w.path, field)
	err := rule(w, pos)
	w.path = w.path[:len(w.path)-1]
	w.depth--
	return err
}

func (w *walker) Fail(pos arc.Position, rule string) error {
	return &ValidationError{Pos: pos, Rule: rule, Path: strings.Join(w.path, "/")}
}
