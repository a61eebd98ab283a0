package arc

// Checker is the narrow surface a structural validator exposes to per-type
// check rules. Rules see bounds-checked windows and validated pointer
// targets only; the walk bookkeeping (field path, recursion budget) stays
// inside the validator.
type Checker interface {
	// Window verifies [pos, pos+size) lies inside the buffer and pos
	// satisfies align, returning the region on success.
	Window(pos Position, size, align int) ([]byte, error)

	// Deref validates the relative pointer cell at ptrPos and returns its
	// target. ok is false for the null encoding. Targets must precede the
	// pointer; forward pointers are rejected.
	Deref(ptrPos Position) (target Position, ok bool, err error)

	// Recurse validates a nested layout at pos under rule, tracking the
	// field path segment and charging the recursion budget.
	Recurse(field string, pos Position, rule CheckFunc) error

	// Fail reports a structural violation of the named rule at pos.
	Fail(pos Position, rule string) error
}

// CheckFunc validates one archived layout at pos.
type CheckFunc func(c Checker, pos Position) error
