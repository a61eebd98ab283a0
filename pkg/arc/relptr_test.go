package arc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelPtrRoundTrip(t *testing.T) {
	out := make([]byte, PtrSize)
	require.NoError(t, PutRelPtr(out, 0, 100, 40))

	buf := make([]byte, 104)
	copy(buf[100:], out)
	target, ok := DerefRelPtr(buf, 100)
	require.True(t, ok)
	require.Equal(t, Position(40), target)
}

func TestRelPtrFieldOffset(t *testing.T) {
	// pointer cell at here+8 must measure the offset from itself,
	// not from the containing struct
	out := make([]byte, 12)
	require.NoError(t, PutRelPtr(out, 8, 16, 4))

	buf := make([]byte, 28)
	copy(buf[16:], out)
	target, ok := DerefRelPtr(buf, 24)
	require.True(t, ok)
	require.Equal(t, Position(4), target)
}

func TestRelPtrNull(t *testing.T) {
	out := make([]byte, PtrSize)
	PutNullPtr(out, 0)
	_, ok := DerefRelPtr(out, 0)
	require.False(t, ok)
}

func TestRelPtrOverflow(t *testing.T) {
	out := make([]byte, PtrSize)
	err := PutRelPtr(out, 0, Position(uint64(1)<<33), 0)
	require.ErrorIs(t, err, ErrOffsetOverflow)

	// farthest representable backward offset still encodes
	err = PutRelPtr(out, 0, Position(uint64(1)<<31), 0)
	require.NoError(t, err)
}

func TestRelPtrRelocation(t *testing.T) {
	w := NewWriter()
	root, err := Archive(w, Str("relocatable"))
	require.NoError(t, err)
	orig := w.Bytes()

	// a copy lives at a different base address; same offsets must resolve
	moved := make([]byte, len(orig))
	copy(moved, orig)
	assert.Equal(t, ViewStr(orig, root).Deserialize(), ViewStr(moved, root).Deserialize())

	t1, ok1 := DerefRelPtr(orig, root)
	t2, ok2 := DerefRelPtr(moved, root)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, t1, t2)
}

func TestNamedIDStable(t *testing.T) {
	a := NamedID("shape.circle")
	b := NamedID("shape.circle")
	require.Equal(t, a, b)
	require.NotEqual(t, a, NamedID("shape.rect"))
}
