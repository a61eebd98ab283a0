package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlignUp(t *testing.T) {
	assert.Equal(t, 0, AlignUp(0, 8))
	assert.Equal(t, 8, AlignUp(1, 8))
	assert.Equal(t, 8, AlignUp(8, 8))
	assert.Equal(t, 12, AlignUp(9, 4))
	assert.Equal(t, 5, AlignUp(5, 1))
}

func TestIsAligned(t *testing.T) {
	assert.True(t, IsAligned(0, 8))
	assert.True(t, IsAligned(16, 8))
	assert.False(t, IsAligned(12, 8))
	assert.True(t, IsAligned(12, 4))
}

func TestIsPow2(t *testing.T) {
	for _, a := range []int{1, 2, 4, 8, 1 << 20} {
		assert.True(t, IsPow2(a), a)
	}
	for _, a := range []int{0, -1, 3, 6, 12} {
		assert.False(t, IsPow2(a), a)
	}
}

func TestUnsafeString(t *testing.T) {
	b := []byte("alias me")
	require.Equal(t, "alias me", UnsafeString(b))
	require.Equal(t, "", UnsafeString(nil))
}

func TestAliasUint32s(t *testing.T) {
	vals, ok := AliasUint32s(nil)
	require.True(t, ok)
	require.Nil(t, vals)

	_, ok = AliasUint32s(make([]byte, 7))
	require.False(t, ok)

	b := []byte{1, 0, 0, 0, 2, 0, 0, 0}
	vals, ok = AliasUint32s(b)
	if !ok {
		t.Skip("allocation misaligned")
	}
	require.Equal(t, []uint32{1, 2}, vals)
}

func TestAliasUint64s(t *testing.T) {
	_, ok := AliasUint64s(make([]byte, 12))
	require.False(t, ok)

	b := make([]byte, 16)
	b[0] = 9
	vals, ok := AliasUint64s(b)
	if !ok {
		t.Skip("allocation misaligned")
	}
	require.Equal(t, []uint64{9, 0}, vals)
}
