package arc

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func archive(t *testing.T, v Archiver) ([]byte, Position) {
	t.Helper()
	w := NewWriter()
	root, err := Archive(w, v)
	require.NoError(t, err)
	return w.Bytes(), root
}

func TestArchiveIntRoot(t *testing.T) {
	// a primitive root archives as exactly its own width
	buf, root := archive(t, U32(42))
	require.Len(t, buf, 4)
	require.Equal(t, Position(0), root)
	require.Equal(t, uint32(42), Uint32At(buf, root))
}

func TestArchivePrimitiveWidths(t *testing.T) {
	cases := []struct {
		v    Archiver
		size int
	}{
		{Bool(true), 1}, {U8(7), 1}, {U16(7), 2}, {U32(7), 4}, {U64(7), 8},
		{I8(-7), 1}, {I16(-7), 2}, {I32(-7), 4}, {I64(-7), 8},
		{F32(1.5), 4}, {F64(1.5), 8},
	}
	for _, c := range cases {
		buf, _ := archive(t, c.v)
		assert.Len(t, buf, c.size)
	}
}

func TestArchivePrimitiveRoundTrip(t *testing.T) {
	buf, root := archive(t, I64(-12345))
	require.Equal(t, int64(-12345), Int64At(buf, root))

	buf, root = archive(t, F64(3.25))
	require.Equal(t, 3.25, Float64At(buf, root))

	buf, root = archive(t, Bool(true))
	require.True(t, BoolAt(buf, root))
}

func TestArchiveSequenceLayout(t *testing.T) {
	buf, root := archive(t, Seq[U32]{1, 2, 3})

	// three elements at increasing positions, then the descriptor
	require.Len(t, buf, 20)
	require.Equal(t, Position(12), root)
	require.Equal(t, uint32(1), Uint32At(buf, 0))
	require.Equal(t, uint32(2), Uint32At(buf, 4))
	require.Equal(t, uint32(3), Uint32At(buf, 8))

	v := ViewSeq(buf, root, 4)
	require.Equal(t, 3, v.Len())
	base, ok := v.Base()
	require.True(t, ok)
	require.Equal(t, Position(0), base)
	for i := 0; i < 3; i++ {
		assert.Equal(t, uint32(i+1), Uint32At(buf, v.At(i)))
	}

	// children-before-parents: the pointer target precedes the pointer
	require.Less(t, base, root)
}

func TestArchiveEmptySequence(t *testing.T) {
	buf, root := archive(t, Seq[U32]{})
	v := ViewSeq(buf, root, 4)
	require.Equal(t, 0, v.Len())
	_, ok := v.Base()
	require.False(t, ok)
	require.Nil(t, SeqValues(buf, root, 4, Uint32At))
}

func TestSeqValues(t *testing.T) {
	buf, root := archive(t, Seq[U64]{10, 20, 30})
	require.Equal(t, []uint64{10, 20, 30}, SeqValues(buf, root, 8, Uint64At))
}

func TestSeqAlias(t *testing.T) {
	buf, root := archive(t, Seq[U32]{5, 6})
	vals, ok := ViewSeq(buf, root, 4).AliasUint32s()
	if !ok {
		t.Skip("buffer backing misaligned on this allocation")
	}
	require.Equal(t, []uint32{5, 6}, vals)
}

func TestArchiveStringRoundTrip(t *testing.T) {
	buf, root := archive(t, Str("hello archive"))
	v := ViewStr(buf, root)
	require.Equal(t, 13, v.Len())
	require.Equal(t, "hello archive", v.Deserialize())
	require.Equal(t, "hello archive", v.ZeroCopy())
}

func TestArchiveEmptyString(t *testing.T) {
	buf, root := archive(t, Str(""))
	v := ViewStr(buf, root)
	require.Equal(t, 0, v.Len())
	require.Equal(t, "", v.Deserialize())
}

func TestArchiveRawRoundTrip(t *testing.T) {
	data := []byte{0, 1, 2, 255}
	buf, root := archive(t, Raw(data))
	require.Equal(t, data, ViewRaw(buf, root).Deserialize())

	buf, root = archive(t, Raw(nil))
	require.Nil(t, ViewRaw(buf, root).Deserialize())
}

func TestArchiveOption(t *testing.T) {
	buf, root := archive(t, Option{Value: U32(99)})
	target, ok := ViewOption(buf, root)
	require.True(t, ok)
	require.Equal(t, uint32(99), Uint32At(buf, target))

	buf, root = archive(t, Option{})
	_, ok = ViewOption(buf, root)
	require.False(t, ok)
}

func TestArchiveDict(t *testing.T) {
	buf, root := archive(t, Dict[U32]{"alpha": 1, "beta": 2, "gamma": 3})
	v := ViewDict(buf, root, 4, 4)
	require.Equal(t, 3, v.Len())

	// sorted order
	require.Equal(t, "alpha", v.KeyAt(0).Deserialize())
	require.Equal(t, "beta", v.KeyAt(1).Deserialize())
	require.Equal(t, "gamma", v.KeyAt(2).Deserialize())

	for want, k := range map[uint32]string{1: "alpha", 2: "beta", 3: "gamma"} {
		pos, ok := v.Get(k)
		require.True(t, ok, k)
		require.Equal(t, want, Uint32At(buf, pos))
	}
	_, ok := v.Get("delta")
	require.False(t, ok)
}

func TestArchiveEmptyDict(t *testing.T) {
	buf, root := archive(t, Dict[U32]{})
	v := ViewDict(buf, root, 4, 4)
	require.Equal(t, 0, v.Len())
	_, ok := v.Get("anything")
	require.False(t, ok)
}

func TestDictStringValues(t *testing.T) {
	buf, root := archive(t, Dict[Str]{"name": "gopher", "role": "mascot"})
	v := ViewDict(buf, root, WidePtrSize, WidePtrAlign)
	pos, ok := v.Get("role")
	require.True(t, ok)
	require.Equal(t, "mascot", ViewStr(buf, pos).Deserialize())
}

func TestStringSeqRoundTrip(t *testing.T) {
	in := []string{"ab", "", "longer string value"}
	s := make(Seq[Str], len(in))
	for i, x := range in {
		s[i] = Str(x)
	}
	buf, root := archive(t, s)
	out := SeqValues(buf, root, WidePtrSize, func(b []byte, p Position) string {
		return ViewStr(b, p).Deserialize()
	})
	require.Equal(t, in, out)
}

func TestQuickU64RoundTrip(t *testing.T) {
	condition := func(x uint64) bool {
		buf, root := archive(t, U64(x))
		return Uint64At(buf, root) == x
	}
	if err := quick.Check(condition, &quick.Config{}); err != nil {
		t.Errorf("Error: %v", err)
	}
}

func TestQuickStringRoundTrip(t *testing.T) {
	condition := func(s string) bool {
		buf, root := archive(t, Str(s))
		return ViewStr(buf, root).Deserialize() == s
	}
	if err := quick.Check(condition, &quick.Config{}); err != nil {
		t.Errorf("Error: %v", err)
	}
}
