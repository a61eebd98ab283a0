package flatarc_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/flatarc"
	"github.com/rawbytedev/flatarc/pkg/arc"
	"github.com/rawbytedev/flatarc/pkg/arccheck"
)

// person is a hand-written composite archiver: {name at 0, age u32 at 8},
// 12 bytes, align 4. Generated archivers for user structs follow the same
// shape.
type person struct {
	name string
	age  uint32
}

func (p person) ArchivedSize() int  { return 12 }
func (p person) ArchivedAlign() int { return 4 }

func (p person) Serialize(w *arc.Writer) (arc.Resolver, error) {
	nameRes, err := arc.Str(p.name).Serialize(w)
	if err != nil {
		return nil, err
	}
	return arc.ResolverFunc(func(here arc.Position, out []byte) error {
		if err := nameRes.Resolve(here, out[0:8]); err != nil {
			return err
		}
		binary.LittleEndian.PutUint32(out[8:12], p.age)
		return nil
	}), nil
}

var personRule = arccheck.StructRule(12, 4,
	arccheck.Field{Name: "name", Off: 0, Rule: arccheck.StrRule},
	arccheck.Field{Name: "age", Off: 8, Rule: arccheck.U32Rule},
)

// personView reads a person straight out of archived bytes.
type personView struct {
	buf []byte
	pos arc.Position
}

func (v personView) Name() arc.StrView { return arc.ViewStr(v.buf, v.pos) }
func (v personView) Age() uint32       { return arc.Uint32At(v.buf, v.pos+8) }

func TestArchiveAndAccess(t *testing.T) {
	buf, root, err := flatarc.Archive(person{name: "gopher", age: 14})
	require.NoError(t, err)

	require.NoError(t, flatarc.Validate(buf, root, personRule))

	v := personView{buf: buf, pos: root}
	require.Equal(t, "gopher", v.Name().Deserialize())
	require.Equal(t, uint32(14), v.Age())
}

func TestArchiveWithBoundedScratch(t *testing.T) {
	_, _, err := flatarc.ArchiveWith(arc.NewFixedScratch(64), person{name: "x"})
	require.ErrorIs(t, err, arc.ErrScratchExhausted)

	buf, root, err := flatarc.ArchiveWith(arc.NewFixedScratch(4096), person{name: "x", age: 1})
	require.NoError(t, err)
	require.NoError(t, flatarc.Validate(buf, root, personRule))
	require.Equal(t, uint32(1), personView{buf: buf, pos: root}.Age())
}

func TestValidateRejectsCorruption(t *testing.T) {
	buf, root, err := flatarc.Archive(person{name: "gopher", age: 14})
	require.NoError(t, err)

	binary.LittleEndian.PutUint32(buf[root+4:], 1<<24) // absurd name length
	err = flatarc.Validate(buf, root, personRule)
	var verr *arccheck.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestOptionsStringAt(t *testing.T) {
	buf, root, err := flatarc.Archive(arc.Str("both policies agree"))
	require.NoError(t, err)

	copying := flatarc.Options{}
	aliasing := flatarc.Options{ZeroCopyStrings: true}
	require.Equal(t, "both policies agree", copying.StringAt(buf, root))
	require.Equal(t, "both policies agree", aliasing.StringAt(buf, root))
}
