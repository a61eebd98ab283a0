package arc

import (
	"bytes"
	"sort"

	"github.com/rawbytedev/flatarc/internal/common"
)

// Dict archives a string-keyed map as a key-sorted entry array behind a wide
// pointer. Each entry is a key wide pointer followed by the value's archived
// form inline, so lookups binary-search the archived bytes directly with no
// decode pass.
type Dict[T Archiver] map[string]T

// DictLayout computes the entry geometry for a value size/alignment. The
// validator needs the same arithmetic, so it is part of the layout contract.
func DictLayout(valSize, valAlign int) (valOff, entrySize, entryAlign int) {
	entryAlign = WidePtrAlign
	if valAlign > entryAlign {
		entryAlign = valAlign
	}
	valOff = common.AlignUp(WidePtrSize, valAlign)
	entrySize = common.AlignUp(valOff+valSize, entryAlign)
	return valOff, entrySize, entryAlign
}

func (d Dict[T]) ArchivedSize() int  { return WidePtrSize }
func (d Dict[T]) ArchivedAlign() int { return WidePtrAlign }

func (d Dict[T]) Serialize(w *Writer) (Resolver, error) {
	if len(d) == 0 {
		return ResolverFunc(func(here Position, out []byte) error {
			return PutWidePtr(out, 0, here, 0, 0)
		}), nil
	}
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var valSize, valAlign int
	keyRes := make([]Resolver, len(keys))
	valRes := make([]Resolver, len(keys))
	for i, k := range keys {
		kr, err := Str(k).Serialize(w)
		if err != nil {
			return nil, err
		}
		keyRes[i] = kr
		val := d[k]
		vr, err := val.Serialize(w)
		if err != nil {
			return nil, err
		}
		valRes[i] = vr
		valSize, valAlign = val.ArchivedSize(), val.ArchivedAlign()
	}

	valOff, entrySize, entryAlign := DictLayout(valSize, valAlign)
	if err := w.Align(entryAlign); err != nil {
		return nil, err
	}
	base, win, err := w.Reserve(entrySize * len(keys))
	if err != nil {
		return nil, err
	}
	for i := range keys {
		off := i * entrySize
		entryPos := base + Position(off)
		if err := keyRes[i].Resolve(entryPos, win[off:off+WidePtrSize]); err != nil {
			return nil, err
		}
		if err := valRes[i].Resolve(entryPos+Position(valOff), win[off+valOff:off+valOff+valSize]); err != nil {
			return nil, err
		}
	}
	n := len(keys)
	return ResolverFunc(func(here Position, out []byte) error {
		return PutWidePtr(out, 0, here, base, n)
	}), nil
}

// DictView interprets a wide pointer at pos as an archived dictionary whose
// values have the given size and alignment.
type DictView struct {
	buf     []byte
	pos     Position
	valOff  int
	valSize int
	entrySz int
}

func ViewDict(buf []byte, pos Position, valSize, valAlign int) DictView {
	valOff, entrySize, _ := DictLayout(valSize, valAlign)
	return DictView{buf: buf, pos: pos, valOff: valOff, valSize: valSize, entrySz: entrySize}
}

func (v DictView) Len() int { return int(Uint32At(v.buf, v.pos+4)) }

func (v DictView) entry(i int) Position {
	base, _ := DerefRelPtr(v.buf, v.pos)
	return base + Position(i*v.entrySz)
}

// KeyAt returns the i-th key in sorted order.
func (v DictView) KeyAt(i int) StrView { return ViewStr(v.buf, v.entry(i)) }

// ValAt returns the position of the i-th value in sorted order.
func (v DictView) ValAt(i int) Position { return v.entry(i) + Position(v.valOff) }

// Get binary-searches the sorted entries for key. ok is false on a miss.
func (v DictView) Get(key string) (Position, bool) {
	want := []byte(key)
	lo, hi := 0, v.Len()
	for lo < hi {
		mid := (lo + hi) / 2
		switch bytes.Compare(v.KeyAt(mid).Bytes(), want) {
		case 0:
			return v.ValAt(mid), true
		case -1:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return 0, false
}
