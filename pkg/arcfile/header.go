// Package arcfile wraps archived buffers in a small container so they can be
// written to disk, shipped, and mapped back without a decode pass. The
// payload is the archived bytes verbatim (optionally zstd-compressed); the
// header carries the root position.
package arcfile

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/rawbytedev/flatarc/pkg/arc"
)

const (
	MagicV1    = 0x43524146 // "FARC"
	VersionV1  = 1
	HeaderSize = 32

	// FlagZstd marks a zstd-compressed payload.
	FlagZstd = 0x0001

	// MaxPayload caps the declared payload length. Relative pointers are
	// 32-bit, so no archived buffer past this size is addressable; a header
	// claiming more is hostile or corrupt, and the cap keeps it from driving
	// allocations before the checksum can catch it.
	MaxPayload = 1 << 31
)

var (
	ErrBadMagic    = errors.New("bad container magic")
	ErrBadVersion  = errors.New("unsupported container version")
	ErrTruncated   = errors.New("container truncated")
	ErrBadChecksum = errors.New("container payload checksum mismatch")
	ErrHugePayload = errors.New("container payload length exceeds limit")
)

// Header is the fixed little-endian container prefix.
type Header struct {
	Magic      uint32
	Version    uint16
	Flags      uint16
	Root       uint64 // root position inside the payload
	PayloadLen uint64 // uncompressed payload length
	Checksum   uint64 // farm hash of the uncompressed payload
}

func encodeHeader(buf []byte, h Header) []byte {
	buf = append(buf, make([]byte, HeaderSize)...)
	binary.LittleEndian.PutUint32(buf[0:], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:], h.Version)
	binary.LittleEndian.PutUint16(buf[6:], h.Flags)
	binary.LittleEndian.PutUint64(buf[8:], h.Root)
	binary.LittleEndian.PutUint64(buf[16:], h.PayloadLen)
	binary.LittleEndian.PutUint64(buf[24:], h.Checksum)
	return buf
}

// ParseHeader reads a container header from buf; zero copy.
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d < %d", ErrTruncated, len(buf), HeaderSize)
	}
	h := Header{
		Magic:      binary.LittleEndian.Uint32(buf[0:]),
		Version:    binary.LittleEndian.Uint16(buf[4:]),
		Flags:      binary.LittleEndian.Uint16(buf[6:]),
		Root:       binary.LittleEndian.Uint64(buf[8:]),
		PayloadLen: binary.LittleEndian.Uint64(buf[16:]),
		Checksum:   binary.LittleEndian.Uint64(buf[24:]),
	}
	if h.Magic != MagicV1 {
		return Header{}, ErrBadMagic
	}
	if h.Version != VersionV1 {
		return Header{}, fmt.Errorf("%w: %d", ErrBadVersion, h.Version)
	}
	if h.PayloadLen > MaxPayload {
		return Header{}, fmt.Errorf("%w: %d > %d", ErrHugePayload, h.PayloadLen, MaxPayload)
	}
	if h.Root > h.PayloadLen {
		return Header{}, fmt.Errorf("root %d beyond payload (%d)", h.Root, h.PayloadLen)
	}
	return h, nil
}

// root positions fit the archived pointer arithmetic by construction; keep
// the compiler honest about the conversion in one place.
func rootPos(h Header) arc.Position { return arc.Position(h.Root) }
