package arcfile

import (
	"fmt"
	"io"
	"os"

	"github.com/dgryski/go-farm"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/sys/unix"

	"github.com/rawbytedev/flatarc/pkg/arc"
)

// SaveOptions control how a container is written.
type SaveOptions struct {
	// Compress stores the payload zstd-compressed. Loading a compressed
	// container decompresses into fresh memory, so it trades zero-copy
	// loading for size.
	Compress bool
}

// Save writes buf and its root position as a container to w.
func Save(w io.Writer, buf []byte, root arc.Position, opts SaveOptions) error {
	h := Header{
		Magic:      MagicV1,
		Version:    VersionV1,
		Root:       uint64(root),
		PayloadLen: uint64(len(buf)),
		Checksum:   farm.Hash64(buf),
	}
	payload := buf
	if opts.Compress {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return err
		}
		payload = enc.EncodeAll(buf, nil)
		h.Flags |= FlagZstd
	}
	if _, err := w.Write(encodeHeader(nil, h)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// Load interprets data as a container and returns the archived buffer and
// root position. Uncompressed payloads alias data; compressed payloads are
// decompressed into new memory. The checksum covers the uncompressed bytes.
func Load(data []byte) ([]byte, arc.Position, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, 0, err
	}
	payload := data[HeaderSize:]
	if h.Flags&FlagZstd != 0 {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxPayload))
		if err != nil {
			return nil, 0, err
		}
		defer dec.Close()
		payload, err = dec.DecodeAll(payload, make([]byte, 0, h.PayloadLen))
		if err != nil {
			return nil, 0, fmt.Errorf("zstd decode: %w", err)
		}
	}
	if uint64(len(payload)) != h.PayloadLen {
		return nil, 0, fmt.Errorf("%w: payload %d != %d", ErrTruncated, len(payload), h.PayloadLen)
	}
	if farm.Hash64(payload) != h.Checksum {
		return nil, 0, ErrBadChecksum
	}
	return payload, rootPos(h), nil
}

// Reader is an opened container file. For uncompressed containers the
// archived bytes alias a read-only memory mapping; relative pointers make
// the mapping address irrelevant.
type Reader struct {
	mapped  []byte
	payload []byte
	root    arc.Position
	header  Header
}

// Open memory-maps a container file read-only.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.Size() < HeaderSize {
		return nil, fmt.Errorf("%w: file %d bytes", ErrTruncated, st.Size())
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	if err := unix.Madvise(data, unix.MADV_RANDOM); err != nil {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("madvise: %w", err)
	}
	payload, root, err := Load(data)
	if err != nil {
		_ = unix.Munmap(data)
		return nil, err
	}
	h, err := ParseHeader(data)
	if err != nil {
		_ = unix.Munmap(data)
		return nil, err
	}
	return &Reader{mapped: data, payload: payload, root: root, header: h}, nil
}

// Bytes returns the archived buffer. It aliases the mapping for
// uncompressed containers and must not be used after Close.
func (r *Reader) Bytes() []byte { return r.payload }

// Root returns the root position recorded in the header.
func (r *Reader) Root() arc.Position { return r.root }

// Header returns the parsed container header.
func (r *Reader) Header() Header { return r.header }

// Close unmaps the file. Views over Bytes become invalid.
func (r *Reader) Close() error {
	if r.mapped == nil {
		return nil
	}
	err := unix.Munmap(r.mapped)
	r.mapped = nil
	r.payload = nil
	return err
}
