// Command flatarc packs sample archives and inspects container files.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/rawbytedev/flatarc/pkg/arc"
	"github.com/rawbytedev/flatarc/pkg/arcfile"
)

func main() {
	compress := flag.Bool("zstd", false, "compress the payload when packing")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] pack <file> | info <file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(2)
	}
	var err error
	switch args[0] {
	case "pack":
		err = pack(log, args[1], *compress)
	case "info":
		err = info(log, args[1])
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error("command failed", "cmd", args[0], "err", err)
		os.Exit(1)
	}
}

// pack archives a small sample document so there is always a container handy
// to point the other commands at.
func pack(log *slog.Logger, path string, compress bool) error {
	w := arc.NewWriter()
	root, err := arc.Archive(w, arc.Dict[arc.Str]{
		"name":    "flatarc",
		"purpose": "zero-copy archive demo",
	})
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := arcfile.Save(f, w.Bytes(), root, arcfile.SaveOptions{Compress: compress}); err != nil {
		return err
	}
	log.Info("packed", "path", path, "bytes", len(w.Bytes()), "root", uint64(root), "zstd", compress)
	return nil
}

func info(log *slog.Logger, path string) error {
	r, err := arcfile.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	h := r.Header()
	log.Info("container",
		"path", path,
		"version", h.Version,
		"zstd", h.Flags&arcfile.FlagZstd != 0,
		"root", h.Root,
		"payload_bytes", h.PayloadLen,
		"checksum", fmt.Sprintf("%#x", h.Checksum),
	)
	return nil
}
