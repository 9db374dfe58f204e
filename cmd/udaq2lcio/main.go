// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command udaq2lcio converts a uDAQ hit buffer file to an LCIO one.
package main // import "github.com/go-lpc/udaq/cmd/udaq2lcio"

import (
	"compress/flate"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-lpc/udaq/hitbuf"
	"github.com/go-lpc/udaq/internal/mmap"
	"github.com/go-lpc/udaq/internal/xcnv"
	"go-hep.org/x/hep/lcio"
)

var (
	msg = log.New(os.Stdout, "udaq2lcio: ", 0)
)

type options struct {
	run      int32
	lvl      int
	freq     int
	tolerant bool
	repair   bool
}

func main() {
	xmain(os.Args[1:])
}

func xmain(args []string) {
	var (
		fset = flag.NewFlagSet("udaq2lcio", flag.ExitOnError)

		oname    = fset.String("o", "out.slcio", "path to output LCIO file")
		compr    = fset.Int("lvl", flate.DefaultCompression, "compression level for output LCIO file")
		run      = fset.Int("run", -1, "run number (default: inferred from input file name)")
		freq     = fset.Int("freq", 1000, "progress report frequency (in hits)")
		tolerant = fset.Bool("tolerant", false, "skip truncated frames and hits with inconsistent channels")
		repair   = fset.Bool("repair", true, "re-insert the 2 bytes lost every 1024 bytes by the readout")
	)

	fset.Usage = func() {
		fmt.Printf(`Usage: udaq2lcio [OPTIONS] file.raw

ex:
 $> udaq2lcio -o out.slcio -lvl=9 ./hitbuffer_0001.raw

options:
`)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		msg.Fatalf("could not parse input arguments: %+v", err)
	}

	if fset.NArg() != 1 {
		fset.Usage()
		msg.Fatalf("missing input hit buffer file")
	}

	if *oname == "" {
		fset.Usage()
		msg.Fatalf("invalid output LCIO file name")
	}

	fname := fset.Arg(0)
	opts := options{
		run:      int32(*run),
		lvl:      *compr,
		freq:     *freq,
		tolerant: *tolerant,
		repair:   *repair,
	}
	if *run < 0 {
		opts.run, err = runNbrFrom(fname)
		if err != nil {
			msg.Fatalf("could not infer run number from %q: %+v", fname, err)
		}
	}

	err = process(*oname, fname, opts)
	if err != nil {
		msg.Fatalf("could not convert hit buffer file: %+v", err)
	}
}

func process(oname, fname string, opts options) error {
	h, err := mmap.Open(fname)
	if err != nil {
		return fmt.Errorf("could not open hit buffer file: %w", err)
	}
	defer h.Close()

	raw := h.Bytes()
	if opts.repair {
		raw = hitbuf.Repair(raw)
	}

	hits, err := hitbuf.Decode(raw, opts.tolerant)
	if err != nil {
		return fmt.Errorf("could not decode hits: %w", err)
	}
	msg.Printf("decoded %d hits from %q", len(hits), fname)

	w, err := lcio.Create(oname)
	if err != nil {
		return fmt.Errorf("could not create output LCIO file: %w", err)
	}
	defer w.Close()

	w.SetCompressionLevel(opts.lvl)

	err = xcnv.Hits2LCIO(w, hits, opts.run, opts.freq, msg)
	if err != nil {
		return fmt.Errorf("could not convert hits to LCIO: %w", err)
	}

	err = w.Close()
	if err != nil {
		return fmt.Errorf("could not close output LCIO file: %w", err)
	}

	return nil
}

func runNbrFrom(fname string) (int32, error) {
	var (
		name = filepath.Base(fname)
		run  int32
	)
	_, err := fmt.Sscanf(name, "hitbuffer_%d.raw", &run)
	return run, err
}
