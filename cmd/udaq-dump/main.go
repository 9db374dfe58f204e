// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// udaq-dump decodes and displays uDAQ hit buffer files.
//
// Usage: udaq-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]
//
// Example:
//
//	$> udaq-dump ./testdata/hitbuffer_0001.raw
//	=== hitbuffer_0001.raw ===
//	Hits:              2
//	  year=2024 time=   1000000003472 tot=  50 cpu=1 adcs=[0:10 1:20]
//	  year=2024 time=   1000000006944 tot=  51 cpu=1 adcs=[0:11 1:21]
package main // import "github.com/go-lpc/udaq/cmd/udaq-dump"

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-lpc/udaq/hitbuf"
	"github.com/go-lpc/udaq/internal/mmap"
	"golang.org/x/sync/errgroup"
)

const usage = `udaq-dump decodes and displays uDAQ hit buffer files.

Usage: udaq-dump [OPTIONS] FILE1 [FILE2 [FILE3 ...]]

Example:

 $> udaq-dump ./testdata/hitbuffer_0001.raw
 === hitbuffer_0001.raw ===
 Hits:              2
   year=2024 time=   1000000003472 tot=  50 cpu=1 adcs=[0:10 1:20]
   year=2024 time=   1000000006944 tot=  51 cpu=1 adcs=[0:11 1:21]

options:
`

type options struct {
	tolerant bool // skip truncated frames and inconsistent hits
	repair   bool // re-insert bytes lost by the readout
	frames   bool // display frames instead of hits
}

func main() {
	xmain(os.Stdout, os.Args[1:])
}

func xmain(w io.Writer, args []string) {
	log.SetPrefix("udaq-dump: ")
	log.SetFlags(0)

	var (
		fset = flag.NewFlagSet("udaq-dump", flag.ExitOnError)

		tolerant = fset.Bool("tolerant", false, "skip truncated frames and hits with inconsistent channels")
		repair   = fset.Bool("repair", true, "re-insert the 2 bytes lost every 1024 bytes by the readout")
		frames   = fset.Bool("frames", false, "display decoded frames instead of hits")
		njobs    = fset.Int("j", runtime.NumCPU(), "number of files decoded concurrently")
	)

	fset.Usage = func() {
		fmt.Print(usage)
		fset.PrintDefaults()
	}

	err := fset.Parse(args)
	if err != nil {
		log.Fatalf("could not parse input arguments: %+v", err)
	}

	if fset.NArg() == 0 {
		fset.Usage()
		log.Fatalf("missing path to input hit buffer file")
	}

	opts := options{
		tolerant: *tolerant,
		repair:   *repair,
		frames:   *frames,
	}

	err = run(w, fset.Args(), *njobs, opts)
	if err != nil {
		log.Fatalf("%+v", err)
	}
}

// run decodes all files concurrently and displays them in order.
func run(w io.Writer, fnames []string, njobs int, opts options) error {
	if njobs <= 0 {
		njobs = 1
	}

	var (
		grp  errgroup.Group
		outs = make([]bytes.Buffer, len(fnames))
	)
	grp.SetLimit(njobs)

	for i := range fnames {
		var (
			fname = fnames[i]
			out   = &outs[i]
		)
		grp.Go(func() error {
			err := process(out, fname, opts)
			if err != nil {
				return fmt.Errorf("could not dump file %q: %w", fname, err)
			}
			return nil
		})
	}

	err := grp.Wait()
	if err != nil {
		return err
	}

	for i := range outs {
		_, err = outs[i].WriteTo(w)
		if err != nil {
			return fmt.Errorf("could not write output: %w", err)
		}
	}

	return nil
}

func process(w io.Writer, fname string, opts options) error {
	wbuf := bufio.NewWriter(w)
	defer wbuf.Flush()

	h, err := mmap.Open(fname)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", fname, err)
	}
	defer h.Close()

	raw := h.Bytes()
	if opts.repair {
		raw = hitbuf.Repair(raw)
	}

	fmt.Fprintf(wbuf, "=== %s ===\n", filepath.Base(fname))

	if opts.frames {
		frames, err := hitbuf.DecodeFrames(raw, opts.tolerant)
		if err != nil {
			return fmt.Errorf("could not decode frames: %w", err)
		}
		fmt.Fprintf(wbuf, "Frames: % 12d\n", len(frames))
		for _, frame := range frames {
			fmt.Fprintf(wbuf, "  %v\n", frame)
		}
		return nil
	}

	hits, err := hitbuf.Decode(raw, opts.tolerant)
	if err != nil {
		return fmt.Errorf("could not decode hits: %w", err)
	}

	fmt.Fprintf(wbuf, "Hits:   % 12d\n", len(hits))
	for _, hit := range hits {
		cpu := 0
		if hit.CPUTrigger {
			cpu = 1
		}
		fmt.Fprintf(wbuf, "  year=%d time=% 16d tot=% 4d cpu=%d adcs=[",
			hit.Year, hit.Time, hit.ToT, cpu,
		)
		for i, k := range hit.Keys() {
			if i > 0 {
				wbuf.WriteString(" ")
			}
			fmt.Fprintf(wbuf, "%d:%d", k, hit.Channels[k])
		}
		wbuf.WriteString("]\n")
	}

	return nil
}
