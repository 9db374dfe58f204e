// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-lpc/udaq/hitbuf"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go-hep.org/x/hep/lcio"
)

func TestHits2LCIO(t *testing.T) {
	tmp, err := os.MkdirTemp("", "udaq-xcnv-")
	if err != nil {
		t.Fatalf("could not create tmp dir: %+v", err)
	}
	defer os.RemoveAll(tmp)

	for _, tc := range []struct {
		name string
		hits []hitbuf.Hit
	}{
		{
			name: "no-hits",
		},
		{
			name: "hits",
			hits: []hitbuf.Hit{
				{
					Year:       2024,
					Time:       100*10_000_000_000 + 3472,
					Channels:   map[uint8]uint16{0: 10, 1: 20},
					ToT:        50,
					CPUTrigger: true,
				},
				{
					Year:     2024,
					Time:     101 * 10_000_000_000,
					Channels: map[uint8]uint16{0: 0xfff, 1: 0},
					ToT:      0xfff,
				},
				{
					Year: -1,
					Time: -10_000_000_000 + 3,
					ToT:  1,
				},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			const run = 42
			msg := log.New(io.Discard, "", 0)

			fname := filepath.Join(tmp, tc.name+".slcio")
			w, err := lcio.Create(fname)
			if err != nil {
				t.Fatalf("could not create LCIO file: %+v", err)
			}
			defer w.Close()

			err = Hits2LCIO(w, tc.hits, run, 1, msg)
			if err != nil {
				t.Fatalf("could not convert hits to LCIO: %+v", err)
			}

			err = w.Close()
			if err != nil {
				t.Fatalf("could not close LCIO file: %+v", err)
			}

			r, err := lcio.Open(fname)
			if err != nil {
				t.Fatalf("could not open LCIO file: %+v", err)
			}
			defer r.Close()

			got, err := LCIO2Hits(r)
			if err != nil {
				t.Fatalf("could not convert LCIO to hits: %+v", err)
			}

			if diff := cmp.Diff(tc.hits, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("round-trip failed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHitFrom(t *testing.T) {
	for _, tc := range []struct {
		name string
		raw  []int32
		want hitbuf.Hit
		err  string
	}{
		{
			name: "ok",
			raw:  []int32{2024, 50, 1, 2, 0, 10, 1, 20},
			want: hitbuf.Hit{
				Year:       2024,
				ToT:        50,
				CPUTrigger: true,
				Channels:   map[uint8]uint16{0: 10, 1: 20},
			},
		},
		{
			name: "short-header",
			raw:  []int32{2024, 50},
			err:  "invalid hit payload size 2",
		},
		{
			name: "short-adcs",
			raw:  []int32{2024, 50, 0, 2, 0, 10},
			err:  "invalid hit payload size 6 for 2 ADCs",
		},
		{
			name: "negative-adcs",
			raw:  []int32{2024, 50, 0, -1},
			err:  "invalid hit payload size 4 for -1 ADCs",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := hitFrom(tc.raw)
			switch {
			case err != nil && tc.err == "":
				t.Fatalf("could not decode hit: %+v", err)
			case err == nil && tc.err != "":
				t.Fatalf("expected an error: %s", tc.err)
			case err != nil && tc.err != "":
				if got, want := err.Error(), tc.err; got != want {
					t.Fatalf("invalid error:\ngot= %s\nwant=%s", got, want)
				}
				return
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("invalid hit (-want +got):\n%s", diff)
			}
		})
	}
}
