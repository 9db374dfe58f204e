// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-lpc/udaq/hitbuf"
	"go-hep.org/x/hep/lcio"
)

// LCIO2Hits reads back the hits written by Hits2LCIO.
func LCIO2Hits(r *lcio.Reader) ([]hitbuf.Hit, error) {
	var hits []hitbuf.Hit
	for r.Next() {
		evt := r.Event()
		obj, ok := evt.Get(collection).(*lcio.GenericObject)
		if !ok || len(obj.Data) != 1 {
			return nil, fmt.Errorf("event %d has no valid %q collection", evt.EventNumber, collection)
		}
		hit, err := hitFrom(obj.Data[0].I32s)
		if err != nil {
			return nil, fmt.Errorf("could not decode event %d: %w", evt.EventNumber, err)
		}
		hit.Time = evt.TimeStamp
		hits = append(hits, hit)
	}

	err := r.Err()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("could not read LCIO stream: %w", err)
	}

	return hits, nil
}

func hitFrom(raw []int32) (hitbuf.Hit, error) {
	const hdr = 4
	if len(raw) < hdr {
		return hitbuf.Hit{}, fmt.Errorf("invalid hit payload size %d", len(raw))
	}
	n := int(raw[3])
	if n < 0 || len(raw) != hdr+2*n {
		return hitbuf.Hit{}, fmt.Errorf("invalid hit payload size %d for %d ADCs", len(raw), n)
	}

	hit := hitbuf.Hit{
		Year:       raw[0],
		ToT:        uint16(raw[1]),
		CPUTrigger: raw[2] != 0,
		Channels:   make(map[uint8]uint16, n),
	}
	for i := 0; i < n; i++ {
		var (
			k = raw[hdr+2*i]
			v = raw[hdr+2*i+1]
		)
		hit.Channels[uint8(k)] = uint16(v)
	}
	return hit, nil
}
