// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xcnv

import (
	"fmt"
	"log"

	"github.com/go-lpc/udaq/hitbuf"
	"go-hep.org/x/hep/lcio"
)

// Hits2LCIO writes a run header and then one LCIO event per hit.
//
// Each event holds a generic object whose integers are:
//
//	[year, tot, cpu-trigger, n, adc-idx-0, adc-val-0, ..., adc-idx-n, adc-val-n]
//
// with ADCs sorted by increasing index.
// The event time stamp is the hit time, in tenths of nanoseconds.
func Hits2LCIO(w *lcio.Writer, hits []hitbuf.Hit, run int32, freq int, msg *log.Logger) error {
	err := w.WriteRunHeader(&lcio.RunHeader{
		RunNumber: run,
		Detector:  detector,
		Descr:     "uDAQ hit buffer",
		Params: lcio.Params{
			Ints: map[string][]int32{
				"Hits": {int32(len(hits))},
			},
			Strings: map[string][]string{
				"TimeUnit": {"0.1ns"},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("could not write run header: %w", err)
	}

	raw := &lcio.GenericObject{
		Data: []lcio.GenericObjectData{
			{I32s: nil},
		},
	}

	for i, hit := range hits {
		if freq > 0 && i%freq == 0 {
			msg.Printf("processing hit %d...", i)
		}

		evt := lcio.Event{
			RunNumber:   run,
			EventNumber: int32(i),
			TimeStamp:   hit.Time,
			Detector:    detector,
		}
		raw.Data[0].I32s = i32sFrom(raw.Data[0].I32s[:0], hit)
		evt.Add(collection, raw)

		err = w.WriteEvent(&evt)
		if err != nil {
			return fmt.Errorf("could not write hit %d: %w", i, err)
		}
	}

	return nil
}

func i32sFrom(dst []int32, hit hitbuf.Hit) []int32 {
	var cpu int32
	if hit.CPUTrigger {
		cpu = 1
	}
	keys := hit.Keys()
	dst = append(dst, hit.Year, int32(hit.ToT), cpu, int32(len(keys)))
	for _, k := range keys {
		dst = append(dst, int32(k), int32(hit.Channels[k]))
	}
	return dst
}
