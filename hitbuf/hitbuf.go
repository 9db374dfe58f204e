// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hitbuf decodes hit buffers read out from a uDAQ board.
//
// A hit buffer is a sequence of little-endian 32-bit words.
// Each frame starts with a header word whose top byte selects the kind
// of frame. Header frames (PPS year, PPS second, trigger configuration and
// data format) set the context in which the hit frames that follow them
// are interpreted.
package hitbuf // import "github.com/go-lpc/udaq/hitbuf"

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrIncompleteFrame is returned when the buffer ends while a frame
	// still expects more words.
	ErrIncompleteFrame = errors.New("hitbuf: incomplete frame")

	// ErrInconsistentChannels is returned when a hit frame carries a set
	// of channels different from the one of the first hit frame.
	ErrInconsistentChannels = errors.New("hitbuf: inconsistent channels")

	// ErrNoHitFrame is returned when a buffer holds no hit frame.
	ErrNoHitFrame = errors.New("hitbuf: no hit frame")

	// ErrExhausted is returned by a Cursor with no word left.
	ErrExhausted = errors.New("hitbuf: word cursor exhausted")
)

// Kind identifies the type of a frame.
type Kind uint8

const (
	KindHit Kind = iota
	KindPpsYear
	KindPpsSecond
	KindTriggerConfig
	KindDataFormat
)

func (k Kind) String() string {
	switch k {
	case KindHit:
		return "Hit"
	case KindPpsYear:
		return "PpsYear"
	case KindPpsSecond:
		return "PpsSecond"
	case KindTriggerConfig:
		return "TriggerConfig"
	case KindDataFormat:
		return "DataFormat"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Frame is one decoded unit of a hit buffer.
// Only the field matching Kind is meaningful.
type Frame struct {
	Kind Kind

	Year    PpsYear
	Second  PpsSecond
	Trigger TriggerConfig
	Format  DataFormat
	Hit     RawHit
}

// PpsYear holds the calendar year reference.
type PpsYear struct {
	Year uint16
}

// PpsSecond holds the 26-bit PPS second counter.
type PpsSecond struct {
	Second uint32
}

// TriggerConfig describes the trigger source of the hits that follow.
type TriggerConfig struct {
	Mode   uint8
	Status uint16 // status bits, see StatusCPUTrigger
	Offset uint32
}

// CPUTrigger reports whether the CPU trigger was active.
func (tc TriggerConfig) CPUTrigger() bool {
	return tc.Status&StatusCPUTrigger != 0
}

// DataFormat declares the payload encoding of the hits that follow.
type DataFormat struct {
	Subtype uint8
	Detail  uint16
}

// RawHit is a hit frame whose time has not been resolved yet.
type RawHit struct {
	Offset   uint32           // tick counter since the last PPS
	ToT      uint16           // time over threshold (12 bits)
	Channels map[uint8]uint16 // ADC index (4 bits) -> value (12 bits)
}

// Hit is a hit with its absolute time resolved.
type Hit struct {
	Year       int32
	Time       int64 // in tenths of nanoseconds
	Channels   map[uint8]uint16
	ToT        uint16
	CPUTrigger bool
}

// Keys returns the sorted channel indices of the hit.
func (hit Hit) Keys() []uint8 {
	return keysOf(hit.Channels)
}

func keysOf(chans map[uint8]uint16) []uint8 {
	keys := make([]uint8, 0, len(chans))
	for k := range chans {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (f Frame) String() string {
	switch f.Kind {
	case KindPpsYear:
		return fmt.Sprintf("PpsYear{year=%d}", f.Year.Year)
	case KindPpsSecond:
		return fmt.Sprintf("PpsSecond{second=%d}", f.Second.Second)
	case KindTriggerConfig:
		return fmt.Sprintf(
			"TriggerConfig{mode=0x%02x status=0x%04x offset=%d}",
			f.Trigger.Mode, f.Trigger.Status, f.Trigger.Offset,
		)
	case KindDataFormat:
		return fmt.Sprintf(
			"DataFormat{subtype=%d detail=0x%04x}",
			f.Format.Subtype, f.Format.Detail,
		)
	case KindHit:
		o := new(strings.Builder)
		fmt.Fprintf(o, "Hit{offset=%d tot=%d adcs=[", f.Hit.Offset, f.Hit.ToT)
		for i, k := range keysOf(f.Hit.Channels) {
			if i > 0 {
				o.WriteString(" ")
			}
			fmt.Fprintf(o, "%d:%d", k, f.Hit.Channels[k])
		}
		o.WriteString("]}")
		return o.String()
	}
	panic(fmt.Errorf("hitbuf: invalid frame kind %v", f.Kind))
}
