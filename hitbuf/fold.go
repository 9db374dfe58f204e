// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hitbuf

import (
	"golang.org/x/xerrors"
)

// Decode decodes the hits held in the raw hit buffer.
//
// In tolerant mode, decoding stops silently at a truncated frame and
// hits with a set of channels different from the first hit's are dropped.
// A buffer without any hit frame is always an error.
func Decode(raw []byte, tolerant bool) ([]Hit, error) {
	frames, err := DecodeFrames(raw, tolerant)
	if err != nil {
		return nil, err
	}
	return Fold(frames, tolerant)
}

// Fold resolves the hit frames into hits, using the year, second and
// trigger configuration of the header frames preceding each hit.
//
// Hits preceding any PPS year (resp. second) frame get a year
// (resp. second) of -1.
func Fold(frames []Frame, tolerant bool) ([]Hit, error) {
	ref, ok := firstHitMask(frames)
	if !ok {
		return nil, ErrNoHitFrame
	}

	var (
		year   int32 = -1
		second int64 = -1
		cpu    bool
		hits   = make([]Hit, 0, len(frames))
	)

	for i, frame := range frames {
		switch frame.Kind {
		case KindPpsYear:
			year = int32(frame.Year.Year)
		case KindPpsSecond:
			second = int64(frame.Second.Second)
		case KindTriggerConfig:
			cpu = frame.Trigger.CPUTrigger()
		case KindDataFormat:
			// only one hit layout is supported.
		case KindHit:
			if mask := chanMask(frame.Hit.Channels); mask != ref {
				if tolerant {
					continue
				}
				return nil, xerrors.Errorf(
					"hitbuf: frame %d has channels %v, want %v: %w",
					i, keysOf(frame.Hit.Channels), keysFrom(ref),
					ErrInconsistentChannels,
				)
			}
			hits = append(hits, Hit{
				Year:       year,
				Time:       ResolveTime(second, frame.Hit.Offset),
				Channels:   frame.Hit.Channels,
				ToT:        frame.Hit.ToT,
				CPUTrigger: cpu,
			})
		default:
			panic(xerrors.Errorf("hitbuf: invalid frame kind %v", frame.Kind))
		}
	}

	return hits, nil
}

// ResolveTime converts a PPS second and a tick offset into an absolute
// time, in tenths of nanoseconds.
// One tick lasts 125/36 tenths of nanoseconds.
func ResolveTime(second int64, offset uint32) int64 {
	return second*10_000_000_000 + int64(offset)*125/36
}

func firstHitMask(frames []Frame) (uint16, bool) {
	for _, frame := range frames {
		if frame.Kind == KindHit {
			return chanMask(frame.Hit.Channels), true
		}
	}
	return 0, false
}

// chanMask returns the set of channel indices as a bit mask.
func chanMask(chans map[uint8]uint16) uint16 {
	var mask uint16
	for k := range chans {
		mask |= 1 << (k & 0xf)
	}
	return mask
}

func keysFrom(mask uint16) []uint8 {
	var keys []uint8
	for i := uint8(0); i < 16; i++ {
		if mask&(1<<i) != 0 {
			keys = append(keys, i)
		}
	}
	return keys
}
