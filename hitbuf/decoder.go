// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hitbuf

import (
	"golang.org/x/xerrors"
)

// DecodeFrames decodes the frames held in raw.
//
// If the buffer ends in the middle of a frame, DecodeFrames fails with
// ErrIncompleteFrame, unless tolerant is set: the frames decoded so far
// are then returned.
// Trailing bytes that do not form a full word are treated the same way.
func DecodeFrames(raw []byte, tolerant bool) ([]Frame, error) {
	var (
		n      = len(raw) - len(raw)%wordSize
		cur    = NewCursor(raw[:n])
		frames = make([]Frame, 0, n/wordSize/2)
	)

	for cur.HasWord() {
		var (
			pos    = cur.Pos()
			hdr, _ = cur.Next()
			kind   = kindOf(hdr)
		)
		frame, err := decodeFrame(kind, hdr, cur)
		if err != nil {
			if tolerant {
				return frames, nil
			}
			return nil, xerrors.Errorf(
				"hitbuf: could not decode %v frame at word %d: %w",
				kind, pos, ErrIncompleteFrame,
			)
		}
		frames = append(frames, frame)
	}

	if n != len(raw) && !tolerant {
		return nil, xerrors.Errorf(
			"hitbuf: %d trailing byte(s) after word %d: %w",
			len(raw)-n, cur.Pos(), ErrIncompleteFrame,
		)
	}

	return frames, nil
}

// kindOf returns the kind of frame introduced by the header word hdr.
// Any code not matching a header frame is a hit.
func kindOf(hdr uint32) Kind {
	switch uint8(hdr >> 24) {
	case codePpsYear:
		return KindPpsYear
	case codePpsSecond:
		return KindPpsSecond
	case codeTrigConfig:
		return KindTriggerConfig
	case codeDataFormat:
		return KindDataFormat
	default:
		return KindHit
	}
}

func decodeFrame(kind Kind, hdr uint32, cur *Cursor) (Frame, error) {
	var (
		frame = Frame{Kind: kind}
		err   error
	)
	switch kind {
	case KindPpsYear:
		frame.Year = decodePpsYear(hdr)
	case KindPpsSecond:
		frame.Second = decodePpsSecond(hdr)
	case KindTriggerConfig:
		frame.Trigger, err = decodeTriggerConfig(hdr, cur)
	case KindDataFormat:
		frame.Format = decodeDataFormat(hdr)
	case KindHit:
		frame.Hit, err = decodeHit(hdr, cur)
	default:
		panic(xerrors.Errorf("hitbuf: invalid frame kind %v", kind))
	}
	return frame, err
}

func decodePpsYear(hdr uint32) PpsYear {
	return PpsYear{Year: uint16(hdr)}
}

func decodePpsSecond(hdr uint32) PpsSecond {
	return PpsSecond{Second: hdr & maxSecond}
}

func decodeTriggerConfig(hdr uint32, cur *Cursor) (TriggerConfig, error) {
	offset, err := cur.Next()
	if err != nil {
		return TriggerConfig{}, err
	}
	return TriggerConfig{
		Mode:   uint8(hdr >> 16),
		Status: uint16(hdr),
		Offset: offset,
	}, nil
}

func decodeDataFormat(hdr uint32) DataFormat {
	return DataFormat{
		Subtype: uint8(hdr >> 16),
		Detail:  uint16(hdr),
	}
}

// decodeHit decodes a hit frame made of the header word (the offset),
// a "multi" word (ADC count, ToT and first ADC entry) and the remaining
// ADC entries, packed two per word.
func decodeHit(hdr uint32, cur *Cursor) (RawHit, error) {
	multi, err := cur.Next()
	if err != nil {
		return RawHit{}, err
	}

	var (
		n   = int(multi>>28) & maxChannels
		hit = RawHit{
			Offset:   hdr,
			ToT:      uint16(multi>>16) & maxToT,
			Channels: make(map[uint8]uint16, n),
		}
		word = (multi & 0xffff) << 16
		odd  = true
	)

	for i := 0; i < n; i++ {
		switch {
		case odd:
			word >>= 16
		default:
			word, err = cur.Next()
			if err != nil {
				return RawHit{}, err
			}
		}
		odd = !odd

		idx := uint8(word>>12) & 0xf
		hit.Channels[idx] = uint16(word) & maxADC
	}

	return hit, nil
}
