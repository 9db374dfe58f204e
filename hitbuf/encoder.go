// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hitbuf

import (
	"encoding/binary"
	"io"

	"golang.org/x/xerrors"
)

// Encoder writes frames to an output stream, in the layout read back
// by Decode.
type Encoder struct {
	w   io.Writer
	buf []byte
	err error
}

// NewEncoder returns a new Encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w:   w,
		buf: make([]byte, wordSize),
	}
}

// Encode writes the frame to the stream.
// ADC entries of hit frames are written in increasing channel order.
func (enc *Encoder) Encode(f *Frame) error {
	if f == nil {
		return nil
	}
	if enc.err != nil {
		return enc.err
	}

	switch f.Kind {
	case KindPpsYear:
		enc.writeU32(codePpsYear<<24 | uint32(f.Year.Year))

	case KindPpsSecond:
		if f.Second.Second > maxSecond {
			return xerrors.Errorf("hitbuf: PPS second %d overflows 26 bits", f.Second.Second)
		}
		enc.writeU32(codePpsSecond<<24 | f.Second.Second)

	case KindTriggerConfig:
		enc.writeU32(codeTrigConfig<<24 | uint32(f.Trigger.Mode)<<16 | uint32(f.Trigger.Status))
		enc.writeU32(f.Trigger.Offset)

	case KindDataFormat:
		enc.writeU32(codeDataFormat<<24 | uint32(f.Format.Subtype)<<16 | uint32(f.Format.Detail))

	case KindHit:
		err := enc.encodeHit(&f.Hit)
		if err != nil {
			return err
		}

	default:
		return xerrors.Errorf("hitbuf: invalid frame kind %v", f.Kind)
	}

	if enc.err != nil {
		return xerrors.Errorf("hitbuf: could not write %v frame: %w", f.Kind, enc.err)
	}
	return nil
}

func (enc *Encoder) encodeHit(hit *RawHit) error {
	if code := uint8(hit.Offset >> 24); kindOf(hit.Offset) != KindHit || isReserved(code) {
		return xerrors.Errorf("hitbuf: hit offset 0x%08x clashes with frame code 0x%02x", hit.Offset, code)
	}
	if hit.ToT > maxToT {
		return xerrors.Errorf("hitbuf: ToT %d overflows 12 bits", hit.ToT)
	}
	if len(hit.Channels) > maxChannels {
		return xerrors.Errorf("hitbuf: too many ADC channels (got=%d, max=%d)", len(hit.Channels), maxChannels)
	}

	var (
		keys = keysOf(hit.Channels)
		adcs = make([]uint32, len(keys))
	)
	for i, k := range keys {
		v := hit.Channels[k]
		switch {
		case k > 0xf:
			return xerrors.Errorf("hitbuf: invalid ADC index %d", k)
		case v > maxADC:
			return xerrors.Errorf("hitbuf: ADC %d value %d overflows 12 bits", k, v)
		}
		adcs[i] = uint32(k)<<12 | uint32(v)
	}

	multi := uint32(len(adcs))<<28 | uint32(hit.ToT)<<16
	if len(adcs) > 0 {
		multi |= adcs[0]
		adcs = adcs[1:]
	}

	enc.writeU32(hit.Offset)
	enc.writeU32(multi)
	for i := 0; i < len(adcs); i += 2 {
		word := adcs[i]
		if i+1 < len(adcs) {
			word |= adcs[i+1] << 16
		}
		enc.writeU32(word)
	}
	return nil
}

func (enc *Encoder) writeU32(v uint32) {
	if enc.err != nil {
		return
	}
	binary.LittleEndian.PutUint32(enc.buf[:wordSize], v)
	_, enc.err = enc.w.Write(enc.buf[:wordSize])
}

// isReserved reports whether code is a frame code the firmware reserves
// but the decoder does not handle.
func isReserved(code uint8) bool {
	switch {
	case code == codePageEnd:
		return true
	case code&maskGeneric == codeGeneric:
		return true
	case code&maskPpsSecond == codePpsSecond:
		return true
	}
	return false
}
