// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hitbuf

// Repair works around the uDAQ readout losing two bytes every 1024 bytes.
//
// Repair returns a copy of raw where two zero bytes are inserted at every
// multiple of 1024 of the repaired buffer that still has data after it,
// padded with zeros to a multiple of 4 bytes.
// Insertion is unconditional: Repair can not detect whether bytes
// were actually lost.
func Repair(raw []byte) []byte {
	var (
		size = len(raw) + 2*(len(raw)/(blockSize-2)+1) + wordSize
		out  = make([]byte, 0, size)
		n    = blockSize
	)

	for len(raw) > 0 {
		i := min(n, len(raw))
		out = append(out, raw[:i]...)
		raw = raw[i:]
		if len(raw) == 0 {
			break
		}
		out = append(out, 0, 0)
		n = blockSize - 2
	}

	for len(out)%wordSize != 0 {
		out = append(out, 0)
	}

	return out
}
