// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hitbuf

import (
	"encoding/binary"
	"fmt"
)

// Cursor reads little-endian 32-bit words from a word-aligned buffer.
type Cursor struct {
	p []byte
	c int // current byte offset
}

// NewCursor returns a cursor over p.
// NewCursor panics if the length of p is not a multiple of 4.
func NewCursor(p []byte) *Cursor {
	if len(p)%wordSize != 0 {
		panic(fmt.Errorf("hitbuf: buffer length %d is not word aligned", len(p)))
	}
	return &Cursor{p: p}
}

// HasWord reports whether at least one word remains.
func (cur *Cursor) HasWord() bool {
	return cur.c < len(cur.p)
}

// Len returns the number of remaining words.
func (cur *Cursor) Len() int {
	return (len(cur.p) - cur.c) / wordSize
}

// Pos returns the index of the next word.
func (cur *Cursor) Pos() int {
	return cur.c / wordSize
}

// Next returns the next word, or ErrExhausted.
func (cur *Cursor) Next() (uint32, error) {
	if !cur.HasWord() {
		return 0, ErrExhausted
	}
	v := binary.LittleEndian.Uint32(cur.p[cur.c : cur.c+wordSize])
	cur.c += wordSize
	return v, nil
}
