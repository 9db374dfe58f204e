// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hitbuf

import (
	"errors"
	"testing"
)

func TestCursor(t *testing.T) {
	cur := NewCursor([]byte{
		0x01, 0x02, 0x03, 0x04,
		0xe8, 0x07, 0x00, 0xe4,
	})

	if got, want := cur.Len(), 2; got != want {
		t.Fatalf("invalid len: got=%d, want=%d", got, want)
	}

	for i, want := range []uint32{0x04030201, 0xe40007e8} {
		if !cur.HasWord() {
			t.Fatalf("word %d: cursor exhausted", i)
		}
		if got, want := cur.Pos(), i; got != want {
			t.Fatalf("invalid pos: got=%d, want=%d", got, want)
		}
		got, err := cur.Next()
		if err != nil {
			t.Fatalf("word %d: could not read word: %+v", i, err)
		}
		if got != want {
			t.Fatalf("word %d: got=0x%08x, want=0x%08x", i, got, want)
		}
	}

	if cur.HasWord() {
		t.Fatalf("cursor should be exhausted")
	}
	if got, want := cur.Len(), 0; got != want {
		t.Fatalf("invalid len: got=%d, want=%d", got, want)
	}

	_, err := cur.Next()
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("invalid error: got=%+v, want=%+v", err, ErrExhausted)
	}
}

func TestCursorUnaligned(t *testing.T) {
	defer func() {
		e := recover()
		if e == nil {
			t.Fatalf("expected a panic")
		}
		const want = "hitbuf: buffer length 5 is not word aligned"
		if got := e.(error).Error(); got != want {
			t.Fatalf("invalid panic message:\ngot= %s\nwant=%s", got, want)
		}
	}()
	_ = NewCursor(make([]byte, 5))
}
