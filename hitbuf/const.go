// Copyright 2026 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hitbuf

const (
	wordSize  = 4    // size of a hit buffer word, in bytes
	blockSize = 1024 // readout block size, see Repair
)

// header codes (top byte of a frame header word)
const (
	codePpsSecond  = 0xe0
	codePpsYear    = 0xe4
	codeTrigConfig = 0xe5
	codeDataFormat = 0xe6

	// FIXME(udaq): the firmware also defines a page-end marker and a
	// generic frame range (and a mask for the PPS second code).
	// They are not consulted during dispatch, so such words are
	// currently decoded as hit frames.
	codePageEnd   = 0xe7
	codeGeneric   = 0xf0
	maskGeneric   = 0xf0
	maskPpsSecond = 0xfc
)

// StatusCPUTrigger is the trigger-config status bit flagging an active
// CPU trigger.
const StatusCPUTrigger = 1 << 5

// data format subtypes and detail bits.
const (
	FormatTimestamp           = 1
	FormatTimestampToTADCs    = 2
	FormatTimestampToTAllCCRs = 3

	DetailTimestampFine = 1 << 0
)

const (
	maxSecond   = 0x03ffffff
	maxADC      = 0xfff
	maxToT      = 0xfff
	maxChannels = 0xf
)
