// Copyright 2015 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package strokes

import (
	"bytes"
	"fmt"
	"math/bits"

	"github.com/tuhiproject/tuhi-sub000/catalog"
)

// packetKind is the classification of one bitmask-prefixed record in the
// pen-data stream. Order of the checks in classify matters: in
// particular the fixed seven-byte end-of-stroke form is checked before
// the more general EOF form, because the two are a common ambiguity.
type packetKind int

const (
	kindFileHeader packetKind = iota
	kindStrokeEnd
	kindEOF
	kindDelta
	kindStrokeHeader
	kindPoint
	kindLostPoint
	kindUnknown
)

var (
	magicGen3    = []byte{0x67, 0x82, 0x69, 0x65}
	magicGen1or2 = []byte{0x62, 0x38, 0x62, 0x74}

	strokeEndMagic = []byte{0xFC, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
)

func isFileHeader(data []byte) bool {
	return len(data) >= 4 && (bytes.Equal(data[:4], magicGen3) || bytes.Equal(data[:4], magicGen1or2))
}

func popcount(b byte) int { return bits.OnesCount8(b) }

// classify identifies the kind of the packet starting at data[0]. It does
// not itself compute the packet's size; callers that need the size read
// enough of the classified shape to do so (a stroke header's size
// depends on whether a pen-id extension follows, which classify alone
// can't know).
func classify(data []byte) (packetKind, error) {
	if len(data) == 0 {
		return 0, &catalog.Error{Code: catalog.StrokeParsing, Context: "empty packet stream"}
	}

	if isFileHeader(data) {
		return kindFileHeader, nil
	}

	if len(data) >= 7 && bytes.Equal(data[:7], strokeEndMagic) {
		return kindStrokeEnd, nil
	}

	header := data[0]

	// EOF's payload is eight bytes of 0xFF; since a byte has only eight
	// bits, popcount(header) == 8 only when header == 0xFF, so this is
	// equivalent to (and simpler than) re-deriving the popcount-sized
	// payload and comparing it to a literal eight 0xFF bytes.
	if header == 0xFF && len(data) >= 9 && allFF(data[1:9]) {
		return kindEOF, nil
	}

	if header&0x3 == 0 {
		return kindDelta, nil
	}

	nbytes := popcount(header)
	if len(data) < 1+nbytes {
		return 0, &catalog.Error{Code: catalog.StrokeParsing, Context: "truncated packet"}
	}
	payload := data[1 : 1+nbytes]

	if len(payload) == 0 {
		return kindUnknown, nil
	}
	if payload[0] == 0xFA || (len(payload) >= 3 && payload[0] == 0xFF && payload[1] == 0xEE && payload[2] == 0xEE) {
		return kindStrokeHeader, nil
	}
	if len(payload) >= 2 && payload[0] == 0xFF && payload[1] == 0xFF {
		return kindPoint, nil
	}
	if len(payload) >= 2 && payload[0] == 0xDD && payload[1] == 0xDD {
		return kindLostPoint, nil
	}
	return kindUnknown, nil
}

func allFF(b []byte) bool {
	for _, c := range b {
		if c != 0xFF {
			return false
		}
	}
	return true
}

// strokeHeader is one decoded stroke-header packet. timestamp is the GEN3
// epoch; timeOffsetMS is the GEN2 milliseconds-since-powerup counter. The
// generation that produced the header populates exactly one of the two.
type strokeHeader struct {
	size int

	penID    uint64
	penType  byte
	newLayer bool

	timestamp    uint32
	timeOffsetMS uint32
}

// parseStrokeHeader decodes the stroke-header packet at data[0],
// including the nine-byte pen-id extension packet when the GEN3 header's
// "pen id follows" flag is set (the extension counts toward size).
func parseStrokeHeader(data []byte) (strokeHeader, error) {
	header := data[0]
	nbytes := popcount(header)
	if len(data) < 1+nbytes {
		return strokeHeader{}, &catalog.Error{Code: catalog.StrokeParsing, Context: "truncated stroke header"}
	}
	h := strokeHeader{size: 1 + nbytes}
	payload := data[1 : 1+nbytes]

	if len(payload) > 0 && payload[0] == 0xFA {
		if len(payload) < 6 {
			return strokeHeader{}, &catalog.Error{Code: catalog.StrokeParsing, Context: "truncated stroke header"}
		}
		flags := payload[1]
		h.penType = flags & 0x3F
		h.newLayer = flags&0x40 != 0
		h.timestamp = little32(payload[2:6])
		// payload[6:8], where present, is a millisecond field that is
		// always zero in practice.

		if flags&0x80 != 0 {
			ext := data[h.size:]
			if len(ext) < 9 || ext[0] != 0xFF {
				return strokeHeader{}, &catalog.Error{Code: catalog.StrokeParsing, Context: "missing pen id extension packet"}
			}
			h.penID = little64(ext[1:9])
			h.size += 9
		}
		return h, nil
	}

	// The GEN2 "FF EE EE" form: a 16-bit counter of 5ms ticks since
	// power-up in bytes 4..5. On the first stroke after the file header
	// the packet is short two trailing zero bytes, which popcount already
	// accounts for.
	if len(payload) >= 6 {
		h.timeOffsetMS = uint32(payload[4]) | uint32(payload[5])<<8
		h.timeOffsetMS *= 5
	}
	return h, nil
}

// deltaResult is the outcome of decoding one Delta or Point packet: for
// each axis, either an absolute value or a signed delta is populated,
// never both.
type deltaResult struct {
	x, y, p    *int32
	dx, dy, dp *int32
	size       int
}

// parseDeltaOrPoint decodes the bitmask-driven axis payload starting at
// data[0]. When isPoint is true, data[1:3] must be the two 0xFF marker
// bytes a Point packet prefixes onto an otherwise identical Delta
// payload; Point and Delta share this one routine because a Point is
// exactly a Delta with that two-byte prefix.
func parseDeltaOrPoint(data []byte, isPoint bool) (deltaResult, error) {
	header := data[0]
	rest := data[1:]
	prefix := 0
	if isPoint {
		if len(rest) < 2 || rest[0] != 0xFF || rest[1] != 0xFF {
			return deltaResult{}, &catalog.Error{Code: catalog.StrokeParsing, Context: "malformed point packet, expected ff ff marker"}
		}
		rest = rest[2:]
		prefix = 2
	}

	xmask := (header >> 2) & 0x3
	ymask := (header >> 4) & 0x3
	pmask := (header >> 6) & 0x3

	var res deltaResult
	offset := 0

	var err error
	res.x, res.dx, offset, err = parseAxis(xmask, rest, offset)
	if err != nil {
		return deltaResult{}, err
	}
	res.y, res.dy, offset, err = parseAxis(ymask, rest, offset)
	if err != nil {
		return deltaResult{}, err
	}
	res.p, res.dp, offset, err = parseAxis(pmask, rest, offset)
	if err != nil {
		return deltaResult{}, err
	}

	res.size = 1 + prefix + offset
	return res, nil
}

// parseAxis reads one 2-bit axis mask's worth of bytes from data starting
// at offset and returns the new offset (offset plus however many bytes
// this axis consumed).
func parseAxis(mask byte, data []byte, offset int) (value *int32, delta *int32, newOffset int, err error) {
	switch mask {
	case 0: // omitted
		return nil, nil, offset, nil
	case 1: // reserved; never seen in the wild
		return nil, nil, offset, &catalog.Error{Code: catalog.StrokeParsing, Context: "reserved coordinate mask 01 encountered"}
	case 2: // 8-bit signed delta
		if len(data) < offset+1 {
			return nil, nil, offset, &catalog.Error{Code: catalog.StrokeParsing, Context: "truncated delta byte"}
		}
		d := int32(int8(data[offset]))
		if d == 0 {
			return nil, nil, offset, &catalog.Error{Code: catalog.StrokeParsing, Context: "delta packet carries an invalid zero delta"}
		}
		return nil, &d, offset + 1, nil
	case 3: // 16-bit little-endian absolute
		if len(data) < offset+2 {
			return nil, nil, offset, &catalog.Error{Code: catalog.StrokeParsing, Context: "truncated absolute coordinate"}
		}
		v := int32(uint16(data[offset]) | uint16(data[offset+1])<<8)
		return &v, nil, offset + 2, nil
	default:
		return nil, nil, offset, fmt.Errorf("strokes: impossible 2-bit mask value %d", mask)
	}
}
