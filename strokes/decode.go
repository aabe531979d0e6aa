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

	"github.com/tuhiproject/tuhi-sub000/catalog"
)

// decoderState is the running point and per-axis cumulative delta a
// packet stream threads through. The firmware's compression keeps a
// running delta per axis: each packet's delta byte is added to the
// accumulator, and the accumulator (not the bare delta) is added to the
// previous point, so for an absolute sample P0 followed by deltas d1, d2
// the samples come out as P0, P0+d1, P0+2·d1+d2. An axis given as an
// absolute resets that axis's accumulator to zero, and an axis omitted
// from a packet still advances by whatever its accumulator holds.
type decoderState struct {
	x, y, p    int32
	dx, dy, dp int32
}

// Decode splits buf into the concatenated stroke files it contains and
// decodes each in turn. A parse failure midway through one file does not
// discard files already decoded before it; Decode returns those together
// with the error, and drops only the file the failure occurred in
// (remaining bytes would start mid-stream anyway).
func Decode(buf []byte) ([]File, error) {
	var files []File
	for len(buf) > 0 {
		f, err := decodeFile(buf)
		if err != nil {
			return files, err
		}
		files = append(files, f)
		if f.ByteSize <= 0 || f.ByteSize > len(buf) {
			return files, &catalog.Error{Code: catalog.StrokeParsing, Context: "decoded file reported an invalid byte size"}
		}
		buf = buf[f.ByteSize:]
	}
	return files, nil
}

// decodeFile parses one file header off the front of buf (GEN3's 16-byte
// form or GEN1/GEN2's bare 4-byte magic) and then decodes the packet
// stream that follows until an EOF packet closes it.
func decodeFile(buf []byte) (File, error) {
	if len(buf) < 4 {
		return File{}, &catalog.Error{Code: catalog.StrokeParsing, Context: "buffer too short for a file header"}
	}

	var f File
	var offset int

	switch {
	case bytes.Equal(buf[:4], magicGen3):
		if len(buf) < 16 {
			return File{}, &catalog.Error{Code: catalog.StrokeParsing, Context: "truncated file header"}
		}
		// Layout: epoch (4 LE), 2 unused ms bytes, stroke count (4 LE),
		// 2 unused bytes.
		epoch := little32(buf[4:8])
		count := little32(buf[10:14])
		f.Timestamp = &epoch
		f.StrokeCount = &count
		offset = 16
	case bytes.Equal(buf[:4], magicGen1or2):
		offset = 4
	default:
		return File{}, &catalog.Error{Code: catalog.StrokeParsing, Context: "buffer does not start with a recognized file header"}
	}

	strokes, consumed, err := decodePackets(buf[offset:])
	if err != nil {
		return File{}, err
	}
	f.Strokes = strokes
	f.ByteSize = offset + consumed
	return f, nil
}

// decodePackets walks the packet stream following a file header,
// accumulating strokes until it reaches an EOF packet (consumed then
// includes the EOF packet's own bytes), the start of another file header
// (which is not consumed), or the end of input.
func decodePackets(data []byte) (strokes []Stroke, consumed int, err error) {
	var cur *Stroke
	var state decoderState

	flush := func() {
		if cur != nil && len(cur.Points) > 0 {
			strokes = append(strokes, *cur)
		}
		cur = nil
	}

	pos := 0
	for pos < len(data) {
		rest := data[pos:]

		if isFileHeader(rest) {
			// The next concatenated file begins here; this file is done.
			break
		}

		kind, err := classify(rest)
		if err != nil {
			return strokes, pos, err
		}

		switch kind {
		case kindStrokeEnd:
			flush()
			pos += len(strokeEndMagic)

		case kindEOF:
			pos += 9
			flush()
			return strokes, pos, nil

		case kindStrokeHeader:
			flush()
			h, err := parseStrokeHeader(rest)
			if err != nil {
				return strokes, pos, err
			}
			cur = &Stroke{PenID: h.penID, PenType: h.penType, NewLayer: h.newLayer}
			state.dx, state.dy, state.dp = 0, 0, 0
			pos += h.size

		case kindDelta, kindPoint:
			res, err := parseDeltaOrPoint(rest, kind == kindPoint)
			if err != nil {
				return strokes, pos, err
			}
			if cur == nil {
				// GEN1 firmware has been captured emitting points with no
				// preceding stroke header right after the file header.
				cur = &Stroke{}
			}
			applyAxis(&state.x, &state.dx, res.x, res.dx)
			applyAxis(&state.y, &state.dy, res.y, res.dy)
			applyAxis(&state.p, &state.dp, res.p, res.dp)
			cur.Points = append(cur.Points, Point{X: state.x, Y: state.y, P: uint16(state.p)})
			pos += res.size

		case kindLostPoint:
			// A sample the device knows it dropped; it carries no
			// coordinates and does not perturb the running delta state.
			pos += 1 + popcount(rest[0])

		case kindUnknown:
			pos += 1 + popcount(rest[0])

		default:
			return strokes, pos, &catalog.Error{Code: catalog.StrokeParsing, Context: "unreachable packet kind"}
		}
	}

	flush()
	return strokes, pos, nil
}

// applyAxis advances one axis by one packet: a delta byte adds to the
// axis's accumulator, an absolute value replaces the running value and
// zeroes the accumulator, and in every case, including an omitted axis,
// the accumulator is then added to the running value.
func applyAxis(running, acc *int32, abs *int32, delta *int32) {
	switch {
	case delta != nil:
		*acc += *delta
	case abs != nil:
		*running = *abs
		*acc = 0
	}
	*running += *acc
}

// little32 decodes four little-endian bytes into a uint32.
func little32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// little64 decodes eight little-endian bytes into a uint64.
func little64(b []byte) uint64 {
	return uint64(little32(b[0:4])) | uint64(little32(b[4:8]))<<32
}
