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
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

// gen3FileHeader builds the sixteen-byte file header: magic, epoch (LE),
// two unused ms bytes, stroke count (LE), two unused bytes.
func gen3FileHeader(epoch, count uint32) []byte {
	var buf []byte
	buf = append(buf, magicGen3...)
	buf = append(buf, little32Bytes(epoch)...)
	buf = append(buf, 0x00, 0x00)
	buf = append(buf, little32Bytes(count)...)
	buf = append(buf, 0x00, 0x00)
	return buf
}

// gen3StrokeHeader builds a minimal no-pen-id-extension stroke header
// packet: header byte 0x7F (popcount 7, covering the seven payload bytes:
// the 0xFA tag, a flags byte, a four-byte epoch and one trailing byte).
func gen3StrokeHeader(flags byte, epoch uint32) []byte {
	b := []byte{0x7F, 0xFA, flags}
	b = append(b, little32Bytes(epoch)...)
	return append(b, 0x00)
}

// gen2StrokeHeader builds the nine-byte "FF EE EE" form: header 0xFF
// plus the three tag bytes, one reserved byte, a 16-bit tick counter and
// two trailing zeros.
func gen2StrokeHeader(ticks uint16) []byte {
	return []byte{0xFF, 0xFF, 0xEE, 0xEE, 0x00, byte(ticks), byte(ticks >> 8), 0x00, 0x00}
}

// absolutePoint builds a Point packet (0xFF 0xFF marker) carrying
// 16-bit-absolute x, y and p: every axis mask is 11, which together with
// the two marker bits drives the header to 0xFF.
func absolutePoint(x, y uint16, p uint16) []byte {
	b := []byte{0xFF, 0xFF, 0xFF}
	b = append(b, byte(x), byte(x>>8))
	b = append(b, byte(y), byte(y>>8))
	b = append(b, byte(p), byte(p>>8))
	return b
}

// deltaPacket builds a Delta packet applying an 8-bit signed delta to
// every axis.
func deltaPacket(dx, dy, dp int8) []byte {
	header := byte(0x2<<2 | 0x2<<4 | 0x2<<6)
	return []byte{header, byte(dx), byte(dy), byte(dp)}
}

// deltaXOnly builds a Delta packet carrying only an x delta; y and p are
// omitted and ride on whatever their accumulators hold.
func deltaXOnly(dx int8) []byte {
	return []byte{0x2 << 2, byte(dx)}
}

func eofPacket() []byte {
	b := make([]byte, 9)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}

func TestDecodeSingleStrokeGen3(t *testing.T) {
	var buf []byte
	buf = append(buf, gen3FileHeader(1000, 1)...)
	buf = append(buf, gen3StrokeHeader(0x00, 999)...)
	buf = append(buf, absolutePoint(100, 200, 500)...)
	buf = append(buf, deltaPacket(5, -3, 10)...)
	buf = append(buf, strokeEndMagic...)
	buf = append(buf, eofPacket()...)

	files, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	f := files[0]
	if f.Timestamp == nil || *f.Timestamp != 1000 {
		t.Errorf("Timestamp = %v, want 1000", f.Timestamp)
	}
	if f.StrokeCount == nil || *f.StrokeCount != 1 {
		t.Errorf("StrokeCount = %v, want 1", f.StrokeCount)
	}
	if f.ByteSize != len(buf) {
		t.Errorf("ByteSize = %d, want %d", f.ByteSize, len(buf))
	}
	if len(f.Strokes) != 1 {
		t.Fatalf("got %d strokes, want 1", len(f.Strokes))
	}

	want := []Point{
		{X: 100, Y: 200, P: 500},
		{X: 105, Y: 197, P: 510},
	}
	if diff := pretty.Compare(want, f.Strokes[0].Points); diff != "" {
		t.Errorf("Points mismatch (-want +got):\n%s", diff)
	}
}

// TestDecodeCumulativeDelta pins the compression's accounting: with an
// absolute P0 and per-packet deltas d1, d2 the samples come out as P0,
// P0+d1, P0+2·d1+d2, and an axis omitted from a packet still advances by
// its accumulated delta.
func TestDecodeCumulativeDelta(t *testing.T) {
	var buf []byte
	buf = append(buf, gen3FileHeader(0, 1)...)
	buf = append(buf, gen3StrokeHeader(0x00, 0)...)
	buf = append(buf, absolutePoint(1000, 2000, 300)...)
	buf = append(buf, deltaPacket(10, -4, 2)...)
	buf = append(buf, deltaXOnly(1)...)
	buf = append(buf, eofPacket()...)

	files, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(files) != 1 || len(files[0].Strokes) != 1 {
		t.Fatalf("got %d files, want 1 with 1 stroke", len(files))
	}

	want := []Point{
		{X: 1000, Y: 2000, P: 300},
		// d = (10, -4, 2)
		{X: 1010, Y: 1996, P: 302},
		// d = (10+1, -4, 2); y and p omitted, still carried forward
		{X: 1021, Y: 1992, P: 304},
	}
	if diff := pretty.Compare(want, files[0].Strokes[0].Points); diff != "" {
		t.Errorf("Points mismatch (-want +got):\n%s", diff)
	}
}

// TestDecodeAbsoluteResetsAccumulator checks the per-axis reset: after an
// axis arrives as an absolute its accumulator drops to zero while the
// other axes keep theirs.
func TestDecodeAbsoluteResetsAccumulator(t *testing.T) {
	var buf []byte
	buf = append(buf, gen3FileHeader(0, 1)...)
	buf = append(buf, gen3StrokeHeader(0x00, 0)...)
	buf = append(buf, absolutePoint(100, 100, 100)...)
	buf = append(buf, deltaPacket(5, 5, 5)...)
	// x absolute (mask 11), y 8-bit delta (mask 10), p omitted.
	buf = append(buf, []byte{0x3<<2 | 0x2<<4, 0xF4, 0x01, 0x03}...) // x=500 absolute, dy=+3
	buf = append(buf, eofPacket()...)

	files, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := []Point{
		{X: 100, Y: 100, P: 100},
		{X: 105, Y: 105, P: 105},
		// x resets to the absolute 500; y advances by 5+3; p rides its
		// accumulated 5.
		{X: 500, Y: 113, P: 110},
	}
	if diff := pretty.Compare(want, files[0].Strokes[0].Points); diff != "" {
		t.Errorf("Points mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeStrokeHeaderMetadata(t *testing.T) {
	// Flags: pen id follows (0x80) | new layer (0x40) | pen type 2.
	var buf []byte
	buf = append(buf, gen3FileHeader(0, 1)...)
	buf = append(buf, gen3StrokeHeader(0x80|0x40|0x02, 7)...)
	// Pen id extension packet: 0xFF header plus 64-bit LE id.
	buf = append(buf, 0xFF, 0xEF, 0xBE, 0xAD, 0xDE, 0x00, 0x00, 0x00, 0x00)
	buf = append(buf, absolutePoint(1, 2, 3)...)
	buf = append(buf, eofPacket()...)

	files, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	s := files[0].Strokes[0]
	if s.PenID != 0xDEADBEEF {
		t.Errorf("PenID = %#x, want 0xDEADBEEF", s.PenID)
	}
	if s.PenType != 2 {
		t.Errorf("PenType = %d, want 2", s.PenType)
	}
	if !s.NewLayer {
		t.Error("NewLayer = false, want true")
	}
}

func TestDecodeGen2File(t *testing.T) {
	var buf []byte
	buf = append(buf, magicGen1or2...)
	buf = append(buf, gen2StrokeHeader(200)...)
	buf = append(buf, absolutePoint(10, 20, 30)...)
	buf = append(buf, strokeEndMagic...)
	buf = append(buf, eofPacket()...)

	files, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	f := files[0]
	if f.Timestamp != nil {
		t.Errorf("Timestamp = %v, want nil (four-byte header carries none)", f.Timestamp)
	}
	if f.ByteSize != len(buf) {
		t.Errorf("ByteSize = %d, want %d", f.ByteSize, len(buf))
	}
	if len(f.Strokes) != 1 || len(f.Strokes[0].Points) != 1 {
		t.Fatalf("Strokes = %+v, want one stroke with one point", f.Strokes)
	}
}

func TestDecodeZeroDeltaRejected(t *testing.T) {
	var buf []byte
	buf = append(buf, gen3FileHeader(0, 1)...)
	buf = append(buf, gen3StrokeHeader(0x00, 0)...)
	buf = append(buf, absolutePoint(0, 0, 0)...)
	buf = append(buf, deltaPacket(0, 1, 1)...)
	buf = append(buf, eofPacket()...)

	_, err := Decode(buf)
	if err == nil {
		t.Fatal("expected an error for a zero-valued delta byte")
	}
}

func TestDecodeReservedAxisMaskRejected(t *testing.T) {
	var buf []byte
	buf = append(buf, gen3FileHeader(0, 1)...)
	buf = append(buf, gen3StrokeHeader(0x00, 0)...)
	// x axis mask 01 is reserved and must abort the parse.
	buf = append(buf, 0x1<<2, 0x00)
	buf = append(buf, eofPacket()...)

	_, err := Decode(buf)
	if err == nil {
		t.Fatal("expected an error for the reserved 01 axis mask")
	}
}

func TestDecodeUnknownPacketSkipped(t *testing.T) {
	var buf []byte
	buf = append(buf, gen3FileHeader(0, 1)...)
	buf = append(buf, gen3StrokeHeader(0x00, 0)...)
	// Header 0x07: popcount 3, payload bytes match no known shape.
	buf = append(buf, 0x07, 0xAB, 0xCD, 0x12)
	buf = append(buf, absolutePoint(9, 9, 9)...)
	buf = append(buf, eofPacket()...)

	files, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(files[0].Strokes) != 1 || len(files[0].Strokes[0].Points) != 1 {
		t.Fatalf("Strokes = %+v, want the unknown packet skipped and one point kept", files[0].Strokes)
	}
}

func TestDecodeLostPointKeepsStroke(t *testing.T) {
	var buf []byte
	buf = append(buf, gen3FileHeader(0, 1)...)
	buf = append(buf, gen3StrokeHeader(0x00, 0)...)
	buf = append(buf, absolutePoint(50, 60, 70)...)
	// Lost-point marker: header 0xFF, tag DD DD, 16-bit count, filler.
	buf = append(buf, 0xFF, 0xDD, 0xDD, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00)
	buf = append(buf, deltaPacket(1, 1, 1)...)
	buf = append(buf, eofPacket()...)

	files, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := []Point{
		{X: 50, Y: 60, P: 70},
		{X: 51, Y: 61, P: 71},
	}
	if diff := pretty.Compare(want, files[0].Strokes[0].Points); diff != "" {
		t.Errorf("Points mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFiveStrokeHeaderCount(t *testing.T) {
	// File header as captured off an Intuos Pro: epoch 0x5D53CECC, five
	// strokes reported.
	var buf []byte
	buf = append(buf, 0x67, 0x82, 0x69, 0x65, 0xCC, 0xCE, 0x53, 0x5D, 0x00, 0x00, 0x05, 0x00, 0x00, 0x00, 0x00, 0x00)
	for i := 0; i < 5; i++ {
		buf = append(buf, gen3StrokeHeader(0x00, 0)...)
		buf = append(buf, absolutePoint(uint16(i), uint16(i), 1)...)
		buf = append(buf, strokeEndMagic...)
	}
	buf = append(buf, eofPacket()...)

	files, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	f := files[0]
	if f.StrokeCount == nil || *f.StrokeCount != 5 {
		t.Errorf("StrokeCount = %v, want 5", f.StrokeCount)
	}
	if f.Timestamp == nil || *f.Timestamp != 0x5D53CECC {
		t.Errorf("Timestamp = %v, want 0x5D53CECC", f.Timestamp)
	}
	if len(f.Strokes) != 5 {
		t.Errorf("got %d strokes, want 5", len(f.Strokes))
	}
}

func TestDecodeConcatenatedFiles(t *testing.T) {
	one := func() []byte {
		var buf []byte
		buf = append(buf, gen3FileHeader(1, 1)...)
		buf = append(buf, gen3StrokeHeader(0x00, 0)...)
		buf = append(buf, absolutePoint(1, 1, 1)...)
		buf = append(buf, eofPacket()...)
		return buf
	}

	buf := append(one(), one()...)
	files, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %d files, want 2", len(files))
	}
	if files[0].ByteSize+files[1].ByteSize != len(buf) {
		t.Errorf("byte sizes %d + %d do not cover the %d-byte input",
			files[0].ByteSize, files[1].ByteSize, len(buf))
	}
}

// TestDecodeBadHeaderKeepsEarlierFiles checks the per-file error policy:
// a valid first file followed by garbage yields the first file alongside
// the error.
func TestDecodeBadHeaderKeepsEarlierFiles(t *testing.T) {
	var buf []byte
	buf = append(buf, gen3FileHeader(1, 0)...)
	buf = append(buf, eofPacket()...)
	buf = append(buf, 0x01, 0x02, 0x03, 0x04) // not a file magic

	files, err := Decode(buf)
	if err == nil {
		t.Fatal("expected an error for the trailing garbage")
	}
	if len(files) != 1 {
		t.Errorf("got %d files, want the valid first file returned with the error", len(files))
	}
}

func little32Bytes(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
