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

import "testing"

func TestClassifyPrecedence(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		want packetKind
	}{
		{
			name: "file header beats everything",
			data: append(append([]byte{}, magicGen3...), 0x00, 0x00, 0x00, 0x00),
			want: kindFileHeader,
		},
		{
			name: "seven-byte stroke end beats EOF",
			data: append(append([]byte{}, strokeEndMagic...), 0xFF, 0xFF),
			want: kindStrokeEnd,
		},
		{
			name: "nine bytes of 0xFF is EOF",
			data: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
			want: kindEOF,
		},
		{
			name: "low bits clear is a delta regardless of payload",
			data: []byte{0x08, 0xFF},
			want: kindDelta,
		},
		{
			name: "0xFA payload tag is a stroke header",
			data: []byte{0x7F, 0xFA, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			want: kindStrokeHeader,
		},
		{
			name: "ff ee ee payload tag is a stroke header",
			data: []byte{0xFF, 0xFF, 0xEE, 0xEE, 0x00, 0x00, 0x00, 0x00, 0x00},
			want: kindStrokeHeader,
		},
		{
			name: "ff ff payload marker is a point",
			data: []byte{0xFF, 0xFF, 0xFF, 0x01, 0x00, 0x02, 0x00, 0x03, 0x00},
			want: kindPoint,
		},
		{
			name: "dd dd payload marker is a lost point",
			data: []byte{0xFF, 0xDD, 0xDD, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00},
			want: kindLostPoint,
		},
		{
			name: "unrecognized payload is unknown",
			data: []byte{0x07, 0xAB, 0xCD, 0x12},
			want: kindUnknown,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := classify(tc.data)
			if err != nil {
				t.Fatalf("classify() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("classify() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseStrokeHeaderFields(t *testing.T) {
	data := []byte{0x7F, 0xFA, 0x42, 0xD2, 0x02, 0x96, 0x49, 0x00}
	h, err := parseStrokeHeader(data)
	if err != nil {
		t.Fatalf("parseStrokeHeader() error = %v", err)
	}
	if h.size != 8 {
		t.Errorf("size = %d, want 8", h.size)
	}
	if h.penType != 0x02 {
		t.Errorf("penType = %d, want 2", h.penType)
	}
	if !h.newLayer {
		t.Error("newLayer = false, want true")
	}
	if h.timestamp != 0x499602D2 {
		t.Errorf("timestamp = %#x, want 0x499602d2", h.timestamp)
	}
	if h.penID != 0 {
		t.Errorf("penID = %d, want 0 with the pen-id flag clear", h.penID)
	}
}

func TestParseStrokeHeaderPenIDExtension(t *testing.T) {
	data := []byte{0x7F, 0xFA, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00}
	data = append(data, 0xFF, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08)

	h, err := parseStrokeHeader(data)
	if err != nil {
		t.Fatalf("parseStrokeHeader() error = %v", err)
	}
	if h.size != 17 {
		t.Errorf("size = %d, want 17 (header plus extension)", h.size)
	}
	if h.penID != 0x0807060504030201 {
		t.Errorf("penID = %#x, want 0x0807060504030201", h.penID)
	}

	// A set pen-id flag with nothing following is a parse error.
	if _, err := parseStrokeHeader(data[:8]); err == nil {
		t.Error("expected an error for a missing pen id extension")
	}
}

func TestParseStrokeHeaderBootOffset(t *testing.T) {
	// 200 ticks of 5ms = 1000ms since power-up.
	h, err := parseStrokeHeader([]byte{0xFF, 0xFF, 0xEE, 0xEE, 0x00, 0xC8, 0x00, 0x00, 0x00})
	if err != nil {
		t.Fatalf("parseStrokeHeader() error = %v", err)
	}
	if h.timeOffsetMS != 1000 {
		t.Errorf("timeOffsetMS = %d, want 1000", h.timeOffsetMS)
	}
	if h.timestamp != 0 {
		t.Errorf("timestamp = %d, want 0 on this generation", h.timestamp)
	}
}

func TestParseDeltaOrPointMaskCombinations(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		isPoint  bool
		wantSize int
		wantX    *int32
		wantDX   *int32
	}{
		{
			name:     "all axes absolute point",
			data:     []byte{0xFF, 0xFF, 0xFF, 0x64, 0x00, 0xC8, 0x00, 0xF4, 0x01},
			isPoint:  true,
			wantSize: 9,
			wantX:    i32(100),
		},
		{
			name:     "x delta only",
			data:     []byte{0x08, 0xFB},
			wantSize: 2,
			wantDX:   i32(-5),
		},
		{
			name:     "x absolute with y and p omitted",
			data:     []byte{0x0C, 0x10, 0x27},
			wantSize: 3,
			wantX:    i32(10000),
		},
		{
			name:     "everything omitted",
			data:     []byte{0x00},
			wantSize: 1,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			res, err := parseDeltaOrPoint(tc.data, tc.isPoint)
			if err != nil {
				t.Fatalf("parseDeltaOrPoint() error = %v", err)
			}
			if res.size != tc.wantSize {
				t.Errorf("size = %d, want %d", res.size, tc.wantSize)
			}
			if !eqPtr(res.x, tc.wantX) {
				t.Errorf("x = %v, want %v", ptrStr(res.x), ptrStr(tc.wantX))
			}
			if !eqPtr(res.dx, tc.wantDX) {
				t.Errorf("dx = %v, want %v", ptrStr(res.dx), ptrStr(tc.wantDX))
			}
		})
	}
}

func i32(v int32) *int32 { return &v }

func eqPtr(a, b *int32) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func ptrStr(p *int32) interface{} {
	if p == nil {
		return "<nil>"
	}
	return *p
}
