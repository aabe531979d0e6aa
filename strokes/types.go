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

// Point is one sample in absolute device units: x and y in
// sub-millimetre coordinates, p a 16-bit pressure. Decoding always
// resolves deltas into absolutes before a Point is handed to the caller.
type Point struct {
	X, Y int32
	P    uint16
}

// Stroke is an ordered list of Points traced without lifting the pen.
// PenID, PenType and NewLayer are populated from the GEN3 stroke header;
// earlier generations report none of them and leave the zero values.
type Stroke struct {
	Points []Point

	PenID    uint64
	PenType  byte
	NewLayer bool
}

// File is one logical drawing recovered from the transfer buffer.
// Timestamp and StrokeCount are nil on generations whose file header
// doesn't carry them (GEN1/GEN2's four-byte header has neither).
// StrokeCount, where present, is the firmware's own count and is not
// cross-checked against len(Strokes); it has been observed to be
// inaccurate.
type File struct {
	Timestamp   *uint32
	StrokeCount *uint32
	Strokes     []Stroke

	// ByteSize is how many bytes of the input buffer this file consumed;
	// the caller slices to ByteSize to find the next concatenated file.
	ByteSize int
}
