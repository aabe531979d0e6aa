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

package catalog

import "fmt"

// Frame is the control-plane unit of exchange: a one-byte opcode, a
// one-byte length, and exactly length bytes of payload. There is no
// framing above this; packet boundaries on the wire are the transport's
// responsibility.
type Frame struct {
	Opcode  byte
	Length  byte
	Payload []byte
}

// EncodeRequest builds the raw bytes of a request frame for the given
// opcode and payload. It panics if the payload exceeds what a one-byte
// length can address; every catalog entry's encoder is responsible for
// never producing one that does.
func EncodeRequest(opcode byte, payload []byte) []byte {
	if len(payload) > 0xFF {
		panic(fmt.Sprintf("catalog: payload of %d bytes exceeds frame capacity", len(payload)))
	}

	out := make([]byte, 2+len(payload))
	out[0] = opcode
	out[1] = byte(len(payload))
	copy(out[2:], payload)
	return out
}

// DecodeFrame parses a single frame out of a received buffer. It requires
// the buffer to contain exactly one frame's worth of bytes (opcode, length,
// and length more bytes); the transport is responsible for delivering
// frames one at a time. A length byte that disagrees with the remaining
// buffer size is a parse error, not tolerated.
func DecodeFrame(buf []byte) (Frame, error) {
	if len(buf) < 2 {
		return Frame{}, &Error{Code: UnexpectedData, Context: "frame shorter than header"}
	}

	opcode := buf[0]
	length := buf[1]
	payload := buf[2:]

	if int(length) != len(payload) {
		return Frame{}, &Error{
			Code:    UnexpectedData,
			Opcode:  opcode,
			Context: fmt.Sprintf("length byte %d does not match payload of %d bytes", length, len(payload)),
		}
	}

	return Frame{Opcode: opcode, Length: length, Payload: payload}, nil
}

// PayloadBuilder accumulates the bytes of a request payload. It plays the
// same role as the teacher's OutMessage builder, grown and appended to a
// segment at a time, but over a plain slice rather than a fixed unsafe
// buffer: our frames top out at 255 bytes, so there is no page-cache
// pressure to optimize away.
type PayloadBuilder struct {
	buf []byte
}

// AppendByte appends a single byte and returns the builder for chaining.
func (b *PayloadBuilder) AppendByte(v byte) *PayloadBuilder {
	b.buf = append(b.buf, v)
	return b
}

// AppendBytes appends a byte slice verbatim.
func (b *PayloadBuilder) AppendBytes(v []byte) *PayloadBuilder {
	b.buf = append(b.buf, v...)
	return b
}

// AppendUint32LE appends v as four little-endian bytes.
func (b *PayloadBuilder) AppendUint32LE(v uint32) *PayloadBuilder {
	return b.AppendBytes([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// AppendUint16LE appends v as two little-endian bytes.
func (b *PayloadBuilder) AppendUint16LE(v uint16) *PayloadBuilder {
	return b.AppendBytes([]byte{byte(v), byte(v >> 8)})
}

// Bytes returns the accumulated payload.
func (b *PayloadBuilder) Bytes() []byte {
	return b.buf
}
