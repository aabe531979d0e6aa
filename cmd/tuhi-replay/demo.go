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

package main

import (
	"hash/crc32"

	"github.com/tuhiproject/tuhi-sub000/tuhitesting"
)

// demoPenData is a minimal well-formed GEN1/GEN2 stroke file: the
// four-byte magic header immediately followed by an EOF packet. A real
// device's pen data carries stroke headers and point packets in between;
// this replay exists to exercise the session/transport wiring end to end,
// not to stand in for strokes/decode_test.go's decoder coverage.
var demoPenData = append([]byte{0x62, 0x38, 0x62, 0x74}, demoEOFPacket()...)

func demoEOFPacket() []byte {
	b := make([]byte, 9)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}

func little32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func bigEndianCRC(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

// demoBCDTimestamp is a fixed 2024-01-15 09:30:00 UTC stamp, BCD-encoded
// the way GEN1/GEN2 firmware reports GET_STROKES's timestamp.
func demoBCDTimestamp() []byte {
	return []byte{0x24, 0x01, 0x15, 0x09, 0x30, 0x00}
}

// buildDemoScript returns a canned GEN2 register-then-fetch exchange: one
// REGISTER_PRESS_BUTTON/REGISTER_WAIT_FOR_BUTTON round that latches GEN2,
// followed by a full paired-fetch sequence draining exactly one pending
// file. It plays the same role the teacher's hellofs plays for
// mount_hello: a fixed, self-contained stand-in for the real collaborator
// (here, a BLE transport) so the wiring above it can be exercised without
// hardware.
func buildDemoScript() []tuhitesting.Exchange {
	crc := crc32.ChecksumIEEE(demoPenData)

	return []tuhitesting.Exchange{
		{Reply: []byte{0xB3, 0x01, 0x00}}, // REGISTER_PRESS_BUTTON (fire-and-forget send)
		{Reply: []byte{0xE4, 0x00}},       // REGISTER_WAIT_FOR_BUTTON -> GEN2 (caller already suspects GEN2+)

		{Reply: []byte{0xB3, 0x01, 0x00}}, // CONNECT
		{Reply: []byte{0xB3, 0x01, 0x00}}, // SET_TIME
		{Reply: []byte{0xBA, 0x02, 0x5A, 0x00}}, // GET_BATTERY: 90%, not charging
		{Reply: append([]byte{0xEB, 0x06, 0x03, 0x00}, little32(21000)...)}, // GET_WIDTH
		{Reply: append([]byte{0xEB, 0x06, 0x04, 0x00}, little32(14800)...)}, // GET_HEIGHT
		{Reply: []byte{0xB8, 0x03, '1', '.', '2'}}, // GET_FIRMWARE hi
		{Reply: []byte{0xB8, 0x03, '3', '.', '4'}}, // GET_FIRMWARE lo
		{Reply: []byte{0xB3, 0x01, 0x00}},          // SET_FILE_TRANSFER_REPORTING_TYPE
		{Reply: []byte{0xB3, 0x01, 0x00}},          // SET_MODE

		{Reply: []byte{0xC2, 0x02, 0x01, 0x00}}, // AVAILABLE_FILES_COUNT = 1
		{Reply: append([]byte{0xCF, 0x0A}, append(little32(1), demoBCDTimestamp()...)...)}, // GET_STROKES
		{Reply: []byte{0xC8, 0x01, 0xBE}},                                                  // DOWNLOAD_OLDEST_FILE
		{Reply: append([]byte{0xC8, 0x05, 0xED}, reverseBytes(bigEndianCRC(crc))...)},      // WAIT_FOR_END_READ
		{Reply: []byte{0xB3, 0x01, 0x00}},                                                  // DELETE_OLDEST_FILE
		{Reply: []byte{0xC2, 0x02, 0x00, 0x00}},                                            // AVAILABLE_FILES_COUNT = 0
	}
}
