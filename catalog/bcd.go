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

import (
	"fmt"
	"time"
)

// little32 decodes four little-endian bytes into a uint32.
func little32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// little16 decodes two little-endian bytes into a uint16.
func little16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}

// bcdByte decodes a byte whose nibbles are each a decimal digit (the
// firmware builds these by formatting a two-digit decimal field and
// unhexlify-ing the resulting text, e.g. "21" becomes 0x21), not its raw
// binary value. Some firmware revisions slip a raw binary byte into the
// time-of-day fields (e.g. 0x1E for minute 30); a nibble above 9 marks
// such a byte, which is then taken at its binary value instead of being
// rejected.
func bcdByte(b byte) int {
	hi, lo := b>>4, b&0x0F
	if hi > 9 || lo > 9 {
		return int(b)
	}
	return int(hi)*10 + int(lo)
}

// intToBCDByte is the inverse of bcdByte for v in [0, 99].
func intToBCDByte(v int) byte {
	return byte((v/10)<<4 | (v % 10))
}

// bcdTimeToUnix decodes the six-byte "YYMMDDHHMMSS" BCD timestamp used by
// GEN1/GEN2 GET_TIME, interpreting the device clock as UTC.
func bcdTimeToUnix(b []byte) (int64, error) {
	if len(b) != 6 {
		return 0, &Error{Code: UnexpectedData, Context: "BCD timestamp must be 6 bytes"}
	}
	year := 2000 + bcdByte(b[0])
	t, err := time.Parse("2006-01-02T15:04:05Z", fmt.Sprintf(
		"%04d-%02d-%02dT%02d:%02d:%02dZ",
		year, bcdByte(b[1]), bcdByte(b[2]), bcdByte(b[3]), bcdByte(b[4]), bcdByte(b[5]),
	))
	if err != nil {
		return 0, &Error{Code: UnexpectedData, Context: "malformed BCD timestamp: " + err.Error()}
	}
	return t.Unix(), nil
}

// unixToBCDTime is the inverse of bcdTimeToUnix, used to build SET_TIME
// requests for GEN1/GEN2 devices.
func unixToBCDTime(unix int64) []byte {
	t := time.Unix(unix, 0).UTC()
	return []byte{
		intToBCDByte(t.Year() - 2000),
		intToBCDByte(int(t.Month())),
		intToBCDByte(t.Day()),
		intToBCDByte(t.Hour()),
		intToBCDByte(t.Minute()),
		intToBCDByte(t.Second()),
	}
}
