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

import "strings"

// maxNameReplies bounds the GEN1/GEN2 GET_NAME continuation loop. A name
// long enough to need more than this many 0xBC chunks would exceed any
// name the firmware actually accepts; the bound exists only so a firmware
// bug that never sets the terminating 0x0a can't hang the engine forever.
const maxNameReplies = 8

////////////////////////////////////////////////////////////////////////
// GET_NAME / SET_NAME
////////////////////////////////////////////////////////////////////////

// NameResult carries the device name decoded by GET_NAME.
type NameResult struct {
	Name string
}

// BuildGetName constructs GET_NAME. GEN1/GEN2 devices may split the name
// across several 0xBC replies, the last of which ends in a 0x0a byte; GEN3
// returns the whole name in a single reply and never appends the
// terminator.
func BuildGetName(active ProtocolVersion) (*Call, *NameResult) {
	res := &NameResult{}

	if active < GEN3 {
		return &Call{
			Name:            "GET_NAME",
			RequiresRequest: true,
			Requests:        oneRequest(EncodeRequest(0xBB, []byte{0x00})),
			RequiresReply:   true,
			Replies:         maxNameReplies,
			Timeout:         DefaultTimeout,
			AcceptReply: func(_ int, opcode byte) bool {
				return opcode == 0xBC
			},
			Decode: func(_ int, f Frame) (bool, error) {
				if len(f.Payload) == 0 {
					return true, &Error{Code: UnexpectedData, Interaction: "GET_NAME", Opcode: 0xBC, Context: "empty reply"}
				}
				res.Name += string(f.Payload)
				done := f.Payload[len(f.Payload)-1] == 0x0a
				if done {
					res.Name = strings.TrimSuffix(res.Name, "\n")
				}
				return done, nil
			},
		}, res
	}

	return &Call{
		Name:            "GET_NAME",
		RequiresRequest: true,
		Requests:        oneRequest(EncodeRequest(0xDB, []byte{0x00})),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		AcceptReply: func(_ int, opcode byte) bool {
			return opcode == 0xBC
		},
		Decode: func(_ int, f Frame) (bool, error) {
			res.Name = string(f.Payload)
			return true, nil
		},
	}, res
}

// BuildSetName constructs SET_NAME. GEN1/GEN2 requires the name to be
// terminated with a trailing linebreak or the firmware gets confused; GEN3
// does not.
func BuildSetName(active ProtocolVersion, name string) *Call {
	var payload []byte
	opcode := byte(0xBB)
	if active < GEN3 {
		payload = append([]byte(name), 0x0a)
	} else {
		opcode = 0xDB
		payload = []byte(name)
	}

	return &Call{
		Name:            "SET_NAME",
		RequiresRequest: true,
		Requests:        oneRequest(EncodeRequest(opcode, payload)),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		Decode:          successDecode,
	}
}

////////////////////////////////////////////////////////////////////////
// GET_TIME / SET_TIME
////////////////////////////////////////////////////////////////////////

// TimeResult carries the device clock decoded by GET_TIME, in seconds
// since the UNIX epoch.
type TimeResult struct {
	Unix int64
}

// BuildGetTime constructs GET_TIME. GEN1/GEN2 reply with a six-byte BCD
// "YYMMDDHHMMSS" timestamp assumed to be UTC; GEN3 replies with a
// little-endian 32-bit epoch followed by two bytes of milliseconds that
// this engine discards.
func BuildGetTime(active ProtocolVersion) (*Call, *TimeResult) {
	res := &TimeResult{}
	opcode := byte(0xB6)
	if active >= GEN3 {
		opcode = 0xD6
	}

	return &Call{
		Name:            "GET_TIME",
		RequiresRequest: true,
		Requests:        oneRequest(EncodeRequest(opcode, []byte{0x00})),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		AcceptReply: func(_ int, opcode byte) bool {
			return opcode == 0xBD
		},
		Decode: func(_ int, f Frame) (bool, error) {
			if len(f.Payload) != 6 {
				return true, &Error{Code: UnexpectedData, Interaction: "GET_TIME", Opcode: 0xBD, Context: "expected 6-byte reply"}
			}
			if active >= GEN3 {
				res.Unix = int64(little32(f.Payload[0:4]))
				return true, nil
			}
			unix, err := bcdTimeToUnix(f.Payload)
			if err != nil {
				return true, err
			}
			res.Unix = unix
			return true, nil
		},
	}, res
}

// BuildSetTime constructs SET_TIME from a UNIX timestamp. GEN1/GEN2 sends
// the same BCD layout GET_TIME replies with; GEN3 sends a little-endian
// 32-bit epoch padded with two zero bytes.
func BuildSetTime(active ProtocolVersion, unix int64) *Call {
	var payload []byte
	if active >= GEN3 {
		payload = new(PayloadBuilder).AppendUint32LE(uint32(unix)).AppendByte(0x00).AppendByte(0x00).Bytes()
	} else {
		payload = unixToBCDTime(unix)
	}

	return &Call{
		Name:            "SET_TIME",
		RequiresRequest: true,
		Requests:        oneRequest(EncodeRequest(0xB6, payload)),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		Decode:          successDecode,
	}
}

////////////////////////////////////////////////////////////////////////
// GET_FIRMWARE
////////////////////////////////////////////////////////////////////////

// FirmwareResult carries the two-part firmware string this interaction
// assembles from a pair of requests.
type FirmwareResult struct {
	Firmware string
}

// BuildGetFirmware constructs the two GET_FIRMWARE requests (selector 0
// for the high half, selector 1 for the low half) as a single logical
// Call with two reply rounds. GEN1/GEN2 render each reply byte as its hex
// digits; GEN3 renders each reply byte as its ASCII character.
func BuildGetFirmware(active ProtocolVersion) (*Call, *FirmwareResult) {
	res := &FirmwareResult{}
	var hi, lo string
	haveHi, haveLo := false, false

	decodeHalf := func(index int, f Frame) (bool, error) {
		var half string
		if active < GEN3 {
			half = hexString(f.Payload[1:])
		} else {
			half = string(f.Payload[1:])
		}

		if index == 0 {
			hi, haveHi = half, true
		} else {
			lo, haveLo = half, true
		}

		if haveHi && haveLo {
			res.Firmware = hi + "-" + lo
			return true, nil
		}
		return false, nil
	}

	return &Call{
		Name:            "GET_FIRMWARE",
		RequiresRequest: true,
		Requests: [][]byte{
			EncodeRequest(0xB7, []byte{0x00}),
			EncodeRequest(0xB7, []byte{0x01}),
		},
		RequiresReply: true,
		Replies:       2,
		Timeout:       DefaultTimeout,
		AcceptReply: func(_ int, opcode byte) bool {
			return opcode == 0xB8
		},
		Decode: decodeHalf,
	}, res
}

// hexString renders each byte as its unpadded lowercase hex digits, the
// way GEN1/GEN2 firmware version fields are presented to users (a 0x0A
// byte reads "a", not "0a").
func hexString(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		if c>>4 != 0 {
			out = append(out, digits[c>>4])
		}
		out = append(out, digits[c&0x0F])
	}
	return string(out)
}

////////////////////////////////////////////////////////////////////////
// GET_BATTERY
////////////////////////////////////////////////////////////////////////

// BatteryResult carries the battery level reported by GET_BATTERY.
type BatteryResult struct {
	Percent  int
	Charging bool
}

// BuildGetBattery constructs GET_BATTERY, identical in shape across every
// generation.
func BuildGetBattery() (*Call, *BatteryResult) {
	res := &BatteryResult{}
	return &Call{
		Name:            "GET_BATTERY",
		RequiresRequest: true,
		Requests:        oneRequest(EncodeRequest(0xB9, []byte{0x00})),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		AcceptReply: func(_ int, opcode byte) bool {
			return opcode == 0xBA
		},
		Decode: func(_ int, f Frame) (bool, error) {
			if len(f.Payload) < 2 {
				return true, &Error{Code: UnexpectedData, Interaction: "GET_BATTERY", Opcode: 0xBA, Context: "expected 2-byte reply"}
			}
			res.Percent = int(f.Payload[0])
			res.Charging = f.Payload[1] == 1
			return true, nil
		},
	}, res
}

////////////////////////////////////////////////////////////////////////
// GET_WIDTH / GET_HEIGHT / GET_POINT_SIZE
////////////////////////////////////////////////////////////////////////

// DimensionResult carries a single tablet dimension, in points (width,
// height) or micrometers (point size).
type DimensionResult struct {
	Value int32
}

// buildDimensionQuery is the shared shape of GET_WIDTH, GET_HEIGHT and
// GET_POINT_SIZE once the catalog has already decided a real round-trip is
// needed: send opcode 0xEA with a little-endian 16-bit selector, expect
// opcode 0xEB echoing that selector followed by a little-endian 32-bit
// value. fixup lets GET_POINT_SIZE apply the firmware's off-by-one.
func buildDimensionQuery(name string, selector uint16, fixup func(uint32) int32) (*Call, *DimensionResult) {
	res := &DimensionResult{}
	req := new(PayloadBuilder).AppendUint16LE(selector).Bytes()

	return &Call{
		Name:            name,
		RequiresRequest: true,
		Requests:        oneRequest(EncodeRequest(0xEA, req)),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		AcceptReply: func(_ int, opcode byte) bool {
			return opcode == 0xEB
		},
		Decode: func(_ int, f Frame) (bool, error) {
			if len(f.Payload) != 6 {
				return true, &Error{Code: UnexpectedData, Interaction: name, Opcode: 0xEB, Context: "expected 6-byte reply"}
			}
			if little16(f.Payload[0:2]) != selector {
				return true, &Error{Code: UnexpectedData, Interaction: name, Opcode: 0xEB, Context: "selector mismatch in reply"}
			}
			value := little32(f.Payload[2:6])
			if fixup != nil {
				res.Value = fixup(value)
			} else {
				res.Value = int32(value)
			}
			return true, nil
		},
	}, res
}

// BuildGetWidth constructs GET_WIDTH. GEN1 has no getter for this (the
// request just times out on hardware), so Resolve routes it to a NoOp
// that answers with the hardcoded value.
func BuildGetWidth(active ProtocolVersion) (*Call, *DimensionResult) {
	if Resolve("GET_WIDTH", active).NoOp {
		return &Call{Name: "GET_WIDTH", NoOp: true}, &DimensionResult{Value: NoOpWidth}
	}
	return buildDimensionQuery("GET_WIDTH", 0x03, nil)
}

// BuildGetHeight is the GET_HEIGHT analogue of BuildGetWidth.
func BuildGetHeight(active ProtocolVersion) (*Call, *DimensionResult) {
	if Resolve("GET_HEIGHT", active).NoOp {
		return &Call{Name: "GET_HEIGHT", NoOp: true}, &DimensionResult{Value: NoOpHeight}
	}
	return buildDimensionQuery("GET_HEIGHT", 0x04, nil)
}

// BuildGetPointSize constructs GET_POINT_SIZE; only GEN3 has a real
// query for it. The firmware's reported value is one micrometer higher
// than the tablet's actual point size; subtracting one here matches the
// physical dimensions observed on hardware, so every caller sees the
// corrected value.
func BuildGetPointSize(active ProtocolVersion) (*Call, *DimensionResult) {
	if Resolve("GET_POINT_SIZE", active).NoOp {
		return &Call{Name: "GET_POINT_SIZE", NoOp: true}, &DimensionResult{Value: NoOpPointSize}
	}
	return buildDimensionQuery("GET_POINT_SIZE", 0x14, func(v uint32) int32 {
		return int32(v) - 1
	})
}

// Hardcoded values the catalog answers with on generations that have no
// real query for a dimension: width and height in points, point size in
// micrometers.
const (
	NoOpWidth     int32 = 21000
	NoOpHeight    int32 = 14800
	NoOpPointSize int32 = 10
)
