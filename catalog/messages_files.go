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

////////////////////////////////////////////////////////////////////////
// GET_STROKES
////////////////////////////////////////////////////////////////////////

// StrokesResult carries the count of pending drawings and, where the
// active generation reports one, the timestamp of the stroke sequence
// about to be fetched.
type StrokesResult struct {
	Count     uint32
	Timestamp int64
	HaveCount bool
}

// BuildGetStrokes constructs GET_STROKES. GEN1 sends opcode 0xC5 and may
// receive an 0xC7 preamble reporting the count before the 0xCD timestamp
// reply. Firmware sometimes omits the preamble, so the decoder treats
// whichever of the two opcodes shows up first as optional. GEN2 sends
// opcode 0xCC and gets both count and BCD timestamp in a single 0xCF
// reply; GEN3 uses the same request/reply opcodes but the timestamp is a
// raw little-endian epoch instead of BCD.
func BuildGetStrokes(active ProtocolVersion) (*Call, *StrokesResult) {
	res := &StrokesResult{}
	if Resolve("GET_STROKES", active).Unsupported {
		return unsupported("GET_STROKES"), res
	}

	if active < GEN2 {
		return &Call{
			Name:            "GET_STROKES",
			RequiresRequest: true,
			Requests:        oneRequest(EncodeRequest(0xC5, []byte{0x00})),
			RequiresReply:   true,
			Replies:         2,
			Timeout:         DefaultTimeout,
			AcceptReply: func(_ int, opcode byte) bool {
				return opcode == 0xC7 || opcode == 0xCD
			},
			Decode: func(_ int, f Frame) (bool, error) {
				switch f.Opcode {
				case 0xC7:
					if len(f.Payload) != 4 {
						return true, &Error{Code: UnexpectedData, Interaction: "GET_STROKES", Opcode: 0xC7, Context: "expected 4-byte count"}
					}
					res.Count = uint32(f.Payload[0])<<24 | uint32(f.Payload[1])<<16 | uint32(f.Payload[2])<<8 | uint32(f.Payload[3])
					res.HaveCount = true
					return false, nil
				case 0xCD:
					unix, err := bcdTimeToUnix(f.Payload)
					if err != nil {
						return true, err
					}
					res.Timestamp = unix
					return true, nil
				default:
					return true, &Error{Code: UnexpectedReply, Interaction: "GET_STROKES", Opcode: f.Opcode}
				}
			},
		}, res
	}

	return &Call{
		Name:            "GET_STROKES",
		RequiresRequest: true,
		Requests:        oneRequest(EncodeRequest(0xCC, []byte{0x00})),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		AcceptReply: func(_ int, opcode byte) bool {
			return opcode == 0xCF
		},
		Decode: func(_ int, f Frame) (bool, error) {
			if len(f.Payload) < 8 {
				return true, &Error{Code: UnexpectedData, Interaction: "GET_STROKES", Opcode: 0xCF, Context: "expected at least 8 bytes"}
			}
			res.Count = little32(f.Payload[0:4])
			res.HaveCount = true
			if active >= GEN3 {
				res.Timestamp = int64(little32(f.Payload[4:8]))
			} else {
				unix, err := bcdTimeToUnix(f.Payload[4:])
				if err != nil {
					return true, err
				}
				res.Timestamp = unix
			}
			return true, nil
		},
	}, res
}

////////////////////////////////////////////////////////////////////////
// AVAILABLE_FILES_COUNT
////////////////////////////////////////////////////////////////////////

// AvailableFilesResult carries the number of drawings waiting to be
// fetched.
type AvailableFilesResult struct {
	Count uint32
}

// BuildAvailableFilesCount constructs AVAILABLE_FILES_COUNT. GEN1 reports
// the count big-endian; GEN2+ reports it little-endian.
func BuildAvailableFilesCount(active ProtocolVersion) (*Call, *AvailableFilesResult) {
	res := &AvailableFilesResult{}
	return &Call{
		Name:            "AVAILABLE_FILES_COUNT",
		RequiresRequest: true,
		Requests:        oneRequest(EncodeRequest(0xC1, []byte{0x00})),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		AcceptReply: func(_ int, opcode byte) bool {
			return opcode == 0xC2
		},
		Decode: func(_ int, f Frame) (bool, error) {
			if len(f.Payload) < 2 {
				return true, &Error{Code: UnexpectedData, Interaction: "AVAILABLE_FILES_COUNT", Opcode: 0xC2, Context: "expected 2-byte count"}
			}
			if active < GEN2 {
				res.Count = uint32(f.Payload[0])<<8 | uint32(f.Payload[1])
			} else {
				res.Count = uint32(little16(f.Payload[0:2]))
			}
			return true, nil
		},
	}, res
}

////////////////////////////////////////////////////////////////////////
// DOWNLOAD_OLDEST_FILE
////////////////////////////////////////////////////////////////////////

// BuildDownloadOldestFile constructs DOWNLOAD_OLDEST_FILE, identical in
// shape across every generation: the reply's single payload byte must be
// the 0xBE acknowledgement, after which the stroke data itself arrives
// out-of-band on the data-plane characteristic.
func BuildDownloadOldestFile() *Call {
	call := &Call{
		Name:            "DOWNLOAD_OLDEST_FILE",
		RequiresRequest: true,
		Requests:        oneRequest(EncodeRequest(0xC3, []byte{0x00})),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		AcceptReply: func(_ int, opcode byte) bool {
			return opcode == 0xC8
		},
		Decode: func(_ int, f Frame) (bool, error) {
			if len(f.Payload) < 1 || f.Payload[0] != 0xBE {
				return true, &Error{Code: UnexpectedData, Interaction: "DOWNLOAD_OLDEST_FILE", Opcode: 0xC8, Context: "expected 0xBE acknowledgement"}
			}
			return true, nil
		},
	}
	return call
}

////////////////////////////////////////////////////////////////////////
// WAIT_FOR_END_READ
////////////////////////////////////////////////////////////////////////

// WaitForEndReadResult carries the CRC-32 the tablet reports for the
// stroke data it just transferred out of band.
type WaitForEndReadResult struct {
	CRC uint32
}

// BuildWaitForEndRead constructs WAIT_FOR_END_READ. It sends no request;
// the tablet signals completion of the out-of-band transfer unprompted.
// GEN1 replies with an 0xC8 "done" marker followed by a separate 0xC9
// frame carrying the CRC in wire order; GEN2+ folds both into a single
// 0xC8 reply whose CRC bytes arrive reversed.
func BuildWaitForEndRead(active ProtocolVersion) (*Call, *WaitForEndReadResult) {
	res := &WaitForEndReadResult{}

	if active < GEN2 {
		return &Call{
			Name:            "WAIT_FOR_END_READ",
			RequiresRequest: false,
			RequiresReply:   true,
			Replies:         2,
			Timeout:         DefaultTimeout,
			AcceptReply: func(_ int, opcode byte) bool {
				return opcode == 0xC8 || opcode == 0xC9
			},
			Decode: func(_ int, f Frame) (bool, error) {
				switch f.Opcode {
				case 0xC8:
					if len(f.Payload) < 1 || f.Payload[0] != 0xED {
						return true, &Error{Code: UnexpectedData, Interaction: "WAIT_FOR_END_READ", Opcode: 0xC8, Context: "expected 0xED marker"}
					}
					return false, nil
				case 0xC9:
					res.CRC = beBytesToUint32(f.Payload)
					return true, nil
				default:
					return true, &Error{Code: UnexpectedReply, Interaction: "WAIT_FOR_END_READ", Opcode: f.Opcode}
				}
			},
		}, res
	}

	return &Call{
		Name:            "WAIT_FOR_END_READ",
		RequiresRequest: false,
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		AcceptReply: func(_ int, opcode byte) bool {
			return opcode == 0xC8
		},
		Decode: func(_ int, f Frame) (bool, error) {
			if len(f.Payload) < 1 || f.Payload[0] != 0xED {
				return true, &Error{Code: UnexpectedData, Interaction: "WAIT_FOR_END_READ", Opcode: 0xC8, Context: "expected 0xED marker"}
			}
			res.CRC = beBytesToUint32(reversed(f.Payload[1:]))
			return true, nil
		},
	}, res
}

// beBytesToUint32 decodes up to four big-endian bytes, left-padding with
// zero, matching the reference decoder's use of a variable-width
// hex-string join rather than a fixed-width integer.
func beBytesToUint32(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

// reversed returns a copy of b with byte order reversed.
func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}

////////////////////////////////////////////////////////////////////////
// DELETE_OLDEST_FILE
////////////////////////////////////////////////////////////////////////

// BuildDeleteOldestFile constructs DELETE_OLDEST_FILE. GEN1 fires the
// request and does not wait for a reply; GEN2+ sends the same request and
// waits for the usual 0xB3 acknowledgement.
func BuildDeleteOldestFile(active ProtocolVersion) *Call {
	if Resolve("DELETE_OLDEST_FILE", active).Unsupported {
		return unsupported("DELETE_OLDEST_FILE")
	}

	if active < GEN2 {
		return &Call{
			Name:            "DELETE_OLDEST_FILE",
			RequiresRequest: true,
			Requests:        oneRequest(EncodeRequest(0xCA, []byte{0x00})),
			RequiresReply:   false,
			Timeout:         DefaultTimeout,
		}
	}

	return &Call{
		Name:            "DELETE_OLDEST_FILE",
		RequiresRequest: true,
		Requests:        oneRequest(EncodeRequest(0xCA, []byte{0x00})),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		Decode:          successDecode,
	}
}
