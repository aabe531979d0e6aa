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

// ErrorCode enumerates the device-reported status codes carried in the
// first payload byte of a 0xB3 reply, plus the host-synthesized kinds that
// the engine raises when the firmware's behavior doesn't match the
// catalog's expectations.
type ErrorCode int

const (
	Success ErrorCode = iota
	GeneralError
	InvalidState
	ReadOnlyParam
	CommandNotSupported
	AuthorizationError

	// Host-synthesized kinds. These never arrive as a 0xB3 payload byte;
	// the engine raises them itself.
	UnexpectedReply
	UnexpectedData
	MissingReply
	StrokeParsing
)

func (c ErrorCode) String() string {
	switch c {
	case Success:
		return "Success"
	case GeneralError:
		return "GeneralError"
	case InvalidState:
		return "InvalidState"
	case ReadOnlyParam:
		return "ReadOnlyParam"
	case CommandNotSupported:
		return "CommandNotSupported"
	case AuthorizationError:
		return "AuthorizationError"
	case UnexpectedReply:
		return "UnexpectedReply"
	case UnexpectedData:
		return "UnexpectedData"
	case MissingReply:
		return "MissingReply"
	case StrokeParsing:
		return "StrokeParsing"
	default:
		return "ErrorCode(?)"
	}
}

// StatusByte maps the raw byte found in a 0xB3 reply's payload to an
// ErrorCode. The values are not contiguous: firmware reports authorization
// failures as 0x07, with 0x05 and 0x06 unassigned. Unknown values collapse
// to GeneralError rather than panicking; firmware has been observed to use
// codes outside this small table.
func StatusByte(b byte) ErrorCode {
	switch b {
	case 0x00:
		return Success
	case 0x01:
		return GeneralError
	case 0x02:
		return InvalidState
	case 0x03:
		return ReadOnlyParam
	case 0x04:
		return CommandNotSupported
	case 0x07:
		return AuthorizationError
	default:
		return GeneralError
	}
}
