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
	"syscall"
)

// Error is the single typed error raised anywhere in this module: by a
// device-reported 0xB3 code, by a protocol violation the engine detects, or
// by the stroke-file decoder. Interaction and Opcode are filled in on a
// best-effort basis to help a caller correlate the failure with a log line.
type Error struct {
	Code        ErrorCode
	Interaction string
	Opcode      byte
	Context     string
}

func (e *Error) Error() string {
	if e.Interaction != "" {
		return fmt.Sprintf("tuhi: %s (%s, opcode 0x%02x): %s", e.Code, e.Interaction, e.Opcode, e.Context)
	}
	if e.Context != "" {
		return fmt.Sprintf("tuhi: %s: %s", e.Code, e.Context)
	}
	return fmt.Sprintf("tuhi: %s", e.Code)
}

// Errno maps this error's Code to a POSIX-ish numeric code for
// cross-process reporting.
func (e *Error) Errno() syscall.Errno {
	switch e.Code {
	case InvalidState:
		return syscall.EBADE
	case AuthorizationError:
		return syscall.EACCES
	case MissingReply:
		return syscall.ETIME
	default:
		// UnexpectedReply, UnexpectedData, StrokeParsing, GeneralError,
		// ReadOnlyParam, CommandNotSupported, and anything else.
		return syscall.EPROTO
	}
}

// Authorization reports whether e represents an authorization failure. The
// session package does not consult it; it returns authorization failures
// wrapped like any other error.
func (e *Error) Authorization() bool {
	return e.Code == AuthorizationError
}
