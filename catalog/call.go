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

import "time"

// Call is what a Build function hands back to the engine: everything it
// needs to run one interaction against the active protocol version,
// without the engine having to know any opcode or byte-layout detail.
//
// A Call whose NoOp field is set carries no request and expects no reply;
// the engine invokes ApplyNoOp and returns, never touching the transport.
type Call struct {
	Name string

	// Err, when non-nil, is returned by the engine immediately, before any
	// transport I/O. Used for interactions that resolve as unsupported at
	// the active protocol version.
	Err error

	// Requests is the ordered list of request frames the engine sends, one
	// per round that needs a fresh request. Most interactions send exactly
	// one (or zero, see RequiresRequest below); GET_FIRMWARE sends two,
	// with different selector bytes, to collect its two halves. A round
	// index at or beyond len(Requests) reads a reply without sending
	// anything new, which is how GEN1/GEN2 GET_NAME's continuation lines
	// and GEN1 GET_STROKES' optional preamble are expressed.
	Requests        [][]byte
	RequiresRequest bool
	RequiresReply   bool

	// Replies is how many reply frames the engine must read for this call.
	// It is usually 1; GET_FIRMWARE, WAIT_FOR_END_READ, GEN1 GET_STROKES and
	// GEN1/2 GET_NAME read more than one.
	Replies int
	Timeout time.Duration

	// Decode is invoked once per reply frame whose opcode is not 0xB3, in
	// arrival order, with index starting at 0. It should inspect f.Opcode
	// and populate whatever result struct the call's Build function closed
	// over, then report whether the call is complete (done) even if more
	// rounds were budgeted by Replies. Two interactions need done to
	// signal early: GEN1 GET_STROKES, whose 0xC7 preamble reply is
	// sometimes omitted by firmware, and GEN1/GEN2 GET_NAME, whose reply
	// repeats until a line terminated with 0x0a arrives. A non-nil error
	// aborts the call; the engine surfaces it unchanged.
	Decode func(index int, f Frame) (done bool, err error)

	// AcceptReply reports whether opcode is an acceptable non-0xB3 reply
	// opcode for the given (0-based) reply round. A nil AcceptReply accepts
	// anything that isn't 0xB3; any other non-accepted opcode is reported
	// as UnexpectedReply.
	AcceptReply func(index int, opcode byte) bool

	// StatusError turns the raw device ErrorCode found in a 0xB3 reply's
	// status byte into the error this call should raise. A nil StatusError
	// uses the identity mapping (&Error{Code: code, ...}).
	StatusError func(code ErrorCode) error

	NoOp      bool
	ApplyNoOp func()
}

// unsupported builds the Call an engine should execute when Resolve reports
// an interaction is not available for the active version and the design
// does not mark it noop-on-this-generation.
func unsupported(name string) *Call {
	return &Call{
		Name: name,
		Err:  &Error{Code: CommandNotSupported, Interaction: name, Context: "not supported at this protocol version"},
	}
}

// oneRequest wraps a single request frame as the common-case Requests
// slice.
func oneRequest(req []byte) [][]byte {
	return [][]byte{req}
}

// successDecode is the Decode function for the common case of a single
// reply whose only job is to arrive with opcode 0xB3; the engine already
// interprets the status byte before Decode would run, so this is never
// actually invoked for such calls but documents the shape used elsewhere.
func successDecode(int, Frame) (bool, error) { return true, nil }
