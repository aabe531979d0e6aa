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

package tuhi

import (
	"context"
	"fmt"
	"time"

	"github.com/jacobsa/reqtrace"
	"github.com/jacobsa/syncutil"
	"go.uber.org/zap"

	"github.com/tuhiproject/tuhi-sub000/catalog"
)

// Transport is how an Engine talks to the device: send at most one request
// frame and wait for exactly one reply frame's raw bytes. When request is
// nil, Engine is asking for a reply with no new request on the wire,
// either a continuation of a multi-reply interaction (GET_NAME, GET_STROKES)
// or an entirely unprompted reply (WAIT_FOR_END_READ).
//
// A Transport implementation owns the out-of-band framing of the
// underlying link; it must return exactly one frame's bytes (opcode,
// length, payload) per call, or an error if none arrives within timeout.
type Transport func(ctx context.Context, request []byte, timeout time.Duration) (reply []byte, err error)

// Engine executes catalog.Call values against a Transport, translating the
// device's 0xB3 status byte (or an interaction-specific reply shape) into a
// catalog.Error and decoding successful replies into whatever result value
// the Call's Build function closed over.
type Engine struct {
	transport Transport
	logger    *zap.Logger

	mu syncutil.InvariantMutex

	// INVARIANT: inFlight is true only between the start and end of Execute.
	inFlight bool // GUARDED_BY(mu)
}

// NewEngine constructs an Engine that drives transport. logger may be nil,
// in which case logging is silently skipped, the same convention as the
// teacher's nil-checked debug/error *log.Logger fields.
func NewEngine(transport Transport, logger *zap.Logger) *Engine {
	e := &Engine{
		transport: transport,
		logger:    logger,
	}
	e.mu = syncutil.NewInvariantMutex(e.checkInvariants)
	return e
}

func (e *Engine) checkInvariants() {
	// Nothing beyond the GUARDED_BY comment above to check today; the hook
	// exists so a future additional field doesn't have to introduce its own
	// locking discipline from scratch.
}

// Execute runs call to completion: if call is a NoOp it invokes
// call.ApplyNoOp and returns immediately; otherwise it sends call's
// requests (if any) and reads call.Replies reply frames, stopping early if
// Decode reports done. It does not allow two calls to run concurrently on
// the same Engine, matching the control-plane protocol's single
// outstanding-request-per-device constraint.
func (e *Engine) Execute(ctx context.Context, call *catalog.Call) (err error) {
	ctx, report := reqtrace.StartSpan(ctx, call.Name)
	defer func() { report(err) }()

	if call.Err != nil {
		return call.Err
	}

	if call.NoOp {
		if call.ApplyNoOp != nil {
			call.ApplyNoOp()
		}
		return nil
	}

	e.beginCall(call.Name)
	defer e.endCall()

	if e.logger != nil {
		e.logger.Debug("execute", zap.String("interaction", call.Name))
	}

	if !call.RequiresReply {
		for _, req := range call.Requests {
			if _, err := e.transport(ctx, req, call.Timeout); err != nil {
				return fmt.Errorf("tuhi: %s: sending request: %w", call.Name, err)
			}
		}
		return nil
	}

	for round := 0; round < call.Replies; round++ {
		var req []byte
		if call.RequiresRequest && round < len(call.Requests) {
			req = call.Requests[round]
		}

		raw, err := e.transport(ctx, req, call.Timeout)
		if err != nil {
			return &catalog.Error{Code: catalog.MissingReply, Interaction: call.Name, Context: err.Error()}
		}

		frame, err := catalog.DecodeFrame(raw)
		if err != nil {
			return err
		}

		// The 0xB3 status reply is interpreted here for every call; a
		// message-specific Decode only ever sees other opcodes. A success
		// status is the whole reply, so the call is complete.
		if frame.Opcode == 0xB3 {
			if len(frame.Payload) < 1 {
				return &catalog.Error{Code: catalog.UnexpectedData, Interaction: call.Name, Opcode: 0xB3, Context: "empty status payload"}
			}
			code := catalog.StatusByte(frame.Payload[0])
			if code != catalog.Success {
				if call.StatusError != nil {
					return call.StatusError(code)
				}
				return &catalog.Error{Code: code, Interaction: call.Name, Opcode: 0xB3}
			}
			return nil
		}

		accept := call.AcceptReply
		if accept == nil {
			accept = func(int, byte) bool { return true }
		}
		if !accept(round, frame.Opcode) {
			return &catalog.Error{Code: catalog.UnexpectedReply, Interaction: call.Name, Opcode: frame.Opcode}
		}

		done, err := call.Decode(round, frame)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}

	return &catalog.Error{Code: catalog.MissingReply, Interaction: call.Name, Context: "reply budget exhausted before completion"}
}

// LOCKS_EXCLUDED(e.mu)
func (e *Engine) beginCall(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.inFlight {
		panic(fmt.Sprintf("tuhi: Execute(%s) called while another call is in flight", name))
	}
	e.inFlight = true
}

// LOCKS_EXCLUDED(e.mu)
func (e *Engine) endCall() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight = false
}
