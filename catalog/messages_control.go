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
// CONNECT
////////////////////////////////////////////////////////////////////////

// ConnectResult holds nothing beyond success/failure: a denied CONNECT
// surfaces as an error from Engine.Execute, never as a field here.
type ConnectResult struct{}

// BuildConnect constructs the CONNECT interaction for the active version.
// GEN1 maps a GeneralError status to Authorization; GEN2 maps
// AuthorizationError to Authorization (itself, trivially); GEN3 does not
// use the 0xB3 status convention at all and instead replies 0x50 (granted)
// or 0x51 followed by a one-byte denial reason.
func BuildConnect(active ProtocolVersion, id [6]byte) (*Call, *ConnectResult) {
	res := &ConnectResult{}
	res2 := Resolve("CONNECT", active)
	if res2.Unsupported {
		return unsupported("CONNECT"), res
	}

	req := EncodeRequest(0xE6, id[:])

	if active < GEN3 {
		statusError := func(code ErrorCode) error {
			if (active == GEN1 && code == GeneralError) || (active >= GEN2 && code == AuthorizationError) {
				return &Error{Code: AuthorizationError, Interaction: "CONNECT", Opcode: 0xB3}
			}
			return &Error{Code: code, Interaction: "CONNECT", Opcode: 0xB3}
		}
		return &Call{
			Name:            "CONNECT",
			RequiresRequest: true,
			Requests:        oneRequest(req),
			RequiresReply:   true,
			Replies:         1,
			Timeout:         DefaultTimeout,
			StatusError:     statusError,
			Decode:          successDecode,
		}, res
	}

	return &Call{
		Name:            "CONNECT",
		RequiresRequest: true,
		Requests:        oneRequest(req),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		AcceptReply: func(_ int, opcode byte) bool {
			return opcode == 0x50 || opcode == 0x51
		},
		Decode: func(_ int, f Frame) (bool, error) {
			if f.Opcode == 0x50 {
				return true, nil
			}
			if len(f.Payload) < 7 {
				return true, &Error{Code: UnexpectedData, Interaction: "CONNECT", Opcode: 0x51, Context: "denial reply missing reason byte"}
			}
			reason := f.Payload[6]
			switch reason {
			case 0x00, 0x03:
				return true, &Error{Code: InvalidState, Interaction: "CONNECT", Opcode: 0x51}
			case 0x01, 0x02:
				return true, &Error{Code: AuthorizationError, Interaction: "CONNECT", Opcode: 0x51}
			default:
				return true, &Error{Code: AuthorizationError, Interaction: "CONNECT", Opcode: 0x51, Context: "unrecognized denial reason"}
			}
		},
	}, res
}

////////////////////////////////////////////////////////////////////////
// SET_MODE
////////////////////////////////////////////////////////////////////////

// BuildSetMode constructs SET_MODE, identical in shape across generations.
func BuildSetMode(active ProtocolVersion, mode Mode) *Call {
	return &Call{
		Name:            "SET_MODE",
		RequiresRequest: true,
		Requests:        oneRequest(EncodeRequest(0xB1, []byte{byte(mode)})),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		Decode:          successDecode,
	}
}

////////////////////////////////////////////////////////////////////////
// Registration handshake
////////////////////////////////////////////////////////////////////////

// BuildRegisterPressButton constructs REGISTER_PRESS_BUTTON. GEN1 sends a
// bare "start registration" byte; GEN2+ sends the id the host has chosen to
// use for this device from now on. Neither expects a reply; the tablet's
// acknowledgement, if any, arrives via REGISTER_WAIT_FOR_BUTTON once the
// user has physically pressed the button.
func BuildRegisterPressButton(active ProtocolVersion, id [6]byte) *Call {
	var req []byte
	if active < GEN2 {
		req = EncodeRequest(0xE3, []byte{0x01})
	} else {
		req = EncodeRequest(0xE7, id[:])
	}

	return &Call{
		Name:            "REGISTER_PRESS_BUTTON",
		RequiresRequest: true,
		Requests:        oneRequest(req),
		RequiresReply:   false,
		Timeout:         DefaultTimeout,
	}
}

// RegisterWaitResult carries the generation the engine latches from the
// reply opcode.
type RegisterWaitResult struct {
	Generation ProtocolVersion
}

// BuildRegisterWaitForButton constructs REGISTER_WAIT_FOR_BUTTON, which
// sends no request and waits up to 10s for the user to press the button on
// the tablet. Which opcodes are even legal, and what they latch, depends
// on what the caller already believed about the device: at ANY (true first
// contact, nothing registered yet) only 0xE4 is legal and it latches GEN1;
// once the caller already suspects GEN2-or-newer (it has registered this
// id before and is only re-confirming), 0xE4 latches GEN2 and 0x53 latches
// GEN3. This mirrors the reference decoder's two distinct reply handlers,
// gated the same way the rest of the catalog gates on active version
// rather than trying to distinguish GEN1 from GEN2 from the byte alone.
func BuildRegisterWaitForButton(active ProtocolVersion) (*Call, *RegisterWaitResult) {
	res := &RegisterWaitResult{}
	r := Resolve("REGISTER_WAIT_FOR_BUTTON", active)

	if r.Version < GEN2 {
		return &Call{
			Name:            "REGISTER_WAIT_FOR_BUTTON",
			RequiresRequest: false,
			RequiresReply:   true,
			Replies:         1,
			Timeout:         RegisterButtonTimeout,
			AcceptReply: func(_ int, opcode byte) bool {
				return opcode == 0xE4
			},
			Decode: func(_ int, f Frame) (bool, error) {
				res.Generation = GEN1
				return true, nil
			},
		}, res
	}

	return &Call{
		Name:            "REGISTER_WAIT_FOR_BUTTON",
		RequiresRequest: false,
		RequiresReply:   true,
		Replies:         1,
		Timeout:         RegisterButtonTimeout,
		AcceptReply: func(_ int, opcode byte) bool {
			return opcode == 0xE4 || opcode == 0x53
		},
		Decode: func(_ int, f Frame) (bool, error) {
			if f.Opcode == 0x53 {
				res.Generation = GEN3
			} else {
				res.Generation = GEN2
			}
			return true, nil
		},
	}, res
}

// BuildRegisterComplete constructs REGISTER_COMPLETE. It is a no-op on
// GEN2+; Resolve handles that uniformly with every other interaction.
func BuildRegisterComplete(active ProtocolVersion) *Call {
	r := Resolve("REGISTER_COMPLETE", active)
	if r.NoOp {
		return &Call{Name: "REGISTER_COMPLETE", NoOp: true, ApplyNoOp: func() {}}
	}

	return &Call{
		Name:            "REGISTER_COMPLETE",
		RequiresRequest: true,
		Requests:        oneRequest(EncodeRequest(0xE5, []byte{0x00})),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		Decode:          successDecode,
	}
}

////////////////////////////////////////////////////////////////////////
// Misc control
////////////////////////////////////////////////////////////////////////

// BuildSetFileTransferReportingType constructs
// SET_FILE_TRANSFER_REPORTING_TYPE, sent once per paired-fetch session on
// GEN2+ to route the out-of-band stroke data onto the GATT characteristic
// this engine listens on. The catalog does not gate this interaction by
// version itself (nothing about its request/reply shape differs by
// generation); it is session.Session.Fetch that skips it below GEN2,
// where firmware was never captured answering it.
func BuildSetFileTransferReportingType() *Call {
	return &Call{
		Name:            "SET_FILE_TRANSFER_REPORTING_TYPE",
		RequiresRequest: true,
		Requests:        oneRequest(EncodeRequest(0xEC, []byte{0x06, 0, 0, 0, 0, 0})),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		Decode:          successDecode,
	}
}

// BuildUnknownE3 constructs the GEN1 warm-up command whose effect on the
// tablet is undocumented but required.
func BuildUnknownE3(active ProtocolVersion) *Call {
	if Resolve("UNKNOWN_E3", active).Unsupported {
		return unsupported("UNKNOWN_E3")
	}

	return &Call{
		Name:            "UNKNOWN_E3",
		RequiresRequest: true,
		Requests:        oneRequest(EncodeRequest(0xE3, []byte{0x00})),
		RequiresReply:   true,
		Replies:         1,
		Timeout:         DefaultTimeout,
		Decode:          successDecode,
	}
}
