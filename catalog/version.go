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

// Package catalog declares the wire-level vocabulary shared by every
// smartpad firmware generation: frames, protocol versions, modes, error
// codes, and the versioned table of control-plane interactions built from
// them. It has no dependency on the engine that executes these messages,
// the same way fuseops has none on the fuse package that dispatches its
// ops.
package catalog

// ProtocolVersion is a totally ordered tag naming a firmware generation.
// A catalog entry tagged G is eligible for any active version >= G; when
// several entries qualify for an interaction, the one with the highest tag
// wins. ANY is the tag used by interactions with no generation-specific
// variant.
type ProtocolVersion int

const (
	// ANY matches every firmware generation. It is the lowest tag, so it
	// never displaces a more specific entry during resolution.
	ANY ProtocolVersion = iota
	GEN1
	GEN2
	GEN3
)

func (v ProtocolVersion) String() string {
	switch v {
	case ANY:
		return "ANY"
	case GEN1:
		return "GEN1"
	case GEN2:
		return "GEN2"
	case GEN3:
		return "GEN3"
	default:
		return "ProtocolVersion(?)"
	}
}

// Mode selects whether the tablet streams samples immediately (LIVE),
// stores them for later retrieval (PAPER), or suspends reporting (IDLE).
// Values match the wire encoding used by SET_MODE.
type Mode byte

const (
	LIVE  Mode = 0x00
	PAPER Mode = 0x01
	IDLE  Mode = 0x02
)

func (m Mode) String() string {
	switch m {
	case LIVE:
		return "LIVE"
	case PAPER:
		return "PAPER"
	case IDLE:
		return "IDLE"
	default:
		return "Mode(?)"
	}
}
