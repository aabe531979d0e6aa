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

// DefaultTimeout is the per-reply timeout used by every interaction except
// REGISTER_WAIT_FOR_BUTTON.
const DefaultTimeout = 5 * time.Second

// RegisterButtonTimeout covers the user interaction required before the
// tablet replies to REGISTER_WAIT_FOR_BUTTON.
const RegisterButtonTimeout = 10 * time.Second

// gate is one version-gated variant of an interaction: it becomes eligible
// once the active ProtocolVersion reaches MinVersion. NoOp marks a variant
// the engine satisfies locally, without a transport round-trip (e.g.
// GET_WIDTH on GEN1).
type gate struct {
	MinVersion ProtocolVersion
	NoOp       bool
}

// registry is the process-wide, immutable-after-init table of which
// interactions exist at which minimum protocol version. It holds only the
// version-gating metadata; the request/reply shape for each interaction
// lives in the Build functions in this package, which consult Resolve to
// decide whether to perform I/O at all.
var registry = map[string][]gate{
	"CONNECT":                          {{ANY, false}},
	"GET_NAME":                         {{ANY, false}},
	"SET_NAME":                         {{ANY, false}},
	"GET_TIME":                         {{ANY, false}},
	"SET_TIME":                         {{ANY, false}},
	"GET_FIRMWARE":                     {{ANY, false}},
	"GET_BATTERY":                      {{ANY, false}},
	"GET_WIDTH":                        {{ANY, true}, {GEN2, false}},
	"GET_HEIGHT":                       {{ANY, true}, {GEN2, false}},
	"GET_POINT_SIZE":                   {{ANY, true}, {GEN3, false}},
	"SET_MODE":                         {{ANY, false}},
	"GET_STROKES":                      {{GEN1, false}, {GEN2, false}},
	"AVAILABLE_FILES_COUNT":            {{ANY, false}},
	"DOWNLOAD_OLDEST_FILE":             {{ANY, false}},
	"WAIT_FOR_END_READ":                {{ANY, false}},
	"DELETE_OLDEST_FILE":               {{GEN1, false}, {GEN2, false}},
	"REGISTER_COMPLETE":                {{GEN1, false}, {GEN2, true}},
	"REGISTER_PRESS_BUTTON":            {{ANY, false}},
	"REGISTER_WAIT_FOR_BUTTON":         {{ANY, false}, {GEN2, false}},
	"SET_FILE_TRANSFER_REPORTING_TYPE": {{ANY, false}},
	"UNKNOWN_E3":                       {{GEN1, false}},
}

// Resolution is the outcome of resolving an interaction name against an
// active protocol version: the winning gate, or Unsupported if none
// qualify.
type Resolution struct {
	Version     ProtocolVersion
	NoOp        bool
	Unsupported bool
}

// Resolve selects the gate with the highest MinVersion that is <= active,
// for the named interaction. Raising active never removes an interaction
// from the catalog and only ever replaces a matching entry with a newer
// (higher MinVersion) one; callers can rely on Resolve being monotone in
// that sense.
func Resolve(name string, active ProtocolVersion) Resolution {
	gates, ok := registry[name]
	if !ok {
		panic("catalog: unknown interaction " + name)
	}

	best := -1
	var bestGate gate
	for _, g := range gates {
		if g.MinVersion <= active && g.MinVersion > ProtocolVersion(best) {
			best = int(g.MinVersion)
			bestGate = g
		}
	}

	if best < 0 {
		return Resolution{Unsupported: true}
	}

	return Resolution{Version: ProtocolVersion(best), NoOp: bestGate.NoOp}
}
