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

// Package tuhi drives the control-plane handshake with a Wacom-style
// Bluetooth smartpad: registration, clock and identity queries, and the
// paired fetch/acknowledge sequence used to download stroke data.
//
// The primary elements of interest are:
//
//   - Engine, which executes one catalog.Call at a time against a
//     caller-supplied Transport and turns its device-reported status byte
//     into a typed error.
//
//   - Transport, the function type a caller implements to actually talk to
//     the device (over BLE GATT, a recorded fixture, or anything else).
//
//   - Identifier, the twelve hex-digit host identity exchanged during
//     CONNECT and REGISTER_PRESS_BUTTON.
//
// The package never talks to a Bluetooth stack itself; see the session
// package for the higher-level registration and fetch orchestration, and
// the strokes package for decoding what DOWNLOAD_OLDEST_FILE's out-of-band
// transfer actually carries.
package tuhi
